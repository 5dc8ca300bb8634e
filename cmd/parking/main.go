package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"crvparking/internal/db"
	"crvparking/internal/repository"
	"crvparking/internal/service"
	"crvparking/internal/store"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

func main() {
	godotenv.Load()

	dataFile := os.Getenv("PARKING_DATA_FILE")
	if dataFile == "" {
		dataFile = "parking.json"
	}

	repo, err := repository.NewDatasetRepository(store.NewFileStore(dataFile))
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	notifier := service.NewNotifyService()
	authSvc := service.NewAuthService(repo)
	cashSvc := service.NewCashService(repo, notifier)
	staySvc := service.NewStayService(repo, cashSvc, notifier)
	fleetSvc := service.NewFleetService(repo)
	reportSvc := service.NewReportService(repo)

	backupDir := os.Getenv("PARKING_BACKUP_DIR")
	if backupDir == "" {
		backupDir = "backups"
	}
	backupSchedule := os.Getenv("PARKING_BACKUP_CRON")
	if backupSchedule == "" {
		backupSchedule = "@hourly"
	}
	backupSvc := service.NewBackupService(dataFile, backupDir)

	c := cron.New()
	if _, err := c.AddFunc(backupSchedule, func() {
		if err := backupSvc.Run(); err != nil {
			log.Printf("Backup failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Invalid PARKING_BACKUP_CRON %q: %v", backupSchedule, err)
	}
	c.Start()
	defer c.Stop()

	reader := bufio.NewReader(os.Stdin)

	user := login(reader, authSvc)
	if user == nil {
		return
	}
	fmt.Printf("Welcome, %s.\n", user.Username)

	runMenu(reader, staySvc, cashSvc, fleetSvc, reportSvc)
}

func login(reader *bufio.Reader, auth *service.AuthService) *db.User {
	fmt.Println("=== CRV Parking ===")
	for {
		username := prompt(reader, "Username (q to quit): ")
		if username == "q" {
			return nil
		}
		password := prompt(reader, "Password: ")

		user, err := auth.Login(username, password)
		if err != nil {
			fmt.Println("Invalid username or password.")
			continue
		}
		return user
	}
}

func runMenu(reader *bufio.Reader, stays *service.StayService, cash *service.CashService, fleet *service.FleetService, reports *service.ReportService) {
	for {
		fmt.Println()
		fmt.Println("1. Vehicle entry")
		fmt.Println("2. Vehicle exit")
		fmt.Println("3. Open cash shift")
		fmt.Println("4. Close cash shift")
		fmt.Println("5. Cash shift report")
		fmt.Println("6. Dashboard")
		fmt.Println("7. Clients")
		fmt.Println("8. Register vehicle")
		fmt.Println("9. Price rules")
		fmt.Println("10. Export payments CSV")
		fmt.Println("q. Quit")

		switch prompt(reader, "Choice: ") {
		case "1":
			handleEntry(reader, stays)
		case "2":
			handleExit(reader, stays)
		case "3":
			handleOpenShift(reader, cash)
		case "4":
			handleCloseShift(cash)
		case "5":
			handleShiftReport(cash)
		case "6":
			handleDashboard(reports)
		case "7":
			handleClients(reader, fleet)
		case "8":
			handleRegisterVehicle(reader, fleet)
		case "9":
			handlePriceRules(reader, fleet)
		case "10":
			handleExport(reader, reports)
		case "q", "Q", "quit", "exit":
			fmt.Println("Goodbye!")
			return
		default:
			fmt.Println("Invalid choice.")
		}
	}
}

func handleEntry(reader *bufio.Reader, stays *service.StayService) {
	plate := prompt(reader, "Plate: ")
	stay, err := stays.RecordEntry(plate)
	if err != nil {
		fmt.Printf("Entry failed: %v\n", err)
		return
	}
	fmt.Printf("Stay #%d open since %s.\n", stay.ID, stay.EntryAt.Local().Format("02 Jan 2006 15:04"))
}

func handleExit(reader *bufio.Reader, stays *service.StayService) {
	plate := prompt(reader, "Plate: ")
	method := prompt(reader, "Payment method (cash/card/pix): ")
	if !db.ValidPaymentMethod(method) {
		fmt.Printf("Unknown payment method %q.\n", method)
		return
	}

	result, err := stays.RecordExit(plate, method)
	if err != nil {
		fmt.Printf("Exit failed: %v\n", err)
		return
	}
	fmt.Printf("Exit recorded. Total: %s — %s\n", result.Payment.Amount.StringFixed(2), result.Stay.RuleDesc)
	if result.Payment.CashShiftID == nil {
		fmt.Println("Note: no cash shift is open; payment recorded unattributed.")
	}
}

func handleOpenShift(reader *bufio.Reader, cash *service.CashService) {
	initial, ok := promptDecimal(reader, "Initial float: ")
	if !ok {
		return
	}
	shift, err := cash.OpenShift(initial)
	if err != nil {
		fmt.Printf("Could not open shift: %v\n", err)
		return
	}
	fmt.Printf("Shift #%d open since %s.\n", shift.ID, shift.OpenedAt.Local().Format("02 Jan 2006 15:04"))
}

func handleCloseShift(cash *service.CashService) {
	shift, err := cash.CloseShift()
	if err != nil {
		fmt.Printf("Could not close shift: %v\n", err)
		return
	}
	if shift == nil {
		fmt.Println("No shift is open.")
		return
	}
	fmt.Printf("Shift #%d closed.\n", shift.ID)
}

func handleShiftReport(cash *service.CashService) {
	report, err := cash.ShiftReport()
	if err != nil {
		fmt.Printf("Could not build report: %v\n", err)
		return
	}
	if report == nil {
		fmt.Println("No shift is open.")
		return
	}

	fmt.Printf("Shift #%d, open since %s, initial float %s\n",
		report.Shift.ID, report.Shift.OpenedAt.Local().Format("02 Jan 2006 15:04"), report.Shift.InitialAmount.StringFixed(2))
	for _, row := range report.Rows {
		fmt.Printf("  %s  %-5s %8s  %-10s %s\n",
			row.PaidAt.Local().Format("15:04"), row.Method, row.Amount.StringFixed(2), row.Plate, row.RuleDesc)
	}
	fmt.Printf("Total collected: %s\n", report.Total.StringFixed(2))
}

func handleDashboard(reports *service.ReportService) {
	stats := reports.DashboardStats()
	fmt.Printf("Occupied: %d  Free: %d  Total: %d\n", stats.OpenStays, stats.FreeSpots, stats.TotalSpots)
	fmt.Printf("Revenue today: %s  Average ticket: %s  Average stay: %d min\n",
		stats.RevenueToday.StringFixed(2), stats.AverageTicket.StringFixed(2), stats.AverageStayMinutes)
}

func handleClients(reader *bufio.Reader, fleet *service.FleetService) {
	for _, c := range fleet.Clients() {
		vip := ""
		if c.IsVip {
			vip = " [VIP]"
		}
		fmt.Printf("  #%d %s%s  %s\n", c.ID, c.Name, vip, c.Phone)
	}

	switch prompt(reader, "a: add, d: delete, enter: back: ") {
	case "a":
		name := prompt(reader, "Name: ")
		phone := prompt(reader, "Phone: ")
		notes := prompt(reader, "Notes: ")
		isVip := prompt(reader, "VIP (y/n): ") == "y"
		client, err := fleet.CreateClient(name, phone, notes, isVip)
		if err != nil {
			fmt.Printf("Could not create client: %v\n", err)
			return
		}
		fmt.Printf("Client #%d created.\n", client.ID)
	case "d":
		id, ok := promptInt(reader, "Client id: ")
		if !ok {
			return
		}
		if err := fleet.DeleteClient(id); err != nil {
			fmt.Printf("Could not delete client: %v\n", err)
			return
		}
		fmt.Println("Client deleted; vehicle references cleared.")
	}
}

func handleRegisterVehicle(reader *bufio.Reader, fleet *service.FleetService) {
	plate := prompt(reader, "Plate: ")
	model := prompt(reader, "Model: ")
	color := prompt(reader, "Color: ")

	var clientID *int
	if raw := prompt(reader, "Client id (empty for none): "); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Printf("Invalid client id %q.\n", raw)
			return
		}
		clientID = &id
	}

	vehicle, err := fleet.CreateVehicle(plate, model, color, clientID)
	if err != nil {
		fmt.Printf("Could not register vehicle: %v\n", err)
		return
	}
	fmt.Printf("Vehicle #%d (%s) on file.\n", vehicle.ID, vehicle.Plate)
}

func handlePriceRules(reader *bufio.Reader, fleet *service.FleetService) {
	for _, r := range fleet.PriceRules() {
		dailyMax := "-"
		if r.DailyMax != nil {
			dailyMax = r.DailyMax.StringFixed(2)
		}
		fmt.Printf("  #%d %-12s %s  1h %s, %d min / %s, cap %s\n",
			r.ID, r.Name, r.Status, r.FirstHourValue.StringFixed(2), r.FractionMinutes, r.FractionValue.StringFixed(2), dailyMax)
	}

	switch prompt(reader, "a: add, t: toggle active, enter: back: ") {
	case "a":
		name := prompt(reader, "Name: ")
		firstHour, ok := promptDecimal(reader, "First hour value: ")
		if !ok {
			return
		}
		fractionMinutes, ok := promptInt(reader, "Fraction minutes: ")
		if !ok {
			return
		}
		fractionValue, ok := promptDecimal(reader, "Fraction value: ")
		if !ok {
			return
		}
		var dailyMax *decimal.Decimal
		if raw := prompt(reader, "Daily cap (empty for none): "); raw != "" {
			v, err := decimal.NewFromString(raw)
			if err != nil {
				fmt.Printf("Invalid amount %q.\n", raw)
				return
			}
			dailyMax = &v
		}
		rule, err := fleet.CreatePriceRule(name, firstHour, fractionMinutes, fractionValue, dailyMax)
		if err != nil {
			fmt.Printf("Could not create rule: %v\n", err)
			return
		}
		fmt.Printf("Rule #%d created and active.\n", rule.ID)
	case "t":
		id, ok := promptInt(reader, "Rule id: ")
		if !ok {
			return
		}
		current := false
		for _, r := range fleet.PriceRules() {
			if r.ID == id {
				current = r.Active()
			}
		}
		rule, err := fleet.SetRuleActive(id, !current)
		if err != nil {
			fmt.Printf("Could not toggle rule: %v\n", err)
			return
		}
		fmt.Printf("Rule #%d is now %s.\n", rule.ID, rule.Status)
	}
}

func handleExport(reader *bufio.Reader, reports *service.ReportService) {
	path := prompt(reader, "Export file (default crv_parking_export.csv): ")
	if path == "" {
		path = "crv_parking_export.csv"
	}

	f, err := os.Create(path)
	if err != nil {
		fmt.Printf("Could not create %s: %v\n", path, err)
		return
	}
	defer f.Close()

	if err := reports.ExportPaymentsCSV(f); err != nil {
		fmt.Printf("Export failed: %v\n", err)
		return
	}
	fmt.Printf("Payments exported to %s.\n", path)
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func promptInt(reader *bufio.Reader, label string) (int, bool) {
	raw := prompt(reader, label)
	v, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Printf("Invalid number %q.\n", raw)
		return 0, false
	}
	return v, true
}

func promptDecimal(reader *bufio.Reader, label string) (decimal.Decimal, bool) {
	raw := prompt(reader, label)
	if raw == "" {
		return decimal.Zero, true
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		fmt.Printf("Invalid amount %q.\n", raw)
		return decimal.Zero, false
	}
	return v, true
}
