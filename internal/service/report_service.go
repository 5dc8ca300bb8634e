package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"crvparking/internal/entities"
	"crvparking/internal/repository"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// ReportService produces the dashboard figures and the payments export.
type ReportService struct {
	repo *repository.DatasetRepository
	now  func() time.Time
}

func NewReportService(repo *repository.DatasetRepository) *ReportService {
	return &ReportService{repo: repo, now: time.Now}
}

// ExportPaymentsCSV writes every payment joined with its stay and vehicle,
// semicolon-separated. Separator characters inside the rule description are
// replaced so each row stays a flat split on ';'.
func (s *ReportService) ExportPaymentsCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write([]string{"paidAt", "method", "amount", "plate", "entryAt", "exitAt", "ruleDesc"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, p := range s.repo.Payments() {
		var plate, entryAt, exitAt, ruleDesc string
		if stay := s.repo.FindStayByID(p.StayID); stay != nil {
			entryAt = stay.EntryAt.Format(time.RFC3339)
			if stay.ExitAt != nil {
				exitAt = stay.ExitAt.Format(time.RFC3339)
			}
			ruleDesc = strings.ReplaceAll(stay.RuleDesc, ";", ",")
			if vehicle := s.repo.FindVehicleByID(stay.VehicleID); vehicle != nil {
				plate = vehicle.Plate
			}
		}

		row := []string{
			p.PaidAt.Format(time.RFC3339),
			p.Method,
			p.Amount.StringFixed(2),
			plate,
			entryAt,
			exitAt,
			ruleDesc,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for payment %d: %w", p.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// DashboardStats computes the landing view figures for the current day.
func (s *ReportService) DashboardStats() entities.DashboardStats {
	total := s.repo.Dataset().Settings.TotalSpots
	open := s.repo.CountOpenStays()
	free := total - open
	if free < 0 {
		free = 0
	}

	today := s.now().UTC().Format(dateLayout)

	revenue := decimal.Zero
	paymentsToday := 0
	for _, p := range s.repo.Payments() {
		if p.PaidAt.UTC().Format(dateLayout) != today {
			continue
		}
		revenue = revenue.Add(p.Amount)
		paymentsToday++
	}

	averageTicket := decimal.Zero
	if paymentsToday > 0 {
		averageTicket = revenue.DivRound(decimal.NewFromInt(int64(paymentsToday)), 2)
	}

	closedMinutes := 0
	closedToday := 0
	for _, stay := range s.repo.Stays() {
		if stay.ExitAt == nil || stay.ExitAt.UTC().Format(dateLayout) != today {
			continue
		}
		if stay.Minutes != nil {
			closedMinutes += *stay.Minutes
		}
		closedToday++
	}
	averageMinutes := 0
	if closedToday > 0 {
		averageMinutes = closedMinutes / closedToday
	}

	return entities.DashboardStats{
		OpenStays:          open,
		FreeSpots:          free,
		TotalSpots:         total,
		RevenueToday:       revenue,
		AverageTicket:      averageTicket,
		AverageStayMinutes: averageMinutes,
	}
}
