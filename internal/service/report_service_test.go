package service

import (
	"strings"
	"testing"
	"time"

	"crvparking/internal/db"

	"github.com/stretchr/testify/assert"
)

func newTestReportService(env *testEnv) *ReportService {
	svc := NewReportService(env.repo)
	svc.now = env.clock.Now
	return svc
}

func TestExportPaymentsCSV_JoinsStayAndVehicle(t *testing.T) {
	env := newTestEnv(t)
	env.seedActiveRule()
	reports := newTestReportService(env)

	_, err := env.stays.RecordEntry("ABC1234")
	assert.NoError(t, err)
	env.clock.Advance(90 * time.Minute)
	_, err = env.stays.RecordExit("ABC1234", db.PaymentMethodCard)
	assert.NoError(t, err)

	var out strings.Builder
	assert.NoError(t, reports.ExportPaymentsCSV(&out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "paidAt;method;amount;plate;entryAt;exitAt;ruleDesc", lines[0])

	fields := strings.Split(lines[1], ";")
	assert.Len(t, fields, 7)
	assert.Equal(t, db.PaymentMethodCard, fields[1])
	assert.Equal(t, "14.00", fields[2])
	assert.Equal(t, "ABC1234", fields[3])
	assert.Equal(t, "Standard: 1h + 2x fraction", fields[6])
}

func TestExportPaymentsCSV_SanitizesSeparatorInRuleDesc(t *testing.T) {
	env := newTestEnv(t)
	reports := newTestReportService(env)

	vehicle := env.repo.InsertVehicle(db.Vehicle{Plate: "ABC1234"})
	exitAt := env.clock.Now()
	minutes := 10
	stay := env.repo.InsertStay(db.Stay{
		VehicleID: vehicle.ID,
		EntryAt:   exitAt.Add(-10 * time.Minute),
		ExitAt:    &exitAt,
		Minutes:   &minutes,
		Amount:    decimalFromString(t, "10.00"),
		RuleDesc:  "Odd; rule; name",
	})
	env.repo.InsertPayment(db.Payment{StayID: stay.ID, PaidAt: exitAt, Method: db.PaymentMethodCash, Amount: stay.Amount})

	var out strings.Builder
	assert.NoError(t, reports.ExportPaymentsCSV(&out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	fields := strings.Split(lines[1], ";")
	assert.Len(t, fields, 7)
	assert.Equal(t, "Odd, rule, name", fields[6])
}

func TestDashboardStats_CountsTodayOnly(t *testing.T) {
	env := newTestEnv(t)
	env.seedActiveRule()
	reports := newTestReportService(env)

	// Yesterday: one closed stay with a payment.
	_, err := env.stays.RecordEntry("OLD0001")
	assert.NoError(t, err)
	env.clock.Advance(30 * time.Minute)
	_, err = env.stays.RecordExit("OLD0001", db.PaymentMethodCash)
	assert.NoError(t, err)

	env.clock.Advance(24 * time.Hour)

	// Today: two exits (45 min -> 10.00, 90 min -> 14.00) and one car still in.
	_, err = env.stays.RecordEntry("AAA1111")
	assert.NoError(t, err)
	env.clock.Advance(45 * time.Minute)
	_, err = env.stays.RecordExit("AAA1111", db.PaymentMethodCash)
	assert.NoError(t, err)

	_, err = env.stays.RecordEntry("BBB2222")
	assert.NoError(t, err)
	env.clock.Advance(90 * time.Minute)
	_, err = env.stays.RecordExit("BBB2222", db.PaymentMethodPix)
	assert.NoError(t, err)

	_, err = env.stays.RecordEntry("CCC3333")
	assert.NoError(t, err)

	stats := reports.DashboardStats()

	assert.Equal(t, 1, stats.OpenStays)
	assert.Equal(t, 50, stats.TotalSpots)
	assert.Equal(t, 49, stats.FreeSpots)
	assert.Equal(t, "24.00", stats.RevenueToday.StringFixed(2))
	assert.Equal(t, "12.00", stats.AverageTicket.StringFixed(2))
	// (45 + 90) / 2, integer division.
	assert.Equal(t, 67, stats.AverageStayMinutes)
}

func TestDashboardStats_EmptyDataset(t *testing.T) {
	env := newTestEnv(t)
	reports := newTestReportService(env)

	stats := reports.DashboardStats()

	assert.Equal(t, 0, stats.OpenStays)
	assert.Equal(t, 50, stats.FreeSpots)
	assert.Equal(t, "0.00", stats.RevenueToday.StringFixed(2))
	assert.Equal(t, "0.00", stats.AverageTicket.StringFixed(2))
	assert.Equal(t, 0, stats.AverageStayMinutes)
}
