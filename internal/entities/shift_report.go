package entities

import (
	"time"

	"crvparking/internal/db"

	"github.com/shopspring/decimal"
)

type ShiftPaymentRow struct {
	PaidAt   time.Time
	Method   string
	Amount   decimal.Decimal
	Plate    string
	RuleDesc string
}

// ShiftReport summarizes one cash shift: its payments newest first and the
// total collected (initial float excluded).
type ShiftReport struct {
	Shift db.CashShift
	Rows  []ShiftPaymentRow
	Total decimal.Decimal
}
