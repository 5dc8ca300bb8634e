package service

import (
	"fmt"
	"time"

	"crvparking/internal/db"

	"github.com/shopspring/decimal"
)

type FeeResult struct {
	Amount      decimal.Decimal
	Minutes     int
	Description string
}

const defaultFractionMinutes = 15

// ComputeFee prices a stay under the given rule. The first hour is a flat
// value; time beyond it is billed in fractions, and a started fraction counts
// as a whole one. An optional daily cap clamps the total.
//
// Elapsed time is floored to whole minutes with a floor of one minute, so a
// zero or negative interval still bills the minimum. Deterministic, no side
// effects; callers must ensure the rule exists.
func ComputeFee(rule db.PriceRule, entryAt, exitAt time.Time) FeeResult {
	minutes := int(exitAt.Sub(entryAt) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}

	var amount decimal.Decimal
	var desc string
	if minutes <= 60 {
		amount = rule.FirstHourValue
		desc = fmt.Sprintf("%s: up to 1h", rule.Name)
	} else {
		extra := minutes - 60
		fractionMinutes := rule.FractionMinutes
		if fractionMinutes <= 0 {
			fractionMinutes = defaultFractionMinutes
		}
		fractions := (extra + fractionMinutes - 1) / fractionMinutes
		amount = rule.FirstHourValue.Add(rule.FractionValue.Mul(decimal.NewFromInt(int64(fractions))))
		desc = fmt.Sprintf("%s: 1h + %dx fraction", rule.Name, fractions)
	}

	if rule.DailyMax != nil && amount.GreaterThan(*rule.DailyMax) {
		amount = *rule.DailyMax
		desc += " (daily cap)"
	}

	return FeeResult{
		Amount:      amount.Round(2),
		Minutes:     minutes,
		Description: desc,
	}
}
