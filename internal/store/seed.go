package store

import (
	"fmt"

	"crvparking/internal/db"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Defaults for a freshly seeded location.
const (
	DefaultTotalSpots = 50
	DefaultUsername   = "admin"
	DefaultPassword   = "admin123"
	DefaultRuleName   = "Standard"
)

// Seed builds the default dataset: 50 spots, one admin user and one active
// "Standard" price rule (10.00 first hour, 2.00 per 15 min fraction, 30.00
// daily cap).
func Seed() (*db.Dataset, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash default password: %w", err)
	}

	dailyMax := decimal.NewFromFloat(30.00)
	data := &db.Dataset{
		Settings: db.Settings{TotalSpots: DefaultTotalSpots},
		Counters: db.Counters{Users: 1, PriceRules: 1},
		Users: []db.User{{
			ID:           1,
			Username:     DefaultUsername,
			PasswordHash: string(hash),
		}},
		PriceRules: []db.PriceRule{{
			ID:              1,
			Name:            DefaultRuleName,
			Status:          db.RuleStatusActive,
			FirstHourValue:  decimal.NewFromFloat(10.00),
			FractionMinutes: 15,
			FractionValue:   decimal.NewFromFloat(2.00),
			DailyMax:        &dailyMax,
		}},
	}
	return data, nil
}
