package service

import (
	"testing"
	"time"

	"crvparking/internal/db"
	"crvparking/internal/repository"
	"crvparking/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	assert.NoError(t, err)
	return v
}

// testClock is a controllable clock shared by the services under test.
type testClock struct {
	current time.Time
}

func (c *testClock) Now() time.Time {
	return c.current
}

func (c *testClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

type testEnv struct {
	repo  *repository.DatasetRepository
	store *store.MemStore
	clock *testClock
	stays *StayService
	cash  *CashService
	fleet *FleetService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st := store.NewMemStore(nil)
	repo, err := repository.NewDatasetRepository(st)
	assert.NoError(t, err)

	clock := &testClock{current: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)}

	cash := NewCashService(repo, nil)
	cash.now = clock.Now
	stays := NewStayService(repo, cash, nil)
	stays.now = clock.Now

	return &testEnv{
		repo:  repo,
		store: st,
		clock: clock,
		stays: stays,
		cash:  cash,
		fleet: NewFleetService(repo),
	}
}

// seedActiveRule installs the standard capped rule used by most lifecycle
// tests.
func (e *testEnv) seedActiveRule() {
	e.repo.InsertPriceRule(cappedRule())
}

func (e *testEnv) openStaysFor(vehicleID int) []db.Stay {
	var out []db.Stay
	for _, s := range e.repo.Stays() {
		if s.VehicleID == vehicleID && s.Open() {
			out = append(out, s)
		}
	}
	return out
}
