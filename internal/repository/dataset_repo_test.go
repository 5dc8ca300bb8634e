package repository

import (
	"testing"
	"time"

	"crvparking/internal/db"
	apperr "crvparking/internal/errors"
	"crvparking/internal/store"

	"github.com/stretchr/testify/assert"
)

func newRepo(t *testing.T) *DatasetRepository {
	t.Helper()
	repo, err := NewDatasetRepository(store.NewMemStore(nil))
	assert.NoError(t, err)
	return repo
}

func TestInsert_AssignsMonotonicIDs(t *testing.T) {
	repo := newRepo(t)

	first := repo.InsertVehicle(db.Vehicle{Plate: "AAA1111"})
	second := repo.InsertVehicle(db.Vehicle{Plate: "BBB2222"})

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, 2, repo.Dataset().Counters.Vehicles)
}

func TestDeleteClient_ReportsMissing(t *testing.T) {
	repo := newRepo(t)

	assert.False(t, repo.DeleteClient(1))

	repo.InsertClient(db.Client{Name: "Maria"})
	assert.True(t, repo.DeleteClient(1))
	assert.False(t, repo.DeleteClient(1))
}

func TestActiveRule_ReportsMultipleActive(t *testing.T) {
	repo := newRepo(t)

	repo.InsertPriceRule(db.PriceRule{Name: "A", Status: db.RuleStatusActive})
	repo.InsertPriceRule(db.PriceRule{Name: "B", Status: db.RuleStatusActive})

	_, err := repo.ActiveRule()

	var violation *apperr.InvariantViolationError
	assert.ErrorAs(t, err, &violation)
}

func TestActiveRule_ScansInIDOrder(t *testing.T) {
	repo := newRepo(t)

	repo.InsertPriceRule(db.PriceRule{Name: "A", Status: db.RuleStatusInactive})
	active := repo.InsertPriceRule(db.PriceRule{Name: "B", Status: db.RuleStatusActive})

	rule, err := repo.ActiveRule()
	assert.NoError(t, err)
	assert.Equal(t, active.ID, rule.ID)
}

func TestFindOpenStayByVehicle_ReportsDoubleOpen(t *testing.T) {
	repo := newRepo(t)

	vehicle := repo.InsertVehicle(db.Vehicle{Plate: "AAA1111"})
	now := time.Now().UTC()
	repo.InsertStay(db.Stay{VehicleID: vehicle.ID, EntryAt: now})
	repo.InsertStay(db.Stay{VehicleID: vehicle.ID, EntryAt: now})

	_, err := repo.FindOpenStayByVehicle(vehicle.ID)

	var violation *apperr.InvariantViolationError
	assert.ErrorAs(t, err, &violation)
}

func TestOpenCashShift_ReportsDoubleOpen(t *testing.T) {
	repo := newRepo(t)

	repo.InsertCashShift(db.CashShift{OpenedAt: time.Now().UTC()})
	repo.InsertCashShift(db.CashShift{OpenedAt: time.Now().UTC()})

	_, err := repo.OpenCashShift()

	var violation *apperr.InvariantViolationError
	assert.ErrorAs(t, err, &violation)
}

func TestPaymentsByShift_FiltersAttribution(t *testing.T) {
	repo := newRepo(t)

	shiftID := 3
	repo.InsertPayment(db.Payment{StayID: 1, CashShiftID: &shiftID})
	repo.InsertPayment(db.Payment{StayID: 2})

	assert.Len(t, repo.PaymentsByShift(shiftID), 1)
	assert.Empty(t, repo.PaymentsByShift(99))
	assert.Len(t, repo.Payments(), 2)
}

func TestFlush_PersistsThroughStore(t *testing.T) {
	st := store.NewMemStore(nil)
	repo, err := NewDatasetRepository(st)
	assert.NoError(t, err)

	repo.InsertVehicle(db.Vehicle{Plate: "AAA1111"})
	assert.Equal(t, 0, st.Saves)

	assert.NoError(t, repo.Flush())
	assert.Equal(t, 1, st.Saves)
	assert.Len(t, st.Data.Vehicles, 1)
}
