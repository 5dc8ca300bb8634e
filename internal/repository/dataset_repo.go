package repository

import (
	"fmt"

	"crvparking/internal/db"
	apperr "crvparking/internal/errors"
	"crvparking/internal/store"
)

// DatasetRepository wraps the loaded dataset and its store. Inserts and
// updates only mutate memory; callers persist a whole logical operation with
// one Flush, so multi-field write groups (stay close + payment) are never
// observable half-applied.
type DatasetRepository struct {
	store store.Store
	data  *db.Dataset
}

func NewDatasetRepository(st store.Store) (*DatasetRepository, error) {
	data, err := st.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	return &DatasetRepository{store: st, data: data}, nil
}

func (r *DatasetRepository) Dataset() *db.Dataset {
	return r.data
}

// Flush persists the current dataset, replacing the prior version.
func (r *DatasetRepository) Flush() error {
	return r.store.Save(r.data)
}

// Users

func (r *DatasetRepository) FindUserByUsername(username string) *db.User {
	for i := range r.data.Users {
		if r.data.Users[i].Username == username {
			return &r.data.Users[i]
		}
	}
	return nil
}

// Clients

func (r *DatasetRepository) Clients() []db.Client {
	return r.data.Clients
}

func (r *DatasetRepository) FindClientByID(id int) *db.Client {
	for i := range r.data.Clients {
		if r.data.Clients[i].ID == id {
			return &r.data.Clients[i]
		}
	}
	return nil
}

func (r *DatasetRepository) InsertClient(c db.Client) *db.Client {
	r.data.Counters.Clients++
	c.ID = r.data.Counters.Clients
	r.data.Clients = append(r.data.Clients, c)
	return &r.data.Clients[len(r.data.Clients)-1]
}

// DeleteClient removes the client and nulls the reference on every vehicle
// that pointed at it. Reports whether a client was removed.
func (r *DatasetRepository) DeleteClient(id int) bool {
	found := false
	clients := r.data.Clients[:0]
	for _, c := range r.data.Clients {
		if c.ID == id {
			found = true
			continue
		}
		clients = append(clients, c)
	}
	r.data.Clients = clients
	if !found {
		return false
	}
	for i := range r.data.Vehicles {
		if r.data.Vehicles[i].ClientID != nil && *r.data.Vehicles[i].ClientID == id {
			r.data.Vehicles[i].ClientID = nil
		}
	}
	return true
}

// Vehicles

func (r *DatasetRepository) Vehicles() []db.Vehicle {
	return r.data.Vehicles
}

func (r *DatasetRepository) FindVehicleByPlate(plate string) *db.Vehicle {
	for i := range r.data.Vehicles {
		if r.data.Vehicles[i].Plate == plate {
			return &r.data.Vehicles[i]
		}
	}
	return nil
}

func (r *DatasetRepository) FindVehicleByID(id int) *db.Vehicle {
	for i := range r.data.Vehicles {
		if r.data.Vehicles[i].ID == id {
			return &r.data.Vehicles[i]
		}
	}
	return nil
}

func (r *DatasetRepository) InsertVehicle(v db.Vehicle) *db.Vehicle {
	r.data.Counters.Vehicles++
	v.ID = r.data.Counters.Vehicles
	r.data.Vehicles = append(r.data.Vehicles, v)
	return &r.data.Vehicles[len(r.data.Vehicles)-1]
}

// Price rules

func (r *DatasetRepository) PriceRules() []db.PriceRule {
	return r.data.PriceRules
}

func (r *DatasetRepository) FindPriceRuleByID(id int) *db.PriceRule {
	for i := range r.data.PriceRules {
		if r.data.PriceRules[i].ID == id {
			return &r.data.PriceRules[i]
		}
	}
	return nil
}

func (r *DatasetRepository) InsertPriceRule(rule db.PriceRule) *db.PriceRule {
	r.data.Counters.PriceRules++
	rule.ID = r.data.Counters.PriceRules
	r.data.PriceRules = append(r.data.PriceRules, rule)
	return &r.data.PriceRules[len(r.data.PriceRules)-1]
}

// ActiveRule returns the single active price rule in id order, nil if none is
// active, or an invariant violation if a hand-edited dataset carries more
// than one.
func (r *DatasetRepository) ActiveRule() (*db.PriceRule, error) {
	var active *db.PriceRule
	for i := range r.data.PriceRules {
		if !r.data.PriceRules[i].Active() {
			continue
		}
		if active != nil {
			return nil, apperr.NewInvariantViolation(
				"more than one active price rule (ids %d and %d)", active.ID, r.data.PriceRules[i].ID)
		}
		active = &r.data.PriceRules[i]
	}
	return active, nil
}

// Stays

func (r *DatasetRepository) Stays() []db.Stay {
	return r.data.Stays
}

func (r *DatasetRepository) FindStayByID(id int) *db.Stay {
	for i := range r.data.Stays {
		if r.data.Stays[i].ID == id {
			return &r.data.Stays[i]
		}
	}
	return nil
}

// FindOpenStayByVehicle returns the vehicle's open stay, nil if none, or an
// invariant violation if more than one stay is open for it.
func (r *DatasetRepository) FindOpenStayByVehicle(vehicleID int) (*db.Stay, error) {
	var open *db.Stay
	for i := range r.data.Stays {
		if r.data.Stays[i].VehicleID != vehicleID || !r.data.Stays[i].Open() {
			continue
		}
		if open != nil {
			return nil, apperr.NewInvariantViolation(
				"more than one open stay for vehicle %d (stays %d and %d)", vehicleID, open.ID, r.data.Stays[i].ID)
		}
		open = &r.data.Stays[i]
	}
	return open, nil
}

func (r *DatasetRepository) CountOpenStays() int {
	count := 0
	for i := range r.data.Stays {
		if r.data.Stays[i].Open() {
			count++
		}
	}
	return count
}

func (r *DatasetRepository) InsertStay(s db.Stay) *db.Stay {
	r.data.Counters.Stays++
	s.ID = r.data.Counters.Stays
	r.data.Stays = append(r.data.Stays, s)
	return &r.data.Stays[len(r.data.Stays)-1]
}

// Cash shifts

func (r *DatasetRepository) CashShifts() []db.CashShift {
	return r.data.CashShifts
}

// OpenCashShift returns the currently open shift, nil if the till is closed,
// or an invariant violation if more than one shift is open.
func (r *DatasetRepository) OpenCashShift() (*db.CashShift, error) {
	var open *db.CashShift
	for i := range r.data.CashShifts {
		if !r.data.CashShifts[i].Open() {
			continue
		}
		if open != nil {
			return nil, apperr.NewInvariantViolation(
				"more than one open cash shift (ids %d and %d)", open.ID, r.data.CashShifts[i].ID)
		}
		open = &r.data.CashShifts[i]
	}
	return open, nil
}

func (r *DatasetRepository) InsertCashShift(s db.CashShift) *db.CashShift {
	r.data.Counters.CashShifts++
	s.ID = r.data.Counters.CashShifts
	r.data.CashShifts = append(r.data.CashShifts, s)
	return &r.data.CashShifts[len(r.data.CashShifts)-1]
}

// Payments

func (r *DatasetRepository) Payments() []db.Payment {
	return r.data.Payments
}

func (r *DatasetRepository) PaymentsByShift(shiftID int) []db.Payment {
	var out []db.Payment
	for _, p := range r.data.Payments {
		if p.CashShiftID != nil && *p.CashShiftID == shiftID {
			out = append(out, p)
		}
	}
	return out
}

func (r *DatasetRepository) InsertPayment(p db.Payment) *db.Payment {
	r.data.Counters.Payments++
	p.ID = r.data.Counters.Payments
	r.data.Payments = append(r.data.Payments, p)
	return &r.data.Payments[len(r.data.Payments)-1]
}
