package service

import (
	"fmt"
	"strconv"

	"crvparking/internal/db"
	apperr "crvparking/internal/errors"
	"crvparking/internal/repository"
	"crvparking/internal/utils"

	"github.com/shopspring/decimal"
)

// FleetService is the registry of vehicles, clients and price rules.
type FleetService struct {
	repo *repository.DatasetRepository
}

func NewFleetService(repo *repository.DatasetRepository) *FleetService {
	return &FleetService{repo: repo}
}

// ResolveOrCreateVehicle looks a vehicle up by normalized plate, creating a
// bare record when none exists.
func (s *FleetService) ResolveOrCreateVehicle(plate string) (*db.Vehicle, error) {
	normalized := utils.NormalizePlate(plate)
	if normalized == "" {
		return nil, fmt.Errorf("plate is required")
	}
	if vehicle := s.repo.FindVehicleByPlate(normalized); vehicle != nil {
		return vehicle, nil
	}
	vehicle := s.repo.InsertVehicle(db.Vehicle{Plate: normalized})
	if err := s.repo.Flush(); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// CreateVehicle registers a vehicle with its details. A duplicate normalized
// plate is a no-op returning the existing vehicle.
func (s *FleetService) CreateVehicle(plate, model, color string, clientID *int) (*db.Vehicle, error) {
	normalized := utils.NormalizePlate(plate)
	if normalized == "" {
		return nil, fmt.Errorf("plate is required")
	}
	if existing := s.repo.FindVehicleByPlate(normalized); existing != nil {
		return existing, nil
	}
	if clientID != nil && s.repo.FindClientByID(*clientID) == nil {
		return nil, apperr.NewNotFound("client", strconv.Itoa(*clientID))
	}

	vehicle := s.repo.InsertVehicle(db.Vehicle{
		Plate:    normalized,
		Model:    model,
		Color:    color,
		ClientID: clientID,
	})
	if err := s.repo.Flush(); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *FleetService) Vehicles() []db.Vehicle {
	return s.repo.Vehicles()
}

func (s *FleetService) CreateClient(name, phone, notes string, isVip bool) (*db.Client, error) {
	if name == "" {
		return nil, fmt.Errorf("client name is required")
	}
	client := s.repo.InsertClient(db.Client{
		Name:  name,
		Phone: phone,
		Notes: notes,
		IsVip: isVip,
	})
	if err := s.repo.Flush(); err != nil {
		return nil, err
	}
	return client, nil
}

// DeleteClient removes the client. Vehicles that referenced it keep existing
// with the reference cleared.
func (s *FleetService) DeleteClient(id int) error {
	if !s.repo.DeleteClient(id) {
		return apperr.NewNotFound("client", strconv.Itoa(id))
	}
	return s.repo.Flush()
}

func (s *FleetService) Clients() []db.Client {
	return s.repo.Clients()
}

// CreatePriceRule adds a rule and makes it the active one, deactivating any
// other. dailyMax nil means the rule has no cap.
func (s *FleetService) CreatePriceRule(name string, firstHourValue decimal.Decimal, fractionMinutes int, fractionValue decimal.Decimal, dailyMax *decimal.Decimal) (*db.PriceRule, error) {
	if name == "" {
		return nil, fmt.Errorf("rule name is required")
	}
	if fractionMinutes <= 0 {
		return nil, fmt.Errorf("fraction minutes must be positive, got %d", fractionMinutes)
	}

	s.deactivateAll()
	rule := s.repo.InsertPriceRule(db.PriceRule{
		Name:            name,
		Status:          db.RuleStatusActive,
		FirstHourValue:  firstHourValue,
		FractionMinutes: fractionMinutes,
		FractionValue:   fractionValue,
		DailyMax:        dailyMax,
	})
	if err := s.repo.Flush(); err != nil {
		return nil, err
	}
	return rule, nil
}

// SetRuleActive activates or deactivates a rule. Activation is single-winner:
// every other rule is deactivated, so at most one rule is ever active.
func (s *FleetService) SetRuleActive(id int, active bool) (*db.PriceRule, error) {
	rule := s.repo.FindPriceRuleByID(id)
	if rule == nil {
		return nil, apperr.NewNotFound("price rule", strconv.Itoa(id))
	}

	if active {
		s.deactivateAll()
		rule.Status = db.RuleStatusActive
	} else {
		rule.Status = db.RuleStatusInactive
	}
	if err := s.repo.Flush(); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *FleetService) PriceRules() []db.PriceRule {
	return s.repo.PriceRules()
}

func (s *FleetService) deactivateAll() {
	rules := s.repo.PriceRules()
	for i := range rules {
		rules[i].Status = db.RuleStatusInactive
	}
}
