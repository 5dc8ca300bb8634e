package service

import (
	"fmt"
	"time"

	"crvparking/internal/db"
	"crvparking/internal/entities"
	apperr "crvparking/internal/errors"
	"crvparking/internal/repository"
	"crvparking/internal/utils"

	"github.com/shopspring/decimal"
)

// StayService drives the vehicle permanence lifecycle: entries open a stay,
// exits price it and record the payment.
type StayService struct {
	repo     *repository.DatasetRepository
	cash     *CashService
	notifier *NotifyService
	now      func() time.Time
}

func NewStayService(repo *repository.DatasetRepository, cash *CashService, notifier *NotifyService) *StayService {
	return &StayService{repo: repo, cash: cash, notifier: notifier, now: time.Now}
}

// RecordEntry resolves or creates the vehicle for the plate and opens a stay
// for it. If the vehicle already has an open stay the call is a no-op
// returning that stay.
func (s *StayService) RecordEntry(plate string) (*db.Stay, error) {
	normalized := utils.NormalizePlate(plate)
	if normalized == "" {
		return nil, fmt.Errorf("plate is required")
	}

	vehicle := s.repo.FindVehicleByPlate(normalized)
	if vehicle == nil {
		vehicle = s.repo.InsertVehicle(db.Vehicle{Plate: normalized})
	}

	open, err := s.repo.FindOpenStayByVehicle(vehicle.ID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return open, nil
	}

	stay := s.repo.InsertStay(db.Stay{
		VehicleID: vehicle.ID,
		EntryAt:   s.now().UTC(),
		Amount:    decimal.Zero,
	})
	if err := s.repo.Flush(); err != nil {
		return nil, err
	}
	return stay, nil
}

// RecordExit closes the open stay for the plate: it prices the stay under the
// active rule, writes exit time, minutes, amount and rule description, and
// records the payment against whatever shift is open. Stay close and payment
// are persisted together in one save.
func (s *StayService) RecordExit(plate, method string) (*entities.ExitResult, error) {
	normalized := utils.NormalizePlate(plate)

	vehicle := s.repo.FindVehicleByPlate(normalized)
	if vehicle == nil {
		return nil, apperr.NewNotFound("vehicle", normalized)
	}

	stay, err := s.repo.FindOpenStayByVehicle(vehicle.ID)
	if err != nil {
		return nil, err
	}
	if stay == nil {
		return nil, &apperr.NoOpenStayError{Plate: normalized}
	}

	rule, err := s.repo.ActiveRule()
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, &apperr.NoActiveRuleError{}
	}

	exitAt := s.now().UTC()
	fee := ComputeFee(*rule, stay.EntryAt, exitAt)

	stay.ExitAt = &exitAt
	stay.Minutes = &fee.Minutes
	stay.Amount = fee.Amount
	stay.RuleDesc = fee.Description

	payment, err := s.cash.appendPayment(stay.ID, fee.Amount, method, exitAt)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Flush(); err != nil {
		return nil, err
	}

	if s.notifier != nil && vehicle.ClientID != nil {
		if client := s.repo.FindClientByID(*vehicle.ClientID); client != nil {
			s.notifier.ExitReceipt(*client, vehicle.Plate, fee)
		}
	}

	return &entities.ExitResult{Stay: *stay, Payment: *payment}, nil
}
