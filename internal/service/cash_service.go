package service

import (
	"sort"
	"time"

	"crvparking/internal/db"
	"crvparking/internal/entities"
	"crvparking/internal/repository"

	"github.com/shopspring/decimal"
)

// CashService tracks cash register shifts and attributes payments to the
// shift open at payment time. At most one shift is open at once.
type CashService struct {
	repo     *repository.DatasetRepository
	notifier *NotifyService
	now      func() time.Time
}

func NewCashService(repo *repository.DatasetRepository, notifier *NotifyService) *CashService {
	return &CashService{repo: repo, notifier: notifier, now: time.Now}
}

// OpenShift opens a cash shift with the given initial float. Opening while
// one is already open is a no-op returning the existing shift.
func (s *CashService) OpenShift(initialAmount decimal.Decimal) (*db.CashShift, error) {
	open, err := s.repo.OpenCashShift()
	if err != nil {
		return nil, err
	}
	if open != nil {
		return open, nil
	}

	shift := s.repo.InsertCashShift(db.CashShift{
		OpenedAt:      s.now().UTC(),
		InitialAmount: initialAmount,
	})
	if err := s.repo.Flush(); err != nil {
		return nil, err
	}
	return shift, nil
}

// CloseShift closes the open shift, if any, and sends the shift summary to
// the configured report address. Closing with no open shift is a no-op
// returning nil.
func (s *CashService) CloseShift() (*db.CashShift, error) {
	open, err := s.repo.OpenCashShift()
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, nil
	}

	report, err := s.reportFor(open)
	if err != nil {
		return nil, err
	}

	closedAt := s.now().UTC()
	open.ClosedAt = &closedAt
	if err := s.repo.Flush(); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		report.Shift = *open
		s.notifier.ShiftClosed(report)
	}
	return open, nil
}

func (s *CashService) CurrentOpenShift() (*db.CashShift, error) {
	return s.repo.OpenCashShift()
}

// RecordPayment records a payment for a stay. The payment is attributed to
// the currently open shift, or left unattributed when the till is closed.
func (s *CashService) RecordPayment(stayID int, amount decimal.Decimal, method string) (*db.Payment, error) {
	payment, err := s.appendPayment(stayID, amount, method, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Flush(); err != nil {
		return nil, err
	}
	return payment, nil
}

// appendPayment mutates the dataset without persisting, so the exit flow can
// close the stay and record its payment under a single flush.
func (s *CashService) appendPayment(stayID int, amount decimal.Decimal, method string, paidAt time.Time) (*db.Payment, error) {
	open, err := s.repo.OpenCashShift()
	if err != nil {
		return nil, err
	}
	var shiftID *int
	if open != nil {
		id := open.ID
		shiftID = &id
	}

	return s.repo.InsertPayment(db.Payment{
		StayID:      stayID,
		PaidAt:      paidAt,
		Method:      method,
		Amount:      amount,
		CashShiftID: shiftID,
	}), nil
}

// ShiftReport summarizes the currently open shift, or returns nil when the
// till is closed.
func (s *CashService) ShiftReport() (*entities.ShiftReport, error) {
	open, err := s.repo.OpenCashShift()
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, nil
	}
	return s.reportFor(open)
}

func (s *CashService) reportFor(shift *db.CashShift) (*entities.ShiftReport, error) {
	payments := s.repo.PaymentsByShift(shift.ID)
	sort.Slice(payments, func(i, j int) bool {
		return payments[i].PaidAt.After(payments[j].PaidAt)
	})

	report := &entities.ShiftReport{Shift: *shift, Total: decimal.Zero}
	for _, p := range payments {
		row := entities.ShiftPaymentRow{
			PaidAt: p.PaidAt,
			Method: p.Method,
			Amount: p.Amount,
		}
		if stay := s.repo.FindStayByID(p.StayID); stay != nil {
			row.RuleDesc = stay.RuleDesc
			if vehicle := s.repo.FindVehicleByID(stay.VehicleID); vehicle != nil {
				row.Plate = vehicle.Plate
			}
		}
		report.Rows = append(report.Rows, row)
		report.Total = report.Total.Add(p.Amount)
	}
	return report, nil
}
