package db

import (
	"time"

	"github.com/shopspring/decimal"
)

// Price rule states
const (
	RuleStatusActive   = "active"
	RuleStatusInactive = "inactive"
)

// Payment methods accepted at the till
const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"
	PaymentMethodPix  = "pix"
)

func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodPix:
		return true
	}
	return false
}

type Settings struct {
	TotalSpots int `json:"totalSpots"`
}

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}

type Client struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
	IsVip bool   `json:"isVip"`
}

// Vehicle is deduplicated by its normalized plate. ClientID is a weak
// reference: deleting the client sets it back to nil.
type Vehicle struct {
	ID       int    `json:"id"`
	Plate    string `json:"plate"`
	Model    string `json:"model"`
	Color    string `json:"color"`
	ClientID *int   `json:"clientId"`
}

type PriceRule struct {
	ID              int              `json:"id"`
	Name            string           `json:"name"`
	Status          string           `json:"status"`
	FirstHourValue  decimal.Decimal  `json:"firstHourValue"`
	FractionMinutes int              `json:"fractionMinutes"`
	FractionValue   decimal.Decimal  `json:"fractionValue"`
	DailyMax        *decimal.Decimal `json:"dailyMax"`
}

func (r PriceRule) Active() bool {
	return r.Status == RuleStatusActive
}

// Stay is a single vehicle permanence. It is created open (ExitAt nil) and
// closed exactly once; Minutes, Amount and RuleDesc are only meaningful on a
// closed stay.
type Stay struct {
	ID        int             `json:"id"`
	VehicleID int             `json:"vehicleId"`
	EntryAt   time.Time       `json:"entryAt"`
	ExitAt    *time.Time      `json:"exitAt"`
	Minutes   *int            `json:"minutes"`
	Amount    decimal.Decimal `json:"amount"`
	RuleDesc  string          `json:"ruleDesc"`
}

func (s Stay) Open() bool {
	return s.ExitAt == nil
}

type CashShift struct {
	ID            int             `json:"id"`
	OpenedAt      time.Time       `json:"openedAt"`
	ClosedAt      *time.Time      `json:"closedAt"`
	InitialAmount decimal.Decimal `json:"initialAmount"`
}

func (s CashShift) Open() bool {
	return s.ClosedAt == nil
}

// Payment is created once per stay closure. CashShiftID is the shift open at
// payment time, or nil when the payment was taken with the till closed.
type Payment struct {
	ID          int             `json:"id"`
	StayID      int             `json:"stayId"`
	PaidAt      time.Time       `json:"paidAt"`
	Method      string          `json:"method"`
	Amount      decimal.Decimal `json:"amount"`
	CashShiftID *int            `json:"cashShiftId"`
}

// Counters hold the last assigned id per entity type. Ids are monotonic and
// never reused, even after deletions.
type Counters struct {
	Users      int `json:"users"`
	Clients    int `json:"clients"`
	Vehicles   int `json:"vehicles"`
	PriceRules int `json:"priceRules"`
	Stays      int `json:"stays"`
	CashShifts int `json:"cashShifts"`
	Payments   int `json:"payments"`
}

// Dataset is the whole persisted state of one parking location. It is loaded
// and saved as a single blob; see the store package.
type Dataset struct {
	Settings   Settings    `json:"settings"`
	Counters   Counters    `json:"counters"`
	Users      []User      `json:"users"`
	Clients    []Client    `json:"clients"`
	Vehicles   []Vehicle   `json:"vehicles"`
	PriceRules []PriceRule `json:"priceRules"`
	Stays      []Stay      `json:"stays"`
	CashShifts []CashShift `json:"cashShifts"`
	Payments   []Payment   `json:"payments"`
}
