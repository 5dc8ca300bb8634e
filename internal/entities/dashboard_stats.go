package entities

import "github.com/shopspring/decimal"

// DashboardStats are the figures of the landing view, all for the current
// day.
type DashboardStats struct {
	OpenStays          int
	FreeSpots          int
	TotalSpots         int
	RevenueToday       decimal.Decimal
	AverageTicket      decimal.Decimal
	AverageStayMinutes int
}
