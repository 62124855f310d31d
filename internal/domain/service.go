package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service represents a master's offering. Price and duration are copied
// onto the booking at creation, so a service can be edited or deactivated
// without touching existing bookings.
type Service struct {
	ID              int64
	MasterID        int64
	Name            string
	Description     *string
	DurationMinutes int
	Price           decimal.Decimal
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
