package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientReliability is a derived classification of a client's booking history.
// It is never set directly by callers: lifecycle events (completion, no-show)
// recompute it from the counters.
type ClientReliability string

const (
	ReliabilityNew              ClientReliability = "new"
	ReliabilityReliable         ClientReliability = "reliable"
	ReliabilityNeedsProtection  ClientReliability = "needs-protection"
)

// Client represents a booking client with their historical counters.
// Counters are monotonically non-decreasing and are incremented atomically
// in storage (col = col + 1), never read-modify-write.
type Client struct {
	ID    int64
	Email string
	Name  string
	Phone *string

	TotalBookings     int
	CompletedBookings int
	NoShows           int
	Cancellations     int

	Reliability   ClientReliability
	WalletBalance decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClientCounterDelta набор инкрементов счетчиков клиента.
// Нулевые поля не изменяют соответствующий счетчик.
type ClientCounterDelta struct {
	TotalBookings     int
	CompletedBookings int
	NoShows           int
	Cancellations     int
}
