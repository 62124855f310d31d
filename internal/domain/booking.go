package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending     BookingStatus = "pending"
	StatusConfirmed   BookingStatus = "confirmed"
	StatusCompleted   BookingStatus = "completed"
	StatusNoShow      BookingStatus = "no-show"
	StatusCancelled   BookingStatus = "cancelled"
	StatusRescheduled BookingStatus = "rescheduled"
)

// Booking represents a client's appointment with a master.
// Price and duration are snapshotted from the service at creation time,
// so later edits to the service never change an existing booking.
type Booking struct {
	ID        int64
	MasterID  int64
	ClientID  int64
	ServiceID int64

	BookingDate     time.Time
	DurationMinutes int

	// Pricing snapshot
	ServicePrice decimal.Decimal
	SlottaAmount decimal.Decimal

	Status BookingStatus

	// Payment hold (nullable: pay-later bookings carry no hold)
	PaymentHoldRef    *string
	PaymentAuthorized bool

	// Risk score computed once at creation, 0-100
	RiskScore int

	// Deadline for free cancellation/reschedule (booking date - 24h)
	RescheduleDeadline time.Time

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if the booking reached a final state
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted ||
		b.Status == StatusCancelled ||
		b.Status == StatusNoShow
}

// IsActive returns true if the booking still occupies the master's slot
func (b *Booking) IsActive() bool {
	return !b.IsTerminal()
}

// CanTransition returns true if lifecycle events (cancel/complete/no-show/
// reschedule) are still accepted. Rescheduled bookings stay open: the hold
// is kept and the booking can still complete, cancel or no-show.
func (b *Booking) CanTransition() bool {
	return b.Status == StatusPending ||
		b.Status == StatusConfirmed ||
		b.Status == StatusRescheduled
}

// HasPaymentHold returns true if an authorized hold backs this booking
func (b *Booking) HasPaymentHold() bool {
	return b.PaymentHoldRef != nil && *b.PaymentHoldRef != ""
}

// MasterBookingsFilter фильтр для выборки бронирований мастера
type MasterBookingsFilter struct {
	MasterID        int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли завершенные/отмененные бронирования
}
