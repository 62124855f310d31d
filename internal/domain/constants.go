package domain

import "time"

// Policy constants
const (
	// RescheduleWindow насколько заранее можно бесплатно отменить или
	// перенести бронирование
	RescheduleWindow = 24 * time.Hour
)

// Business validation constants
const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 480 // 8 hours
	MaxNotesLength     = 500
)

// Time format constants
const (
	DateFormat     = "2006-01-02" // YYYY-MM-DD
	DateTimeFormat = time.RFC3339
)

// TerminalStatuses статусы, из которых нет переходов
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// TransitionableStatuses статусы, из которых разрешены события жизненного цикла
// Используется как precondition при обновлении статуса в хранилище
var TransitionableStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusRescheduled,
}
