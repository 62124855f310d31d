package reschedule_booking

import (
	"time"

	"github.com/slotta-app/SlottaService/internal/domain"
)

// Request - запрос клиента на перенос бронирования
type Request struct {
	BookingID int64
	ClientID  int64
	NewDate   time.Time
}

// Response - результат переноса бронирования
type Response struct {
	Booking *domain.Booking
}
