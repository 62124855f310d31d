package cancel_booking

import "github.com/slotta-app/SlottaService/internal/domain"

// Request - запрос на отмену бронирования клиентом
type Request struct {
	BookingID int64
	ClientID  int64
}

// Response - результат отмены бронирования
type Response struct {
	Booking      *domain.Booking
	HoldReleased bool
}
