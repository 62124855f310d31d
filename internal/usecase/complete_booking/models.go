package complete_booking

import "github.com/slotta-app/SlottaService/internal/domain"

// Request - запрос на завершение визита
type Request struct {
	BookingID int64
	MasterID  int64
}

// Response - результат завершения визита
type Response struct {
	Booking      *domain.Booking
	HoldReleased bool
}
