package mark_no_show

import (
	"github.com/shopspring/decimal"

	"github.com/slotta-app/SlottaService/internal/domain"
)

// Request - запрос мастера на пометку неявки клиента
type Request struct {
	BookingID int64
	MasterID  int64
}

// Response - результат пометки неявки.
// Для бронирований без холда суммы нулевые: депозит не резервировался,
// захватывать нечего.
type Response struct {
	Booking            *domain.Booking
	HoldCaptured       bool
	MasterCompensation decimal.Decimal
	ClientWalletCredit decimal.Decimal
}
