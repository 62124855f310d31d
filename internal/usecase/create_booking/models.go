package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/slotta-app/SlottaService/internal/domain"
)

// Request - запрос на создание бронирования с оплатой при визите.
// Сумма Slotta рассчитывается, но холд не выставляется.
type Request struct {
	ClientID    int64
	MasterID    int64
	ServiceID   int64
	BookingDate time.Time
	IsPeakSlot  bool
}

// RequestWithPayment - запрос на создание бронирования с предоплатой.
// Клиент разрешается по email (создается при отсутствии), холд
// выставляется до записи в БД.
type RequestWithPayment struct {
	ClientEmail string
	ClientName  string
	MasterID    int64
	ServiceID   int64
	BookingDate time.Time
	IsPeakSlot  bool
	CardToken   string
}

// Response - результат создания бронирования
type Response struct {
	Booking      *domain.Booking
	SlottaAmount decimal.Decimal
	RiskScore    int
}
