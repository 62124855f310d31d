package mark_no_show

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/slotta-app/SlottaService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatusFrom(ctx context.Context, id int64, to domain.BookingStatus, from []domain.BookingStatus) error
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	IncrementCounters(ctx context.Context, id int64, delta domain.ClientCounterDelta) error
	CreditWallet(ctx context.Context, id int64, amount decimal.Decimal) error
	SetReliability(ctx context.Context, id int64, reliability domain.ClientReliability) error
}

// TransactionRepository интерфейс леджера движений средств
type TransactionRepository interface {
	Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error)
}

// PaymentHoldGateway интерфейс платежного шлюза холдов
type PaymentHoldGateway interface {
	Capture(ctx context.Context, holdRef string, amount decimal.Decimal) error
}

// NotificationDispatcher интерфейс диспетчера уведомлений
type NotificationDispatcher interface {
	BookingNoShow(ctx context.Context, booking *domain.Booking, masterCompensation, clientCredit decimal.Decimal)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
