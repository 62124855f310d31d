package complete_booking

import (
	"context"

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
	SetReliability(ctx context.Context, id int64, reliability domain.ClientReliability) error
}

// PaymentHoldGateway интерфейс платежного шлюза холдов
type PaymentHoldGateway interface {
	Release(ctx context.Context, holdRef string) error
}

// NotificationDispatcher интерфейс диспетчера уведомлений
type NotificationDispatcher interface {
	BookingCompleted(ctx context.Context, booking *domain.Booking)
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
