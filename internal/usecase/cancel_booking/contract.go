package cancel_booking

import (
	"context"
	"time"

	"github.com/slotta-app/SlottaService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatusFrom(ctx context.Context, id int64, to domain.BookingStatus, from []domain.BookingStatus) error
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	IncrementCounters(ctx context.Context, id int64, delta domain.ClientCounterDelta) error
}

// PaymentHoldGateway интерфейс платежного шлюза холдов
type PaymentHoldGateway interface {
	Release(ctx context.Context, holdRef string) error
}

// NotificationDispatcher интерфейс диспетчера уведомлений
type NotificationDispatcher interface {
	BookingCancelled(ctx context.Context, booking *domain.Booking)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
