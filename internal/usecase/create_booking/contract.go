package create_booking

import (
	"context"
	"time"

	"github.com/slotta-app/SlottaService/internal/domain"
	"github.com/slotta-app/SlottaService/internal/integrations/omisepay"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	GetByEmail(ctx context.Context, email string) (*domain.Client, error)
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
	IncrementCounters(ctx context.Context, id int64, delta domain.ClientCounterDelta) error
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// PaymentHoldGateway интерфейс платежного шлюза холдов
type PaymentHoldGateway interface {
	Authorize(ctx context.Context, req omisepay.AuthorizeRequest) (string, error)
	Release(ctx context.Context, holdRef string) error
}

// NotificationDispatcher интерфейс диспетчера уведомлений.
// Вызывается после успешного перехода, ошибки не влияют на результат.
type NotificationDispatcher interface {
	BookingCreated(ctx context.Context, booking *domain.Booking)
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
