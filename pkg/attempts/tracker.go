// Package attempts отслеживает неудачные попытки входа для защиты от перебора.
// Хранилище подменяемое: in-memory для одного инстанса, Redis для нескольких.
package attempts

import (
	"context"
	"time"
)

// Tracker интерфейс хранилища попыток входа
type Tracker interface {
	// Record фиксирует неудачную попытку для ключа (обычно "ip:email")
	Record(ctx context.Context, key string) error
	// IsBlocked возвращает true, если ключ заблокирован
	IsBlocked(ctx context.Context, key string) (bool, error)
	// Clear сбрасывает счетчик попыток (после успешного входа)
	Clear(ctx context.Context, key string) error
}

// Policy параметры блокировки
type Policy struct {
	MaxAttempts int           // количество попыток до блокировки
	Window      time.Duration // окно, в котором считаются попытки
	BlockFor    time.Duration // длительность блокировки
}

// DefaultPolicy политика по умолчанию: 5 попыток за 15 минут, блокировка на 15 минут
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 5,
		Window:      15 * time.Minute,
		BlockFor:    15 * time.Minute,
	}
}
