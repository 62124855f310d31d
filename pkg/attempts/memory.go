package attempts

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	times        []time.Time
	blockedUntil time.Time
}

// MemoryTracker потокобезопасное in-memory хранилище попыток.
// Подходит для одного инстанса сервиса; для нескольких нужен RedisTracker.
type MemoryTracker struct {
	mu      sync.Mutex
	policy  Policy
	entries map[string]*entry
	now     func() time.Time
}

// NewMemoryTracker создает in-memory трекер попыток
func NewMemoryTracker(policy Policy) *MemoryTracker {
	return &MemoryTracker{
		policy:  policy,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Record фиксирует неудачную попытку
func (t *MemoryTracker) Record(_ context.Context, key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	e, ok := t.entries[key]
	if !ok {
		e = &entry{}
		t.entries[key] = e
	}

	// Отбрасываем попытки вне окна
	cutoff := now.Add(-t.policy.Window)
	kept := e.times[:0]
	for _, ts := range e.times {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	e.times = append(kept, now)

	if len(e.times) >= t.policy.MaxAttempts {
		e.blockedUntil = now.Add(t.policy.BlockFor)
	}
	return nil
}

// IsBlocked возвращает true, если ключ сейчас заблокирован
func (t *MemoryTracker) IsBlocked(_ context.Context, key string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[key]
	if !ok {
		return false, nil
	}
	if e.blockedUntil.IsZero() {
		return false, nil
	}
	if t.now().After(e.blockedUntil) {
		delete(t.entries, key)
		return false, nil
	}
	return true, nil
}

// Clear сбрасывает счетчик попыток
func (t *MemoryTracker) Clear(_ context.Context, key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, key)
	return nil
}
