package wallet

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/slotta-app/SlottaService/internal/domain"
)

// TransactionRepository интерфейс леджера движений средств
type TransactionRepository interface {
	GetByMasterID(ctx context.Context, masterID int64, limit, offset uint64) ([]*domain.Transaction, error)
	SumByMasterAndType(ctx context.Context, masterID int64, txType domain.TransactionType) (decimal.Decimal, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	StatusCounts(ctx context.Context, masterID int64) (map[domain.BookingStatus]int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
