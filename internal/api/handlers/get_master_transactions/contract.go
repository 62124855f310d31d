package get_master_transactions

import (
	"context"

	"github.com/slotta-app/SlottaService/internal/service/wallet/models"
)

type WalletService interface {
	GetMasterTransactions(ctx context.Context, masterID int64, limit, offset uint64) (*models.TransactionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
