package get_master_wallet

import (
	"context"

	"github.com/slotta-app/SlottaService/internal/service/wallet/models"
)

type WalletService interface {
	GetMasterWallet(ctx context.Context, masterID int64) (*models.WalletResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
