package get_master_analytics

import (
	"context"

	"github.com/slotta-app/SlottaService/internal/service/wallet/models"
)

type WalletService interface {
	GetMasterAnalytics(ctx context.Context, masterID int64) (*models.AnalyticsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
