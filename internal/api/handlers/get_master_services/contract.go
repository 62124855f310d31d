package get_master_services

import (
	"context"

	"github.com/slotta-app/SlottaService/internal/service/catalog/models"
)

// CatalogService интерфейс сервиса каталога услуг
type CatalogService interface {
	GetMasterServices(ctx context.Context, masterID int64, activeOnly bool) (*models.ServiceListResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
