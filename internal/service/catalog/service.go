package catalog

import (
	"context"
	"errors"
	"fmt"

	serviceRepo "github.com/slotta-app/SlottaService/internal/infra/storage/service"
	"github.com/slotta-app/SlottaService/internal/service/catalog/models"
)

// Service сервис каталога услуг мастеров
type Service struct {
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// GetByID получает услугу по ID. Каталог публичный, проверка владельца
// не требуется.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	s.logger.Info("GetByID: fetching service id=%d", id)

	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("GetByID: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetByID: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(svc), nil
}

// GetMasterServices получает список услуг мастера. По умолчанию
// возвращаются только активные услуги.
func (s *Service) GetMasterServices(ctx context.Context, masterID int64, activeOnly bool) (*models.ServiceListResponse, error) {
	s.logger.Info("GetMasterServices: fetching services for master=%d, activeOnly=%t", masterID, activeOnly)

	if masterID <= 0 {
		return nil, fmt.Errorf("%w: masterID must be positive", ErrInvalidInput)
	}

	services, err := s.serviceRepo.ListByMaster(ctx, masterID, activeOnly)
	if err != nil {
		s.logger.Error("GetMasterServices: repository error for master=%d: %v", masterID, err)
		return nil, fmt.Errorf("%w: GetMasterServices - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMasterServices: fetched %d services for master=%d", len(services), masterID)
	return models.FromDomainServiceList(services), nil
}
