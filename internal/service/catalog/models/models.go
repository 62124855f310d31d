package models

import (
	"time"

	"github.com/slotta-app/SlottaService/internal/domain"
)

// ServiceResponse ответ с данными услуги мастера.
// Цена сериализуется строкой с двумя знаками после запятой.
type ServiceResponse struct {
	ID              int64   `json:"id"`
	MasterID        int64   `json:"masterId"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           string  `json:"price"`
	Active          bool    `json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг мастера
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}

	return &ServiceResponse{
		ID:              s.ID,
		MasterID:        s.MasterID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price.StringFixed(2),
		Active:          s.Active,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	result := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		result = append(result, *FromDomainService(s))
	}
	return &ServiceListResponse{Services: result}
}
