package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/slotta-app/SlottaService/internal/domain"
	bookingRepo "github.com/slotta-app/SlottaService/internal/infra/storage/booking"
	"github.com/slotta-app/SlottaService/internal/service/bookings/models"
)

// Service сервис для чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Доступ имеют только мастер и клиент этого бронирования.
func (s *Service) GetByID(ctx context.Context, id, requesterID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for requester=%d", id, requesterID)

	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.MasterID != requesterID && booking.ClientID != requesterID {
		s.logger.Warn("GetByID: access denied for requester=%d to booking id=%d", requesterID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetClientBookings получает историю бронирований клиента.
// Опционально фильтрует по статусу.
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%d, status=%v", req.ClientID, req.Status)

	if req.ClientID <= 0 {
		return nil, fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientBookings: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: fetched %d bookings for client=%d", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings), nil
}

// GetMasterBookings получает бронирования мастера с фильтрацией по периоду
// и статусу. По умолчанию возвращаются только открытые бронирования,
// IncludeInactive добавляет завершенные, отмененные и неявки.
func (s *Service) GetMasterBookings(ctx context.Context, req *models.GetMasterBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetMasterBookings: fetching bookings for master=%d", req.MasterID)

	if req.MasterID <= 0 {
		return nil, fmt.Errorf("%w: masterID must be positive", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetMasterBookings: invalid filter for master=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.GetByMasterWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetMasterBookings: repository error for master=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: GetMasterBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMasterBookings: fetched %d bookings for master=%d", len(bookings), req.MasterID)
	return models.FromDomainBookingList(bookings), nil
}
