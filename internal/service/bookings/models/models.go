package models

import (
	"errors"
	"time"

	"github.com/slotta-app/SlottaService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetClientBookingsRequest запрос на получение бронирований клиента
type GetClientBookingsRequest struct {
	ClientID int64   `json:"clientId"`
	Status   *string `json:"status,omitempty"`
}

// GetMasterBookingsRequest запрос на получение бронирований мастера
type GetMasterBookingsRequest struct {
	MasterID        int64      `json:"masterId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить завершенные/отмененные
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetMasterBookingsRequest) ToDomainFilter() (domain.MasterBookingsFilter, error) {
	filter := domain.MasterBookingsFilter{
		MasterID:        r.MasterID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования.
// Денежные суммы сериализуются строками с двумя знаками после запятой.
type BookingResponse struct {
	ID              int64  `json:"id"`
	MasterID        int64  `json:"masterId"`
	ClientID        int64  `json:"clientId"`
	ServiceID       int64  `json:"serviceId"`
	BookingDate     string `json:"bookingDate"` // ISO 8601
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	ServicePrice string `json:"servicePrice"`
	SlottaAmount string `json:"slottaAmount"`

	PaymentHeld        bool   `json:"paymentHeld"`
	RiskScore          int    `json:"riskScore"`
	RescheduleDeadline string `json:"rescheduleDeadline"` // ISO 8601

	Notes *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                 b.ID,
		MasterID:           b.MasterID,
		ClientID:           b.ClientID,
		ServiceID:          b.ServiceID,
		BookingDate:        b.BookingDate.Format(domain.DateTimeFormat),
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		ServicePrice:       b.ServicePrice.StringFixed(2),
		SlottaAmount:       b.SlottaAmount.StringFixed(2),
		PaymentHeld:        b.HasPaymentHold(),
		RiskScore:          b.RiskScore,
		RescheduleDeadline: b.RescheduleDeadline.Format(domain.DateTimeFormat),
		Notes:              b.Notes,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, *FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: result}
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(s) {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCompleted,
		domain.StatusNoShow, domain.StatusCancelled, domain.StatusRescheduled:
		return domain.BookingStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
