package reschedule_booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/slotta-app/SlottaService/internal/api/handlers"
	"github.com/slotta-app/SlottaService/internal/api/middleware"
	"github.com/slotta-app/SlottaService/internal/domain"
	rescheduleBooking "github.com/slotta-app/SlottaService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidDate        = "некорректный формат новой даты, ожидается ISO 8601"
	msgClientRequired     = "требуется заголовок X-Client-ID"
	msgBookingNotFound    = "бронирование не найдено"
	msgForbidden          = "бронирование принадлежит другому клиенту"
	msgTerminalStatus     = "бронирование уже в конечном статусе"
	msgDateNotInFuture    = "новая дата должна быть в будущем"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	NewDate string `json:"newDate"` // ISO 8601
}

// RescheduleBookingResponse HTTP response model
type RescheduleBookingResponse struct {
	ID                 int64  `json:"id"`
	Status             string `json:"status"`
	BookingDate        string `json:"bookingDate"`
	RescheduleDeadline string `json:"rescheduleDeadline"`
}

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.ClientID(r)
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgClientRequired)
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/%d/reschedule - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	newDate, err := time.Parse(domain.DateTimeFormat, req.NewDate)
	if err != nil {
		h.logger.Warn("PATCH /bookings/%d/reschedule - Failed to parse new date: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &rescheduleBooking.Request{
		BookingID: bookingID,
		ClientID:  clientID,
		NewDate:   newDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/%d/reschedule - Booking not found", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, rescheduleBooking.ErrForbidden):
			h.logger.Warn("PATCH /bookings/%d/reschedule - Forbidden for client_id=%d", bookingID, clientID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleBooking.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/%d/reschedule - Invalid transition", bookingID)
			handlers.RespondConflict(w, msgTerminalStatus)

		case errors.Is(err, rescheduleBooking.ErrInvalidDate):
			h.logger.Warn("PATCH /bookings/%d/reschedule - New date not in future: client_id=%d", bookingID, clientID)
			handlers.RespondBadRequest(w, msgDateNotInFuture)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/%d/reschedule - Invalid input: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /bookings/%d/reschedule - Failed: client_id=%d, error=%v", bookingID, clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/%d/reschedule - Rescheduled by client_id=%d to %s",
		bookingID, clientID, result.Booking.BookingDate.Format(domain.DateTimeFormat))
	handlers.RespondJSON(w, http.StatusOK, RescheduleBookingResponse{
		ID:                 result.Booking.ID,
		Status:             string(result.Booking.Status),
		BookingDate:        result.Booking.BookingDate.Format(domain.DateTimeFormat),
		RescheduleDeadline: result.Booking.RescheduleDeadline.Format(domain.DateTimeFormat),
	})
}
