package cancel_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/slotta-app/SlottaService/internal/api/handlers"
	"github.com/slotta-app/SlottaService/internal/api/middleware"
	cancelBooking "github.com/slotta-app/SlottaService/internal/usecase/cancel_booking"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgClientRequired   = "требуется заголовок X-Client-ID"
	msgBookingNotFound  = "бронирование не найдено"
	msgForbidden        = "бронирование принадлежит другому клиенту"
	msgTerminalStatus   = "бронирование уже в конечном статусе"
	msgDeadlinePassed   = "срок бесплатной отмены истек, свяжитесь с мастером"
	msgPaymentGateway   = "не удалось освободить платежный холд, попробуйте позже"
)

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	ID           int64  `json:"id"`
	Status       string `json:"status"`
	HoldReleased bool   `json:"holdReleased"`
}

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
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

	result, err := h.useCase.Execute(r.Context(), &cancelBooking.Request{
		BookingID: bookingID,
		ClientID:  clientID,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/%d/cancel - Booking not found", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, cancelBooking.ErrForbidden):
			h.logger.Warn("PATCH /bookings/%d/cancel - Forbidden for client_id=%d", bookingID, clientID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, cancelBooking.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/%d/cancel - Invalid transition", bookingID)
			handlers.RespondConflict(w, msgTerminalStatus)

		case errors.Is(err, cancelBooking.ErrDeadlinePassed):
			h.logger.Warn("PATCH /bookings/%d/cancel - Deadline passed for client_id=%d", bookingID, clientID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgDeadlinePassed)

		case errors.Is(err, cancelBooking.ErrPaymentGateway):
			h.logger.Error("PATCH /bookings/%d/cancel - Payment gateway failure: %v", bookingID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentGateway)

		case errors.Is(err, cancelBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/%d/cancel - Invalid input: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("PATCH /bookings/%d/cancel - Failed: client_id=%d, error=%v", bookingID, clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/%d/cancel - Cancelled by client_id=%d, hold_released=%t",
		bookingID, clientID, result.HoldReleased)
	handlers.RespondJSON(w, http.StatusOK, CancelBookingResponse{
		ID:           result.Booking.ID,
		Status:       string(result.Booking.Status),
		HoldReleased: result.HoldReleased,
	})
}
