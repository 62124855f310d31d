package complete_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/slotta-app/SlottaService/internal/api/handlers"
	"github.com/slotta-app/SlottaService/internal/api/middleware"
	completeBooking "github.com/slotta-app/SlottaService/internal/usecase/complete_booking"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMasterRequired   = "требуется заголовок X-Master-ID"
	msgBookingNotFound  = "бронирование не найдено"
	msgForbidden        = "бронирование принадлежит другому мастеру"
	msgTerminalStatus   = "бронирование уже в конечном статусе"
	msgPaymentGateway   = "не удалось освободить платежный холд, попробуйте позже"
)

// CompleteBookingResponse HTTP response model
type CompleteBookingResponse struct {
	ID           int64  `json:"id"`
	Status       string `json:"status"`
	HoldReleased bool   `json:"holdReleased"`
}

type Handler struct {
	useCase CompleteBookingUseCase
	logger  Logger
}

func NewHandler(useCase CompleteBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	masterID, ok := middleware.MasterID(r)
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgMasterRequired)
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &completeBooking.Request{
		BookingID: bookingID,
		MasterID:  masterID,
	})
	if err != nil {
		switch {
		case errors.Is(err, completeBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/%d/complete - Booking not found", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, completeBooking.ErrForbidden):
			h.logger.Warn("PATCH /bookings/%d/complete - Forbidden for master_id=%d", bookingID, masterID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, completeBooking.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/%d/complete - Invalid transition", bookingID)
			handlers.RespondConflict(w, msgTerminalStatus)

		case errors.Is(err, completeBooking.ErrPaymentGateway):
			h.logger.Error("PATCH /bookings/%d/complete - Payment gateway failure: %v", bookingID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentGateway)

		case errors.Is(err, completeBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/%d/complete - Invalid input: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("PATCH /bookings/%d/complete - Failed: master_id=%d, error=%v", bookingID, masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/%d/complete - Completed by master_id=%d, hold_released=%t",
		bookingID, masterID, result.HoldReleased)
	handlers.RespondJSON(w, http.StatusOK, CompleteBookingResponse{
		ID:           result.Booking.ID,
		Status:       string(result.Booking.Status),
		HoldReleased: result.HoldReleased,
	})
}
