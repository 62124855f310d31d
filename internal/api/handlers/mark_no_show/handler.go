package mark_no_show

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/slotta-app/SlottaService/internal/api/handlers"
	"github.com/slotta-app/SlottaService/internal/api/middleware"
	markNoShow "github.com/slotta-app/SlottaService/internal/usecase/mark_no_show"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMasterRequired   = "требуется заголовок X-Master-ID"
	msgBookingNotFound  = "бронирование не найдено"
	msgForbidden        = "бронирование принадлежит другому мастеру"
	msgTerminalStatus   = "бронирование уже в конечном статусе"
	msgPaymentGateway   = "не удалось захватить платежный холд, попробуйте позже"
)

// MarkNoShowResponse HTTP response model.
// Нулевые суммы означают, что депозит не резервировался.
type MarkNoShowResponse struct {
	ID                 int64  `json:"id"`
	Status             string `json:"status"`
	HoldCaptured       bool   `json:"holdCaptured"`
	MasterCompensation string `json:"masterCompensation"`
	ClientWalletCredit string `json:"clientWalletCredit"`
}

type Handler struct {
	useCase MarkNoShowUseCase
	logger  Logger
}

func NewHandler(useCase MarkNoShowUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/no-show
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

	result, err := h.useCase.Execute(r.Context(), &markNoShow.Request{
		BookingID: bookingID,
		MasterID:  masterID,
	})
	if err != nil {
		switch {
		case errors.Is(err, markNoShow.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/%d/no-show - Booking not found", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, markNoShow.ErrForbidden):
			h.logger.Warn("PATCH /bookings/%d/no-show - Forbidden for master_id=%d", bookingID, masterID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, markNoShow.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/%d/no-show - Invalid transition", bookingID)
			handlers.RespondConflict(w, msgTerminalStatus)

		case errors.Is(err, markNoShow.ErrPaymentGateway):
			h.logger.Error("PATCH /bookings/%d/no-show - Payment gateway failure: %v", bookingID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentGateway)

		case errors.Is(err, markNoShow.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/%d/no-show - Invalid input: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("PATCH /bookings/%d/no-show - Failed: master_id=%d, error=%v", bookingID, masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/%d/no-show - Marked by master_id=%d, captured=%t, master=%s, client=%s",
		bookingID, masterID, result.HoldCaptured,
		result.MasterCompensation.StringFixed(2), result.ClientWalletCredit.StringFixed(2))
	handlers.RespondJSON(w, http.StatusOK, MarkNoShowResponse{
		ID:                 result.Booking.ID,
		Status:             string(result.Booking.Status),
		HoldCaptured:       result.HoldCaptured,
		MasterCompensation: result.MasterCompensation.StringFixed(2),
		ClientWalletCredit: result.ClientWalletCredit.StringFixed(2),
	})
}
