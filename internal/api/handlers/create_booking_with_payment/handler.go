package create_booking_with_payment

import (
	"errors"
	"net/http"

	"github.com/slotta-app/SlottaService/internal/api/handlers"
	createBooking "github.com/slotta-app/SlottaService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается ISO 8601"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceInactive    = "услуга недоступна для бронирования"
	msgDateNotInFuture    = "дата бронирования должна быть в будущем"
	msgPaymentDeclined    = "не удалось авторизовать платеж, бронирование не создано"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/with-payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingWithPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/with-payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings/with-payment - Failed to parse booking date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.ExecuteWithPayment(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings/with-payment - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrServiceInactive):
			h.logger.Warn("POST /bookings/with-payment - Service inactive: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings/with-payment - Booking date not in future: email=%s", req.ClientEmail)
			handlers.RespondBadRequest(w, msgDateNotInFuture)

		case errors.Is(err, createBooking.ErrPaymentAuthorization):
			h.logger.Warn("POST /bookings/with-payment - Payment declined: email=%s", req.ClientEmail)
			handlers.RespondError(w, http.StatusPaymentRequired, msgPaymentDeclined)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/with-payment - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/with-payment - Failed to create booking: email=%s, error=%v",
				req.ClientEmail, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/with-payment - Booking created: booking_id=%d, slotta=%s",
		result.Booking.ID, result.SlottaAmount.StringFixed(2))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
