package get_client_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/slotta-app/SlottaService/internal/api/handlers"
	"github.com/slotta-app/SlottaService/internal/api/middleware"
	bookingsService "github.com/slotta-app/SlottaService/internal/service/bookings"
	"github.com/slotta-app/SlottaService/internal/service/bookings/models"
)

const (
	msgInvalidClientID = "некорректный ID клиента"
	msgClientRequired  = "требуется заголовок X-Client-ID"
	msgAccessDenied    = "можно смотреть только свои бронирования"
	msgInvalidStatus   = "некорректный статус бронирования"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clients/{clientId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.ClientID(r)
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgClientRequired)
		return
	}

	clientID, err := strconv.ParseInt(mux.Vars(r)["clientId"], 10, 64)
	if err != nil || clientID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	if clientID != requesterID {
		h.logger.Warn("GET /clients/%d/bookings - Access denied for requester=%d", clientID, requesterID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	req := &models.GetClientBookingsRequest{ClientID: clientID}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetClientBookings(r.Context(), req)
	if err != nil {
		if errors.Is(err, bookingsService.ErrInvalidInput) {
			h.logger.Warn("GET /clients/%d/bookings - Invalid input: %v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /clients/%d/bookings - Failed: error=%v", clientID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
