package get_master_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/slotta-app/SlottaService/internal/api/handlers"
	"github.com/slotta-app/SlottaService/internal/api/middleware"
	"github.com/slotta-app/SlottaService/internal/domain"
	bookingsService "github.com/slotta-app/SlottaService/internal/service/bookings"
	"github.com/slotta-app/SlottaService/internal/service/bookings/models"
)

const (
	msgInvalidMasterID = "некорректный ID мастера"
	msgMasterRequired  = "требуется заголовок X-Master-ID"
	msgAccessDenied    = "можно смотреть только свое расписание"
	msgInvalidFilter   = "некорректные параметры фильтрации"
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

// Handle GET /api/v1/masters/{masterId}/bookings
//
// Query параметры:
//   - startDate, endDate: границы периода (YYYY-MM-DD)
//   - status: фильтр по статусу
//   - includeInactive: включить завершенные/отмененные
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.MasterID(r)
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgMasterRequired)
		return
	}

	masterID, err := strconv.ParseInt(mux.Vars(r)["masterId"], 10, 64)
	if err != nil || masterID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	if masterID != requesterID {
		h.logger.Warn("GET /masters/%d/bookings - Access denied for requester=%d", masterID, requesterID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	req := &models.GetMasterBookingsRequest{MasterID: masterID}

	query := r.URL.Query()
	if raw := query.Get("startDate"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.StartDate = &parsed
	}
	if raw := query.Get("endDate"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.EndDate = &parsed
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	req.IncludeInactive = query.Get("includeInactive") == "true"

	result, err := h.service.GetMasterBookings(r.Context(), req)
	if err != nil {
		if errors.Is(err, bookingsService.ErrInvalidInput) {
			h.logger.Warn("GET /masters/%d/bookings - Invalid input: %v", masterID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /masters/%d/bookings - Failed: error=%v", masterID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
