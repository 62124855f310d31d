package get_master_services

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/slotta-app/SlottaService/internal/api/handlers"
	"github.com/slotta-app/SlottaService/internal/api/middleware"
	catalogService "github.com/slotta-app/SlottaService/internal/service/catalog"
)

const (
	msgInvalidMasterID = "некорректный ID мастера"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/masters/{masterId}/services
//
// Каталог услуг доступен любой аутентифицированной стороне.
// Деактивированные услуги видит только сам мастер
// (?includeInactive=true при совпадении X-Master-ID).
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	masterID, err := strconv.ParseInt(mux.Vars(r)["masterId"], 10, 64)
	if err != nil || masterID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	activeOnly := true
	if r.URL.Query().Get("includeInactive") == "true" {
		requesterID, ok := middleware.MasterID(r)
		if ok && requesterID == masterID {
			activeOnly = false
		}
	}

	result, err := h.service.GetMasterServices(r.Context(), masterID, activeOnly)
	if err != nil {
		if errors.Is(err, catalogService.ErrInvalidInput) {
			h.logger.Warn("GET /masters/%d/services - Invalid input: %v", masterID, err)
			handlers.RespondBadRequest(w, msgInvalidMasterID)
			return
		}
		h.logger.Error("GET /masters/%d/services - Failed: error=%v", masterID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
