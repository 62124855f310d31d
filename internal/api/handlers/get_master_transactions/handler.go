package get_master_transactions

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/slotta-app/SlottaService/internal/api/handlers"
	"github.com/slotta-app/SlottaService/internal/api/middleware"
	walletService "github.com/slotta-app/SlottaService/internal/service/wallet"
)

const (
	msgInvalidMasterID = "некорректный ID мастера"
	msgMasterRequired  = "требуется заголовок X-Master-ID"
	msgAccessDenied    = "можно смотреть только свои операции"
	msgInvalidPaging   = "некорректные параметры пагинации"
)

type Handler struct {
	service WalletService
	logger  Logger
}

func NewHandler(service WalletService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/masters/{masterId}/transactions
//
// Query параметры: limit (по умолчанию 50), offset
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
		h.logger.Warn("GET /masters/%d/transactions - Access denied for requester=%d", masterID, requesterID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	var limit, offset uint64
	query := r.URL.Query()
	if raw := query.Get("limit"); raw != "" {
		limit, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidPaging)
			return
		}
	}
	if raw := query.Get("offset"); raw != "" {
		offset, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidPaging)
			return
		}
	}

	result, err := h.service.GetMasterTransactions(r.Context(), masterID, limit, offset)
	if err != nil {
		if errors.Is(err, walletService.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidMasterID)
			return
		}
		h.logger.Error("GET /masters/%d/transactions - Failed: error=%v", masterID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
