package get_master_wallet

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
	msgAccessDenied    = "можно смотреть только свой кошелек"
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

// Handle GET /api/v1/masters/{masterId}/wallet
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
		h.logger.Warn("GET /masters/%d/wallet - Access denied for requester=%d", masterID, requesterID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	result, err := h.service.GetMasterWallet(r.Context(), masterID)
	if err != nil {
		if errors.Is(err, walletService.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidMasterID)
			return
		}
		h.logger.Error("GET /masters/%d/wallet - Failed: error=%v", masterID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
