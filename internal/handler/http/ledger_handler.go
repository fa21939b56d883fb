package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/bet-ledger-service/internal/ledger"
	"github.com/cypherlabdev/bet-ledger-service/internal/models"
	"github.com/cypherlabdev/bet-ledger-service/internal/service"
)

// LedgerHandler handles HTTP requests for the ledger. The caller's
// identity arrives pre-authenticated in the X-User-ID header; ownership
// of every touched row is still verified inside the engine.
type LedgerHandler struct {
	service *service.LedgerService
	logger  zerolog.Logger
}

// NewLedgerHandler creates a new ledger HTTP handler
func NewLedgerHandler(service *service.LedgerService, logger zerolog.Logger) *LedgerHandler {
	return &LedgerHandler{
		service: service,
		logger:  logger.With().Str("component", "ledger_handler").Logger(),
	}
}

// RegisterRoutes registers HTTP routes with the provided mux
func (h *LedgerHandler) RegisterRoutes(mux *http.ServeMux) {
	// POST/GET /api/v1/bankrolls
	mux.HandleFunc("/api/v1/bankrolls", h.handleBankrolls)

	// POST/GET /api/v1/operations
	mux.HandleFunc("/api/v1/operations", h.handleOperations)

	// PUT/DELETE /api/v1/operations/:id
	// POST /api/v1/operations/:id/settle
	// PATCH /api/v1/operations/:id/description
	mux.HandleFunc("/api/v1/operations/", h.handleOperationByID)

	// DELETE /api/v1/bets/:id
	// PATCH /api/v1/bets/:id/status
	mux.HandleFunc("/api/v1/bets/", h.handleBetByID)
}

func (h *LedgerHandler) handleBankrolls(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodPost:
		var req models.CreateBankrollRequest
		if !h.decode(w, r, &req) {
			return
		}
		req.UserID = userID

		id, err := h.service.CreateBankroll(r.Context(), req)
		if err != nil {
			h.ledgerError(w, err)
			return
		}
		h.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})

	case http.MethodGet:
		bankrolls, err := h.service.ListBankrolls(r.Context(), userID)
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to list bankrolls")
			h.errorResponse(w, http.StatusInternalServerError, "failed to list bankrolls")
			return
		}
		h.jsonResponse(w, http.StatusOK, map[string]interface{}{
			"count":     len(bankrolls),
			"bankrolls": bankrolls,
		})

	default:
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *LedgerHandler) handleOperations(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodPost:
		var req models.CreateOperationRequest
		if !h.decode(w, r, &req) {
			return
		}
		req.UserID = userID

		id, err := h.service.CreateOperation(r.Context(), req)
		if err != nil {
			h.ledgerError(w, err)
			return
		}
		h.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})

	case http.MethodGet:
		ops, err := h.service.ListOperations(r.Context(), userID)
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to list operations")
			h.errorResponse(w, http.StatusInternalServerError, "failed to list operations")
			return
		}
		h.jsonResponse(w, http.StatusOK, map[string]interface{}{
			"count":      len(ops),
			"operations": ops,
		})

	default:
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *LedgerHandler) handleOperationByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	// Parse path: /api/v1/operations/:id[/settle|/description]
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/operations/")
	parts := strings.Split(path, "/")
	if len(parts) < 1 || parts[0] == "" {
		h.errorResponse(w, http.StatusBadRequest, "operation id is required")
		return
	}

	operationID, err := uuid.Parse(parts[0])
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid operation id")
		return
	}

	switch {
	case len(parts) == 1 && r.Method == http.MethodPut:
		var req models.EditOperationRequest
		if !h.decode(w, r, &req) {
			return
		}
		req.UserID = userID
		req.OperationID = operationID

		if err := h.service.EditPendingOperation(r.Context(), req); err != nil {
			h.ledgerError(w, err)
			return
		}
		h.jsonResponse(w, http.StatusOK, map[string]string{"status": "updated"})

	case len(parts) == 1 && r.Method == http.MethodDelete:
		if err := h.service.DeleteOperation(r.Context(), userID, operationID); err != nil {
			h.ledgerError(w, err)
			return
		}
		h.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})

	case len(parts) == 2 && parts[1] == "settle" && r.Method == http.MethodPost:
		var req models.SettleOperationRequest
		if !h.decode(w, r, &req) {
			return
		}
		req.UserID = userID
		req.OperationID = operationID

		if err := h.service.SettleOperation(r.Context(), req); err != nil {
			h.ledgerError(w, err)
			return
		}
		h.jsonResponse(w, http.StatusOK, map[string]string{"status": "settled"})

	case len(parts) == 2 && parts[1] == "description" && r.Method == http.MethodPatch:
		var req struct {
			Description string `json:"description"`
		}
		if !h.decode(w, r, &req) {
			return
		}

		if err := h.service.UpdateOperationDescription(r.Context(), userID, operationID, strings.TrimSpace(req.Description)); err != nil {
			h.ledgerError(w, err)
			return
		}
		h.jsonResponse(w, http.StatusOK, map[string]string{"status": "updated"})

	default:
		h.errorResponse(w, http.StatusNotFound, "unknown route")
	}
}

func (h *LedgerHandler) handleBetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	// Parse path: /api/v1/bets/:id[/status]
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/bets/")
	parts := strings.Split(path, "/")
	if len(parts) < 1 || parts[0] == "" {
		h.errorResponse(w, http.StatusBadRequest, "bet id is required")
		return
	}

	legID, err := uuid.Parse(parts[0])
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid bet id")
		return
	}

	switch {
	case len(parts) == 1 && r.Method == http.MethodDelete:
		if err := h.service.DeleteLeg(r.Context(), userID, legID); err != nil {
			h.ledgerError(w, err)
			return
		}
		h.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})

	case len(parts) == 2 && parts[1] == "status" && r.Method == http.MethodPatch:
		var req struct {
			Status      models.BetStatus `json:"status"`
			ResultValue *decimal.Decimal `json:"result_value,omitempty"`
		}
		if !h.decode(w, r, &req) {
			return
		}

		if err := h.service.UpdateLegStatus(r.Context(), models.UpdateLegStatusRequest{
			UserID:      userID,
			LegID:       legID,
			Status:      req.Status,
			ResultValue: req.ResultValue,
		}); err != nil {
			h.ledgerError(w, err)
			return
		}
		h.jsonResponse(w, http.StatusOK, map[string]string{"status": "updated"})

	default:
		h.errorResponse(w, http.StatusNotFound, "unknown route")
	}
}

// userID extracts the authenticated caller from the X-User-ID header.
func (h *LedgerHandler) userID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := r.Header.Get("X-User-ID")
	if raw == "" {
		h.errorResponse(w, http.StatusUnauthorized, "X-User-ID header is required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.errorResponse(w, http.StatusUnauthorized, "invalid X-User-ID header")
		return uuid.Nil, false
	}
	return id, true
}

func (h *LedgerHandler) decode(w http.ResponseWriter, r *http.Request, out interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// ledgerError maps ledger failure kinds to HTTP statuses.
func (h *LedgerHandler) ledgerError(w http.ResponseWriter, err error) {
	switch {
	case ledger.IsValidation(err),
		errors.Is(err, ledger.ErrMissingOdds),
		errors.Is(err, ledger.ErrMissingReturn),
		errors.Is(err, ledger.ErrMissingWinningLeg),
		errors.Is(err, ledger.ErrEmptyOperation),
		errors.Is(err, ledger.ErrInvalidBankroll):
		h.errorResponse(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, ledger.ErrNotFound):
		h.errorResponse(w, http.StatusNotFound, err.Error())

	case errors.Is(err, ledger.ErrInsufficientBalance),
		errors.Is(err, ledger.ErrNotEditable),
		errors.Is(err, ledger.ErrBankrollExists):
		h.errorResponse(w, http.StatusConflict, err.Error())

	default:
		h.logger.Error().Err(err).Msg("ledger operation failed")
		h.errorResponse(w, http.StatusInternalServerError, "internal error")
	}
}

// jsonResponse writes a JSON response
func (h *LedgerHandler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes a JSON error response
func (h *LedgerHandler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{
		"error": message,
	})
}
