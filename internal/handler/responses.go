package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Kind    string `json:"error_kind"`
	Message string `json:"message"`
}

// bufferPool is a pool of bytes.Buffer to reduce allocations during JSON encoding
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	// Encode before writing headers so an encoding failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error_kind":"internal","message":"` + ErrMsgGenericServerError + `"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, kind, message string) {
	respondJSON(w, status, ErrorResponse{Kind: kind, Message: message})
}

// respondServiceError maps err and writes it
func respondServiceError(w http.ResponseWriter, err error) {
	status, kind, msg := mapServiceError(err)
	respondError(w, status, kind, msg)
}

// mapServiceError converts a service error to a status, an error kind and a message safe to show players.
// Anything unrecognised is a 500 with a generic message.
func mapServiceError(err error) (int, string, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, KindInternal, ErrMsgGenericServerError
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, KindUnauthenticated, ErrMsgUnauthenticated
	case errors.Is(err, domain.ErrInvalidGameType), errors.Is(err, domain.ErrGameTypeNotFound):
		return http.StatusBadRequest, KindInvalidGameType, ErrMsgInvalidGameType
	case errors.Is(err, domain.ErrForcedWinForbidden):
		return http.StatusForbidden, KindForcedWinForbidden, ErrMsgForcedWinForbidden
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusPaymentRequired, KindInsufficientFunds, ErrMsgInsufficientFunds
	case errors.Is(err, domain.ErrNoEligibleCatalog):
		return http.StatusServiceUnavailable, KindNoEligibleCatalog, ErrMsgNoEligibleCatalog
	case errors.Is(err, domain.ErrSettlementConflict):
		return http.StatusConflict, KindSettlementConflict, ErrMsgSettlementConflict
	case errors.Is(err, domain.ErrIdempotencyMismatch):
		return http.StatusUnprocessableEntity, KindIdempotencyMismatch, ErrMsgIdempotencyMismatch
	case errors.Is(err, domain.ErrRoundNotFound):
		return http.StatusNotFound, KindNotFound, ErrMsgRoundNotFound
	case errors.Is(err, domain.ErrAlertNotFound):
		return http.StatusNotFound, KindNotFound, ErrMsgAlertNotFound
	case errors.Is(err, domain.ErrLedgerNotFound):
		return http.StatusNotFound, KindNotFound, ErrMsgLedgerNotFound
	}
	return http.StatusInternalServerError, KindInternal, ErrMsgGenericServerError
}

// WriteError lets middleware outside this package answer in the same shape as handlers
func WriteError(w http.ResponseWriter, status int, kind, message string) {
	respondError(w, status, kind, message)
}
