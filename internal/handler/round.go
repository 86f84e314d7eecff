package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/osse101/PrizeGrid_Go/internal/auth"
	"github.com/osse101/PrizeGrid_Go/internal/domain"
	"github.com/osse101/PrizeGrid_Go/internal/logger"
	"github.com/osse101/PrizeGrid_Go/internal/round"
)

// RoundHandler serves the player round endpoints
type RoundHandler struct {
	service round.Service
}

func NewRoundHandler(service round.Service) *RoundHandler {
	return &RoundHandler{service: service}
}

// StartRoundRequest is the body of POST /api/v1/rounds
type StartRoundRequest struct {
	GameType       string `json:"game_type" validate:"required,gametype"`
	ForcedWin      bool   `json:"forced_win"`
	IdempotencyKey string `json:"idempotency_key" validate:"idemkey"`
}

// HandleStartRound plays one round for the authenticated player
// @Summary Play a round
// @Description Debits the bet, decides the outcome and returns the revealed grid. A repeated idempotency key returns the committed round.
// @Tags rounds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Idempotency key, alternative to the body field"
// @Param request body StartRoundRequest true "Round request"
// @Success 201 {object} domain.RoundResult
// @Success 200 {object} domain.RoundResult "Replayed by idempotency key"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/rounds [post]
func (h *RoundHandler) HandleStartRound(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondServiceError(w, domain.ErrUnauthenticated)
		return
	}

	var req StartRoundRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Start round"); err != nil {
		return
	}

	key, ok := idempotencyKey(w, r, req.IdempotencyKey)
	if !ok {
		return
	}

	if req.ForcedWin {
		log.Warn(LogMsgForcedWinAttempt, logger.AttrKeyGameType, req.GameType, "operator", principal.Operator)
	}

	result, err := h.service.StartRound(r.Context(), round.StartRoundRequest{
		UserID:         principal.UserID,
		GameType:       req.GameType,
		ForcedWin:      req.ForcedWin,
		Operator:       principal.Operator,
		IdempotencyKey: key,
	})
	if err != nil {
		log.Error(LogMsgStartRoundFailed, logger.AttrKeyGameType, req.GameType, "error", err)
		respondServiceError(w, err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	respondJSON(w, status, result)
}

// idempotencyKey merges the header and body keys. Both may be given only if they agree.
func idempotencyKey(w http.ResponseWriter, r *http.Request, bodyKey string) (string, bool) {
	headerKey := r.Header.Get(HeaderIdempotencyKey)
	switch {
	case headerKey == "":
		return bodyKey, true
	case bodyKey != "" && bodyKey != headerKey:
		respondError(w, http.StatusBadRequest, KindInvalidRequest, ErrMsgIdempotencyKeyClash)
		return "", false
	}
	if err := GetValidator().ValidateVar(headerKey, "idemkey"); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Kind:    KindInvalidRequest,
			Message: ErrMsgInvalidRequestSummary,
			Fields:  map[string]string{"idempotency_key": "Must be 1-128 letters, digits or . _ : -"},
		})
		return "", false
	}
	return headerKey, true
}

// HandleGetRound returns one of the caller's committed rounds
// @Summary Get a round
// @Tags rounds
// @Produce json
// @Security BearerAuth
// @Param id path string true "Round ID"
// @Success 200 {object} domain.Round
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/rounds/{id} [get]
func (h *RoundHandler) HandleGetRound(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondServiceError(w, domain.ErrUnauthenticated)
		return
	}

	roundID, ok := parseUUIDParam(w, r, "id", ErrMsgInvalidRoundID)
	if !ok {
		return
	}

	rd, err := h.service.GetRound(r.Context(), principal.UserID, roundID)
	if err != nil {
		logger.FromContext(r.Context()).Warn(LogMsgGetRoundFailed, logger.AttrKeyRoundID, roundID, "error", err)
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rd)
}

func parseUUIDParam(w http.ResponseWriter, r *http.Request, name, msg string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondError(w, http.StatusBadRequest, KindInvalidRequest, msg)
		return uuid.Nil, false
	}
	return id, true
}
