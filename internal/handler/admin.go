package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/PrizeGrid_Go/internal/audit"
	"github.com/osse101/PrizeGrid_Go/internal/domain"
	"github.com/osse101/PrizeGrid_Go/internal/ledger"
	"github.com/osse101/PrizeGrid_Go/internal/logger"
	"github.com/osse101/PrizeGrid_Go/internal/round"
)

// AdminHandler serves the operator endpoints behind the API key
type AdminHandler struct {
	ledger ledger.Service
	audit  audit.Service
	rounds round.Service
	now    func() time.Time
}

func NewAdminHandler(ledgerSvc ledger.Service, auditSvc audit.Service, rounds round.Service) *AdminHandler {
	return &AdminHandler{
		ledger: ledgerSvc,
		audit:  auditSvc,
		rounds: rounds,
		now:    time.Now,
	}
}

// ReconcileResponse lists the alerts a manual reconciliation raised
type ReconcileResponse struct {
	Message string              `json:"message"`
	Day     string              `json:"day"`
	Alerts  []domain.AuditAlert `json:"alerts"`
}

// EmergencyRequest is the optional body of the engage endpoint
type EmergencyRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// parseDay reads ?day=YYYY-MM-DD, defaulting to today (UTC)
func (h *AdminHandler) parseDay(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("day")
	if raw == "" {
		return domain.LedgerDay(h.now()), true
	}
	day, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, KindInvalidRequest, ErrMsgInvalidDay)
		return time.Time{}, false
	}
	return day, true
}

// HandleLedgerSnapshot returns a day's ledger with its derived figures
// @Summary Ledger snapshot
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param game_type query string true "Game type"
// @Param day query string false "Ledger day (YYYY-MM-DD, UTC). Defaults to today."
// @Success 200 {object} ledger.Snapshot
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/ledger [get]
func (h *AdminHandler) HandleLedgerSnapshot(w http.ResponseWriter, r *http.Request) {
	gameType, ok := GetQueryParam(r, w, "game_type")
	if !ok {
		return
	}
	day, ok := h.parseDay(w, r)
	if !ok {
		return
	}

	snap, err := h.ledger.Snapshot(r.Context(), gameType, day)
	if err != nil {
		logger.FromContext(r.Context()).Error(LogMsgSnapshotFailed, logger.AttrKeyGameType, gameType, "error", err)
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// HandleRunAudit reconciles every active ledger of a day now
// @Summary Run reconciliation
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param day query string false "Ledger day (YYYY-MM-DD, UTC). Defaults to today."
// @Success 200 {object} ReconcileResponse
// @Router /api/v1/admin/audit/run [post]
func (h *AdminHandler) HandleRunAudit(w http.ResponseWriter, r *http.Request) {
	day, ok := h.parseDay(w, r)
	if !ok {
		return
	}

	alerts, err := h.audit.Reconcile(r.Context(), day)
	if err != nil {
		logger.FromContext(r.Context()).Error(LogMsgReconcileFailed, "day", day.Format(time.DateOnly), "error", err)
		respondServiceError(w, err)
		return
	}
	if alerts == nil {
		alerts = []domain.AuditAlert{}
	}
	respondJSON(w, http.StatusOK, ReconcileResponse{
		Message: MsgReconcileComplete,
		Day:     day.Format(time.DateOnly),
		Alerts:  alerts,
	})
}

// HandleListAlerts returns unresolved audit alerts
// @Summary Unresolved alerts
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} domain.AuditAlert
// @Router /api/v1/admin/alerts [get]
func (h *AdminHandler) HandleListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.audit.ListUnresolvedAlerts(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error(LogMsgListAlertsFailed, "error", err)
		respondServiceError(w, err)
		return
	}
	if alerts == nil {
		alerts = []domain.AuditAlert{}
	}
	respondJSON(w, http.StatusOK, alerts)
}

// HandleResolveAlert marks an alert resolved. It does not clear an emergency stop.
// @Summary Resolve an alert
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Alert ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/alerts/{id}/resolve [post]
func (h *AdminHandler) HandleResolveAlert(w http.ResponseWriter, r *http.Request) {
	alertID, ok := parseUUIDParam(w, r, "id", ErrMsgInvalidAlertID)
	if !ok {
		return
	}
	if err := h.audit.ResolveAlert(r.Context(), alertID); err != nil {
		logger.FromContext(r.Context()).Warn(LogMsgResolveFailed, "alert_id", alertID, "error", err)
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgAlertResolved})
}

// HandleEmergencyStatus reports the stop state of a game type
// @Summary Emergency stop status
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param gameType path string true "Game type"
// @Success 200 {object} domain.EmergencyStop
// @Router /api/v1/admin/emergency/{gameType} [get]
func (h *AdminHandler) HandleEmergencyStatus(w http.ResponseWriter, r *http.Request) {
	gameType := chi.URLParam(r, "gameType")
	stop, err := h.audit.EmergencyStatus(r.Context(), gameType)
	if err != nil {
		logger.FromContext(r.Context()).Error(LogMsgEmergencyFailed, logger.AttrKeyGameType, gameType, "error", err)
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stop)
}

// HandleEngageEmergency stops payouts for a game type
// @Summary Engage emergency stop
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param gameType path string true "Game type"
// @Param request body EmergencyRequest false "Reason"
// @Success 200 {object} SuccessResponse
// @Router /api/v1/admin/emergency/{gameType}/engage [post]
func (h *AdminHandler) HandleEngageEmergency(w http.ResponseWriter, r *http.Request) {
	gameType := chi.URLParam(r, "gameType")
	if err := GetValidator().ValidateVar(gameType, "required,gametype"); err != nil {
		respondServiceError(w, domain.ErrInvalidGameType)
		return
	}

	var req EmergencyRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Engage emergency stop"); err != nil {
		return
	}
	if req.Reason == "" {
		req.Reason = "manual"
	}

	if err := h.audit.EngageEmergencyStop(r.Context(), gameType, req.Reason); err != nil {
		logger.FromContext(r.Context()).Error(LogMsgEmergencyFailed, logger.AttrKeyGameType, gameType, "error", err)
		respondServiceError(w, err)
		return
	}
	logger.FromContext(r.Context()).Warn(LogMsgEmergencyEngaged, logger.AttrKeyGameType, gameType, "reason", req.Reason)
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgEmergencyEngaged})
}

// HandleClearEmergency resumes payouts for a game type
// @Summary Clear emergency stop
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param gameType path string true "Game type"
// @Success 200 {object} SuccessResponse
// @Router /api/v1/admin/emergency/{gameType}/clear [post]
func (h *AdminHandler) HandleClearEmergency(w http.ResponseWriter, r *http.Request) {
	gameType := chi.URLParam(r, "gameType")
	if err := GetValidator().ValidateVar(gameType, "required,gametype"); err != nil {
		respondServiceError(w, domain.ErrInvalidGameType)
		return
	}

	if err := h.audit.ClearEmergencyStop(r.Context(), gameType); err != nil {
		logger.FromContext(r.Context()).Error(LogMsgEmergencyFailed, logger.AttrKeyGameType, gameType, "error", err)
		respondServiceError(w, err)
		return
	}
	logger.FromContext(r.Context()).Warn(LogMsgEmergencyCleared, logger.AttrKeyGameType, gameType)
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgEmergencyCleared})
}

// HandleReplayRound re-runs grid synthesis from a stored seed
// @Summary Replay a round
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Round ID"
// @Success 200 {object} round.ReplayReport
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/rounds/{id}/replay [get]
func (h *AdminHandler) HandleReplayRound(w http.ResponseWriter, r *http.Request) {
	roundID, ok := parseUUIDParam(w, r, "id", ErrMsgInvalidRoundID)
	if !ok {
		return
	}
	report, err := h.rounds.ReplayRound(r.Context(), roundID)
	if err != nil {
		logger.FromContext(r.Context()).Error(LogMsgReplayFailed, logger.AttrKeyRoundID, roundID, "error", err)
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}
