package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/PrizeGrid_Go/internal/catalog"
	"github.com/osse101/PrizeGrid_Go/internal/domain"
	"github.com/osse101/PrizeGrid_Go/internal/logger"
)

// CatalogHandler serves what a player may see of a game type
type CatalogHandler struct {
	service catalog.Service
}

func NewCatalogHandler(service catalog.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// HandleGetCatalog returns the display catalog of a game type
// @Summary Game catalog
// @Description Price and every symbol that can appear in the grid. Weights are not exposed.
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param gameType path string true "Game type"
// @Success 200 {object} catalog.Display
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/games/{gameType}/catalog [get]
func (h *CatalogHandler) HandleGetCatalog(w http.ResponseWriter, r *http.Request) {
	gameType := chi.URLParam(r, "gameType")
	if err := GetValidator().ValidateVar(gameType, "required,gametype"); err != nil {
		respondServiceError(w, domain.ErrInvalidGameType)
		return
	}

	display, err := h.service.Display(r.Context(), gameType)
	if err != nil {
		logger.FromContext(r.Context()).Warn(LogMsgCatalogFailed, logger.AttrKeyGameType, gameType, "error", err)
		respondServiceError(w, err)
		return
	}
	w.Header().Set("Cache-Control", "private, max-age=60")
	respondJSON(w, http.StatusOK, display)
}
