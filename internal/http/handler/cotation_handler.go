package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/horizons-voyages/cotation-api/internal/cotation"
	"github.com/horizons-voyages/cotation-api/internal/domain"
	"github.com/horizons-voyages/cotation-api/internal/service"
	"go.uber.org/zap"
)

// CotationHandler serves the rendered views of stored snapshots
type CotationHandler struct {
	cotationService *service.CotationService
	logger          *zap.Logger
}

func NewCotationHandler(cotationService *service.CotationService, logger *zap.Logger) *CotationHandler {
	return &CotationHandler{
		cotationService: cotationService,
		logger:          logger,
	}
}

// @Summary Cotation summary view
// @Description Per-configuration headline figures plus one line per group:
// @Description transversal services first, then each day. Amounts are
// @Description formatted in French notation; local totals aggregate the
// @Description group's items per currency.
// @Tags Views
// @Produce json
// @Param id path string true "Snapshot ID"
// @Success 200 {object} cotation.SummaryView
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /cotations/{id}/summary [get]
func (h *CotationHandler) Summary(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	view, err := h.cotationService.Summary(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, id)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// @Summary Cotation by-day view
// @Tags Views
// @Produce json
// @Param id path string true "Snapshot ID"
// @Success 200 {object} cotation.DayView
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /cotations/{id}/days [get]
func (h *CotationHandler) Days(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	view, err := h.cotationService.Days(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, id)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// @Summary Cotation by-type view
// @Description Items grouped by cost nature across all days and transversal
// @Description formulas. Natures with no items are omitted.
// @Tags Views
// @Produce json
// @Param id path string true "Snapshot ID"
// @Success 200 {object} cotation.TypeView
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /cotations/{id}/types [get]
func (h *CotationHandler) Types(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	view, err := h.cotationService.Types(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, id)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// @Summary Cotation alerts
// @Description Alerts derived from the pricing result, errors first, then
// @Description warnings, then infos. With includeInfo=false only the alerts
// @Description shown without expansion (errors and warnings) are listed;
// @Description the severity counts always cover the full set.
// @Tags Views
// @Produce json
// @Param id path string true "Snapshot ID"
// @Param includeInfo query bool false "Include info alerts (default true)"
// @Success 200 {object} service.AlertReport
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /cotations/{id}/alerts [get]
func (h *CotationHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	report, err := h.cotationService.Alerts(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, id)
		return
	}

	if r.URL.Query().Get("includeInfo") == "false" {
		report.Alerts = cotation.VisibleAlerts(report.Alerts)
	}

	respondJSON(w, http.StatusOK, report)
}

// @Summary Preview views of an unstored pricing result
// @Description Renders every view of a pricing result without storing it.
// @Description The engine uses it to let agents inspect a cotation before
// @Description pushing the snapshot.
// @Tags Views
// @Accept json
// @Produce json
// @Param results body domain.CotationResults true "Pricing result"
// @Success 200 {object} service.PreviewViews
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /cotations/preview [post]
func (h *CotationHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var results domain.CotationResults
	if err := json.NewDecoder(r.Body).Decode(&results); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(&results); err != nil {
		respondValidationError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.cotationService.Preview(&results))
}

func (h *CotationHandler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid snapshot ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *CotationHandler) respondServiceError(w http.ResponseWriter, err error, id uuid.UUID) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Snapshot not found")
	case errors.Is(err, service.ErrInvalidPayload):
		h.logger.Error("snapshot payload corrupt",
			zap.String("snapshot_id", id.String()),
			zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Snapshot payload is not readable")
	default:
		h.logger.Error("view rendering failed",
			zap.String("snapshot_id", id.String()),
			zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal error")
	}
}
