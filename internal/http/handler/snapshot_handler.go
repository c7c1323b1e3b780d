package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/horizons-voyages/cotation-api/internal/domain"
	"github.com/horizons-voyages/cotation-api/internal/mapper"
	"github.com/horizons-voyages/cotation-api/internal/repository"
	"github.com/horizons-voyages/cotation-api/internal/service"
	"go.uber.org/zap"
)

type SnapshotHandler struct {
	snapshotService *service.SnapshotService
	logger          *zap.Logger
}

func NewSnapshotHandler(snapshotService *service.SnapshotService, logger *zap.Logger) *SnapshotHandler {
	return &SnapshotHandler{
		snapshotService: snapshotService,
		logger:          logger,
	}
}

// @Summary Ingest a cotation snapshot
// @Description Stores one pricing result pushed by the pricing engine after a pricing run.
// @Description Alert counts are computed on ingest and denormalized for listing.
// @Tags Cotations
// @Accept json
// @Produce json
// @Param snapshot body domain.IngestSnapshotRequest true "Pricing result"
// @Success 201 {object} domain.SnapshotDTO
// @Failure 400 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /cotations [post]
func (h *SnapshotHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req domain.IngestSnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	snapshot, err := h.snapshotService.Ingest(r.Context(), &req, domain.SnapshotSourcePush, nil)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to ingest snapshot",
			zap.String("trip_ref", req.TripRef),
			zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to store snapshot")
		return
	}

	respondJSON(w, http.StatusCreated, mapper.ToSnapshotDTO(snapshot))
}

// @Summary List cotation snapshots
// @Tags Cotations
// @Produce json
// @Param tripRef query string false "Filter by trip reference"
// @Param source query string false "Filter by source (push, warehouse)"
// @Param withAlerts query bool false "Only snapshots with errors or warnings"
// @Param page query int false "Page number (default 1)"
// @Param pageSize query int false "Page size (default 20, max 100)"
// @Success 200 {object} domain.SnapshotListDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /cotations [get]
func (h *SnapshotHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(query.Get("pageSize"))
	if pageSize < 1 {
		pageSize = 20
	}

	filter := repository.SnapshotFilter{
		TripRef:    query.Get("tripRef"),
		Source:     domain.SnapshotSource(query.Get("source")),
		WithAlerts: query.Get("withAlerts") == "true",
	}

	snapshots, total, err := h.snapshotService.List(r.Context(), filter, page, pageSize)
	if err != nil {
		h.logger.Error("failed to list snapshots", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list snapshots")
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToSnapshotListDTO(snapshots, total, page, pageSize))
}

// @Summary Get a cotation snapshot
// @Description Returns the snapshot metadata plus the full pricing payload.
// @Tags Cotations
// @Produce json
// @Param id path string true "Snapshot ID"
// @Success 200 {object} domain.SnapshotDetailDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /cotations/{id} [get]
func (h *SnapshotHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	snapshot, results, err := h.snapshotService.GetResults(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, id)
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToSnapshotDetailDTO(snapshot, results))
}

// @Summary Get the latest snapshot of a trip
// @Tags Cotations
// @Produce json
// @Param tripRef path string true "Trip reference"
// @Success 200 {object} domain.SnapshotDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /trips/{tripRef}/cotation [get]
func (h *SnapshotHandler) GetLatestForTrip(w http.ResponseWriter, r *http.Request) {
	tripRef := chi.URLParam(r, "tripRef")
	if tripRef == "" {
		respondWithError(w, http.StatusBadRequest, "Missing trip reference")
		return
	}

	snapshot, err := h.snapshotService.GetLatestByTripRef(r.Context(), tripRef)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "No cotation for this trip")
			return
		}
		h.logger.Error("failed to get latest snapshot",
			zap.String("trip_ref", tripRef),
			zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get snapshot")
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToSnapshotDTO(snapshot))
}

// @Summary Delete a cotation snapshot
// @Tags Cotations
// @Param id path string true "Snapshot ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /cotations/{id} [delete]
func (h *SnapshotHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.snapshotService.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, err, id)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (h *SnapshotHandler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid snapshot ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *SnapshotHandler) respondServiceError(w http.ResponseWriter, err error, id uuid.UUID) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Snapshot not found")
	case errors.Is(err, service.ErrInvalidPayload):
		h.logger.Error("snapshot payload corrupt",
			zap.String("snapshot_id", id.String()),
			zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Snapshot payload is not readable")
	default:
		h.logger.Error("snapshot operation failed",
			zap.String("snapshot_id", id.String()),
			zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal error")
	}
}
