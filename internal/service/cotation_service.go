package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/horizons-voyages/cotation-api/internal/cotation"
	"github.com/horizons-voyages/cotation-api/internal/domain"
	"go.uber.org/zap"
)

// AlertReport is the alerts view of one snapshot
type AlertReport struct {
	Alerts   []cotation.Alert `json:"alerts"`
	Errors   int              `json:"errors"`
	Warnings int              `json:"warnings"`
	Infos    int              `json:"infos"`
}

// CotationService renders the presentation views of stored snapshots.
// All view building is pure; this service only loads the payload and
// delegates.
type CotationService struct {
	snapshots *SnapshotService
	logger    *zap.Logger
}

func NewCotationService(snapshots *SnapshotService, logger *zap.Logger) *CotationService {
	return &CotationService{
		snapshots: snapshots,
		logger:    logger,
	}
}

// Summary renders the per-configuration summary view of a snapshot
func (s *CotationService) Summary(ctx context.Context, id uuid.UUID) (*cotation.SummaryView, error) {
	_, results, err := s.snapshots.GetResults(ctx, id)
	if err != nil {
		return nil, err
	}
	view := cotation.BuildSummaryView(results)
	return &view, nil
}

// Days renders the "by day" view of a snapshot
func (s *CotationService) Days(ctx context.Context, id uuid.UUID) (*cotation.DayView, error) {
	_, results, err := s.snapshots.GetResults(ctx, id)
	if err != nil {
		return nil, err
	}
	view := cotation.BuildDayView(results)
	return &view, nil
}

// Types renders the "by cost nature" view of a snapshot
func (s *CotationService) Types(ctx context.Context, id uuid.UUID) (*cotation.TypeView, error) {
	_, results, err := s.snapshots.GetResults(ctx, id)
	if err != nil {
		return nil, err
	}
	view := cotation.BuildTypeView(results)
	return &view, nil
}

// Alerts renders the alert report of a snapshot
func (s *CotationService) Alerts(ctx context.Context, id uuid.UUID) (*AlertReport, error) {
	_, results, err := s.snapshots.GetResults(ctx, id)
	if err != nil {
		return nil, err
	}
	return buildAlertReport(results), nil
}

// Preview renders all views of an unstored pricing result. The engine uses
// it to let agents inspect a cotation before pushing it.
func (s *CotationService) Preview(results *domain.CotationResults) *PreviewViews {
	if results.Currency == "" {
		results.Currency = cotation.DefaultCurrency
	}
	return &PreviewViews{
		Summary: cotation.BuildSummaryView(results),
		Days:    cotation.BuildDayView(results),
		Types:   cotation.BuildTypeView(results),
		Alerts:  *buildAlertReport(results),
	}
}

// PreviewViews bundles every rendered view of one pricing result
type PreviewViews struct {
	Summary cotation.SummaryView `json:"summary"`
	Days    cotation.DayView     `json:"days"`
	Types   cotation.TypeView    `json:"types"`
	Alerts  AlertReport          `json:"alerts"`
}

func buildAlertReport(results *domain.CotationResults) *AlertReport {
	alerts := cotation.DetectAlerts(results)
	errs, warns, infos := cotation.CountBySeverity(alerts)
	return &AlertReport{
		Alerts:   alerts,
		Errors:   errs,
		Warnings: warns,
		Infos:    infos,
	}
}
