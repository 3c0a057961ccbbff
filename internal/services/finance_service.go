package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/getsentry/sentry-go"

	"github.com/sjperalta/obrafin-api/internal/finance"
	"github.com/sjperalta/obrafin-api/internal/models"
	"github.com/sjperalta/obrafin-api/internal/repository"
	"github.com/sjperalta/obrafin-api/pkg/logger"
)

// CostControlReport is the cost-control view returned to clients.
type CostControlReport struct {
	Financials finance.ProjectFinancials `json:"financials"`
	Categories finance.CategoryControl   `json:"categories"`
	Bands      finance.Bands             `json:"bands"`
	Over       []string                  `json:"over"`
	// Unavailable names ledger sources that failed to load and were counted as empty.
	Unavailable []string `json:"unavailable"`
}

// CostAlert is raised by the sweep for a category above its band.
type CostAlert struct {
	ProjectID   uint                `json:"project_id"`
	ProjectCode string              `json:"project_code"`
	Category    string              `json:"category"`
	Control     finance.CostControl `json:"control"`
}

type FinanceService struct {
	loader   *sourceLoader
	projects repository.ProjectRepository
	bands    finance.Bands
	notify   func(CostAlert)
}

func NewFinanceService(loader *sourceLoader, projects repository.ProjectRepository, bands finance.Bands) *FinanceService {
	return &FinanceService{loader: loader, projects: projects, bands: bands, notify: reportCostAlert}
}

// Financials computes a project's figures from its current ledger. A source
// that fails to load counts as empty and is named in the returned list; only a
// missing project is an error.
func (s *FinanceService) Financials(ctx context.Context, projectID uint) (finance.ProjectFinancials, []string, error) {
	src, err := s.loader.load(ctx, projectID, true)
	if err != nil {
		return finance.ProjectFinancials{}, nil, err
	}
	return finance.Aggregate(src.Project, src.Transactions, src.Contracts), nonNil(src.Failed), nil
}

// CostControl classifies each cost category against the configured bands.
func (s *FinanceService) CostControl(ctx context.Context, projectID uint) (*CostControlReport, error) {
	fin, unavailable, err := s.Financials(ctx, projectID)
	if err != nil {
		return nil, err
	}
	report := s.report(fin)
	report.Unavailable = unavailable
	return report, nil
}

func (s *FinanceService) report(fin finance.ProjectFinancials) *CostControlReport {
	cats := finance.EvaluateCategories(fin, s.bands)
	over := cats.Over()
	if over == nil {
		over = []string{}
	}
	return &CostControlReport{Financials: fin, Categories: cats, Bands: s.bands, Over: over, Unavailable: []string{}}
}

// SweepCostControl evaluates every active project and raises an alert per
// category over its band. A project whose ledger cannot be fully loaded is
// skipped so partial figures never raise alerts.
func (s *FinanceService) SweepCostControl(ctx context.Context) ([]CostAlert, error) {
	projects, err := s.projects.ListByStatus(ctx, models.ProjectStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active projects: %w", err)
	}

	var alerts []CostAlert
	for _, p := range projects {
		if err := ctx.Err(); err != nil {
			return alerts, err
		}
		fin, unavailable, err := s.Financials(ctx, p.ID)
		if err != nil {
			logger.Warn("cost sweep skipped project", slog.Uint64("project_id", uint64(p.ID)), slog.Any("error", err))
			continue
		}
		if len(unavailable) > 0 {
			logger.Warn("cost sweep skipped project", slog.Uint64("project_id", uint64(p.ID)), slog.Any("unavailable", unavailable))
			continue
		}
		cats := finance.EvaluateCategories(fin, s.bands)
		for _, name := range cats.Over() {
			alert := CostAlert{ProjectID: p.ID, ProjectCode: p.Code, Category: name, Control: categoryControl(cats, name)}
			alerts = append(alerts, alert)
			s.notify(alert)
		}
	}

	logger.Info("cost sweep finished", slog.Int("projects", len(projects)), slog.Int("alerts", len(alerts)))
	return alerts, nil
}

func categoryControl(cats finance.CategoryControl, name string) finance.CostControl {
	switch name {
	case "material":
		return cats.Material
	case "labor":
		return cats.Labor
	default:
		return cats.Other
	}
}

func reportCostAlert(a CostAlert) {
	msg := fmt.Sprintf("project %s %s cost at %.2f%% (band %.0f-%.0f)",
		a.ProjectCode, a.Category, a.Control.Percentage, a.Control.Band.Min, a.Control.Band.Max)
	logger.Warn("cost over band",
		slog.Uint64("project_id", uint64(a.ProjectID)),
		slog.String("category", a.Category),
		slog.Float64("percentage", a.Control.Percentage),
	)
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentry.LevelWarning)
		scope.SetTag("project_code", a.ProjectCode)
		scope.SetTag("cost_category", a.Category)
		sentry.CaptureMessage(msg)
	})
}
