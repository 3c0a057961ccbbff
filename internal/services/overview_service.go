package services

import (
	"context"
	"sort"

	"github.com/sjperalta/obrafin-api/internal/documents"
	"github.com/sjperalta/obrafin-api/internal/finance"
	"github.com/sjperalta/obrafin-api/internal/models"
)

const recentTransactionLimit = 10

// Overview is the 360° view of a project.
type Overview struct {
	Project            models.ProjectResponse    `json:"project"`
	Financials         finance.ProjectFinancials `json:"financials"`
	CostControl        finance.CategoryControl   `json:"cost_control"`
	Documents          []documents.Document      `json:"documents"`
	RecentTransactions []models.Transaction      `json:"recent_transactions"`
	Contracts          []models.Contract         `json:"contracts"`
	BOQs               []models.BOQ              `json:"boqs"`
	Unavailable        []string                  `json:"unavailable"`
}

type OverviewService struct {
	loader *sourceLoader
	bands  finance.Bands
}

func NewOverviewService(loader *sourceLoader, bands finance.Bands) *OverviewService {
	return &OverviewService{loader: loader, bands: bands}
}

// Get builds the overview. Only a missing project is an error; any other
// failed fetch degrades to an empty section listed in Unavailable.
func (s *OverviewService) Get(ctx context.Context, projectID uint) (*Overview, error) {
	src, err := s.loader.load(ctx, projectID, true)
	if err != nil {
		return nil, err
	}

	fin := finance.Aggregate(src.Project, src.Transactions, src.Contracts)
	ov := &Overview{
		Project:            src.Project.ToResponse(),
		Financials:         fin,
		CostControl:        finance.EvaluateCategories(fin, s.bands),
		Documents:          documents.Aggregate(src.Sources),
		RecentTransactions: recentTransactions(src.Transactions, recentTransactionLimit),
		Contracts:          nonNil(src.Contracts),
		BOQs:               nonNil(src.BOQs),
		Unavailable:        nonNil(src.Failed),
	}
	return ov, nil
}

// recentTransactions returns up to n transactions, latest date first, without
// reordering the input.
func recentTransactions(txs []models.Transaction, n int) []models.Transaction {
	out := make([]models.Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
