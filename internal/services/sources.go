package services

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sjperalta/obrafin-api/internal/documents"
	"github.com/sjperalta/obrafin-api/internal/models"
	"github.com/sjperalta/obrafin-api/internal/repository"
	"github.com/sjperalta/obrafin-api/pkg/logger"
)

// projectSources is everything derived views of a project are computed from.
type projectSources struct {
	documents.Sources
	// Failed names the collections that could not be fetched and were
	// replaced by empty ones.
	Failed []string
}

// sourceLoader fetches a project and its related collections.
type sourceLoader struct {
	projects     repository.ProjectRepository
	transactions repository.TransactionRepository
	contracts    repository.ContractRepository
	procurement  repository.ProcurementRepository
	timeout      time.Duration
}

// load reads the project first; a missing project is an error. The related
// collections are fetched concurrently. In lenient mode a failed fetch is
// logged and replaced by an empty collection; otherwise it is returned.
func (l *sourceLoader) load(ctx context.Context, projectID uint, lenient bool) (*projectSources, error) {
	project, err := l.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, translateErr(entityProject, err)
	}

	src := &projectSources{Sources: documents.Sources{Project: *project}}
	errs := make([]error, 3)

	var g errgroup.Group
	g.Go(func() error {
		errs[0] = l.fetch(ctx, func(ctx context.Context) (err error) {
			src.Transactions, err = l.transactions.ListByProject(ctx, projectID)
			return err
		})
		return nil
	})
	g.Go(func() error {
		errs[1] = l.fetch(ctx, func(ctx context.Context) (err error) {
			src.Contracts, err = l.contracts.ListByProject(ctx, projectID)
			return err
		})
		return nil
	})
	g.Go(func() error {
		errs[2] = l.fetch(ctx, func(ctx context.Context) (err error) {
			src.BOQs, err = l.procurement.ListBOQsByProject(ctx, projectID)
			return err
		})
		return nil
	})
	_ = g.Wait()

	names := [3]string{"transactions", "contracts", "boqs"}
	for i, err := range errs {
		if err == nil {
			continue
		}
		if !lenient {
			return nil, translateErr(names[i], err)
		}
		logger.Warn("project source unavailable, using empty collection",
			slog.Uint64("project_id", uint64(projectID)),
			slog.String("source", names[i]),
			slog.Any("error", err),
		)
		src.Failed = append(src.Failed, names[i])
		switch i {
		case 0:
			src.Transactions = []models.Transaction{}
		case 1:
			src.Contracts = []models.Contract{}
		case 2:
			src.BOQs = []models.BOQ{}
		}
	}

	return src, nil
}

func (l *sourceLoader) fetch(ctx context.Context, fn func(context.Context) error) error {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	return fn(ctx)
}
