package services

import (
	"github.com/sjperalta/obrafin-api/internal/config"
	"github.com/sjperalta/obrafin-api/internal/jobs"
	"github.com/sjperalta/obrafin-api/internal/repository"
	"github.com/sjperalta/obrafin-api/internal/statemachine"
	"github.com/sjperalta/obrafin-api/internal/storage"
	"gorm.io/gorm"
)

// Services holds all service instances
type Services struct {
	Project     *ProjectService
	Transaction *TransactionService
	Receipt     *ReceiptService
	Contract    *ContractService
	Procurement *ProcurementService
	Finance     *FinanceService
	Document    *DocumentService
	Overview    *OverviewService
	Export      *ExportService
	Report      *ReportService
	Audit       *AuditService
	Job         *JobService
}

// NewServices creates all service instances. policy narrows project status
// transitions; nil allows all of them.
func NewServices(repos *repository.Repositories, worker *jobs.Worker, storage *storage.LocalStorage, cfg *config.Config, db *gorm.DB, policy statemachine.TransitionPolicy) *Services {
	auditSvc := NewAuditService(db, worker)
	loader := &sourceLoader{
		projects:     repos.Project,
		transactions: repos.Transaction,
		contracts:    repos.Contract,
		procurement:  repos.Procurement,
		timeout:      cfg.FetchTimeout,
	}

	projectSvc := NewProjectService(repos.Project, auditSvc, policy)
	overviewSvc := NewOverviewService(loader, cfg.CostBands)

	return &Services{
		Project:     projectSvc,
		Transaction: NewTransactionService(repos.Transaction, repos.Project, auditSvc),
		Receipt:     NewReceiptService(repos.Transaction, storage, NewImageService(receiptMaxSide), auditSvc),
		Contract:    NewContractService(repos.Contract, repos.Project, auditSvc),
		Procurement: NewProcurementService(repos.Procurement, repos.Project, storage, auditSvc),
		Finance:     NewFinanceService(loader, repos.Project, cfg.CostBands),
		Document:    NewDocumentService(loader),
		Overview:    overviewSvc,
		Export:      NewExportService(loader, cfg.CostBands),
		Report:      NewReportService(overviewSvc, projectSvc, storage),
		Audit:       auditSvc,
		Job:         NewJobService(worker),
	}
}
