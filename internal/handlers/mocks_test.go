package handlers

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/obrafin-api/internal/config"
	"github.com/sjperalta/obrafin-api/internal/finance"
	"github.com/sjperalta/obrafin-api/internal/jobs"
	"github.com/sjperalta/obrafin-api/internal/models"
	"github.com/sjperalta/obrafin-api/internal/repository"
	"github.com/sjperalta/obrafin-api/internal/services"
	"github.com/sjperalta/obrafin-api/internal/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var errBackendDown = errors.New("backend down")

type memProjectRepo struct {
	repository.ProjectRepository
	mu     sync.Mutex
	items  map[uint]models.Project
	nextID uint
}

func (r *memProjectRepo) FindByID(ctx context.Context, id uint) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *memProjectRepo) Create(ctx context.Context, project *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	project.ID = r.nextID
	project.CreatedAt = time.Now()
	r.items[project.ID] = *project
	return nil
}

func (r *memProjectRepo) Update(ctx context.Context, project *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[project.ID] = *project
	return nil
}

func (r *memProjectRepo) List(ctx context.Context, query *repository.ListQuery) ([]models.Project, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Project{}
	for id := uint(1); id <= r.nextID; id++ {
		p, ok := r.items[id]
		if !ok {
			continue
		}
		if s := query.Filters["status"]; s != "" && p.Status != s {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

type memTransactionRepo struct {
	repository.TransactionRepository
	mu     sync.Mutex
	items  []models.Transaction
	nextID uint
}

func (r *memTransactionRepo) FindByID(ctx context.Context, id uint) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tx := range r.items {
		if tx.ID == id {
			return &tx, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memTransactionRepo) ListByProject(ctx context.Context, projectID uint) ([]models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Transaction{}
	for _, tx := range r.items {
		if tx.BelongsTo(projectID) {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *memTransactionRepo) List(ctx context.Context, query *repository.ListQuery) ([]models.Transaction, int64, error) {
	projectID, _ := strconv.ParseUint(query.Filters["project_id"], 10, 32)
	txs, _ := r.ListByProject(ctx, uint(projectID))
	return txs, int64(len(txs)), nil
}

func (r *memTransactionRepo) Create(ctx context.Context, tx *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	tx.ID = r.nextID
	r.items = append(r.items, *tx)
	return nil
}

func (r *memTransactionRepo) Update(ctx context.Context, tx *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == tx.ID {
			r.items[i] = *tx
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type memContractRepo struct {
	repository.ContractRepository
	mu     sync.Mutex
	items  []models.Contract
	nextID uint
	err    error
}

func (r *memContractRepo) FindByID(ctx context.Context, id uint) (*models.Contract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.items {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memContractRepo) ListByProject(ctx context.Context, projectID uint) ([]models.Contract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []models.Contract{}
	for _, c := range r.items {
		if c.ProjectID == projectID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memContractRepo) Create(ctx context.Context, contract *models.Contract) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	contract.ID = r.nextID
	r.items = append(r.items, *contract)
	return nil
}

func (r *memContractRepo) Update(ctx context.Context, contract *models.Contract) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == contract.ID {
			r.items[i] = *contract
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type memProcurementRepo struct {
	repository.ProcurementRepository
	mu     sync.Mutex
	items  []models.BOQ
	nextID uint
}

func (r *memProcurementRepo) ListBOQsByProject(ctx context.Context, projectID uint) ([]models.BOQ, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.BOQ{}
	for _, b := range r.items {
		if b.ProjectID == projectID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memProcurementRepo) CreateBOQ(ctx context.Context, boq *models.BOQ) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	boq.ID = r.nextID
	boq.CreatedAt = time.Now()
	r.items = append(r.items, *boq)
	return nil
}

type testServer struct {
	router    *gin.Engine
	storage   *storage.LocalStorage
	contracts *memContractRepo
}

// newTestServer wires the real services over in-memory repositories and
// mounts the API routes. Every request runs as user 7.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	models.UseNumericMoneyJSON()

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	worker := jobs.NewWorker(1)
	t.Cleanup(worker.Shutdown)

	contracts := &memContractRepo{}
	repos := &repository.Repositories{
		Project:     &memProjectRepo{items: map[uint]models.Project{}},
		Transaction: &memTransactionRepo{},
		Contract:    contracts,
		Procurement: &memProcurementRepo{},
	}
	cfg := &config.Config{CostBands: finance.DefaultBands, FetchTimeout: time.Second}
	h := NewHandlers(services.NewServices(repos, worker, store, cfg, nil, nil), store)

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		c.Set("userID", uint(7))
		c.Next()
	})

	api.GET("/projects", h.Project.Index)
	api.POST("/projects", h.Project.Create)
	api.GET("/projects/:project_id", h.Project.Show)
	api.PUT("/projects/:project_id", h.Project.Update)
	api.POST("/projects/:project_id/status", h.Project.ChangeStatus)
	api.POST("/projects/:project_id/notes", h.Project.AddNote)
	api.POST("/projects/:project_id/documents", h.Project.AttachDocument)
	api.GET("/projects/:project_id/documents", h.Report.Documents)
	api.GET("/projects/:project_id/financials", h.Report.Financials)
	api.GET("/projects/:project_id/cost_control", h.Report.CostControl)
	api.GET("/projects/:project_id/overview", h.Report.Overview)
	api.GET("/projects/:project_id/export", h.Report.Export)
	api.GET("/projects/:project_id/dossier", h.Report.DossierPreview)
	api.GET("/projects/:project_id/transactions", h.Transaction.Index)
	api.POST("/projects/:project_id/transactions", h.Transaction.Create)
	api.POST("/transactions/:transaction_id/submit", h.Transaction.Submit)
	api.POST("/transactions/:transaction_id/approve", h.Transaction.Approve)
	api.POST("/transactions/:transaction_id/reject", h.Transaction.Reject)
	api.POST("/transactions/:transaction_id/undo", h.Transaction.Undo)
	api.POST("/transactions/:transaction_id/attachments", h.Transaction.UploadReceipt)
	api.GET("/projects/:project_id/contracts", h.Contract.Index)
	api.POST("/projects/:project_id/contracts", h.Contract.Create)
	api.POST("/contracts/:contract_id/status", h.Contract.ChangeStatus)
	api.GET("/projects/:project_id/boqs", h.Procurement.Index)
	api.POST("/projects/:project_id/boqs", h.Procurement.Create)
	api.GET("/files/*path", h.File.Download)
	api.GET("/jobs/status", h.Job.Status)
	api.GET("/audit_logs", h.Audit.Index)

	return &testServer{router: r, storage: store, contracts: contracts}
}
