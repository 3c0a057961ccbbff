package services

import (
	"context"
	"errors"
	"sync"

	"github.com/sjperalta/obrafin-api/internal/models"
	"github.com/sjperalta/obrafin-api/internal/repository"
	"gorm.io/gorm"
)

var errBackendDown = errors.New("backend down")

// memProjectRepo is an in-memory ProjectRepository
type memProjectRepo struct {
	repository.ProjectRepository
	mu     sync.Mutex
	items  map[uint]models.Project
	nextID uint
	saves  int
}

func newMemProjectRepo(projects ...models.Project) *memProjectRepo {
	r := &memProjectRepo{items: map[uint]models.Project{}}
	for _, p := range projects {
		r.items[p.ID] = p
		if p.ID > r.nextID {
			r.nextID = p.ID
		}
	}
	return r
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
	r.items[project.ID] = *project
	return nil
}

func (r *memProjectRepo) Update(ctx context.Context, project *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	r.items[project.ID] = *project
	return nil
}

func (r *memProjectRepo) ListByStatus(ctx context.Context, status string) ([]models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Project
	for id := uint(1); id <= r.nextID; id++ {
		if p, ok := r.items[id]; ok && p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

// memTransactionRepo is an in-memory TransactionRepository
type memTransactionRepo struct {
	repository.TransactionRepository
	mu     sync.Mutex
	items  []models.Transaction
	err    error
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
	if r.err != nil {
		return nil, r.err
	}
	var out []models.Transaction
	for _, tx := range r.items {
		if tx.BelongsTo(projectID) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (r *memTransactionRepo) Create(ctx context.Context, tx *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	tx.ID = 1000 + r.nextID
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

// memContractRepo is an in-memory ContractRepository
type memContractRepo struct {
	repository.ContractRepository
	mu    sync.Mutex
	items []models.Contract
	err   error
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
	var out []models.Contract
	for _, c := range r.items {
		if c.ProjectID == projectID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memContractRepo) Create(ctx context.Context, c *models.Contract) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = uint(len(r.items) + 1)
	r.items = append(r.items, *c)
	return nil
}

func (r *memContractRepo) Update(ctx context.Context, c *models.Contract) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == c.ID {
			r.items[i] = *c
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// memProcurementRepo is an in-memory ProcurementRepository
type memProcurementRepo struct {
	repository.ProcurementRepository
	mu    sync.Mutex
	items []models.BOQ
	err   error
}

func (r *memProcurementRepo) ListBOQsByProject(ctx context.Context, projectID uint) ([]models.BOQ, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []models.BOQ
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
	boq.ID = uint(len(r.items) + 1)
	r.items = append(r.items, *boq)
	return nil
}

// fixture wires in-memory repositories into a loader.
type fixture struct {
	projects     *memProjectRepo
	transactions *memTransactionRepo
	contracts    *memContractRepo
	procurement  *memProcurementRepo
	loader       *sourceLoader
	audit        *AuditService
}

func newFixture(projects ...models.Project) *fixture {
	f := &fixture{
		projects:     newMemProjectRepo(projects...),
		transactions: &memTransactionRepo{},
		contracts:    &memContractRepo{},
		procurement:  &memProcurementRepo{},
		audit:        NewAuditService(nil, nil),
	}
	f.loader = &sourceLoader{
		projects:     f.projects,
		transactions: f.transactions,
		contracts:    f.contracts,
		procurement:  f.procurement,
	}
	return f
}
