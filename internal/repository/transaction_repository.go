package repository

import (
	"context"

	"github.com/sjperalta/obrafin-api/internal/models"
	"gorm.io/gorm"
)

// TransactionRepository defines the interface for ledger data access
type TransactionRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Transaction, error)
	ListByProject(ctx context.Context, projectID uint) ([]models.Transaction, error)
	List(ctx context.Context, query *ListQuery) ([]models.Transaction, int64, error)
	Create(ctx context.Context, tx *models.Transaction) error
	Update(ctx context.Context, tx *models.Transaction) error
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

var transactionSortable = map[string]bool{
	"date": true, "amount": true, "status": true, "type": true, "created_at": true,
}

func (r *transactionRepository) FindByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.WithContext(ctx).First(&tx, id).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// ListByProject retrieves every transaction booked against a project, oldest first
func (r *transactionRepository) ListByProject(ctx context.Context, projectID uint) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("date ASC, id ASC").
		Find(&txs).Error
	return txs, err
}

func (r *transactionRepository) List(ctx context.Context, query *ListQuery) ([]models.Transaction, int64, error) {
	var txs []models.Transaction
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Transaction{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("description ILIKE ? OR category ILIKE ?", search, search)
	}

	if val := query.Filters["project_id"]; val != "" {
		db = db.Where("project_id = ?", val)
	}
	if val := query.Filters["status"]; val != "" {
		db = db.Where("status = ?", val)
	}
	if val := query.Filters["type"]; val != "" {
		db = db.Where("type = ?", val)
	}
	if val := query.Filters["start_date"]; val != "" {
		db = db.Where("date >= ?", val)
	}
	if val := query.Filters["end_date"]; val != "" {
		db = db.Where("date <= ?", val)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(db, query, transactionSortable, "date DESC, id DESC").Find(&txs).Error
	return txs, total, err
}

func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *transactionRepository) Update(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Save(tx).Error
}
