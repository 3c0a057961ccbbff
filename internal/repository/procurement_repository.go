package repository

import (
	"context"

	"github.com/sjperalta/obrafin-api/internal/models"
	"gorm.io/gorm"
)

// ProcurementRepository defines the interface for bill-of-quantities data access
type ProcurementRepository interface {
	ListBOQsByProject(ctx context.Context, projectID uint) ([]models.BOQ, error)
	CreateBOQ(ctx context.Context, boq *models.BOQ) error
}

type procurementRepository struct {
	db *gorm.DB
}

// NewProcurementRepository creates a new procurement repository
func NewProcurementRepository(db *gorm.DB) ProcurementRepository {
	return &procurementRepository{db: db}
}

func (r *procurementRepository) ListBOQsByProject(ctx context.Context, projectID uint) ([]models.BOQ, error) {
	var boqs []models.BOQ
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&boqs).Error
	return boqs, err
}

func (r *procurementRepository) CreateBOQ(ctx context.Context, boq *models.BOQ) error {
	return r.db.WithContext(ctx).Create(boq).Error
}
