package services

import (
	"context"
	"log/slog"

	"github.com/sjperalta/obrafin-api/internal/jobs"
	"github.com/sjperalta/obrafin-api/internal/models"
	"github.com/sjperalta/obrafin-api/pkg/logger"
	"gorm.io/gorm"
)

// Actor identifies who triggered a change. UserID 0 is the system.
type Actor struct {
	UserID    uint
	IP        string
	UserAgent string
}

// SystemActor is used by scheduled jobs.
var SystemActor = Actor{}

type AuditService struct {
	db     *gorm.DB
	worker *jobs.Worker
}

func NewAuditService(db *gorm.DB, worker *jobs.Worker) *AuditService {
	return &AuditService{db: db, worker: worker}
}

// Log records an audit entry
func (s *AuditService) Log(ctx context.Context, actor Actor, action, entity string, entityID uint, details string) error {
	if s == nil || s.db == nil {
		return nil
	}
	entry := &models.AuditLog{
		UserID:    actor.UserID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Details:   details,
		IPAddress: actor.IP,
		UserAgent: actor.UserAgent,
	}
	return s.db.WithContext(ctx).Create(entry).Error
}

// LogAsync records an audit entry on the worker pool. Failures are logged only.
func (s *AuditService) LogAsync(actor Actor, action, entity string, entityID uint, details string) {
	if s == nil || s.db == nil {
		return
	}
	write := func(ctx context.Context) error {
		return s.Log(ctx, actor, action, entity, entityID, details)
	}
	if s.worker == nil {
		if err := write(context.Background()); err != nil {
			logger.Error("audit write failed", slog.String("entity", entity), slog.Any("error", err))
		}
		return
	}
	s.worker.EnqueueAsync("audit", write)
}

// List retrieves audit logs for one entity, newest first
func (s *AuditService) List(ctx context.Context, entity string, entityID uint, limit, offset int) ([]models.AuditLog, int64, error) {
	logs := []models.AuditLog{}
	var total int64
	if s == nil || s.db == nil {
		return logs, 0, nil
	}

	db := s.db.WithContext(ctx).Model(&models.AuditLog{}).Where("entity = ? AND entity_id = ?", entity, entityID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at desc").Limit(limit).Offset(offset).Find(&logs).Error
	return logs, total, err
}
