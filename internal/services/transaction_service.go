package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sjperalta/obrafin-api/internal/finance"
	"github.com/sjperalta/obrafin-api/internal/models"
	"github.com/sjperalta/obrafin-api/internal/repository"
	"github.com/sjperalta/obrafin-api/internal/statemachine"
)

const entityTransaction = "Transaction"

// TransactionInput is a new ledger entry as received from a client. Amount is
// coerced, so strings and malformed values are accepted and become zero.
type TransactionInput struct {
	Description    string
	Category       string
	Date           time.Time
	Amount         any
	Type           string
	IsMaterialCost bool
	IsLaborCost    bool
	Attachments    []models.Attachment
}

type TransactionService struct {
	repo     repository.TransactionRepository
	projects repository.ProjectRepository
	audit    *AuditService
}

func NewTransactionService(repo repository.TransactionRepository, projects repository.ProjectRepository, audit *AuditService) *TransactionService {
	return &TransactionService{repo: repo, projects: projects, audit: audit}
}

func (s *TransactionService) FindByID(ctx context.Context, id uint) (*models.Transaction, error) {
	tx, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateErr(entityTransaction, err)
	}
	return tx, nil
}

func (s *TransactionService) ListByProject(ctx context.Context, projectID uint) ([]models.Transaction, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, translateErr(entityProject, err)
	}
	return s.repo.ListByProject(ctx, projectID)
}

func (s *TransactionService) List(ctx context.Context, query *repository.ListQuery) ([]models.Transaction, int64, error) {
	return s.repo.List(ctx, query)
}

// Create books a draft transaction against a project.
func (s *TransactionService) Create(ctx context.Context, actor Actor, projectID uint, in TransactionInput) (*models.Transaction, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, translateErr(entityProject, err)
	}

	in.Description = strings.TrimSpace(in.Description)
	if in.Description == "" {
		return nil, invalidInput("la descripción es requerida")
	}
	if in.Type != models.TransactionTypeIncome && in.Type != models.TransactionTypeExpense {
		return nil, invalidInput(fmt.Sprintf("tipo de transacción desconocido: %s", in.Type))
	}
	if in.Type == models.TransactionTypeIncome && (in.IsMaterialCost || in.IsLaborCost) {
		return nil, invalidInput("un ingreso no puede ser costo de material o mano de obra")
	}
	if in.IsMaterialCost && in.IsLaborCost {
		return nil, invalidInput("la transacción no puede ser material y mano de obra a la vez")
	}
	if in.Date.IsZero() {
		in.Date = time.Now().UTC()
	}

	attachments := make([]models.Attachment, 0, len(in.Attachments))
	for _, att := range in.Attachments {
		if strings.TrimSpace(att.URL) == "" {
			continue
		}
		if att.ID == "" {
			att.ID = uuid.New().String()
		}
		attachments = append(attachments, att)
	}

	pid := projectID
	tx := &models.Transaction{
		ProjectID:      &pid,
		Description:    in.Description,
		Category:       strings.TrimSpace(in.Category),
		Date:           in.Date,
		Amount:         finance.CoerceAmount(in.Amount),
		Type:           in.Type,
		Status:         models.TransactionStatusDraft,
		IsMaterialCost: in.IsMaterialCost,
		IsLaborCost:    in.IsLaborCost,
		Attachments:    attachments,
	}
	if actor.UserID != 0 {
		uid := actor.UserID
		tx.CreatedByUserID = &uid
	}

	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, err
	}
	s.audit.LogAsync(actor, models.AuditActionCreate, entityTransaction, tx.ID, tx.Description)
	return tx, nil
}

// Submit sends a draft or rejected transaction for approval.
func (s *TransactionService) Submit(ctx context.Context, actor Actor, id uint) (*models.Transaction, error) {
	return s.transition(ctx, actor, id, func(m *statemachine.TransactionFSM, tx *models.Transaction) error {
		if err := m.Submit(ctx); err != nil {
			return err
		}
		tx.RejectionReason = nil
		return nil
	})
}

// Approve marks a transaction paid. Only paid transactions count in financials.
func (s *TransactionService) Approve(ctx context.Context, actor Actor, id uint) (*models.Transaction, error) {
	return s.transition(ctx, actor, id, func(m *statemachine.TransactionFSM, tx *models.Transaction) error {
		if err := m.Approve(ctx); err != nil {
			return err
		}
		now := time.Now().UTC()
		tx.PaidAt = &now
		return nil
	})
}

// Reject returns a submitted transaction to its author with a reason.
func (s *TransactionService) Reject(ctx context.Context, actor Actor, id uint, reason string) (*models.Transaction, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, invalidInput("el motivo de rechazo es requerido")
	}
	return s.transition(ctx, actor, id, func(m *statemachine.TransactionFSM, tx *models.Transaction) error {
		if err := m.Reject(ctx); err != nil {
			return err
		}
		tx.RejectionReason = &reason
		return nil
	})
}

// Undo reverts a paid transaction to submitted.
func (s *TransactionService) Undo(ctx context.Context, actor Actor, id uint) (*models.Transaction, error) {
	return s.transition(ctx, actor, id, func(m *statemachine.TransactionFSM, tx *models.Transaction) error {
		if err := m.Undo(ctx); err != nil {
			return err
		}
		tx.PaidAt = nil
		return nil
	})
}

func (s *TransactionService) transition(ctx context.Context, actor Actor, id uint, apply func(*statemachine.TransactionFSM, *models.Transaction) error) (*models.Transaction, error) {
	tx, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := tx.Status
	if err := apply(statemachine.NewTransactionFSM(tx), tx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	if err := s.repo.Update(ctx, tx); err != nil {
		return nil, err
	}
	s.audit.LogAsync(actor, models.AuditActionStatus, entityTransaction, tx.ID, fmt.Sprintf("%s -> %s", from, tx.Status))
	return tx, nil
}
