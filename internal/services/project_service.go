package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/obrafin-api/internal/models"
	"github.com/sjperalta/obrafin-api/internal/repository"
	"github.com/sjperalta/obrafin-api/internal/statemachine"
)

const entityProject = "Project"

type ProjectService struct {
	repo   repository.ProjectRepository
	audit  *AuditService
	policy statemachine.TransitionPolicy
}

// NewProjectService creates the project service. A nil policy allows every
// status transition.
func NewProjectService(repo repository.ProjectRepository, audit *AuditService, policy statemachine.TransitionPolicy) *ProjectService {
	return &ProjectService{repo: repo, audit: audit, policy: policy}
}

// ProjectChanges carries the editable fields of a project. Nil fields are kept.
type ProjectChanges struct {
	Code               *string
	Name               *string
	Type               *string
	ContractTotalValue *decimal.Decimal
	Address            *string
	ManagerID          *uint
	SalesIDs           *[]uint
	LaborIDs           *[]uint
}

func (s *ProjectService) FindByID(ctx context.Context, id uint) (*models.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateErr(entityProject, err)
	}
	return project, nil
}

func (s *ProjectService) List(ctx context.Context, query *repository.ListQuery) ([]models.Project, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *ProjectService) Create(ctx context.Context, actor Actor, project *models.Project) error {
	project.Name = strings.TrimSpace(project.Name)
	if project.Name == "" {
		return invalidInput("el nombre del proyecto es requerido")
	}
	if project.Type == "" {
		project.Type = models.ProjectTypeProjectScale
	}
	if !validProjectType(project.Type) {
		return invalidInput(fmt.Sprintf("tipo de proyecto desconocido: %s", project.Type))
	}
	if project.Status == "" {
		project.Status = models.ProjectStatusActive
	}
	if !models.IsValidProjectStatus(project.Status) {
		return invalidInput(fmt.Sprintf("estado de proyecto desconocido: %s", project.Status))
	}
	if project.ContractTotalValue != nil && project.ContractTotalValue.IsNegative() {
		return invalidInput("el valor del contrato no puede ser negativo")
	}

	if project.GUID == "" {
		project.GUID = uuid.New().String()
	}
	project.Code = strings.TrimSpace(project.Code)
	if project.Code == "" {
		project.Code = "PRJ-" + strings.ToUpper(project.GUID[:8])
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return err
	}
	s.audit.LogAsync(actor, models.AuditActionCreate, entityProject, project.ID, project.Name)
	return nil
}

// Update applies changes to the stored project and returns the saved copy.
// Status, notes and documents have their own operations and are never touched here.
func (s *ProjectService) Update(ctx context.Context, actor Actor, id uint, changes ProjectChanges) (*models.Project, error) {
	project, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if changes.Name != nil {
		name := strings.TrimSpace(*changes.Name)
		if name == "" {
			return nil, invalidInput("el nombre del proyecto es requerido")
		}
		project.Name = name
	}
	if changes.Code != nil && strings.TrimSpace(*changes.Code) != "" {
		project.Code = strings.TrimSpace(*changes.Code)
	}
	if changes.Type != nil {
		if !validProjectType(*changes.Type) {
			return nil, invalidInput(fmt.Sprintf("tipo de proyecto desconocido: %s", *changes.Type))
		}
		project.Type = *changes.Type
	}
	if changes.ContractTotalValue != nil {
		if changes.ContractTotalValue.IsNegative() {
			return nil, invalidInput("el valor del contrato no puede ser negativo")
		}
		v := *changes.ContractTotalValue
		project.ContractTotalValue = &v
	}
	if changes.Address != nil {
		project.Address = changes.Address
	}
	if changes.ManagerID != nil {
		project.ManagerID = changes.ManagerID
	}
	if changes.SalesIDs != nil {
		project.SalesIDs = *changes.SalesIDs
	}
	if changes.LaborIDs != nil {
		project.LaborIDs = *changes.LaborIDs
	}

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}
	s.audit.LogAsync(actor, models.AuditActionUpdate, entityProject, project.ID, project.Name)
	return project, nil
}

// ChangeStatus moves a project through its lifecycle. The project is re-read
// before the transition; callers must replace their copy with the result.
func (s *ProjectService) ChangeStatus(ctx context.Context, actor Actor, id uint, status string) (*models.Project, error) {
	project, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.IsValidProjectStatus(status) {
		return nil, invalidInput(fmt.Sprintf("estado de proyecto desconocido: %s", status))
	}

	from := project.Status
	machine := statemachine.NewProjectFSM(project, s.policy)
	if err := machine.TransitionTo(ctx, status); err != nil {
		if errors.Is(err, statemachine.ErrTransitionDenied) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidState, from, status)
		}
		return nil, err
	}
	if from == project.Status {
		return project, nil
	}

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}
	s.audit.LogAsync(actor, models.AuditActionStatus, entityProject, project.ID, fmt.Sprintf("%s -> %s", from, project.Status))
	return project, nil
}

// AddNote prepends a note to the project's log.
func (s *ProjectService) AddNote(ctx context.Context, actor Actor, id uint, content string) (*models.Project, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalidInput("la nota no puede estar vacía")
	}

	project, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := project.WithNote(models.ProjectNote{
		ID:        uuid.New().String(),
		Content:   content,
		AuthorID:  actor.UserID,
		CreatedAt: time.Now().UTC(),
	})
	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	s.audit.LogAsync(actor, models.AuditActionNote, entityProject, updated.ID, content)
	return &updated, nil
}

// AttachDocument stores a file or link reference on the project. Links are
// normalized to the uri-list mime type.
func (s *ProjectService) AttachDocument(ctx context.Context, actor Actor, id uint, doc models.ProjectDocument) (*models.Project, error) {
	doc.Name = strings.TrimSpace(doc.Name)
	doc.URL = strings.TrimSpace(doc.URL)
	if doc.Name == "" || doc.URL == "" {
		return nil, invalidInput("el documento requiere nombre y url")
	}
	switch doc.Type {
	case "", models.DocumentTypeFile:
		doc.Type = models.DocumentTypeFile
	case models.DocumentTypeLink:
		doc.MimeType = models.MimeTypeURIList
	default:
		return nil, invalidInput(fmt.Sprintf("tipo de documento desconocido: %s", doc.Type))
	}
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}

	project, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := project.WithDocument(doc)
	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	s.audit.LogAsync(actor, models.AuditActionAttach, entityProject, updated.ID, doc.Name)
	return &updated, nil
}

func validProjectType(t string) bool {
	return t == models.ProjectTypeRetail || t == models.ProjectTypeProjectScale
}
