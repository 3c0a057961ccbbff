package services

import (
	"context"
	"io"
	"strings"

	"github.com/sjperalta/obrafin-api/internal/models"
	"github.com/sjperalta/obrafin-api/internal/repository"
	"github.com/sjperalta/obrafin-api/internal/storage"
)

const entityBOQ = "BOQ"

// FileURLPrefix is where stored files are served from.
const FileURLPrefix = "/api/v1/files/"

type ProcurementService struct {
	repo     repository.ProcurementRepository
	projects repository.ProjectRepository
	storage  *storage.LocalStorage
	audit    *AuditService
}

func NewProcurementService(repo repository.ProcurementRepository, projects repository.ProjectRepository, storage *storage.LocalStorage, audit *AuditService) *ProcurementService {
	return &ProcurementService{repo: repo, projects: projects, storage: storage, audit: audit}
}

func (s *ProcurementService) ListBOQs(ctx context.Context, projectID uint) ([]models.BOQ, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, translateErr(entityProject, err)
	}
	return s.repo.ListBOQsByProject(ctx, projectID)
}

// CreateBOQ registers a bill of quantities already hosted at fileURL.
func (s *ProcurementService) CreateBOQ(ctx context.Context, actor Actor, projectID uint, name, fileURL string) (*models.BOQ, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, translateErr(entityProject, err)
	}
	name = strings.TrimSpace(name)
	fileURL = strings.TrimSpace(fileURL)
	if name == "" || fileURL == "" {
		return nil, invalidInput("el BOQ requiere nombre y archivo")
	}

	boq := &models.BOQ{ProjectID: projectID, Name: name, FileURL: fileURL}
	if err := s.repo.CreateBOQ(ctx, boq); err != nil {
		return nil, err
	}
	s.audit.LogAsync(actor, models.AuditActionCreate, entityBOQ, boq.ID, boq.Name)
	return boq, nil
}

// UploadBOQ stores the uploaded file and registers it.
func (s *ProcurementService) UploadBOQ(ctx context.Context, actor Actor, projectID uint, name string, r io.Reader, filename string) (*models.BOQ, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, translateErr(entityProject, err)
	}
	if strings.TrimSpace(name) == "" {
		name = filename
	}
	rel, err := s.storage.Upload(r, filename, "boqs")
	if err != nil {
		return nil, err
	}
	return s.CreateBOQ(ctx, actor, projectID, name, FileURLPrefix+rel)
}
