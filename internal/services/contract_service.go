package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sjperalta/obrafin-api/internal/finance"
	"github.com/sjperalta/obrafin-api/internal/models"
	"github.com/sjperalta/obrafin-api/internal/repository"
	"github.com/sjperalta/obrafin-api/internal/statemachine"
)

const entityContract = "Contract"

// ContractInput is a new contract as received from a client.
type ContractInput struct {
	Code        string
	Name        string
	Type        string
	PartnerName string
	Value       any
	SignedDate  *time.Time
	FileLink    *string
}

type ContractService struct {
	repo     repository.ContractRepository
	projects repository.ProjectRepository
	audit    *AuditService
}

func NewContractService(repo repository.ContractRepository, projects repository.ProjectRepository, audit *AuditService) *ContractService {
	return &ContractService{repo: repo, projects: projects, audit: audit}
}

func (s *ContractService) FindByID(ctx context.Context, id uint) (*models.Contract, error) {
	contract, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateErr(entityContract, err)
	}
	return contract, nil
}

func (s *ContractService) ListByProject(ctx context.Context, projectID uint) ([]models.Contract, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, translateErr(entityProject, err)
	}
	return s.repo.ListByProject(ctx, projectID)
}

func (s *ContractService) Create(ctx context.Context, actor Actor, projectID uint, in ContractInput) (*models.Contract, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, translateErr(entityProject, err)
	}

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, invalidInput("el nombre del contrato es requerido")
	}
	if !validContractType(in.Type) {
		return nil, invalidInput(fmt.Sprintf("tipo de contrato desconocido: %s", in.Type))
	}

	contract := &models.Contract{
		ProjectID:   projectID,
		Code:        strings.TrimSpace(in.Code),
		Name:        in.Name,
		Type:        in.Type,
		PartnerName: strings.TrimSpace(in.PartnerName),
		Value:       finance.CoerceAmount(in.Value),
		Status:      models.ContractStatusDraft,
		SignedDate:  in.SignedDate,
	}
	if in.FileLink != nil && strings.TrimSpace(*in.FileLink) != "" {
		link := strings.TrimSpace(*in.FileLink)
		contract.FileLink = &link
	}

	if err := s.repo.Create(ctx, contract); err != nil {
		return nil, err
	}
	s.audit.LogAsync(actor, models.AuditActionCreate, entityContract, contract.ID, contract.Name)
	return contract, nil
}

// ChangeStatus fires a contract event (sign, complete, terminate, reopen).
func (s *ContractService) ChangeStatus(ctx context.Context, actor Actor, id uint, event string) (*models.Contract, error) {
	contract, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := contract.Status
	if err := statemachine.NewContractFSM(contract).Fire(ctx, event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if event == "sign" && contract.SignedDate == nil {
		now := time.Now().UTC()
		contract.SignedDate = &now
	}

	if err := s.repo.Update(ctx, contract); err != nil {
		return nil, err
	}
	s.audit.LogAsync(actor, models.AuditActionStatus, entityContract, contract.ID, fmt.Sprintf("%s -> %s", from, contract.Status))
	return contract, nil
}

func validContractType(t string) bool {
	switch t {
	case models.ContractTypeRevenue, models.ContractTypeSupplierMaterial,
		models.ContractTypeSupplierLabor, models.ContractTypeSubcontract:
		return true
	}
	return false
}
