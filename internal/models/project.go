package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UseNumericMoneyJSON makes decimal amounts marshal as JSON numbers rather than
// quoted strings. The setting is process-wide; call it once at startup.
func UseNumericMoneyJSON() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Project is the aggregate root of a construction job. Transactions, contracts
// and BOQs point at it by ID; it does not own them.
type Project struct {
	ID                 uint              `gorm:"primaryKey" json:"id"`
	GUID               string            `gorm:"column:guid;not null;uniqueIndex" json:"guid"`
	Code               string            `gorm:"not null;uniqueIndex" json:"code"`
	Name               string            `gorm:"not null" json:"name"`
	Type               string            `gorm:"default:project_scale" json:"type"`
	Status             string            `gorm:"default:active;index" json:"status"`
	ContractTotalValue *decimal.Decimal  `gorm:"type:decimal(15,2)" json:"contract_total_value"`
	Address            *string           `json:"address"`
	ManagerID          *uint             `gorm:"index" json:"manager_id"`
	SalesIDs           []uint            `gorm:"serializer:json;type:jsonb" json:"sales_ids"`
	LaborIDs           []uint            `gorm:"serializer:json;type:jsonb" json:"labor_ids"`
	Notes              []ProjectNote     `gorm:"serializer:json;type:jsonb" json:"notes"`
	Documents          []ProjectDocument `gorm:"serializer:json;type:jsonb" json:"documents"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// TableName specifies the table name for Project
func (Project) TableName() string {
	return "projects"
}

// Project type constants
const (
	ProjectTypeRetail       = "retail"
	ProjectTypeProjectScale = "project_scale"
)

// Project status constants
const (
	ProjectStatusActive    = "active"
	ProjectStatusSuspended = "suspended"
	ProjectStatusCompleted = "completed"
	ProjectStatusCancelled = "cancelled"
)

// ProjectStatuses lists every lifecycle status.
var ProjectStatuses = []string{
	ProjectStatusActive,
	ProjectStatusSuspended,
	ProjectStatusCompleted,
	ProjectStatusCancelled,
}

// IsValidProjectStatus reports whether s is a known lifecycle status.
func IsValidProjectStatus(s string) bool {
	for _, st := range ProjectStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// BeforeCreate fills lifecycle defaults.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.Status == "" {
		p.Status = ProjectStatusActive
	}
	if p.Type == "" {
		p.Type = ProjectTypeProjectScale
	}
	return nil
}

// WithNote returns a copy of the project with note prepended. The receiver's
// slices are left untouched so snapshots held elsewhere stay valid.
func (p Project) WithNote(note ProjectNote) Project {
	notes := make([]ProjectNote, 0, len(p.Notes)+1)
	notes = append(notes, note)
	notes = append(notes, p.Notes...)
	p.Notes = notes
	return p
}

// WithDocument returns a copy of the project with doc appended.
func (p Project) WithDocument(doc ProjectDocument) Project {
	docs := make([]ProjectDocument, 0, len(p.Documents)+1)
	docs = append(docs, p.Documents...)
	docs = append(docs, doc)
	p.Documents = docs
	return p
}

// ProjectResponse is the JSON response format for projects
type ProjectResponse struct {
	ID                 uint              `json:"id"`
	GUID               string            `json:"guid"`
	Code               string            `json:"code"`
	Name               string            `json:"name"`
	Type               string            `json:"type"`
	Status             string            `json:"status"`
	ContractTotalValue *decimal.Decimal  `json:"contract_total_value"`
	Address            *string           `json:"address"`
	ManagerID          *uint             `json:"manager_id"`
	SalesIDs           []uint            `json:"sales_ids"`
	LaborIDs           []uint            `json:"labor_ids"`
	NoteCount          int               `json:"note_count"`
	Notes              []ProjectNote     `json:"notes"`
	Documents          []ProjectDocument `json:"documents"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// ToResponse converts Project to ProjectResponse
func (p *Project) ToResponse() ProjectResponse {
	resp := ProjectResponse{
		ID:                 p.ID,
		GUID:               p.GUID,
		Code:               p.Code,
		Name:               p.Name,
		Type:               p.Type,
		Status:             p.Status,
		ContractTotalValue: p.ContractTotalValue,
		Address:            p.Address,
		ManagerID:          p.ManagerID,
		SalesIDs:           p.SalesIDs,
		LaborIDs:           p.LaborIDs,
		NoteCount:          len(p.Notes),
		Notes:              p.Notes,
		Documents:          p.Documents,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
	if resp.SalesIDs == nil {
		resp.SalesIDs = []uint{}
	}
	if resp.LaborIDs == nil {
		resp.LaborIDs = []uint{}
	}
	if resp.Notes == nil {
		resp.Notes = []ProjectNote{}
	}
	if resp.Documents == nil {
		resp.Documents = []ProjectDocument{}
	}
	return resp
}
