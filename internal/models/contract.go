package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Contract is a revenue or supplier agreement linked to a project.
type Contract struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	ProjectID   uint            `gorm:"not null;index" json:"project_id"`
	Code        string          `gorm:"index" json:"code"`
	Name        string          `gorm:"not null" json:"name"`
	Type        string          `gorm:"not null;index" json:"type"`
	PartnerName string          `json:"partner_name"`
	Value       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"value"`
	Status      string          `gorm:"default:draft;index" json:"status"`
	SignedDate  *time.Time      `gorm:"type:date" json:"signed_date"`
	FileLink    *string         `json:"file_link"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName specifies the table name for Contract
func (Contract) TableName() string {
	return "contracts"
}

// Contract type constants
const (
	ContractTypeRevenue          = "revenue"
	ContractTypeSupplierMaterial = "supplier_material"
	ContractTypeSupplierLabor    = "supplier_labor"
	ContractTypeSubcontract      = "subcontract"
)

// Contract status constants
const (
	ContractStatusDraft      = "draft"
	ContractStatusSigned     = "signed"
	ContractStatusCompleted  = "completed"
	ContractStatusTerminated = "terminated"
)

// IsRevenue reports whether the contract brings money into the project.
func (c *Contract) IsRevenue() bool {
	return c.Type == ContractTypeRevenue
}

// HasFile reports whether a file link is attached.
func (c *Contract) HasFile() bool {
	return c.FileLink != nil && *c.FileLink != ""
}

// MaySign returns true if contract can transition to signed
func (c *Contract) MaySign() bool {
	return c.Status == ContractStatusDraft
}

// MayComplete returns true if contract can be completed
func (c *Contract) MayComplete() bool {
	return c.Status == ContractStatusSigned
}

// MayTerminate returns true if contract can be terminated
func (c *Contract) MayTerminate() bool {
	return c.Status == ContractStatusDraft || c.Status == ContractStatusSigned
}

// MayReopen returns true if a finished contract can go back to signed
func (c *Contract) MayReopen() bool {
	return c.Status == ContractStatusCompleted || c.Status == ContractStatusTerminated
}

// BeforeCreate fills status defaults.
func (c *Contract) BeforeCreate(tx *gorm.DB) error {
	if c.Status == "" {
		c.Status = ContractStatusDraft
	}
	return nil
}
