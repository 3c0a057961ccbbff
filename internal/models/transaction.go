package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a single cash movement in the ledger. ProjectID is nil for
// cost-center spending that is not tied to a project.
type Transaction struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	ProjectID       *uint           `gorm:"index" json:"project_id"`
	Description     string          `gorm:"not null" json:"description"`
	Category        string          `json:"category"`
	Date            time.Time       `gorm:"type:date;not null;index" json:"date"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Type            string          `gorm:"not null;index" json:"type"`
	Status          string          `gorm:"default:draft;not null;index" json:"status"`
	IsMaterialCost  bool            `gorm:"default:false" json:"is_material_cost"`
	IsLaborCost     bool            `gorm:"default:false" json:"is_labor_cost"`
	Attachments     []Attachment    `gorm:"serializer:json;type:jsonb" json:"attachments"`
	PaidAt          *time.Time      `json:"paid_at"`
	RejectionReason *string         `gorm:"type:text" json:"rejection_reason,omitempty"`
	CreatedByUserID *uint           `gorm:"index" json:"created_by_user_id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}

// Transaction type constants
const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
)

// Transaction status constants
const (
	TransactionStatusDraft     = "draft"
	TransactionStatusSubmitted = "submitted"
	TransactionStatusPaid      = "paid"
	TransactionStatusRejected  = "rejected"
)

// BelongsTo reports whether the transaction is booked against projectID.
func (t *Transaction) BelongsTo(projectID uint) bool {
	return t.ProjectID != nil && *t.ProjectID == projectID
}

// IsPaid reports whether the transaction counts as realized money.
func (t *Transaction) IsPaid() bool {
	return t.Status == TransactionStatusPaid
}

// MaySubmit returns true if the transaction can be sent for approval
func (t *Transaction) MaySubmit() bool {
	return t.Status == TransactionStatusDraft || t.Status == TransactionStatusRejected
}

// MayApprove returns true if the transaction can be marked paid
func (t *Transaction) MayApprove() bool {
	return t.Status == TransactionStatusDraft || t.Status == TransactionStatusSubmitted
}

// MayReject returns true if the transaction can be rejected
func (t *Transaction) MayReject() bool {
	return t.Status == TransactionStatusSubmitted
}

// MayUndo returns true if a paid transaction can go back to submitted
func (t *Transaction) MayUndo() bool {
	return t.Status == TransactionStatusPaid
}

// BeforeCreate fills status defaults.
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.Status == "" {
		t.Status = TransactionStatusDraft
	}
	return nil
}
