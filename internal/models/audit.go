package models

import (
	"time"
)

// AuditLog records who changed what on a project-side entity
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;default:0;index" json:"user_id"` // 0 = system
	Action    string    `gorm:"size:50;not null" json:"action"`          // CREATE, UPDATE, STATUS, NOTE, ATTACH
	Entity    string    `gorm:"size:50;not null;index:idx_audit_entity" json:"entity"`
	EntityID  uint      `gorm:"index:idx_audit_entity" json:"entity_id"`
	Details   string    `gorm:"type:text" json:"details"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	UserAgent string    `gorm:"size:255" json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// Audit action constants
const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionStatus = "STATUS"
	AuditActionNote   = "NOTE"
	AuditActionAttach = "ATTACH"
)
