package models

import (
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/audit"
	"github.com/google/uuid"
)

// AuditLogModel is the persistence model for an audit trail entry.
// Entries are write-once, so the model carries no UpdatedAt or Version.
type AuditLogModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key"`
	TenantID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_audit_tenant_time,priority:1"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Username   string     `gorm:"type:varchar(100);not null"`
	Action     string     `gorm:"type:varchar(50);not null;index"`
	EntityType string     `gorm:"type:varchar(50);index"`
	EntityID   *uuid.UUID `gorm:"type:uuid;index"`
	Details    string     `gorm:"type:text"`
	IPAddress  string     `gorm:"type:varchar(45)"`
	CreatedAt  time.Time  `gorm:"not null;index:idx_audit_tenant_time,priority:2"`
}

// TableName returns the table name for GORM
func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// ToDomain converts the persistence model to a domain AuditLog entity.
func (m *AuditLogModel) ToDomain() *audit.AuditLog {
	return &audit.AuditLog{
		ID:         m.ID,
		TenantID:   m.TenantID,
		UserID:     m.UserID,
		Username:   m.Username,
		Action:     m.Action,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Details:    m.Details,
		IPAddress:  m.IPAddress,
		CreatedAt:  m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain AuditLog entry.
func (m *AuditLogModel) FromDomain(e *audit.AuditLog) {
	m.ID = e.ID
	m.TenantID = e.TenantID
	m.UserID = e.UserID
	m.Username = e.Username
	m.Action = e.Action
	m.EntityType = e.EntityType
	m.EntityID = e.EntityID
	m.Details = e.Details
	m.IPAddress = e.IPAddress
	m.CreatedAt = e.CreatedAt
}

// AuditLogModelFromDomain creates a new persistence model from a domain AuditLog entry.
func AuditLogModelFromDomain(e *audit.AuditLog) *AuditLogModel {
	m := &AuditLogModel{}
	m.FromDomain(e)
	return m
}
