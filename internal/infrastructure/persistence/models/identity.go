package models

import (
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/identity"
	"github.com/google/uuid"
)

// TenantModel is the persistence model for the Tenant aggregate root.
type TenantModel struct {
	AggregateModel
	Code     string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name     string `gorm:"type:varchar(200);not null"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant entity.
func (m *TenantModel) ToDomain() *identity.Tenant {
	tenant := &identity.Tenant{
		Code:     m.Code,
		Name:     m.Name,
		IsActive: m.IsActive,
	}
	m.PopulateAggregateRoot(&tenant.BaseAggregateRoot)
	return tenant
}

// FromDomain populates the persistence model from a domain Tenant entity.
func (m *TenantModel) FromDomain(t *identity.Tenant) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.Code = t.Code
	m.Name = t.Name
	m.IsActive = t.IsActive
}

// TenantModelFromDomain creates a new persistence model from a domain Tenant entity.
func TenantModelFromDomain(t *identity.Tenant) *TenantModel {
	m := &TenantModel{}
	m.FromDomain(t)
	return m
}

// UserModel is the persistence model for the User aggregate root.
type UserModel struct {
	TenantAggregateModel
	Username       string              `gorm:"type:varchar(100);not null;uniqueIndex:idx_user_tenant_username,priority:2"`
	Email          string              `gorm:"type:varchar(200)"`
	PasswordHash   string              `gorm:"type:varchar(255);not null"`
	DisplayName    string              `gorm:"type:varchar(200)"`
	RoleCode       string              `gorm:"type:varchar(50);not null;index"`
	Status         identity.UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt    *time.Time          `gorm:"index"`
	LastLoginIP    string              `gorm:"type:varchar(45)"`
	FailedAttempts int                 `gorm:"not null;default:0"`
	LockedUntil    *time.Time
	Notes          string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	user := &identity.User{
		Username:       m.Username,
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		DisplayName:    m.DisplayName,
		RoleCode:       m.RoleCode,
		Status:         m.Status,
		LastLoginAt:    m.LastLoginAt,
		LastLoginIP:    m.LastLoginIP,
		FailedAttempts: m.FailedAttempts,
		LockedUntil:    m.LockedUntil,
		Notes:          m.Notes,
	}
	m.PopulateTenantAggregateRoot(&user.TenantAggregateRoot)
	return user
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainTenantAggregateRoot(u.TenantAggregateRoot)
	m.Username = u.Username
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.DisplayName = u.DisplayName
	m.RoleCode = u.RoleCode
	m.Status = u.Status
	m.LastLoginAt = u.LastLoginAt
	m.LastLoginIP = u.LastLoginIP
	m.FailedAttempts = u.FailedAttempts
	m.LockedUntil = u.LockedUntil
	m.Notes = u.Notes
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

// RoleModel is the persistence model for the global role catalog.
// Roles are shared across tenants, so there is no tenant column.
type RoleModel struct {
	AggregateModel
	Code        string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`
	IsSuperrole bool   `gorm:"not null;default:false"`
	SortOrder   int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (RoleModel) TableName() string {
	return "roles"
}

// ToDomain converts the persistence model to a domain Role entity.
func (m *RoleModel) ToDomain() *identity.Role {
	role := &identity.Role{
		Code:        m.Code,
		Name:        m.Name,
		Description: m.Description,
		IsSuperrole: m.IsSuperrole,
		SortOrder:   m.SortOrder,
	}
	m.PopulateAggregateRoot(&role.BaseAggregateRoot)
	return role
}

// FromDomain populates the persistence model from a domain Role entity.
func (m *RoleModel) FromDomain(r *identity.Role) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.Code = r.Code
	m.Name = r.Name
	m.Description = r.Description
	m.IsSuperrole = r.IsSuperrole
	m.SortOrder = r.SortOrder
}

// RoleModelFromDomain creates a new persistence model from a domain Role entity.
func RoleModelFromDomain(r *identity.Role) *RoleModel {
	m := &RoleModel{}
	m.FromDomain(r)
	return m
}

// PermissionModel is the persistence model for the permission catalog.
type PermissionModel struct {
	BaseModel
	Code        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`
	Category    string `gorm:"type:varchar(50);not null;index"`
}

// TableName returns the table name for GORM
func (PermissionModel) TableName() string {
	return "permissions"
}

// ToDomain converts the persistence model to a domain Permission entity.
func (m *PermissionModel) ToDomain() *identity.Permission {
	return &identity.Permission{
		BaseEntity:  m.BaseModel.ToDomain(),
		Code:        m.Code,
		Name:        m.Name,
		Description: m.Description,
		Category:    m.Category,
	}
}

// FromDomain populates the persistence model from a domain Permission entity.
func (m *PermissionModel) FromDomain(p *identity.Permission) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Code = p.Code
	m.Name = p.Name
	m.Description = p.Description
	m.Category = p.Category
}

// PermissionModelFromDomain creates a new persistence model from a domain Permission entity.
func PermissionModelFromDomain(p *identity.Permission) *PermissionModel {
	m := &PermissionModel{}
	m.FromDomain(p)
	return m
}

// RolePermissionModel is the persistence model for a grant record.
// The role and permission pair is unique; Granted carries the decision
// so a revocation is stored as an explicit false row.
type RolePermissionModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	RoleID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_role_permission_pair,priority:1"`
	PermissionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_role_permission_pair,priority:2"`
	Granted      bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RolePermissionModel) TableName() string {
	return "role_permissions"
}

// ToDomain converts the persistence model to a domain RolePermission entity.
func (m *RolePermissionModel) ToDomain() *identity.RolePermission {
	return &identity.RolePermission{
		ID:           m.ID,
		RoleID:       m.RoleID,
		PermissionID: m.PermissionID,
		Granted:      m.Granted,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain RolePermission entity.
func (m *RolePermissionModel) FromDomain(rp *identity.RolePermission) {
	m.ID = rp.ID
	m.RoleID = rp.RoleID
	m.PermissionID = rp.PermissionID
	m.Granted = rp.Granted
	m.CreatedAt = rp.CreatedAt
	m.UpdatedAt = rp.UpdatedAt
}

// RolePermissionModelFromDomain creates a new persistence model from a domain RolePermission entity.
func RolePermissionModelFromDomain(rp *identity.RolePermission) *RolePermissionModel {
	m := &RolePermissionModel{}
	m.FromDomain(rp)
	return m
}
