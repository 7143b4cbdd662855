package persistence

import (
	"context"
	"errors"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/identity"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/Codesaur1618/Skandaenterpriese/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRolePermissionRepository implements identity.RolePermissionRepository using GORM
type GormRolePermissionRepository struct {
	db *gorm.DB
}

// NewGormRolePermissionRepository creates a new GormRolePermissionRepository
func NewGormRolePermissionRepository(db *gorm.DB) *GormRolePermissionRepository {
	return &GormRolePermissionRepository{db: db}
}

// FindByRole retrieves all grant records for a role
func (r *GormRolePermissionRepository) FindByRole(ctx context.Context, roleID uuid.UUID) ([]*identity.RolePermission, error) {
	var grantModels []models.RolePermissionModel
	if err := dbForContext(ctx, r.db).
		Where("role_id = ?", roleID).
		Find(&grantModels).Error; err != nil {
		return nil, err
	}

	grants := make([]*identity.RolePermission, len(grantModels))
	for i := range grantModels {
		grants[i] = grantModels[i].ToDomain()
	}
	return grants, nil
}

// FindByRoleAndPermission retrieves one grant record
func (r *GormRolePermissionRepository) FindByRoleAndPermission(ctx context.Context, roleID, permissionID uuid.UUID) (*identity.RolePermission, error) {
	var model models.RolePermissionModel
	if err := dbForContext(ctx, r.db).
		Where("role_id = ? AND permission_id = ?", roleID, permissionID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a grant record
func (r *GormRolePermissionRepository) Save(ctx context.Context, grant *identity.RolePermission) error {
	model := models.RolePermissionModelFromDomain(grant)
	return dbForContext(ctx, r.db).Save(model).Error
}

// SaveBatch persists multiple grant records in one transaction
func (r *GormRolePermissionRepository) SaveBatch(ctx context.Context, grants []*identity.RolePermission) error {
	if len(grants) == 0 {
		return nil
	}

	grantModels := make([]*models.RolePermissionModel, len(grants))
	for i, g := range grants {
		grantModels[i] = models.RolePermissionModelFromDomain(g)
	}

	return dbForContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		for _, model := range grantModels {
			if err := tx.Save(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Ensure GormRolePermissionRepository implements RolePermissionRepository
var _ identity.RolePermissionRepository = (*GormRolePermissionRepository)(nil)
