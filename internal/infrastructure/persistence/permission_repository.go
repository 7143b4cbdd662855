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

// GormPermissionRepository implements identity.PermissionRepository using GORM
type GormPermissionRepository struct {
	db *gorm.DB
}

// NewGormPermissionRepository creates a new GormPermissionRepository
func NewGormPermissionRepository(db *gorm.DB) *GormPermissionRepository {
	return &GormPermissionRepository{db: db}
}

// FindByID finds a permission by its ID
func (r *GormPermissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Permission, error) {
	var model models.PermissionModel
	if err := dbForContext(ctx, r.db).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a permission by its code
func (r *GormPermissionRepository) FindByCode(ctx context.Context, code string) (*identity.Permission, error) {
	var model models.PermissionModel
	if err := dbForContext(ctx, r.db).
		Where("code = ?", code).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll retrieves the full catalog ordered by category and name
func (r *GormPermissionRepository) FindAll(ctx context.Context) ([]*identity.Permission, error) {
	var permissionModels []models.PermissionModel
	if err := dbForContext(ctx, r.db).
		Order("category ASC, name ASC").
		Find(&permissionModels).Error; err != nil {
		return nil, err
	}

	permissions := make([]*identity.Permission, len(permissionModels))
	for i := range permissionModels {
		permissions[i] = permissionModels[i].ToDomain()
	}
	return permissions, nil
}

// FindByCodes retrieves permissions for the given codes
func (r *GormPermissionRepository) FindByCodes(ctx context.Context, codes []string) ([]*identity.Permission, error) {
	if len(codes) == 0 {
		return []*identity.Permission{}, nil
	}

	var permissionModels []models.PermissionModel
	if err := dbForContext(ctx, r.db).
		Where("code IN ?", codes).
		Find(&permissionModels).Error; err != nil {
		return nil, err
	}

	permissions := make([]*identity.Permission, len(permissionModels))
	for i := range permissionModels {
		permissions[i] = permissionModels[i].ToDomain()
	}
	return permissions, nil
}

// Save creates or updates a permission
func (r *GormPermissionRepository) Save(ctx context.Context, permission *identity.Permission) error {
	model := models.PermissionModelFromDomain(permission)
	return dbForContext(ctx, r.db).Save(model).Error
}

// Ensure GormPermissionRepository implements PermissionRepository
var _ identity.PermissionRepository = (*GormPermissionRepository)(nil)
