package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"granja/internal/model"
)

// RoleRepository reads roles and manages their per-module grants.
type RoleRepository interface {
	ListRoles(ctx context.Context) ([]model.Role, error)
	GetRole(ctx context.Context, id uint) (*model.Role, error)
	EnsureRole(ctx context.Context, role *model.Role) error
	FindGrant(ctx context.Context, roleID, moduleID uint) (*model.Permission, error)
	ListGrants(ctx context.Context, roleID uint) ([]model.Permission, error)
	UpsertGrant(ctx context.Context, grant *model.Permission) error
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) ListRoles(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	if err := GetDB(ctx, r.db).Order("id_rol asc").Find(&roles).Error; err != nil {
		return nil, storageError("roles.list", err)
	}
	return roles, nil
}

func (r *roleRepository) GetRole(ctx context.Context, id uint) (*model.Role, error) {
	var role model.Role
	if err := GetDB(ctx, r.db).Take(&role, "id_rol = ?", id).Error; err != nil {
		return nil, lookupError("roles.get", err)
	}
	return &role, nil
}

// EnsureRole creates the role with its fixed id unless it already exists.
func (r *roleRepository) EnsureRole(ctx context.Context, role *model.Role) error {
	err := GetDB(ctx, r.db).
		Where("id_rol = ?", role.ID).
		FirstOrCreate(role).Error
	if err != nil {
		return storageError("roles.ensure", err)
	}
	return nil
}

// FindGrant returns the unique grant row for (role, module), or
// apperror.ErrNotFound when the role has no row for that module.
func (r *roleRepository) FindGrant(ctx context.Context, roleID, moduleID uint) (*model.Permission, error) {
	var p model.Permission
	err := GetDB(ctx, r.db).
		Where("id_rol = ? AND id_modulo = ?", roleID, moduleID).
		Take(&p).Error
	if err != nil {
		return nil, lookupError("permisos.find", err)
	}
	return &p, nil
}

func (r *roleRepository) ListGrants(ctx context.Context, roleID uint) ([]model.Permission, error) {
	var perms []model.Permission
	err := GetDB(ctx, r.db).
		Where("id_rol = ?", roleID).
		Order("id_modulo asc").
		Find(&perms).Error
	if err != nil {
		return nil, storageError("permisos.list", err)
	}
	return perms, nil
}

// UpsertGrant inserts the (role, module) row or overwrites its four flags.
func (r *roleRepository) UpsertGrant(ctx context.Context, grant *model.Permission) error {
	err := GetDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id_rol"}, {Name: "id_modulo"}},
			DoUpdates: clause.AssignmentColumns([]string{"insertar", "seleccionar", "actualizar", "borrar"}),
		}).Create(grant).Error
	})
	if err != nil {
		return storageError("permisos.upsert", err)
	}
	return nil
}
