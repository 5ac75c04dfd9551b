package repository

import (
	"context"

	"gorm.io/gorm"

	"granja/internal/model"
	"granja/pkg/patch"
)

// UserColumns is the update allow-list for usuarios. id_rol is not
// updatable, so a user cannot move between admin and regular tiers.
var UserColumns = patch.NewTable("usuarios", "id_usuario",
	patch.Column{Name: "nombre"},
	patch.Column{Name: "documento"},
	patch.Column{Name: "email"},
	patch.Column{Name: "telefono", Nullable: true},
	patch.Column{Name: "pass_hash"},
	patch.Column{Name: "estado"},
)

// UserRepository defines the interface for data access of User entities
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uint) (*model.UserWithRole, error)
	GetByEmail(ctx context.Context, email string) (*model.UserWithRole, error)
	ListExcludingRoles(ctx context.Context, roleIDs []uint) ([]model.UserWithRole, error)
	Update(ctx context.Context, id uint, fields patch.Fields) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new instance of UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) withRole(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).Table("usuarios").
		Select("usuarios.*, roles.nombre_rol").
		Joins("LEFT JOIN roles ON roles.id_rol = usuarios.id_rol")
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return insert(ctx, r.db, "usuarios.create", user)
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*model.UserWithRole, error) {
	var user model.UserWithRole
	if err := r.withRole(ctx).Where("usuarios.id_usuario = ?", id).Take(&user).Error; err != nil {
		return nil, lookupError("usuarios.get", err)
	}
	return &user, nil
}

// GetByEmail includes the password hash so callers can verify credentials.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.UserWithRole, error) {
	var user model.UserWithRole
	if err := r.withRole(ctx).Where("usuarios.email = ?", email).Take(&user).Error; err != nil {
		return nil, lookupError("usuarios.get_by_email", err)
	}
	return &user, nil
}

func (r *userRepository) ListExcludingRoles(ctx context.Context, roleIDs []uint) ([]model.UserWithRole, error) {
	q := r.withRole(ctx)
	if len(roleIDs) > 0 {
		q = q.Where("usuarios.id_rol NOT IN ?", roleIDs)
	}

	users := []model.UserWithRole{}
	if err := q.Order("usuarios.id_usuario asc").Find(&users).Error; err != nil {
		return nil, storageError("usuarios.list", err)
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, id uint, fields patch.Fields) (bool, error) {
	return applyPatch(ctx, r.db, "usuarios.update", UserColumns, id, fields)
}
