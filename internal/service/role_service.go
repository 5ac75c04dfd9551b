package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"granja/internal/model"
	"granja/internal/permission"
	"granja/internal/repository"
	"granja/pkg/apperror"
	"granja/pkg/logger"
)

// --- DTOs ---

type UpsertGrantRequest struct {
	RoleID    uint `json:"id_rol" binding:"required,gt=0"`
	ModuleID  uint `json:"id_modulo" binding:"required,gt=0"`
	CanInsert bool `json:"insertar"`
	CanSelect bool `json:"seleccionar"`
	CanUpdate bool `json:"actualizar"`
	CanDelete bool `json:"borrar"`
}

type GrantResponse struct {
	ModuleID   uint   `json:"id_modulo"`
	ModuleName string `json:"modulo"`
	CanInsert  bool   `json:"insertar"`
	CanSelect  bool   `json:"seleccionar"`
	CanUpdate  bool   `json:"actualizar"`
	CanDelete  bool   `json:"borrar"`
}

// SeedAdmin is the optional initial superadmin account.
type SeedAdmin struct {
	Email    string
	Password string
}

// --- Interface ---

type RoleService interface {
	ListRoles(ctx context.Context) ([]model.Role, error)
	ListGrants(ctx context.Context, roleID uint) ([]GrantResponse, error)
	UpsertGrant(ctx context.Context, req UpsertGrantRequest) error
	SeedDefaults(ctx context.Context, admin *SeedAdmin) error
}

type roleService struct {
	roles repository.RoleRepository
	users repository.UserRepository
	tx    repository.TransactionManager
}

func NewRoleService(roles repository.RoleRepository, users repository.UserRepository, tx repository.TransactionManager) RoleService {
	return &roleService{roles: roles, users: users, tx: tx}
}

func (s *roleService) ListRoles(ctx context.Context) ([]model.Role, error) {
	return s.roles.ListRoles(ctx)
}

func (s *roleService) ListGrants(ctx context.Context, roleID uint) ([]GrantResponse, error) {
	if _, err := s.roles.GetRole(ctx, roleID); err != nil {
		return nil, notFound(err, "Rol no encontrado")
	}

	grants, err := s.roles.ListGrants(ctx, roleID)
	if err != nil {
		return nil, err
	}

	out := make([]GrantResponse, 0, len(grants))
	for _, g := range grants {
		out = append(out, GrantResponse{
			ModuleID:   g.ModuleID,
			ModuleName: permission.Module(g.ModuleID).String(),
			CanInsert:  g.CanInsert,
			CanSelect:  g.CanSelect,
			CanUpdate:  g.CanUpdate,
			CanDelete:  g.CanDelete,
		})
	}
	return out, nil
}

// UpsertGrant replaces the four flags of one (role, module) grant. The gate
// reads grants on every request, so the change applies immediately.
func (s *roleService) UpsertGrant(ctx context.Context, req UpsertGrantRequest) error {
	if !knownModule(permission.Module(req.ModuleID)) {
		return apperror.NewBadRequest(fmt.Sprintf("módulo desconocido: %d", req.ModuleID))
	}

	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.roles.GetRole(txCtx, req.RoleID); err != nil {
			return notFound(err, "Rol no encontrado")
		}
		return s.roles.UpsertGrant(txCtx, &model.Permission{
			RoleID:    req.RoleID,
			ModuleID:  req.ModuleID,
			CanInsert: req.CanInsert,
			CanSelect: req.CanSelect,
			CanUpdate: req.CanUpdate,
			CanDelete: req.CanDelete,
		})
	})
}

func knownModule(m permission.Module) bool {
	for _, known := range permission.Modules() {
		if m == known {
			return true
		}
	}
	return false
}

var defaultRoles = []model.Role{
	{ID: model.RoleSuperAdmin, Name: "superadmin"},
	{ID: model.RoleAdmin, Name: "admin"},
	{ID: model.RoleOperator, Name: "operario"},
}

// SeedDefaults creates the built-in roles, grants the superadmin every action
// on every module and, when admin is set, creates the initial superadmin
// account. Running it again changes nothing.
func (s *roleService) SeedDefaults(ctx context.Context, admin *SeedAdmin) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		for i := range defaultRoles {
			role := defaultRoles[i]
			if err := s.roles.EnsureRole(txCtx, &role); err != nil {
				return fmt.Errorf("seed role %q: %w", role.Name, err)
			}
		}

		for _, m := range permission.Modules() {
			grant := &model.Permission{
				RoleID:    model.RoleSuperAdmin,
				ModuleID:  uint(m),
				CanInsert: true,
				CanSelect: true,
				CanUpdate: true,
				CanDelete: true,
			}
			if err := s.roles.UpsertGrant(txCtx, grant); err != nil {
				return fmt.Errorf("seed grant %s: %w", m, err)
			}
		}

		if admin == nil || admin.Email == "" {
			return nil
		}
		return s.seedAdmin(txCtx, admin)
	})
}

func (s *roleService) seedAdmin(ctx context.Context, admin *SeedAdmin) error {
	_, err := s.users.GetByEmail(ctx, admin.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return err
	}

	hashed, err := hashPassword(admin.Password)
	if err != nil {
		return err
	}
	user := &model.User{
		Name:     "Super Administrador",
		Document: "00000000",
		RoleID:   model.RoleSuperAdmin,
		Email:    admin.Email,
		Password: hashed,
		Active:   true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	logger.WithModule("seed").Info("created initial superadmin", zap.String("email", admin.Email))
	return nil
}
