package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"granja/internal/auth"
	"granja/internal/model"
	"granja/internal/repository"
	"granja/pkg/apperror"
	"granja/pkg/logger"
	"granja/pkg/metrics"
	"granja/pkg/patch"
)

// DTOs for Request validation
type CreateUserRequest struct {
	Name     string  `json:"nombre" binding:"required,min=3,max=80"`
	RoleID   uint    `json:"id_rol" binding:"required,gt=0"`
	Email    string  `json:"email" binding:"required,email,max=255"`
	Phone    *string `json:"telefono" binding:"omitempty,min=7,max=15"`
	Document string  `json:"documento" binding:"required,min=8,max=20"`
	Active   *bool   `json:"estado" binding:"required"`
	Password string  `json:"pass_hash" binding:"required,min=8"`
}

// UpdateUserRequest carries the optional fields of a partial update. A key
// sent as null reaches Apply as a nil pointer.
type UpdateUserRequest struct {
	Name     *string `json:"nombre" binding:"omitempty,min=3,max=80"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Phone    *string `json:"telefono" binding:"omitempty,min=7,max=15"`
	Document *string `json:"documento" binding:"omitempty,min=8,max=20"`
	Active   *bool   `json:"estado"`
	Password *string `json:"pass_hash" binding:"omitempty,min=8"`
}

func (r UpdateUserRequest) Apply(f patch.Fields) error {
	patch.Set(f, "nombre", r.Name)
	patch.Set(f, "email", r.Email)
	patch.Set(f, "telefono", r.Phone)
	patch.Set(f, "documento", r.Document)
	patch.Set(f, "estado", r.Active)
	patch.Set(f, "pass_hash", r.Password)
	return nil
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
}

// DTO for returning User without exposing sensitive data (e.g. password)
type UserResponse struct {
	ID       uint    `json:"id_usuario"`
	Name     string  `json:"nombre"`
	Document string  `json:"documento"`
	RoleID   uint    `json:"id_rol"`
	RoleName string  `json:"nombre_rol"`
	Email    string  `json:"email"`
	Phone    *string `json:"telefono"`
	Active   bool    `json:"estado"`
}

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(id auth.Identity) (string, error)
}

// UserService defines the interface for business logic related to User
type UserService interface {
	Create(ctx context.Context, req CreateUserRequest) (uint, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	GetByID(ctx context.Context, id uint) (*UserResponse, error)
	GetByEmail(ctx context.Context, email string) (*UserResponse, error)
	ListExceptAdmins(ctx context.Context) ([]UserResponse, error)
	Update(ctx context.Context, id uint, req UpdateUserRequest, fields patch.Fields) error
}

type userService struct {
	repo   repository.UserRepository
	tokens TokenIssuer
}

// NewUserService returns a new instance of UserService
func NewUserService(repo repository.UserRepository, tokens TokenIssuer) UserService {
	return &userService{repo: repo, tokens: tokens}
}

// Helper: parse model to standard json API response
func mapUserToResponse(u *model.UserWithRole) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Document: u.Document,
		RoleID:   u.RoleID,
		RoleName: u.RoleName,
		Email:    u.Email,
		Phone:    u.Phone,
		Active:   u.Active,
	}
}

func hashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", apperror.ErrInternal.WithInternal(err)
	}
	return string(hashed), nil
}

func (s *userService) Create(ctx context.Context, req CreateUserRequest) (uint, error) {
	hashed, err := hashPassword(req.Password)
	if err != nil {
		return 0, err
	}

	user := &model.User{
		Name:     req.Name,
		Document: req.Document,
		RoleID:   req.RoleID,
		Email:    req.Email,
		Password: hashed,
		Phone:    req.Phone,
		Active:   *req.Active,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return 0, apperror.ErrConflict.WithMessage("El email ya está registrado")
		}
		return 0, err
	}
	return user.ID, nil
}

var errBadCredentials = apperror.ErrUnauthenticated.WithMessage("Credenciales inválidas")

func (s *userService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			metrics.LoginAttempts.WithLabelValues("failure").Inc()
			return nil, errBadCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		return nil, errBadCredentials
	}
	if !user.Active {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		return nil, apperror.ErrUnauthenticated.WithMessage("Usuario inactivo")
	}

	token, err := s.tokens.Issue(auth.Identity{UserID: user.ID, RoleID: user.RoleID, Email: user.Email})
	if err != nil {
		return nil, apperror.ErrInternal.WithInternal(err)
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	logger.WithModule("auth").Info("user logged in", zap.Uint("user_id", user.ID))
	return &LoginResponse{User: mapUserToResponse(user), AccessToken: token}, nil
}

func (s *userService) GetByID(ctx context.Context, id uint) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Usuario no encontrado")
	}
	resp := mapUserToResponse(user)
	return &resp, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*UserResponse, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, notFound(err, "Usuario no encontrado")
	}
	resp := mapUserToResponse(user)
	return &resp, nil
}

func (s *userService) ListExceptAdmins(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.ListExcludingRoles(ctx, []uint{model.RoleSuperAdmin, model.RoleAdmin})
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, mapUserToResponse(&users[i]))
	}
	return responses, nil
}

// Update applies the supplied fields. A new password is hashed before it is bound.
func (s *userService) Update(ctx context.Context, id uint, req UpdateUserRequest, fields patch.Fields) error {
	if err := req.Apply(fields); err != nil {
		return err
	}
	if req.Password != nil && fields.Has("pass_hash") {
		hashed, err := hashPassword(*req.Password)
		if err != nil {
			return err
		}
		fields["pass_hash"] = hashed
	}

	changed, err := s.repo.Update(ctx, id, fields)
	if errors.Is(err, apperror.ErrConflict) {
		return apperror.ErrConflict.WithMessage("El email ya está registrado")
	}
	return updated(changed, err, "No se pudo actualizar el usuario")
}
