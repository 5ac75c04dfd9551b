package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"granja/internal/auth"
	"granja/internal/database/testutil"
	"granja/internal/model"
	"granja/internal/repository"
	"granja/pkg/apperror"
	"granja/pkg/patch"
)

type stubIssuer struct {
	issued []auth.Identity
	err    error
}

func (s *stubIssuer) Issue(id auth.Identity) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.issued = append(s.issued, id)
	return "token-" + id.Email, nil
}

func newUserService(t *testing.T) (UserService, *gorm.DB, *stubIssuer) {
	t.Helper()
	db := testutil.MustOpenTestDB(t)
	for _, r := range defaultRoles {
		role := r
		require.NoError(t, db.Create(&role).Error)
	}
	issuer := &stubIssuer{}
	return NewUserService(repository.NewUserRepository(db), issuer), db, issuer
}

func createRequest(email string, roleID uint, active bool) CreateUserRequest {
	return CreateUserRequest{
		Name:     "María López",
		RoleID:   roleID,
		Email:    email,
		Document: "1017123456",
		Active:   &active,
		Password: "clave-segura",
	}
}

func TestUserCreateHashesPassword(t *testing.T) {
	svc, db, _ := newUserService(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, createRequest("maria@granja.co", model.RoleOperator, true))
	require.NoError(t, err)
	require.NotZero(t, id)

	var stored model.User
	require.NoError(t, db.First(&stored, id).Error)
	assert.NotEqual(t, "clave-segura", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("clave-segura")))

	_, err = svc.Create(ctx, createRequest("maria@granja.co", model.RoleOperator, true))
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestUserLogin(t *testing.T) {
	svc, _, issuer := newUserService(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, createRequest("maria@granja.co", model.RoleOperator, true))
	require.NoError(t, err)

	res, err := svc.Login(ctx, LoginRequest{Email: "maria@granja.co", Password: "clave-segura"})
	require.NoError(t, err)
	assert.Equal(t, "token-maria@granja.co", res.AccessToken)
	assert.Equal(t, "operario", res.User.RoleName)
	require.Len(t, issuer.issued, 1)
	assert.Equal(t, auth.Identity{UserID: id, RoleID: model.RoleOperator, Email: "maria@granja.co"}, issuer.issued[0])

	_, err = svc.Login(ctx, LoginRequest{Email: "maria@granja.co", Password: "otra-clave"})
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)

	_, err = svc.Login(ctx, LoginRequest{Email: "nadie@granja.co", Password: "clave-segura"})
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
}

func TestUserLoginInactive(t *testing.T) {
	svc, _, issuer := newUserService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, createRequest("inactivo@granja.co", model.RoleOperator, false))
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "inactivo@granja.co", Password: "clave-segura"})
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Usuario inactivo", appErr.Message)
	assert.Empty(t, issuer.issued)
}

func TestUserLoginIssuerFailure(t *testing.T) {
	svc, _, issuer := newUserService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, createRequest("maria@granja.co", model.RoleOperator, true))
	require.NoError(t, err)

	issuer.err = errors.New("signing key unavailable")
	_, err = svc.Login(ctx, LoginRequest{Email: "maria@granja.co", Password: "clave-segura"})
	assert.ErrorIs(t, err, apperror.ErrInternal)
}

func TestUserUpdate(t *testing.T) {
	svc, db, _ := newUserService(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, createRequest("maria@granja.co", model.RoleOperator, true))
	require.NoError(t, err)

	name := "María José López"
	password := "otra-clave-9"
	fields := patch.Fields{"nombre": nil, "pass_hash": nil}
	require.NoError(t, svc.Update(ctx, id, UpdateUserRequest{Name: &name, Password: &password}, fields))

	var stored model.User
	require.NoError(t, db.First(&stored, id).Error)
	assert.Equal(t, name, stored.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(password)))

	err = svc.Update(ctx, id, UpdateUserRequest{}, patch.Fields{})
	assert.ErrorIs(t, err, apperror.ErrNoOp)

	err = svc.Update(ctx, 9999, UpdateUserRequest{Name: &name}, patch.Fields{"nombre": nil})
	assert.ErrorIs(t, err, apperror.ErrNoOp)

	err = svc.Update(ctx, id, UpdateUserRequest{}, patch.Fields{"id_rol": 1})
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestUserLookups(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, createRequest("maria@granja.co", model.RoleOperator, true))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createRequest("admin@granja.co", model.RoleAdmin, true))
	require.NoError(t, err)

	user, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "maria@granja.co", user.Email)

	_, err = svc.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = svc.GetByEmail(ctx, "nadie@granja.co")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	users, err := svc.ListExceptAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, id, users[0].ID)
}
