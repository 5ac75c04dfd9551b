package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"granja/internal/database/testutil"
	"granja/internal/model"
	"granja/pkg/apperror"
)

func TestRoleEnsureIsIdempotent(t *testing.T) {
	repo := NewRoleRepository(testutil.MustOpenTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.EnsureRole(ctx, &model.Role{ID: 3, Name: "operario"}))
	require.NoError(t, repo.EnsureRole(ctx, &model.Role{ID: 3, Name: "operario"}))
	require.NoError(t, repo.EnsureRole(ctx, &model.Role{ID: 1, Name: "superadmin"}))

	roles, err := repo.ListRoles(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, uint(1), roles[0].ID)

	role, err := repo.GetRole(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "operario", role.Name)

	_, err = repo.GetRole(ctx, 8)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGrantUpsertKeepsOneRowPerModule(t *testing.T) {
	repo := NewRoleRepository(testutil.MustOpenTestDB(t))
	ctx := context.Background()

	_, err := repo.FindGrant(ctx, 3, 4)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	require.NoError(t, repo.UpsertGrant(ctx, &model.Permission{RoleID: 3, ModuleID: 4, CanSelect: true}))
	require.NoError(t, repo.UpsertGrant(ctx, &model.Permission{RoleID: 3, ModuleID: 4, CanInsert: true, CanSelect: true}))
	require.NoError(t, repo.UpsertGrant(ctx, &model.Permission{RoleID: 3, ModuleID: 5, CanDelete: true}))

	grant, err := repo.FindGrant(ctx, 3, 4)
	require.NoError(t, err)
	assert.True(t, grant.CanInsert)
	assert.True(t, grant.CanSelect)
	assert.False(t, grant.CanUpdate)
	assert.False(t, grant.CanDelete)

	grants, err := repo.ListGrants(ctx, 3)
	require.NoError(t, err)
	require.Len(t, grants, 2)
	assert.Equal(t, uint(4), grants[0].ModuleID)
	assert.Equal(t, uint(5), grants[1].ModuleID)
}
