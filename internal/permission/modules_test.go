package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardForAccount(t *testing.T) {
	update, ok := Lookup(UsersUpdate)
	require.True(t, ok)

	assert.Equal(t, Guard{ModuleAdmins, ActionUpdate}, update.ForAccount(1))
	assert.Equal(t, Guard{ModuleAdmins, ActionUpdate}, update.ForAccount(2))
	assert.Equal(t, Guard{ModuleUsers, ActionUpdate}, update.ForAccount(3))

	byID, _ := Lookup(UsersByID)
	assert.Equal(t, Guard{ModuleAdmins, ActionSelect}, byID.ForAccount(1))

	farms, _ := Lookup(FarmsUpdate)
	assert.Equal(t, farms, farms.ForAccount(1))
}

func TestUserCreationModule(t *testing.T) {
	assert.Equal(t, ModuleAdmins, UserCreationModule(1))
	assert.Equal(t, ModuleAdmins, UserCreationModule(2))
	assert.Equal(t, ModuleUsers, UserCreationModule(3))
	assert.Equal(t, ModuleUsers, UserCreationModule(42))
}

func TestRouteTable(t *testing.T) {
	g, ok := Lookup(ProductionDelete)
	assert.True(t, ok)
	assert.Equal(t, Guard{ModuleProduction, ActionDelete}, g)

	g, ok = Lookup(UsersList)
	assert.True(t, ok)
	assert.Equal(t, Guard{ModuleUsers, ActionSelect}, g)

	_, ok = Lookup("users.create")
	assert.False(t, ok)

	for name, guard := range routes {
		assert.True(t, guard.Action.Valid(), name)
		assert.Contains(t, Modules(), guard.Module, name)
	}
}

func TestModuleString(t *testing.T) {
	assert.Equal(t, "produccion", ModuleProduction.String())
	assert.Equal(t, "99", Module(99).String())
}
