package permission

import (
	"strconv"

	"granja/internal/model"
)

// Module identifies a protected resource area. Values are the id_modulo
// keys stored in permisos.
type Module uint

const (
	ModuleUsers      Module = 1
	ModuleAdmins     Module = 2
	ModuleFarms      Module = 3
	ModuleProduction Module = 4
	ModuleStock      Module = 5
	ModuleEggTypes   Module = 6
	ModuleRoles      Module = 7
)

var moduleNames = map[Module]string{
	ModuleUsers:      "usuarios",
	ModuleAdmins:     "administradores",
	ModuleFarms:      "fincas",
	ModuleProduction: "produccion",
	ModuleStock:      "stock",
	ModuleEggTypes:   "tipo_huevos",
	ModuleRoles:      "roles",
}

// Modules returns every known module in id order.
func Modules() []Module {
	return []Module{ModuleUsers, ModuleAdmins, ModuleFarms, ModuleProduction, ModuleStock, ModuleEggTypes, ModuleRoles}
}

func (m Module) String() string {
	if name, ok := moduleNames[m]; ok {
		return name
	}
	return strconv.FormatUint(uint64(m), 10)
}

// Guard is the (module, action) pair a route must be granted.
type Guard struct {
	Module Module
	Action Action
}

// Route names for every statically guarded endpoint.
const (
	UsersByEmail = "users.by_email"
	UsersByID    = "users.by_id"
	UsersList    = "users.list"
	UsersUpdate  = "users.update"

	FarmsCreate = "fincas.create"
	FarmsByID   = "fincas.by_id"
	FarmsList   = "fincas.list"
	FarmsByUser = "fincas.by_user"
	FarmsUpdate = "fincas.update"

	ProductionCreate = "produccion.create"
	ProductionByID   = "produccion.by_id"
	ProductionList   = "produccion.list"
	ProductionUpdate = "produccion.update"
	ProductionDelete = "produccion.delete"

	StockCreate = "stock.create"
	StockByID   = "stock.by_id"
	StockList   = "stock.list"
	StockUpdate = "stock.update"

	EggTypesCreate = "tipo_huevos.create"
	EggTypesByID   = "tipo_huevos.by_id"
	EggTypesList   = "tipo_huevos.list"
	EggTypesUpdate = "tipo_huevos.update"

	RolesList   = "roles.list"
	RolesGrants = "roles.grants"
	RolesUpsert = "roles.upsert"
)

// routes is the single static route -> guard table. User creation is not
// listed; it is resolved by UserCreationModule. Guards on existing accounts
// are narrowed with ForAccount.
var routes = map[string]Guard{
	UsersByEmail: {ModuleUsers, ActionSelect},
	UsersByID:    {ModuleUsers, ActionSelect},
	UsersList:    {ModuleUsers, ActionSelect},
	UsersUpdate:  {ModuleUsers, ActionUpdate},

	FarmsCreate: {ModuleFarms, ActionInsert},
	FarmsByID:   {ModuleFarms, ActionSelect},
	FarmsList:   {ModuleFarms, ActionSelect},
	FarmsByUser: {ModuleFarms, ActionSelect},
	FarmsUpdate: {ModuleFarms, ActionUpdate},

	ProductionCreate: {ModuleProduction, ActionInsert},
	ProductionByID:   {ModuleProduction, ActionSelect},
	ProductionList:   {ModuleProduction, ActionSelect},
	ProductionUpdate: {ModuleProduction, ActionUpdate},
	ProductionDelete: {ModuleProduction, ActionDelete},

	StockCreate: {ModuleStock, ActionInsert},
	StockByID:   {ModuleStock, ActionSelect},
	StockList:   {ModuleStock, ActionSelect},
	StockUpdate: {ModuleStock, ActionUpdate},

	EggTypesCreate: {ModuleEggTypes, ActionInsert},
	EggTypesByID:   {ModuleEggTypes, ActionSelect},
	EggTypesList:   {ModuleEggTypes, ActionSelect},
	EggTypesUpdate: {ModuleEggTypes, ActionUpdate},

	RolesList:   {ModuleRoles, ActionSelect},
	RolesGrants: {ModuleRoles, ActionSelect},
	RolesUpsert: {ModuleRoles, ActionUpdate},
}

// Lookup returns the guard registered for a route name.
func Lookup(route string) (Guard, bool) {
	g, ok := routes[route]
	return g, ok
}

// UserCreationModule returns the module guarding creation of a user with
// the requested role: admin-tier accounts are governed separately.
func UserCreationModule(requestedRole uint) Module {
	if model.IsAdminRole(requestedRole) {
		return ModuleAdmins
	}
	return ModuleUsers
}

// ForAccount returns the guard for acting on an existing account holding
// targetRole. Admin-tier accounts move a usuarios guard onto administradores.
func (g Guard) ForAccount(targetRole uint) Guard {
	if g.Module == ModuleUsers {
		g.Module = UserCreationModule(targetRole)
	}
	return g
}
