package model

// Admin-tier roles. Users holding them are managed under their own module
// and are hidden from the regular user listing.
const (
	RoleSuperAdmin uint = 1
	RoleAdmin      uint = 2
	RoleOperator   uint = 3
)

// IsAdminRole reports whether roleID is one of the admin-tier roles.
func IsAdminRole(roleID uint) bool {
	return roleID == RoleSuperAdmin || roleID == RoleAdmin
}

// Role groups users for permission purposes.
type Role struct {
	ID   uint   `gorm:"column:id_rol;primaryKey" json:"id_rol"`
	Name string `gorm:"column:nombre_rol;type:varchar(50);uniqueIndex;not null" json:"nombre_rol"`
}

func (Role) TableName() string { return "roles" }

// Permission grants a role the four actions on one module. There is at most
// one row per (role, module); a missing row grants nothing.
type Permission struct {
	ID        uint `gorm:"column:id_permiso;primaryKey" json:"id_permiso"`
	RoleID    uint `gorm:"column:id_rol;not null;uniqueIndex:idx_permisos_rol_modulo" json:"id_rol"`
	ModuleID  uint `gorm:"column:id_modulo;not null;uniqueIndex:idx_permisos_rol_modulo" json:"id_modulo"`
	CanInsert bool `gorm:"column:insertar;not null" json:"insertar"`
	CanSelect bool `gorm:"column:seleccionar;not null" json:"seleccionar"`
	CanUpdate bool `gorm:"column:actualizar;not null" json:"actualizar"`
	CanDelete bool `gorm:"column:borrar;not null" json:"borrar"`
}

func (Permission) TableName() string { return "permisos" }
