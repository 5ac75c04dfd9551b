package model

// User represents an account that can sign in and act on farm records
type User struct {
	ID       uint    `gorm:"column:id_usuario;primaryKey" json:"id_usuario"`
	Name     string  `gorm:"column:nombre;type:varchar(80);not null" json:"nombre"`
	Document string  `gorm:"column:documento;type:varchar(20);not null" json:"documento"`
	RoleID   uint    `gorm:"column:id_rol;not null;index" json:"id_rol"`
	Email    string  `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	Password string  `gorm:"column:pass_hash;type:varchar(255);not null" json:"-"` // bcrypt hash, never serialized
	Phone    *string `gorm:"column:telefono;type:varchar(15)" json:"telefono"`
	Active   bool    `gorm:"column:estado;not null" json:"estado"`
}

func (User) TableName() string { return "usuarios" }

// UserWithRole is a user row joined with its role name.
type UserWithRole struct {
	User
	RoleName string `gorm:"column:nombre_rol" json:"nombre_rol"`
}
