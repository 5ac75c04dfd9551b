package model

import "time"

// ProductionBatch is one day's egg collection from a shed
type ProductionBatch struct {
	ID        uint      `gorm:"column:id_produccion;primaryKey" json:"id_produccion"`
	ShedID    uint      `gorm:"column:id_galpon;not null;index" json:"id_galpon"`
	Quantity  int       `gorm:"column:cantidad;not null;check:chk_produccion_cantidad,cantidad >= 0" json:"cantidad"`
	Date      time.Time `gorm:"column:fecha;type:date;not null;index" json:"fecha"`
	EggTypeID uint      `gorm:"column:id_tipo_huevo;not null;index" json:"id_tipo_huevo"`
}

func (ProductionBatch) TableName() string { return "produccion_huevos" }

// ProductionView is a batch joined with its shed name and egg size.
// The joined columns are nil when the referenced row does not exist.
type ProductionView struct {
	ProductionBatch
	ShedName *string `gorm:"column:nombre_galpon" json:"nombre_galpon"`
	EggSize  *string `gorm:"column:tamano" json:"tamano"`
}

// EggType is a catalog entry describing egg color and size
type EggType struct {
	ID    uint   `gorm:"column:id_tipo_huevo;primaryKey" json:"id_tipo_huevo"`
	Color string `gorm:"column:color;type:varchar(30);not null" json:"color"`
	Size  string `gorm:"column:tamano;type:varchar(30);not null" json:"tamano"`
}

func (EggType) TableName() string { return "tipo_huevos" }
