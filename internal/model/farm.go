package model

import "github.com/shopspring/decimal"

// Farm (finca) is a georeferenced property owned by a user
type Farm struct {
	ID        uint            `gorm:"column:id_finca;primaryKey" json:"id_finca"`
	Name      string          `gorm:"column:nombre;type:varchar(30);not null" json:"nombre"`
	Longitude decimal.Decimal `gorm:"column:longitud;type:decimal(10,7);not null" json:"longitud"`
	Latitude  decimal.Decimal `gorm:"column:latitud;type:decimal(10,7);not null" json:"latitud"`
	UserID    uint            `gorm:"column:id_usuario;not null;index" json:"id_usuario"`
	Active    bool            `gorm:"column:estado;not null" json:"estado"`
}

func (Farm) TableName() string { return "fincas" }

// Shed (galpón) is an enclosure inside a farm where batches are collected.
type Shed struct {
	ID     uint   `gorm:"column:id_galpon;primaryKey" json:"id_galpon"`
	FarmID uint   `gorm:"column:id_finca;not null;index" json:"id_finca"`
	Name   string `gorm:"column:nombre;type:varchar(50);not null" json:"nombre"`
}

func (Shed) TableName() string { return "galpones" }
