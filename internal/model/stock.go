package model

// Unit of measure Enum Simulation
const (
	UnitEgg      = "unidad"
	UnitTray     = "panal"
	UnitDozen    = "docena"
	UnitHalfTray = "medio_panal"
)

// Units lists every accepted unit of measure.
var Units = []string{UnitEgg, UnitTray, UnitDozen, UnitHalfTray}

// IsValidUnit reports whether u is a known unit of measure.
func IsValidUnit(u string) bool {
	for _, known := range Units {
		if u == known {
			return true
		}
	}
	return false
}

// StockEntry tracks available quantity of a production batch in one unit
type StockEntry struct {
	ID           uint   `gorm:"column:id_producto;primaryKey" json:"id_producto"`
	Unit         string `gorm:"column:unidad_medida;type:varchar(20);not null;check:chk_stock_unidad,unidad_medida IN ('unidad','panal','docena','medio_panal')" json:"unidad_medida"`
	ProductionID uint   `gorm:"column:id_produccion;not null;index" json:"id_produccion"`
	Available    int    `gorm:"column:cantidad_disponible;not null;check:chk_stock_cantidad,cantidad_disponible >= 0" json:"cantidad_disponible"`
}

func (StockEntry) TableName() string { return "stock" }
