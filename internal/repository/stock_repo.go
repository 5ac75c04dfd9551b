package repository

import (
	"context"

	"gorm.io/gorm"

	"granja/internal/model"
	"granja/pkg/patch"
)

var StockColumns = patch.NewTable("stock", "id_producto",
	patch.Column{Name: "unidad_medida"},
	patch.Column{Name: "id_produccion"},
	patch.Column{Name: "cantidad_disponible"},
)

type StockRepository interface {
	Create(ctx context.Context, entry *model.StockEntry) error
	GetByID(ctx context.Context, id uint) (*model.StockEntry, error)
	List(ctx context.Context) ([]model.StockEntry, error)
	Update(ctx context.Context, id uint, fields patch.Fields) (bool, error)
}

type stockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) Create(ctx context.Context, entry *model.StockEntry) error {
	return insert(ctx, r.db, "stock.create", entry)
}

func (r *stockRepository) GetByID(ctx context.Context, id uint) (*model.StockEntry, error) {
	var s model.StockEntry
	if err := GetDB(ctx, r.db).Take(&s, "id_producto = ?", id).Error; err != nil {
		return nil, lookupError("stock.get", err)
	}
	return &s, nil
}

func (r *stockRepository) List(ctx context.Context) ([]model.StockEntry, error) {
	entries := []model.StockEntry{}
	if err := GetDB(ctx, r.db).Order("id_producto asc").Find(&entries).Error; err != nil {
		return nil, storageError("stock.list", err)
	}
	return entries, nil
}

func (r *stockRepository) Update(ctx context.Context, id uint, fields patch.Fields) (bool, error) {
	return applyPatch(ctx, r.db, "stock.update", StockColumns, id, fields)
}
