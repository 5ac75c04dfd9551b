package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"granja/internal/model"
	"granja/pkg/patch"
)

var ProductionColumns = patch.NewTable("produccion_huevos", "id_produccion",
	patch.Column{Name: "id_galpon"},
	patch.Column{Name: "cantidad"},
	patch.Column{Name: "fecha"},
	patch.Column{Name: "id_tipo_huevo"},
)

// ProductionFilter pages the batch listing. The date range is inclusive and
// only applies when both bounds are set.
type ProductionFilter struct {
	Limit  int
	Offset int
	From   *time.Time
	To     *time.Time
}

type ProductionRepository interface {
	Create(ctx context.Context, batch *model.ProductionBatch) error
	GetByID(ctx context.Context, id uint) (*model.ProductionView, error)
	List(ctx context.Context, filter ProductionFilter) ([]model.ProductionView, error)
	Update(ctx context.Context, id uint, fields patch.Fields) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type productionRepository struct {
	db *gorm.DB
}

func NewProductionRepository(db *gorm.DB) ProductionRepository {
	return &productionRepository{db: db}
}

func (r *productionRepository) view(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).Table("produccion_huevos").
		Select("produccion_huevos.id_produccion, produccion_huevos.id_galpon, produccion_huevos.cantidad, " +
			"produccion_huevos.fecha, produccion_huevos.id_tipo_huevo, " +
			"galpones.nombre AS nombre_galpon, tipo_huevos.tamano").
		Joins("LEFT JOIN galpones ON galpones.id_galpon = produccion_huevos.id_galpon").
		Joins("LEFT JOIN tipo_huevos ON tipo_huevos.id_tipo_huevo = produccion_huevos.id_tipo_huevo")
}

func (r *productionRepository) Create(ctx context.Context, batch *model.ProductionBatch) error {
	return insert(ctx, r.db, "produccion_huevos.create", batch)
}

func (r *productionRepository) GetByID(ctx context.Context, id uint) (*model.ProductionView, error) {
	var v model.ProductionView
	if err := r.view(ctx).Where("produccion_huevos.id_produccion = ?", id).Take(&v).Error; err != nil {
		return nil, lookupError("produccion_huevos.get", err)
	}
	return &v, nil
}

func (r *productionRepository) List(ctx context.Context, filter ProductionFilter) ([]model.ProductionView, error) {
	q := r.view(ctx)
	if filter.From != nil && filter.To != nil {
		q = q.Where("produccion_huevos.fecha BETWEEN ? AND ?", *filter.From, *filter.To)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	views := []model.ProductionView{}
	err := q.Order("produccion_huevos.fecha asc, produccion_huevos.id_produccion asc").Find(&views).Error
	if err != nil {
		return nil, storageError("produccion_huevos.list", err)
	}
	return views, nil
}

func (r *productionRepository) Update(ctx context.Context, id uint, fields patch.Fields) (bool, error) {
	return applyPatch(ctx, r.db, "produccion_huevos.update", ProductionColumns, id, fields)
}

func (r *productionRepository) Delete(ctx context.Context, id uint) (bool, error) {
	return deleteByKey(ctx, r.db, "produccion_huevos.delete", &model.ProductionBatch{}, "id_produccion", id)
}
