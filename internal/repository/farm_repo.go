package repository

import (
	"context"

	"gorm.io/gorm"

	"granja/internal/model"
	"granja/pkg/patch"
)

// FarmColumns is the update allow-list for fincas. The owner is fixed at creation.
var FarmColumns = patch.NewTable("fincas", "id_finca",
	patch.Column{Name: "nombre"},
	patch.Column{Name: "longitud"},
	patch.Column{Name: "latitud"},
	patch.Column{Name: "estado"},
)

type FarmRepository interface {
	Create(ctx context.Context, farm *model.Farm) error
	GetByID(ctx context.Context, id uint) (*model.Farm, error)
	List(ctx context.Context) ([]model.Farm, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Farm, error)
	Update(ctx context.Context, id uint, fields patch.Fields) (bool, error)
}

type farmRepository struct {
	db *gorm.DB
}

func NewFarmRepository(db *gorm.DB) FarmRepository {
	return &farmRepository{db: db}
}

func (r *farmRepository) Create(ctx context.Context, farm *model.Farm) error {
	return insert(ctx, r.db, "fincas.create", farm)
}

func (r *farmRepository) GetByID(ctx context.Context, id uint) (*model.Farm, error) {
	var farm model.Farm
	if err := GetDB(ctx, r.db).Take(&farm, "id_finca = ?", id).Error; err != nil {
		return nil, lookupError("fincas.get", err)
	}
	return &farm, nil
}

func (r *farmRepository) List(ctx context.Context) ([]model.Farm, error) {
	farms := []model.Farm{}
	if err := GetDB(ctx, r.db).Order("id_finca asc").Find(&farms).Error; err != nil {
		return nil, storageError("fincas.list", err)
	}
	return farms, nil
}

func (r *farmRepository) ListByUser(ctx context.Context, userID uint) ([]model.Farm, error) {
	farms := []model.Farm{}
	err := GetDB(ctx, r.db).
		Where("id_usuario = ?", userID).
		Order("id_finca asc").
		Find(&farms).Error
	if err != nil {
		return nil, storageError("fincas.list_by_user", err)
	}
	return farms, nil
}

func (r *farmRepository) Update(ctx context.Context, id uint, fields patch.Fields) (bool, error) {
	return applyPatch(ctx, r.db, "fincas.update", FarmColumns, id, fields)
}
