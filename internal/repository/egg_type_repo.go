package repository

import (
	"context"

	"gorm.io/gorm"

	"granja/internal/model"
	"granja/pkg/patch"
)

var EggTypeColumns = patch.NewTable("tipo_huevos", "id_tipo_huevo",
	patch.Column{Name: "color"},
	patch.Column{Name: "tamano"},
)

type EggTypeRepository interface {
	Create(ctx context.Context, eggType *model.EggType) error
	GetByID(ctx context.Context, id uint) (*model.EggType, error)
	List(ctx context.Context) ([]model.EggType, error)
	Update(ctx context.Context, id uint, fields patch.Fields) (bool, error)
}

type eggTypeRepository struct {
	db *gorm.DB
}

func NewEggTypeRepository(db *gorm.DB) EggTypeRepository {
	return &eggTypeRepository{db: db}
}

func (r *eggTypeRepository) Create(ctx context.Context, eggType *model.EggType) error {
	return insert(ctx, r.db, "tipo_huevos.create", eggType)
}

func (r *eggTypeRepository) GetByID(ctx context.Context, id uint) (*model.EggType, error) {
	var t model.EggType
	if err := GetDB(ctx, r.db).Take(&t, "id_tipo_huevo = ?", id).Error; err != nil {
		return nil, lookupError("tipo_huevos.get", err)
	}
	return &t, nil
}

func (r *eggTypeRepository) List(ctx context.Context) ([]model.EggType, error) {
	types := []model.EggType{}
	if err := GetDB(ctx, r.db).Order("id_tipo_huevo asc").Find(&types).Error; err != nil {
		return nil, storageError("tipo_huevos.list", err)
	}
	return types, nil
}

func (r *eggTypeRepository) Update(ctx context.Context, id uint, fields patch.Fields) (bool, error) {
	return applyPatch(ctx, r.db, "tipo_huevos.update", EggTypeColumns, id, fields)
}
