package service

import (
	"context"

	"granja/internal/model"
	"granja/internal/repository"
	"granja/pkg/patch"
)

type CreateEggTypeRequest struct {
	Color string `json:"color" binding:"required,min=1,max=30"`
	Size  string `json:"tamano" binding:"required,min=1,max=30"`
}

type UpdateEggTypeRequest struct {
	Color *string `json:"color" binding:"omitempty,min=1,max=30"`
	Size  *string `json:"tamano" binding:"omitempty,min=1,max=30"`
}

func (r UpdateEggTypeRequest) Apply(f patch.Fields) error {
	patch.Set(f, "color", r.Color)
	patch.Set(f, "tamano", r.Size)
	return nil
}

type EggTypeService interface {
	Create(ctx context.Context, req CreateEggTypeRequest) (uint, error)
	GetByID(ctx context.Context, id uint) (*model.EggType, error)
	List(ctx context.Context) ([]model.EggType, error)
	Update(ctx context.Context, id uint, req UpdateEggTypeRequest, fields patch.Fields) error
}

type eggTypeService struct {
	repo repository.EggTypeRepository
}

func NewEggTypeService(repo repository.EggTypeRepository) EggTypeService {
	return &eggTypeService{repo: repo}
}

func (s *eggTypeService) Create(ctx context.Context, req CreateEggTypeRequest) (uint, error) {
	t := &model.EggType{Color: req.Color, Size: req.Size}
	if err := s.repo.Create(ctx, t); err != nil {
		return 0, err
	}
	return t.ID, nil
}

func (s *eggTypeService) GetByID(ctx context.Context, id uint) (*model.EggType, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Tipo de huevo no encontrado")
	}
	return t, nil
}

func (s *eggTypeService) List(ctx context.Context) ([]model.EggType, error) {
	return s.repo.List(ctx)
}

func (s *eggTypeService) Update(ctx context.Context, id uint, req UpdateEggTypeRequest, fields patch.Fields) error {
	if err := req.Apply(fields); err != nil {
		return err
	}
	changed, err := s.repo.Update(ctx, id, fields)
	return updated(changed, err, "No se pudo actualizar el tipo de huevo")
}
