package service

import (
	"context"

	"github.com/shopspring/decimal"

	"granja/internal/model"
	"granja/internal/repository"
	"granja/pkg/patch"
)

type CreateFarmRequest struct {
	Name      string           `json:"nombre" binding:"required,min=1,max=30"`
	Longitude *decimal.Decimal `json:"longitud" binding:"required"`
	Latitude  *decimal.Decimal `json:"latitud" binding:"required"`
	UserID    uint             `json:"id_usuario" binding:"required,gt=0"`
	Active    *bool            `json:"estado"`
}

type UpdateFarmRequest struct {
	Name      *string          `json:"nombre" binding:"omitempty,min=1,max=30"`
	Longitude *decimal.Decimal `json:"longitud"`
	Latitude  *decimal.Decimal `json:"latitud"`
	Active    *bool            `json:"estado"`
}

func (r UpdateFarmRequest) Apply(f patch.Fields) error {
	patch.Set(f, "nombre", r.Name)
	patch.Set(f, "longitud", r.Longitude)
	patch.Set(f, "latitud", r.Latitude)
	patch.Set(f, "estado", r.Active)
	return nil
}

type FarmService interface {
	Create(ctx context.Context, req CreateFarmRequest) (uint, error)
	GetByID(ctx context.Context, id uint) (*model.Farm, error)
	List(ctx context.Context) ([]model.Farm, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Farm, error)
	Update(ctx context.Context, id uint, req UpdateFarmRequest, fields patch.Fields) error
}

type farmService struct {
	repo repository.FarmRepository
}

func NewFarmService(repo repository.FarmRepository) FarmService {
	return &farmService{repo: repo}
}

func (s *farmService) Create(ctx context.Context, req CreateFarmRequest) (uint, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	farm := &model.Farm{
		Name:      req.Name,
		Longitude: *req.Longitude,
		Latitude:  *req.Latitude,
		UserID:    req.UserID,
		Active:    active,
	}
	if err := s.repo.Create(ctx, farm); err != nil {
		return 0, err
	}
	return farm.ID, nil
}

func (s *farmService) GetByID(ctx context.Context, id uint) (*model.Farm, error) {
	farm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Finca no encontrada")
	}
	return farm, nil
}

func (s *farmService) List(ctx context.Context) ([]model.Farm, error) {
	return s.repo.List(ctx)
}

func (s *farmService) ListByUser(ctx context.Context, userID uint) ([]model.Farm, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *farmService) Update(ctx context.Context, id uint, req UpdateFarmRequest, fields patch.Fields) error {
	if err := req.Apply(fields); err != nil {
		return err
	}
	changed, err := s.repo.Update(ctx, id, fields)
	return updated(changed, err, "No se pudo actualizar la finca")
}
