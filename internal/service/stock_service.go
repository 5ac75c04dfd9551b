package service

import (
	"context"

	"granja/internal/model"
	"granja/internal/repository"
	"granja/pkg/patch"
)

// unidad_medida is a custom validation registered on gin's validator engine.
type CreateStockRequest struct {
	Unit         string `json:"unidad_medida" binding:"required,unidad_medida"`
	ProductionID uint   `json:"id_produccion" binding:"required,gt=0"`
	Available    *int   `json:"cantidad_disponible" binding:"required,min=0"`
}

type UpdateStockRequest struct {
	Unit         *string `json:"unidad_medida" binding:"omitempty,unidad_medida"`
	ProductionID *uint   `json:"id_produccion" binding:"omitempty,gt=0"`
	Available    *int    `json:"cantidad_disponible" binding:"omitempty,min=0"`
}

func (r UpdateStockRequest) Apply(f patch.Fields) error {
	patch.Set(f, "unidad_medida", r.Unit)
	patch.Set(f, "id_produccion", r.ProductionID)
	patch.Set(f, "cantidad_disponible", r.Available)
	return nil
}

type StockService interface {
	Create(ctx context.Context, req CreateStockRequest) (uint, error)
	GetByID(ctx context.Context, id uint) (*model.StockEntry, error)
	List(ctx context.Context) ([]model.StockEntry, error)
	Update(ctx context.Context, id uint, req UpdateStockRequest, fields patch.Fields) error
}

type stockService struct {
	repo repository.StockRepository
}

func NewStockService(repo repository.StockRepository) StockService {
	return &stockService{repo: repo}
}

func (s *stockService) Create(ctx context.Context, req CreateStockRequest) (uint, error) {
	entry := &model.StockEntry{
		Unit:         req.Unit,
		ProductionID: req.ProductionID,
		Available:    *req.Available,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return 0, err
	}
	return entry.ID, nil
}

func (s *stockService) GetByID(ctx context.Context, id uint) (*model.StockEntry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Stock no encontrado")
	}
	return entry, nil
}

func (s *stockService) List(ctx context.Context) ([]model.StockEntry, error) {
	return s.repo.List(ctx)
}

func (s *stockService) Update(ctx context.Context, id uint, req UpdateStockRequest, fields patch.Fields) error {
	if err := req.Apply(fields); err != nil {
		return err
	}
	changed, err := s.repo.Update(ctx, id, fields)
	return updated(changed, err, "No se pudo actualizar el stock")
}
