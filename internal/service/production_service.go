package service

import (
	"context"
	"time"

	"granja/internal/model"
	"granja/internal/repository"
	"granja/pkg/apperror"
	"granja/pkg/patch"
)

type CreateProductionRequest struct {
	ShedID    uint   `json:"id_galpon" binding:"required,gt=0"`
	Quantity  *int   `json:"cantidad" binding:"required,min=0"`
	Date      string `json:"fecha" binding:"required,datetime=2006-01-02"`
	EggTypeID uint   `json:"id_tipo_huevo" binding:"required,gt=0"`
}

type UpdateProductionRequest struct {
	ShedID    *uint   `json:"id_galpon" binding:"omitempty,gt=0"`
	Quantity  *int    `json:"cantidad" binding:"omitempty,min=0"`
	Date      *string `json:"fecha" binding:"omitempty,datetime=2006-01-02"`
	EggTypeID *uint   `json:"id_tipo_huevo" binding:"omitempty,gt=0"`
}

func (r UpdateProductionRequest) Apply(f patch.Fields) error {
	patch.Set(f, "id_galpon", r.ShedID)
	patch.Set(f, "cantidad", r.Quantity)
	patch.Set(f, "id_tipo_huevo", r.EggTypeID)

	if r.Date == nil {
		patch.Set[time.Time](f, "fecha", nil)
		return nil
	}
	d, err := parseDate(*r.Date)
	if err != nil {
		return err
	}
	patch.Set(f, "fecha", &d)
	return nil
}

// ListProductionRequest filters the batch listing. Dates are YYYY-MM-DD and
// are ignored unless both are present.
type ListProductionRequest struct {
	Limit  int
	Offset int
	From   string
	To     string
}

type ProductionResponse struct {
	ID        uint    `json:"id_produccion"`
	ShedID    uint    `json:"id_galpon"`
	ShedName  *string `json:"nombre_galpon"`
	Quantity  int     `json:"cantidad"`
	Date      string  `json:"fecha"`
	EggTypeID uint    `json:"id_tipo_huevo"`
	EggSize   *string `json:"tamano"`
}

type ProductionService interface {
	Create(ctx context.Context, req CreateProductionRequest) (uint, error)
	GetByID(ctx context.Context, id uint) (*ProductionResponse, error)
	List(ctx context.Context, req ListProductionRequest) ([]ProductionResponse, error)
	Update(ctx context.Context, id uint, req UpdateProductionRequest, fields patch.Fields) error
	Delete(ctx context.Context, id uint) error
}

type productionService struct {
	repo repository.ProductionRepository
}

func NewProductionService(repo repository.ProductionRepository) ProductionService {
	return &productionService{repo: repo}
}

func mapProductionToResponse(v *model.ProductionView) ProductionResponse {
	return ProductionResponse{
		ID:        v.ID,
		ShedID:    v.ShedID,
		ShedName:  v.ShedName,
		Quantity:  v.Quantity,
		Date:      v.Date.Format(DateLayout),
		EggTypeID: v.EggTypeID,
		EggSize:   v.EggSize,
	}
}

func (s *productionService) Create(ctx context.Context, req CreateProductionRequest) (uint, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return 0, err
	}

	batch := &model.ProductionBatch{
		ShedID:    req.ShedID,
		Quantity:  *req.Quantity,
		Date:      date,
		EggTypeID: req.EggTypeID,
	}
	if err := s.repo.Create(ctx, batch); err != nil {
		return 0, err
	}
	return batch.ID, nil
}

func (s *productionService) GetByID(ctx context.Context, id uint) (*ProductionResponse, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Producción de huevos no encontrada")
	}
	resp := mapProductionToResponse(v)
	return &resp, nil
}

func (s *productionService) List(ctx context.Context, req ListProductionRequest) ([]ProductionResponse, error) {
	filter := repository.ProductionFilter{Limit: req.Limit, Offset: req.Offset}
	if req.From != "" && req.To != "" {
		from, err := parseDate(req.From)
		if err != nil {
			return nil, err
		}
		to, err := parseDate(req.To)
		if err != nil {
			return nil, err
		}
		if to.Before(from) {
			return nil, apperror.NewBadRequest("fecha_fin debe ser posterior a fecha_inicio")
		}
		filter.From, filter.To = &from, &to
	}

	views, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductionResponse, 0, len(views))
	for i := range views {
		responses = append(responses, mapProductionToResponse(&views[i]))
	}
	return responses, nil
}

func (s *productionService) Update(ctx context.Context, id uint, req UpdateProductionRequest, fields patch.Fields) error {
	if err := req.Apply(fields); err != nil {
		return err
	}
	changed, err := s.repo.Update(ctx, id, fields)
	return updated(changed, err, "No se pudo actualizar la producción de huevos")
}

func (s *productionService) Delete(ctx context.Context, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.ErrNotFound.WithMessage("Producción de huevos no encontrada")
	}
	return nil
}
