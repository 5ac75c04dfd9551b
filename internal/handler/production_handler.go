package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"granja/internal/middleware"
	"granja/internal/permission"
	"granja/internal/service"
	"granja/pkg/pagination"
	"granja/pkg/response"
)

type ProductionHandler struct {
	productionService service.ProductionService
	gate              middleware.Authorizer
	authn             gin.HandlerFunc
}

func NewProductionHandler(productionService service.ProductionService, gate middleware.Authorizer, authn gin.HandlerFunc) *ProductionHandler {
	return &ProductionHandler{productionService: productionService, gate: gate, authn: authn}
}

func (h *ProductionHandler) RegisterRoutes(router *gin.RouterGroup) {
	batches := router.Group("/produccion-huevos", h.authn)
	{
		batches.POST("/crear", middleware.RequirePermission(h.gate, permission.ProductionCreate), h.CreateBatch)
		batches.GET("/by-id/:id", middleware.RequirePermission(h.gate, permission.ProductionByID), h.GetBatch)
		batches.GET("/all", middleware.RequirePermission(h.gate, permission.ProductionList), h.ListBatches)
		batches.PUT("/by-id/:id", middleware.RequirePermission(h.gate, permission.ProductionUpdate), h.UpdateBatch)
		batches.DELETE("/by-id/:id", middleware.RequirePermission(h.gate, permission.ProductionDelete), h.DeleteBatch)
	}
}

// CreateBatch handles POST /produccion-huevos/crear
// @Summary      Register egg production
// @Tags         produccion
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateProductionRequest  true  "Batch"
// @Success      201      {object}  response.Response{data=response.Message}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /produccion-huevos/crear [post]
func (h *ProductionHandler) CreateBatch(c *gin.Context) {
	var req service.CreateProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	id, err := h.productionService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, id, "Producción de huevos creada correctamente")
}

// GetBatch handles GET /produccion-huevos/by-id/:id
// @Summary      Get egg production
// @Tags         produccion
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Batch ID"
// @Success      200  {object}  response.Response{data=service.ProductionResponse}
// @Failure      404  {object}  response.Response
// @Router       /produccion-huevos/by-id/{id} [get]
func (h *ProductionHandler) GetBatch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	batch, err := h.productionService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, batch))
}

// ListBatches handles GET /produccion-huevos/all
// @Summary      List egg production
// @Description  Ordered by date. The date range applies only when both fecha_inicio and fecha_fin are given
// @Tags         produccion
// @Produce      json
// @Security     BearerAuth
// @Param        limit         query     int     false  "Page size (default 10, max 100)"
// @Param        offset        query     int     false  "Rows to skip"
// @Param        fecha_inicio  query     string  false  "From date (YYYY-MM-DD)"
// @Param        fecha_fin     query     string  false  "To date (YYYY-MM-DD)"
// @Success      200           {object}  response.Response{data=[]service.ProductionResponse}
// @Failure      400           {object}  response.Response
// @Router       /produccion-huevos/all [get]
func (h *ProductionHandler) ListBatches(c *gin.Context) {
	page := pagination.Parse(c)
	req := service.ListProductionRequest{
		Limit:  page.Limit,
		Offset: page.Offset,
		From:   c.Query("fecha_inicio"),
		To:     c.Query("fecha_fin"),
	}

	batches, err := h.productionService.List(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, batches))
}

// UpdateBatch handles PUT /produccion-huevos/by-id/:id
// @Summary      Update egg production
// @Tags         produccion
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                              true  "Batch ID"
// @Param        payload  body      service.UpdateProductionRequest  true  "Fields to change"
// @Success      200      {object}  response.Response{data=response.Message}
// @Failure      400      {object}  response.Response
// @Router       /produccion-huevos/by-id/{id} [put]
func (h *ProductionHandler) UpdateBatch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateProductionRequest
	fields, ok := bindPatch(c, &req)
	if !ok {
		return
	}

	err := h.productionService.Update(c.Request.Context(), id, req, fields)
	respondUpdate(c, err, "Producción de huevos actualizada correctamente")
}

// DeleteBatch handles DELETE /produccion-huevos/by-id/:id
// @Summary      Delete egg production
// @Tags         produccion
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Batch ID"
// @Success      200  {object}  response.Response{data=response.Message}
// @Failure      404  {object}  response.Response
// @Router       /produccion-huevos/by-id/{id} [delete]
func (h *ProductionHandler) DeleteBatch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.productionService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Message{Message: "Producción de huevos eliminada correctamente"}))
}
