package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"granja/internal/middleware"
	"granja/internal/permission"
	"granja/internal/service"
	"granja/pkg/response"
)

type StockHandler struct {
	stockService service.StockService
	gate         middleware.Authorizer
	authn        gin.HandlerFunc
}

func NewStockHandler(stockService service.StockService, gate middleware.Authorizer, authn gin.HandlerFunc) *StockHandler {
	return &StockHandler{stockService: stockService, gate: gate, authn: authn}
}

func (h *StockHandler) RegisterRoutes(router *gin.RouterGroup) {
	stock := router.Group("/stock", h.authn)
	{
		stock.POST("/crear", middleware.RequirePermission(h.gate, permission.StockCreate), h.CreateStock)
		stock.GET("/by-id/:id", middleware.RequirePermission(h.gate, permission.StockByID), h.GetStock)
		stock.GET("/all", middleware.RequirePermission(h.gate, permission.StockList), h.ListStock)
		stock.PUT("/by-id/:id", middleware.RequirePermission(h.gate, permission.StockUpdate), h.UpdateStock)
	}
}

// CreateStock handles POST /stock/crear
// @Summary      Create stock entry
// @Description  unidad_medida is one of unidad, panal, docena, medio_panal
// @Tags         stock
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateStockRequest  true  "Stock entry"
// @Success      201      {object}  response.Response{data=response.Message}
// @Failure      400      {object}  response.Response
// @Router       /stock/crear [post]
func (h *StockHandler) CreateStock(c *gin.Context) {
	var req service.CreateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	id, err := h.stockService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, id, "Stock creado correctamente")
}

// GetStock handles GET /stock/by-id/:id
// @Summary      Get stock entry
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Stock ID"
// @Success      200  {object}  response.Response{data=model.StockEntry}
// @Failure      404  {object}  response.Response
// @Router       /stock/by-id/{id} [get]
func (h *StockHandler) GetStock(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	entry, err := h.stockService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, entry))
}

// ListStock handles GET /stock/all
// @Summary      List stock
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.StockEntry}
// @Router       /stock/all [get]
func (h *StockHandler) ListStock(c *gin.Context) {
	entries, err := h.stockService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, entries))
}

// UpdateStock handles PUT /stock/by-id/:id
// @Summary      Update stock entry
// @Tags         stock
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                         true  "Stock ID"
// @Param        payload  body      service.UpdateStockRequest  true  "Fields to change"
// @Success      200      {object}  response.Response{data=response.Message}
// @Failure      400      {object}  response.Response
// @Router       /stock/by-id/{id} [put]
func (h *StockHandler) UpdateStock(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateStockRequest
	fields, ok := bindPatch(c, &req)
	if !ok {
		return
	}

	err := h.stockService.Update(c.Request.Context(), id, req, fields)
	respondUpdate(c, err, "Stock actualizado correctamente")
}
