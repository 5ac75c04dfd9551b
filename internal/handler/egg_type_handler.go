package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"granja/internal/middleware"
	"granja/internal/permission"
	"granja/internal/service"
	"granja/pkg/response"
)

type EggTypeHandler struct {
	eggTypeService service.EggTypeService
	gate           middleware.Authorizer
	authn          gin.HandlerFunc
}

func NewEggTypeHandler(eggTypeService service.EggTypeService, gate middleware.Authorizer, authn gin.HandlerFunc) *EggTypeHandler {
	return &EggTypeHandler{eggTypeService: eggTypeService, gate: gate, authn: authn}
}

func (h *EggTypeHandler) RegisterRoutes(router *gin.RouterGroup) {
	types := router.Group("/tipo-huevos", h.authn)
	{
		types.POST("/crear", middleware.RequirePermission(h.gate, permission.EggTypesCreate), h.CreateEggType)
		types.GET("/by-id/:id", middleware.RequirePermission(h.gate, permission.EggTypesByID), h.GetEggType)
		types.GET("/all", middleware.RequirePermission(h.gate, permission.EggTypesList), h.ListEggTypes)
		types.PUT("/by-id/:id", middleware.RequirePermission(h.gate, permission.EggTypesUpdate), h.UpdateEggType)
	}
}

// CreateEggType handles POST /tipo-huevos/crear
// @Summary      Create egg type
// @Tags         tipo_huevos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateEggTypeRequest  true  "Egg type"
// @Success      201      {object}  response.Response{data=response.Message}
// @Failure      400      {object}  response.Response
// @Router       /tipo-huevos/crear [post]
func (h *EggTypeHandler) CreateEggType(c *gin.Context) {
	var req service.CreateEggTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	id, err := h.eggTypeService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, id, "Tipo de huevo creado correctamente")
}

// GetEggType handles GET /tipo-huevos/by-id/:id
// @Summary      Get egg type
// @Tags         tipo_huevos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Egg type ID"
// @Success      200  {object}  response.Response{data=model.EggType}
// @Failure      404  {object}  response.Response
// @Router       /tipo-huevos/by-id/{id} [get]
func (h *EggTypeHandler) GetEggType(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	t, err := h.eggTypeService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, t))
}

// ListEggTypes handles GET /tipo-huevos/all
// @Summary      List egg types
// @Tags         tipo_huevos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.EggType}
// @Router       /tipo-huevos/all [get]
func (h *EggTypeHandler) ListEggTypes(c *gin.Context) {
	types, err := h.eggTypeService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, types))
}

// UpdateEggType handles PUT /tipo-huevos/by-id/:id
// @Summary      Update egg type
// @Tags         tipo_huevos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                           true  "Egg type ID"
// @Param        payload  body      service.UpdateEggTypeRequest  true  "Fields to change"
// @Success      200      {object}  response.Response{data=response.Message}
// @Failure      400      {object}  response.Response
// @Router       /tipo-huevos/by-id/{id} [put]
func (h *EggTypeHandler) UpdateEggType(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateEggTypeRequest
	fields, ok := bindPatch(c, &req)
	if !ok {
		return
	}

	err := h.eggTypeService.Update(c.Request.Context(), id, req, fields)
	respondUpdate(c, err, "Tipo de huevo actualizado correctamente")
}
