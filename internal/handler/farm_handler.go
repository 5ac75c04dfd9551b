package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"granja/internal/middleware"
	"granja/internal/permission"
	"granja/internal/service"
	"granja/pkg/response"
)

type FarmHandler struct {
	farmService service.FarmService
	gate        middleware.Authorizer
	authn       gin.HandlerFunc
}

func NewFarmHandler(farmService service.FarmService, gate middleware.Authorizer, authn gin.HandlerFunc) *FarmHandler {
	return &FarmHandler{farmService: farmService, gate: gate, authn: authn}
}

func (h *FarmHandler) RegisterRoutes(router *gin.RouterGroup) {
	fincas := router.Group("/fincas", h.authn)
	{
		fincas.POST("/crear", middleware.RequirePermission(h.gate, permission.FarmsCreate), h.CreateFarm)
		fincas.GET("/by-id/:id", middleware.RequirePermission(h.gate, permission.FarmsByID), h.GetFarm)
		fincas.GET("/all-fincas", middleware.RequirePermission(h.gate, permission.FarmsList), h.ListFarms)
		fincas.GET("/by-usuario/:id", middleware.RequirePermission(h.gate, permission.FarmsByUser), h.ListFarmsByUser)
		fincas.PUT("/by-id/:id", middleware.RequirePermission(h.gate, permission.FarmsUpdate), h.UpdateFarm)
	}
}

// CreateFarm handles POST /fincas/crear
// @Summary      Create farm
// @Tags         fincas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateFarmRequest  true  "Farm"
// @Success      201      {object}  response.Response{data=response.Message}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /fincas/crear [post]
func (h *FarmHandler) CreateFarm(c *gin.Context) {
	var req service.CreateFarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	id, err := h.farmService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, id, "Finca creada correctamente")
}

// GetFarm handles GET /fincas/by-id/:id
// @Summary      Get farm
// @Tags         fincas
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Farm ID"
// @Success      200  {object}  response.Response{data=model.Farm}
// @Failure      404  {object}  response.Response
// @Router       /fincas/by-id/{id} [get]
func (h *FarmHandler) GetFarm(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	farm, err := h.farmService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, farm))
}

// ListFarms handles GET /fincas/all-fincas
// @Summary      List farms
// @Tags         fincas
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.Farm}
// @Router       /fincas/all-fincas [get]
func (h *FarmHandler) ListFarms(c *gin.Context) {
	farms, err := h.farmService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, farms))
}

// ListFarmsByUser handles GET /fincas/by-usuario/:id
// @Summary      List farms owned by a user
// @Tags         fincas
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  response.Response{data=[]model.Farm}
// @Router       /fincas/by-usuario/{id} [get]
func (h *FarmHandler) ListFarmsByUser(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}

	farms, err := h.farmService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, farms))
}

// UpdateFarm handles PUT /fincas/by-id/:id
// @Summary      Update farm
// @Description  Partial update. The owner cannot be changed
// @Tags         fincas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                        true  "Farm ID"
// @Param        payload  body      service.UpdateFarmRequest  true  "Fields to change"
// @Success      200      {object}  response.Response{data=response.Message}
// @Failure      400      {object}  response.Response
// @Router       /fincas/by-id/{id} [put]
func (h *FarmHandler) UpdateFarm(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateFarmRequest
	fields, ok := bindPatch(c, &req)
	if !ok {
		return
	}

	err := h.farmService.Update(c.Request.Context(), id, req, fields)
	respondUpdate(c, err, "Finca actualizada correctamente")
}
