package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"granja/internal/middleware"
	"granja/internal/permission"
	"granja/internal/service"
	"granja/pkg/response"
)

type RoleHandler struct {
	roleService service.RoleService
	gate        middleware.Authorizer
	authn       gin.HandlerFunc
}

func NewRoleHandler(roleService service.RoleService, gate middleware.Authorizer, authn gin.HandlerFunc) *RoleHandler {
	return &RoleHandler{roleService: roleService, gate: gate, authn: authn}
}

func (h *RoleHandler) RegisterRoutes(router *gin.RouterGroup) {
	roles := router.Group("/roles", h.authn)
	{
		roles.GET("/all", middleware.RequirePermission(h.gate, permission.RolesList), h.ListRoles)
		roles.GET("/:id/permisos", middleware.RequirePermission(h.gate, permission.RolesGrants), h.ListGrants)
		roles.PUT("/permisos", middleware.RequirePermission(h.gate, permission.RolesUpsert), h.UpsertGrant)
	}
}

// ListRoles returns all roles
// @Summary      List roles
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.Role}
// @Router       /roles/all [get]
func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.roleService.ListRoles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, roles))
}

// ListGrants returns the per-module grants of a role
// @Summary      List role grants
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Role ID"
// @Success      200  {object}  response.Response{data=[]service.GrantResponse}
// @Failure      404  {object}  response.Response
// @Router       /roles/{id}/permisos [get]
func (h *RoleHandler) ListGrants(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	grants, err := h.roleService.ListGrants(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, grants))
}

// UpsertGrant creates or replaces one (role, module) grant
// @Summary      Set role grant
// @Description  Takes effect on the next request
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.UpsertGrantRequest  true  "Grant"
// @Success      200      {object}  response.Response{data=response.Message}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /roles/permisos [put]
func (h *RoleHandler) UpsertGrant(c *gin.Context) {
	var req service.UpsertGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.roleService.UpsertGrant(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Message{Message: "Permisos actualizados correctamente"}))
}
