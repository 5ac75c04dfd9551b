package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"granja/internal/middleware"
	"granja/internal/permission"
	"granja/internal/service"
	"granja/pkg/apperror"
	"granja/pkg/response"
)

type UserHandler struct {
	userService service.UserService
	gate        middleware.Authorizer
	authn       gin.HandlerFunc
	tokenTTL    time.Duration
}

// NewUserHandler sets up the routing dependencies for User endpoints
func NewUserHandler(userService service.UserService, gate middleware.Authorizer, authn gin.HandlerFunc, tokenTTL time.Duration) *UserHandler {
	return &UserHandler{userService: userService, gate: gate, authn: authn, tokenTTL: tokenTTL}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	access := router.Group("/access")
	{
		access.POST("/login", h.Login)
		access.POST("/logout", h.Logout)
		access.GET("/me", h.authn, h.GetMe)
	}

	users := router.Group("/users", h.authn)
	{
		users.POST("/crear", h.CreateUser)
		users.GET("/by-email", h.GetUserByEmail)
		users.GET("/by-id/:id", h.GetUserByID)
		users.GET("/all-except-admins", middleware.RequirePermission(h.gate, permission.UsersList), h.ListUsers)
		users.PUT("/by-id/:id", h.UpdateUser)
	}
}

// Login handles user authentication
// @Summary      Login
// @Description  Verifies email and password and returns the user with an access token
// @Tags         access
// @Accept       json
// @Produce      json
// @Param        payload  body      service.LoginRequest  true  "Credentials"
// @Success      200      {object}  response.Response{data=service.LoginResponse}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /access/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetTokenCookie(c, res.AccessToken, h.tokenTTL)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// Logout clears the access token cookie
// @Summary      Logout
// @Tags         access
// @Produce      json
// @Success      200  {object}  response.Response{data=response.Message}
// @Router       /access/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	middleware.ClearTokenCookie(c)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Message{Message: "Sesión cerrada"}))
}

// GetMe returns the authenticated caller
// @Summary      Current user
// @Tags         access
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.UserResponse}
// @Failure      401  {object}  response.Response
// @Router       /access/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		respondError(c, apperror.ErrUnauthenticated)
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, user))
}

// CreateUser handles POST /users/crear
// @Summary      Create a new user
// @Description  Creating an admin-tier user (roles 1 and 2) requires insert on the administradores module, any other role requires insert on usuarios
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateUserRequest  true  "Create User Payload"
// @Success      201      {object}  response.Response{data=response.Message}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /users/crear [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	guard := permission.Guard{Module: permission.UserCreationModule(req.RoleID), Action: permission.ActionInsert}
	if !middleware.Allow(c, h.gate, guard) {
		return
	}

	id, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, id, "Usuario creado correctamente")
}

// GetUserByEmail handles GET /users/by-email
// @Summary      Get user by email
// @Description  Looking up your own email needs no grant. Admin-tier accounts require select on administradores
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  query     string  true  "Email"
// @Success      200    {object}  response.Response{data=service.UserResponse}
// @Failure      401    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /users/by-email [get]
func (h *UserHandler) GetUserByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		respondError(c, apperror.NewBadRequest("email is required"))
		return
	}

	user, err := h.userService.GetByEmail(c.Request.Context(), email)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		respondError(c, err)
		return
	}

	id, _ := middleware.CurrentIdentity(c)
	if email != id.Email && !h.allowAccount(c, permission.UsersByEmail, user) {
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, user))
}

// GetUserByID handles GET /users/by-id/:id
// @Summary      Get user by ID
// @Description  Admin-tier accounts require select on administradores
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  response.Response{data=service.UserResponse}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /users/by-id/{id} [get]
func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		respondError(c, err)
		return
	}
	if !h.allowAccount(c, permission.UsersByID, user) {
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, user))
}

// ListUsers handles GET /users/all-except-admins
// @Summary      List users
// @Description  Lists every user whose role is not admin-tier
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]service.UserResponse}
// @Failure      401  {object}  response.Response
// @Router       /users/all-except-admins [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListExceptAdmins(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, users))
}

// UpdateUser handles PUT /users/by-id/:id
// @Summary      Update user
// @Description  Partial update: only supplied fields change. telefono may be null to clear it. Admin-tier accounts require update on administradores
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                        true  "User ID"
// @Param        payload  body      service.UpdateUserRequest  true  "Fields to change"
// @Success      200      {object}  response.Response{data=response.Message}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /users/by-id/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	target, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		respondError(c, err)
		return
	}
	if !h.allowAccount(c, permission.UsersUpdate, target) {
		return
	}

	var req service.UpdateUserRequest
	fields, ok := bindPatch(c, &req)
	if !ok {
		return
	}

	err = h.userService.Update(c.Request.Context(), id, req, fields)
	respondUpdate(c, err, "Usuario actualizado correctamente")
}

// allowAccount authorizes route against the account it reads or changes.
// Admin-tier accounts are governed by the administradores module; a missing
// account is checked against usuarios.
func (h *UserHandler) allowAccount(c *gin.Context, route string, target *service.UserResponse) bool {
	guard, _ := permission.Lookup(route)
	if target != nil {
		guard = guard.ForAccount(target.RoleID)
	}
	return middleware.Allow(c, h.gate, guard)
}
