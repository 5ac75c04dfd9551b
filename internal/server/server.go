// Package server assembles the HTTP application: repositories, the
// permission gate, services, handlers and the gin middleware chain.
package server

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "granja/api/swagger" // swagger docs
	"granja/internal/auth"
	"granja/internal/config"
	"granja/internal/handler"
	"granja/internal/middleware"
	"granja/internal/permission"
	"granja/internal/repository"
	"granja/internal/service"
)

type App struct {
	Router *gin.Engine
	roles  service.RoleService
	seed   config.SeedConfig
}

// New wires every layer on top of db. It does not touch the database.
func New(cfg *config.Config, db *gorm.DB) (*App, error) {
	if err := handler.RegisterValidators(); err != nil {
		return nil, err
	}

	tokens, err := auth.NewJWTService(auth.JWTConfig{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
		TTL:    cfg.JWT.TTL,
	})
	if err != nil {
		return nil, err
	}

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	roleRepo := repository.NewRoleRepository(db)
	userRepo := repository.NewUserRepository(db)
	farmRepo := repository.NewFarmRepository(db)
	productionRepo := repository.NewProductionRepository(db)
	eggTypeRepo := repository.NewEggTypeRepository(db)
	stockRepo := repository.NewStockRepository(db)

	gate, err := permission.NewGate(roleRepo)
	if err != nil {
		return nil, err
	}

	userService := service.NewUserService(userRepo, tokens)
	roleService := service.NewRoleService(roleRepo, userRepo, txManager)
	farmService := service.NewFarmService(farmRepo)
	productionService := service.NewProductionService(productionRepo)
	eggTypeService := service.NewEggTypeService(eggTypeRepo)
	stockService := service.NewStockService(stockRepo)

	authn := middleware.Authenticate(tokens)

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logger(), middleware.Recovery())
	if cfg.Metrics.Enabled {
		router.Use(middleware.Metrics())
	}
	router.Use(cors.New(corsConfig(cfg.CORS.AllowedOrigins())))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	router.GET("/health", healthCheck(db))
	if cfg.Metrics.Enabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("")
	handler.NewUserHandler(userService, gate, authn, cfg.JWT.TTL).RegisterRoutes(api)
	handler.NewFarmHandler(farmService, gate, authn).RegisterRoutes(api)
	handler.NewProductionHandler(productionService, gate, authn).RegisterRoutes(api)
	handler.NewEggTypeHandler(eggTypeService, gate, authn).RegisterRoutes(api)
	handler.NewStockHandler(stockService, gate, authn).RegisterRoutes(api)
	handler.NewRoleHandler(roleService, gate, authn).RegisterRoutes(api)
	router.NoRoute(middleware.NotFound)

	return &App{Router: router, roles: roleService, seed: cfg.Seed}, nil
}

// Seed creates the default roles and grants when enabled in configuration.
func (a *App) Seed(ctx context.Context) error {
	if !a.seed.Defaults {
		return nil
	}
	var admin *service.SeedAdmin
	if a.seed.AdminEmail != "" {
		admin = &service.SeedAdmin{Email: a.seed.AdminEmail, Password: a.seed.AdminPassword}
	}
	return a.roles.SeedDefaults(ctx, admin)
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		// credentials cannot be combined with a wildcard origin
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}
	c.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", middleware.HeaderRequestID}
	c.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	c.ExposeHeaders = []string{middleware.HeaderRequestID}
	return c
}

func healthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DOWN", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	}
}
