package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"granja/internal/config"
	"granja/internal/database"
	"granja/internal/server"
	"granja/pkg/logger"
)

// @title           Granja API
// @version         1.0
// @description     Farm management API: users, farms, egg production, stock and role permissions.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(cfg.Log.Level); err != nil {
		_, _ = os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.WithModule("main")

	gin.SetMode(cfg.Gin.Mode)
	decimal.MarshalJSONWithoutQuotes = true

	db, err := database.NewConnection(cfg.DB)
	if err != nil {
		log.Fatal("Database connection failed", zap.Error(err))
	}
	log.Info("Connected to database", zap.String("driver", cfg.DB.Driver))

	app, err := server.New(cfg, db)
	if err != nil {
		log.Fatal("Server setup failed", zap.Error(err))
	}

	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = app.Seed(seedCtx)
	cancel()
	if err != nil {
		log.Fatal("Seeding defaults failed", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
