package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ArowuTest/point-balance-service/api/routes"
	"github.com/ArowuTest/point-balance-service/internal/config"
	"github.com/ArowuTest/point-balance-service/internal/handlers"
	"github.com/ArowuTest/point-balance-service/internal/logger"
	"github.com/ArowuTest/point-balance-service/internal/repositories/builder"
	"github.com/ArowuTest/point-balance-service/internal/services"
	"github.com/ArowuTest/point-balance-service/internal/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	if cfg.App.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
	pointStore, kv, err := builder.MakeStore(connectCtx, cfg, zlog)
	cancelConnect()
	if err != nil {
		zlog.Fatal("Failed to open point store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer func() {
		if err := kv.Close(); err != nil {
			zlog.Error("Error closing point store", zap.Error(err))
		}
	}()

	ids, err := utils.NewIDGenerator(cfg.IDs.Strategy, cfg.IDs.Min, cfg.IDs.Max)
	if err != nil {
		zlog.Fatal("Failed to build id generator", zap.Error(err))
	}

	pointService := services.NewPointService(pointStore, ids, zlog)
	handlerDeps := routes.HandlerDependencies{
		PointHandler: handlers.NewPointHandler(pointService),
	}
	router := routes.SetupRouter(cfg, handlerDeps, zlog)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	zlog.Info("Server starting", zap.String("port", cfg.Server.Port), zap.String("profile", cfg.App.Profile))

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("Server forced to shutdown", zap.Error(err))
	}

	zlog.Info("Server exiting")
}
