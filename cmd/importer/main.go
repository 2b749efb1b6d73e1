package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/ArowuTest/point-balance-service/internal/config"
	"github.com/ArowuTest/point-balance-service/internal/logger"
	"github.com/ArowuTest/point-balance-service/internal/repositories/builder"
	"github.com/ArowuTest/point-balance-service/internal/utils"
	"go.uber.org/zap"
)

// Imports point records from a CSV file (id,point[,refreshTime]) into the configured store
func main() {
	if len(os.Args) < 2 {
		log.Fatal("CSV file path is required as a command line argument")
	}
	csvFilePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pointStore, kv, err := builder.MakeStore(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("Failed to open point store", zap.Error(err))
	}
	defer kv.Close()

	result, err := utils.NewPointCSVImporter(pointStore).ImportFile(ctx, csvFilePath)
	if err != nil {
		zlog.Fatal("Failed to import data", zap.Error(err))
	}

	for _, rowErr := range result.Errors {
		zlog.Warn("Skipped row", zap.String("reason", rowErr))
	}
	zlog.Info("Data imported",
		zap.Int("totalRows", result.TotalRows),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", len(result.Errors)))
}
