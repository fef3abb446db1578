package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"legumedash/adapters/excel"
	"legumedash/app"
	"legumedash/domain/core"
	"legumedash/internal"
	"legumedash/internal/config"
	"legumedash/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(cfg.Logging.Level)
	internal.DefaultLogger = logger
	gin.SetMode(cfg.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := excel.NewFileTableStore(dataConfig(cfg), logger)

	loadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	dashboard, loadErr := app.Bootstrap(loadCtx, store, logger)
	cancel()
	if loadErr != nil {
		if !core.IsDataUnavailable(loadErr) {
			log.Fatalf("Failed to initialize dashboard: %v", loadErr)
		}
		logger.Error("[Main] Dataset unavailable, serving error page: %v", loadErr)
	}

	server, err := ui.NewServer(dashboard, loadErr, logger)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	if err := server.Serve(ctx, cfg.Addr(), cfg.Server.ShutdownTimeout); err != nil {
		logger.Error("[Main] Server stopped: %v", err)
		os.Exit(1)
	}
	logger.Info("[Main] Shutdown complete")
}

func dataConfig(cfg *config.Config) excel.ExcelConfig {
	dc := excel.DefaultExcelConfig(cfg.Data.File)
	dc.SheetName = cfg.Data.Sheet
	return dc
}
