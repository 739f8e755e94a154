package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rewired-gh/probebar/internal/config"
	"github.com/rewired-gh/probebar/internal/dataset"
	"github.com/rewired-gh/probebar/internal/engine"
	"github.com/rewired-gh/probebar/internal/figure"
	"github.com/rewired-gh/probebar/internal/logger"
	"github.com/rewired-gh/probebar/internal/server"
	"github.com/rewired-gh/probebar/internal/storage"
)

var configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Setup logging with level support
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("Configuration loaded from %s", *configPath)

	// Build the color scale
	blues, err := cfg.BluePalette()
	if err != nil {
		logger.Fatal("Failed to resolve blue palette: %v", err)
	}
	reds, err := cfg.RedPalette()
	if err != nil {
		logger.Fatal("Failed to resolve red palette: %v", err)
	}
	scale, err := engine.SampledScale(blues, reds, cfg.Scale.BlueStops, cfg.Scale.RedStops)
	if err != nil {
		logger.Fatal("Failed to build color scale: %v", err)
	}
	logger.Debug("Color scale: %d stops", scale.Len())

	// Compute category statistics once; malformed statistics stop startup here
	categories, err := dataset.Build(cfg.DatasetParams(), cfg.Dataset.ZScore)
	if err != nil {
		logger.Fatal("Failed to build dataset: %v", err)
	}
	store, err := storage.New(categories)
	if err != nil {
		logger.Fatal("Invalid category statistics: %v", err)
	}
	for _, c := range store.All() {
		logger.Info("Category %s: mean=%.1f margin=%.1f interval=[%.1f, %.1f]",
			c.Label, c.Mean, c.Margin, c.Lower(), c.Upper())
	}

	srv := server.New(store, engine.New(scale), server.Options{
		Address:         cfg.Server.Address,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Probe:           cfg.ProbeRange(),
		Marks:           cfg.Probe.Marks,
		Figure: figure.Options{
			Title:       cfg.Chart.Title,
			Width:       cfg.Chart.Width,
			Height:      cfg.Chart.Height,
			YTicks:      cfg.Chart.YTicks,
			LegendTicks: cfg.Chart.LegendTicks,
			ErrorWidth:  cfg.Chart.ErrorWidth,
		},
	})

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, cleaning up...")
		cancel()
	}()

	if err := srv.Run(ctx); err != nil {
		logger.Fatal("Server failed: %v", err)
	}
	logger.Info("Service stopped")
}
