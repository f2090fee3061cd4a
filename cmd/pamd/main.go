package main

import (
	"go.uber.org/zap"

	"github.com/Rethinkk/pam-registry/internal/api"
	"github.com/Rethinkk/pam-registry/internal/blob"
	"github.com/Rethinkk/pam-registry/internal/config"
	"github.com/Rethinkk/pam-registry/internal/links"
	"github.com/Rethinkk/pam-registry/internal/notify"
	"github.com/Rethinkk/pam-registry/internal/registry"
	"github.com/Rethinkk/pam-registry/internal/report"
	"github.com/Rethinkk/pam-registry/internal/storage"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	logger.Info("Configuration loaded",
		zap.String("port", cfg.ServerPort),
		zap.String("dbPath", cfg.DBPath),
		zap.String("blobBackend", string(cfg.BlobBackend)),
	)

	kv, err := storage.Open(cfg.DBPath, logger)
	if err != nil {
		logger.Fatal("Failed to open slot database", zap.Error(err))
	}
	slots := storage.NewSlotStore(kv, logger)

	var blobs blob.Store
	switch cfg.BlobBackend {
	case config.BlobMinio:
		blobs, err = blob.ConnectMinio(cfg.MinIOURL, cfg.MinIOUser, cfg.MinIOPass, cfg.MinIOBucket, logger)
		if err != nil {
			logger.Fatal("Failed to initialize blob storage", zap.Error(err))
		}
	case config.BlobMemory:
		blobs = blob.NewMemoryStore()
		logger.Warn("Using in-memory blob storage; payloads do not survive a restart")
	}

	bus := notify.NewBus()
	stopMetrics := api.ObserveBus(bus)
	defer stopMetrics()

	seq := registry.NewSequence(kv, cfg.NumberPrefix, logger)
	svc := registry.NewService(slots, bus, seq, logger)
	lm := links.NewManager(svc, logger)
	reports := report.NewBuilder(svc, logger)

	hub := notify.NewHub(bus, logger)
	defer hub.Close()

	server := api.NewServer(cfg, svc, lm, blobs, reports, hub, logger)
	if err := server.Run(); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
