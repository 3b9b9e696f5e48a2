package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cardioscope-ai/riskscore/pkg/common/config"
	"github.com/cardioscope-ai/riskscore/pkg/common/database"
	"github.com/cardioscope-ai/riskscore/pkg/common/kafka"
	"github.com/cardioscope-ai/riskscore/pkg/common/logger"
	"github.com/cardioscope-ai/riskscore/pkg/features"
	"github.com/cardioscope-ai/riskscore/pkg/history"
	"github.com/cardioscope-ai/riskscore/pkg/model"
	"github.com/cardioscope-ai/riskscore/pkg/normalizer"
	"github.com/cardioscope-ai/riskscore/pkg/observability/metrics"
	"github.com/cardioscope-ai/riskscore/pkg/scoring"
	"github.com/gorilla/mux"
)

func main() {
	logger.Init()
	cfg := config.Load()

	registry, err := features.LoadRegistry(cfg.SchemaFile)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load schema registry")
	}

	engines := make(map[string]scoring.Engine)
	for _, schema := range registry.List() {
		bundle, err := model.LoadBundle(cfg.ArtifactDir, schema)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				logger.Log.WithField("schema", schema.Name).Warn("No artifacts for schema, skipping")
				continue
			}
			logger.Log.WithError(err).WithField("schema", schema.Name).Fatal("Failed to load artifacts")
		}
		engines[schema.Name] = bundle
		logger.Log.WithFields(map[string]interface{}{
			"schema":   schema.Name,
			"features": schema.FeatureCount(),
			"policy":   schema.Policy,
		}).Info("Artifacts loaded")
	}
	if _, ok := engines[cfg.DefaultSchema]; !ok {
		logger.Log.WithField("schema", cfg.DefaultSchema).Fatal("Default schema has no loaded artifacts")
	}

	var store history.Store
	if cfg.HistoryEnabled {
		switch cfg.HistoryBackend {
		case "postgres":
			db, err := database.GetPostgres(cfg)
			if err != nil {
				logger.Log.WithError(err).Fatal("Failed to connect to database")
			}
			repo := history.NewRepository(db)
			if err := repo.AutoMigrate(); err != nil {
				logger.Log.WithError(err).Fatal("Failed to migrate history table")
			}
			store = repo
		case "file":
			fileStore, err := history.NewFileStore(cfg.HistoryFile)
			if err != nil {
				logger.Log.WithError(err).Fatal("Failed to open history file store")
			}
			store = fileStore
		default:
			logger.Log.WithField("backend", cfg.HistoryBackend).Fatal("Unknown history backend")
		}
	}

	var producer scoring.EventPublisher
	if cfg.KafkaEnabled {
		kafkaProducer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.EventSource)
		defer kafkaProducer.Close()
		producer = kafkaProducer
	}

	var cache *scoring.ResultCache
	if cfg.CacheEnabled {
		cache = scoring.NewResultCache(database.GetRedis(cfg), cfg.ResultCacheTTL)
	}

	validator := normalizer.NewValidator(cfg.HistoryEnabled)
	service := scoring.NewService(registry, engines, validator, cfg.DefaultSchema, store, producer, cache)
	handler := scoring.NewHandler(service)

	router := mux.NewRouter()
	router.HandleFunc("/health", healthCheck).Methods(http.MethodGet)
	router.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		metrics.WritePrometheus(w)
	}).Methods(http.MethodGet)
	handler.Register(router.PathPrefix("/api/v1").Subrouter())

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Log.WithFields(map[string]interface{}{
			"host": cfg.ServerHost,
			"port": cfg.ServerPort,
		}).Info("Scoring Service started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down Scoring Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Error("Server forced to shutdown")
	}

	if err := database.ClosePostgres(); err != nil {
		logger.Log.WithError(err).Error("Failed to close database")
	}
	if err := database.CloseRedis(); err != nil {
		logger.Log.WithError(err).Error("Failed to close redis")
	}

	logger.Log.Info("Scoring Service stopped")
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
