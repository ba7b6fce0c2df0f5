package main

import (
	"net/http"
	"os"

	"github.com/dgraph-io/badger/v3"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/openfx/currencyconverter/internal/application/service"
	"github.com/openfx/currencyconverter/internal/config"
	"github.com/openfx/currencyconverter/internal/infrastructure/api"
	"github.com/openfx/currencyconverter/internal/infrastructure/cache"
	"github.com/openfx/currencyconverter/internal/infrastructure/db"
	"github.com/openfx/currencyconverter/internal/infrastructure/handler"
	"github.com/openfx/currencyconverter/internal/infrastructure/logger"
	"github.com/openfx/currencyconverter/internal/infrastructure/middleware"
)

func main() {
	// Best effort; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.GetDefaultLogger().Fatal("Failed to load configuration", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log := logger.NewJSONLogger(os.Stdout, logger.ParseLevel(cfg.LogLevel))
	logger.SetDefaultLogger(log)

	log.Info("Starting currency converter rate service", map[string]interface{}{
		"addr":       cfg.Addr,
		"enterprise": cfg.Enterprise,
	})

	if err := os.MkdirAll(cfg.DBPath, 0755); err != nil {
		log.Fatal("Failed to create database directory", map[string]interface{}{
			"path":  cfg.DBPath,
			"error": err.Error(),
		})
	}

	badgerOpts := badger.DefaultOptions(cfg.DBPath)
	badgerOpts.Logger = nil

	badgerDB, err := badger.Open(badgerOpts)
	if err != nil {
		log.Fatal("Failed to open database", map[string]interface{}{
			"path":  cfg.DBPath,
			"error": err.Error(),
		})
	}

	defer func() {
		if err := badgerDB.Close(); err != nil {
			log.Error("Error closing BadgerDB", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	client, err := api.NewCurrencyConverterClient(nil, api.Options{
		AccessKey:  cfg.AccessKey,
		Enterprise: cfg.Enterprise,
	}, log)
	if err != nil {
		log.Fatal("Failed to configure currency converter client", map[string]interface{}{
			"error": err.Error(),
		})
	}

	rateRepo := db.NewBadgerExchangeRateRepository(badgerDB)
	rateCache := cache.NewExchangeRateCache()
	rateService := service.NewRateService(client, rateRepo, rateCache, log)
	rateHandler := handler.NewRateHandler(rateService, log)

	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware(log))
	rateHandler.RegisterRoutes(router)

	log.Info("Server listening", map[string]interface{}{"addr": cfg.Addr})

	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatal("Server stopped", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
