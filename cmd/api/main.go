// Package main is the entry point for the Offer Tracker API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/offer-tracker/backend/config"
	"github.com/offer-tracker/backend/internal/application/usecase/offer"
	"github.com/offer-tracker/backend/internal/application/usecase/person"
	"github.com/offer-tracker/backend/internal/application/usecase/progress"
	"github.com/offer-tracker/backend/internal/application/usecase/recommendation"
	"github.com/offer-tracker/backend/internal/application/usecase/transaction"
	"github.com/offer-tracker/backend/internal/infra/db"
	"github.com/offer-tracker/backend/internal/infra/server/router"
	"github.com/offer-tracker/backend/internal/integration/email"
	"github.com/offer-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/offer-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/offer-tracker/backend/internal/integration/persistence"
	"github.com/offer-tracker/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	slog.Info("Starting Offer Tracker API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.AutoMigrate(
		&model.PersonModel{},
		&model.OfferModel{},
		&model.TransactionModel{},
	); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	// Create repositories
	personRepo := persistence.NewPersonRepository(database.DB())
	offerRepo := persistence.NewOfferRepository(database.DB())
	transactionRepo := persistence.NewTransactionRepository(database.DB())

	// Create use cases
	listPeopleUseCase := person.NewListPeopleUseCase(personRepo)
	createPersonUseCase := person.NewCreatePersonUseCase(personRepo)
	updatePersonUseCase := person.NewUpdatePersonUseCase(personRepo)
	deletePersonUseCase := person.NewDeletePersonUseCase(personRepo)

	listOffersUseCase := offer.NewListOffersUseCase(offerRepo)
	createOfferUseCase := offer.NewCreateOfferUseCase(offerRepo)
	getOfferUseCase := offer.NewGetOfferUseCase(offerRepo)
	updateOfferUseCase := offer.NewUpdateOfferUseCase(offerRepo)
	deleteOfferUseCase := offer.NewDeleteOfferUseCase(offerRepo)
	copyOfferUseCase := offer.NewCopyOfferUseCase(offerRepo, personRepo)

	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)
	listMerchantsUseCase := transaction.NewListMerchantsUseCase(transactionRepo)
	merchantCategoriesUseCase := transaction.NewGetMerchantCategoriesUseCase(transactionRepo)

	offerProgressUseCase := progress.NewGetOfferProgressUseCase(offerRepo, transactionRepo)
	matchingOffersUseCase := progress.NewGetMatchingOffersUseCase(offerRepo, transactionRepo)
	dashboardUseCase := progress.NewGetDashboardUseCase(offerRepo, transactionRepo)
	recommendationsUseCase := recommendation.NewGetRecommendationsUseCase(offerRepo, transactionRepo, cfg.Engine.MaxOverlapOffers)

	// Create controllers
	healthController := controller.NewHealthController(database.HealthCheck)
	personController := controller.NewPersonController(listPeopleUseCase, createPersonUseCase, updatePersonUseCase, deletePersonUseCase)
	offerController := controller.NewOfferController(
		listOffersUseCase,
		createOfferUseCase,
		getOfferUseCase,
		updateOfferUseCase,
		deleteOfferUseCase,
		copyOfferUseCase,
		offerProgressUseCase,
	)
	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
		listMerchantsUseCase,
		merchantCategoriesUseCase,
		matchingOffersUseCase,
	)
	dashboardController := controller.NewDashboardController(dashboardUseCase)
	recommendationController := controller.NewRecommendationController(recommendationsUseCase)

	// The recommendation endpoint is the only expensive one; its limiter
	// rides on Redis so restarts don't reset the window.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	recommendationLimiter := middleware.NewRateLimiter(redisClient, cfg.Engine.RateLimitPerMinute)

	// Background context for long-running workers
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	if cfg.Email.WorkerEnabled && cfg.Email.ResendAPIKey != "" && cfg.Email.ToEmail != "" {
		sender := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail, cfg.Email.ToEmail)
		worker := email.NewWorker(offerRepo, transactionRepo, sender, email.WorkerConfig{
			PollInterval: cfg.Email.PollInterval,
			ExpiryWindow: cfg.Email.ExpiryWindow,
		})
		go worker.Start(workerCtx)
	} else {
		slog.Info("Expiry digest worker disabled")
	}

	// Setup router
	r := router.NewRouter(
		healthController,
		personController,
		offerController,
		transactionController,
		dashboardController,
		recommendationController,
		recommendationLimiter,
	)
	engine := r.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	cancelWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
