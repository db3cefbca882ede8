package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/simplepay/paygate/config"
	handler "github.com/simplepay/paygate/internal/handler/http"
	"github.com/simplepay/paygate/internal/logger"
	"github.com/simplepay/paygate/internal/middleware"
	"github.com/simplepay/paygate/internal/repository"
	"github.com/simplepay/paygate/internal/repository/postgres"
	"github.com/simplepay/paygate/internal/service"
	"github.com/simplepay/paygate/internal/uropay"
	"go.uber.org/zap"
)

func main() {

	// create new config
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Log.Sync()

	// create context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// initialize database
	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Log.Fatal("Error initializing database", zap.Error(err))
	}
	defer db.Close()

	// migrate database
	if err := db.Migrate(); err != nil {
		logger.Log.Fatal("Error migrating database", zap.Error(err))
	}

	// dependency injection
	paymentRepo := repository.NewPaymentRepository(db)
	gateway := uropay.NewClient(cfg.UropayBaseURL)
	paymentService := service.NewPaymentService(paymentRepo, gateway, cfg)
	paymentHandler := handler.NewPaymentHandler(paymentService, cfg.IsProduction())

	router := chi.NewRouter()

	router.Use(middleware.Logging(logger.Log))

	router.Get("/", paymentHandler.Index())
	router.Post("/payment", paymentHandler.CreatePayment())
	router.Get("/payment/status", paymentHandler.PaymentStatus())
	router.Get("/payment/success", paymentHandler.PaymentSuccess())
	router.Get("/payment/cancel", paymentHandler.PaymentCancel())
	router.Post("/payment/webhook/{gateway}", paymentHandler.Webhook())

	router.NotFound(handler.NotFound())

	logger.Log.Info("Running server", zap.String("addr", cfg.ServerAddr))

	if err := http.ListenAndServe(cfg.ServerAddr, router); err != nil {
		logger.Log.Fatal("Error starting server", zap.Error(err))
	}
}
