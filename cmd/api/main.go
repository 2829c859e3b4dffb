package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/WebuildSoft/myrifa-sub001/api/routes"
	"github.com/WebuildSoft/myrifa-sub001/internal/config"
	"github.com/WebuildSoft/myrifa-sub001/internal/handlers"
	"github.com/WebuildSoft/myrifa-sub001/internal/repositories"
	mongorepo "github.com/WebuildSoft/myrifa-sub001/internal/repositories/mongodb"
	"github.com/WebuildSoft/myrifa-sub001/internal/services"
	"github.com/WebuildSoft/myrifa-sub001/pkg/mongodb"
	"github.com/WebuildSoft/myrifa-sub001/pkg/payment"
	"github.com/WebuildSoft/myrifa-sub001/pkg/whatsapp"
	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	if cfg.JWT.Secret == "" {
		slog.Error("JWT secret is not configured")
		os.Exit(1)
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelIndexes()
	if err := mongorepo.EnsureIndexes(indexCtx, db); err != nil {
		slog.Error("Failed to ensure indexes", "error", err)
		os.Exit(1)
	}

	// Repositories
	var organizerRepo repositories.OrganizerRepository = mongorepo.NewOrganizerRepository(db)
	var campaignRepo repositories.CampaignRepository = mongorepo.NewCampaignRepository(db)
	var ticketRepo repositories.TicketRepository = mongorepo.NewTicketRepository(db)
	var buyerRepo repositories.BuyerRepository = mongorepo.NewBuyerRepository(db)
	var transactionRepo repositories.TransactionRepository = mongorepo.NewTransactionRepository(db)
	var prizeRepo repositories.PrizeRepository = mongorepo.NewPrizeRepository(db)
	var drawAuditRepo repositories.DrawAuditRepository = mongorepo.NewDrawAuditRepository(db)
	var notificationRepo repositories.NotificationRepository = mongorepo.NewNotificationRepository(db)

	// External gateways
	var provider payment.Provider
	if cfg.Payment.MockProvider {
		slog.Warn("Using mock payment provider")
		provider = payment.NewMockProvider()
	} else {
		provider = payment.NewMercadoPagoProvider(cfg.Payment.BaseURL, cfg.Payment.AccessToken)
	}

	var gateway whatsapp.Gateway
	if cfg.WhatsApp.MockGateway {
		slog.Warn("Using mock WhatsApp gateway")
		gateway = whatsapp.NewMockGateway()
	} else {
		gateway = whatsapp.NewHTTPGateway(cfg.WhatsApp.BaseURL, cfg.WhatsApp.APIKey)
	}

	// Services
	notificationService := services.NewNotificationService(notificationRepo, gateway)
	authService := services.NewAuthService(organizerRepo, cfg)
	campaignService := services.NewCampaignService(campaignRepo, ticketRepo, prizeRepo, transactionRepo)
	reservationService := services.NewReservationService(campaignRepo, ticketRepo, buyerRepo, transactionRepo, provider, notificationService)
	paymentService := services.NewPaymentService(campaignRepo, ticketRepo, buyerRepo, transactionRepo, provider, notificationService)
	sweeperService := services.NewSweeperService(ticketRepo, transactionRepo)
	drawService := services.NewDrawService(campaignRepo, ticketRepo, buyerRepo, prizeRepo, drawAuditRepo, notificationService)

	// Handlers
	handlerDeps := routes.HandlerDependencies{
		AuthHandler:     handlers.NewAuthHandler(authService),
		CampaignHandler: handlers.NewCampaignHandler(campaignService),
		CheckoutHandler: handlers.NewCheckoutHandler(reservationService),
		PaymentHandler:  handlers.NewPaymentHandler(paymentService),
		SweeperHandler:  handlers.NewSweeperHandler(sweeperService),
		DrawHandler:     handlers.NewDrawHandler(drawService),
	}

	router := routes.SetupRouter(cfg, handlerDeps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exiting")
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
