package main

import (
	"context"
	"log"
	"time"

	"github.com/WebuildSoft/myrifa-sub001/internal/config"
	"github.com/WebuildSoft/myrifa-sub001/internal/models"
	mongorepo "github.com/WebuildSoft/myrifa-sub001/internal/repositories/mongodb"
	"github.com/WebuildSoft/myrifa-sub001/internal/services"
	"github.com/WebuildSoft/myrifa-sub001/pkg/mongodb"
	"github.com/joho/godotenv"
)

// Seeds a demo organizer with one active campaign so a fresh
// environment has something to click on.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDB.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	organizerRepo := mongorepo.NewOrganizerRepository(db)
	campaignRepo := mongorepo.NewCampaignRepository(db)
	ticketRepo := mongorepo.NewTicketRepository(db)
	prizeRepo := mongorepo.NewPrizeRepository(db)
	transactionRepo := mongorepo.NewTransactionRepository(db)

	authService := services.NewAuthService(organizerRepo, cfg)
	campaignService := services.NewCampaignService(campaignRepo, ticketRepo, prizeRepo, transactionRepo)

	organizer, err := authService.Register(ctx, &models.RegisterRequest{
		Name:     "Demo Organizer",
		Email:    "demo@myrifa.app",
		Password: "demo-password-123",
	})
	if err != nil {
		log.Fatalf("Failed to create demo organizer: %v", err)
	}
	log.Printf("Created organizer %s (%s)", organizer.Name, organizer.Email)

	campaign, err := campaignService.Create(ctx, organizer.ID, services.CreateCampaignInput{
		Title:              "Rifa do iPhone 15",
		Description:        "Concorra a um iPhone 15 Pro Max novinho em folha",
		TotalNumbers:       100,
		NumberPrice:        10.0,
		MaxPerBuyer:        10,
		ReservationMinutes: 30,
		Prizes: []services.PrizeInput{
			{Name: "iPhone 15 Pro Max", Description: "256GB, cor titânio natural"},
			{Name: "Fone Bluetooth", Description: "Prêmio de consolação"},
		},
	})
	if err != nil {
		log.Fatalf("Failed to create demo campaign: %v", err)
	}

	campaign, err = campaignService.Activate(ctx, organizer.ID, campaign.ID)
	if err != nil {
		log.Fatalf("Failed to activate demo campaign: %v", err)
	}

	log.Printf("Campaign %q is live at slug %s with %d numbers", campaign.Title, campaign.Slug, campaign.TotalNumbers)
}
