package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/WebuildSoft/myrifa-sub001/internal/config"
	"github.com/WebuildSoft/myrifa-sub001/internal/models"
	"github.com/WebuildSoft/myrifa-sub001/internal/repositories"
	"github.com/WebuildSoft/myrifa-sub001/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthServiceImpl handles organizer registration and login
type AuthServiceImpl struct {
	organizerRepo repositories.OrganizerRepository
	cfg           *config.Config
}

// NewAuthService creates a new AuthServiceImpl
func NewAuthService(organizerRepo repositories.OrganizerRepository, cfg *config.Config) *AuthServiceImpl {
	return &AuthServiceImpl{
		organizerRepo: organizerRepo,
		cfg:           cfg,
	}
}

// Register creates a new organizer account
func (s *AuthServiceImpl) Register(ctx context.Context, req *models.RegisterRequest) (*models.Organizer, error) {
	existing, err := s.organizerRepo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		slog.Error("Register: failed to check existing organizer", "error", err)
		return nil, fmt.Errorf("failed to check existing organizer: %w", err)
	}
	if existing != nil {
		return nil, NewValidationError("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	organizer := &models.Organizer{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.organizerRepo.Create(ctx, organizer); err != nil {
		slog.Error("Register: failed to create organizer", "error", err, "email", req.Email)
		return nil, fmt.Errorf("failed to create organizer: %w", err)
	}

	slog.Info("Organizer registered", "organizerId", organizer.ID, "email", organizer.Email)
	return organizer, nil
}

// Login verifies credentials and issues a bearer token
func (s *AuthServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	organizer, err := s.organizerRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		// Same error for unknown email and bad password
		return nil, NewValidationError("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(organizer.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewValidationError("invalid credentials")
	}

	token, err := utils.GenerateJWT(organizer.ID.Hex(), s.cfg)
	if err != nil {
		slog.Error("Login: failed to generate token", "error", err, "organizerId", organizer.ID)
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.LoginResponse{Token: token, Organizer: organizer}, nil
}

// GetOrganizer retrieves an organizer by id
func (s *AuthServiceImpl) GetOrganizer(ctx context.Context, id primitive.ObjectID) (*models.Organizer, error) {
	organizer, err := s.organizerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve organizer: %w", err)
	}
	return organizer, nil
}
