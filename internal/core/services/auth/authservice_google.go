package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/ports/secondary"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/global/logger"
	"gitlab.com/codearena.net/internal/static/errs"
)

var _ IAuthService = &googleAuthService{}

type googleAuthService struct {
	userPort    secondary.UserPort
	jwtProvider primary.JWTService
}

func NewGoogleAuthService(userPort secondary.UserPort, jwtProvider primary.JWTService) IAuthService {
	return &googleAuthService{
		userPort:    userPort,
		jwtProvider: jwtProvider,
	}
}

func (g googleAuthService) ProviderName() domain.Provider {
	return domain.ProviderGoogle
}

// Login signs in the user linked to the Google account, creating one on first sign-in.
func (g googleAuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	if req.GoogleID == nil || *req.GoogleID == "" {
		return nil, errs.InvalidCredentials
	}
	if req.Email == nil || *req.Email == "" {
		return nil, errs.EmailRequired
	}

	usr, err := g.userPort.GetByGoogleID(ctx, *req.GoogleID)
	if err != nil {
		logger.Error("Failed to look up google user", "error", err)
		return nil, errs.InternalError
	}
	if usr != nil {
		return issueToken(ctx, g.jwtProvider, usr)
	}

	email := strings.ToLower(*req.Email)
	existing, err := g.userPort.GetByEmail(ctx, email)
	if err != nil {
		return nil, errs.InternalError
	}
	if existing != nil {
		return nil, errs.EmailTaken
	}

	user := &domain.Users{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        email,
		Image:        req.Image,
		Role:         domain.RoleUser,
		AuthProvider: string(domain.ProviderGoogle),
		GoogleID:     req.GoogleID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := g.userPort.Create(ctx, user); err != nil {
		logger.Error("Failed to create google user", "error", err)
		return nil, errs.FailedToCreateUser
	}

	logger.Info("User registered via google", "userId", user.ID)
	return issueToken(ctx, g.jwtProvider, user)
}
