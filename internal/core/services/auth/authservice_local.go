package auth

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/ports/secondary"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/global/logger"
	"gitlab.com/codearena.net/internal/static/errs"
)

const minPasswordLength = 8

var (
	_ IAuthService         = &LocalAuthService{}
	_ IRegistrationService = &LocalAuthService{}
)

type LocalAuthService struct {
	userPort    secondary.UserPort
	jwtProvider primary.JWTService
}

func NewLocalAuthService(
	userPort secondary.UserPort,
	jwtProvider primary.JWTService,
) *LocalAuthService {
	return &LocalAuthService{
		userPort:    userPort,
		jwtProvider: jwtProvider,
	}
}

func (g LocalAuthService) ProviderName() domain.Provider {
	return domain.ProviderLocal
}

func (g LocalAuthService) Register(ctx context.Context, in RegisterInput) (*domain.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, errs.EmailRequired
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, errs.InvalidInput
	}
	if len(in.Password) < minPasswordLength {
		return nil, errs.WeakPassword
	}

	existing, err := g.userPort.GetByEmail(ctx, email)
	if err != nil {
		logger.Error("Failed to look up user", "email", email, "error", err)
		return nil, errs.InternalError
	}
	if existing != nil {
		return nil, errs.EmailTaken
	}

	hash, err := g.jwtProvider.EncryptPassword(ctx, in.Password)
	if err != nil {
		return nil, errs.InternalError
	}

	user := &domain.Users{
		ID:           uuid.New(),
		Email:        email,
		Role:         domain.RoleUser,
		PasswordHash: &hash,
		AuthProvider: string(domain.ProviderLocal),
		CreatedAt:    time.Now().UTC(),
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		user.Name = &name
	}
	if err := g.userPort.Create(ctx, user); err != nil {
		logger.Error("Failed to create user", "email", email, "error", err)
		return nil, errs.FailedToCreateUser
	}

	logger.Info("User registered", "userId", user.ID)
	return issueToken(ctx, g.jwtProvider, user)
}

func (g LocalAuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	if req.Email == nil || req.Password == nil {
		return nil, errs.InvalidCredentials
	}
	usr, err := g.userPort.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(*req.Email)))
	if err != nil {
		logger.Error("Failed to look up user", "error", err)
		return nil, errs.InternalError
	}
	if usr == nil || usr.PasswordHash == nil {
		return nil, errs.InvalidCredentials
	}
	valid, err := g.jwtProvider.VerifyPassword(ctx, *usr.PasswordHash, *req.Password)
	if err != nil || !valid {
		return nil, errs.InvalidCredentials
	}

	return issueToken(ctx, g.jwtProvider, usr)
}
