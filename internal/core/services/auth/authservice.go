package auth

import (
	"context"

	"gitlab.com/codearena.net/internal/domain"
)

// IAuthService signs a user in through one provider and issues an access token.
type IAuthService interface {
	ProviderName() domain.Provider
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type IRegistrationService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.LoginResponse, error)
}

// IAuthenticator resolves an access token to the user it was issued for.
type IAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Users, error)
}
