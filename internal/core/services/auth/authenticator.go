package auth

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/ports/secondary"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/static/errs"
)

var _ IAuthenticator = (*Authenticator)(nil)

type Authenticator struct {
	userPort    secondary.UserPort
	jwtProvider primary.JWTService
}

func NewAuthenticator(userPort secondary.UserPort, jwtProvider primary.JWTService) *Authenticator {
	return &Authenticator{
		userPort:    userPort,
		jwtProvider: jwtProvider,
	}
}

// Authenticate returns errs.Unauthorized for bad tokens and for tokens of deleted users.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (*domain.Users, error) {
	if token == "" {
		return nil, errs.Unauthorized
	}
	payload, err := a.jwtProvider.VerifyTokenHMAC(ctx, token)
	if err != nil {
		return nil, errs.Unauthorized
	}
	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		return nil, errs.Unauthorized
	}

	user, err := a.userPort.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.Unauthorized
	}
	return user, nil
}
