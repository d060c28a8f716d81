package auth

import (
	"context"

	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/global/logger"
	"gitlab.com/codearena.net/internal/static/errs"
)

func issueToken(ctx context.Context, jwtProvider primary.JWTService, user *domain.Users) (*domain.LoginResponse, error) {
	token, err := jwtProvider.GenerateTokenHMAC(ctx, domain.AuthPayload{
		UserID: user.ID.String(),
		Role:   user.Role,
	})
	if err != nil {
		logger.Error("Failed to sign access token", "userId", user.ID, "error", err)
		return nil, errs.GeneratingToken
	}
	return &domain.LoginResponse{Token: token, User: user}, nil
}
