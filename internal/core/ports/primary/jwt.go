package primary

import (
	"context"

	"gitlab.com/codearena.net/internal/domain"
)

type JWTService interface {
	GenerateTokenHMAC(ctx context.Context, payload domain.AuthPayload) (string, error)
	// VerifyTokenHMAC checks signature and expiry and returns the claims.
	VerifyTokenHMAC(ctx context.Context, token string) (domain.AuthPayload, error)
	EncryptPassword(ctx context.Context, password string) (string, error)
	VerifyPassword(ctx context.Context, passwordHash string, pwd string) (bool, error)
}
