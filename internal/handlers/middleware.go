package handlers

import (
	"context"
	"net/http"
	"strings"

	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/services/auth"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/handlers/response"
	"gitlab.com/codearena.net/internal/static/errs"
)

// AuthCookieName is the cookie the access token is stored in after login.
const AuthCookieName = "jwt"

type userCtxKey struct{}

type MiddlewareProvider struct {
	authenticator auth.IAuthenticator
	logger        primary.Logger
}

func NewMiddlewareProvider(authenticator auth.IAuthenticator, logger primary.Logger) *MiddlewareProvider {
	return &MiddlewareProvider{
		authenticator: authenticator,
		logger:        logger,
	}
}

// Authenticate admits requests carrying a valid token in the auth cookie or
// an Authorization: Bearer header and stores the user in the request context.
func (m *MiddlewareProvider) Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromRequest(r)
		if token == "" {
			response.WriteError(w, response.ErrorMessage{
				Message:    "unauthorized - no token provided",
				StatusCode: http.StatusUnauthorized,
			})
			return
		}

		user, err := m.authenticator.Authenticate(r.Context(), token)
		if err != nil {
			m.logger.Debug("Rejected access token", "path", r.URL.Path, "error", err)
			response.WriteServiceError(w, err)
			return
		}

		next(w, r.WithContext(WithUser(r.Context(), user)))
	}
}

// RequireAdmin must run inside Authenticate.
func (m *MiddlewareProvider) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := CurrentUser(r.Context())
		if !ok {
			response.WriteServiceError(w, errs.Unauthorized)
			return
		}
		if !user.IsAdmin() {
			response.WriteError(w, response.ErrorMessage{
				Message:    "access denied - admins only",
				StatusCode: http.StatusForbidden,
			})
			return
		}
		next(w, r)
	}
}

// Admin is Authenticate followed by RequireAdmin.
func (m *MiddlewareProvider) Admin(next http.HandlerFunc) http.HandlerFunc {
	return m.Authenticate(m.RequireAdmin(next))
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(AuthCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

func WithUser(ctx context.Context, user *domain.Users) context.Context {
	return context.WithValue(ctx, userCtxKey{}, user)
}

func CurrentUser(ctx context.Context) (*domain.Users, bool) {
	user, ok := ctx.Value(userCtxKey{}).(*domain.Users)
	return user, ok && user != nil
}
