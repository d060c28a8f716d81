package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"gitlab.com/codearena.net/internal/config"
	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/services/auth"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/handlers"
	"gitlab.com/codearena.net/internal/handlers/response"
	"gitlab.com/codearena.net/internal/static/errs"
)

const (
	oauthStateCookie = "oauth_state"
	googleUserInfo   = "https://www.googleapis.com/oauth2/v3/userinfo"
)

type ServiceDependencies struct {
	GGAuthService    auth.IAuthService
	LocalAuthService auth.IAuthService
	Registration     auth.IRegistrationService
}

// GoogleUser struct to decode Google API response
type GoogleUser struct {
	ID      string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Handler struct {
	providerHandler map[domain.Provider]auth.IAuthService
	registration    auth.IRegistrationService
	oauthConfig     *oauth2.Config
	userInfoURL     string
	secureCookies   bool
	tokenTTL        time.Duration
	logger          primary.Logger
}

func NewHandler(
	svcDep *ServiceDependencies,
	ggCfg *config.GGAuthConfig,
	httpCfg *config.HttpConfig,
	jwtCfg *config.JwtConfig,
	logger primary.Logger,
) *Handler {
	h := &Handler{
		providerHandler: map[domain.Provider]auth.IAuthService{
			domain.ProviderLocal: svcDep.LocalAuthService,
		},
		registration:  svcDep.Registration,
		userInfoURL:   googleUserInfo,
		secureCookies: httpCfg.SecureCookies,
		tokenTTL:      jwtCfg.TTL,
		logger:        logger,
	}
	if ggCfg.Enabled() && svcDep.GGAuthService != nil {
		h.providerHandler[domain.ProviderGoogle] = svcDep.GGAuthService
		h.oauthConfig = &oauth2.Config{
			ClientID:     ggCfg.ClientID,
			ClientSecret: ggCfg.ClientSecret,
			RedirectURL:  ggCfg.RedirectURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     google.Endpoint,
		}
	}
	return h
}

func (h *Handler) RegisterRoutes(router *mux.Router, mw *handlers.MiddlewareProvider) {
	router.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	router.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	router.HandleFunc("/auth/logout", mw.Authenticate(h.Logout)).Methods(http.MethodPost)
	router.HandleFunc("/auth/check", mw.Authenticate(h.Check)).Methods(http.MethodGet)
	router.HandleFunc("/auth/google", h.GoogleLoginHandler).Methods(http.MethodGet)
	router.HandleFunc("/auth/google/callback", h.GoogleCallbackHandler).Methods(http.MethodGet)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterInput
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		response.WriteServiceError(w, err)
		return
	}

	res, err := h.registration.Register(r.Context(), req)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	h.setAuthCookie(w, res.Token)
	response.WriteSuccess(w, http.StatusCreated, "User created successfully", res)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		response.WriteServiceError(w, err)
		return
	}

	res, err := h.providerHandler[domain.ProviderLocal].Login(r.Context(), domain.LoginRequest{
		Email:    &req.Email,
		Password: &req.Password,
	})
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	h.setAuthCookie(w, res.Token)
	response.WriteSuccess(w, http.StatusOK, "User logged in successfully", res)
}

func (h *Handler) Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     handlers.AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
	response.WriteSuccess(w, http.StatusOK, "User logged out successfully", nil)
}

func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	user, _ := handlers.CurrentUser(r.Context())
	response.WriteSuccess(w, http.StatusOK, "User authenticated successfully", user)
}

// GoogleLoginHandler redirects user to Google OAuth2 login
func (h *Handler) GoogleLoginHandler(w http.ResponseWriter, r *http.Request) {
	if h.oauthConfig == nil {
		response.WriteError(w, response.ErrorMessage{
			Message:    "google sign-in is not configured",
			StatusCode: http.StatusNotFound,
		})
		return
	}

	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.oauthConfig.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GoogleCallbackHandler handles Google OAuth2 callback
func (h *Handler) GoogleCallbackHandler(w http.ResponseWriter, r *http.Request) {
	if h.oauthConfig == nil {
		response.WriteError(w, response.ErrorMessage{
			Message:    "google sign-in is not configured",
			StatusCode: http.StatusNotFound,
		})
		return
	}

	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		response.WriteError(w, response.ErrorMessage{
			Message:    "invalid oauth state",
			StatusCode: http.StatusBadRequest,
		})
		return
	}
	http.SetCookie(w, &http.Cookie{Name: oauthStateCookie, Path: "/", MaxAge: -1})

	code := r.URL.Query().Get("code")
	if code == "" {
		response.WriteError(w, response.ErrorMessage{
			Message:    "no code in URL",
			StatusCode: http.StatusBadRequest,
		})
		return
	}

	googleUser, err := h.fetchGoogleUser(r.Context(), code)
	if err != nil {
		h.logger.Error("Google sign-in failed", "error", err)
		response.WriteError(w, response.ErrorMessage{
			Message:    "failed to get user info from google",
			StatusCode: http.StatusBadGateway,
		})
		return
	}

	req := domain.LoginRequest{
		GoogleID: &googleUser.ID,
		Email:    &googleUser.Email,
	}
	if googleUser.Name != "" {
		req.Name = &googleUser.Name
	}
	if googleUser.Picture != "" {
		req.Image = &googleUser.Picture
	}

	res, err := h.providerHandler[domain.ProviderGoogle].Login(r.Context(), req)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	h.setAuthCookie(w, res.Token)
	response.WriteSuccess(w, http.StatusOK, "User logged in successfully", res)
}

func (h *Handler) fetchGoogleUser(ctx context.Context, code string) (*GoogleUser, error) {
	token, err := h.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.oauthConfig.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info returned %s", resp.Status)
	}

	var googleUser GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	if googleUser.ID == "" {
		return nil, errs.InvalidCredentials
	}
	return &googleUser, nil
}

func (h *Handler) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     handlers.AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}
