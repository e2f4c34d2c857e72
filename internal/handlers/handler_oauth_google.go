package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ikicamilo/oceanre-backend/internal/core/ports/services"
	"github.com/ikicamilo/oceanre-backend/internal/middleware"
	"github.com/ikicamilo/oceanre-backend/internal/platform/config"
	"github.com/ikicamilo/oceanre-backend/internal/utils"
)

const oauthStateCookieName = "oauth_state"

// GoogleOAuthHandler handles the Google sign-in redirect flow.
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthSvcFacade
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
	cfg                *config.Config
}

// NewGoogleOAuthHandler creates a new GoogleOAuthHandler.
func NewGoogleOAuthHandler(gs portssvc.GoogleOAuthSvcFacade, us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, cfg *config.Config) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: gs,
		userService:        us,
		tokenService:       ts,
		cfg:                cfg,
	}
}

// registerGoogleOAuthRoutes registers the Google OAuth routes. These are
// public: the browser arrives here before it has any token.
func registerGoogleOAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(services.GoogleOAuth, services.User, services.Token, cfg)

	google := rg.Group("/api/v1/auth/google")
	{
		google.GET("/login", h.LoginGoogle)
		google.GET("/callback", h.CallbackGoogle)
	}
}

// LoginGoogle godoc
// @Summary Start Google sign-in
// @Description Redirects the browser to Google's consent screen. A state nonce is stored in a short-lived cookie.
// @Tags oauth
// @Success 307
// @Router /auth/google/login [get]
func (h *GoogleOAuthHandler) LoginGoogle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		logger.Error("Failed to generate OAuth state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start Google sign-in"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookieName, state, 600, "/api/v1/auth/google", "", h.cfg.IsProduction, true)

	c.Redirect(http.StatusTemporaryRedirect, h.googleOAuthService.AuthCodeURL(state))
}

// CallbackGoogle godoc
// @Summary Google sign-in callback
// @Description Exchanges the authorization code, provisions the user on first sight and redirects back to the front end with a token.
// @Tags oauth
// @Success 307
// @Failure 401 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *GoogleOAuthHandler) CallbackGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	expectedState, err := c.Cookie(oauthStateCookieName)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		logger.Warn("OAuth state mismatch")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}
	// State is single-use
	c.SetCookie(oauthStateCookieName, "", -1, "/api/v1/auth/google", "", h.cfg.IsProduction, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization code missing"})
		return
	}

	email, name, err := h.googleOAuthService.ExchangeCode(ctx, code)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to complete Google sign-in")
		return
	}

	user, err := h.userService.FindOrCreateOAuthUser(ctx, email, name)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to complete Google sign-in")
		return
	}

	accessToken, _, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		logger.Error("Failed to generate access token", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	logger.Info("User signed in via Google", slog.String("user_id", user.UserID))
	redirect := fmt.Sprintf("%s/auth/callback?token=%s", h.cfg.FrontendBaseURL, url.QueryEscape(accessToken))
	c.Redirect(http.StatusTemporaryRedirect, redirect)
}
