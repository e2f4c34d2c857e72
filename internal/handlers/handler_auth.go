package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
	portssvc "github.com/ikicamilo/oceanre-backend/internal/core/ports/services"
	"github.com/ikicamilo/oceanre-backend/internal/dto"
	"github.com/ikicamilo/oceanre-backend/internal/middleware"
	"github.com/ikicamilo/oceanre-backend/internal/platform/config"
	"github.com/ikicamilo/oceanre-backend/internal/utils"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	cfg          *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService:  us,
		tokenService: ts,
		cfg:          cfg,
	}
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services.User, services.Token, cfg)

	// 5 attempts per minute per IP on credential endpoints
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := middleware.RateLimit(ipLimiter)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/login", limitMiddleware, h.Login)
		auth.POST("/refresh", limitMiddleware, h.Refresh)
		auth.POST("/logout", h.Logout)
	}

	protected := rg.Group("/api/v1/auth", middleware.AuthMiddleware(cfg.JWTSecret))
	{
		protected.GET("/me", h.Me)
	}
}

// setRefreshCookie stores "userID.token" in an HTTP-only cookie so the
// refresh endpoint can resolve the owning user without a bearer token.
func (h *AuthHandler) setRefreshCookie(c *gin.Context, userID, token string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.RefreshTokenCookieName, userID+"."+token, maxAge, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

func (h *AuthHandler) readRefreshCookie(c *gin.Context) (userID, token string, ok bool) {
	raw, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil || raw == "" {
		return "", "", false
	}
	parts := strings.SplitN(raw, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// issueTokens generates the access/refresh pair, persists the refresh hash
// and sets the cookie.
func (h *AuthHandler) issueTokens(c *gin.Context, user *domain.User) (dto.LoginResponse, error) {
	ctx := c.Request.Context()

	accessToken, expiresAt, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		return dto.LoginResponse{}, err
	}
	refreshToken, refreshExpiresAt, err := h.tokenService.GenerateRefreshToken(ctx, user)
	if err != nil {
		return dto.LoginResponse{}, err
	}
	if err := h.userService.StoreRefreshToken(ctx, user.UserID, utils.HashRefreshToken(refreshToken), refreshExpiresAt); err != nil {
		return dto.LoginResponse{}, err
	}
	h.setRefreshCookie(c, user.UserID, refreshToken, int(h.cfg.RefreshTokenExpiryDuration.Seconds()))

	return dto.LoginResponse{
		Token:     accessToken,
		ExpiresAt: expiresAt,
		User:      dto.ToUserResponse(user),
	}, nil
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT token. The refresh token is set as an HTTP-only cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
		return
	}

	resp, err := h.issueTokens(c, user)
	if err != nil {
		logger.Error("Failed to issue tokens", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, resp)
}

// Refresh godoc
// @Summary Refresh the access token
// @Description Rotates the refresh token cookie and returns a fresh access token.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, refreshToken, ok := h.readRefreshCookie(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token missing"})
		return
	}

	user, err := h.tokenService.ValidateRefreshToken(c.Request.Context(), userID, refreshToken)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to refresh token")
		return
	}

	// Rotate on every use
	resp, err := h.issueTokens(c, user)
	if err != nil {
		logger.Error("Failed to rotate tokens", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to refresh token"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Log out
// @Description Clears the refresh token cookie and invalidates the stored token.
// @Tags auth
// @Produce json
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if userID, _, ok := h.readRefreshCookie(c); ok {
		if err := h.userService.ClearRefreshToken(c.Request.Context(), userID); err != nil {
			middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to clear refresh token", slog.String("error", err.Error()))
		}
	}
	h.setRefreshCookie(c, "", "", -1)
	c.Status(http.StatusNoContent)
}

// Me godoc
// @Summary Current user
// @Description Returns the authenticated user's profile.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MeResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to load user")
		return
	}
	c.JSON(http.StatusOK, dto.MeResponse{User: dto.ToUserResponse(user)})
}
