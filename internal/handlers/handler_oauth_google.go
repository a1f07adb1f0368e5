package handlers

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/gestorlab/freela_backend/internal/core/domain"
	portssvc "github.com/gestorlab/freela_backend/internal/core/ports/services"
	"github.com/gestorlab/freela_backend/internal/dto"
	"github.com/gestorlab/freela_backend/internal/middleware"
	"github.com/gestorlab/freela_backend/internal/platform/config"
)

const oauthStateCookie = "oauth_state"

// GoogleOAuthHandler handles the Google sign-in flows: the browser redirect
// flow and the direct ID-token flow used by native clients.
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthSvcFacade
	userService        portssvc.UserSvcFacade
	auth               *AuthHandler
	frontendBaseURL    string
	isProduction       bool
}

// NewGoogleOAuthHandler creates a new GoogleOAuthHandler.
func NewGoogleOAuthHandler(cfg *config.Config, services *portssvc.ServiceContainer) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: services.GoogleOAuth,
		userService:        services.User,
		auth:               NewAuthHandler(services.User, services.Token),
		frontendBaseURL:    cfg.FrontendBaseURL,
		isProduction:       cfg.IsProduction,
	}
}

func registerGoogleOAuthRoutes(auth *gin.RouterGroup, limitMiddleware gin.HandlerFunc, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(cfg, services)

	google := auth.Group("/google")
	{
		google.GET("/login", h.Login)
		google.GET("/callback", h.Callback)
		google.POST("/token", limitMiddleware, h.TokenSignIn)
	}
}

// Login godoc
// @Summary Start Google sign-in
// @Description Redirects the browser to Google's consent screen.
// @Tags auth
// @Success 307
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login [get]
func (h *GoogleOAuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	state, err := h.googleOAuthService.GenerateStateString(ctx)
	if err != nil {
		respondWithError(c, err, "Failed to start Google sign-in")
		return
	}

	// Short-lived CSRF cookie, checked again on the callback.
	c.SetCookie(oauthStateCookie, state, 600, "/", "", h.isProduction, true)
	c.Redirect(http.StatusTemporaryRedirect, h.googleOAuthService.GetGoogleLoginURL(ctx, state))
}

// Callback godoc
// @Summary Google sign-in callback
// @Description Exchanges the authorization code, signs the user in and redirects to the frontend.
// @Tags auth
// @Produce json
// @Param state query string true "CSRF state"
// @Param code query string true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *GoogleOAuthHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	expectedState, err := c.Cookie(oauthStateCookie)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		logger.Warn("OAuth state mismatch")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", h.isProduction, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Authorization code missing"})
		return
	}

	token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, code)
	if err != nil {
		logger.Error("Failed to exchange authorization code", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or expired authorization code"})
		return
	}

	info, err := h.googleOAuthService.GetUserInfo(ctx, token)
	if err != nil {
		respondWithError(c, err, "Failed to fetch Google account details")
		return
	}

	user, err := h.userService.FindOrCreateGoogleUser(ctx, *info)
	if err != nil {
		respondWithError(c, err, "Failed to sign in with Google")
		return
	}

	if h.frontendBaseURL != "" {
		h.redirectWithTokens(c, user)
		return
	}
	h.auth.respondWithTokens(c, http.StatusOK, user)
}

// redirectWithTokens sends the browser back to the frontend with a fresh
// token pair in the fragment, keeping the tokens out of server logs.
func (h *GoogleOAuthHandler) redirectWithTokens(c *gin.Context, user *domain.User) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	accessToken, _, err := h.auth.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		logger.Error("Failed to generate access token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}
	refreshToken, _, err := h.auth.tokenService.GenerateRefreshToken(ctx, user)
	if err != nil {
		logger.Error("Failed to generate refresh token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	fragment := url.Values{}
	fragment.Set("accessToken", accessToken)
	fragment.Set("refreshToken", refreshToken)
	fragment.Set("userID", user.UserID)
	c.Redirect(http.StatusTemporaryRedirect, h.frontendBaseURL+"/auth/callback#"+fragment.Encode())
}

// TokenSignIn godoc
// @Summary Sign in with a Google ID token
// @Description Validates a Google ID token (native app flow) and returns a token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param token body dto.GoogleIDTokenRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/google/token [post]
func (h *GoogleOAuthHandler) TokenSignIn(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GoogleIDTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, req.IDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid Google ID token"})
		return
	}

	info := domain.GoogleUserInfo{ID: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		info.Email = email
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok {
		info.VerifiedEmail = verified
	}
	if name, ok := payload.Claims["name"].(string); ok {
		info.Name = name
	}
	if picture, ok := payload.Claims["picture"].(string); ok {
		info.Picture = picture
	}

	user, err := h.userService.FindOrCreateGoogleUser(ctx, info)
	if err != nil {
		respondWithError(c, err, "Failed to sign in with Google")
		return
	}

	h.auth.respondWithTokens(c, http.StatusOK, user)
}
