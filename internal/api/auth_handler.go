package api

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/veriscope/veriscope-api/internal/models"
	"github.com/veriscope/veriscope-api/internal/services"
)

// AuthHandler handles authentication operations
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	User      models.User `json:"user"`
	ExpiresAt time.Time   `json:"expires_at"`
	CSRFToken string      `json:"csrf_token"`
}

// Matches the refresh token lifetime issued by the auth service.
const refreshTokenMaxAge = 7 * 24 * 60 * 60

// generateCSRFToken generates a cryptographically secure CSRF token
func generateCSRFToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate CSRF token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// setSecureCookie sets a secure HTTP-only cookie
func setSecureCookie(c *gin.Context, name, value string, maxAge int) {
	secure := c.Request.Header.Get("X-Forwarded-Proto") == "https" || c.Request.TLS != nil
	c.SetCookie(
		name,
		value,
		maxAge,
		"/",
		"",
		secure,
		true, // HttpOnly
	)
}

// clearCookie clears a cookie by setting it to empty with past expiration
func clearCookie(c *gin.Context, name string) {
	secure := c.Request.Header.Get("X-Forwarded-Proto") == "https" || c.Request.TLS != nil
	c.SetCookie(
		name,
		"",
		-1,
		"/",
		"",
		secure,
		true,
	)
}

// Login authenticates a user and sets the session cookies
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	response, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	csrfToken, err := generateCSRFToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate CSRF token"})
		return
	}

	maxAge := int(time.Until(response.ExpiresAt).Seconds())
	setSecureCookie(c, "auth_token", response.Token, maxAge)
	setSecureCookie(c, "csrf_token", csrfToken, maxAge)
	setSecureCookie(c, "refresh_token", response.RefreshToken, refreshTokenMaxAge)

	c.JSON(http.StatusOK, AuthResponse{
		User:      response.User,
		ExpiresAt: response.ExpiresAt,
		CSRFToken: csrfToken,
	})
}

// Register creates a self-service account and signs it in
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	response, err := h.authService.Register(&req)
	if err != nil {
		writeError(c, err)
		return
	}

	csrfToken, err := generateCSRFToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate CSRF token"})
		return
	}

	maxAge := int(time.Until(response.ExpiresAt).Seconds())
	setSecureCookie(c, "auth_token", response.Token, maxAge)
	setSecureCookie(c, "csrf_token", csrfToken, maxAge)
	setSecureCookie(c, "refresh_token", response.RefreshToken, refreshTokenMaxAge)

	c.JSON(http.StatusCreated, AuthResponse{
		User:      response.User,
		ExpiresAt: response.ExpiresAt,
		CSRFToken: csrfToken,
	})
}

// RefreshToken issues a new session from a refresh token, taken from the
// refresh_token cookie or, for non-browser clients, the request body.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	type RefreshRequest struct {
		RefreshToken string `json:"refresh_token"`
	}

	var req RefreshRequest
	_ = c.ShouldBindJSON(&req)
	if req.RefreshToken == "" {
		req.RefreshToken, _ = c.Cookie("refresh_token")
	}
	if req.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Refresh token required"})
		return
	}

	response, err := h.authService.RefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	csrfToken, err := generateCSRFToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate CSRF token"})
		return
	}

	maxAge := int(time.Until(response.ExpiresAt).Seconds())
	setSecureCookie(c, "auth_token", response.Token, maxAge)
	setSecureCookie(c, "csrf_token", csrfToken, maxAge)
	setSecureCookie(c, "refresh_token", response.RefreshToken, refreshTokenMaxAge)

	c.JSON(http.StatusOK, AuthResponse{
		User:      response.User,
		ExpiresAt: response.ExpiresAt,
		CSRFToken: csrfToken,
	})
}

// Logout clears the session cookies
func (h *AuthHandler) Logout(c *gin.Context) {
	clearCookie(c, "auth_token")
	clearCookie(c, "csrf_token")
	clearCookie(c, "refresh_token")
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me returns the authenticated user's account
func (h *AuthHandler) Me(c *gin.Context) {
	tokenString, err := c.Cookie("auth_token")
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	user, err := h.authService.ValidateToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
