package api

import (
	"net/http" // HTTP status codes

	"catalog_system/internal/session" // Session token helpers
	"catalog_system/internal/store"   // Query & account layer

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request structs
type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`  // Desired account name
	Password1 string `json:"password1" binding:"required"` // Password
	Password2 string `json:"password2" binding:"required"` // Password confirmation
}

// Request struct for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Account name
	Password string `json:"password" binding:"required"` // Password
}

// setSessionCookie installs a session token as an HTTP-only cookie.
func setSessionCookie(c *gin.Context, token string, secure bool) {
	c.SetCookie(session.CookieName, token, int(session.Lifetime.Seconds()), "/", "", secure, true)
}

// clearSessionCookie signs the client out.
func clearSessionCookie(c *gin.Context, secure bool) {
	c.SetCookie(session.CookieName, "", -1, "/", "", secure, true)
}

// issueSession generates and installs a session token for username; reports
// whether it succeeded (failure has already been answered).
func issueSession(c *gin.Context, username, jwtSecret string, secure bool) bool {
	token, err := session.GenerateToken(username, jwtSecret)
	if err != nil {
		respondError(c, err)
		return false
	}
	setSessionCookie(c, token, secure)
	return true
}

// RegisterHandler creates an account and logs it in
func RegisterHandler(s *store.Store, jwtSecret string, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := s.Register(c.Request.Context(), req.Username, req.Password1, req.Password2)
		if err != nil {
			respondError(c, err)
			return
		}
		// Implicit login on successful registration
		if !issueSession(c, user.Username, jwtSecret, secureCookies) {
			return
		}
		c.JSON(http.StatusCreated, gin.H{"user": user})
	}
}

// LoginHandler verifies credentials and starts a session
func LoginHandler(s *store.Store, jwtSecret string, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := s.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		if !issueSession(c, user.Username, jwtSecret, secureCookies) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// LogoutHandler ends the session
func LogoutHandler(secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		clearSessionCookie(c, secureCookies)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}
