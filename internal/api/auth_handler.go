package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/trendulum/trendulum-api-go/internal/auth"
	"go.uber.org/zap"
)

type AuthHandler struct {
	deps *Dependencies
}

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid json"})
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Username = strings.TrimSpace(req.Username)

	if !strings.Contains(req.Email, "@") || len(req.Email) > 255 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid email"})
		return
	}
	if req.Username == "" || len(req.Username) > 60 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "username is required"})
		return
	}
	if len(req.Password) < 8 || len(req.Password) > 72 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "password must be 8-72 chars"})
		return
	}

	if existing, _ := h.deps.Users.FindByEmail(c.Request.Context(), req.Email); existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Email already registered"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "hash failed"})
		return
	}

	user, err := h.deps.Users.Create(c.Request.Context(), req.Email, req.Username, hash)
	if err != nil {
		h.deps.Logger.Error("Failed to create user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "create user failed"})
		return
	}

	c.JSON(http.StatusOK, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid json"})
		return
	}

	user, err := h.deps.Users.FindByEmail(c.Request.Context(), strings.TrimSpace(strings.ToLower(req.Email)))
	if err != nil {
		h.deps.Logger.Error("Login lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "login failed"})
		return
	}
	if user == nil || !auth.CheckPassword(user.HashedPassword, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect email or password"})
		return
	}

	token, _, err := h.deps.Tokens.Sign(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "token failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	user, err := h.deps.Users.FindByID(c.Request.Context(), claims.UserID)
	if err != nil || user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}
