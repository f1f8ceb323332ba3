package handler

import (
	authapp "github.com/eujim/backend/internal/application/auth"
	"github.com/eujim/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles admin authentication endpoints
type AuthHandler struct {
	BaseHandler
	authService *authapp.Service
	jwtAuth     gin.HandlerFunc
}

// NewAuthHandler creates a new AuthHandler. jwtAuth protects the logout
// route, login itself is public.
func NewAuthHandler(authService *authapp.Service, jwtAuth gin.HandlerFunc) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtAuth:     jwtAuth,
	}
}

// Login godoc
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req authapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Logout godoc
// @Summary      Revoke the current admin token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Logged out"})
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.jwtAuth, h.Logout)
	}
}
