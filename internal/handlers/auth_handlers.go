package handlers

import (
	"net/http"

	"flexgestor/internal/common"
	"flexgestor/internal/middleware"
	"flexgestor/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles authentication-related HTTP requests
type AuthHandlers struct {
	authService services.AuthService
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	TenantCNPJ string `json:"tenantCnpj"`
}

// Login handles POST /auth/login
func (h *AuthHandlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return common.ValidationError("Invalid request format.")
	}

	token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password, req.TenantCNPJ, c.RealIP())
	if err != nil {
		return err
	}

	return common.SendSuccess(c, http.StatusOK, "Login successful!", common.Envelope{
		"token":     token.Token,
		"tokenType": token.TokenType,
		"expiresAt": token.ExpiresAt,
	})
}

// SignupRequest represents the signup request payload
type SignupRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Signup handles POST /auth/signup
func (h *AuthHandlers) Signup(c echo.Context) error {
	var req SignupRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		return err
	}

	message, err := h.authService.Signup(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusCreated, message, nil)
}

// Logout handles POST /auth/logout
func (h *AuthHandlers) Logout(c echo.Context) error {
	tc, err := middleware.TenantFromRequest(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), tc); err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, "Logged out.", nil)
}
