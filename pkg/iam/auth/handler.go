package auth

import (
	"strings"

	"github.com/Abraxas-365/nerdyjobs/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// AuthHandlers exchanges the configured admin credentials for an access token
type AuthHandlers struct {
	tokens    *JWTService
	passwords PasswordService
	admin     AdminConfig
}

func NewAuthHandlers(tokens *JWTService, passwords PasswordService, admin AdminConfig) *AuthHandlers {
	return &AuthHandlers{
		tokens:    tokens,
		passwords: passwords,
		admin:     admin,
	}
}

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// RegisterRoutes mounts /api/auth/*
func (h *AuthHandlers) RegisterRoutes(app *fiber.App) {
	group := app.Group("/api/auth")
	group.Post("/login", h.Login)
}

// Login authenticates the administrator
// POST /api/auth/login
func (h *AuthHandlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request")
	}

	if h.admin.Email == "" ||
		!strings.EqualFold(strings.TrimSpace(req.Email), h.admin.Email) ||
		!h.passwords.VerifyPassword(h.admin.PasswordHash, req.Password) {
		return ErrInvalidCredentials()
	}

	token, err := h.tokens.GenerateAccessToken(Actor{
		ID:    kernel.UserID("admin"),
		Email: kernel.Email(h.admin.Email),
		Role:  RoleAdmin,
	})
	if err != nil {
		return ErrTokenGeneration()
	}

	return c.JSON(LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.tokens.TTL().Seconds()),
	})
}
