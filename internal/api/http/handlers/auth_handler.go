package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pokewiki/internal/api/dto"
	"github.com/spec-kit/pokewiki/internal/service"
	apperrors "github.com/spec-kit/pokewiki/pkg/util"
)

// AuthHandler exposes the login and registration endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	token, err := h.auth.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(dto.Success(token))
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	if err := h.auth.Register(c.UserContext(), req.FullName, req.Email, req.Password); err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(dto.Success(service.MsgAccountCreated))
}
