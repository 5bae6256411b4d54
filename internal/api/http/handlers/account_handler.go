package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pokewiki/internal/api/dto"
	"github.com/spec-kit/pokewiki/internal/auth"
	"github.com/spec-kit/pokewiki/internal/service"
	apperrors "github.com/spec-kit/pokewiki/pkg/util"
)

// AccountHandler exposes the guarded profile and password endpoints.
type AccountHandler struct {
	auth *service.AuthService
}

// NewAccountHandler constructs handler.
func NewAccountHandler(authService *service.AuthService) *AccountHandler {
	return &AccountHandler{auth: authService}
}

// UpdateProfile handles PUT /account/profile. The bearer token's
// subject is the only account that can be mutated.
func (h *AccountHandler) UpdateProfile(c *fiber.Ctx) error {
	subjectID, ok := auth.SubjectFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Token was not provided.")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	if err := h.auth.UpdateProfile(c.UserContext(), subjectID, req.FullName, req.Email); err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(dto.Success(service.MsgProfileUpdated))
}

// UpdatePassword handles PUT /account/password. Authorization comes
// from proving the current password, not from a token.
func (h *AccountHandler) UpdatePassword(c *fiber.Ctx) error {
	var req dto.UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	if err := h.auth.UpdatePassword(c.UserContext(), req.Email, req.Password, req.NewPassword); err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(dto.Success(service.MsgPasswordUpdated))
}
