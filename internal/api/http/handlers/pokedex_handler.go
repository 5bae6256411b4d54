package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pokewiki/internal/api/dto"
	"github.com/spec-kit/pokewiki/internal/pokedex"
	apperrors "github.com/spec-kit/pokewiki/pkg/util"
)

// PokedexHandler serves cached wiki content from the upstream API.
type PokedexHandler struct {
	pokedex *pokedex.Service
}

// NewPokedexHandler constructs handler.
func NewPokedexHandler(pokedexService *pokedex.Service) *PokedexHandler {
	return &PokedexHandler{pokedex: pokedexService}
}

// Pokemon handles GET /pokedex/pokemon/:name.
func (h *PokedexHandler) Pokemon(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return apperrors.NewValidationError("pokemon name required")
	}

	body, err := h.pokedex.Pokemon(c.UserContext(), name)
	if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(dto.Success(body))
}
