package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/pokewiki/pkg/util"
)

const subjectKey = "auth_subject"

// Middleware validates bearer tokens and stores the verified subject id
// on the request.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("Token was not provided.")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return apperrors.NewUnauthorized("Token was not provided.")
	}

	subjectID, err := m.tokens.Verify(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("Token is invalid or expired.")
	}

	c.Locals(subjectKey, subjectID)
	return c.Next()
}

// SubjectFromContext retrieves the authenticated user id.
func SubjectFromContext(c *fiber.Ctx) (string, bool) {
	val := c.Locals(subjectKey)
	if val == nil {
		return "", false
	}
	subjectID, ok := val.(string)
	return subjectID, ok && subjectID != ""
}
