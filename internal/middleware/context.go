package middleware

import (
	"errors"

	"github.com/elevate-workforce/jobportal/internal/access"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const actorKey = "actor"

// GetUserID extracts the user UUID from JWT claims in context.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}

// CurrentActor returns the actor stored by RequireActor or OptionalActor,
// or nil for anonymous requests.
func CurrentActor(c *fiber.Ctx) access.Actor {
	actor, _ := c.Locals(actorKey).(access.Actor)
	return actor
}
