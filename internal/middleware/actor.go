package middleware

import (
	"context"
	"log/slog"

	"github.com/elevate-workforce/jobportal/internal/access"
	"github.com/elevate-workforce/jobportal/internal/apperr"
	"github.com/elevate-workforce/jobportal/internal/dto"
	"github.com/elevate-workforce/jobportal/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ActorLoader resolves a token subject into an account.
type ActorLoader interface {
	LoadUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	LoadActor(ctx context.Context, id uuid.UUID) (access.Actor, error)
}

// RequireActor must run after JWTProtected. It loads the acting user with
// their role profile and stores it for CurrentActor.
func RequireActor(loader ActorLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := GetUserID(c)
		if err != nil {
			return deny(c, apperr.Unauthorized("Unauthorized"))
		}
		actor, err := loader.LoadActor(c.UserContext(), userID)
		if err != nil {
			return deny(c, err)
		}
		c.Locals(actorKey, actor)
		return c.Next()
	}
}

// OptionalActor loads the actor when a valid token was presented. Accounts
// that cannot act (disabled, deleted) are treated as anonymous.
func OptionalActor(loader ActorLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := GetUserID(c)
		if err != nil {
			return c.Next()
		}
		actor, err := loader.LoadActor(c.UserContext(), userID)
		if err != nil {
			slog.Debug("continuing anonymously", "user_id", userID, "error", err)
			return c.Next()
		}
		c.Locals(actorKey, actor)
		return c.Next()
	}
}

// AdminRequired must run after JWTProtected. Admin rights come from the
// staff and superuser flags, independent of role.
func AdminRequired(loader ActorLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := GetUserID(c)
		if err != nil {
			return deny(c, apperr.Unauthorized("Unauthorized"))
		}
		user, err := loader.LoadUser(c.UserContext(), userID)
		if err != nil {
			return deny(c, err)
		}
		if !access.IsAdmin(user) {
			return deny(c, apperr.Forbidden("Admin access required"))
		}
		return c.Next()
	}
}

func deny(c *fiber.Ctx, err error) error {
	status := apperr.HTTPStatus(err)
	msg := apperr.MessageOf(err)
	if status >= fiber.StatusInternalServerError {
		slog.Error("failed to load account", "path", c.Path(), "error", err)
		msg = "Internal server error"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: msg})
}
