package ratelimit

import (
	"github.com/elevate-workforce/jobportal/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// Middleware rejects requests over quota with 429, keyed by client IP.
func Middleware(l *FixedWindowLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !l.Allow(c.UserContext(), c.IP()) {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Error: true, Message: "Too many requests, please try again later",
			})
		}
		return c.Next()
	}
}
