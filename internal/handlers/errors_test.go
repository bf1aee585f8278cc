package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/elevate-workforce/jobportal/internal/apperr"
	"github.com/elevate-workforce/jobportal/internal/dto"
	"github.com/gofiber/fiber/v2"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", apperr.NotFound("job not found"), 404, "job not found"},
		{"wrapped conflict", fmt.Errorf("apply: %w", apperr.Conflict("already applied")), 409, "already applied"},
		{"invalid status", apperr.InvalidStatus("application status is final"), 422, "application status is final"},
		{"external service keeps message", apperr.ExternalService("error sending email", errors.New("dial tcp")), 502, "error sending email"},
		{"internal hides detail", errors.New("pq: relation does not exist"), 500, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return respondError(c, tt.err) })

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			defer resp.Body.Close()

			var body dto.ErrorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.StatusCode != tt.status || !body.Error || body.Message != tt.message {
				t.Errorf("got %d %+v, want %d %q", resp.StatusCode, body, tt.status, tt.message)
			}
		})
	}
}

func TestPathIDRejectsMalformed(t *testing.T) {
	app := fiber.New()
	app.Get("/jobs/:id", func(c *fiber.Ctx) error {
		if _, err := pathID(c, "id", "job not found"); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	for path, want := range map[string]int{
		"/jobs/123": fiber.StatusNotFound,
		"/jobs/6f1c2b36-4a55-4c1e-9a0e-3c1c5e0b7d21": fiber.StatusNoContent,
	} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
		if err != nil {
			t.Fatalf("request %s: %v", path, err)
		}
		if resp.StatusCode != want {
			t.Errorf("%s = %d, want %d", path, resp.StatusCode, want)
		}
	}
}
