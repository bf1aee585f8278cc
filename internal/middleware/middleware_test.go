package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/elevate-workforce/jobportal/internal/access"
	"github.com/elevate-workforce/jobportal/internal/apperr"
	"github.com/elevate-workforce/jobportal/internal/config"
	"github.com/elevate-workforce/jobportal/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var testCfg = &config.Config{JWTSecret: "middleware-secret"}

type stubLoader struct {
	users map[uuid.UUID]*models.User
}

func (s stubLoader) LoadUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, apperr.Unauthorized("account no longer exists")
	}
	if !u.IsActive {
		return nil, apperr.Forbidden("your account is disabled")
	}
	return u, nil
}

func (s stubLoader) LoadActor(ctx context.Context, id uuid.UUID) (access.Actor, error) {
	u, err := s.LoadUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return access.NewActor(u, &models.JobSeeker{ID: uuid.New(), UserID: u.ID}, nil)
}

func signedToken(t *testing.T, sub string, ttl time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(ttl).Unix(),
	})
	s, err := token.SignedString([]byte(testCfg.JWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func do(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	return resp.StatusCode
}

func newApp(loader ActorLoader) *fiber.App {
	app := fiber.New()
	whoami := func(c *fiber.Ctx) error {
		if CurrentActor(c) == nil {
			return c.SendString("anonymous")
		}
		return c.SendString(CurrentActor(c).User().Username)
	}
	app.Get("/me", JWTProtected(testCfg), RequireActor(loader), whoami)
	app.Get("/maybe", OptionalJWT(testCfg), OptionalActor(loader), whoami)
	app.Get("/admin", JWTProtected(testCfg), AdminRequired(loader), whoami)
	return app
}

func TestRequireActor(t *testing.T) {
	active := &models.User{ID: uuid.New(), Username: "sam", Role: models.RoleJobSeeker, IsActive: true}
	disabled := &models.User{ID: uuid.New(), Username: "off", Role: models.RoleJobSeeker}
	app := newApp(stubLoader{users: map[uuid.UUID]*models.User{active.ID: active, disabled.ID: disabled}})

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"no token", "", fiber.StatusUnauthorized},
		{"garbage token", "not.a.jwt", fiber.StatusUnauthorized},
		{"expired token", signedToken(t, active.ID.String(), -time.Minute), fiber.StatusUnauthorized},
		{"bad subject", signedToken(t, "nope", time.Minute), fiber.StatusUnauthorized},
		{"deleted account", signedToken(t, uuid.NewString(), time.Minute), fiber.StatusUnauthorized},
		{"disabled account", signedToken(t, disabled.ID.String(), time.Minute), fiber.StatusForbidden},
		{"active account", signedToken(t, active.ID.String(), time.Minute), fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := do(t, app, "/me", tt.token); got != tt.want {
				t.Errorf("status = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOptionalActor(t *testing.T) {
	user := &models.User{ID: uuid.New(), Username: "sam", Role: models.RoleJobSeeker, IsActive: true}
	app := newApp(stubLoader{users: map[uuid.UUID]*models.User{user.ID: user}})

	if got := do(t, app, "/maybe", ""); got != fiber.StatusOK {
		t.Errorf("anonymous status = %d", got)
	}
	if got := do(t, app, "/maybe", signedToken(t, uuid.NewString(), time.Minute)); got != fiber.StatusOK {
		t.Errorf("unknown account status = %d, want anonymous 200", got)
	}
	if got := do(t, app, "/maybe", "broken"); got != fiber.StatusUnauthorized {
		t.Errorf("invalid token status = %d, want 401", got)
	}
}

func TestAdminRequired(t *testing.T) {
	admin := &models.User{ID: uuid.New(), Username: "root", Role: models.RoleJobSeeker, IsActive: true, IsStaff: true, IsSuperuser: true}
	staff := &models.User{ID: uuid.New(), Username: "staff", Role: models.RoleJobSeeker, IsActive: true, IsStaff: true}
	app := newApp(stubLoader{users: map[uuid.UUID]*models.User{admin.ID: admin, staff.ID: staff}})

	if got := do(t, app, "/admin", signedToken(t, admin.ID.String(), time.Minute)); got != fiber.StatusOK {
		t.Errorf("admin status = %d", got)
	}
	if got := do(t, app, "/admin", signedToken(t, staff.ID.String(), time.Minute)); got != fiber.StatusForbidden {
		t.Errorf("staff-only status = %d, want 403", got)
	}
}
