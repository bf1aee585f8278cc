package handlers

import (
	"context"
	"time"

	"github.com/elevate-workforce/jobportal/internal/dto"
	"github.com/elevate-workforce/jobportal/internal/storage"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

type HealthHandler struct {
	dbPing func() error
	store  storage.ObjectStore
}

// NewHealthHandler reports on the database and, when configured, the
// object store.
func NewHealthHandler(dbPing func() error, store storage.ObjectStore) *HealthHandler {
	return &HealthHandler{dbPing: dbPing, store: store}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        "ok",
	}

	// Checks report through resp and never fail the group.
	var g errgroup.Group
	g.Go(func() error {
		if err := h.dbPing(); err != nil {
			resp.DB = "unhealthy: " + err.Error()
		}
		return nil
	})
	g.Go(func() error {
		resp.Storage = h.storageStatus(c.UserContext())
		return nil
	})
	_ = g.Wait()

	return c.JSON(resp)
}

func (h *HealthHandler) storageStatus(ctx context.Context) string {
	if h.store == nil {
		return "not configured"
	}
	p, ok := h.store.(interface{ Ping(context.Context) error })
	if !ok {
		return "ok"
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		return "unhealthy: " + err.Error()
	}
	return "ok"
}
