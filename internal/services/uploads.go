package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/elevate-workforce/jobportal/internal/apperr"
	"github.com/elevate-workforce/jobportal/internal/models"
	"github.com/elevate-workforce/jobportal/internal/storage"
	"github.com/google/uuid"
)

// PresignExpiry is how long a download link stays valid.
const PresignExpiry = 15 * time.Minute

var ErrStorageUnavailable = apperr.ExternalService("file storage is not configured", nil)

// FileUpload is a file received from a client.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// storeUpload validates up against kind and writes it under a fresh key.
func storeUpload(ctx context.Context, store storage.ObjectStore, kind storage.Kind, owner uuid.UUID, up FileUpload) (string, error) {
	if store == nil {
		return "", ErrStorageUnavailable
	}
	if up.Body == nil || up.Size <= 0 {
		return "", apperr.Validation("file is required")
	}
	if up.Size > kind.MaxBytes {
		return "", apperr.Validation(fmt.Sprintf("file is too large (max %d MB)", kind.MaxBytes>>20))
	}
	if !kind.Accepts(up.Filename) {
		return "", apperr.Validation("file type is not allowed")
	}

	key := kind.NewKey(owner, up.Filename)
	contentType := up.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := store.Put(ctx, key, up.Body, up.Size, contentType); err != nil {
		return "", apperr.ExternalService("could not store file", err)
	}
	return key, nil
}

// discardObject removes a replaced object. Failures only leave an orphan,
// so they are logged and swallowed.
func discardObject(ctx context.Context, store storage.ObjectStore, key string) {
	if store == nil || key == "" {
		return
	}
	if err := store.Delete(ctx, key); err != nil {
		slog.Warn("failed to delete replaced object", "key", key, "error", err)
	}
}

// downloadURL returns a presigned link for key, or "" when there is no
// object or no store. Links are decoration on read responses, so a
// signing failure is logged rather than returned.
func downloadURL(ctx context.Context, store storage.ObjectStore, key string) string {
	if store == nil || key == "" {
		return ""
	}
	url, err := store.PresignGet(ctx, key, PresignExpiry)
	if err != nil {
		slog.Warn("failed to presign object", "key", key, "error", err)
		return ""
	}
	return url
}

// withLogoURL fills c.LogoURL when c has a logo.
func withLogoURL(ctx context.Context, store storage.ObjectStore, c *models.Company) {
	if c != nil {
		c.LogoURL = downloadURL(ctx, store, c.LogoKey)
	}
}
