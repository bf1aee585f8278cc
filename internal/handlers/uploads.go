package handlers

import (
	"github.com/elevate-workforce/jobportal/internal/apperr"
	"github.com/elevate-workforce/jobportal/internal/services"
	"github.com/gofiber/fiber/v2"
)

// withUpload opens the multipart file in field and hands it to fn. The file
// is closed when fn returns.
func withUpload(c *fiber.Ctx, field string, fn func(services.FileUpload) error) error {
	fh, err := c.FormFile(field)
	if err != nil {
		return apperr.Validation("file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return apperr.Validation("could not read uploaded file")
	}
	defer f.Close()

	return fn(services.FileUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	})
}
