package handlers

import (
	"context"

	"github.com/elevate-workforce/jobportal/internal/access"
	"github.com/elevate-workforce/jobportal/internal/dto"
	"github.com/elevate-workforce/jobportal/internal/middleware"
	"github.com/elevate-workforce/jobportal/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ProfileHandler struct {
	profiles *services.ProfileService
}

func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	resp, err := h.profiles.Get(c.UserContext(), middleware.CurrentActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	resp, err := h.profiles.Update(c.UserContext(), middleware.CurrentActor(c), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *ProfileHandler) UploadResume(c *fiber.Ctx) error {
	return h.upload(c, "resume", h.profiles.UploadResume)
}

func (h *ProfileHandler) UploadLogo(c *fiber.Ctx) error {
	return h.upload(c, "logo", h.profiles.UploadLogo)
}

func (h *ProfileHandler) UploadPicture(c *fiber.Ctx) error {
	return h.upload(c, "picture", h.profiles.UploadPicture)
}

type profileUpload func(context.Context, access.Actor, services.FileUpload) (string, error)

func (h *ProfileHandler) upload(c *fiber.Ctx, field string, store profileUpload) error {
	var key string
	err := withUpload(c, field, func(up services.FileUpload) error {
		var err error
		key, err = store(c.UserContext(), middleware.CurrentActor(c), up)
		return err
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.UploadResponse{Key: key})
}
