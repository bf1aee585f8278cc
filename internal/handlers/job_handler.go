package handlers

import (
	"github.com/elevate-workforce/jobportal/internal/dto"
	"github.com/elevate-workforce/jobportal/internal/middleware"
	"github.com/elevate-workforce/jobportal/internal/services"
	"github.com/gofiber/fiber/v2"
)

type JobHandler struct {
	jobs *services.JobService
}

func NewJobHandler(jobs *services.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// List serves the public job board. Unknown or blank filters are ignored.
func (h *JobHandler) List(c *fiber.Ctx) error {
	var f dto.JobFilter
	if err := c.QueryParser(&f); err != nil {
		return badRequest(c)
	}

	page, err := h.jobs.List(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

func (h *JobHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id", services.ErrJobNotFound.Message)
	if err != nil {
		return respondError(c, err)
	}

	resp, err := h.jobs.Get(c.UserContext(), middleware.CurrentActor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *JobHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	job, err := h.jobs.Create(c.UserContext(), middleware.CurrentActor(c), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(job)
}

func (h *JobHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id", services.ErrJobNotFound.Message)
	if err != nil {
		return respondError(c, err)
	}
	var req dto.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	job, err := h.jobs.Update(c.UserContext(), middleware.CurrentActor(c), id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(job)
}

func (h *JobHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id", services.ErrJobNotFound.Message)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.jobs.Delete(c.UserContext(), middleware.CurrentActor(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Job deleted successfully"})
}

func (h *JobHandler) Toggle(c *fiber.Ctx) error {
	id, err := pathID(c, "id", services.ErrJobNotFound.Message)
	if err != nil {
		return respondError(c, err)
	}

	job, err := h.jobs.ToggleActive(c.UserContext(), middleware.CurrentActor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(job)
}
