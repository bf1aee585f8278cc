package handlers

import (
	"github.com/elevate-workforce/jobportal/internal/dto"
	"github.com/elevate-workforce/jobportal/internal/middleware"
	"github.com/elevate-workforce/jobportal/internal/models"
	"github.com/elevate-workforce/jobportal/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ApplicationHandler struct {
	applications *services.ApplicationService
}

func NewApplicationHandler(applications *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications}
}

func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	jobID, err := pathID(c, "id", services.ErrJobNotFound.Message)
	if err != nil {
		return respondError(c, err)
	}
	var req dto.ApplyRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c)
		}
	}

	app, err := h.applications.Apply(c.UserContext(), middleware.CurrentActor(c), jobID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(app)
}

func (h *ApplicationHandler) Mine(c *fiber.Ctx) error {
	var f dto.ApplicationFilter
	if err := c.QueryParser(&f); err != nil {
		return badRequest(c)
	}

	page, err := h.applications.ListMine(c.UserContext(), middleware.CurrentActor(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

func (h *ApplicationHandler) Dashboard(c *fiber.Ctx) error {
	var f dto.ApplicationFilter
	if err := c.QueryParser(&f); err != nil {
		return badRequest(c)
	}

	resp, err := h.applications.CompanyDashboard(c.UserContext(), middleware.CurrentActor(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id", services.ErrApplicationNotFound.Message)
	if err != nil {
		return respondError(c, err)
	}

	resp, err := h.applications.Get(c.UserContext(), middleware.CurrentActor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *ApplicationHandler) Withdraw(c *fiber.Ctx) error {
	id, err := pathID(c, "id", services.ErrApplicationNotFound.Message)
	if err != nil {
		return respondError(c, err)
	}

	app, err := h.applications.Withdraw(c.UserContext(), middleware.CurrentActor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(app)
}

func (h *ApplicationHandler) SetStatus(c *fiber.Ctx) error {
	id, err := pathID(c, "id", services.ErrApplicationNotFound.Message)
	if err != nil {
		return respondError(c, err)
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	app, err := h.applications.SetStatus(c.UserContext(), middleware.CurrentActor(c), id, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(app)
}

func (h *ApplicationHandler) StatusChoices(c *fiber.Ctx) error {
	id, err := pathID(c, "id", services.ErrApplicationNotFound.Message)
	if err != nil {
		return respondError(c, err)
	}

	choices, err := h.applications.StatusChoices(c.UserContext(), middleware.CurrentActor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(choices)
}

func (h *ApplicationHandler) AddDocument(c *fiber.Ctx) error {
	id, err := pathID(c, "id", services.ErrApplicationNotFound.Message)
	if err != nil {
		return respondError(c, err)
	}

	var doc *models.ApplicationDocument
	err = withUpload(c, "file", func(up services.FileUpload) error {
		var err error
		doc, err = h.applications.AddDocument(c.UserContext(), middleware.CurrentActor(c), id, c.FormValue("label"), up)
		return err
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

func (h *ApplicationHandler) DocumentURL(c *fiber.Ctx) error {
	id, err := pathID(c, "id", services.ErrApplicationNotFound.Message)
	if err != nil {
		return respondError(c, err)
	}
	docID, err := pathID(c, "doc", services.ErrDocumentNotFound.Message)
	if err != nil {
		return respondError(c, err)
	}

	resp, err := h.applications.DocumentURL(c.UserContext(), middleware.CurrentActor(c), id, docID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
