package handlers

import (
	"github.com/elevate-workforce/jobportal/internal/dto"
	"github.com/elevate-workforce/jobportal/internal/services"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the staff back office. Routes are mounted behind
// middleware.AdminRequired.
type AdminHandler struct {
	admin *services.AdminService
}

func NewAdminHandler(admin *services.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	resp, err := h.admin.Dashboard(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	var f dto.UserFilter
	if err := c.QueryParser(&f); err != nil {
		return badRequest(c)
	}

	page, err := h.admin.ListUsers(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

func (h *AdminHandler) AddUser(c *fiber.Ctx) error {
	var req dto.AddUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	user, err := h.admin.AddUser(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := pathID(c, "id", services.ErrUserNotFound.Message)
	if err != nil {
		return respondError(c, err)
	}
	var req dto.AdminUpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	user, err := h.admin.UpdateUser(c.UserContext(), id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := pathID(c, "id", services.ErrUserNotFound.Message)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.admin.DeleteUser(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "User deleted successfully"})
}

func (h *AdminHandler) ToggleUserStatus(c *fiber.Ctx) error {
	id, err := pathID(c, "id", services.ErrUserNotFound.Message)
	if err != nil {
		return respondError(c, err)
	}

	user, err := h.admin.ToggleUserStatus(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

func (h *AdminHandler) ListCompanies(c *fiber.Ctx) error {
	var f dto.CompanyFilter
	if err := c.QueryParser(&f); err != nil {
		return badRequest(c)
	}

	page, err := h.admin.ListCompanies(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

func (h *AdminHandler) UpdateCompany(c *fiber.Ctx) error {
	id, err := pathID(c, "id", services.ErrCompanyNotFound.Message)
	if err != nil {
		return respondError(c, err)
	}
	var req dto.AdminUpdateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	company, err := h.admin.UpdateCompany(c.UserContext(), id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(company)
}

func (h *AdminHandler) DeleteCompany(c *fiber.Ctx) error {
	id, err := pathID(c, "id", services.ErrCompanyNotFound.Message)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.admin.DeleteCompany(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Company deleted successfully"})
}

func (h *AdminHandler) ToggleCompanyVerification(c *fiber.Ctx) error {
	id, err := pathID(c, "id", services.ErrCompanyNotFound.Message)
	if err != nil {
		return respondError(c, err)
	}

	company, err := h.admin.ToggleCompanyVerification(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(company)
}
