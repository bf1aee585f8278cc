package handlers

import (
	"html"

	"github.com/elevate-workforce/jobportal/internal/dto"
	"github.com/elevate-workforce/jobportal/internal/services"
	"github.com/gofiber/fiber/v2"
)

type PagesHandler struct {
	pages   *services.PagesService
	contact *services.ContactService
	name    string
}

// NewPagesHandler serves the public site pages. name is the site name used
// in the legal pages.
func NewPagesHandler(pages *services.PagesService, contact *services.ContactService, name string) *PagesHandler {
	return &PagesHandler{pages: pages, contact: contact, name: name}
}

func (h *PagesHandler) Home(c *fiber.Ctx) error {
	resp, err := h.pages.Home(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *PagesHandler) About(c *fiber.Ctx) error {
	resp, err := h.pages.About(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *PagesHandler) Services(c *fiber.Ctx) error {
	return c.JSON(h.pages.Services())
}

func (h *PagesHandler) ContactInfo(c *fiber.Ctx) error {
	return c.JSON(h.pages.Contact())
}

// SubmitContact stores the message and mails it. If mailing fails the
// message stays stored and the client gets a 502.
func (h *PagesHandler) SubmitContact(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	if _, err := h.contact.Submit(c.UserContext(), &req); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{
		Message: "Your message has been sent successfully! We will get back to you soon.",
	})
}

func (h *PagesHandler) PrivacyPolicy(c *fiber.Ctx) error {
	name := html.EscapeString(h.name)
	email := html.EscapeString(h.pages.Contact().Email)

	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Privacy Policy - ` + name + `</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:800px;margin:0 auto;padding:20px;color:#333}h1{color:#1a1a1a}h2{color:#444;margin-top:30px}</style>
</head><body>
<h1>Privacy Policy</h1>
<h2>Information We Collect</h2>
<p>We collect the account details you register with, your profile, the resumes and documents you upload, and the applications you submit.</p>
<h2>How We Use Your Information</h2>
<p>Job seeker profiles and application documents are shared only with the companies you apply to. Company profiles and job postings are public.</p>
<h2>Data Storage</h2>
<p>Your data is stored on secured servers. We do not sell your personal information to third parties.</p>
<h2>Account Deletion</h2>
<p>To have your account and applications removed, contact ` + name + ` staff.</p>
<h2>Contact</h2>
<p>For questions about this policy, contact us at ` + email + `</p>
</body></html>`)
}

func (h *PagesHandler) TermsOfService(c *fiber.Ctx) error {
	name := html.EscapeString(h.name)
	email := html.EscapeString(h.pages.Contact().Email)

	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Terms of Service - ` + name + `</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:800px;margin:0 auto;padding:20px;color:#333}h1{color:#1a1a1a}h2{color:#444;margin-top:30px}</style>
</head><body>
<h1>Terms of Service</h1>
<h2>Acceptance</h2>
<p>By using ` + name + `, you agree to these terms.</p>
<h2>Job Postings</h2>
<p>Companies are responsible for the accuracy of the jobs they post. Postings may be removed by staff at any time.</p>
<h2>Applications</h2>
<p>An application can be withdrawn until the company accepts or rejects it. Each job accepts one application per job seeker.</p>
<h2>Accounts</h2>
<p>Staff may disable accounts that misuse the service.</p>
<h2>Contact</h2>
<p>Questions about these terms can be sent to ` + email + `</p>
</body></html>`)
}
