package routes

import (
	"time"

	"github.com/elevate-workforce/jobportal/internal/config"
	"github.com/elevate-workforce/jobportal/internal/handlers"
	"github.com/elevate-workforce/jobportal/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	Profile     *handlers.ProfileHandler
	Job         *handlers.JobHandler
	Application *handlers.ApplicationHandler
	Admin       *handlers.AdminHandler
	Pages       *handlers.PagesHandler
	Health      *handlers.HealthHandler
}

// Setup mounts every route under /api. strict guards login, registration
// and the contact form; when nil an in-memory limiter is used instead.
func Setup(app *fiber.App, cfg *config.Config, loader middleware.ActorLoader, h Handlers, strict fiber.Handler) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	if strict == nil {
		strict = limiter.New(limiter.Config{
			Max:               10,
			Expiration:        1 * time.Minute,
			LimiterMiddleware: limiter.SlidingWindow{},
			KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		})
	}

	jwt := middleware.JWTProtected(cfg)
	actor := middleware.RequireActor(loader)

	api.Get("/health", h.Health.Check)

	// Public pages
	api.Get("/home", h.Pages.Home)
	api.Get("/about", h.Pages.About)
	api.Get("/services", h.Pages.Services)
	api.Get("/contact", h.Pages.ContactInfo)
	api.Post("/contact", strict, h.Pages.SubmitContact)
	api.Get("/legal/privacy", h.Pages.PrivacyPolicy)
	api.Get("/legal/terms", h.Pages.TermsOfService)

	auth := api.Group("/auth")
	auth.Post("/register", strict, h.Auth.Register)
	auth.Post("/login", strict, h.Auth.Login)
	auth.Post("/refresh", strict, h.Auth.Refresh)
	auth.Post("/logout", jwt, h.Auth.Logout)

	profile := api.Group("/profile", jwt, actor)
	profile.Get("/", h.Profile.Get)
	profile.Put("/", h.Profile.Update)
	profile.Post("/resume", h.Profile.UploadResume)
	profile.Post("/logo", h.Profile.UploadLogo)
	profile.Post("/picture", h.Profile.UploadPicture)

	// Jobs: listing and detail are public, the rest needs an actor.
	api.Get("/jobs", h.Job.List)
	api.Get("/jobs/:id", middleware.OptionalJWT(cfg), middleware.OptionalActor(loader), h.Job.Get)
	api.Post("/jobs", jwt, actor, h.Job.Create)
	api.Put("/jobs/:id", jwt, actor, h.Job.Update)
	api.Delete("/jobs/:id", jwt, actor, h.Job.Delete)
	api.Post("/jobs/:id/toggle", jwt, actor, h.Job.Toggle)
	api.Post("/jobs/:id/apply", jwt, actor, h.Application.Apply)

	applications := api.Group("/applications", jwt, actor)
	applications.Get("/mine", h.Application.Mine)
	applications.Get("/dashboard", h.Application.Dashboard)
	applications.Get("/:id", h.Application.Get)
	applications.Post("/:id/withdraw", h.Application.Withdraw)
	applications.Put("/:id/status", h.Application.SetStatus)
	applications.Get("/:id/status-choices", h.Application.StatusChoices)
	applications.Post("/:id/documents", h.Application.AddDocument)
	applications.Get("/:id/documents/:doc", h.Application.DocumentURL)

	admin := api.Group("/admin", jwt, middleware.AdminRequired(loader))
	admin.Get("/dashboard", h.Admin.Dashboard)
	admin.Get("/users", h.Admin.ListUsers)
	admin.Post("/users", h.Admin.AddUser)
	admin.Put("/users/:id", h.Admin.UpdateUser)
	admin.Delete("/users/:id", h.Admin.DeleteUser)
	admin.Post("/users/:id/toggle-status", h.Admin.ToggleUserStatus)
	admin.Get("/companies", h.Admin.ListCompanies)
	admin.Put("/companies/:id", h.Admin.UpdateCompany)
	admin.Delete("/companies/:id", h.Admin.DeleteCompany)
	admin.Post("/companies/:id/toggle-verification", h.Admin.ToggleCompanyVerification)
}
