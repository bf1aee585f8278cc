package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/elevate-workforce/jobportal/internal/config"
	"github.com/elevate-workforce/jobportal/internal/dto"
	"github.com/elevate-workforce/jobportal/internal/handlers"
	"github.com/elevate-workforce/jobportal/internal/models"
	"github.com/elevate-workforce/jobportal/internal/notify"
	"github.com/elevate-workforce/jobportal/internal/services"
	"github.com/elevate-workforce/jobportal/internal/site"
	"github.com/elevate-workforce/jobportal/internal/testutil"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type server struct {
	t    *testing.T
	app  *fiber.App
	db   *gorm.DB
	auth *services.AuthService
}

func newServer(t *testing.T) *server {
	t.Helper()
	db := testutil.NewDB(t)
	cfg := &config.Config{
		JWTSecret:        "routes-secret",
		JWTAccessExpiry:  time.Minute,
		JWTRefreshExpiry: time.Hour,
		CORSOrigins:      "*",
	}
	settings := site.Default()

	auth := services.NewAuthService(db, cfg)
	jobs := services.NewJobService(db, nil)
	app := fiber.New()
	Setup(app, cfg, auth, Handlers{
		Auth:        handlers.NewAuthHandler(auth),
		Profile:     handlers.NewProfileHandler(services.NewProfileService(db, nil)),
		Job:         handlers.NewJobHandler(jobs),
		Application: handlers.NewApplicationHandler(services.NewApplicationService(db, nil)),
		Admin:       handlers.NewAdminHandler(services.NewAdminService(db)),
		Pages: handlers.NewPagesHandler(
			services.NewPagesService(jobs, settings),
			services.NewContactService(db, notify.LogMailer{}, "inbox@example.com", settings.Name),
			settings.Name,
		),
		Health: handlers.NewHealthHandler(func() error { return nil }, nil),
	}, func(c *fiber.Ctx) error { return c.Next() })

	return &server{t: t, app: app, db: db, auth: auth}
}

// login returns an access token for a fixture account.
func (s *server) login(username string) string {
	s.t.Helper()
	resp, err := s.auth.Login(context.Background(), &dto.LoginRequest{Username: username, Password: testutil.Password})
	if err != nil {
		s.t.Fatalf("login %s: %v", username, err)
	}
	return resp.AccessToken
}

func (s *server) do(method, path, token string, body interface{}) (int, []byte) {
	s.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return s.send(req, token)
}

func (s *server) send(req *http.Request, token string) (int, []byte) {
	s.t.Helper()
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	if err != nil {
		s.t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		s.t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, b
}

func (s *server) expect(method, path, token string, body interface{}, want int) []byte {
	s.t.Helper()
	status, b := s.do(method, path, token, body)
	if status != want {
		s.t.Fatalf("%s %s = %d, want %d: %s", method, path, status, want, b)
	}
	return b
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		t.Fatalf("decode %s: %v", b, err)
	}
	return v
}

func TestApplicationFlowOverHTTP(t *testing.T) {
	s := newServer(t)
	testutil.CreateCompany(t, s.db, "acme", "Acme")
	testutil.CreateCompany(t, s.db, "globex", "Globex")
	testutil.CreateSeeker(t, s.db, "sam")
	company, rival, seeker := s.login("acme"), s.login("globex"), s.login("sam")

	b := s.expect(fiber.MethodPost, "/api/jobs", company, dto.CreateJobRequest{
		Title: "Go Developer", Description: "Services", JobType: "full_time", ExperienceLevel: "mid",
	}, fiber.StatusCreated)
	job := decode[models.Job](t, b)

	s.expect(fiber.MethodPost, "/api/jobs", seeker, dto.CreateJobRequest{Title: "x"}, fiber.StatusForbidden)

	b = s.expect(fiber.MethodPost, "/api/jobs/"+job.ID.String()+"/apply", seeker, dto.ApplyRequest{CoverLetter: "Hi"}, fiber.StatusCreated)
	app := decode[models.JobApplication](t, b)
	if app.Status != models.StatusPending {
		t.Fatalf("status = %s", app.Status)
	}
	s.expect(fiber.MethodPost, "/api/jobs/"+job.ID.String()+"/apply", seeker, nil, fiber.StatusConflict)

	appPath := "/api/applications/" + app.ID.String()
	s.expect(fiber.MethodPut, appPath+"/status", rival, dto.UpdateStatusRequest{Status: "accepted"}, fiber.StatusForbidden)
	s.expect(fiber.MethodGet, appPath, rival, nil, fiber.StatusForbidden)
	s.expect(fiber.MethodPut, appPath+"/status", company, dto.UpdateStatusRequest{Status: "promoted"}, fiber.StatusUnprocessableEntity)
	s.expect(fiber.MethodPut, appPath+"/status", company, dto.UpdateStatusRequest{Status: "shortlisted"}, fiber.StatusOK)

	b = s.expect(fiber.MethodGet, appPath, company, nil, fiber.StatusOK)
	detail := decode[dto.ApplicationDetailResponse](t, b)
	if !detail.IsCompany || detail.Application.Status != models.StatusShortlisted || len(detail.NextStatuses) != 3 {
		t.Errorf("detail = %+v", detail)
	}

	s.expect(fiber.MethodPost, appPath+"/withdraw", seeker, nil, fiber.StatusOK)
	s.expect(fiber.MethodPost, appPath+"/withdraw", seeker, nil, fiber.StatusUnprocessableEntity)
	s.expect(fiber.MethodPut, appPath+"/status", company, dto.UpdateStatusRequest{Status: "accepted"}, fiber.StatusUnprocessableEntity)

	b = s.expect(fiber.MethodGet, "/api/applications/mine", seeker, nil, fiber.StatusOK)
	mine := decode[struct {
		Items      []dto.ApplicationView `json:"items"`
		TotalCount int64                 `json:"total_count"`
	}](t, b)
	if mine.TotalCount != 1 || mine.Items[0].StatusLabel != "Withdrawn" {
		t.Errorf("mine = %+v", mine)
	}

	b = s.expect(fiber.MethodGet, "/api/applications/dashboard", company, nil, fiber.StatusOK)
	dash := decode[dto.CompanyDashboardResponse](t, b)
	if dash.TotalJobs != 1 || dash.TotalApplications != 1 || dash.PendingApplications != 0 {
		t.Errorf("dashboard = %+v", dash)
	}
	s.expect(fiber.MethodGet, "/api/applications/dashboard", seeker, nil, fiber.StatusForbidden)
}

func TestJobRoutes(t *testing.T) {
	s := newServer(t)
	_, company := testutil.CreateCompany(t, s.db, "acme", "Acme")
	testutil.CreateSeeker(t, s.db, "sam")
	job := testutil.CreateJob(t, s.db, company)
	seeker := s.login("sam")

	b := s.expect(fiber.MethodGet, "/api/jobs?search=backend&job_type=", "", nil, fiber.StatusOK)
	page := decode[struct {
		Items []dto.JobView `json:"items"`
		Page  int           `json:"page"`
	}](t, b)
	if len(page.Items) != 1 || page.Page != 1 {
		t.Errorf("page = %+v", page)
	}

	b = s.expect(fiber.MethodGet, "/api/jobs/"+job.ID.String(), "", nil, fiber.StatusOK)
	if decode[dto.JobDetailResponse](t, b).UserHasApplied {
		t.Error("anonymous viewer cannot have applied")
	}
	s.expect(fiber.MethodPost, "/api/jobs/"+job.ID.String()+"/apply", seeker, nil, fiber.StatusCreated)
	b = s.expect(fiber.MethodGet, "/api/jobs/"+job.ID.String(), seeker, nil, fiber.StatusOK)
	if !decode[dto.JobDetailResponse](t, b).UserHasApplied {
		t.Error("seeker should see user_has_applied")
	}

	s.expect(fiber.MethodGet, "/api/jobs/not-a-uuid", "", nil, fiber.StatusNotFound)
	s.expect(fiber.MethodGet, "/api/jobs/"+uuid.NewString(), "", nil, fiber.StatusNotFound)
	s.expect(fiber.MethodPost, "/api/jobs/"+job.ID.String()+"/toggle", "", nil, fiber.StatusUnauthorized)
	s.expect(fiber.MethodDelete, "/api/jobs/"+job.ID.String(), seeker, nil, fiber.StatusForbidden)
}

func TestAuthAndProfileRoutes(t *testing.T) {
	s := newServer(t)

	b := s.expect(fiber.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Username: "mina", Email: "mina@example.com", Password: "long-password", PasswordConfirm: "long-password",
		Role: "job_seeker", Skills: "Go, Docker",
	}, fiber.StatusCreated)
	reg := decode[dto.AuthResponse](t, b)

	s.expect(fiber.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Username: "mina", Email: "other@example.com", Password: "long-password", PasswordConfirm: "long-password",
	}, fiber.StatusConflict)
	s.expect(fiber.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "mina", Password: "nope"}, fiber.StatusUnauthorized)

	b = s.expect(fiber.MethodGet, "/api/profile", reg.AccessToken, nil, fiber.StatusOK)
	profile := decode[dto.ProfileResponse](t, b)
	if profile.JobSeeker == nil || len(profile.JobSeeker.SkillsList) != 2 {
		t.Errorf("profile = %+v", profile)
	}

	s.expect(fiber.MethodPut, "/api/profile", reg.AccessToken, map[string]string{"location": "Pokhara"}, fiber.StatusOK)
	s.expect(fiber.MethodGet, "/api/profile", "", nil, fiber.StatusUnauthorized)

	b = s.expect(fiber.MethodPost, "/api/auth/refresh", "", dto.RefreshRequest{RefreshToken: reg.RefreshToken}, fiber.StatusOK)
	if decode[dto.AuthResponse](t, b).AccessToken == "" {
		t.Error("refresh returned no access token")
	}
	s.expect(fiber.MethodPost, "/api/auth/refresh", "", dto.RefreshRequest{RefreshToken: reg.RefreshToken}, fiber.StatusUnauthorized)

	s.db.Model(&models.User{}).Where("id = ?", reg.User.ID).Update("is_active", false)
	s.expect(fiber.MethodGet, "/api/profile", reg.AccessToken, nil, fiber.StatusForbidden)
}

func TestUploadWithoutStorage(t *testing.T) {
	s := newServer(t)
	testutil.CreateSeeker(t, s.db, "sam")

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("resume", "cv.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write([]byte("%PDF-1.4"))
	w.Close()

	req := httptest.NewRequest(fiber.MethodPost, "/api/profile/resume", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	status, body := s.send(req, s.login("sam"))
	if status != fiber.StatusBadGateway {
		t.Fatalf("status = %d, want 502: %s", status, body)
	}

	req = httptest.NewRequest(fiber.MethodPost, "/api/profile/resume", nil)
	status, _ = s.send(req, s.login("sam"))
	if status != fiber.StatusBadRequest {
		t.Errorf("missing file status = %d, want 400", status)
	}

	buf.Reset()
	w = multipart.NewWriter(&buf)
	part, err = w.CreateFormFile("picture", "me.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write([]byte("png"))
	w.Close()
	req = httptest.NewRequest(fiber.MethodPost, "/api/profile/picture", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	status, body = s.send(req, s.login("sam"))
	if status != fiber.StatusBadGateway {
		t.Errorf("picture status = %d, want 502: %s", status, body)
	}
}

func TestAdminRoutes(t *testing.T) {
	s := newServer(t)
	testutil.CreateAdmin(t, s.db, "root")
	user, _ := testutil.CreateSeeker(t, s.db, "sam")
	admin, seeker := s.login("root"), s.login("sam")

	s.expect(fiber.MethodGet, "/api/admin/dashboard", seeker, nil, fiber.StatusForbidden)
	s.expect(fiber.MethodGet, "/api/admin/dashboard", "", nil, fiber.StatusUnauthorized)

	b := s.expect(fiber.MethodGet, "/api/admin/dashboard", admin, nil, fiber.StatusOK)
	if decode[dto.AdminDashboardResponse](t, b).TotalUsers != 2 {
		t.Errorf("dashboard = %s", b)
	}

	b = s.expect(fiber.MethodPost, "/api/admin/users/"+user.ID.String()+"/toggle-status", admin, nil, fiber.StatusOK)
	if decode[dto.UserResponse](t, b).IsActive {
		t.Error("user should be disabled")
	}
	s.expect(fiber.MethodDelete, "/api/admin/users/"+user.ID.String(), admin, nil, fiber.StatusOK)
	s.expect(fiber.MethodDelete, "/api/admin/users/"+user.ID.String(), admin, nil, fiber.StatusNotFound)
	s.expect(fiber.MethodPost, "/api/admin/companies/"+uuid.NewString()+"/toggle-verification", admin, nil, fiber.StatusNotFound)
}

func TestPublicPages(t *testing.T) {
	s := newServer(t)

	b := s.expect(fiber.MethodGet, "/api/health", "", nil, fiber.StatusOK)
	if h := decode[dto.HealthResponse](t, b); h.DB != "ok" || h.Storage != "not configured" {
		t.Errorf("health = %+v", h)
	}
	s.expect(fiber.MethodGet, "/api/home", "", nil, fiber.StatusOK)
	s.expect(fiber.MethodGet, "/api/about", "", nil, fiber.StatusOK)
	b = s.expect(fiber.MethodGet, "/api/services", "", nil, fiber.StatusOK)
	if len(decode[dto.ServicesResponse](t, b).Services) != 6 {
		t.Errorf("services = %s", b)
	}

	s.expect(fiber.MethodPost, "/api/contact", "", dto.ContactRequest{Name: "Mina"}, fiber.StatusBadRequest)
	s.expect(fiber.MethodPost, "/api/contact", "", dto.ContactRequest{
		Name: "Mina", Email: "mina@example.com", Subject: "Hello", Message: "Hiring five welders",
	}, fiber.StatusCreated)

	var stored []models.ContactMessage
	s.db.Find(&stored)
	if len(stored) != 1 || !stored[0].Delivered {
		t.Errorf("stored = %+v", stored)
	}

	status, b := s.do(fiber.MethodGet, "/api/legal/privacy", "", nil)
	if status != fiber.StatusOK || !bytes.Contains(b, []byte("Elevate Workforce Solutions")) {
		t.Errorf("privacy = %d", status)
	}
}
