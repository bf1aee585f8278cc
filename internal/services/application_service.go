package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/elevate-workforce/jobportal/internal/access"
	"github.com/elevate-workforce/jobportal/internal/apperr"
	"github.com/elevate-workforce/jobportal/internal/dto"
	"github.com/elevate-workforce/jobportal/internal/listing"
	"github.com/elevate-workforce/jobportal/internal/models"
	"github.com/elevate-workforce/jobportal/internal/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = apperr.NotFound("application not found")
	ErrDocumentNotFound    = apperr.NotFound("document not found")
	ErrCannotView          = apperr.Forbidden("you do not have permission to view this application")
	ErrCannotUpdateStatus  = apperr.Forbidden("you do not have permission to update this application")
	ErrCannotWithdraw      = apperr.Forbidden("you do not have permission to withdraw this application")
	ErrSeekersOnly         = apperr.Forbidden("this page is for job seekers only")
	ErrCompaniesOnly       = apperr.Forbidden("this page is for companies only")
	ErrStatusChanged       = apperr.InvalidStatus("application status changed, reload and try again")
)

type ApplicationService struct {
	db    *gorm.DB
	store storage.ObjectStore
	now   func() time.Time
}

// NewApplicationService accepts a nil store; document routes then fail with
// ErrStorageUnavailable.
func NewApplicationService(db *gorm.DB, store storage.ObjectStore) *ApplicationService {
	return &ApplicationService{db: db, store: store, now: time.Now}
}

// Apply submits a pending application for an active job. Two concurrent
// submits for the same pair resolve to one success and one Conflict.
func (s *ApplicationService) Apply(ctx context.Context, actor access.Actor, jobID uuid.UUID, req *dto.ApplyRequest) (*models.JobApplication, error) {
	seeker, ok := actor.(access.JobSeekerActor)
	if !ok {
		return nil, access.ErrNotJobSeeker
	}

	var job models.Job
	if err := s.db.WithContext(ctx).First(&job, "id = ?", jobID).Error; err != nil {
		return nil, apperr.FromDB(err, ErrJobNotFound.Message, "")
	}

	applied, err := hasApplied(ctx, s.db, job.ID, seeker.Profile.ID)
	if err != nil {
		return nil, err
	}
	if err := access.CanApply(actor, &job, applied, s.now()); err != nil {
		return nil, err
	}

	app := models.JobApplication{
		ID:          uuid.New(),
		JobID:       job.ID,
		JobSeekerID: seeker.Profile.ID,
		Status:      models.StatusPending,
		CoverLetter: strings.TrimSpace(req.CoverLetter),
	}
	if app.ResumeKey, err = s.snapshotResume(ctx, app.ID, seeker.Profile.ResumeKey); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&app).Error; err != nil {
		discardObject(ctx, s.store, app.ResumeKey)
		return nil, apperr.FromDB(err, "", access.ErrAlreadyApplied.Message)
	}

	slog.Info("application submitted", "application_id", app.ID, "job_id", job.ID, "job_seeker_id", seeker.Profile.ID)
	return &app, nil
}

func (s *ApplicationService) Get(ctx context.Context, actor access.Actor, id uuid.UUID) (*dto.ApplicationDetailResponse, error) {
	app, err := s.load(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if !access.CanViewApplication(actor, app) {
		return nil, ErrCannotView
	}

	if app.Job != nil && app.Job.Company != nil {
		withLogoURL(ctx, s.store, app.Job.Company)
	}
	resp := &dto.ApplicationDetailResponse{
		Application:  dto.NewApplicationView(*app, s.now()),
		IsApplicant:  access.IsApplicant(actor, app),
		IsCompany:    access.IsHiringCompany(actor, app),
		NextStatuses: []dto.StatusChoice{},
		ResumeURL:    downloadURL(ctx, s.store, app.ResumeKey),
	}
	if app.Job != nil && app.Job.Company != nil {
		resp.LogoURL = app.Job.Company.LogoURL
	}
	if resp.IsCompany {
		resp.NextStatuses = dto.NewStatusChoices(app.Status.NextStatuses())
	}
	return resp, nil
}

// ListMine pages the actor's own applications, newest first.
func (s *ApplicationService) ListMine(ctx context.Context, actor access.Actor, f dto.ApplicationFilter) (listing.Page[dto.ApplicationView], error) {
	seeker, ok := actor.(access.JobSeekerActor)
	if !ok {
		return listing.Page[dto.ApplicationView]{}, ErrSeekersOnly
	}

	query := s.db.WithContext(ctx).Model(&models.JobApplication{}).
		Where("job_seeker_id = ?", seeker.Profile.ID).
		Scopes(listing.Exact("status", f.Status)).
		Order("applied_at DESC")

	page, err := listing.Paginate[models.JobApplication](query, listing.ApplicationsSize, f.Page, func(db *gorm.DB) *gorm.DB {
		return db.Preload("Job").Preload("Job.Company")
	})
	if err != nil {
		return listing.Page[dto.ApplicationView]{}, fmt.Errorf("failed to list applications: %w", err)
	}
	return s.views(ctx, page), nil
}

// CompanyDashboard returns the company's jobs, a page of applications to
// them and counters. Application counters follow the status filter.
func (s *ApplicationService) CompanyDashboard(ctx context.Context, actor access.Actor, f dto.ApplicationFilter) (*dto.CompanyDashboardResponse, error) {
	company, ok := actor.(access.CompanyActor)
	if !ok {
		return nil, ErrCompaniesOnly
	}
	db := s.db.WithContext(ctx)

	var jobs []models.Job
	if err := db.Where("company_id = ?", company.Profile.ID).Order("posted_at DESC").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to load company jobs: %w", err)
	}
	now := s.now()
	profile := *company.Profile
	withLogoURL(ctx, s.store, &profile)
	resp := &dto.CompanyDashboardResponse{
		Company:      profile,
		Jobs:         make([]dto.JobView, len(jobs)),
		StatusFilter: f.Status,
		TotalJobs:    int64(len(jobs)),
	}
	for i, j := range jobs {
		resp.Jobs[i] = dto.NewJobView(j, now)
		if j.IsActive {
			resp.ActiveJobs++
		}
	}

	applications := func() *gorm.DB {
		return db.Model(&models.JobApplication{}).
			Joins("JOIN jobs ON jobs.id = job_applications.job_id").
			Where("jobs.company_id = ?", company.Profile.ID).
			Scopes(listing.Exact("job_applications.status", f.Status))
	}

	page, err := listing.Paginate[models.JobApplication](
		applications().Order("job_applications.applied_at DESC"),
		listing.ApplicationsSize, f.Page,
		func(db *gorm.DB) *gorm.DB {
			return db.Select("job_applications.*").Preload("Job").Preload("JobSeeker")
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list company applications: %w", err)
	}
	resp.Applications = s.views(ctx, page)
	resp.TotalApplications = page.TotalCount

	if err := applications().Where("job_applications.status = ?", models.StatusPending).Count(&resp.PendingApplications).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending applications: %w", err)
	}
	return resp, nil
}

// Withdraw moves the actor's own non-terminal application to withdrawn.
func (s *ApplicationService) Withdraw(ctx context.Context, actor access.Actor, id uuid.UUID) (*models.JobApplication, error) {
	app, err := s.load(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if !access.IsApplicant(actor, app) {
		return nil, ErrCannotWithdraw
	}
	if !access.CanWithdraw(actor, app) {
		return nil, models.ErrApplicationTerminal
	}
	if err := s.transition(ctx, app, models.StatusWithdrawn); err != nil {
		return nil, err
	}
	return app, nil
}

// SetStatus moves an application to the status named by raw. Only the
// company that posted the job may do this, and only along the transition
// table.
func (s *ApplicationService) SetStatus(ctx context.Context, actor access.Actor, id uuid.UUID, raw string) (*models.JobApplication, error) {
	next, err := models.ParseApplicationStatus(raw)
	if err != nil {
		return nil, err
	}
	app, err := s.load(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if !access.CanMutateApplicationStatus(actor, app) {
		return nil, ErrCannotUpdateStatus
	}
	if err := s.transition(ctx, app, next); err != nil {
		return nil, err
	}
	return app, nil
}

// StatusChoices lists the statuses the hiring company may move app to.
func (s *ApplicationService) StatusChoices(ctx context.Context, actor access.Actor, id uuid.UUID) ([]dto.StatusChoice, error) {
	app, err := s.load(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if !access.CanMutateApplicationStatus(actor, app) {
		return nil, ErrCannotUpdateStatus
	}
	return dto.NewStatusChoices(app.Status.NextStatuses()), nil
}

// AddDocument attaches a file to the actor's own application.
func (s *ApplicationService) AddDocument(ctx context.Context, actor access.Actor, id uuid.UUID, label string, up FileUpload) (*models.ApplicationDocument, error) {
	app, err := s.load(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if !access.IsApplicant(actor, app) {
		return nil, apperr.Forbidden("only the applicant can attach documents")
	}

	label = strings.TrimSpace(label)
	if label == "" {
		label = up.Filename
	}
	key, err := storeUpload(ctx, s.store, storage.DocumentKind, app.ID, up)
	if err != nil {
		return nil, err
	}

	doc := models.ApplicationDocument{ApplicationID: app.ID, FileKey: key, Label: label}
	if err := s.db.WithContext(ctx).Create(&doc).Error; err != nil {
		discardObject(ctx, s.store, key)
		return nil, fmt.Errorf("failed to save document: %w", err)
	}
	return &doc, nil
}

// DocumentURL returns a short-lived download link for an application
// document. Anyone who may view the application may download it.
func (s *ApplicationService) DocumentURL(ctx context.Context, actor access.Actor, id, docID uuid.UUID) (*dto.DocumentURLResponse, error) {
	app, err := s.load(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if !access.CanViewApplication(actor, app) {
		return nil, ErrCannotView
	}
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}

	var doc models.ApplicationDocument
	if err := s.db.WithContext(ctx).First(&doc, "id = ? AND application_id = ?", docID, app.ID).Error; err != nil {
		return nil, apperr.FromDB(err, ErrDocumentNotFound.Message, "")
	}

	url, err := s.store.PresignGet(ctx, doc.FileKey, PresignExpiry)
	if err != nil {
		return nil, apperr.ExternalService("could not create download link", err)
	}
	return &dto.DocumentURLResponse{URL: url, ExpiresAt: s.now().Add(PresignExpiry)}, nil
}

// transition applies one step of the state machine. The update is
// conditional on the status read, so a concurrent change makes it fail
// instead of overwriting.
func (s *ApplicationService) transition(ctx context.Context, app *models.JobApplication, next models.ApplicationStatus) error {
	if err := app.Status.Transition(next); err != nil {
		return err
	}

	now := s.now()
	result := s.db.WithContext(ctx).Model(&models.JobApplication{}).
		Where("id = ? AND status = ?", app.ID, app.Status).
		Updates(map[string]interface{}{"status": next, "updated_at": now})
	if result.Error != nil {
		return fmt.Errorf("failed to update application status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStatusChanged
	}

	slog.Info("application status changed", "application_id", app.ID, "from", app.Status, "to", next)
	app.Status = next
	app.UpdatedAt = now
	return nil
}

// load fetches an application with its job and, when full is set, the
// job's company, the applicant profile and documents.
func (s *ApplicationService) load(ctx context.Context, id uuid.UUID, full bool) (*models.JobApplication, error) {
	query := s.db.WithContext(ctx).Preload("Job")
	if full {
		query = query.Preload("Job.Company").Preload("JobSeeker").Preload("Documents")
	}
	var app models.JobApplication
	if err := query.First(&app, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, ErrApplicationNotFound.Message, "")
	}
	return &app, nil
}

func (s *ApplicationService) views(ctx context.Context, page listing.Page[models.JobApplication]) listing.Page[dto.ApplicationView] {
	now := s.now()
	return listing.Map(page, func(a models.JobApplication) dto.ApplicationView {
		if a.Job != nil {
			withLogoURL(ctx, s.store, a.Job.Company)
		}
		return dto.NewApplicationView(a, now)
	})
}

// snapshotResume copies the seeker's current resume to a key owned by the
// application. Later profile uploads replace the seeker's object only.
func (s *ApplicationService) snapshotResume(ctx context.Context, appID uuid.UUID, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	if s.store == nil {
		return "", ErrStorageUnavailable
	}
	dst := storage.ResumeKind.NewKey(appID, key)
	if err := s.store.Copy(ctx, key, dst); err != nil {
		return "", apperr.ExternalService("could not attach resume", err)
	}
	return dst, nil
}
