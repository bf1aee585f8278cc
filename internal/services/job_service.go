package services

import (
	"context"
	"fmt"
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
	ErrJobNotFound      = apperr.NotFound("job not found")
	ErrNotCompany       = apperr.Forbidden("only companies can post jobs")
	ErrJobNotOwned      = apperr.Forbidden("you do not have permission to modify this job")
	ErrInvalidJobType   = apperr.Validation("invalid job type")
	ErrInvalidLevel     = apperr.Validation("invalid experience level")
	ErrInvalidPositions = apperr.Validation("total positions must be at least 1")
	ErrInvalidSalary    = apperr.Validation("salary values must be positive and minimum must not exceed maximum")
	ErrInvalidDeadline  = apperr.Validation("deadline must be a date (YYYY-MM-DD) or date-time")
)

var deadlineLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

type JobService struct {
	db    *gorm.DB
	store storage.ObjectStore
	now   func() time.Time
}

// NewJobService accepts a nil store; company logos then carry no URL.
func NewJobService(db *gorm.DB, store storage.ObjectStore) *JobService {
	return &JobService{db: db, store: store, now: time.Now}
}

func (s *JobService) view(ctx context.Context, j models.Job, now time.Time) dto.JobView {
	withLogoURL(ctx, s.store, j.Company)
	return dto.NewJobView(j, now)
}

func (s *JobService) activeJobs(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Job{}).Where("jobs.is_active = ?", true)
}

func withCompany(db *gorm.DB) *gorm.DB {
	return db.Select("jobs.*").Preload("Company")
}

// List returns one page of active jobs matching f, newest first.
func (s *JobService) List(ctx context.Context, f dto.JobFilter) (listing.Page[dto.JobView], error) {
	query := s.activeJobs(ctx).
		Joins("LEFT JOIN companies ON companies.id = jobs.company_id").
		Scopes(
			listing.Contains(f.Search, "jobs.title", "jobs.description", "companies.company_name"),
			listing.Exact("jobs.job_type", f.JobType),
			listing.Contains(f.Location, "jobs.location"),
			listing.Exact("jobs.experience_level", f.ExperienceLevel),
		).
		Order("jobs.posted_at DESC")

	page, err := listing.Paginate[models.Job](query, listing.JobsPageSize, f.Page, withCompany)
	if err != nil {
		return listing.Page[dto.JobView]{}, fmt.Errorf("failed to list jobs: %w", err)
	}
	now := s.now()
	return listing.Map(page, func(j models.Job) dto.JobView { return s.view(ctx, j, now) }), nil
}

// Featured returns the newest active jobs and the active job count.
func (s *JobService) Featured(ctx context.Context) ([]dto.JobView, int64, error) {
	var total int64
	if err := s.activeJobs(ctx).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	var jobs []models.Job
	err := s.activeJobs(ctx).Scopes(withCompany).
		Order("jobs.posted_at DESC").
		Limit(listing.FeaturedJobsSize).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load featured jobs: %w", err)
	}

	now := s.now()
	views := make([]dto.JobView, len(jobs))
	for i, j := range jobs {
		views[i] = s.view(ctx, j, now)
	}
	return views, total, nil
}

// CountAll counts every job, active or not.
func (s *JobService) CountAll(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Job{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return n, nil
}

// Get returns an active job. actor may be nil for anonymous viewers.
func (s *JobService) Get(ctx context.Context, actor access.Actor, id uuid.UUID) (*dto.JobDetailResponse, error) {
	var job models.Job
	if err := s.activeJobs(ctx).Scopes(withCompany).First(&job, "jobs.id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, ErrJobNotFound.Message, "")
	}

	resp := &dto.JobDetailResponse{Job: s.view(ctx, job, s.now())}
	if seeker, ok := actor.(access.JobSeekerActor); ok {
		applied, err := hasApplied(ctx, s.db, job.ID, seeker.Profile.ID)
		if err != nil {
			return nil, err
		}
		resp.UserHasApplied = applied
	}
	return resp, nil
}

func (s *JobService) Create(ctx context.Context, actor access.Actor, req *dto.CreateJobRequest) (*models.Job, error) {
	company, ok := actor.(access.CompanyActor)
	if !ok {
		return nil, ErrNotCompany
	}

	job := models.Job{
		CompanyID:       company.Profile.ID,
		Title:           strings.TrimSpace(req.Title),
		Description:     strings.TrimSpace(req.Description),
		Requirements:    req.Requirements,
		Location:        strings.TrimSpace(req.Location),
		JobType:         models.JobType(req.JobType),
		ExperienceLevel: models.ExperienceLevel(req.ExperienceLevel),
		IsActive:        true,
		TotalPositions:  1,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
	}
	if req.TotalPositions != nil {
		job.TotalPositions = *req.TotalPositions
	}
	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return nil, err
	}
	job.Deadline = deadline

	if err := validateJob(&job); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&job).Error; err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return &job, nil
}

func (s *JobService) Update(ctx context.Context, actor access.Actor, id uuid.UUID, req *dto.UpdateJobRequest) (*models.Job, error) {
	job, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		job.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		job.Description = strings.TrimSpace(*req.Description)
	}
	if req.Requirements != nil {
		job.Requirements = *req.Requirements
	}
	if req.Location != nil {
		job.Location = strings.TrimSpace(*req.Location)
	}
	if req.JobType != nil {
		job.JobType = models.JobType(*req.JobType)
	}
	if req.ExperienceLevel != nil {
		job.ExperienceLevel = models.ExperienceLevel(*req.ExperienceLevel)
	}
	if req.TotalPositions != nil {
		job.TotalPositions = *req.TotalPositions
	}
	job.SalaryMin = req.SalaryMin
	job.SalaryMax = req.SalaryMax
	if job.Deadline, err = parseDeadline(req.Deadline); err != nil {
		return nil, err
	}

	if err := validateJob(job); err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Model(job).Select(
		"title", "description", "requirements", "location", "job_type",
		"experience_level", "total_positions", "salary_min", "salary_max", "deadline", "updated_at",
	).Updates(job).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return job, nil
}

// Delete removes a job with its applications and their documents.
func (s *JobService) Delete(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	job, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteJobsCascade(tx, []uuid.UUID{job.ID})
	})
}

// ToggleActive flips whether the job is listed and open for applications.
func (s *JobService) ToggleActive(ctx context.Context, actor access.Actor, id uuid.UUID) (*models.Job, error) {
	job, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	job.IsActive = !job.IsActive
	if err := s.db.WithContext(ctx).Model(job).Update("is_active", job.IsActive).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle job: %w", err)
	}
	return job, nil
}

func (s *JobService) loadOwned(ctx context.Context, actor access.Actor, id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := s.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, ErrJobNotFound.Message, "")
	}
	if !access.CanMutateJob(actor, &job) {
		return nil, ErrJobNotOwned
	}
	return &job, nil
}

func validateJob(j *models.Job) error {
	switch {
	case j.Title == "":
		return apperr.Validation("title is required")
	case j.Description == "":
		return apperr.Validation("description is required")
	case !j.JobType.Valid():
		return ErrInvalidJobType
	case !j.ExperienceLevel.Valid():
		return ErrInvalidLevel
	case j.TotalPositions < 1:
		return ErrInvalidPositions
	}
	if (j.SalaryMin != nil && *j.SalaryMin < 0) || (j.SalaryMax != nil && *j.SalaryMax < 0) {
		return ErrInvalidSalary
	}
	if j.SalaryMin != nil && j.SalaryMax != nil && *j.SalaryMin > *j.SalaryMax {
		return ErrInvalidSalary
	}
	return nil
}

// parseDeadline returns nil for a blank value.
func parseDeadline(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, ErrInvalidDeadline
}

func hasApplied(ctx context.Context, db *gorm.DB, jobID, seekerID uuid.UUID) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&models.JobApplication{}).
		Where("job_id = ? AND job_seeker_id = ?", jobID, seekerID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("failed to check existing application: %w", err)
	}
	return n > 0, nil
}
