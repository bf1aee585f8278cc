// Package testutil provides an in-memory database and fixtures for tests.
package testutil

import (
	"testing"
	"time"

	"github.com/elevate-workforce/jobportal/internal/database"
	"github.com/elevate-workforce/jobportal/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Password is the plain-text password of every fixture user.
const Password = "correct-horse"

// NewDB opens a private in-memory sqlite database with the full schema.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func hash(t *testing.T) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(b)
}

// CreateUser inserts an active user with the given role.
func CreateUser(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  hash(t),
		FirstName: username,
		LastName:  "Tester",
		Role:      role,
		IsActive:  true,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

// CreateSeeker inserts a job seeker account with its profile.
func CreateSeeker(t *testing.T, db *gorm.DB, username string) (*models.User, *models.JobSeeker) {
	t.Helper()
	u := CreateUser(t, db, username, models.RoleJobSeeker)
	p := &models.JobSeeker{UserID: u.ID, Location: "Kathmandu"}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create seeker profile: %v", err)
	}
	return u, p
}

// CreateCompany inserts a company account with its profile.
func CreateCompany(t *testing.T, db *gorm.DB, username, companyName string) (*models.User, *models.Company) {
	t.Helper()
	u := CreateUser(t, db, username, models.RoleCompany)
	c := &models.Company{
		UserID:      u.ID,
		CompanyName: companyName,
		Industry:    "Software",
		Location:    "Lalitpur",
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("create company profile: %v", err)
	}
	return u, c
}

// CreateAdmin inserts a staff superuser.
func CreateAdmin(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{
		Username:    username,
		Email:       username + "@example.com",
		Password:    hash(t),
		Role:        models.RoleJobSeeker,
		IsActive:    true,
		IsStaff:     true,
		IsSuperuser: true,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create admin: %v", err)
	}
	return u
}

// JobOption adjusts a fixture job before insert.
type JobOption func(*models.Job)

func Inactive() JobOption { return func(j *models.Job) { j.IsActive = false } }

func WithDeadline(d time.Time) JobOption { return func(j *models.Job) { j.Deadline = &d } }

func WithTitle(title string) JobOption { return func(j *models.Job) { j.Title = title } }

func WithLocation(loc string) JobOption { return func(j *models.Job) { j.Location = loc } }

func WithType(jt models.JobType) JobOption { return func(j *models.Job) { j.JobType = jt } }

// CreateJob inserts an active full-time job for company.
func CreateJob(t *testing.T, db *gorm.DB, company *models.Company, opts ...JobOption) *models.Job {
	t.Helper()
	j := &models.Job{
		CompanyID:       company.ID,
		Title:           "Backend Engineer",
		Description:     "Build services",
		Requirements:    "Go\nSQL",
		Location:        "Kathmandu",
		JobType:         models.JobFullTime,
		ExperienceLevel: models.LevelMid,
		IsActive:        true,
		TotalPositions:  1,
	}
	for _, opt := range opts {
		opt(j)
	}
	if err := db.Create(j).Error; err != nil {
		t.Fatalf("create job: %v", err)
	}
	return j
}

// CreateApplication inserts an application in the given status.
func CreateApplication(t *testing.T, db *gorm.DB, job *models.Job, seeker *models.JobSeeker, status models.ApplicationStatus) *models.JobApplication {
	t.Helper()
	a := &models.JobApplication{
		JobID:       job.ID,
		JobSeekerID: seeker.ID,
		Status:      status,
		CoverLetter: "Hello",
	}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("create application: %v", err)
	}
	return a
}
