package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/elevate-workforce/jobportal/internal/access"
	"github.com/elevate-workforce/jobportal/internal/apperr"
	"github.com/elevate-workforce/jobportal/internal/models"
	"github.com/elevate-workforce/jobportal/internal/notify"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

var (
	ErrUsernameTaken    = apperr.Conflict("username already exists")
	ErrEmailTaken       = apperr.Conflict("email already registered")
	ErrCompanyNameTaken = apperr.Conflict("company name already exists")
	ErrPasswordTooShort = apperr.Validation("password must be at least 8 characters long")
	ErrAccountDisabled  = apperr.Forbidden("your account is disabled")
	ErrUserNotFound     = apperr.NotFound("user not found")
)

// accountInput is what registration and admin user creation share.
type accountInput struct {
	Username    string
	Email       string
	Password    string
	Role        models.Role
	FirstName   string
	LastName    string
	PhoneNumber string
	Location    string
	Skills      string
	CompanyName string
	Industry    string
	Description string
	Staff       bool
}

var ErrInvalidEmail = apperr.Validation("enter a valid email address")

// validEmail accepts one bare address and returns it trimmed.
func validEmail(raw string) (string, error) {
	email, err := notify.ParseAddress(raw)
	if err != nil {
		return "", ErrInvalidEmail
	}
	return email, nil
}

func (in *accountInput) normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	if in.Role == "" {
		in.Role = models.RoleJobSeeker
	}
}

func (in *accountInput) validate() error {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return apperr.Validation("username, email and password are required")
	}
	email, err := validEmail(in.Email)
	if err != nil {
		return err
	}
	in.Email = email
	if len(in.Password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if !in.Role.Valid() {
		return apperr.Validation("user type must be job_seeker or company")
	}
	if in.Role == models.RoleCompany && in.CompanyName == "" {
		return apperr.Validation("company name is required")
	}
	return nil
}

// createAccount inserts a user and the profile matching its role. It must
// run inside a transaction so a failed profile insert leaves no user.
func createAccount(tx *gorm.DB, in accountInput) (*models.User, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	if taken, err := exists(tx, &models.User{}, "username = ?", in.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUsernameTaken
	}
	if taken, err := exists(tx, &models.User{}, "email = ?", in.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}
	if in.Role == models.RoleCompany {
		if taken, err := exists(tx, &models.Company{}, "company_name = ?", in.CompanyName); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrCompanyNameTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:    in.Username,
		Email:       in.Email,
		Password:    string(hash),
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
		Role:        in.Role,
		IsActive:    true,
		IsStaff:     in.Staff,
		IsSuperuser: in.Staff,
	}
	if err := tx.Create(user).Error; err != nil {
		return nil, apperr.FromDB(err, "", "username or email already exists")
	}

	switch in.Role {
	case models.RoleJobSeeker:
		seeker := &models.JobSeeker{UserID: user.ID, Location: in.Location, Skills: in.Skills}
		if err := tx.Create(seeker).Error; err != nil {
			return nil, fmt.Errorf("failed to create job seeker profile: %w", err)
		}
		user.JobSeekerProfile = seeker
	case models.RoleCompany:
		company := &models.Company{
			UserID:      user.ID,
			CompanyName: in.CompanyName,
			Industry:    in.Industry,
			Location:    in.Location,
			Description: in.Description,
		}
		if err := tx.Create(company).Error; err != nil {
			return nil, apperr.FromDB(err, "", ErrCompanyNameTaken.Message)
		}
		user.CompanyProfile = company
	}
	return user, nil
}

func exists(tx *gorm.DB, model interface{}, query string, args ...interface{}) (bool, error) {
	var n int64
	if err := tx.Model(model).Where(query, args...).Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to check uniqueness: %w", err)
	}
	return n > 0, nil
}

// loadUser returns an active user by id.
func loadUser(ctx context.Context, db *gorm.DB, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("account no longer exists")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	return &user, nil
}

// loadActor resolves a user id into the request actor with its profile.
func loadActor(ctx context.Context, db *gorm.DB, id uuid.UUID) (access.Actor, error) {
	user, err := loadUser(ctx, db, id)
	if err != nil {
		return nil, err
	}

	var seeker *models.JobSeeker
	var company *models.Company
	switch user.Role {
	case models.RoleJobSeeker:
		var p models.JobSeeker
		if err := db.WithContext(ctx).Where("user_id = ?", user.ID).First(&p).Error; err == nil {
			seeker = &p
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to load job seeker profile: %w", err)
		}
	case models.RoleCompany:
		var p models.Company
		if err := db.WithContext(ctx).Where("user_id = ?", user.ID).First(&p).Error; err == nil {
			company = &p
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to load company profile: %w", err)
		}
	}
	return access.NewActor(user, seeker, company)
}

// deleteUserCascade removes a user with its tokens, profile and everything
// hanging off the profile.
func deleteUserCascade(tx *gorm.DB, userID uuid.UUID) error {
	if err := tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
		return fmt.Errorf("failed to delete refresh tokens: %w", err)
	}

	var seekerIDs []uuid.UUID
	if err := tx.Model(&models.JobSeeker{}).Where("user_id = ?", userID).Pluck("id", &seekerIDs).Error; err != nil {
		return fmt.Errorf("failed to find job seeker profile: %w", err)
	}
	if len(seekerIDs) > 0 {
		var appIDs []uuid.UUID
		if err := tx.Model(&models.JobApplication{}).Where("job_seeker_id IN ?", seekerIDs).Pluck("id", &appIDs).Error; err != nil {
			return fmt.Errorf("failed to find applications: %w", err)
		}
		if err := deleteApplications(tx, appIDs); err != nil {
			return err
		}
		if err := tx.Where("id IN ?", seekerIDs).Delete(&models.JobSeeker{}).Error; err != nil {
			return fmt.Errorf("failed to delete job seeker profile: %w", err)
		}
	}

	var companyIDs []uuid.UUID
	if err := tx.Model(&models.Company{}).Where("user_id = ?", userID).Pluck("id", &companyIDs).Error; err != nil {
		return fmt.Errorf("failed to find company profile: %w", err)
	}
	for _, id := range companyIDs {
		if err := deleteCompanyCascade(tx, id); err != nil {
			return err
		}
	}

	result := tx.Where("id = ?", userID).Delete(&models.User{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// deleteCompanyCascade removes a company, its jobs and their applications.
// The owning user is kept.
func deleteCompanyCascade(tx *gorm.DB, companyID uuid.UUID) error {
	var jobIDs []uuid.UUID
	if err := tx.Model(&models.Job{}).Where("company_id = ?", companyID).Pluck("id", &jobIDs).Error; err != nil {
		return fmt.Errorf("failed to find company jobs: %w", err)
	}
	if err := deleteJobsCascade(tx, jobIDs); err != nil {
		return err
	}
	if err := tx.Where("id = ?", companyID).Delete(&models.Company{}).Error; err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	return nil
}

func deleteJobsCascade(tx *gorm.DB, jobIDs []uuid.UUID) error {
	if len(jobIDs) == 0 {
		return nil
	}
	var appIDs []uuid.UUID
	if err := tx.Model(&models.JobApplication{}).Where("job_id IN ?", jobIDs).Pluck("id", &appIDs).Error; err != nil {
		return fmt.Errorf("failed to find job applications: %w", err)
	}
	if err := deleteApplications(tx, appIDs); err != nil {
		return err
	}
	if err := tx.Where("id IN ?", jobIDs).Delete(&models.Job{}).Error; err != nil {
		return fmt.Errorf("failed to delete jobs: %w", err)
	}
	return nil
}

func deleteApplications(tx *gorm.DB, appIDs []uuid.UUID) error {
	if len(appIDs) == 0 {
		return nil
	}
	if err := tx.Where("application_id IN ?", appIDs).Delete(&models.ApplicationDocument{}).Error; err != nil {
		return fmt.Errorf("failed to delete application documents: %w", err)
	}
	if err := tx.Where("id IN ?", appIDs).Delete(&models.JobApplication{}).Error; err != nil {
		return fmt.Errorf("failed to delete applications: %w", err)
	}
	return nil
}
