package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/elevate-workforce/jobportal/internal/apperr"
	"github.com/elevate-workforce/jobportal/internal/dto"
	"github.com/elevate-workforce/jobportal/internal/listing"
	"github.com/elevate-workforce/jobportal/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const recentLimit = 5

var ErrCompanyNotFound = apperr.NotFound("company not found")

// AdminService backs the staff back office. Callers must have checked
// access.IsAdmin before reaching it.
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

func (s *AdminService) Dashboard(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	db := s.db.WithContext(ctx)
	resp := &dto.AdminDashboardResponse{}

	counts := []struct {
		model interface{}
		where []interface{}
		dest  *int64
	}{
		{&models.User{}, nil, &resp.TotalUsers},
		{&models.JobSeeker{}, nil, &resp.TotalJobSeekers},
		{&models.Company{}, nil, &resp.TotalCompanies},
		{&models.User{}, []interface{}{"is_active = ?", true}, &resp.TotalActiveUsers},
	}
	for _, c := range counts {
		q := db.Model(c.model)
		if len(c.where) > 0 {
			q = q.Where(c.where[0], c.where[1:]...)
		}
		if err := q.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count: %w", err)
		}
	}

	var users []models.User
	if err := db.Order("created_at DESC").Limit(recentLimit).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to load recent users: %w", err)
	}
	resp.RecentUsers = make([]dto.UserResponse, len(users))
	for i := range users {
		resp.RecentUsers[i] = dto.NewUserResponse(&users[i])
	}

	resp.RecentCompanies = []models.Company{}
	if err := db.Order("created_at DESC").Limit(recentLimit).Find(&resp.RecentCompanies).Error; err != nil {
		return nil, fmt.Errorf("failed to load recent companies: %w", err)
	}
	return resp, nil
}

func (s *AdminService) ListUsers(ctx context.Context, f dto.UserFilter) (listing.Page[dto.UserResponse], error) {
	query := s.db.WithContext(ctx).Model(&models.User{}).
		Scopes(
			listing.Exact("role", f.Role),
			listing.Contains(f.Search, "username", "email"),
		).
		Order("created_at DESC")

	page, err := listing.Paginate[models.User](query, listing.AdminPageSize, f.Page)
	if err != nil {
		return listing.Page[dto.UserResponse]{}, fmt.Errorf("failed to list users: %w", err)
	}
	return listing.Map(page, func(u models.User) dto.UserResponse { return dto.NewUserResponse(&u) }), nil
}

// AddUser creates an account with its role profile on behalf of staff.
func (s *AdminService) AddUser(ctx context.Context, req *dto.AddUserRequest) (*dto.UserResponse, error) {
	in := accountInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		Role:        models.Role(strings.TrimSpace(req.Role)),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Location:    req.Location,
		Skills:      req.Skills,
		CompanyName: req.CompanyName,
		Industry:    req.Industry,
		Description: req.Description,
	}

	var user *models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		user, err = createAccount(tx, in)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("user created by admin", "user_id", user.ID, "role", user.Role)
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *AdminService) UpdateUser(ctx context.Context, id uuid.UUID, req *dto.AdminUpdateUserRequest) (*dto.UserResponse, error) {
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return apperr.FromDB(err, ErrUserNotFound.Message, "")
		}

		updates := map[string]interface{}{}
		setString(updates, "first_name", req.FirstName)
		setString(updates, "last_name", req.LastName)
		setString(updates, "phone_number", req.PhoneNumber)
		if req.Email != nil {
			email, err := validEmail(*req.Email)
			if err != nil {
				return err
			}
			updates["email"] = email
		}
		if req.IsActive != nil {
			updates["is_active"] = *req.IsActive
		}
		if len(updates) > 0 {
			if err := tx.Model(&user).Updates(updates).Error; err != nil {
				return apperr.FromDB(err, "", ErrEmailTaken.Message)
			}
		}

		// A missing profile is skipped, not an error.
		profile := map[string]interface{}{}
		setString(profile, "location", req.Location)
		if user.IsJobSeeker() {
			setString(profile, "skills", req.Skills)
			if len(profile) == 0 {
				return nil
			}
			if err := tx.Model(&models.JobSeeker{}).Where("user_id = ?", user.ID).Updates(profile).Error; err != nil {
				return fmt.Errorf("failed to update job seeker profile: %w", err)
			}
			return nil
		}
		if req.CompanyName != nil {
			name := strings.TrimSpace(*req.CompanyName)
			if name == "" {
				return apperr.Validation("company name is required")
			}
			profile["company_name"] = name
		}
		setString(profile, "industry", req.Industry)
		setString(profile, "description", req.Description)
		if len(profile) == 0 {
			return nil
		}
		if err := tx.Model(&models.Company{}).Where("user_id = ?", user.ID).Updates(profile).Error; err != nil {
			return apperr.FromDB(err, "", ErrCompanyNameTaken.Message)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}

	resp := dto.NewUserResponse(&user)
	return &resp, nil
}

// DeleteUser removes a user with its profile and everything that hangs
// off it.
func (s *AdminService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteUserCascade(tx, id)
	})
	if err != nil {
		return err
	}
	slog.Info("user deleted by admin", "user_id", id)
	return nil
}

func (s *AdminService) ToggleUserStatus(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	db := s.db.WithContext(ctx)
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, ErrUserNotFound.Message, "")
	}
	user.IsActive = !user.IsActive
	if err := db.Model(&user).Update("is_active", user.IsActive).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle user status: %w", err)
	}
	resp := dto.NewUserResponse(&user)
	return &resp, nil
}

func (s *AdminService) ListCompanies(ctx context.Context, f dto.CompanyFilter) (listing.Page[models.Company], error) {
	query := s.db.WithContext(ctx).Model(&models.Company{}).
		Scopes(
			listing.Exact("status", f.Status),
			listing.BoolEq("verified", f.Verified),
			listing.Contains(f.Search, "company_name"),
		).
		Order("created_at DESC")

	page, err := listing.Paginate[models.Company](query, listing.AdminPageSize, f.Page)
	if err != nil {
		return listing.Page[models.Company]{}, fmt.Errorf("failed to list companies: %w", err)
	}
	return page, nil
}

func (s *AdminService) UpdateCompany(ctx context.Context, id uuid.UUID, req *dto.AdminUpdateCompanyRequest) (*models.Company, error) {
	db := s.db.WithContext(ctx)
	var company models.Company
	if err := db.First(&company, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, ErrCompanyNotFound.Message, "")
	}

	updates := map[string]interface{}{}
	if req.CompanyName != nil {
		name := strings.TrimSpace(*req.CompanyName)
		if name == "" {
			return nil, apperr.Validation("company name is required")
		}
		updates["company_name"] = name
	}
	setString(updates, "industry", req.Industry)
	setString(updates, "location", req.Location)
	setString(updates, "description", req.Description)
	setString(updates, "website", req.Website)
	if req.Status != nil {
		status := models.CompanyStatus(*req.Status)
		if !status.Valid() {
			return nil, apperr.Validation("invalid company status")
		}
		updates["status"] = status
	}
	if req.Verified != nil {
		updates["verified"] = *req.Verified
	}
	if len(updates) == 0 {
		return &company, nil
	}

	if err := db.Model(&company).Updates(updates).Error; err != nil {
		return nil, apperr.FromDB(err, "", ErrCompanyNameTaken.Message)
	}
	if err := db.First(&company, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload company: %w", err)
	}
	return &company, nil
}

// DeleteCompany removes a company with its jobs and their applications.
// The owning user account is kept.
func (s *AdminService) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Company{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return fmt.Errorf("failed to find company: %w", err)
		}
		if n == 0 {
			return ErrCompanyNotFound
		}
		return deleteCompanyCascade(tx, id)
	})
}

func (s *AdminService) ToggleCompanyVerification(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	db := s.db.WithContext(ctx)
	var company models.Company
	if err := db.First(&company, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, ErrCompanyNotFound.Message, "")
	}
	company.Verified = !company.Verified
	if err := db.Model(&company).Update("verified", company.Verified).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle verification: %w", err)
	}
	return &company, nil
}

// EnsureAdmin creates the bootstrap staff account unless a user with that
// username already exists. Blank credentials disable bootstrapping.
func (s *AdminService) EnsureAdmin(ctx context.Context, username, email, password string) error {
	if username == "" || password == "" {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if taken, err := exists(tx, &models.User{}, "username = ?", username); err != nil || taken {
			return err
		}
		if email == "" {
			email = username + "@localhost"
		}
		user, err := createAccount(tx, accountInput{
			Username: username,
			Email:    email,
			Password: password,
			Role:     models.RoleJobSeeker,
			Staff:    true,
		})
		if err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
		slog.Info("admin account created", "user_id", user.ID, "username", username)
		return nil
	})
}
