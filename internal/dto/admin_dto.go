package dto

import "github.com/elevate-workforce/jobportal/internal/models"

type UserFilter struct {
	Role   string `query:"role"`
	Search string `query:"search"`
	Page   string `query:"page"`
}

type CompanyFilter struct {
	Status   string `query:"status"`
	Verified string `query:"verified"`
	Search   string `query:"search"`
	Page     string `query:"page"`
}

type AdminDashboardResponse struct {
	TotalUsers       int64            `json:"total_users"`
	TotalJobSeekers  int64            `json:"total_job_seekers"`
	TotalCompanies   int64            `json:"total_companies"`
	TotalActiveUsers int64            `json:"total_active_users"`
	RecentUsers      []UserResponse   `json:"recent_users"`
	RecentCompanies  []models.Company `json:"recent_companies"`
}

type AddUserRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"user_type"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Location    string `json:"location"`
	Skills      string `json:"skills"`
	CompanyName string `json:"company_name"`
	Industry    string `json:"industry"`
	Description string `json:"description"`
}

type AdminUpdateUserRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	IsActive    *bool   `json:"is_active"`
	Location    *string `json:"location"`
	Skills      *string `json:"skills"`
	CompanyName *string `json:"company_name"`
	Industry    *string `json:"industry"`
	Description *string `json:"description"`
}

type AdminUpdateCompanyRequest struct {
	CompanyName *string `json:"company_name"`
	Industry    *string `json:"industry"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Website     *string `json:"website"`
	Status      *string `json:"status"`
	Verified    *bool   `json:"verified"`
}
