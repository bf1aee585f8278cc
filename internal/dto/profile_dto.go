package dto

import "github.com/elevate-workforce/jobportal/internal/models"

type SeekerView struct {
	models.JobSeeker
	SkillsList []string `json:"skills_list"`
	HasResume  bool     `json:"has_resume"`
	ResumeURL  string   `json:"resume_url,omitempty"`
	PictureURL string   `json:"picture_url,omitempty"`
}

type ProfileResponse struct {
	User      UserResponse    `json:"user"`
	JobSeeker *SeekerView     `json:"job_seeker,omitempty"`
	Company   *models.Company `json:"company,omitempty"`
}

// UpdateProfileRequest only touches fields that are present. Profile
// fields for the other role are ignored.
type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	Location    *string `json:"location"`

	Bio             *string `json:"bio"`
	Skills          *string `json:"skills"`
	ExperienceYears *int    `json:"experience_years"`

	CompanyName *string `json:"company_name"`
	Industry    *string `json:"industry"`
	Description *string `json:"description"`
	Website     *string `json:"website"`
	CompanySize *string `json:"company_size"`
}

type UploadResponse struct {
	Key string `json:"key"`
}
