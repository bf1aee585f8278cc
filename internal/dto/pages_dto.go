package dto

import "github.com/elevate-workforce/jobportal/internal/site"

type HomeResponse struct {
	FeaturedJobs []JobView `json:"featured_jobs"`
	TotalJobs    int64     `json:"total_jobs"`
}

type AboutResponse struct {
	site.About
	JobPostings int64 `json:"job_postings"`
}

type ServicesResponse struct {
	Services []site.Service `json:"services"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}
