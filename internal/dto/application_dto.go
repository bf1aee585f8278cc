package dto

import (
	"time"

	"github.com/elevate-workforce/jobportal/internal/listing"
	"github.com/elevate-workforce/jobportal/internal/models"
)

type ApplyRequest struct {
	CoverLetter string `json:"cover_letter"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type ApplicationFilter struct {
	Status string `query:"status"`
	Page   string `query:"page"`
}

type ApplicationView struct {
	models.JobApplication
	StatusLabel      string `json:"status_label"`
	BadgeColor       string `json:"badge_color"`
	DaysSinceApplied int    `json:"days_since_applied"`
	CanBeWithdrawn   bool   `json:"can_be_withdrawn"`
}

func NewApplicationView(a models.JobApplication, now time.Time) ApplicationView {
	return ApplicationView{
		JobApplication:   a,
		StatusLabel:      a.Status.Label(),
		BadgeColor:       a.Status.BadgeColor(),
		DaysSinceApplied: a.DaysSinceApplied(now),
		CanBeWithdrawn:   a.CanBeWithdrawn(),
	}
}

type StatusChoice struct {
	Value models.ApplicationStatus `json:"value"`
	Label string                   `json:"label"`
}

func NewStatusChoices(statuses []models.ApplicationStatus) []StatusChoice {
	out := make([]StatusChoice, len(statuses))
	for i, s := range statuses {
		out[i] = StatusChoice{Value: s, Label: s.Label()}
	}
	return out
}

type ApplicationDetailResponse struct {
	Application  ApplicationView `json:"application"`
	IsApplicant  bool            `json:"is_applicant"`
	IsCompany    bool            `json:"is_company"`
	NextStatuses []StatusChoice  `json:"next_statuses"`
	ResumeURL    string          `json:"resume_url,omitempty"`
	LogoURL      string          `json:"logo_url,omitempty"`
}

type CompanyDashboardResponse struct {
	Company             models.Company                `json:"company"`
	Jobs                []JobView                     `json:"jobs"`
	Applications        listing.Page[ApplicationView] `json:"applications"`
	StatusFilter        string                        `json:"status_filter"`
	TotalJobs           int64                         `json:"total_jobs"`
	ActiveJobs          int64                         `json:"active_jobs"`
	TotalApplications   int64                         `json:"total_applications"`
	PendingApplications int64                         `json:"pending_applications"`
}

type DocumentURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
