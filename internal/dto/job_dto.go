package dto

import (
	"time"

	"github.com/elevate-workforce/jobportal/internal/models"
)

type JobFilter struct {
	Search          string `query:"search"`
	JobType         string `query:"job_type"`
	Location        string `query:"location"`
	ExperienceLevel string `query:"experience_level"`
	Page            string `query:"page"`
}

type CreateJobRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Requirements    string   `json:"requirements"`
	Location        string   `json:"location"`
	JobType         string   `json:"job_type"`
	ExperienceLevel string   `json:"experience_level"`
	TotalPositions  *int     `json:"total_positions"`
	SalaryMin       *float64 `json:"salary_min"`
	SalaryMax       *float64 `json:"salary_max"`
	Deadline        string   `json:"deadline"`
}

// UpdateJobRequest keeps text fields that are absent. Salary and deadline
// are always replaced, so omitting them clears them.
type UpdateJobRequest struct {
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	Requirements    *string  `json:"requirements"`
	Location        *string  `json:"location"`
	JobType         *string  `json:"job_type"`
	ExperienceLevel *string  `json:"experience_level"`
	TotalPositions  *int     `json:"total_positions"`
	SalaryMin       *float64 `json:"salary_min"`
	SalaryMax       *float64 `json:"salary_max"`
	Deadline        string   `json:"deadline"`
}

type JobView struct {
	models.Job
	SalaryRange      string   `json:"salary_range"`
	RequirementsList []string `json:"requirements_list"`
	DeadlinePassed   bool     `json:"deadline_passed"`
}

func NewJobView(j models.Job, now time.Time) JobView {
	return JobView{
		Job:              j,
		SalaryRange:      j.SalaryRange(),
		RequirementsList: j.RequirementsList(),
		DeadlinePassed:   j.DeadlinePassed(now),
	}
}

type JobDetailResponse struct {
	Job            JobView `json:"job"`
	UserHasApplied bool    `json:"user_has_applied"`
}
