package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gorm.io/gorm"
)

type JobType string

const (
	JobFullTime   JobType = "full_time"
	JobPartTime   JobType = "part_time"
	JobContract   JobType = "contract"
	JobInternship JobType = "internship"
)

func (t JobType) Valid() bool {
	switch t {
	case JobFullTime, JobPartTime, JobContract, JobInternship:
		return true
	}
	return false
}

type ExperienceLevel string

const (
	LevelEntry     ExperienceLevel = "entry"
	LevelMid       ExperienceLevel = "mid"
	LevelSenior    ExperienceLevel = "senior"
	LevelExecutive ExperienceLevel = "executive"
)

func (l ExperienceLevel) Valid() bool {
	switch l {
	case LevelEntry, LevelMid, LevelSenior, LevelExecutive:
		return true
	}
	return false
}

type Job struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_jobs_company_active" json:"company_id"`
	Company         *Company        `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"company,omitempty"`
	Title           string          `gorm:"size:255;not null" json:"title"`
	Description     string          `gorm:"type:text;not null" json:"description"`
	Requirements    string          `gorm:"type:text" json:"requirements"`
	Location        string          `gorm:"size:255" json:"location"`
	SalaryMin       *float64        `json:"salary_min"`
	SalaryMax       *float64        `json:"salary_max"`
	JobType         JobType         `gorm:"size:20;not null;index" json:"job_type"`
	ExperienceLevel ExperienceLevel `gorm:"size:20;not null" json:"experience_level"`
	IsActive        bool            `gorm:"not null;index:idx_jobs_company_active" json:"is_active"`
	PostedAt        time.Time       `gorm:"autoCreateTime;index" json:"posted_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Deadline        *time.Time      `json:"deadline"`
	TotalPositions  int             `gorm:"not null" json:"total_positions"`
}

func (j *Job) BeforeCreate(*gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// DeadlinePassed reports whether applications are closed at now. Jobs
// without a deadline never close.
func (j *Job) DeadlinePassed(now time.Time) bool {
	return j.Deadline != nil && now.After(*j.Deadline)
}

// RequirementsList splits requirements on newlines, dropping blanks.
func (j *Job) RequirementsList() []string {
	return splitNonEmpty(j.Requirements, "\n")
}

var salaryPrinter = message.NewPrinter(language.English)

func (j *Job) SalaryRange() string {
	switch {
	case j.SalaryMin != nil && j.SalaryMax != nil:
		return salaryPrinter.Sprintf("NPR %.0f - NPR %.0f", *j.SalaryMin, *j.SalaryMax)
	case j.SalaryMin != nil:
		return salaryPrinter.Sprintf("From NPR %.0f", *j.SalaryMin)
	case j.SalaryMax != nil:
		return salaryPrinter.Sprintf("Up to NPR %.0f", *j.SalaryMax)
	}
	return "Salary Not Specified"
}
