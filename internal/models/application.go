package models

import (
	"strings"
	"time"

	"github.com/elevate-workforce/jobportal/internal/apperr"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "pending"
	StatusReviewed    ApplicationStatus = "reviewed"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusRejected    ApplicationStatus = "rejected"
	StatusAccepted    ApplicationStatus = "accepted"
	StatusWithdrawn   ApplicationStatus = "withdrawn"
)

// ApplicationStatuses lists every status in display order.
var ApplicationStatuses = []ApplicationStatus{
	StatusPending, StatusReviewed, StatusShortlisted, StatusRejected, StatusAccepted, StatusWithdrawn,
}

// statusTransitions is the complete transition table. Statuses without an
// entry are terminal.
var statusTransitions = map[ApplicationStatus][]ApplicationStatus{
	StatusPending:     {StatusReviewed, StatusShortlisted, StatusRejected, StatusAccepted, StatusWithdrawn},
	StatusReviewed:    {StatusShortlisted, StatusRejected, StatusAccepted, StatusWithdrawn},
	StatusShortlisted: {StatusRejected, StatusAccepted, StatusWithdrawn},
}

var (
	ErrUnknownStatus       = apperr.InvalidStatus("invalid status")
	ErrApplicationTerminal = apperr.InvalidStatus("application status is final")
	ErrInvalidTransition   = apperr.InvalidStatus("invalid status transition")
)

// ParseApplicationStatus accepts only the six declared statuses.
func ParseApplicationStatus(raw string) (ApplicationStatus, error) {
	s := ApplicationStatus(strings.TrimSpace(raw))
	if !s.Valid() {
		return "", ErrUnknownStatus
	}
	return s, nil
}

func (s ApplicationStatus) Valid() bool {
	for _, known := range ApplicationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s ApplicationStatus) IsTerminal() bool {
	return len(statusTransitions[s]) == 0
}

// NextStatuses returns the statuses reachable from s in one step.
func (s ApplicationStatus) NextStatuses() []ApplicationStatus {
	next := statusTransitions[s]
	out := make([]ApplicationStatus, len(next))
	copy(out, next)
	return out
}

// Transition validates moving from s to next.
func (s ApplicationStatus) Transition(next ApplicationStatus) error {
	if !next.Valid() {
		return ErrUnknownStatus
	}
	if s.IsTerminal() {
		return ErrApplicationTerminal
	}
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return nil
		}
	}
	return ErrInvalidTransition
}

func (s ApplicationStatus) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// BadgeColor maps a status to a display color class.
func (s ApplicationStatus) BadgeColor() string {
	switch s {
	case StatusPending:
		return "warning"
	case StatusReviewed:
		return "info"
	case StatusShortlisted, StatusAccepted:
		return "success"
	case StatusRejected:
		return "danger"
	default:
		return "secondary"
	}
}

// JobApplication is unique per (job, job seeker) regardless of status, so a
// withdrawn application still blocks re-applying.
type JobApplication struct {
	ID          uuid.UUID             `gorm:"type:uuid;primaryKey" json:"id"`
	JobID       uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_seeker;index:idx_applications_job_status" json:"job_id"`
	Job         *Job                  `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"job,omitempty"`
	JobSeekerID uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_seeker;index:idx_applications_seeker_status" json:"job_seeker_id"`
	JobSeeker   *JobSeeker            `gorm:"foreignKey:JobSeekerID;constraint:OnDelete:CASCADE" json:"job_seeker,omitempty"`
	Status      ApplicationStatus     `gorm:"size:20;not null;index:idx_applications_job_status;index:idx_applications_seeker_status" json:"status"`
	CoverLetter string                `gorm:"type:text" json:"cover_letter"`
	ResumeKey   string                `gorm:"size:512" json:"resume_key,omitempty"`
	AppliedAt   time.Time             `gorm:"autoCreateTime;index" json:"applied_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
	Documents   []ApplicationDocument `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"documents,omitempty"`
}

func (a *JobApplication) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a *JobApplication) CanBeWithdrawn() bool {
	return !a.Status.IsTerminal()
}

// DaysSinceApplied is the number of whole days elapsed since submission.
func (a *JobApplication) DaysSinceApplied(now time.Time) int {
	d := now.Sub(a.AppliedAt)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}

// ApplicationDocument is an extra file (CV, certificate, portfolio)
// attached to an application.
type ApplicationDocument struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null;index" json:"application_id"`
	FileKey       string    `gorm:"size:512;not null" json:"file_key"`
	Label         string    `gorm:"size:150" json:"label"`
	UploadedAt    time.Time `gorm:"autoCreateTime;index" json:"uploaded_at"`
}

func (d *ApplicationDocument) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
