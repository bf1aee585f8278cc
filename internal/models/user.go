package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleJobSeeker Role = "job_seeker"
	RoleCompany   Role = "company"
)

func (r Role) Valid() bool {
	return r == RoleJobSeeker || r == RoleCompany
}

// User is the login identity. Exactly one of JobSeekerProfile or
// CompanyProfile exists, selected by Role.
type User struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Username         string     `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Email            string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password         string     `gorm:"not null" json:"-"`
	FirstName        string     `gorm:"size:150" json:"first_name"`
	LastName         string     `gorm:"size:150" json:"last_name"`
	PhoneNumber      string     `gorm:"size:15" json:"phone_number"`
	Role             Role       `gorm:"size:20;not null;index" json:"role"`
	IsActive         bool       `gorm:"not null" json:"is_active"`
	IsStaff          bool       `gorm:"not null" json:"is_staff"`
	IsSuperuser      bool       `gorm:"not null" json:"is_superuser"`
	CreatedAt        time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	JobSeekerProfile *JobSeeker `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"job_seeker_profile,omitempty"`
	CompanyProfile   *Company   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"company_profile,omitempty"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) IsJobSeeker() bool { return u.Role == RoleJobSeeker }
func (u *User) IsCompany() bool   { return u.Role == RoleCompany }

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// JobSeeker is the profile of a job_seeker user.
type JobSeeker struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Bio             string    `gorm:"type:text" json:"bio"`
	ResumeKey       string    `gorm:"size:512" json:"resume_key,omitempty"`
	Skills          string    `gorm:"type:text" json:"skills"`
	ExperienceYears int       `gorm:"not null" json:"experience_years"`
	Location        string    `gorm:"size:255" json:"location"`
	PictureKey      string    `gorm:"size:512" json:"picture_key,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (j *JobSeeker) BeforeCreate(*gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// SkillsList splits the comma separated skills, dropping blanks.
func (j *JobSeeker) SkillsList() []string {
	return splitNonEmpty(j.Skills, ",")
}

func splitNonEmpty(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
