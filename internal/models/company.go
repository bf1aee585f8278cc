package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompanyStatus string

const (
	CompanyActive    CompanyStatus = "active"
	CompanyInactive  CompanyStatus = "inactive"
	CompanySuspended CompanyStatus = "suspended"
)

func (s CompanyStatus) Valid() bool {
	switch s {
	case CompanyActive, CompanyInactive, CompanySuspended:
		return true
	}
	return false
}

type Company struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	CompanyName string        `gorm:"size:255;not null;uniqueIndex" json:"company_name"`
	Description string        `gorm:"type:text" json:"description"`
	Website     string        `gorm:"size:255" json:"website"`
	Industry    string        `gorm:"size:100" json:"industry"`
	Location    string        `gorm:"size:255" json:"location"`
	CompanySize string        `gorm:"size:50" json:"company_size"`
	LogoKey     string        `gorm:"size:512" json:"logo_key,omitempty"`
	LogoURL     string        `gorm:"-" json:"logo_url,omitempty"`
	Status      CompanyStatus `gorm:"size:20;not null;index" json:"status"`
	Verified    bool          `gorm:"not null" json:"verified"`
	CreatedAt   time.Time     `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// ActiveCompany mirrors IsActiveCompany for API consumers.
	ActiveCompany bool `gorm:"-" json:"is_active_company"`
}

func (c *Company) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = CompanyActive
	}
	return nil
}

func (c *Company) AfterFind(*gorm.DB) error {
	c.ActiveCompany = c.IsActiveCompany()
	return nil
}

func (c *Company) AfterSave(*gorm.DB) error {
	c.ActiveCompany = c.IsActiveCompany()
	return nil
}

// IsActiveCompany is true for active, verified companies.
func (c *Company) IsActiveCompany() bool {
	return c.Status == CompanyActive && c.Verified
}
