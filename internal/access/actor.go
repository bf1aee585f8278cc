// Package access decides who may do what. Every function here is pure: the
// caller loads entities and passes them in together with the acting user.
package access

import (
	"github.com/elevate-workforce/jobportal/internal/apperr"
	"github.com/elevate-workforce/jobportal/internal/models"
)

// Actor is the authenticated user together with the profile matching their
// role. The only implementations are JobSeekerActor and CompanyActor.
type Actor interface {
	User() *models.User
	isActor()
}

type JobSeekerActor struct {
	user    *models.User
	Profile *models.JobSeeker
}

func (a JobSeekerActor) User() *models.User { return a.user }
func (JobSeekerActor) isActor()             {}

type CompanyActor struct {
	user    *models.User
	Profile *models.Company
}

func (a CompanyActor) User() *models.User { return a.user }
func (CompanyActor) isActor()             {}

// NewActor builds the actor for user. A missing or mismatched profile is
// rejected here so that handlers never meet a role without its profile.
func NewActor(user *models.User, seeker *models.JobSeeker, company *models.Company) (Actor, error) {
	if user == nil {
		return nil, apperr.Forbidden("authentication required")
	}
	switch user.Role {
	case models.RoleJobSeeker:
		if seeker == nil || seeker.UserID != user.ID {
			return nil, apperr.Validation("job seeker profile not found")
		}
		return JobSeekerActor{user: user, Profile: seeker}, nil
	case models.RoleCompany:
		if company == nil || company.UserID != user.ID {
			return nil, apperr.Validation("company profile not found")
		}
		return CompanyActor{user: user, Profile: company}, nil
	default:
		return nil, apperr.Validation("unknown user role")
	}
}
