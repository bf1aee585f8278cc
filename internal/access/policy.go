package access

import (
	"time"

	"github.com/elevate-workforce/jobportal/internal/apperr"
	"github.com/elevate-workforce/jobportal/internal/models"
)

var (
	ErrNotJobSeeker   = apperr.Forbidden("only job seekers can apply for jobs")
	ErrJobClosed      = apperr.NotFound("job not found")
	ErrDeadlinePassed = apperr.Validation("application deadline has passed")
	ErrAlreadyApplied = apperr.Conflict("you have already applied for this job")
)

// CanApply returns nil when actor may apply to job. alreadyApplied reports
// whether any application exists for the pair, whatever its status.
func CanApply(actor Actor, job *models.Job, alreadyApplied bool, now time.Time) error {
	if _, ok := actor.(JobSeekerActor); !ok {
		return ErrNotJobSeeker
	}
	if !job.IsActive {
		return ErrJobClosed
	}
	if alreadyApplied {
		return ErrAlreadyApplied
	}
	if job.DeadlinePassed(now) {
		return ErrDeadlinePassed
	}
	return nil
}

// IsApplicant is true when actor is the job seeker who submitted app.
func IsApplicant(actor Actor, app *models.JobApplication) bool {
	seeker, ok := actor.(JobSeekerActor)
	return ok && seeker.Profile.ID == app.JobSeekerID
}

// IsHiringCompany is true when actor owns the job app was submitted to.
// app.Job must be loaded.
func IsHiringCompany(actor Actor, app *models.JobApplication) bool {
	return app.Job != nil && CanMutateJob(actor, app.Job)
}

func CanViewApplication(actor Actor, app *models.JobApplication) bool {
	return IsApplicant(actor, app) || IsHiringCompany(actor, app)
}

func CanMutateJob(actor Actor, job *models.Job) bool {
	company, ok := actor.(CompanyActor)
	return ok && job.CompanyID == company.Profile.ID
}

func CanMutateApplicationStatus(actor Actor, app *models.JobApplication) bool {
	return IsHiringCompany(actor, app)
}

func CanWithdraw(actor Actor, app *models.JobApplication) bool {
	return IsApplicant(actor, app) && app.CanBeWithdrawn()
}

// IsAdmin checks the privilege flags, which are independent of role.
func IsAdmin(user *models.User) bool {
	return user != nil && user.IsSuperuser && user.IsStaff
}
