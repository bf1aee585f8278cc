package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/elevate-workforce/jobportal/internal/apperr"
	"github.com/elevate-workforce/jobportal/internal/dto"
	"github.com/elevate-workforce/jobportal/internal/models"
	"github.com/elevate-workforce/jobportal/internal/testutil"
	"github.com/google/uuid"
)

func ptr[T any](v T) *T { return &v }

func TestListJobsFilters(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewJobService(db, nil)
	ctx := context.Background()

	_, acme := testutil.CreateCompany(t, db, "acme", "Acme Robotics")
	_, globex := testutil.CreateCompany(t, db, "globex", "Globex")
	testutil.CreateJob(t, db, acme, testutil.WithTitle("Welder"), testutil.WithLocation("Pokhara"))
	testutil.CreateJob(t, db, globex, testutil.WithTitle("Go Developer"), testutil.WithType(models.JobContract))
	testutil.CreateJob(t, db, globex, testutil.WithTitle("Hidden"), testutil.Inactive())

	tests := []struct {
		name   string
		filter dto.JobFilter
		want   []string
	}{
		{"no filters lists active only", dto.JobFilter{}, []string{"Go Developer", "Welder"}},
		{"search matches company name", dto.JobFilter{Search: "robotics"}, []string{"Welder"}},
		{"search matches title", dto.JobFilter{Search: "DEVELOPER"}, []string{"Go Developer"}},
		{"job type", dto.JobFilter{JobType: "contract"}, []string{"Go Developer"}},
		{"location substring", dto.JobFilter{Location: "pokh"}, []string{"Welder"}},
		{"blank values ignored", dto.JobFilter{Search: "  ", JobType: ""}, []string{"Go Developer", "Welder"}},
		{"inactive never listed", dto.JobFilter{Search: "hidden"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			got := map[string]bool{}
			for _, j := range page.Items {
				got[j.Title] = true
				if j.Company == nil {
					t.Errorf("job %q listed without company", j.Title)
				}
			}
			if len(got) != len(tt.want) || page.TotalCount != int64(len(tt.want)) {
				t.Fatalf("titles = %v (total %d), want %v", got, page.TotalCount, tt.want)
			}
			for _, w := range tt.want {
				if !got[w] {
					t.Errorf("missing %q in %v", w, got)
				}
			}
		})
	}
}

func TestListJobsPageBeyondEnd(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewJobService(db, nil)
	_, company := testutil.CreateCompany(t, db, "acme", "Acme")
	for i := 0; i < 12; i++ {
		testutil.CreateJob(t, db, company, testutil.WithTitle(fmt.Sprintf("Job %d", i)))
	}

	page, err := svc.List(context.Background(), dto.JobFilter{Page: "9"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Number != 2 || page.TotalPages != 2 || len(page.Items) != 2 || page.HasNext || !page.HasPrevious {
		t.Errorf("page = %d/%d with %d items", page.Number, page.TotalPages, len(page.Items))
	}
}

func TestFeaturedJobs(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewJobService(db, nil)
	_, company := testutil.CreateCompany(t, db, "acme", "Acme")
	for i := 0; i < 8; i++ {
		testutil.CreateJob(t, db, company)
	}
	testutil.CreateJob(t, db, company, testutil.Inactive())

	views, total, err := svc.Featured(context.Background())
	if err != nil {
		t.Fatalf("Featured: %v", err)
	}
	if len(views) != 6 || total != 8 {
		t.Errorf("featured = %d, total = %d", len(views), total)
	}
	all, err := svc.CountAll(context.Background())
	if err != nil || all != 9 {
		t.Errorf("CountAll = %d, %v", all, err)
	}
}

func TestGetJobReportsApplied(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewJobService(db, nil)
	ctx := context.Background()

	seekerUser, seeker := testutil.CreateSeeker(t, db, "sam")
	_, company := testutil.CreateCompany(t, db, "acme", "Acme")
	job := testutil.CreateJob(t, db, company)
	hidden := testutil.CreateJob(t, db, company, testutil.Inactive())

	detail, err := svc.Get(ctx, nil, job.ID)
	if err != nil {
		t.Fatalf("anonymous Get: %v", err)
	}
	if detail.UserHasApplied || detail.Job.SalaryRange != "Salary Not Specified" {
		t.Errorf("detail = %+v", detail)
	}

	testutil.CreateApplication(t, db, job, seeker, models.StatusWithdrawn)
	detail, err = svc.Get(ctx, actorFor(t, db, seekerUser.ID), job.ID)
	if err != nil {
		t.Fatalf("seeker Get: %v", err)
	}
	if !detail.UserHasApplied {
		t.Error("withdrawn application should still count as applied")
	}

	_, err = svc.Get(ctx, nil, hidden.ID)
	wantKind(t, err, apperr.KindNotFound)
	_, err = svc.Get(ctx, nil, uuid.New())
	wantKind(t, err, apperr.KindNotFound)
}

func TestCreateJobValidation(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewJobService(db, nil)
	ctx := context.Background()

	companyUser, company := testutil.CreateCompany(t, db, "acme", "Acme")
	seekerUser, _ := testutil.CreateSeeker(t, db, "sam")
	actor := actorFor(t, db, companyUser.ID)

	valid := func() *dto.CreateJobRequest {
		return &dto.CreateJobRequest{
			Title:           "Data Engineer",
			Description:     "Pipelines",
			JobType:         "full_time",
			ExperienceLevel: "senior",
			SalaryMin:       ptr(50000.0),
			SalaryMax:       ptr(90000.0),
			Deadline:        "2030-01-31",
		}
	}

	job, err := svc.Create(ctx, actor, valid())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if job.CompanyID != company.ID || !job.IsActive || job.TotalPositions != 1 || job.Deadline == nil {
		t.Errorf("job = %+v", job)
	}

	_, err = svc.Create(ctx, actorFor(t, db, seekerUser.ID), valid())
	wantKind(t, err, apperr.KindForbidden)

	bad := []func(*dto.CreateJobRequest){
		func(r *dto.CreateJobRequest) { r.Title = " " },
		func(r *dto.CreateJobRequest) { r.JobType = "gig" },
		func(r *dto.CreateJobRequest) { r.ExperienceLevel = "guru" },
		func(r *dto.CreateJobRequest) { r.TotalPositions = ptr(0) },
		func(r *dto.CreateJobRequest) { r.SalaryMin = ptr(100000.0) },
		func(r *dto.CreateJobRequest) { r.SalaryMax = ptr(-1.0) },
		func(r *dto.CreateJobRequest) { r.Deadline = "next week" },
	}
	for i, mutate := range bad {
		req := valid()
		mutate(req)
		_, err := svc.Create(ctx, actor, req)
		if apperr.KindOf(err) != apperr.KindValidation {
			t.Errorf("case %d: err = %v, want validation", i, err)
		}
	}
}

func TestUpdateAndToggleJobOwnership(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewJobService(db, nil)
	ctx := context.Background()

	ownerUser, company := testutil.CreateCompany(t, db, "acme", "Acme")
	rivalUser, _ := testutil.CreateCompany(t, db, "globex", "Globex")
	job := testutil.CreateJob(t, db, company)
	owner := actorFor(t, db, ownerUser.ID)

	_, err := svc.Update(ctx, actorFor(t, db, rivalUser.ID), job.ID, &dto.UpdateJobRequest{Title: ptr("Stolen")})
	wantKind(t, err, apperr.KindForbidden)

	updated, err := svc.Update(ctx, owner, job.ID, &dto.UpdateJobRequest{Title: ptr("Staff Engineer"), SalaryMax: ptr(120000.0)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Staff Engineer" || updated.Description != "Build services" {
		t.Errorf("updated = %+v", updated)
	}

	var stored models.Job
	db.First(&stored, "id = ?", job.ID)
	if stored.Title != "Staff Engineer" || stored.SalaryMax == nil || *stored.SalaryMax != 120000 {
		t.Errorf("stored = %+v", stored)
	}

	toggled, err := svc.ToggleActive(ctx, owner, job.ID)
	if err != nil {
		t.Fatalf("ToggleActive: %v", err)
	}
	if toggled.IsActive {
		t.Error("job should be inactive after toggle")
	}
	_, err = svc.Get(ctx, nil, job.ID)
	wantKind(t, err, apperr.KindNotFound)
}

func TestDeleteJobCascades(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewJobService(db, nil)
	ctx := context.Background()

	ownerUser, company := testutil.CreateCompany(t, db, "acme", "Acme")
	_, seeker := testutil.CreateSeeker(t, db, "sam")
	job := testutil.CreateJob(t, db, company)
	app := testutil.CreateApplication(t, db, job, seeker, models.StatusPending)
	if err := db.Create(&models.ApplicationDocument{ApplicationID: app.ID, FileKey: "k", Label: "cv"}).Error; err != nil {
		t.Fatalf("create document: %v", err)
	}

	if err := svc.Delete(ctx, actorFor(t, db, ownerUser.ID), job.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	for _, model := range []interface{}{&models.Job{}, &models.JobApplication{}, &models.ApplicationDocument{}} {
		var n int64
		db.Model(model).Count(&n)
		if n != 0 {
			t.Errorf("%T rows left = %d", model, n)
		}
	}
}
