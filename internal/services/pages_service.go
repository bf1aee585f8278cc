package services

import (
	"context"

	"github.com/elevate-workforce/jobportal/internal/dto"
	"github.com/elevate-workforce/jobportal/internal/site"
)

// PagesService assembles the public landing pages.
type PagesService struct {
	jobs     *JobService
	settings site.Settings
}

func NewPagesService(jobs *JobService, settings site.Settings) *PagesService {
	return &PagesService{jobs: jobs, settings: settings}
}

func (s *PagesService) Home(ctx context.Context) (*dto.HomeResponse, error) {
	featured, total, err := s.jobs.Featured(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.HomeResponse{FeaturedJobs: featured, TotalJobs: total}, nil
}

func (s *PagesService) About(ctx context.Context) (*dto.AboutResponse, error) {
	n, err := s.jobs.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.AboutResponse{About: s.settings.About, JobPostings: n}, nil
}

func (s *PagesService) Services() dto.ServicesResponse {
	return dto.ServicesResponse{Services: s.settings.Services}
}

func (s *PagesService) Contact() site.Contact {
	return s.settings.Contact
}
