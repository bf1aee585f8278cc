package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/elevate-workforce/jobportal/internal/access"
	"github.com/elevate-workforce/jobportal/internal/apperr"
	"github.com/elevate-workforce/jobportal/internal/dto"
	"github.com/elevate-workforce/jobportal/internal/models"
	"github.com/elevate-workforce/jobportal/internal/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileService struct {
	db    *gorm.DB
	store storage.ObjectStore
}

// NewProfileService accepts a nil store; uploads then fail with
// ErrStorageUnavailable.
func NewProfileService(db *gorm.DB, store storage.ObjectStore) *ProfileService {
	return &ProfileService{db: db, store: store}
}

func (s *ProfileService) Get(ctx context.Context, actor access.Actor) (*dto.ProfileResponse, error) {
	return s.load(ctx, actor.User().ID)
}

func (s *ProfileService) Update(ctx context.Context, actor access.Actor, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	userUpdates := map[string]interface{}{}
	setString(userUpdates, "first_name", req.FirstName)
	setString(userUpdates, "last_name", req.LastName)
	setString(userUpdates, "phone_number", req.PhoneNumber)
	if req.Email != nil {
		email, err := validEmail(*req.Email)
		if err != nil {
			return nil, err
		}
		userUpdates["email"] = email
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(userUpdates) > 0 {
			if err := tx.Model(&models.User{}).Where("id = ?", actor.User().ID).Updates(userUpdates).Error; err != nil {
				return apperr.FromDB(err, "", ErrEmailTaken.Message)
			}
		}

		switch a := actor.(type) {
		case access.JobSeekerActor:
			updates := map[string]interface{}{}
			setString(updates, "location", req.Location)
			setString(updates, "skills", req.Skills)
			setString(updates, "bio", req.Bio)
			if req.ExperienceYears != nil {
				if *req.ExperienceYears < 0 {
					return apperr.Validation("experience years cannot be negative")
				}
				updates["experience_years"] = *req.ExperienceYears
			}
			if len(updates) == 0 {
				return nil
			}
			if err := tx.Model(&models.JobSeeker{}).Where("id = ?", a.Profile.ID).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update job seeker profile: %w", err)
			}
		case access.CompanyActor:
			updates := map[string]interface{}{}
			if req.CompanyName != nil {
				name := strings.TrimSpace(*req.CompanyName)
				if name == "" {
					return apperr.Validation("company name is required")
				}
				updates["company_name"] = name
			}
			setString(updates, "industry", req.Industry)
			setString(updates, "location", req.Location)
			setString(updates, "description", req.Description)
			setString(updates, "website", req.Website)
			setString(updates, "company_size", req.CompanySize)
			if len(updates) == 0 {
				return nil
			}
			if err := tx.Model(&models.Company{}).Where("id = ?", a.Profile.ID).Updates(updates).Error; err != nil {
				return apperr.FromDB(err, "", ErrCompanyNameTaken.Message)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.load(ctx, actor.User().ID)
}

func (s *ProfileService) UploadResume(ctx context.Context, actor access.Actor, up FileUpload) (string, error) {
	seeker, ok := actor.(access.JobSeekerActor)
	if !ok {
		return "", apperr.Forbidden("only job seekers can upload a resume")
	}

	key, err := storeUpload(ctx, s.store, storage.ResumeKind, seeker.Profile.ID, up)
	if err != nil {
		return "", err
	}
	if err := s.db.WithContext(ctx).Model(&models.JobSeeker{}).Where("id = ?", seeker.Profile.ID).Update("resume_key", key).Error; err != nil {
		discardObject(ctx, s.store, key)
		return "", fmt.Errorf("failed to save resume: %w", err)
	}
	discardObject(ctx, s.store, seeker.Profile.ResumeKey)
	return key, nil
}

func (s *ProfileService) UploadLogo(ctx context.Context, actor access.Actor, up FileUpload) (string, error) {
	company, ok := actor.(access.CompanyActor)
	if !ok {
		return "", apperr.Forbidden("only companies can upload a logo")
	}

	key, err := storeUpload(ctx, s.store, storage.LogoKind, company.Profile.ID, up)
	if err != nil {
		return "", err
	}
	if err := s.db.WithContext(ctx).Model(&models.Company{}).Where("id = ?", company.Profile.ID).Update("logo_key", key).Error; err != nil {
		discardObject(ctx, s.store, key)
		return "", fmt.Errorf("failed to save logo: %w", err)
	}
	discardObject(ctx, s.store, company.Profile.LogoKey)
	return key, nil
}

func (s *ProfileService) UploadPicture(ctx context.Context, actor access.Actor, up FileUpload) (string, error) {
	seeker, ok := actor.(access.JobSeekerActor)
	if !ok {
		return "", apperr.Forbidden("only job seekers can upload a profile picture")
	}

	key, err := storeUpload(ctx, s.store, storage.PictureKind, seeker.Profile.ID, up)
	if err != nil {
		return "", err
	}
	if err := s.db.WithContext(ctx).Model(&models.JobSeeker{}).Where("id = ?", seeker.Profile.ID).Update("picture_key", key).Error; err != nil {
		discardObject(ctx, s.store, key)
		return "", fmt.Errorf("failed to save profile picture: %w", err)
	}
	discardObject(ctx, s.store, seeker.Profile.PictureKey)
	return key, nil
}

func (s *ProfileService) load(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Preload("JobSeekerProfile").
		Preload("CompanyProfile").
		First(&user, "id = ?", userID).Error
	if err != nil {
		return nil, apperr.FromDB(err, "user not found", "")
	}

	withLogoURL(ctx, s.store, user.CompanyProfile)
	resp := &dto.ProfileResponse{User: dto.NewUserResponse(&user), Company: user.CompanyProfile}
	if p := user.JobSeekerProfile; p != nil {
		resp.JobSeeker = &dto.SeekerView{
			JobSeeker:  *p,
			SkillsList: p.SkillsList(),
			HasResume:  p.ResumeKey != "",
			ResumeURL:  downloadURL(ctx, s.store, p.ResumeKey),
			PictureURL: downloadURL(ctx, s.store, p.PictureKey),
		}
	}
	return resp, nil
}

func setString(updates map[string]interface{}, column string, value *string) {
	if value != nil {
		updates[column] = *value
	}
}
