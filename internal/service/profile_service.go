// Package service contains the application's business logic layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"devconnector/internal/cache"
	"devconnector/internal/models"
	"devconnector/internal/observability"
	"devconnector/internal/repository"
	"devconnector/internal/validation"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// ProfileService implements profile management: upsert, lookup, the
// embedded experience/education collections, and the account cascade.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	db          *gorm.DB
}

// NewProfileService creates a new profile service. The gorm DB handle is
// used only for the transactional account-deletion cascade.
func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository, db *gorm.DB) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		db:          db,
	}
}

// UpsertProfileInput carries the caller-supplied profile fields. Skills is
// a comma-delimited string, split and trimmed before persistence.
type UpsertProfileInput struct {
	UserID         uint
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status"`
	Skills         string `json:"skills"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"github_username"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

// AddExperienceInput carries a new experience entry. From and To accept
// "2006-01-02" or RFC 3339 timestamps.
type AddExperienceInput struct {
	UserID      uint
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// AddEducationInput carries a new education entry.
type AddEducationInput struct {
	UserID       uint
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// GetOwnProfile returns the caller's profile.
func (s *ProfileService) GetOwnProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

// GetByUserID returns the profile of the given user.
func (s *ProfileService) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

// ListProfiles returns all profiles with their denormalized user data.
func (s *ProfileService) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	return s.profileRepo.List(ctx)
}

// UpsertProfile creates the caller's profile, or fully replaces its fields
// if one already exists. Experience and education entries survive the
// replace untouched.
func (s *ProfileService) UpsertProfile(ctx context.Context, in UpsertProfileInput) (*models.Profile, error) {
	if in.Status == "" {
		return nil, models.NewValidationError("status is required")
	}
	skills := validation.SplitSkills(in.Skills)
	if len(skills) == 0 {
		return nil, models.NewValidationError("skills is required")
	}

	profile := &models.Profile{
		UserID:         in.UserID,
		Company:        in.Company,
		Website:        in.Website,
		Location:       in.Location,
		Status:         in.Status,
		Skills:         skills,
		Bio:            in.Bio,
		GithubUsername: in.GithubUsername,
		Social: models.SocialLinks{
			Youtube:   in.Youtube,
			Twitter:   in.Twitter,
			Facebook:  in.Facebook,
			Linkedin:  in.Linkedin,
			Instagram: in.Instagram,
		},
	}

	existing, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	switch {
	case err == nil:
		profile.ID = existing.ID
		if replaceErr := s.profileRepo.Replace(ctx, profile); replaceErr != nil {
			return nil, replaceErr
		}
	case isNotFound(err):
		if createErr := s.profileRepo.Create(ctx, profile); createErr != nil {
			return nil, createErr
		}
	default:
		return nil, err
	}

	return s.profileRepo.GetByUserID(ctx, in.UserID)
}

// AddExperience inserts a new experience entry at the head of the caller's
// profile and returns the updated profile.
func (s *ProfileService) AddExperience(ctx context.Context, in AddExperienceInput) (*models.Profile, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("title is required")
	}
	if in.Company == "" {
		return nil, models.NewValidationError("company is required")
	}
	from, to, err := parseDateRange(in.From, in.To)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	entry := &models.Experience{
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        from,
		To:          to,
		Current:     in.Current,
		Description: in.Description,
	}
	if err := s.profileRepo.AddExperience(ctx, profile.ID, entry); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, in.UserID)
}

// RemoveExperience deletes an experience entry by id. An id matching no
// entry is a silent no-op; the profile is returned unchanged.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, entryID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.RemoveExperience(ctx, profile.ID, entryID); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

// AddEducation inserts a new education entry at the head of the caller's
// profile and returns the updated profile.
func (s *ProfileService) AddEducation(ctx context.Context, in AddEducationInput) (*models.Profile, error) {
	if in.School == "" {
		return nil, models.NewValidationError("school is required")
	}
	if in.Degree == "" {
		return nil, models.NewValidationError("degree is required")
	}
	if in.FieldOfStudy == "" {
		return nil, models.NewValidationError("field of study is required")
	}
	from, to, err := parseDateRange(in.From, in.To)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	entry := &models.Education{
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      in.Current,
		Description:  in.Description,
	}
	if err := s.profileRepo.AddEducation(ctx, profile.ID, entry); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, in.UserID)
}

// RemoveEducation deletes an education entry by id, no-op for unknown ids.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID, entryID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.RemoveEducation(ctx, profile.ID, entryID); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

// DeleteAccount removes the caller's posts (with their likes and
// comments), profile (with its entries) and user record. The whole
// cascade runs inside one transaction so a concurrent reader never
// observes a partially deleted account.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID uint) error {
	span, ctx := observability.NewSpan(ctx, "profile.delete_account")
	span.AddAttributes(attribute.Int("user.id", int(userID)))
	defer span.End()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var postIDs []uint
		if err := tx.Model(&models.Post{}).Where("user_id = ?", userID).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("id IN ?", postIDs).Delete(&models.Post{}).Error; err != nil {
				return err
			}
		}

		var profile models.Profile
		findErr := tx.Where("user_id = ?", userID).First(&profile).Error
		switch {
		case findErr == nil:
			if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Experience{}).Error; err != nil {
				return err
			}
			if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Education{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Profile{}, profile.ID).Error; err != nil {
				return err
			}
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			// No profile to remove; deleting the account is still valid.
		default:
			return findErr
		}

		return tx.Unscoped().Delete(&models.User{}, userID).Error
	})
	if err != nil {
		span.SetError(err)
		return models.NewInternalError(fmt.Errorf("account deletion cascade: %w", err))
	}

	cache.InvalidateUser(ctx, userID)
	cache.InvalidateProfile(ctx, userID)
	cache.InvalidatePostsList(ctx)
	return nil
}

// parseDateRange parses the required from date and optional to date.
func parseDateRange(fromStr, toStr string) (time.Time, *time.Time, error) {
	if fromStr == "" {
		return time.Time{}, nil, models.NewValidationError("from date is required")
	}
	from, err := parseDate(fromStr)
	if err != nil {
		return time.Time{}, nil, models.NewValidationError("from must be a valid date")
	}
	if toStr == "" {
		return from, nil, nil
	}
	to, err := parseDate(toStr)
	if err != nil {
		return time.Time{}, nil, models.NewValidationError("to must be a valid date")
	}
	return from, &to, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// isNotFound reports whether err is an AppError carrying the NOT_FOUND code.
func isNotFound(err error) bool {
	var appErr *models.AppError
	return errors.As(err, &appErr) && appErr.Code == models.CodeNotFound
}
