package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aremaru/backend/internal/apperr"
	"github.com/aremaru/backend/internal/models"
)

// ProfileService handles profile, child and allergy operations.
type ProfileService struct {
	db *gorm.DB
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance.
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{
		db: db,
	}
}

// GetOrCreateProfile looks up the profile for an external user id,
// creating it on the first authenticated visit. Idempotent under
// concurrent first visits: losing the insert race to the unique
// constraint falls back to re-fetching the winner's row.
func (s *ProfileService) GetOrCreateProfile(ctx context.Context, externalUserID string) (*models.Profile, error) {
	if strings.TrimSpace(externalUserID) == "" {
		return nil, apperr.Validationf("external user id is required")
	}

	var profile models.Profile
	err := s.db.WithContext(ctx).Where("user_id = ?", externalUserID).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.FromDB(err, "profile")
	}

	profile = models.Profile{UserID: externalUserID}
	if err := s.db.WithContext(ctx).Create(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race with a concurrent first visit.
			var existing models.Profile
			if err := s.db.WithContext(ctx).Where("user_id = ?", externalUserID).First(&existing).Error; err != nil {
				return nil, apperr.FromDB(err, "profile")
			}
			return &existing, nil
		}
		return nil, apperr.FromDB(err, "profile")
	}
	return &profile, nil
}

// UpdateDisplayName sets the profile's display name. An empty name clears
// it.
func (s *ProfileService) UpdateDisplayName(ctx context.Context, profileID uuid.UUID, displayName string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).First(&profile, "id = ?", profileID).Error; err != nil {
		return nil, apperr.FromDB(err, "profile")
	}

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		profile.DisplayName = nil
	} else {
		profile.DisplayName = &displayName
	}

	if err := s.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, apperr.FromDB(err, "profile")
	}
	return &profile, nil
}

// ListChildrenWithAllergies returns the profile's children oldest-first,
// each with its allergies nested. The ordering is part of the contract.
func (s *ProfileService) ListChildrenWithAllergies(ctx context.Context, profileID uuid.UUID) ([]models.Child, error) {
	var children []models.Child
	err := s.db.WithContext(ctx).
		Preload("Allergies").
		Where("profile_id = ?", profileID).
		Order("created_at ASC").
		Find(&children).Error
	if err != nil {
		return nil, apperr.FromDB(err, "children")
	}
	return children, nil
}

// AddChild validates and registers a child under the profile.
func (s *ProfileService) AddChild(ctx context.Context, profileID uuid.UUID, nickname string, birthYear, birthMonth *int) (*models.Child, error) {
	nickname, err := models.ValidateChild(nickname, birthYear, birthMonth)
	if err != nil {
		return nil, err
	}

	child := models.Child{
		ProfileID:  profileID,
		Nickname:   nickname,
		BirthYear:  birthYear,
		BirthMonth: birthMonth,
	}
	if err := s.db.WithContext(ctx).Create(&child).Error; err != nil {
		return nil, apperr.FromDB(err, "child")
	}
	child.Allergies = []models.Allergy{}
	return &child, nil
}

// RemoveChild deletes a child together with its allergies and reviews.
// All three deletes run in one transaction so no orphaned rows are ever
// observable, even on stores that do not enforce the cascade constraints.
func (s *ProfileService) RemoveChild(ctx context.Context, profileID, childID uuid.UUID) error {
	child, err := s.ownedChild(ctx, profileID, childID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("child_id = ?", child.ID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("child_id = ?", child.ID).Delete(&models.Allergy{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Child{}, "id = ?", child.ID).Error
	})
	if err != nil {
		return apperr.FromDB(err, "child")
	}
	return nil
}

// AddAllergy validates and attaches an allergy to one of the profile's
// children.
func (s *ProfileService) AddAllergy(ctx context.Context, profileID, childID uuid.UUID, allergenName string, severity models.Severity) (*models.Allergy, error) {
	name, severity, err := models.ValidateAllergy(allergenName, severity)
	if err != nil {
		return nil, err
	}

	child, err := s.ownedChild(ctx, profileID, childID)
	if err != nil {
		return nil, err
	}

	allergy := models.Allergy{
		ChildID:      child.ID,
		AllergenName: name,
		Severity:     severity,
	}
	if err := s.db.WithContext(ctx).Create(&allergy).Error; err != nil {
		return nil, apperr.FromDB(err, "allergy")
	}
	return &allergy, nil
}

// RemoveAllergy deletes an allergy after checking that it belongs to one
// of the profile's children.
func (s *ProfileService) RemoveAllergy(ctx context.Context, profileID, allergyID uuid.UUID) error {
	var allergy models.Allergy
	if err := s.db.WithContext(ctx).First(&allergy, "id = ?", allergyID).Error; err != nil {
		return apperr.FromDB(err, "allergy")
	}

	if _, err := s.ownedChild(ctx, profileID, allergy.ChildID); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&models.Allergy{}, "id = ?", allergyID).Error; err != nil {
		return apperr.FromDB(err, "allergy")
	}
	return nil
}

// ownedChild fetches a child and verifies it belongs to the profile.
func (s *ProfileService) ownedChild(ctx context.Context, profileID, childID uuid.UUID) (*models.Child, error) {
	var child models.Child
	if err := s.db.WithContext(ctx).First(&child, "id = ?", childID).Error; err != nil {
		return nil, apperr.FromDB(err, "child")
	}
	if child.ProfileID != profileID {
		return nil, apperr.Validationf("child does not belong to your profile")
	}
	return &child, nil
}
