package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/aremaru/backend/internal/models"
)

// IProfileService defines the interface for profile, child and allergy
// operations.
type IProfileService interface {
	GetOrCreateProfile(ctx context.Context, externalUserID string) (*models.Profile, error)
	UpdateDisplayName(ctx context.Context, profileID uuid.UUID, displayName string) (*models.Profile, error)
	ListChildrenWithAllergies(ctx context.Context, profileID uuid.UUID) ([]models.Child, error)
	AddChild(ctx context.Context, profileID uuid.UUID, nickname string, birthYear, birthMonth *int) (*models.Child, error)
	RemoveChild(ctx context.Context, profileID, childID uuid.UUID) error
	AddAllergy(ctx context.Context, profileID, childID uuid.UUID, allergenName string, severity models.Severity) (*models.Allergy, error)
	RemoveAllergy(ctx context.Context, profileID, allergyID uuid.UUID) error
}

// IStoreService defines the interface for store and review operations.
type IStoreService interface {
	ListStores(ctx context.Context, nameFilter string) ([]StoreWithStats, error)
	GetStore(ctx context.Context, id uuid.UUID) (*models.Store, error)
	CreateStore(ctx context.Context, profileID uuid.UUID, name, address string) (*models.Store, error)
	ListReviewsForStore(ctx context.Context, storeID uuid.UUID) ([]models.Review, error)
	AddReview(ctx context.Context, profileID, storeID, childID uuid.UUID, comment string, canEat bool, staffUnderstanding int) (*models.Review, error)
	StoreStats(ctx context.Context, storeID uuid.UUID) (*StoreStats, error)
}

// Geocoder resolves a free-text address to coordinates. A nil result with
// a nil error means the address could not be resolved; callers must treat
// that as a normal outcome, never a failure.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (*Coordinates, error)
}

// IPhotoService uploads store photos to object storage.
type IPhotoService interface {
	AttachStorePhoto(ctx context.Context, storeID uuid.UUID, data []byte, contentType string) (string, error)
}
