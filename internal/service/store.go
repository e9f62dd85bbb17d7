package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/aremaru/backend/internal/apperr"
	"github.com/aremaru/backend/internal/models"
)

const statsCacheTTL = 5 * time.Minute

// StoreService handles store and review operations.
type StoreService struct {
	db       *gorm.DB
	redis    *redis.Client
	geocoder Geocoder
}

// Ensure StoreService implements IStoreService
var _ IStoreService = (*StoreService)(nil)

// NewStoreService creates a new StoreService instance. redisClient and
// geocoder may be nil; stats caching and geocoding then degrade
// gracefully.
func NewStoreService(db *gorm.DB, redisClient *redis.Client, geocoder Geocoder) *StoreService {
	return &StoreService{
		db:       db,
		redis:    redisClient,
		geocoder: geocoder,
	}
}

// StoreWithStats pairs a store with its derived review statistics for
// listing views.
type StoreWithStats struct {
	models.Store
	Stats StoreStats `json:"stats"`
}

// ListStores returns stores newest-first with their review statistics.
// A non-empty nameFilter restricts to stores whose name contains the
// filter, case-insensitively.
func (s *StoreService) ListStores(ctx context.Context, nameFilter string) ([]StoreWithStats, error) {
	query := s.db.WithContext(ctx).Preload("Reviews")

	if nameFilter = strings.TrimSpace(nameFilter); nameFilter != "" {
		like := "%" + strings.ToLower(nameFilter) + "%"
		query = query.Where("LOWER(name) LIKE ?", like)
	}

	var stores []models.Store
	if err := query.Order("created_at DESC").Find(&stores).Error; err != nil {
		return nil, apperr.FromDB(err, "stores")
	}

	result := make([]StoreWithStats, len(stores))
	for i, store := range stores {
		result[i] = StoreWithStats{
			Store: store,
			Stats: ComputeStoreStats(store.Reviews),
		}
		result[i].Reviews = nil
	}
	return result, nil
}

// GetStore retrieves a single store by id.
func (s *StoreService) GetStore(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := s.db.WithContext(ctx).First(&store, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, "store")
	}
	return &store, nil
}

// CreateStore registers a store. Geocoding is best-effort: the store is
// written immediately with nil coordinates when the address cannot be
// resolved.
func (s *StoreService) CreateStore(ctx context.Context, profileID uuid.UUID, name, address string) (*models.Store, error) {
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)
	if name == "" {
		return nil, apperr.Validationf("store name is required")
	}
	if address == "" {
		return nil, apperr.Validationf("store address is required")
	}

	store := models.Store{
		Name:      name,
		Address:   address,
		CreatedBy: profileID,
	}

	if s.geocoder != nil {
		coords, err := s.geocoder.Resolve(ctx, address)
		if err != nil {
			log.Printf("[StoreService] geocoding failed for %q: %v", address, err)
		} else if coords != nil {
			store.Lat = &coords.Lat
			store.Lng = &coords.Lng
		}
	}

	if err := s.db.WithContext(ctx).Create(&store).Error; err != nil {
		return nil, apperr.FromDB(err, "store")
	}
	return &store, nil
}

// ListReviewsForStore returns a store's reviews newest-first, each joined
// with the authoring profile and the reviewed child's nickname and
// allergies.
func (s *StoreService) ListReviewsForStore(ctx context.Context, storeID uuid.UUID) ([]models.Review, error) {
	if _, err := s.GetStore(ctx, storeID); err != nil {
		return nil, err
	}

	var reviews []models.Review
	err := s.db.WithContext(ctx).
		Preload("Profile").
		Preload("Child").
		Preload("Child.Allergies").
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, apperr.FromDB(err, "reviews")
	}
	return reviews, nil
}

// AddReview validates and posts a review. The referenced child must
// belong to the authoring profile; that invariant is enforced here, not
// trusted from the client's child selector.
func (s *StoreService) AddReview(ctx context.Context, profileID, storeID, childID uuid.UUID, comment string, canEat bool, staffUnderstanding int) (*models.Review, error) {
	childIDStr := ""
	if childID != uuid.Nil {
		childIDStr = childID.String()
	}
	comment, err := models.ValidateReview(childIDStr, comment, staffUnderstanding)
	if err != nil {
		return nil, err
	}

	if _, err := s.GetStore(ctx, storeID); err != nil {
		return nil, err
	}

	var child models.Child
	if err := s.db.WithContext(ctx).First(&child, "id = ?", childID).Error; err != nil {
		return nil, apperr.FromDB(err, "child")
	}
	if child.ProfileID != profileID {
		return nil, apperr.Validationf("child does not belong to your profile")
	}

	review := models.Review{
		StoreID:            storeID,
		ProfileID:          profileID,
		ChildID:            childID,
		Comment:            comment,
		CanEat:             canEat,
		StaffUnderstanding: staffUnderstanding,
	}
	if err := s.db.WithContext(ctx).Create(&review).Error; err != nil {
		return nil, apperr.FromDB(err, "review")
	}

	s.invalidateStats(ctx, storeID)
	return &review, nil
}

// StoreStats returns the derived statistics for one store, served from
// the Redis cache when fresh. Cache failures fall back to recomputation;
// the statistics reflect read-time state either way.
func (s *StoreService) StoreStats(ctx context.Context, storeID uuid.UUID) (*StoreStats, error) {
	if s.redis != nil {
		if data, err := s.redis.Get(ctx, statsCacheKey(storeID)).Bytes(); err == nil {
			var stats StoreStats
			if err := json.Unmarshal(data, &stats); err == nil {
				return &stats, nil
			}
		}
	}

	if _, err := s.GetStore(ctx, storeID); err != nil {
		return nil, err
	}

	var reviews []models.Review
	if err := s.db.WithContext(ctx).Where("store_id = ?", storeID).Find(&reviews).Error; err != nil {
		return nil, apperr.FromDB(err, "reviews")
	}

	stats := ComputeStoreStats(reviews)

	if s.redis != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := s.redis.Set(ctx, statsCacheKey(storeID), data, statsCacheTTL).Err(); err != nil {
				log.Printf("[StoreService] failed to cache stats for store %s: %v", storeID, err)
			}
		}
	}
	return &stats, nil
}

func (s *StoreService) invalidateStats(ctx context.Context, storeID uuid.UUID) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, statsCacheKey(storeID)).Err(); err != nil {
		log.Printf("[StoreService] failed to invalidate stats for store %s: %v", storeID, err)
	}
}

func statsCacheKey(storeID uuid.UUID) string {
	return "store:stats:" + storeID.String()
}
