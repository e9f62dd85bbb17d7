package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aremaru/backend/internal/metrics"
	"github.com/aremaru/backend/internal/middleware"
	"github.com/aremaru/backend/internal/models"
	"github.com/aremaru/backend/internal/service"
)

const maxPhotoBytes = 5 << 20

// StoreHandler serves the store and review endpoints.
type StoreHandler struct {
	storeService    service.IStoreService
	profileService  service.IProfileService
	photoService    service.IPhotoService
	identityService middleware.TokenValidator
	storeLimiter    *middleware.RateLimiter
	reviewLimiter   *middleware.RateLimiter
	metrics         *metrics.Metrics
}

// NewStoreHandler creates a new StoreHandler. photoService may be nil
// when object storage is not configured; the photo endpoint then reports
// unavailable. The rate limiters may be nil when Redis is not configured;
// the write endpoints are then unthrottled.
func NewStoreHandler(
	storeService service.IStoreService,
	profileService service.IProfileService,
	photoService service.IPhotoService,
	identityService middleware.TokenValidator,
	storeLimiter *middleware.RateLimiter,
	reviewLimiter *middleware.RateLimiter,
	m *metrics.Metrics,
) *StoreHandler {
	return &StoreHandler{
		storeService:    storeService,
		profileService:  profileService,
		photoService:    photoService,
		identityService: identityService,
		storeLimiter:    storeLimiter,
		reviewLimiter:   reviewLimiter,
		metrics:         m,
	}
}

// RegisterRoutes registers the store routes.
func (h *StoreHandler) RegisterRoutes(router *gin.RouterGroup) {
	stores := router.Group("/stores")
	{
		stores.GET("", h.ListStores)
		stores.GET("/:id", h.GetStore)
		stores.GET("/:id/reviews", h.ListReviews)
		stores.POST("", h.writeChain(h.storeLimiter, h.CreateStore)...)
		stores.POST("/:id/reviews", h.writeChain(h.reviewLimiter, h.AddReview)...)
		stores.POST("/:id/photo", middleware.AuthMiddleware(h.identityService), h.UploadPhoto)
	}
}

// writeChain builds the handler chain for an authenticated write: auth,
// then the rate limiter when one is configured.
func (h *StoreHandler) writeChain(limiter *middleware.RateLimiter, handler gin.HandlerFunc) []gin.HandlerFunc {
	chain := []gin.HandlerFunc{middleware.AuthMiddleware(h.identityService)}
	if limiter != nil {
		chain = append(chain, limiter.RateLimitMiddleware())
	}
	return append(chain, handler)
}

// currentProfile resolves the authenticated external user to a profile.
func (h *StoreHandler) currentProfile(c *gin.Context) (*models.Profile, bool) {
	externalUserID, exists := c.Get("external_user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return nil, false
	}

	profile, err := h.profileService.GetOrCreateProfile(c.Request.Context(), externalUserID.(string))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return profile, true
}

// ListStores returns stores newest-first with review statistics,
// optionally filtered by a case-insensitive name substring (?q=).
func (h *StoreHandler) ListStores(c *gin.Context) {
	stores, err := h.storeService.ListStores(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stores": stores})
}

// GetStore returns one store with its derived statistics.
func (h *StoreHandler) GetStore(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid store id"})
		return
	}

	store, err := h.storeService.GetStore(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	stats, err := h.storeService.StoreStats(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"store": store, "stats": stats})
}

// CreateStore registers a store. Geocoding is best-effort; the store is
// created even when the address cannot be resolved.
func (h *StoreHandler) CreateStore(c *gin.Context) {
	profile, ok := h.currentProfile(c)
	if !ok {
		return
	}

	var req CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store, err := h.storeService.CreateStore(c.Request.Context(), profile.ID, req.Name, req.Address)
	if err != nil {
		writeError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.StoresCreated.Inc()
		if store.Lat == nil {
			h.metrics.GeocodeUnresolved.Inc()
		}
	}
	c.JSON(http.StatusCreated, store)
}

// ListReviews returns a store's review feed newest-first, each entry
// joined with the author's display name and the reviewed child.
func (h *StoreHandler) ListReviews(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid store id"})
		return
	}

	reviews, err := h.storeService.ListReviewsForStore(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	result := make([]ReviewResponse, len(reviews))
	for i, review := range reviews {
		allergens := make([]string, len(review.Child.Allergies))
		for j, allergy := range review.Child.Allergies {
			allergens[j] = allergy.AllergenName
		}
		result[i] = ReviewResponse{
			ID:                 review.ID,
			Comment:            review.Comment,
			CanEat:             review.CanEat,
			StaffUnderstanding: review.StaffUnderstanding,
			CreatedAt:          review.CreatedAt,
			AuthorDisplayName:  review.Profile.DisplayName,
			Child: ReviewChild{
				Nickname:  review.Child.Nickname,
				Allergens: allergens,
			},
		}
	}
	c.JSON(http.StatusOK, gin.H{"reviews": result})
}

// AddReview posts a review for one of the caller's children.
func (h *StoreHandler) AddReview(c *gin.Context) {
	profile, ok := h.currentProfile(c)
	if !ok {
		return
	}

	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid store id"})
		return
	}

	var req AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// An unparseable child id reaches the service as uuid.Nil and fails
	// validation there with the same message as a missing one.
	childID, _ := uuid.Parse(req.ChildID)

	review, err := h.storeService.AddReview(
		c.Request.Context(),
		profile.ID, storeID, childID,
		req.Comment, req.CanEat, req.StaffUnderstanding,
	)
	if err != nil {
		writeError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.ReviewsCreated.Inc()
	}
	c.JSON(http.StatusCreated, review)
}

// UploadPhoto attaches a photo to a store via multipart form field
// "photo".
func (h *StoreHandler) UploadPhoto(c *gin.Context) {
	if _, ok := h.currentProfile(c); !ok {
		return
	}

	if h.photoService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "photo storage not configured"})
		return
	}

	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid store id"})
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	if fileHeader.Size > maxPhotoBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo exceeds the 5MB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read photo"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read photo"})
		return
	}

	url, err := h.photoService.AttachStorePhoto(c.Request.Context(), storeID, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"photo_url": url})
}
