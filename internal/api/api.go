package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/aremaru/backend/config"
	"github.com/aremaru/backend/internal/metrics"
	"github.com/aremaru/backend/internal/middleware"
	"github.com/aremaru/backend/internal/service"
)

// SetupAPI wires services and handlers onto the router. s3Config and
// redisClient may be nil; the corresponding features degrade gracefully.
func SetupAPI(router *gin.Engine, cfg *config.Config, db *gorm.DB, redisClient *redis.Client, s3Config *config.S3Config, m *metrics.Metrics) {
	v1 := router.Group("/api/v1")
	{
		identityService := service.NewIdentityService(cfg.IdentityJWTSecret)
		profileService := service.NewProfileService(db)
		geocoder := service.NewGeocodingService(cfg)
		storeService := service.NewStoreService(db, redisClient, geocoder)

		var photoService service.IPhotoService
		if s3Config != nil {
			photoService = service.NewPhotoService(db, s3Config)
		}

		var storeLimiter, reviewLimiter *middleware.RateLimiter
		if redisClient != nil {
			storeLimiter = middleware.NewStoreCreationRateLimiter(redisClient)
			reviewLimiter = middleware.NewReviewCreationRateLimiter(redisClient)
		}

		profileHandler := NewProfileHandler(profileService, identityService)
		storeHandler := NewStoreHandler(storeService, profileService, photoService, identityService, storeLimiter, reviewLimiter, m)
		catalogHandler := NewCatalogHandler()

		profileHandler.RegisterRoutes(v1)
		storeHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
	}
}
