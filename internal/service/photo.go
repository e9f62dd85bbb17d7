package service

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aremaru/backend/config"
	"github.com/aremaru/backend/internal/apperr"
	"github.com/aremaru/backend/internal/models"
)

// PhotoService uploads store photos to S3 and records the public URL on
// the store row.
type PhotoService struct {
	db       *gorm.DB
	s3Config *config.S3Config
}

// Ensure PhotoService implements IPhotoService
var _ IPhotoService = (*PhotoService)(nil)

// NewPhotoService creates a new PhotoService instance.
func NewPhotoService(db *gorm.DB, s3Config *config.S3Config) *PhotoService {
	return &PhotoService{
		db:       db,
		s3Config: s3Config,
	}
}

// AttachStorePhoto uploads the image and sets the store's photo URL. The
// store row is only updated after a successful upload.
func (s *PhotoService) AttachStorePhoto(ctx context.Context, storeID uuid.UUID, data []byte, contentType string) (string, error) {
	var store models.Store
	if err := s.db.WithContext(ctx).First(&store, "id = ?", storeID).Error; err != nil {
		return "", apperr.FromDB(err, "store")
	}

	ext, ok := photoExtensions[contentType]
	if !ok {
		return "", apperr.Validationf("unsupported image type %q", contentType)
	}
	if len(data) == 0 {
		return "", apperr.Validationf("image data is empty")
	}

	fileName := fmt.Sprintf("store-photos/%s%s", uuid.New().String(), ext)

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", &apperr.TransientError{Err: fmt.Errorf("failed to upload to S3: %w", err)}
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName)
	log.Printf("[PhotoService] uploaded store photo: %s", publicURL)

	if err := s.db.WithContext(ctx).Model(&store).Update("photo_url", publicURL).Error; err != nil {
		return "", apperr.FromDB(err, "store")
	}
	return publicURL, nil
}

var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}
