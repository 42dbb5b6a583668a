package catalog

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/pimify/backend/internal/domain/catalog"
	"github.com/pimify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MaxImageSize bounds a single image upload
const MaxImageSize = 10 << 20

var allowedImageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// UploadImageInput carries a multipart image upload
type UploadImageInput struct {
	Filename string
	Size     int64
	Body     io.Reader
	AltText  string
}

// ImageService manages product images and their stored objects
type ImageService struct {
	productRepo catalog.ProductRepository
	imageRepo   catalog.ProductImageRepository
	storage     ObjectStorageService
	logger      *zap.Logger
}

// NewImageService creates a new ImageService
func NewImageService(
	productRepo catalog.ProductRepository,
	imageRepo catalog.ProductImageRepository,
	storage ObjectStorageService,
	logger *zap.Logger,
) *ImageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageService{
		productRepo: productRepo,
		imageRepo:   imageRepo,
		storage:     storage,
		logger:      logger,
	}
}

// ListByProduct returns the product's images, or ErrNotFound for an unknown product
func (s *ImageService) ListByProduct(ctx context.Context, productID string) ([]ProductImageResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	images, err := s.imageRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return imageResponses(ctx, s.storage, images)
}

// Upload stores the file under product_images/ and records it
func (s *ImageService) Upload(ctx context.Context, productID string, in UploadImageInput) (*ProductImageResponse, error) {
	ext := strings.ToLower(path.Ext(in.Filename))
	contentType, ok := allowedImageTypes[ext]
	if !ok {
		return nil, shared.NewValidationError("image", "Upload a valid image. Allowed types: jpg, jpeg, png, gif, webp")
	}
	if in.Size <= 0 {
		return nil, shared.NewValidationError("image", "The submitted file is empty")
	}
	if in.Size > MaxImageSize {
		return nil, shared.NewValidationError("image", "Image cannot exceed 10 MB")
	}
	if len(in.AltText) > 255 {
		return nil, shared.NewValidationError("alt_text", "Alt text cannot exceed 255 characters")
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	key := path.Join(catalog.ProductImageDir, productID, uuid.NewString()+ext)
	if err := s.storage.PutObject(ctx, key, in.Body, in.Size, contentType); err != nil {
		return nil, err
	}

	image, err := catalog.NewProductImage(productID, key, in.AltText)
	if err != nil {
		s.discard(ctx, key)
		return nil, err
	}
	if err := s.imageRepo.Save(ctx, image); err != nil {
		s.discard(ctx, key)
		return nil, err
	}

	s.logger.Info("product image uploaded",
		zap.String("product_id", productID),
		zap.Uint("image_id", image.ID),
		zap.String("key", key))

	responses, err := imageResponses(ctx, s.storage, []catalog.ProductImage{*image})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// Delete removes the record, then its stored object. A storage failure
// after the row is gone is logged and not returned.
func (s *ImageService) Delete(ctx context.Context, id uint) error {
	image, err := s.imageRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.imageRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.storage.DeleteObject(ctx, image.Image); err != nil {
		s.logger.Warn("failed to delete image object",
			zap.Uint("image_id", id),
			zap.String("key", image.Image),
			zap.Error(err))
	}
	s.logger.Info("product image deleted", zap.Uint("image_id", id), zap.String("product_id", image.ProductID))
	return nil
}

func (s *ImageService) discard(ctx context.Context, key string) {
	if err := s.storage.DeleteObject(ctx, key); err != nil {
		s.logger.Warn("failed to discard orphaned upload", zap.String("key", key), zap.Error(err))
	}
}

func imageResponses(ctx context.Context, storage ObjectStorageService, images []catalog.ProductImage) ([]ProductImageResponse, error) {
	out := make([]ProductImageResponse, len(images))
	for i, img := range images {
		url, err := storage.URL(ctx, img.Image)
		if err != nil {
			return nil, err
		}
		out[i] = ProductImageResponse{ID: img.ID, Image: url, AltText: img.AltText}
	}
	return out, nil
}
