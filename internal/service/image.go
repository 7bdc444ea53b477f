package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"easyrent-backend/internal/config"
	"easyrent-backend/internal/domain"
	"easyrent-backend/internal/logger"
	"easyrent-backend/internal/storage"

	"github.com/google/uuid"
)

// extension used for stored files, by content type
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type imageService struct {
	store        storage.ImageStorage // nil in base64 mode
	mode         string
	maxSize      int64
	allowedTypes map[string]bool
}

func NewImageService(store storage.ImageStorage, cfg config.StorageConfig) ImageService {
	allowed := make(map[string]bool, len(cfg.AllowedTypes))
	for _, t := range cfg.AllowedTypes {
		allowed[strings.ToLower(t)] = true
	}
	return &imageService{
		store:        store,
		mode:         cfg.Mode,
		maxSize:      cfg.MaxFileSizeBytes(),
		allowedTypes: allowed,
	}
}

func (s *imageService) UploadCarImage(ctx context.Context, filename, contentType string, size int64, content io.Reader) (*domain.UploadedImage, error) {
	contentType = normalizeContentType(contentType, filename)
	if !s.allowedTypes[contentType] {
		return nil, domain.Validationf("file type not allowed, use JPEG, JPG, PNG or WebP")
	}
	if size > s.maxSize {
		return nil, domain.Validationf("file too large, maximum is %d MB", s.maxSize>>20)
	}

	// Read one byte past the limit to catch lying size headers
	data, err := io.ReadAll(io.LimitReader(content, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return nil, domain.Validationf("file too large, maximum is %d MB", s.maxSize>>20)
	}
	if len(data) == 0 {
		return nil, domain.Validationf("no file uploaded")
	}

	key := uuid.New().String() + imageExtensions[contentType]
	result := &domain.UploadedImage{
		Filename:    key,
		ContentType: contentType,
		Size:        int64(len(data)),
	}

	if s.mode == config.StorageModeBase64 || s.store == nil {
		result.Base64 = fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
		logger.Info("Car image encoded inline", "filename", filename, "size", result.Size)
		return result, nil
	}

	if err := s.store.Save(ctx, key, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	result.Path = s.store.PublicPath(key)
	logger.Info("Car image stored", "key", key, "original", filename, "size", result.Size)
	return result, nil
}

// ListCarImages returns the stock images followed by the uploaded ones.
func (s *imageService) ListCarImages(ctx context.Context) ([]domain.CarImage, error) {
	images := make([]domain.CarImage, 0, len(domain.StockImages))
	for _, name := range domain.StockImages {
		images = append(images, domain.CarImage{
			Filename:      name,
			Path:          domain.StockImagePath(name),
			IsPreExisting: true,
		})
	}

	if s.store == nil {
		return images, nil
	}
	files, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		images = append(images, domain.CarImage{
			Filename: f.Key,
			Path:     s.store.PublicPath(f.Key),
		})
	}
	return images, nil
}

func (s *imageService) DeleteCarImage(ctx context.Context, filename string) error {
	if domain.IsStockImage(filename) {
		return domain.Validationf("stock images cannot be deleted")
	}
	// Inline images live in the car record only
	if s.store == nil {
		return nil
	}

	exists, _, err := s.store.Exists(ctx, filename)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidKey) {
			return domain.Validationf("invalid filename")
		}
		return err
	}
	if !exists {
		return domain.NotFoundf("image not found")
	}
	if err := s.store.Delete(ctx, filename); err != nil {
		return err
	}
	logger.Info("Car image deleted", "key", filename)
	return nil
}

func (s *imageService) OpenCarImage(ctx context.Context, filename string) (io.ReadCloser, string, error) {
	if s.store == nil {
		return nil, "", domain.NotFoundf("image not found")
	}
	rc, err := s.store.Open(ctx, filename)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidKey) {
			return nil, "", domain.NotFoundf("image not found")
		}
		return nil, "", err
	}

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return rc, contentType, nil
}

// normalizeContentType strips parameters and falls back to the file
// extension when the client sent no usable type.
func normalizeContentType(contentType, filename string) string {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediaType
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if contentType == "" || contentType == "application/octet-stream" {
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".jpg", ".jpeg":
			return "image/jpeg"
		case ".png":
			return "image/png"
		case ".webp":
			return "image/webp"
		}
	}
	return contentType
}
