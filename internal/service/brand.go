package service

import (
	"context"
	"errors"
	"strings"

	"easyrent-backend/internal/domain"
	"easyrent-backend/internal/logger"
	"easyrent-backend/internal/repository"
)

type brandService struct {
	brandRepo repository.BrandRepository
	modelRepo repository.ModelRepository
}

func NewBrandService(brandRepo repository.BrandRepository, modelRepo repository.ModelRepository) BrandService {
	return &brandService{
		brandRepo: brandRepo,
		modelRepo: modelRepo,
	}
}

// ListBrands returns every brand with its models attached.
func (s *brandService) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	brands, err := s.brandRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	models, err := s.modelRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	byBrand := make(map[string][]domain.Model, len(brands))
	for _, m := range models {
		m.Brand = nil
		byBrand[m.BrandID] = append(byBrand[m.BrandID], m)
	}
	for i := range brands {
		brands[i].Models = byBrand[brands[i].ID]
		if brands[i].Models == nil {
			brands[i].Models = []domain.Model{}
		}
	}
	return brands, nil
}

func (s *brandService) GetBrand(ctx context.Context, id string) (*domain.Brand, error) {
	brand, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	models, err := s.modelRepo.ListByBrand(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range models {
		models[i].Brand = nil
	}
	brand.Models = models
	return brand, nil
}

func (s *brandService) CreateBrand(ctx context.Context, name string) (*domain.Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Validationf("brand name is required")
	}
	if err := s.ensureNameFree(ctx, name, ""); err != nil {
		return nil, err
	}

	brand := &domain.Brand{Name: name}
	if err := s.brandRepo.Create(ctx, brand); err != nil {
		return nil, err
	}
	logger.Info("Brand created", "brand_id", brand.ID, "name", name)
	return brand, nil
}

func (s *brandService) UpdateBrand(ctx context.Context, id, name string) (*domain.Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Validationf("brand name is required")
	}

	brand, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, name, id); err != nil {
		return nil, err
	}

	brand.Name = name
	if err := s.brandRepo.Update(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// DeleteBrand refuses to remove a brand that still has models.
func (s *brandService) DeleteBrand(ctx context.Context, id string) error {
	if _, err := s.brandRepo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.modelRepo.CountByBrand(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.Conflictf("cannot delete brand: %d model(s) still reference it", count)
	}

	if err := s.brandRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("Brand deleted", "brand_id", id)
	return nil
}

func (s *brandService) ensureNameFree(ctx context.Context, name, selfID string) error {
	existing, err := s.brandRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return domain.Conflictf("brand %q already exists", name)
	}
	return nil
}
