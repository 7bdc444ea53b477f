package service

import (
	"context"
	"errors"
	"strings"

	"easyrent-backend/internal/domain"
	"easyrent-backend/internal/logger"
	"easyrent-backend/internal/repository"
)

type modelService struct {
	modelRepo repository.ModelRepository
	brandRepo repository.BrandRepository
	carRepo   repository.CarRepository
}

func NewModelService(modelRepo repository.ModelRepository, brandRepo repository.BrandRepository, carRepo repository.CarRepository) ModelService {
	return &modelService{
		modelRepo: modelRepo,
		brandRepo: brandRepo,
		carRepo:   carRepo,
	}
}

func (s *modelService) ListModels(ctx context.Context) ([]domain.Model, error) {
	return s.modelRepo.List(ctx)
}

func (s *modelService) ListModelsByBrand(ctx context.Context, brandID string) ([]domain.Model, error) {
	if _, err := s.brandRepo.GetByID(ctx, brandID); err != nil {
		return nil, err
	}
	return s.modelRepo.ListByBrand(ctx, brandID)
}

// GetModel returns the model with its brand and cars.
func (s *modelService) GetModel(ctx context.Context, id string) (*domain.Model, error) {
	model, err := s.modelRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cars, err := s.carRepo.ListByModel(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range cars {
		cars[i].Model = nil
	}
	model.Cars = cars
	return model, nil
}

func (s *modelService) CreateModel(ctx context.Context, model *domain.Model) error {
	if err := s.validate(ctx, model); err != nil {
		return err
	}
	if err := s.modelRepo.Create(ctx, model); err != nil {
		return err
	}
	logger.Info("Model created", "model_id", model.ID, "code", model.Code)
	return nil
}

func (s *modelService) UpdateModel(ctx context.Context, model *domain.Model) error {
	if _, err := s.modelRepo.GetByID(ctx, model.ID); err != nil {
		return err
	}
	if err := s.validate(ctx, model); err != nil {
		return err
	}
	return s.modelRepo.Update(ctx, model)
}

// DeleteModel refuses to remove a model that still has cars.
func (s *modelService) DeleteModel(ctx context.Context, id string) error {
	if _, err := s.modelRepo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.carRepo.CountByModel(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.Conflictf("cannot delete model: %d car(s) still reference it", count)
	}

	if err := s.modelRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("Model deleted", "model_id", id)
	return nil
}

func (s *modelService) validate(ctx context.Context, model *domain.Model) error {
	model.Code = strings.TrimSpace(model.Code)
	model.Description = strings.TrimSpace(model.Description)
	if model.Code == "" || model.Description == "" || model.BrandID == "" {
		return domain.Validationf("code, description and brandId are required")
	}

	brand, err := s.brandRepo.GetByID(ctx, model.BrandID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFoundf("brand not found")
		}
		return err
	}
	model.Brand = brand

	existing, err := s.modelRepo.GetByCode(ctx, model.Code)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if existing != nil && existing.ID != model.ID {
		return domain.Conflictf("model code %q already exists", model.Code)
	}
	return nil
}
