package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"easyrent-backend/internal/domain"
	"easyrent-backend/internal/logger"
	"easyrent-backend/internal/repository"
	"easyrent-backend/internal/utils"
)

const minCarYear = 1900

type carService struct {
	carRepo    repository.CarRepository
	modelRepo  repository.ModelRepository
	rentalRepo repository.RentalRepository
	now        func() time.Time
}

func NewCarService(carRepo repository.CarRepository, modelRepo repository.ModelRepository, rentalRepo repository.RentalRepository) CarService {
	return &carService{
		carRepo:    carRepo,
		modelRepo:  modelRepo,
		rentalRepo: rentalRepo,
		now:        time.Now,
	}
}

func (s *carService) ListCars(ctx context.Context) ([]domain.Car, error) {
	return s.carRepo.List(ctx)
}

// ListAvailableCars lists cars with no rental overlapping [start, end]. It is
// a listing aid only; rental creation does not check overlap.
func (s *carService) ListAvailableCars(ctx context.Context, start, end string) ([]domain.Car, error) {
	if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return nil, domain.Validationf("start and end dates are required")
	}
	from, err := utils.ParseRentalDate(start)
	if err != nil {
		return nil, domain.Validationf("invalid start date: %s", start)
	}
	to, err := utils.ParseRentalDate(end)
	if err != nil {
		return nil, domain.Validationf("invalid end date: %s", end)
	}
	if to.Before(from) {
		return nil, domain.Validationf("end date must not be before start date")
	}
	return s.carRepo.ListAvailable(ctx, from, to)
}

func (s *carService) GetCar(ctx context.Context, id string) (*domain.Car, error) {
	return s.carRepo.GetByID(ctx, id)
}

func (s *carService) CreateCar(ctx context.Context, car *domain.Car) error {
	if err := s.validate(ctx, car); err != nil {
		return err
	}
	if err := s.carRepo.Create(ctx, car); err != nil {
		return err
	}
	logger.Info("Car created", "car_id", car.ID, "code", car.Code)
	return nil
}

func (s *carService) UpdateCar(ctx context.Context, car *domain.Car) error {
	if _, err := s.carRepo.GetByID(ctx, car.ID); err != nil {
		return err
	}
	if err := s.validate(ctx, car); err != nil {
		return err
	}
	return s.carRepo.Update(ctx, car)
}

// DeleteCar refuses to remove a car that still has rentals.
func (s *carService) DeleteCar(ctx context.Context, id string) error {
	if _, err := s.carRepo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.rentalRepo.CountByCar(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.Conflictf("cannot delete car: %d rental(s) still reference it", count)
	}

	if err := s.carRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("Car deleted", "car_id", id)
	return nil
}

func (s *carService) validate(ctx context.Context, car *domain.Car) error {
	car.Code = strings.TrimSpace(car.Code)
	car.Color = strings.TrimSpace(car.Color)
	car.Description = strings.TrimSpace(car.Description)
	if car.Code == "" || car.ModelID == "" || car.Year == 0 || car.Color == "" || car.Description == "" || car.DailyRate == 0 {
		return domain.Validationf("code, modelId, year, color, description and dailyRate are required")
	}

	maxYear := s.now().Year() + 1
	if car.Year < minCarYear || car.Year > maxYear {
		return domain.Validationf("year must be between %d and %d", minCarYear, maxYear)
	}
	if car.DailyRate < 0 {
		return domain.Validationf("dailyRate must be positive")
	}
	if car.DailyRate > domain.MaxMoney {
		return domain.Validationf("dailyRate must not exceed %s", domain.MaxMoney)
	}
	if car.Image != nil && strings.TrimSpace(*car.Image) == "" {
		car.Image = nil
	}

	model, err := s.modelRepo.GetByID(ctx, car.ModelID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFoundf("model not found")
		}
		return err
	}
	car.Model = model

	existing, err := s.carRepo.GetByCode(ctx, car.Code)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if existing != nil && existing.ID != car.ID {
		return domain.Conflictf("car code %q already exists", car.Code)
	}
	return nil
}
