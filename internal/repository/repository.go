package repository

import (
	"context"
	"errors"
	"time"

	"easyrent-backend/internal/domain"
)

// Lookups of a single row return an error wrapping domain.ErrNotFound when the
// row does not exist. Writes that break a unique constraint return an error
// wrapping both domain.ErrConflict and ErrDuplicate; foreign key violations
// wrap domain.ErrConflict only.

// ErrDuplicate marks a unique constraint violation.
var ErrDuplicate = errors.New("duplicate key")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type BrandRepository interface {
	Create(ctx context.Context, brand *domain.Brand) error
	GetByID(ctx context.Context, id string) (*domain.Brand, error)
	GetByName(ctx context.Context, name string) (*domain.Brand, error)
	List(ctx context.Context) ([]domain.Brand, error)
	Update(ctx context.Context, brand *domain.Brand) error
	Delete(ctx context.Context, id string) error
}

type ModelRepository interface {
	Create(ctx context.Context, model *domain.Model) error
	GetByID(ctx context.Context, id string) (*domain.Model, error)
	GetByCode(ctx context.Context, code string) (*domain.Model, error)
	List(ctx context.Context) ([]domain.Model, error)
	ListByBrand(ctx context.Context, brandID string) ([]domain.Model, error)
	Update(ctx context.Context, model *domain.Model) error
	Delete(ctx context.Context, id string) error
	CountByBrand(ctx context.Context, brandID string) (int64, error)
}

type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, id string) (*domain.Car, error)
	GetByCode(ctx context.Context, code string) (*domain.Car, error)
	List(ctx context.Context) ([]domain.Car, error)
	ListByModel(ctx context.Context, modelID string) ([]domain.Car, error)
	// ListAvailable returns cars without any rental overlapping [start, end].
	ListAvailable(ctx context.Context, start, end time.Time) ([]domain.Car, error)
	Update(ctx context.Context, car *domain.Car) error
	UpdateImage(ctx context.Context, id string, image *string) error
	Delete(ctx context.Context, id string) error
	CountByModel(ctx context.Context, modelID string) (int64, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id string) (*domain.Rental, error)
	// GetLatest returns the most recently created rental.
	GetLatest(ctx context.Context) (*domain.Rental, error)
	List(ctx context.Context) ([]domain.Rental, error)
	ListByRequester(ctx context.Context, requesterID string) ([]domain.Rental, error)
	ListByCar(ctx context.Context, carID string) ([]domain.Rental, error)
	// ListByPickupRange returns rentals whose pickup falls in [from, to).
	ListByPickupRange(ctx context.Context, from, to time.Time) ([]domain.Rental, error)
	Delete(ctx context.Context, id string) error
	CountByCar(ctx context.Context, carID string) (int64, error)
}
