package service

import (
	"context"
	"io"

	"easyrent-backend/internal/domain"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error) // token, user
	// Authenticate resolves a bearer token to a user that still exists.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

type UserService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type BrandService interface {
	ListBrands(ctx context.Context) ([]domain.Brand, error)
	GetBrand(ctx context.Context, id string) (*domain.Brand, error)
	CreateBrand(ctx context.Context, name string) (*domain.Brand, error)
	UpdateBrand(ctx context.Context, id, name string) (*domain.Brand, error)
	DeleteBrand(ctx context.Context, id string) error
}

type ModelService interface {
	ListModels(ctx context.Context) ([]domain.Model, error)
	ListModelsByBrand(ctx context.Context, brandID string) ([]domain.Model, error)
	GetModel(ctx context.Context, id string) (*domain.Model, error)
	CreateModel(ctx context.Context, model *domain.Model) error
	UpdateModel(ctx context.Context, model *domain.Model) error
	DeleteModel(ctx context.Context, id string) error
}

type CarService interface {
	ListCars(ctx context.Context) ([]domain.Car, error)
	ListAvailableCars(ctx context.Context, start, end string) ([]domain.Car, error)
	GetCar(ctx context.Context, id string) (*domain.Car, error)
	CreateCar(ctx context.Context, car *domain.Car) error
	UpdateCar(ctx context.Context, car *domain.Car) error
	DeleteCar(ctx context.Context, id string) error
}

type RentalService interface {
	CreateRental(ctx context.Context, req domain.RentalRequest) (*domain.Rental, error)
	CancelRental(ctx context.Context, requesterID, rentalID string) error
	GetRental(ctx context.Context, id string) (*domain.Rental, error)
	ListRentals(ctx context.Context) ([]domain.Rental, error)
	ListMyRentals(ctx context.Context, requesterID string) ([]domain.Rental, error)
}

type ImageService interface {
	UploadCarImage(ctx context.Context, filename, contentType string, size int64, content io.Reader) (*domain.UploadedImage, error)
	ListCarImages(ctx context.Context) ([]domain.CarImage, error)
	DeleteCarImage(ctx context.Context, filename string) error
	// OpenCarImage returns a stored upload and its content type.
	OpenCarImage(ctx context.Context, filename string) (io.ReadCloser, string, error)
}

type EmailService interface {
	SendRentalConfirmation(ctx context.Context, to *domain.UserSummary, rental *domain.Rental) error
	SendRentalCancellation(ctx context.Context, to *domain.UserSummary, rental *domain.Rental) error
	SendPickupReminder(ctx context.Context, to *domain.UserSummary, rental *domain.Rental) error
}
