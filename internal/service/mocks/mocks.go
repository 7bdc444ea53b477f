// Package mocks holds testify mocks of the service interfaces.
package mocks

import (
	"context"
	"io"

	"easyrent-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.User), args.Error(2)
}
func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockUserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockBrandService
type MockBrandService struct {
	mock.Mock
}

func (m *MockBrandService) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Brand), args.Error(1)
}
func (m *MockBrandService) GetBrand(ctx context.Context, id string) (*domain.Brand, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Brand), args.Error(1)
}
func (m *MockBrandService) CreateBrand(ctx context.Context, name string) (*domain.Brand, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Brand), args.Error(1)
}
func (m *MockBrandService) UpdateBrand(ctx context.Context, id, name string) (*domain.Brand, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Brand), args.Error(1)
}
func (m *MockBrandService) DeleteBrand(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockModelService
type MockModelService struct {
	mock.Mock
}

func (m *MockModelService) ListModels(ctx context.Context) ([]domain.Model, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Model), args.Error(1)
}
func (m *MockModelService) ListModelsByBrand(ctx context.Context, brandID string) ([]domain.Model, error) {
	args := m.Called(ctx, brandID)
	return args.Get(0).([]domain.Model), args.Error(1)
}
func (m *MockModelService) GetModel(ctx context.Context, id string) (*domain.Model, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Model), args.Error(1)
}
func (m *MockModelService) CreateModel(ctx context.Context, model *domain.Model) error {
	args := m.Called(ctx, model)
	return args.Error(0)
}
func (m *MockModelService) UpdateModel(ctx context.Context, model *domain.Model) error {
	args := m.Called(ctx, model)
	return args.Error(0)
}
func (m *MockModelService) DeleteModel(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCarService
type MockCarService struct {
	mock.Mock
}

func (m *MockCarService) ListCars(ctx context.Context) ([]domain.Car, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Car), args.Error(1)
}
func (m *MockCarService) ListAvailableCars(ctx context.Context, start, end string) ([]domain.Car, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Car), args.Error(1)
}
func (m *MockCarService) GetCar(ctx context.Context, id string) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}
func (m *MockCarService) CreateCar(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}
func (m *MockCarService) UpdateCar(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}
func (m *MockCarService) DeleteCar(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRentalService
type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) CreateRental(ctx context.Context, req domain.RentalRequest) (*domain.Rental, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) CancelRental(ctx context.Context, requesterID, rentalID string) error {
	args := m.Called(ctx, requesterID, rentalID)
	return args.Error(0)
}
func (m *MockRentalService) GetRental(ctx context.Context, id string) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) ListRentals(ctx context.Context) ([]domain.Rental, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalService) ListMyRentals(ctx context.Context, requesterID string) ([]domain.Rental, error) {
	args := m.Called(ctx, requesterID)
	return args.Get(0).([]domain.Rental), args.Error(1)
}

// MockImageService
type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) UploadCarImage(ctx context.Context, filename, contentType string, size int64, content io.Reader) (*domain.UploadedImage, error) {
	args := m.Called(ctx, filename, contentType, size, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadedImage), args.Error(1)
}
func (m *MockImageService) ListCarImages(ctx context.Context) ([]domain.CarImage, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.CarImage), args.Error(1)
}
func (m *MockImageService) DeleteCarImage(ctx context.Context, filename string) error {
	args := m.Called(ctx, filename)
	return args.Error(0)
}
func (m *MockImageService) OpenCarImage(ctx context.Context, filename string) (io.ReadCloser, string, error) {
	args := m.Called(ctx, filename)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.String(1), args.Error(2)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRentalConfirmation(ctx context.Context, to *domain.UserSummary, rental *domain.Rental) error {
	args := m.Called(ctx, to, rental)
	return args.Error(0)
}
func (m *MockEmailService) SendRentalCancellation(ctx context.Context, to *domain.UserSummary, rental *domain.Rental) error {
	args := m.Called(ctx, to, rental)
	return args.Error(0)
}
func (m *MockEmailService) SendPickupReminder(ctx context.Context, to *domain.UserSummary, rental *domain.Rental) error {
	args := m.Called(ctx, to, rental)
	return args.Error(0)
}
