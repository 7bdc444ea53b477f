package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"easyrent-backend/internal/domain"
	"easyrent-backend/internal/logger"
	"easyrent-backend/internal/metrics"
	"easyrent-backend/internal/repository"
	"easyrent-backend/internal/utils"
)

// maxCodeAttempts bounds how often a rental insert is retried after losing
// the race for a code to a concurrent request.
const maxCodeAttempts = 5

type rentalService struct {
	rentalRepo repository.RentalRepository
	carRepo    repository.CarRepository
	userRepo   repository.UserRepository
	emailSvc   EmailService
	metrics    *metrics.Metrics
	now        func() time.Time
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	carRepo repository.CarRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
	m *metrics.Metrics,
) RentalService {
	return &rentalService{
		rentalRepo: rentalRepo,
		carRepo:    carRepo,
		userRepo:   userRepo,
		emailSvc:   emailSvc,
		metrics:    m,
		now:        time.Now,
	}
}

// validatedRequest is a rental request that passed validation, with its car
// resolved for pricing.
type validatedRequest struct {
	car    *domain.Car
	pickup time.Time
	ret    time.Time
}

// validateRequest checks a rental request against the catalog. It has no
// side effects. Overlapping rentals of the same car are allowed.
func (s *rentalService) validateRequest(ctx context.Context, req domain.RentalRequest) (*validatedRequest, error) {
	if strings.TrimSpace(req.CarID) == "" || strings.TrimSpace(req.PickupDate) == "" || strings.TrimSpace(req.ReturnDate) == "" {
		return nil, domain.Validationf("carId, pickupDate and returnDate are required")
	}

	pickup, err := utils.ParseRentalDate(req.PickupDate)
	if err != nil {
		return nil, domain.Validationf("invalid pickupDate: %s", req.PickupDate)
	}
	ret, err := utils.ParseRentalDate(req.ReturnDate)
	if err != nil {
		return nil, domain.Validationf("invalid returnDate: %s", req.ReturnDate)
	}

	car, err := s.carRepo.GetByID(ctx, req.CarID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("car not found")
		}
		return nil, err
	}

	if utils.StartOfDay(pickup).Before(utils.StartOfDay(s.now())) {
		return nil, domain.Validationf("pickup date cannot be in the past")
	}
	if !ret.After(pickup) {
		return nil, domain.Validationf("return date must be after pickup date")
	}

	return &validatedRequest{car: car, pickup: pickup, ret: ret}, nil
}

func (s *rentalService) CreateRental(ctx context.Context, req domain.RentalRequest) (*domain.Rental, error) {
	logger.EnterMethod("rentalService.CreateRental", "requester_id", req.RequesterID, "car_id", req.CarID)

	v, err := s.validateRequest(ctx, req)
	if err != nil {
		logger.ExitMethod("rentalService.CreateRental", "rejected", err.Error())
		return nil, err
	}

	breakdown, err := utils.CalculateRentalCostWithBreakdown(v.pickup, v.ret, v.car)
	if err != nil {
		return nil, domain.Validationf("%s", err.Error())
	}
	if breakdown.TotalCost > domain.MaxMoney {
		logger.ExitMethod("rentalService.CreateRental", "rejected", "price too large", "days", breakdown.Days)
		return nil, domain.Validationf("rental price exceeds the maximum of %s, choose a shorter period", domain.MaxMoney)
	}

	rental := &domain.Rental{
		CarID:       v.car.ID,
		RequesterID: req.RequesterID,
		PickupDate:  v.pickup,
		ReturnDate:  v.ret,
		Price:       breakdown.TotalCost,
		Notes:       strings.TrimSpace(req.Notes),
	}
	if err := s.insertWithCode(ctx, rental); err != nil {
		logger.ExitMethodWithError("rentalService.CreateRental", err)
		return nil, err
	}

	s.metrics.RentalCreated(rental.Price.Cents())
	logger.Info("Rental created",
		"rental_id", rental.ID,
		"code", rental.Code,
		"car_id", rental.CarID,
		"days", breakdown.Days,
		"price", rental.Price.String(),
	)

	rental.Car = v.car
	requester, err := s.userRepo.GetByID(ctx, req.RequesterID)
	if err != nil {
		logger.Warn("Could not load requester for rental confirmation", "rental_id", rental.ID, "error", err)
	} else {
		rental.Requester = requester.Summary()
		if err := s.emailSvc.SendRentalConfirmation(ctx, rental.Requester, rental); err != nil {
			logger.Warn("Failed to send rental confirmation", "rental_id", rental.ID, "error", err)
		}
	}

	logger.ExitMethod("rentalService.CreateRental", "rental_id", rental.ID)
	return rental, nil
}

// insertWithCode assigns the next LOC code and inserts the rental, retrying
// with a fresh code when a concurrent insert took it first.
func (s *rentalService) insertWithCode(ctx context.Context, rental *domain.Rental) error {
	var lastTried int64
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code, seq, err := s.nextCode(ctx, lastTried)
		if err != nil {
			return err
		}
		rental.ID = ""
		rental.Code = code

		err = s.rentalRepo.Create(ctx, rental)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return err
		}

		s.metrics.CodeConflict()
		logger.Warn("Rental code already taken, retrying", "code", code, "attempt", attempt)
		lastTried = seq
	}
	return domain.Conflictf("could not allocate a rental code, please retry")
}

// nextCode derives the code following the most recent rental. The result is
// always past lastTried so a retry never proposes the same code twice.
func (s *rentalService) nextCode(ctx context.Context, lastTried int64) (string, int64, error) {
	latestCode := ""
	latest, err := s.rentalRepo.GetLatest(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", 0, err
	}
	if latest != nil {
		latestCode = latest.Code
	}

	seq, err := utils.ParseRentalCode(utils.NextRentalCode(latestCode))
	if err != nil {
		return "", 0, err
	}
	if seq <= lastTried {
		seq = lastTried + 1
	}
	return utils.FormatRentalCode(seq), seq, nil
}

// CancelRental deletes a rental on behalf of its requester while the pickup
// is still ahead.
func (s *rentalService) CancelRental(ctx context.Context, requesterID, rentalID string) error {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return err
	}

	if rental.RequesterID != requesterID {
		return domain.Forbiddenf("only the requester can cancel this rental")
	}
	if !rental.PickupDate.After(s.now()) {
		return domain.Validationf("cannot cancel a rental that has already started")
	}

	if err := s.rentalRepo.Delete(ctx, rentalID); err != nil {
		return err
	}

	s.metrics.RentalCancelled()
	logger.Info("Rental cancelled", "rental_id", rentalID, "code", rental.Code, "requester_id", requesterID)

	if rental.Requester != nil {
		if err := s.emailSvc.SendRentalCancellation(ctx, rental.Requester, rental); err != nil {
			logger.Warn("Failed to send cancellation email", "rental_id", rentalID, "error", err)
		}
	}
	return nil
}

func (s *rentalService) GetRental(ctx context.Context, id string) (*domain.Rental, error) {
	return s.rentalRepo.GetByID(ctx, id)
}

func (s *rentalService) ListRentals(ctx context.Context) ([]domain.Rental, error) {
	return s.rentalRepo.List(ctx)
}

func (s *rentalService) ListMyRentals(ctx context.Context, requesterID string) ([]domain.Rental, error) {
	return s.rentalRepo.ListByRequester(ctx, requesterID)
}
