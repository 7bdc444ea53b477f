package postgres

import (
	"context"
	"database/sql"
	"time"

	"easyrent-backend/internal/domain"
	"easyrent-backend/internal/logger"
	"easyrent-backend/internal/repository"

	"github.com/google/uuid"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

// rentalSelect loads a rental with its car (model and brand included) and
// the requester summary.
const rentalSelect = `SELECT r.id, r.code, r.car_id, r.requester_id, r.pickup_date, r.return_date, r.price, r.notes, r.created_at,
	c.id, c.code, c.model_id, c.year, c.color, c.description, c.image, c.daily_rate,
	m.id, m.code, m.description, m.brand_id, b.id, b.name,
	u.id, u.name, u.email
	FROM rentals r
	JOIN cars c ON c.id = r.car_id
	JOIN models m ON m.id = c.model_id
	JOIN brands b ON b.id = m.brand_id
	JOIN users u ON u.id = r.requester_id`

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (id, code, car_id, requester_id, pickup_date, return_date, price, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if rt.ID == "" {
		rt.ID = uuid.New().String()
	}
	rt.CreatedAt = time.Now().UTC()
	logger.DatabaseCall("CreateRental", query, "code", rt.Code, "car_id", rt.CarID)
	res, err := r.db.ExecContext(ctx, query, rt.ID, rt.Code, rt.CarID, rt.RequesterID,
		rt.PickupDate, rt.ReturnDate, rt.Price, rt.Notes, rt.CreatedAt)
	if err != nil {
		logger.DatabaseResult("CreateRental", 0, err)
		return mapError(err, "rental")
	}
	n, _ := res.RowsAffected()
	logger.DatabaseResult("CreateRental", n, nil)
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	return scanRental(r.db.QueryRowContext(ctx, rentalSelect+` WHERE r.id = $1`, id))
}

func (r *rentalRepository) GetLatest(ctx context.Context) (*domain.Rental, error) {
	query := `SELECT id, code, car_id, requester_id, pickup_date, return_date, price, notes, created_at
		FROM rentals ORDER BY created_at DESC LIMIT 1`
	rt := &domain.Rental{}
	err := r.db.QueryRowContext(ctx, query).Scan(&rt.ID, &rt.Code, &rt.CarID, &rt.RequesterID,
		&rt.PickupDate, &rt.ReturnDate, &rt.Price, &rt.Notes, &rt.CreatedAt)
	if err != nil {
		return nil, mapError(err, "rental")
	}
	return rt, nil
}

func (r *rentalRepository) List(ctx context.Context) ([]domain.Rental, error) {
	return r.list(ctx, rentalSelect+` ORDER BY r.created_at DESC`)
}

func (r *rentalRepository) ListByRequester(ctx context.Context, requesterID string) ([]domain.Rental, error) {
	return r.list(ctx, rentalSelect+` WHERE r.requester_id = $1 ORDER BY r.created_at DESC`, requesterID)
}

func (r *rentalRepository) ListByCar(ctx context.Context, carID string) ([]domain.Rental, error) {
	return r.list(ctx, rentalSelect+` WHERE r.car_id = $1 ORDER BY r.pickup_date`, carID)
}

func (r *rentalRepository) ListByPickupRange(ctx context.Context, from, to time.Time) ([]domain.Rental, error) {
	return r.list(ctx, rentalSelect+` WHERE r.pickup_date >= $1 AND r.pickup_date < $2 ORDER BY r.pickup_date`, from, to)
}

func (r *rentalRepository) list(ctx context.Context, query string, args ...any) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "rental")
	}
	defer rows.Close()

	rentals := []domain.Rental{}
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, mapError(rows.Err(), "rental")
}

func (r *rentalRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM rentals WHERE id = $1`
	logger.DatabaseCall("DeleteRental", query, "id", id)
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		logger.DatabaseResult("DeleteRental", 0, err)
		return mapError(err, "rental")
	}
	return expectOneRow(res, "rental")
}

func (r *rentalRepository) CountByCar(ctx context.Context, carID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM rentals WHERE car_id = $1`, carID).Scan(&count)
	if err != nil {
		return 0, mapError(err, "rental")
	}
	return count, nil
}

func scanRental(row rowScanner) (*domain.Rental, error) {
	rt := &domain.Rental{
		Car:       &domain.Car{Model: &domain.Model{Brand: &domain.Brand{}}},
		Requester: &domain.UserSummary{},
	}
	c := rt.Car
	var image sql.NullString
	err := row.Scan(&rt.ID, &rt.Code, &rt.CarID, &rt.RequesterID, &rt.PickupDate, &rt.ReturnDate, &rt.Price, &rt.Notes, &rt.CreatedAt,
		&c.ID, &c.Code, &c.ModelID, &c.Year, &c.Color, &c.Description, &image, &c.DailyRate,
		&c.Model.ID, &c.Model.Code, &c.Model.Description, &c.Model.BrandID, &c.Model.Brand.ID, &c.Model.Brand.Name,
		&rt.Requester.ID, &rt.Requester.Name, &rt.Requester.Email)
	if err != nil {
		return nil, mapError(err, "rental")
	}
	if image.Valid {
		c.Image = &image.String
	}
	return rt, nil
}
