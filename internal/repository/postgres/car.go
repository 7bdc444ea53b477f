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

type carRepository struct {
	db *sql.DB
}

func NewCarRepository(db *sql.DB) repository.CarRepository {
	return &carRepository{db: db}
}

// carSelect loads a car together with its model and brand.
const carSelect = `SELECT c.id, c.code, c.model_id, c.year, c.color, c.description, c.notes, c.image, c.daily_rate,
	c.created_at, c.updated_at, m.id, m.code, m.description, m.brand_id, b.id, b.name
	FROM cars c
	JOIN models m ON m.id = c.model_id
	JOIN brands b ON b.id = m.brand_id`

const carOrder = ` ORDER BY b.name, m.description, c.year DESC`

func (r *carRepository) Create(ctx context.Context, c *domain.Car) error {
	query := `INSERT INTO cars (id, code, model_id, year, color, description, notes, image, daily_rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Code, c.ModelID, c.Year, c.Color, c.Description,
		nullString(c.Notes), c.Image, c.DailyRate, c.CreatedAt, c.UpdatedAt)
	return mapError(err, "car")
}

func (r *carRepository) GetByID(ctx context.Context, id string) (*domain.Car, error) {
	return scanCar(r.db.QueryRowContext(ctx, carSelect+` WHERE c.id = $1`, id))
}

func (r *carRepository) GetByCode(ctx context.Context, code string) (*domain.Car, error) {
	return scanCar(r.db.QueryRowContext(ctx, carSelect+` WHERE c.code = $1`, code))
}

func (r *carRepository) List(ctx context.Context) ([]domain.Car, error) {
	return r.list(ctx, carSelect+carOrder)
}

func (r *carRepository) ListByModel(ctx context.Context, modelID string) ([]domain.Car, error) {
	return r.list(ctx, carSelect+` WHERE c.model_id = $1`+carOrder, modelID)
}

func (r *carRepository) ListAvailable(ctx context.Context, start, end time.Time) ([]domain.Car, error) {
	query := carSelect + ` WHERE NOT EXISTS (
		SELECT 1 FROM rentals r
		WHERE r.car_id = c.id AND r.pickup_date <= $2 AND r.return_date >= $1
	)` + carOrder
	logger.DatabaseCall("ListAvailableCars", query, "start", start, "end", end)
	cars, err := r.list(ctx, query, start, end)
	logger.DatabaseResult("ListAvailableCars", int64(len(cars)), err)
	return cars, err
}

func (r *carRepository) list(ctx context.Context, query string, args ...any) ([]domain.Car, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "car")
	}
	defer rows.Close()

	cars := []domain.Car{}
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, *c)
	}
	return cars, mapError(rows.Err(), "car")
}

func (r *carRepository) Update(ctx context.Context, c *domain.Car) error {
	query := `UPDATE cars SET code=$1, model_id=$2, year=$3, color=$4, description=$5, notes=$6, image=$7,
		daily_rate=$8, updated_at=$9 WHERE id=$10`
	c.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query, c.Code, c.ModelID, c.Year, c.Color, c.Description,
		nullString(c.Notes), c.Image, c.DailyRate, c.UpdatedAt, c.ID)
	if err != nil {
		return mapError(err, "car")
	}
	return expectOneRow(res, "car")
}

// UpdateImage sets or clears (nil) the image reference of a car.
func (r *carRepository) UpdateImage(ctx context.Context, id string, image *string) error {
	query := `UPDATE cars SET image=$1, updated_at=$2 WHERE id=$3`
	logger.DatabaseCall("UpdateCarImage", query, "id", id)
	res, err := r.db.ExecContext(ctx, query, image, time.Now().UTC(), id)
	if err != nil {
		logger.DatabaseResult("UpdateCarImage", 0, err)
		return mapError(err, "car")
	}
	return expectOneRow(res, "car")
}

func (r *carRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "car")
	}
	return expectOneRow(res, "car")
}

func (r *carRepository) CountByModel(ctx context.Context, modelID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM cars WHERE model_id = $1`, modelID).Scan(&count)
	if err != nil {
		return 0, mapError(err, "car")
	}
	return count, nil
}

func scanCar(row rowScanner) (*domain.Car, error) {
	c := &domain.Car{Model: &domain.Model{Brand: &domain.Brand{}}}
	var notes, image sql.NullString
	err := row.Scan(&c.ID, &c.Code, &c.ModelID, &c.Year, &c.Color, &c.Description, &notes, &image, &c.DailyRate,
		&c.CreatedAt, &c.UpdatedAt, &c.Model.ID, &c.Model.Code, &c.Model.Description, &c.Model.BrandID,
		&c.Model.Brand.ID, &c.Model.Brand.Name)
	if err != nil {
		return nil, mapError(err, "car")
	}
	c.Notes = notes.String
	if image.Valid {
		c.Image = &image.String
	}
	return c, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
