package postgres

import (
	"context"
	"database/sql"
	"time"

	"easyrent-backend/internal/domain"
	"easyrent-backend/internal/repository"

	"github.com/google/uuid"
)

type brandRepository struct {
	db *sql.DB
}

func NewBrandRepository(db *sql.DB) repository.BrandRepository {
	return &brandRepository{db: db}
}

func (r *brandRepository) Create(ctx context.Context, b *domain.Brand) error {
	query := `INSERT INTO brands (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, query, b.ID, b.Name, b.CreatedAt, b.UpdatedAt)
	return mapError(err, "brand")
}

func (r *brandRepository) GetByID(ctx context.Context, id string) (*domain.Brand, error) {
	query := `SELECT id, name, created_at, updated_at FROM brands WHERE id = $1`
	return scanBrand(r.db.QueryRowContext(ctx, query, id))
}

func (r *brandRepository) GetByName(ctx context.Context, name string) (*domain.Brand, error) {
	query := `SELECT id, name, created_at, updated_at FROM brands WHERE name = $1`
	return scanBrand(r.db.QueryRowContext(ctx, query, name))
}

func (r *brandRepository) List(ctx context.Context) ([]domain.Brand, error) {
	query := `SELECT id, name, created_at, updated_at FROM brands ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err, "brand")
	}
	defer rows.Close()

	brands := []domain.Brand{}
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, err
		}
		brands = append(brands, *b)
	}
	return brands, mapError(rows.Err(), "brand")
}

func (r *brandRepository) Update(ctx context.Context, b *domain.Brand) error {
	query := `UPDATE brands SET name=$1, updated_at=$2 WHERE id=$3`
	b.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query, b.Name, b.UpdatedAt, b.ID)
	if err != nil {
		return mapError(err, "brand")
	}
	return expectOneRow(res, "brand")
}

func (r *brandRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "brand")
	}
	return expectOneRow(res, "brand")
}

func scanBrand(row rowScanner) (*domain.Brand, error) {
	b := &domain.Brand{}
	if err := row.Scan(&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, mapError(err, "brand")
	}
	return b, nil
}
