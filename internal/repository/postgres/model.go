package postgres

import (
	"context"
	"database/sql"
	"time"

	"easyrent-backend/internal/domain"
	"easyrent-backend/internal/repository"

	"github.com/google/uuid"
)

type modelRepository struct {
	db *sql.DB
}

func NewModelRepository(db *sql.DB) repository.ModelRepository {
	return &modelRepository{db: db}
}

const modelSelect = `SELECT m.id, m.code, m.description, m.brand_id, m.created_at, m.updated_at, b.id, b.name
	FROM models m JOIN brands b ON b.id = m.brand_id`

func (r *modelRepository) Create(ctx context.Context, m *domain.Model) error {
	query := `INSERT INTO models (id, code, description, brand_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, query, m.ID, m.Code, m.Description, m.BrandID, m.CreatedAt, m.UpdatedAt)
	return mapError(err, "model")
}

func (r *modelRepository) GetByID(ctx context.Context, id string) (*domain.Model, error) {
	return scanModel(r.db.QueryRowContext(ctx, modelSelect+` WHERE m.id = $1`, id))
}

func (r *modelRepository) GetByCode(ctx context.Context, code string) (*domain.Model, error) {
	return scanModel(r.db.QueryRowContext(ctx, modelSelect+` WHERE m.code = $1`, code))
}

func (r *modelRepository) List(ctx context.Context) ([]domain.Model, error) {
	return r.list(ctx, modelSelect+` ORDER BY m.description`)
}

func (r *modelRepository) ListByBrand(ctx context.Context, brandID string) ([]domain.Model, error) {
	return r.list(ctx, modelSelect+` WHERE m.brand_id = $1 ORDER BY m.description`, brandID)
}

func (r *modelRepository) list(ctx context.Context, query string, args ...any) ([]domain.Model, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "model")
	}
	defer rows.Close()

	models := []domain.Model{}
	for rows.Next() {
		m, err := scanModel(rows)
		if err != nil {
			return nil, err
		}
		models = append(models, *m)
	}
	return models, mapError(rows.Err(), "model")
}

func (r *modelRepository) Update(ctx context.Context, m *domain.Model) error {
	query := `UPDATE models SET code=$1, description=$2, brand_id=$3, updated_at=$4 WHERE id=$5`
	m.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query, m.Code, m.Description, m.BrandID, m.UpdatedAt, m.ID)
	if err != nil {
		return mapError(err, "model")
	}
	return expectOneRow(res, "model")
}

func (r *modelRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM models WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "model")
	}
	return expectOneRow(res, "model")
}

func (r *modelRepository) CountByBrand(ctx context.Context, brandID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM models WHERE brand_id = $1`, brandID).Scan(&count)
	if err != nil {
		return 0, mapError(err, "model")
	}
	return count, nil
}

func scanModel(row rowScanner) (*domain.Model, error) {
	m := &domain.Model{Brand: &domain.Brand{}}
	if err := row.Scan(&m.ID, &m.Code, &m.Description, &m.BrandID, &m.CreatedAt, &m.UpdatedAt, &m.Brand.ID, &m.Brand.Name); err != nil {
		return nil, mapError(err, "model")
	}
	return m, nil
}
