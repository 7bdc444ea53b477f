package postgres

import (
	"database/sql"

	"easyrent-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.BrandRepository
	repository.ModelRepository
	repository.CarRepository
	repository.RentalRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:               db,
		UserRepository:   NewUserRepository(db),
		BrandRepository:  NewBrandRepository(db),
		ModelRepository:  NewModelRepository(db),
		CarRepository:    NewCarRepository(db),
		RentalRepository: NewRentalRepository(db),
	}
}

// DB exposes the underlying pool for migrations and health checks.
func (s *Store) DB() *sql.DB {
	return s.db
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
