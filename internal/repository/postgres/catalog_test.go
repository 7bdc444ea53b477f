package postgres_test

import (
	"context"
	"testing"
	"time"

	"easyrent-backend/internal/domain"
	"easyrent-backend/internal/repository"
	"easyrent-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var carRowColumns = []string{
	"id", "code", "model_id", "year", "color", "description", "notes", "image", "daily_rate",
	"created_at", "updated_at", "m.id", "m.code", "m.description", "m.brand_id", "b.id", "b.name",
}

func TestBrandRepository_UpdateDelete(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewBrandRepository(db)
	ctx := context.Background()

	t.Run("UpdateMissing", func(t *testing.T) {
		mock.ExpectExec("UPDATE brands SET name").
			WithArgs("Fiat", sqlmock.AnyArg(), "b-404").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, &domain.Brand{ID: "b-404", Name: "Fiat"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("DeleteSuccess", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM brands WHERE id = \\$1").
			WithArgs("b-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, "b-1"))
	})

	t.Run("DeleteReferenced", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM brands").
			WithArgs("b-2").
			WillReturnError(&pq.Error{Code: "23503", Constraint: "models_brand_id_fkey"})

		err := repo.Delete(ctx, "b-2")
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.NotErrorIs(t, err, repository.ErrDuplicate)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModelRepository_CountByBrand(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewModelRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM models WHERE brand_id = \\$1").
		WithArgs("b-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.CountByBrand(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModelRepository_GetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewModelRepository(db)

	rows := sqlmock.NewRows([]string{"id", "code", "description", "brand_id", "created_at", "updated_at", "b.id", "b.name"}).
		AddRow("m-1", "UNO", "Uno Mille", "b-1", time.Now(), time.Now(), "b-1", "Fiat")
	mock.ExpectQuery("SELECT (.+) FROM models m JOIN brands b (.+) WHERE m.id = \\$1").
		WithArgs("m-1").
		WillReturnRows(rows)

	m, err := repo.GetByID(context.Background(), "m-1")
	require.NoError(t, err)
	require.NotNil(t, m.Brand)
	assert.Equal(t, "Fiat", m.Brand.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCarRepository_GetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewCarRepository(db)
	ctx := context.Background()

	t.Run("WithImage", func(t *testing.T) {
		rows := sqlmock.NewRows(carRowColumns).
			AddRow("c-1", "CAR1", "m-1", 2020, "red", "Hatch", nil, "/assets/car1.jpg", "100.00",
				time.Now(), time.Now(), "m-1", "UNO", "Uno Mille", "b-1", "b-1", "Fiat")
		mock.ExpectQuery("SELECT (.+) FROM cars c (.+) WHERE c.id = \\$1").
			WithArgs("c-1").
			WillReturnRows(rows)

		car, err := repo.GetByID(ctx, "c-1")
		require.NoError(t, err)
		assert.Equal(t, int64(10000), car.DailyRate.Cents())
		require.NotNil(t, car.Image)
		assert.Equal(t, "/assets/car1.jpg", *car.Image)
		assert.Empty(t, car.Notes)
		assert.Equal(t, "Fiat", car.Model.Brand.Name)
	})

	t.Run("WithoutImage", func(t *testing.T) {
		rows := sqlmock.NewRows(carRowColumns).
			AddRow("c-2", "CAR2", "m-1", 2019, "blue", "Sedan", "spare key", nil, "89.90",
				time.Now(), time.Now(), "m-1", "UNO", "Uno Mille", "b-1", "b-1", "Fiat")
		mock.ExpectQuery("SELECT (.+) FROM cars c").
			WithArgs("c-2").
			WillReturnRows(rows)

		car, err := repo.GetByID(ctx, "c-2")
		require.NoError(t, err)
		assert.Nil(t, car.Image)
		assert.Equal(t, "spare key", car.Notes)
		assert.Equal(t, "89.90", car.DailyRate.String())
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCarRepository_ListAvailable(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewCarRepository(db)

	start := time.Date(2030, 1, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2030, 1, 13, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(carRowColumns).
		AddRow("c-1", "CAR1", "m-1", 2020, "red", "Hatch", nil, nil, "100.00",
			time.Now(), time.Now(), "m-1", "UNO", "Uno Mille", "b-1", "b-1", "Fiat")
	mock.ExpectQuery("WHERE NOT EXISTS").
		WithArgs(start, end).
		WillReturnRows(rows)

	cars, err := repo.ListAvailable(context.Background(), start, end)
	require.NoError(t, err)
	assert.Len(t, cars, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCarRepository_UpdateImage(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewCarRepository(db)

	mock.ExpectExec("UPDATE cars SET image=\\$1").
		WithArgs(nil, sqlmock.AnyArg(), "c-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.UpdateImage(context.Background(), "c-1", nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositories_MalformedIDIsNotFound(t *testing.T) {
	db, mock := newMock(t)
	ctx := context.Background()
	invalidUUID := &pq.Error{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`}

	t.Run("CarGetByID", func(t *testing.T) {
		mock.ExpectQuery("WHERE c.id = \\$1").
			WithArgs("abc").
			WillReturnError(invalidUUID)

		_, err := postgres.NewCarRepository(db).GetByID(ctx, "abc")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.EqualError(t, err, "car not found")
	})

	t.Run("BrandDelete", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM brands WHERE id = \\$1").
			WithArgs("abc").
			WillReturnError(invalidUUID)

		assert.ErrorIs(t, postgres.NewBrandRepository(db).Delete(ctx, "abc"), domain.ErrNotFound)
	})

	t.Run("RentalDelete", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM rentals WHERE id = \\$1").
			WithArgs("abc").
			WillReturnError(invalidUUID)

		err := postgres.NewRentalRepository(db).Delete(ctx, "abc")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NotErrorIs(t, err, repository.ErrDuplicate)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
