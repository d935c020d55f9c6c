package user

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	u := &User{
		Email:        "user@example.com",
		FirstName:    "Jane",
		LastName:     "Doe",
		PasswordHash: "hash",
		Role:         "user",
	}

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now())

		mock.ExpectQuery("INSERT INTO users").
			WithArgs(u.Email, u.FirstName, u.LastName, u.PasswordHash, u.Role).
			WillReturnRows(rows)

		created, err := repo.Create(context.Background(), u)
		assert.NoError(t, err)
		assert.Equal(t, uint(1), created.ID)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(errors.New("db error"))

		_, err := repo.Create(context.Background(), u)
		assert.Error(t, err)
	})
}

func TestRepository_GetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "email", "first_name", "last_name", "password_hash", "role", "created_at"}).
			AddRow(1, "user@example.com", "Jane", "Doe", "hash", "user", time.Now())

		mock.ExpectQuery("SELECT .* FROM users").
			WithArgs("user@example.com").
			WillReturnRows(rows)

		u, err := repo.GetByEmail(context.Background(), "user@example.com")
		assert.NoError(t, err)
		assert.NotNil(t, u)
		assert.Equal(t, uint(1), u.ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM users").
			WithArgs("missing@example.com").
			WillReturnError(sql.ErrNoRows)

		u, err := repo.GetByEmail(context.Background(), "missing@example.com")
		assert.NoError(t, err)
		assert.Nil(t, u)
	})
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "email", "first_name", "last_name", "password_hash", "role", "created_at"}).
			AddRow(5, "user@example.com", "Jane", "Doe", "hash", "user", time.Now())

		mock.ExpectQuery("SELECT .* FROM users").
			WithArgs(uint(5)).
			WillReturnRows(rows)

		u, err := repo.GetByID(context.Background(), 5)
		assert.NoError(t, err)
		assert.NotNil(t, u)
		assert.Equal(t, "user@example.com", u.Email)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM users").
			WithArgs(uint(99)).
			WillReturnError(sql.ErrNoRows)

		u, err := repo.GetByID(context.Background(), 99)
		assert.NoError(t, err)
		assert.Nil(t, u)
	})
}
