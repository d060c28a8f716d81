package userrepository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/codearena.net/internal/adapter/logging"
	"gitlab.com/codearena.net/internal/domain"
)

func newRepo(t *testing.T) (*userRepo, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return &userRepo{db: sqlx.NewDb(mockDB, "postgres"), logger: logging.NewNopLogger()}, mock
}

func TestGetByEmail(t *testing.T) {
	repo, mock := newRepo(t)
	id := uuid.New()
	rows := sqlmock.NewRows(domain.GetUserTable().Columns()).
		AddRow(id.String(), "Ada", "ada@example.com", nil, "ADMIN", "hash", "local", nil, time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("ada@example.com").
		WillReturnRows(rows)

	user, err := repo.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, id, user.ID)
	assert.True(t, user.IsAdmin())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMissingUserReturnsNil(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WillReturnRows(sqlmock.NewRows(domain.GetUserTable().Columns()))

	user, err := repo.Get(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestCreate(t *testing.T) {
	repo, mock := newRepo(t)
	user := &domain.Users{ID: uuid.New(), Email: "a@b.c", Role: domain.RoleUser, AuthProvider: "local"}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (id, name, email")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), user))
	assert.NoError(t, mock.ExpectationsWereMet())
}
