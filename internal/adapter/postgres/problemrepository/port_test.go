package problemrepository

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
	"gitlab.com/codearena.net/internal/static/errs"
)

func newRepo(t *testing.T) (*ProblemRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return NewProblemRepository(sqlx.NewDb(mockDB, "postgres"), logging.NewNopLogger(), ""), mock
}

func problemRows(id, userID uuid.UUID) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(domain.GetProblemTable().Columns()).AddRow(
		id.String(), userID.String(), "Sum", "add two numbers", "EASY",
		"{math,intro}",
		[]byte(`{"PYTHON":{"input":"1 2","output":"3"}}`),
		"1 <= a, b <= 10", nil, nil,
		[]byte(`[{"input":"1 2","output":"3"}]`),
		[]byte(`{"PYTHON":"def solve():"}`),
		[]byte(`{"PYTHON":"print(sum(map(int, input().split())))"}`),
		now, now,
	)
}

func TestGetDecodesDocuments(t *testing.T) {
	repo, mock := newRepo(t)
	id, userID := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM problems WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(problemRows(id, userID))

	p, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, id, p.ID)
	assert.Equal(t, userID, p.UserID)
	assert.Equal(t, domain.DifficultyEasy, p.Difficulty)
	assert.Equal(t, []string{"math", "intro"}, p.Tags)
	assert.Equal(t, []domain.TestCase{{Input: "1 2", ExpectedOutput: "3"}}, p.TestCases)
	assert.Equal(t, "3", p.Examples["PYTHON"].Output)
	assert.Contains(t, p.ReferenceSolutions, "PYTHON")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMissingReturnsNil(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery("FROM problems").WillReturnRows(sqlmock.NewRows(domain.GetProblemTable().Columns()))

	p, err := repo.Get(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, p)
}

func TestCreateSendsJSONAsText(t *testing.T) {
	repo, mock := newRepo(t)
	p := domain.NewProblem(uuid.New(), domain.ProblemInput{
		Title:              "Sum",
		Description:        "add",
		Difficulty:         domain.DifficultyEasy,
		TestCases:          []domain.TestCase{{Input: "1 2", ExpectedOutput: "3"}},
		ReferenceSolutions: map[string]string{"PYTHON": "print(3)"},
	})

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO problems (id, user_id, title")).
		WithArgs(
			p.ID, p.UserID, "Sum", "add", "EASY",
			sqlmock.AnyArg(), "{}", "", nil, nil,
			`[{"input":"1 2","output":"3"}]`, "{}", `{"PYTHON":"print(3)"}`,
			p.CreatedAt, p.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListSolvedByJoinsSolvedMarkers(t *testing.T) {
	repo, mock := newRepo(t)
	userID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM problems p INNER JOIN problem_solved ps ON ps.problem_id = p.id WHERE ps.user_id = $1")).
		WithArgs(userID).
		WillReturnRows(problemRows(uuid.New(), uuid.New()))

	problems, err := repo.ListSolvedBy(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, problems, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMissingIsNotFound(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM problems WHERE id = $1")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errs.NotFound)
}
