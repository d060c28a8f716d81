package problem

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/codearena.net/internal/adapter/judge0"
	"gitlab.com/codearena.net/internal/adapter/logging"
	"gitlab.com/codearena.net/internal/adapter/redis/problemcache"
	"gitlab.com/codearena.net/internal/config"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/static/errs"
)

// scriptedEvaluator returns a fixed verdict per language id.
type scriptedEvaluator struct {
	mu       sync.Mutex
	verdicts map[int]*domain.EvaluationVerdict
	err      error
	requests []domain.EvaluationRequest
}

func (e *scriptedEvaluator) Evaluate(_ context.Context, req domain.EvaluationRequest) (*domain.EvaluationVerdict, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.requests = append(e.requests, req)
	if e.err != nil {
		return nil, e.err
	}
	if v, ok := e.verdicts[req.LanguageID]; ok {
		return v, nil
	}
	cases := make([]domain.CaseVerdict, len(req.TestCases))
	for i := range req.TestCases {
		cases[i] = domain.CaseVerdict{TestCase: i + 1, Passed: true, Status: "Accepted", StatusID: 3}
	}
	return &domain.EvaluationVerdict{Cases: cases, AllPassed: true}, nil
}

type languageTable struct{}

func (languageTable) SubmitBatch(context.Context, string, int, []domain.TestCase, bool) ([]domain.JudgeToken, error) {
	panic("not used")
}

func (languageTable) PollBatchResults(context.Context, []domain.JudgeToken) ([]domain.JudgeResult, error) {
	panic("not used")
}

func (languageTable) LanguageIDFor(name string) (int, error) { return judge0.LanguageIDFor(name) }

func (languageTable) LanguageNameFor(id int) (string, error) { return judge0.LanguageNameFor(id) }

type memRepo struct {
	mu       sync.Mutex
	problems map[uuid.UUID]*domain.Problem
	creates  int
	gets     int
}

func newMemRepo() *memRepo {
	return &memRepo{problems: map[uuid.UUID]*domain.Problem{}}
}

func (m *memRepo) Create(_ context.Context, p *domain.Problem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	m.problems[p.ID] = p
	return nil
}

func (m *memRepo) Update(_ context.Context, p *domain.Problem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.problems[p.ID]; !ok {
		return errs.NotFound
	}
	m.problems[p.ID] = p
	return nil
}

func (m *memRepo) Get(_ context.Context, id uuid.UUID) (*domain.Problem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	p, ok := m.problems[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (m *memRepo) List(context.Context) ([]*domain.Problem, error) {
	out := make([]*domain.Problem, 0, len(m.problems))
	for _, p := range m.problems {
		out = append(out, p)
	}
	return out, nil
}

func (m *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.problems[id]; !ok {
		return errs.NotFound
	}
	delete(m.problems, id)
	return nil
}

func (m *memRepo) ListSolvedBy(context.Context, uuid.UUID) ([]*domain.Problem, error) {
	return nil, nil
}

type fixture struct {
	svc       *ProblemService
	evaluator *scriptedEvaluator
	repo      *memRepo
	redis     *miniredis.Miniredis
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	evaluator := &scriptedEvaluator{verdicts: map[int]*domain.EvaluationVerdict{}}
	repo := newMemRepo()
	cache := problemcache.NewProblemCache(client, time.Minute, logging.NewNopLogger())
	svc := NewProblemService(evaluator, languageTable{}, repo, cache,
		&config.ProblemSvcCfg{ValidationConcurrency: 2}, logging.NewNopLogger())
	return &fixture{svc: svc, evaluator: evaluator, repo: repo, redis: mr}
}

func problemInput() domain.ProblemInput {
	return domain.ProblemInput{
		Title:       "Sum",
		Description: "Add two numbers",
		Difficulty:  domain.DifficultyEasy,
		Tags:        []string{"math"},
		TestCases: []domain.TestCase{
			{Input: "1 2", ExpectedOutput: "3"},
			{Input: "2 2", ExpectedOutput: "4"},
		},
		ReferenceSolutions: map[string]string{
			"PYTHON":     "print(sum(map(int, input().split())))",
			"javascript": "console.log(3)",
		},
	}
}

func TestCreateValidatesEveryReferenceSolution(t *testing.T) {
	f := newFixture(t)

	p, err := f.svc.Create(context.Background(), uuid.New(), problemInput())
	require.NoError(t, err)
	assert.Equal(t, 1, f.repo.creates)
	assert.Equal(t, "Sum", p.Title)

	require.Len(t, f.evaluator.requests, 2)
	ids := map[int]bool{}
	for _, req := range f.evaluator.requests {
		assert.Equal(t, domain.ModeValidation, req.Mode)
		assert.Len(t, req.TestCases, 2)
		ids[req.LanguageID] = true
	}
	assert.Equal(t, map[int]bool{63: true, 71: true}, ids)
}

func TestFailingReferenceSolutionBlocksCreate(t *testing.T) {
	f := newFixture(t)
	f.evaluator.verdicts[63] = &domain.EvaluationVerdict{
		Cases: []domain.CaseVerdict{
			{TestCase: 1, Passed: true, Status: "Accepted"},
			{TestCase: 2, Passed: false, Status: "Wrong Answer"},
		},
	}

	_, err := f.svc.Create(context.Background(), uuid.New(), problemInput())
	var failed *errs.ReferenceSolutionFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, "JAVASCRIPT", failed.Language)
	assert.Equal(t, 1, failed.TestCaseIndex)
	assert.Equal(t, "Wrong Answer", failed.Status)
	assert.Contains(t, failed.Error(), "testcase 2 failed for language JAVASCRIPT")
	assert.Zero(t, f.repo.creates)
}

func TestUnsupportedReferenceLanguageFailsBeforeJudging(t *testing.T) {
	f := newFixture(t)
	in := problemInput()
	in.ReferenceSolutions["COBOL"] = "DISPLAY 3."

	_, err := f.svc.Create(context.Background(), uuid.New(), in)
	var unsupported *errs.UnsupportedLanguageError
	require.ErrorAs(t, err, &unsupported)
	assert.Empty(t, f.evaluator.requests)
	assert.Zero(t, f.repo.creates)
}

func TestJudgeTimeoutDuringValidationPropagates(t *testing.T) {
	f := newFixture(t)
	f.evaluator.err = &errs.JudgeTimeoutError{Attempts: 30}

	_, err := f.svc.Create(context.Background(), uuid.New(), problemInput())
	var timeout *errs.JudgeTimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Zero(t, f.repo.creates)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	f := newFixture(t)
	in := problemInput()
	in.Difficulty = "TRIVIAL"

	_, err := f.svc.Create(context.Background(), uuid.New(), in)
	assert.ErrorIs(t, err, errs.InvalidInput)

	in = problemInput()
	in.TestCases = nil
	_, err = f.svc.Create(context.Background(), uuid.New(), in)
	var invalid *errs.InvalidTestCasesError
	assert.ErrorAs(t, err, &invalid)
	assert.Empty(t, f.evaluator.requests)
}

func TestGetReadsThroughCache(t *testing.T) {
	f := newFixture(t)
	p, err := f.svc.Create(context.Background(), uuid.New(), problemInput())
	require.NoError(t, err)

	_, err = f.svc.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, f.redis.Exists("problem:"+p.ID.String()))

	got, err := f.svc.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Title, got.Title)
	assert.Equal(t, 1, f.repo.gets, "second read is served from the cache")
}

func TestGetMissingProblem(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errs.NotFound)
}

func TestUpdateInvalidatesCache(t *testing.T) {
	f := newFixture(t)
	p, err := f.svc.Create(context.Background(), uuid.New(), problemInput())
	require.NoError(t, err)
	_, err = f.svc.Get(context.Background(), p.ID)
	require.NoError(t, err)

	in := problemInput()
	in.Title = "Sum of two"
	updated, err := f.svc.Update(context.Background(), p.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Sum of two", updated.Title)
	assert.False(t, f.redis.Exists("problem:"+p.ID.String()))

	got, err := f.svc.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sum of two", got.Title)
}

func TestUpdateMissingProblem(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Update(context.Background(), uuid.New(), problemInput())
	assert.ErrorIs(t, err, errs.NotFound)
	assert.Empty(t, f.evaluator.requests)
}

func TestDeleteInvalidatesCache(t *testing.T) {
	f := newFixture(t)
	p, err := f.svc.Create(context.Background(), uuid.New(), problemInput())
	require.NoError(t, err)
	_, err = f.svc.Get(context.Background(), p.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), p.ID))
	assert.False(t, f.redis.Exists("problem:"+p.ID.String()))
	assert.ErrorIs(t, f.svc.Delete(context.Background(), p.ID), errs.NotFound)
}
