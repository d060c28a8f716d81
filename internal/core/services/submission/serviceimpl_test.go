package submission

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/codearena.net/internal/adapter/judge0"
	"gitlab.com/codearena.net/internal/adapter/logging"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/static/errs"
)

type stubEvaluator struct {
	verdict *domain.EvaluationVerdict
	err     error
	calls   int
	last    domain.EvaluationRequest
}

func (e *stubEvaluator) Evaluate(_ context.Context, req domain.EvaluationRequest) (*domain.EvaluationVerdict, error) {
	e.calls++
	e.last = req
	return e.verdict, e.err
}

// languageTable answers language lookups only; submitting is never expected here.
type languageTable struct{}

func (languageTable) SubmitBatch(context.Context, string, int, []domain.TestCase, bool) ([]domain.JudgeToken, error) {
	return nil, errors.New("unexpected submit")
}

func (languageTable) PollBatchResults(context.Context, []domain.JudgeToken) ([]domain.JudgeResult, error) {
	return nil, errors.New("unexpected poll")
}

func (languageTable) LanguageIDFor(name string) (int, error) { return judge0.LanguageIDFor(name) }

func (languageTable) LanguageNameFor(id int) (string, error) { return judge0.LanguageNameFor(id) }

type memProblems struct {
	problems map[uuid.UUID]*domain.Problem
}

func (m *memProblems) Create(_ context.Context, p *domain.Problem) error {
	m.problems[p.ID] = p
	return nil
}

func (m *memProblems) Update(_ context.Context, p *domain.Problem) error {
	m.problems[p.ID] = p
	return nil
}

func (m *memProblems) Get(_ context.Context, id uuid.UUID) (*domain.Problem, error) {
	return m.problems[id], nil
}

func (m *memProblems) List(context.Context) ([]*domain.Problem, error) { return nil, nil }

func (m *memProblems) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.problems, id)
	return nil
}

func (m *memProblems) ListSolvedBy(context.Context, uuid.UUID) ([]*domain.Problem, error) {
	return nil, nil
}

type memSubmissions struct {
	err        error
	stored     []*domain.Submission
	markSolved []bool
}

func (m *memSubmissions) CreateWithResults(_ context.Context, s *domain.Submission, markSolved bool) error {
	if m.err != nil {
		return m.err
	}
	m.stored = append(m.stored, s)
	m.markSolved = append(m.markSolved, markSolved)
	return nil
}

func (m *memSubmissions) Get(_ context.Context, id uuid.UUID) (*domain.Submission, error) {
	for _, s := range m.stored {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (m *memSubmissions) ListByUser(context.Context, uuid.UUID) ([]*domain.Submission, error) {
	return m.stored, nil
}

func (m *memSubmissions) ListByUserAndProblem(context.Context, uuid.UUID, uuid.UUID) ([]*domain.Submission, error) {
	return m.stored, nil
}

func (m *memSubmissions) CountByProblem(context.Context, uuid.UUID) (int, error) {
	return len(m.stored), nil
}

type fixture struct {
	svc         *SubmissionService
	evaluator   *stubEvaluator
	submissions *memSubmissions
	problemID   uuid.UUID
}

func newFixture(verdict *domain.EvaluationVerdict) *fixture {
	problemID := uuid.New()
	evaluator := &stubEvaluator{verdict: verdict}
	problems := &memProblems{problems: map[uuid.UUID]*domain.Problem{problemID: {ID: problemID, Title: "Sum"}}}
	submissions := &memSubmissions{}
	return &fixture{
		svc:         NewSubmissionService(evaluator, languageTable{}, problems, submissions, logging.NewNopLogger()),
		evaluator:   evaluator,
		submissions: submissions,
		problemID:   problemID,
	}
}

func strPtr(s string) *string { return &s }

func passingVerdict() *domain.EvaluationVerdict {
	return &domain.EvaluationVerdict{
		AllPassed: true,
		Cases: []domain.CaseVerdict{
			{TestCase: 1, Passed: true, Stdout: "3", Expected: "3", Status: "Accepted", StatusID: 3, Memory: strPtr("100 KB"), Time: strPtr("0.01 s")},
			{TestCase: 2, Passed: true, Stdout: "5", Expected: "5", Status: "Accepted", StatusID: 3, Memory: strPtr("120 KB"), Time: strPtr("0.02 s")},
		},
	}
}

func input(problemID uuid.UUID) ExecuteInput {
	return ExecuteInput{
		SourceCode:      "print(sum(map(int, input().split())))",
		LanguageID:      71,
		Stdin:           []string{"1 2", "2 3"},
		ExpectedOutputs: []string{"3", "5"},
		ProblemID:       problemID,
	}
}

func TestExecuteRecordsAcceptedSubmission(t *testing.T) {
	f := newFixture(passingVerdict())
	userID := uuid.New()

	sub, verdict, err := f.svc.Execute(context.Background(), userID, input(f.problemID))
	require.NoError(t, err)
	require.NotNil(t, verdict)
	require.NotNil(t, sub)

	assert.Equal(t, domain.SubmissionStatusAccepted, sub.Status)
	assert.Equal(t, "PYTHON", sub.Language)
	assert.Equal(t, "1 2\n2 3", *sub.Stdin)
	assert.JSONEq(t, `["3","5"]`, *sub.Stdout)
	assert.JSONEq(t, `["100 KB","120 KB"]`, *sub.Memory)
	assert.Nil(t, sub.Stderr, "stderr column stays empty when no case wrote to stderr")
	assert.Nil(t, sub.CompileOutput)

	require.Len(t, sub.TestCases, 2)
	assert.Equal(t, 1, sub.TestCases[0].TestCase)
	assert.Equal(t, sub.ID, sub.TestCases[1].SubmissionID)
	assert.Equal(t, []bool{true}, f.submissions.markSolved)
	assert.Equal(t, domain.ModeSubmission, f.evaluator.last.Mode)
}

func TestExecuteWrongAnswerDoesNotMarkSolved(t *testing.T) {
	verdict := passingVerdict()
	verdict.AllPassed = false
	verdict.Cases[1].Passed = false
	verdict.Cases[1].Stderr = strPtr("boom")
	f := newFixture(verdict)

	sub, _, err := f.svc.Execute(context.Background(), uuid.New(), input(f.problemID))
	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionStatusWrongAnswer, sub.Status)
	assert.Equal(t, []bool{false}, f.submissions.markSolved)

	var stderrs []*string
	require.NoError(t, json.Unmarshal([]byte(*sub.Stderr), &stderrs))
	assert.Nil(t, stderrs[0])
	assert.Equal(t, "boom", *stderrs[1])
}

func TestExecuteRejectsMismatchedArrays(t *testing.T) {
	f := newFixture(passingVerdict())
	in := input(f.problemID)
	in.ExpectedOutputs = in.ExpectedOutputs[:1]

	_, _, err := f.svc.Execute(context.Background(), uuid.New(), in)
	var invalid *errs.InvalidTestCasesError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 2, invalid.Inputs)
	assert.Equal(t, 1, invalid.Expected)
	assert.Zero(t, f.evaluator.calls)
}

func TestExecuteRejectsUnsupportedLanguageBeforeJudging(t *testing.T) {
	f := newFixture(passingVerdict())
	in := input(f.problemID)
	in.LanguageID = 9999

	_, _, err := f.svc.Execute(context.Background(), uuid.New(), in)
	var unsupported *errs.UnsupportedLanguageError
	require.ErrorAs(t, err, &unsupported)
	assert.Zero(t, f.evaluator.calls)
}

func TestExecuteUnknownProblem(t *testing.T) {
	f := newFixture(passingVerdict())
	_, _, err := f.svc.Execute(context.Background(), uuid.New(), input(uuid.New()))
	assert.ErrorIs(t, err, errs.NotFound)
	assert.Zero(t, f.evaluator.calls)
}

func TestExecuteJudgeTimeoutIsNotRecorded(t *testing.T) {
	f := newFixture(nil)
	f.evaluator.err = &errs.JudgeTimeoutError{Attempts: 30}

	sub, verdict, err := f.svc.Execute(context.Background(), uuid.New(), input(f.problemID))
	var timeout *errs.JudgeTimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Nil(t, sub)
	assert.Nil(t, verdict)
	assert.Empty(t, f.submissions.stored)
}

func TestStorageFailureKeepsVerdict(t *testing.T) {
	f := newFixture(passingVerdict())
	f.submissions.err = errors.New("connection reset")

	sub, verdict, err := f.svc.Execute(context.Background(), uuid.New(), input(f.problemID))
	var storage *errs.StorageError
	require.ErrorAs(t, err, &storage)
	assert.Nil(t, sub)
	require.NotNil(t, verdict)
	assert.True(t, verdict.AllPassed)

	f.submissions.err = nil
	sub, err = f.svc.Record(context.Background(), RecordInput{
		UserID:    uuid.New(),
		ProblemID: f.problemID,
		Language:  "PYTHON",
		Stdin:     []string{"1 2", "2 3"},
	}, verdict)
	require.NoError(t, err)
	assert.True(t, sub.Accepted())
}

func TestGetIsOwnerScoped(t *testing.T) {
	f := newFixture(passingVerdict())
	owner := uuid.New()
	sub, _, err := f.svc.Execute(context.Background(), owner, input(f.problemID))
	require.NoError(t, err)

	got, err := f.svc.Get(context.Background(), owner, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, got.ID)

	_, err = f.svc.Get(context.Background(), uuid.New(), sub.ID)
	assert.ErrorIs(t, err, errs.NotFound)
}
