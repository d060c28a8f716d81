package submission

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codearena.net/internal/domain"
)

// ExecuteInput is the body of an execute request. Stdin and ExpectedOutputs
// are parallel arrays, one entry per test case.
type ExecuteInput struct {
	SourceCode      string    `json:"source_code"`
	LanguageID      int       `json:"language_id"`
	Stdin           []string  `json:"stdin"`
	ExpectedOutputs []string  `json:"expected_outputs"`
	ProblemID       uuid.UUID `json:"problemId"`
}

// RecordInput identifies who submitted what for a verdict being persisted.
type RecordInput struct {
	UserID     uuid.UUID
	ProblemID  uuid.UUID
	SourceCode string
	Language   string
	Stdin      []string
}

type ISubmissionService interface {
	// Execute evaluates the code against the given test cases and records the
	// outcome. On a storage failure the verdict is still returned with the error.
	Execute(ctx context.Context, userID uuid.UUID, in ExecuteInput) (*domain.Submission, *domain.EvaluationVerdict, error)
	Record(ctx context.Context, in RecordInput, verdict *domain.EvaluationVerdict) (*domain.Submission, error)

	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Submission, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Submission, error)
	ListByUserAndProblem(ctx context.Context, userID, problemID uuid.UUID) ([]*domain.Submission, error)
	CountByProblem(ctx context.Context, problemID uuid.UUID) (int, error)
}
