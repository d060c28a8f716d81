package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codearena.net/internal/domain"
)

type SubmissionRepository interface {
	// CreateWithResults stores the submission, its test case rows and, when
	// markSolved is set, the solved marker in a single transaction.
	CreateWithResults(ctx context.Context, submission *domain.Submission, markSolved bool) error

	// Get returns nil, nil when the submission does not exist
	Get(ctx context.Context, id uuid.UUID) (*domain.Submission, error)

	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Submission, error)

	ListByUserAndProblem(ctx context.Context, userID, problemID uuid.UUID) ([]*domain.Submission, error)

	CountByProblem(ctx context.Context, problemID uuid.UUID) (int, error)
}
