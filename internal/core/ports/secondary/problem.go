package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codearena.net/internal/domain"
)

type ProblemRepository interface {
	Create(ctx context.Context, problem *domain.Problem) error

	Update(ctx context.Context, problem *domain.Problem) error

	// Get returns nil, nil when the problem does not exist
	Get(ctx context.Context, id uuid.UUID) (*domain.Problem, error)

	List(ctx context.Context) ([]*domain.Problem, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// ListSolvedBy returns the problems the user has an accepted submission for
	ListSolvedBy(ctx context.Context, userID uuid.UUID) ([]*domain.Problem, error)
}

// ProblemCache is a read-through cache in front of ProblemRepository.Get
type ProblemCache interface {
	// Get returns nil, nil on a miss
	Get(ctx context.Context, id uuid.UUID) (*domain.Problem, error)
	Set(ctx context.Context, problem *domain.Problem) error
	Invalidate(ctx context.Context, id uuid.UUID) error
}
