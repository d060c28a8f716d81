package problem

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codearena.net/internal/domain"
)

type IProblemService interface {
	// Create and Update refuse input whose reference solutions fail any of its test cases.
	Create(ctx context.Context, userID uuid.UUID, in domain.ProblemInput) (*domain.Problem, error)
	Update(ctx context.Context, id uuid.UUID, in domain.ProblemInput) (*domain.Problem, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Problem, error)
	List(ctx context.Context) ([]*domain.Problem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListSolvedBy(ctx context.Context, userID uuid.UUID) ([]*domain.Problem, error)
}
