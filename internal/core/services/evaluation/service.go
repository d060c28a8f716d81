package evaluation

import (
	"context"

	"gitlab.com/codearena.net/internal/domain"
)

// IEvaluationService judges one piece of source code against a list of test cases.
type IEvaluationService interface {
	// Evaluate submits every test case as one batch, waits for terminal
	// results and reduces them into a per-case verdict. Judge errors are
	// returned unchanged.
	Evaluate(ctx context.Context, req domain.EvaluationRequest) (*domain.EvaluationVerdict, error)
}
