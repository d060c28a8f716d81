package evaluation

import (
	"context"
	"time"

	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/ports/secondary"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/static/errs"
)

var _ IEvaluationService = (*EvaluationService)(nil)

type EvaluationService struct {
	judge  secondary.JudgeClient
	logger primary.Logger
}

func NewEvaluationService(judge secondary.JudgeClient, logger primary.Logger) *EvaluationService {
	return &EvaluationService{
		judge:  judge,
		logger: logger,
	}
}

func (s *EvaluationService) Evaluate(ctx context.Context, req domain.EvaluationRequest) (*domain.EvaluationVerdict, error) {
	if len(req.TestCases) == 0 {
		return nil, &errs.InvalidTestCasesError{Reason: "at least one test case is required"}
	}

	started := time.Now()
	s.logger.Info("Evaluating source code",
		"languageId", req.LanguageID,
		"testCases", len(req.TestCases),
		"validation", req.Mode == domain.ModeValidation)

	tokens, err := s.judge.SubmitBatch(ctx, req.SourceCode, req.LanguageID, req.TestCases, req.Mode == domain.ModeValidation)
	if err != nil {
		s.logger.Error("Failed to submit batch", "languageId", req.LanguageID, "error", err)
		return nil, err
	}

	results, err := s.judge.PollBatchResults(ctx, tokens)
	if err != nil {
		s.logger.Error("Failed to collect batch results", "languageId", req.LanguageID, "error", err)
		return nil, err
	}

	verdict := BuildVerdict(req.TestCases, results)

	s.logger.Info("Evaluation finished",
		"languageId", req.LanguageID,
		"allPassed", verdict.AllPassed,
		"elapsed", time.Since(started))

	return verdict, nil
}
