package problem

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"gitlab.com/codearena.net/internal/config"
	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/ports/secondary"
	"gitlab.com/codearena.net/internal/core/services/evaluation"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/static/errs"
)

var _ IProblemService = (*ProblemService)(nil)

type ProblemService struct {
	evaluator evaluation.IEvaluationService
	languages secondary.JudgeClient
	repo      secondary.ProblemRepository
	cache     secondary.ProblemCache
	cfg       *config.ProblemSvcCfg
	logger    primary.Logger
}

func NewProblemService(
	evaluator evaluation.IEvaluationService,
	languages secondary.JudgeClient,
	repo secondary.ProblemRepository,
	cache secondary.ProblemCache,
	cfg *config.ProblemSvcCfg,
	logger primary.Logger,
) *ProblemService {
	return &ProblemService{
		evaluator: evaluator,
		languages: languages,
		repo:      repo,
		cache:     cache,
		cfg:       cfg,
		logger:    logger,
	}
}

func (s *ProblemService) Create(ctx context.Context, userID uuid.UUID, in domain.ProblemInput) (*domain.Problem, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.validateReferenceSolutions(ctx, in); err != nil {
		return nil, err
	}

	problem := domain.NewProblem(userID, in)
	if err := s.repo.Create(ctx, problem); err != nil {
		return nil, &errs.StorageError{Op: "create problem", Err: err}
	}

	s.logger.Info("Problem created", "problemId", problem.ID, "title", problem.Title)
	return problem, nil
}

func (s *ProblemService) Update(ctx context.Context, id uuid.UUID, in domain.ProblemInput) (*domain.Problem, error) {
	problem, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load problem: %w", err)
	}
	if problem == nil {
		return nil, fmt.Errorf("%w: problem %s", errs.NotFound, id)
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.validateReferenceSolutions(ctx, in); err != nil {
		return nil, err
	}

	problem.Apply(in, time.Now().UTC())
	if err := s.repo.Update(ctx, problem); err != nil {
		return nil, &errs.StorageError{Op: "update problem", Err: err}
	}
	s.invalidate(ctx, id)

	s.logger.Info("Problem updated", "problemId", id)
	return problem, nil
}

// validateReferenceSolutions judges every reference solution against the
// input's test cases. Languages are resolved up front so an unknown one
// fails before anything reaches the judge.
func (s *ProblemService) validateReferenceSolutions(ctx context.Context, in domain.ProblemInput) error {
	type solution struct {
		language   string
		languageID int
		code       string
	}

	names := make([]string, 0, len(in.ReferenceSolutions))
	for name := range in.ReferenceSolutions {
		names = append(names, name)
	}
	sort.Strings(names)

	solutions := make([]solution, 0, len(names))
	for _, name := range names {
		id, err := s.languages.LanguageIDFor(name)
		if err != nil {
			return err
		}
		solutions = append(solutions, solution{
			language:   strings.ToUpper(strings.TrimSpace(name)),
			languageID: id,
			code:       in.ReferenceSolutions[name],
		})
	}

	limit := s.cfg.ValidationConcurrency
	if limit < 1 {
		limit = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, sol := range solutions {
		sol := sol
		g.Go(func() error {
			verdict, err := s.evaluator.Evaluate(gctx, domain.EvaluationRequest{
				SourceCode: sol.code,
				LanguageID: sol.languageID,
				TestCases:  in.TestCases,
				Mode:       domain.ModeValidation,
			})
			if err != nil {
				return err
			}
			if idx, failed := verdict.FirstFailure(); failed {
				s.logger.Warn("Reference solution rejected",
					"language", sol.language,
					"testCase", idx+1,
					"status", verdict.Cases[idx].Status)
				return &errs.ReferenceSolutionFailedError{
					Language:      sol.language,
					TestCaseIndex: idx,
					Status:        verdict.Cases[idx].Status,
				}
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *ProblemService) Get(ctx context.Context, id uuid.UUID) (*domain.Problem, error) {
	cached, err := s.cache.Get(ctx, id)
	if err != nil {
		s.logger.Warn("Problem cache unavailable", "problemId", id, "error", err)
	}
	if cached != nil {
		return cached, nil
	}

	problem, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load problem: %w", err)
	}
	if problem == nil {
		return nil, fmt.Errorf("%w: problem %s", errs.NotFound, id)
	}

	if err := s.cache.Set(ctx, problem); err != nil {
		s.logger.Warn("Failed to cache problem", "problemId", id, "error", err)
	}
	return problem, nil
}

func (s *ProblemService) List(ctx context.Context) ([]*domain.Problem, error) {
	return s.repo.List(ctx)
}

func (s *ProblemService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	s.logger.Info("Problem deleted", "problemId", id)
	return nil
}

func (s *ProblemService) ListSolvedBy(ctx context.Context, userID uuid.UUID) ([]*domain.Problem, error) {
	return s.repo.ListSolvedBy(ctx, userID)
}

func (s *ProblemService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("Failed to invalidate cached problem", "problemId", id, "error", err)
	}
}
