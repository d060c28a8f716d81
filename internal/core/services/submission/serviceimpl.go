package submission

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/ports/secondary"
	"gitlab.com/codearena.net/internal/core/services/evaluation"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/static/errs"
)

var _ ISubmissionService = (*SubmissionService)(nil)

type SubmissionService struct {
	evaluator   evaluation.IEvaluationService
	languages   secondary.JudgeClient
	problems    secondary.ProblemRepository
	submissions secondary.SubmissionRepository
	logger      primary.Logger
}

func NewSubmissionService(
	evaluator evaluation.IEvaluationService,
	languages secondary.JudgeClient,
	problems secondary.ProblemRepository,
	submissions secondary.SubmissionRepository,
	logger primary.Logger,
) *SubmissionService {
	return &SubmissionService{
		evaluator:   evaluator,
		languages:   languages,
		problems:    problems,
		submissions: submissions,
		logger:      logger,
	}
}

func (s *SubmissionService) Execute(ctx context.Context, userID uuid.UUID, in ExecuteInput) (*domain.Submission, *domain.EvaluationVerdict, error) {
	testCases, err := domain.NewTestCases(in.Stdin, in.ExpectedOutputs)
	if err != nil {
		return nil, nil, err
	}
	language, err := s.languages.LanguageNameFor(in.LanguageID)
	if err != nil {
		return nil, nil, err
	}

	problem, err := s.problems.Get(ctx, in.ProblemID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load problem: %w", err)
	}
	if problem == nil {
		return nil, nil, fmt.Errorf("%w: problem %s", errs.NotFound, in.ProblemID)
	}

	verdict, err := s.evaluator.Evaluate(ctx, domain.EvaluationRequest{
		SourceCode: in.SourceCode,
		LanguageID: in.LanguageID,
		TestCases:  testCases,
		Mode:       domain.ModeSubmission,
	})
	if err != nil {
		return nil, nil, err
	}

	submission, err := s.Record(ctx, RecordInput{
		UserID:     userID,
		ProblemID:  in.ProblemID,
		SourceCode: in.SourceCode,
		Language:   language,
		Stdin:      in.Stdin,
	}, verdict)
	if err != nil {
		return nil, verdict, err
	}
	return submission, verdict, nil
}

func (s *SubmissionService) Record(ctx context.Context, in RecordInput, verdict *domain.EvaluationVerdict) (*domain.Submission, error) {
	submission, err := newSubmissionFromVerdict(in, verdict)
	if err != nil {
		return nil, &errs.StorageError{Op: "encode submission", Err: err}
	}

	if err := s.submissions.CreateWithResults(ctx, submission, verdict.AllPassed); err != nil {
		s.logger.Error("Failed to record submission",
			"userId", in.UserID,
			"problemId", in.ProblemID,
			"error", err)
		return nil, &errs.StorageError{Op: "record submission", Err: err}
	}

	s.logger.Info("Submission recorded",
		"submissionId", submission.ID,
		"problemId", in.ProblemID,
		"status", submission.Status)
	return submission, nil
}

func newSubmissionFromVerdict(in RecordInput, verdict *domain.EvaluationVerdict) (*domain.Submission, error) {
	submission := domain.NewSubmission(in.UserID, in.ProblemID, in.SourceCode, in.Language)
	submission.Status = verdict.OverallStatus()
	stdin := strings.Join(in.Stdin, "\n")
	submission.Stdin = &stdin

	n := len(verdict.Cases)
	stdouts := make([]string, n)
	stderrs := make([]*string, n)
	compileOutputs := make([]*string, n)
	memories := make([]*string, n)
	times := make([]*string, n)
	submission.TestCases = make([]domain.TestCaseResult, n)

	for i, c := range verdict.Cases {
		stdouts[i] = c.Stdout
		stderrs[i] = c.Stderr
		compileOutputs[i] = c.CompileOutput
		memories[i] = c.Memory
		times[i] = c.Time

		stdout := c.Stdout
		submission.TestCases[i] = domain.TestCaseResult{
			ID:            uuid.New(),
			SubmissionID:  submission.ID,
			TestCase:      c.TestCase,
			Passed:        c.Passed,
			Stdout:        &stdout,
			Expected:      c.Expected,
			Stderr:        c.Stderr,
			CompileOutput: c.CompileOutput,
			Status:        c.Status,
			Memory:        c.Memory,
			Time:          c.Time,
			CreatedAt:     submission.CreatedAt,
		}
	}

	var err error
	if submission.Stdout, err = jsonArray(stdouts); err != nil {
		return nil, err
	}
	for _, col := range []struct {
		dst    **string
		values []*string
	}{
		{&submission.Stderr, stderrs},
		{&submission.CompileOutput, compileOutputs},
		{&submission.Memory, memories},
		{&submission.Time, times},
	} {
		if !anySet(col.values) {
			continue
		}
		if *col.dst, err = jsonArray(col.values); err != nil {
			return nil, err
		}
	}
	return submission, nil
}

func jsonArray(v interface{}) (*string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(raw)
	return &s, nil
}

func anySet(values []*string) bool {
	for _, v := range values {
		if v != nil {
			return true
		}
	}
	return false
}

func (s *SubmissionService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Submission, error) {
	submission, err := s.submissions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if submission == nil || submission.UserID != userID {
		return nil, fmt.Errorf("%w: submission %s", errs.NotFound, id)
	}
	return submission, nil
}

func (s *SubmissionService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Submission, error) {
	return s.submissions.ListByUser(ctx, userID)
}

func (s *SubmissionService) ListByUserAndProblem(ctx context.Context, userID, problemID uuid.UUID) ([]*domain.Submission, error) {
	return s.submissions.ListByUserAndProblem(ctx, userID, problemID)
}

func (s *SubmissionService) CountByProblem(ctx context.Context, problemID uuid.UUID) (int, error) {
	return s.submissions.CountByProblem(ctx, problemID)
}
