package submissionrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/ports/secondary"
	"gitlab.com/codearena.net/internal/domain"
	querybuilder "gitlab.com/codearena.net/internal/utils"
)

var _ secondary.SubmissionRepository = (*SubmissionRepository)(nil)

// SubmissionRepository implements secondary.SubmissionRepository with PostgreSQL.
type SubmissionRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func NewSubmissionRepository(db *sqlx.DB, logger primary.Logger, schema string) *SubmissionRepository {
	return &SubmissionRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

// CreateWithResults writes the submission, the solved marker and every test
// case row in one transaction. Nothing is kept if any statement fails.
func (r *SubmissionRepository) CreateWithResults(ctx context.Context, submission *domain.Submission, markSolved bool) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.logger.Error("Failed to rollback submission", "submission_id", submission.ID, "error", rbErr)
			}
		}
	}()

	if err = r.insertSubmission(ctx, tx, submission); err != nil {
		return err
	}
	if markSolved {
		if err = r.markSolved(ctx, tx, submission.UserID, submission.ProblemID); err != nil {
			return err
		}
	}
	if err = r.insertResults(ctx, tx, submission); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit submission: %w", err)
	}

	r.logger.Debug("Submission stored",
		"submission_id", submission.ID,
		"test_cases", len(submission.TestCases),
		"solved", markSolved,
	)
	return nil
}

func (r *SubmissionRepository) insertSubmission(ctx context.Context, tx *sqlx.Tx, s *domain.Submission) error {
	tbl := domain.GetSubmissionTable()
	query, args, err := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.Columns()...).
		Into(tbl.TableName()).
		Values(
			s.ID, s.UserID, s.ProblemID, s.SourceCode, s.Language, s.Stdin, s.Stdout,
			s.Stderr, s.CompileOutput, s.Status, s.Memory, s.Time, s.CreatedAt,
		).
		BuildExec()
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}
	return nil
}

func (r *SubmissionRepository) markSolved(ctx context.Context, tx *sqlx.Tx, userID, problemID uuid.UUID) error {
	tbl := domain.GetProblemSolvedTable()
	query, args, err := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.ID, tbl.UserID, tbl.ProblemID).
		Into(tbl.TableName()).
		Values(uuid.New(), userID, problemID).
		OnConflict(tbl.UserID, tbl.ProblemID).
		DoNothing().
		BuildExec()
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to mark problem solved: %w", err)
	}
	return nil
}

func (r *SubmissionRepository) insertResults(ctx context.Context, tx *sqlx.Tx, s *domain.Submission) error {
	if len(s.TestCases) == 0 {
		return nil
	}

	tbl := domain.GetTestCaseResultTable()
	qb := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.Columns()...).
		Into(tbl.TableName())
	for i := range s.TestCases {
		tc := &s.TestCases[i]
		tc.SubmissionID = s.ID
		qb.Values(
			tc.ID, tc.SubmissionID, tc.TestCase, tc.Passed, tc.Stdout, tc.Expected,
			tc.Stderr, tc.CompileOutput, tc.Status, tc.Memory, tc.Time, tc.CreatedAt,
		)
	}
	query, args, err := qb.BuildExec()
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to insert test case results: %w", err)
	}
	return nil
}

func (r *SubmissionRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	tbl := domain.GetSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.Columns()...).
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.ID), id).
		Build()

	var submission domain.Submission
	if err := r.db.GetContext(ctx, &submission, r.db.Rebind(query), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	submissions := []*domain.Submission{&submission}
	if err := r.attachResults(ctx, submissions); err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *SubmissionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Submission, error) {
	tbl := domain.GetSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.Columns()...).
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.UserID), userID).
		OrderBy(tbl.CreatedAt, false).
		Build()

	return r.list(ctx, query, args)
}

func (r *SubmissionRepository) ListByUserAndProblem(ctx context.Context, userID, problemID uuid.UUID) ([]*domain.Submission, error) {
	tbl := domain.GetSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.Columns()...).
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.UserID), userID).
		And(fmt.Sprintf("%s = ?", tbl.ProblemID), problemID).
		OrderBy(tbl.CreatedAt, false).
		Build()

	return r.list(ctx, query, args)
}

func (r *SubmissionRepository) CountByProblem(ctx context.Context, problemID uuid.UUID) (int, error) {
	tbl := domain.GetSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select("COUNT(*)").
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.ProblemID), problemID).
		Build()

	var count int
	if err := r.db.GetContext(ctx, &count, r.db.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("failed to count submissions: %w", err)
	}
	return count, nil
}

func (r *SubmissionRepository) list(ctx context.Context, query string, args []interface{}) ([]*domain.Submission, error) {
	var submissions []*domain.Submission
	if err := r.db.SelectContext(ctx, &submissions, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	if submissions == nil {
		submissions = []*domain.Submission{}
	}
	if err := r.attachResults(ctx, submissions); err != nil {
		return nil, err
	}
	return submissions, nil
}

// attachResults loads the test case rows of every submission with one query.
func (r *SubmissionRepository) attachResults(ctx context.Context, submissions []*domain.Submission) error {
	if len(submissions) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*domain.Submission, len(submissions))
	ids := make([]uuid.UUID, 0, len(submissions))
	for _, s := range submissions {
		byID[s.ID] = s
		ids = append(ids, s.ID)
		s.TestCases = []domain.TestCaseResult{}
	}

	tbl := domain.GetTestCaseResultTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.Columns()...).
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s IN (?)", tbl.SubmissionID), ids).
		OrderBy(tbl.SubmissionID, true).
		OrderBy(tbl.TestCase, true).
		Build()

	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return fmt.Errorf("failed to expand submission ids: %w", err)
	}

	var results []domain.TestCaseResult
	if err := r.db.SelectContext(ctx, &results, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to load test case results: %w", err)
	}
	for _, res := range results {
		if s, ok := byID[res.SubmissionID]; ok {
			s.TestCases = append(s.TestCases, res)
		}
	}
	return nil
}
