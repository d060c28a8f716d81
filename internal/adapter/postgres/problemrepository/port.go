package problemrepository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/ports/secondary"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/static/errs"
	querybuilder "gitlab.com/codearena.net/internal/utils"
)

var _ secondary.ProblemRepository = (*ProblemRepository)(nil)

// ProblemRepository stores problems with their JSON documents in jsonb columns.
type ProblemRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func NewProblemRepository(db *sqlx.DB, logger primary.Logger, schema string) *ProblemRepository {
	return &ProblemRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

type problemRow struct {
	ID                 uuid.UUID      `db:"id"`
	UserID             uuid.UUID      `db:"user_id"`
	Title              string         `db:"title"`
	Description        string         `db:"description"`
	Difficulty         string         `db:"difficulty"`
	Tags               pq.StringArray `db:"tags"`
	Examples           []byte         `db:"examples"`
	Constraints        string         `db:"constraints"`
	Hints              *string        `db:"hints"`
	Editorial          *string        `db:"editorial"`
	TestCases          []byte         `db:"testcases"`
	CodeSnippets       []byte         `db:"code_snippets"`
	ReferenceSolutions []byte         `db:"reference_solutions"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

func (r problemRow) toDomain() (*domain.Problem, error) {
	p := &domain.Problem{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		Difficulty:  domain.Difficulty(r.Difficulty),
		Tags:        []string(r.Tags),
		Constraints: r.Constraints,
		Hints:       r.Hints,
		Editorial:   r.Editorial,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	docs := []struct {
		name string
		raw  []byte
		dst  interface{}
	}{
		{"examples", r.Examples, &p.Examples},
		{"testcases", r.TestCases, &p.TestCases},
		{"code_snippets", r.CodeSnippets, &p.CodeSnippets},
		{"reference_solutions", r.ReferenceSolutions, &p.ReferenceSolutions},
	}
	for _, doc := range docs {
		if len(doc.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(doc.raw, doc.dst); err != nil {
			return nil, fmt.Errorf("failed to decode %s of problem %s: %w", doc.name, r.ID, err)
		}
	}
	return p, nil
}

// jsonText encodes v for a jsonb parameter. lib/pq sends []byte as bytea, so a string is used.
func jsonText(v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

type problemDocs struct {
	examples, testCases, codeSnippets, referenceSolutions string
}

func encodeDocs(p *domain.Problem) (problemDocs, error) {
	var (
		docs problemDocs
		err  error
	)
	examples := p.Examples
	if examples == nil {
		examples = map[string]domain.Example{}
	}
	snippets := p.CodeSnippets
	if snippets == nil {
		snippets = map[string]string{}
	}
	if docs.examples, err = jsonText(examples); err != nil {
		return docs, fmt.Errorf("failed to encode examples: %w", err)
	}
	if docs.testCases, err = jsonText(p.TestCases); err != nil {
		return docs, fmt.Errorf("failed to encode testcases: %w", err)
	}
	if docs.codeSnippets, err = jsonText(snippets); err != nil {
		return docs, fmt.Errorf("failed to encode code snippets: %w", err)
	}
	if docs.referenceSolutions, err = jsonText(p.ReferenceSolutions); err != nil {
		return docs, fmt.Errorf("failed to encode reference solutions: %w", err)
	}
	return docs, nil
}

func tags(p *domain.Problem) pq.StringArray {
	if p.Tags == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(p.Tags)
}

func (r *ProblemRepository) Create(ctx context.Context, problem *domain.Problem) error {
	docs, err := encodeDocs(problem)
	if err != nil {
		return err
	}

	tbl := domain.GetProblemTable()
	query, args, err := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.Columns()...).
		Into(tbl.TableName()).
		Values(
			problem.ID, problem.UserID, problem.Title, problem.Description, string(problem.Difficulty),
			tags(problem), docs.examples, problem.Constraints, problem.Hints, problem.Editorial,
			docs.testCases, docs.codeSnippets, docs.referenceSolutions, problem.CreatedAt, problem.UpdatedAt,
		).
		BuildExec()
	if err != nil {
		return err
	}

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Failed to create problem", "problem_id", problem.ID, "error", err)
		return fmt.Errorf("failed to create problem: %w", err)
	}
	return nil
}

func (r *ProblemRepository) Update(ctx context.Context, problem *domain.Problem) error {
	docs, err := encodeDocs(problem)
	if err != nil {
		return err
	}

	tbl := domain.GetProblemTable()
	query, args, err := querybuilder.NewQueryBuilder(r.schema).
		Update(tbl.TableName(), querybuilder.UpdateData{
			tbl.Title:              problem.Title,
			tbl.Description:        problem.Description,
			tbl.Difficulty:         string(problem.Difficulty),
			tbl.Tags:               tags(problem),
			tbl.Examples:           docs.examples,
			tbl.Constraints:        problem.Constraints,
			tbl.Hints:              problem.Hints,
			tbl.Editorial:          problem.Editorial,
			tbl.TestCases:          docs.testCases,
			tbl.CodeSnippets:       docs.codeSnippets,
			tbl.ReferenceSolutions: docs.referenceSolutions,
			tbl.UpdatedAt:          problem.UpdatedAt,
		}).
		Where(fmt.Sprintf("%s = ?", tbl.ID), problem.ID).
		BuildExec()
	if err != nil {
		return err
	}

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to update problem", "problem_id", problem.ID, "error", err)
		return fmt.Errorf("failed to update problem: %w", err)
	}
	return requireAffected(res, problem.ID)
}

func (r *ProblemRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Problem, error) {
	tbl := domain.GetProblemTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.Columns()...).
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.ID), id).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var row problemRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}
	return row.toDomain()
}

func (r *ProblemRepository) List(ctx context.Context) ([]*domain.Problem, error) {
	tbl := domain.GetProblemTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.Columns()...).
		From(tbl.TableName()).
		OrderBy(tbl.CreatedAt, false).
		Build()

	return r.selectProblems(ctx, query, args)
}

func (r *ProblemRepository) ListSolvedBy(ctx context.Context, userID uuid.UUID) ([]*domain.Problem, error) {
	tbl := domain.GetProblemTable()
	solvedTbl := domain.GetProblemSolvedTable()

	cols := make([]string, 0, len(tbl.Columns()))
	for _, col := range tbl.Columns() {
		cols = append(cols, "p."+col)
	}
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(cols...).
		From(tbl.TableName()+" p").
		Join(querybuilder.JoinTypeInner, solvedTbl.TableName(), "ps", "ps."+solvedTbl.ProblemID+" = p."+tbl.ID).
		Where("ps."+solvedTbl.UserID+" = ?", userID).
		OrderBy("ps."+solvedTbl.CreatedAt, false).
		Build()

	return r.selectProblems(ctx, query, args)
}

func (r *ProblemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tbl := domain.GetProblemTable()
	query, args, err := querybuilder.NewQueryBuilder(r.schema).
		Delete(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.ID), id).
		BuildExec()
	if err != nil {
		return err
	}

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to delete problem", "problem_id", id, "error", err)
		return fmt.Errorf("failed to delete problem: %w", err)
	}
	return requireAffected(res, id)
}

func (r *ProblemRepository) selectProblems(ctx context.Context, query string, args []interface{}) ([]*domain.Problem, error) {
	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var rows []problemRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list problems: %w", err)
	}

	problems := make([]*domain.Problem, 0, len(rows))
	for _, row := range rows {
		p, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		problems = append(problems, p)
	}
	return problems, nil
}

func requireAffected(res sql.Result, id uuid.UUID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: problem %s", errs.NotFound, id)
	}
	return nil
}
