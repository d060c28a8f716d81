package playlistrepository

import (
	"context"
	"database/sql"
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

var _ secondary.PlaylistRepository = (*PlaylistRepository)(nil)

const uniqueViolation = "23505"

type PlaylistRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func NewPlaylistRepository(db *sqlx.DB, logger primary.Logger, schema string) *PlaylistRepository {
	return &PlaylistRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (r *PlaylistRepository) Create(ctx context.Context, playlist *domain.Playlist) error {
	tbl := domain.GetPlaylistTable()
	query, args, err := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.ID, tbl.Name, tbl.Description, tbl.UserID, tbl.CreatedAt, tbl.UpdatedAt).
		Into(tbl.TableName()).
		Values(playlist.ID, playlist.Name, playlist.Description, playlist.UserID, playlist.CreatedAt, playlist.UpdatedAt).
		BuildExec()
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("%w: playlist %q", errs.Conflict, playlist.Name)
		}
		r.logger.Error("Failed to create playlist", "name", playlist.Name, "error", err)
		return fmt.Errorf("failed to create playlist: %w", err)
	}
	return nil
}

func (r *PlaylistRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Playlist, error) {
	tbl := domain.GetPlaylistTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.ID, tbl.Name, tbl.Description, tbl.UserID, tbl.CreatedAt, tbl.UpdatedAt).
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.UserID), userID).
		OrderBy(tbl.CreatedAt, false).
		Build()

	var playlists []*domain.Playlist
	if err := r.db.SelectContext(ctx, &playlists, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	if playlists == nil {
		playlists = []*domain.Playlist{}
	}
	if err := r.attachProblems(ctx, playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

func (r *PlaylistRepository) Get(ctx context.Context, id, userID uuid.UUID) (*domain.Playlist, error) {
	tbl := domain.GetPlaylistTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.ID, tbl.Name, tbl.Description, tbl.UserID, tbl.CreatedAt, tbl.UpdatedAt).
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.ID), id).
		And(fmt.Sprintf("%s = ?", tbl.UserID), userID).
		Build()

	var playlist domain.Playlist
	if err := r.db.GetContext(ctx, &playlist, r.db.Rebind(query), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}
	if err := r.attachProblems(ctx, []*domain.Playlist{&playlist}); err != nil {
		return nil, err
	}
	return &playlist, nil
}

func (r *PlaylistRepository) AddProblems(ctx context.Context, playlistID uuid.UUID, problemIDs []uuid.UUID) (int64, error) {
	if len(problemIDs) == 0 {
		return 0, nil
	}

	tbl := domain.GetProblemsInPlaylistTable()
	now := time.Now().UTC()
	qb := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.ID, tbl.PlaylistID, tbl.ProblemID, tbl.CreatedAt).
		Into(tbl.TableName())
	for _, problemID := range problemIDs {
		qb.Values(uuid.New(), playlistID, problemID, now)
	}
	query, args, err := qb.OnConflict(tbl.PlaylistID, tbl.ProblemID).DoNothing().BuildExec()
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		r.logger.Error("Failed to add problems to playlist", "playlist_id", playlistID, "error", err)
		return 0, fmt.Errorf("failed to add problems to playlist: %w", err)
	}
	return res.RowsAffected()
}

func (r *PlaylistRepository) RemoveProblems(ctx context.Context, playlistID uuid.UUID, problemIDs []uuid.UUID) (int64, error) {
	if len(problemIDs) == 0 {
		return 0, nil
	}

	tbl := domain.GetProblemsInPlaylistTable()
	query, args, err := querybuilder.NewQueryBuilder(r.schema).
		Delete(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.PlaylistID), playlistID).
		And(fmt.Sprintf("%s IN (?)", tbl.ProblemID), problemIDs).
		BuildExec()
	if err != nil {
		return 0, err
	}

	query, args, err = sqlx.In(query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to expand problem ids: %w", err)
	}
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("failed to remove problems from playlist: %w", err)
	}
	return res.RowsAffected()
}

func (r *PlaylistRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	tbl := domain.GetPlaylistTable()
	query, args, err := querybuilder.NewQueryBuilder(r.schema).
		Delete(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.ID), id).
		And(fmt.Sprintf("%s = ?", tbl.UserID), userID).
		BuildExec()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: playlist %s", errs.NotFound, id)
	}
	return nil
}

func (r *PlaylistRepository) attachProblems(ctx context.Context, playlists []*domain.Playlist) error {
	if len(playlists) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*domain.Playlist, len(playlists))
	ids := make([]uuid.UUID, 0, len(playlists))
	for _, p := range playlists {
		byID[p.ID] = p
		ids = append(ids, p.ID)
		p.Problems = []domain.PlaylistProblem{}
	}

	pipTbl := domain.GetProblemsInPlaylistTable()
	problemTbl := domain.GetProblemTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(
			"pip."+pipTbl.PlaylistID,
			"pip."+pipTbl.ProblemID,
			"p."+problemTbl.Title,
			"p."+problemTbl.Difficulty,
			"pip."+pipTbl.CreatedAt,
		).
		From(pipTbl.TableName()+" pip").
		Join(querybuilder.JoinTypeInner, problemTbl.TableName(), "p", "p."+problemTbl.ID+" = pip."+pipTbl.ProblemID).
		Where("pip."+pipTbl.PlaylistID+" IN (?)", ids).
		OrderBy("pip."+pipTbl.CreatedAt, true).
		Build()

	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return fmt.Errorf("failed to expand playlist ids: %w", err)
	}

	var entries []domain.PlaylistProblem
	if err := r.db.SelectContext(ctx, &entries, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to load playlist problems: %w", err)
	}
	for _, e := range entries {
		if p, ok := byID[e.PlaylistID]; ok {
			p.Problems = append(p.Problems, e)
		}
	}
	return nil
}
