package playlist

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/ports/secondary"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/static/errs"
)

var _ IPlaylistService = (*PlaylistService)(nil)

type PlaylistService struct {
	repo   secondary.PlaylistRepository
	logger primary.Logger
}

func NewPlaylistService(repo secondary.PlaylistRepository, logger primary.Logger) *PlaylistService {
	return &PlaylistService{
		repo:   repo,
		logger: logger,
	}
}

func (s *PlaylistService) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*domain.Playlist, error) {
	playlist, err := domain.NewPlaylist(userID, in.Name, in.Description)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, playlist); err != nil {
		return nil, err
	}
	s.logger.Info("Playlist created", "playlistId", playlist.ID, "userId", userID)
	return playlist, nil
}

func (s *PlaylistService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Playlist, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *PlaylistService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Playlist, error) {
	playlist, err := s.repo.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if playlist == nil {
		return nil, fmt.Errorf("%w: playlist %s", errs.NotFound, id)
	}
	return playlist, nil
}

func (s *PlaylistService) AddProblems(ctx context.Context, userID, id uuid.UUID, problemIDs []uuid.UUID) (int64, error) {
	problemIDs, err := distinct(problemIDs)
	if err != nil {
		return 0, err
	}
	if _, err := s.Get(ctx, userID, id); err != nil {
		return 0, err
	}
	added, err := s.repo.AddProblems(ctx, id, problemIDs)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("Problems added to playlist", "playlistId", id, "requested", len(problemIDs), "added", added)
	return added, nil
}

func (s *PlaylistService) RemoveProblems(ctx context.Context, userID, id uuid.UUID, problemIDs []uuid.UUID) (int64, error) {
	problemIDs, err := distinct(problemIDs)
	if err != nil {
		return 0, err
	}
	if _, err := s.Get(ctx, userID, id); err != nil {
		return 0, err
	}
	return s.repo.RemoveProblems(ctx, id, problemIDs)
}

func (s *PlaylistService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.logger.Info("Playlist deleted", "playlistId", id, "userId", userID)
	return nil
}

func distinct(ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: problemIds must not be empty", errs.InvalidInput)
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
