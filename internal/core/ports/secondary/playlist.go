package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codearena.net/internal/domain"
)

type PlaylistRepository interface {
	Create(ctx context.Context, playlist *domain.Playlist) error

	// ListByUser returns the user's playlists with their problems
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Playlist, error)

	// Get returns nil, nil when no playlist with that id belongs to userID
	Get(ctx context.Context, id, userID uuid.UUID) (*domain.Playlist, error)

	// AddProblems ignores problems already in the playlist and returns how many were added
	AddProblems(ctx context.Context, playlistID uuid.UUID, problemIDs []uuid.UUID) (int64, error)

	RemoveProblems(ctx context.Context, playlistID uuid.UUID, problemIDs []uuid.UUID) (int64, error)

	Delete(ctx context.Context, id, userID uuid.UUID) error
}
