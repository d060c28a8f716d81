package playlist

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codearena.net/internal/domain"
)

type CreateInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// IPlaylistService scopes every playlist to its owner; other users' playlists are reported as not found.
type IPlaylistService interface {
	Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*domain.Playlist, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Playlist, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Playlist, error)
	AddProblems(ctx context.Context, userID, id uuid.UUID, problemIDs []uuid.UUID) (int64, error)
	RemoveProblems(ctx context.Context, userID, id uuid.UUID, problemIDs []uuid.UUID) (int64, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
