package playlist

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/codearena.net/internal/adapter/logging"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/static/errs"
)

type memRepo struct {
	playlists map[uuid.UUID]*domain.Playlist
	entries   map[uuid.UUID]map[uuid.UUID]bool
}

func newMemRepo() *memRepo {
	return &memRepo{
		playlists: map[uuid.UUID]*domain.Playlist{},
		entries:   map[uuid.UUID]map[uuid.UUID]bool{},
	}
}

func (m *memRepo) Create(_ context.Context, p *domain.Playlist) error {
	for _, existing := range m.playlists {
		if existing.UserID == p.UserID && existing.Name == p.Name {
			return fmt.Errorf("%w: playlist %q", errs.Conflict, p.Name)
		}
	}
	m.playlists[p.ID] = p
	m.entries[p.ID] = map[uuid.UUID]bool{}
	return nil
}

func (m *memRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.Playlist, error) {
	out := []*domain.Playlist{}
	for _, p := range m.playlists {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memRepo) Get(_ context.Context, id, userID uuid.UUID) (*domain.Playlist, error) {
	p, ok := m.playlists[id]
	if !ok || p.UserID != userID {
		return nil, nil
	}
	return p, nil
}

func (m *memRepo) AddProblems(_ context.Context, id uuid.UUID, problemIDs []uuid.UUID) (int64, error) {
	var added int64
	for _, pid := range problemIDs {
		if !m.entries[id][pid] {
			m.entries[id][pid] = true
			added++
		}
	}
	return added, nil
}

func (m *memRepo) RemoveProblems(_ context.Context, id uuid.UUID, problemIDs []uuid.UUID) (int64, error) {
	var removed int64
	for _, pid := range problemIDs {
		if m.entries[id][pid] {
			delete(m.entries[id], pid)
			removed++
		}
	}
	return removed, nil
}

func (m *memRepo) Delete(_ context.Context, id, userID uuid.UUID) error {
	p, ok := m.playlists[id]
	if !ok || p.UserID != userID {
		return errs.NotFound
	}
	delete(m.playlists, id)
	return nil
}

func TestCreateRequiresName(t *testing.T) {
	svc := NewPlaylistService(newMemRepo(), logging.NewNopLogger())
	_, err := svc.Create(context.Background(), uuid.New(), CreateInput{Name: "  "})
	assert.ErrorIs(t, err, errs.InvalidInput)
}

func TestCreateDuplicateNameConflicts(t *testing.T) {
	svc := NewPlaylistService(newMemRepo(), logging.NewNopLogger())
	userID := uuid.New()
	_, err := svc.Create(context.Background(), userID, CreateInput{Name: "DP"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), userID, CreateInput{Name: "DP"})
	assert.ErrorIs(t, err, errs.Conflict)

	_, err = svc.Create(context.Background(), uuid.New(), CreateInput{Name: "DP"})
	assert.NoError(t, err, "names are unique per user only")
}

func TestAddProblemsIgnoresDuplicates(t *testing.T) {
	svc := NewPlaylistService(newMemRepo(), logging.NewNopLogger())
	userID := uuid.New()
	p, err := svc.Create(context.Background(), userID, CreateInput{Name: "DP"})
	require.NoError(t, err)
	a, b := uuid.New(), uuid.New()

	added, err := svc.AddProblems(context.Background(), userID, p.ID, []uuid.UUID{a, a, b})
	require.NoError(t, err)
	assert.EqualValues(t, 2, added)

	added, err = svc.AddProblems(context.Background(), userID, p.ID, []uuid.UUID{a})
	require.NoError(t, err)
	assert.Zero(t, added)

	removed, err := svc.RemoveProblems(context.Background(), userID, p.ID, []uuid.UUID{a})
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)
}

func TestAddProblemsRequiresIDs(t *testing.T) {
	svc := NewPlaylistService(newMemRepo(), logging.NewNopLogger())
	_, err := svc.AddProblems(context.Background(), uuid.New(), uuid.New(), nil)
	assert.ErrorIs(t, err, errs.InvalidInput)
}

func TestOtherUsersPlaylistIsNotFound(t *testing.T) {
	svc := NewPlaylistService(newMemRepo(), logging.NewNopLogger())
	owner := uuid.New()
	p, err := svc.Create(context.Background(), owner, CreateInput{Name: "DP"})
	require.NoError(t, err)

	stranger := uuid.New()
	_, err = svc.Get(context.Background(), stranger, p.ID)
	assert.ErrorIs(t, err, errs.NotFound)
	_, err = svc.AddProblems(context.Background(), stranger, p.ID, []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, errs.NotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), stranger, p.ID), errs.NotFound)

	require.NoError(t, svc.Delete(context.Background(), owner, p.ID))
}
