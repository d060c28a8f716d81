package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"gitlab.com/codearena.net/internal/static/errs"
)

// Playlist is a user's saved collection of problems.
type Playlist struct {
	ID          uuid.UUID         `db:"id" json:"id"`
	Name        string            `db:"name" json:"name"`
	Description *string           `db:"description" json:"description"`
	UserID      uuid.UUID         `db:"user_id" json:"userId"`
	CreatedAt   time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time         `db:"updated_at" json:"updatedAt"`
	Problems    []PlaylistProblem `db:"-" json:"problems"`
}

// PlaylistProblem is a problem entry of a playlist with enough of the problem to list it.
type PlaylistProblem struct {
	PlaylistID uuid.UUID  `db:"playlist_id" json:"playlistId"`
	ProblemID  uuid.UUID  `db:"problem_id" json:"problemId"`
	Title      string     `db:"title" json:"title"`
	Difficulty Difficulty `db:"difficulty" json:"difficulty"`
	AddedAt    time.Time  `db:"created_at" json:"addedAt"`
}

func NewPlaylist(userID uuid.UUID, name string, description *string) (*Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: playlist name is required", errs.InvalidInput)
	}
	now := time.Now().UTC()
	return &Playlist{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
		Problems:    []PlaylistProblem{},
	}, nil
}

type PlaylistTable struct {
	ID          string
	Name        string
	Description string
	UserID      string
	CreatedAt   string
	UpdatedAt   string
}

func GetPlaylistTable() PlaylistTable {
	return PlaylistTable{
		ID:          "id",
		Name:        "name",
		Description: "description",
		UserID:      "user_id",
		CreatedAt:   "created_at",
		UpdatedAt:   "updated_at",
	}
}

func (PlaylistTable) TableName() string {
	return "playlists"
}

type ProblemsInPlaylistTable struct {
	ID         string
	PlaylistID string
	ProblemID  string
	CreatedAt  string
}

func GetProblemsInPlaylistTable() ProblemsInPlaylistTable {
	return ProblemsInPlaylistTable{
		ID:         "id",
		PlaylistID: "playlist_id",
		ProblemID:  "problem_id",
		CreatedAt:  "created_at",
	}
}

func (ProblemsInPlaylistTable) TableName() string {
	return "problems_in_playlist"
}
