package domain

import (
	"time"

	"github.com/google/uuid"
)

// Submission is append-only: created once per evaluation, never updated.
type Submission struct {
	ID            uuid.UUID `db:"id" json:"id"`
	UserID        uuid.UUID `db:"user_id" json:"userId"`
	ProblemID     uuid.UUID `db:"problem_id" json:"problemId"`
	SourceCode    string    `db:"source_code" json:"sourceCode"`
	Language      string    `db:"language" json:"language"`
	Stdin         *string   `db:"stdin" json:"stdin"`
	Stdout        *string   `db:"stdout" json:"stdout"`
	Stderr        *string   `db:"stderr" json:"stderr"`
	CompileOutput *string   `db:"compile_output" json:"compileOutput"`
	Status        string    `db:"status" json:"status"`
	Memory        *string   `db:"memory" json:"memory"`
	Time          *string   `db:"time" json:"time"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`

	TestCases []TestCaseResult `db:"-" json:"testCases,omitempty"`
}

// NewSubmission creates a new submission
func NewSubmission(userID, problemID uuid.UUID, sourceCode, language string) *Submission {
	return &Submission{
		ID:         uuid.New(),
		UserID:     userID,
		ProblemID:  problemID,
		SourceCode: sourceCode,
		Language:   language,
		CreatedAt:  time.Now().UTC(),
	}
}

func (s *Submission) Accepted() bool {
	return s.Status == SubmissionStatusAccepted
}

type SubmissionTable struct {
	ID            string
	UserID        string
	ProblemID     string
	SourceCode    string
	Language      string
	Stdin         string
	Stdout        string
	Stderr        string
	CompileOutput string
	Status        string
	Memory        string
	Time          string
	CreatedAt     string
}

func GetSubmissionTable() SubmissionTable {
	return SubmissionTable{
		ID:            "id",
		UserID:        "user_id",
		ProblemID:     "problem_id",
		SourceCode:    "source_code",
		Language:      "language",
		Stdin:         "stdin",
		Stdout:        "stdout",
		Stderr:        "stderr",
		CompileOutput: "compile_output",
		Status:        "status",
		Memory:        "memory",
		Time:          "time",
		CreatedAt:     "created_at",
	}
}

func (SubmissionTable) TableName() string {
	return "submissions"
}

func (t SubmissionTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.ProblemID, t.SourceCode, t.Language, t.Stdin, t.Stdout,
		t.Stderr, t.CompileOutput, t.Status, t.Memory, t.Time, t.CreatedAt,
	}
}

// ProblemSolvedTable marks a (user, problem) pair as solved; unique per pair.
type ProblemSolvedTable struct {
	ID        string
	UserID    string
	ProblemID string
	CreatedAt string
}

func GetProblemSolvedTable() ProblemSolvedTable {
	return ProblemSolvedTable{
		ID:        "id",
		UserID:    "user_id",
		ProblemID: "problem_id",
		CreatedAt: "created_at",
	}
}

func (ProblemSolvedTable) TableName() string {
	return "problem_solved"
}
