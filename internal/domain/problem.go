package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"gitlab.com/codearena.net/internal/static/errs"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Example is a worked sample shown with the statement, keyed by language.
type Example struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation,omitempty"`
}

type Problem struct {
	ID                 uuid.UUID          `json:"id"`
	UserID             uuid.UUID          `json:"userId"`
	Title              string             `json:"title"`
	Description        string             `json:"description"`
	Difficulty         Difficulty         `json:"difficulty"`
	Tags               []string           `json:"tags"`
	Examples           map[string]Example `json:"examples"`
	Constraints        string             `json:"constraints"`
	Hints              *string            `json:"hints"`
	Editorial          *string            `json:"editorial"`
	TestCases          []TestCase         `json:"testcases"`
	CodeSnippets       map[string]string  `json:"codeSnippets"`
	ReferenceSolutions map[string]string  `json:"referenceSolutions"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

// ProblemInput is the writable part of a problem, shared by create and update.
type ProblemInput struct {
	Title              string             `json:"title"`
	Description        string             `json:"description"`
	Difficulty         Difficulty         `json:"difficulty"`
	Tags               []string           `json:"tags"`
	Examples           map[string]Example `json:"examples"`
	Constraints        string             `json:"constraints"`
	Hints              *string            `json:"hints"`
	Editorial          *string            `json:"editorial"`
	TestCases          []TestCase         `json:"testcases"`
	CodeSnippets       map[string]string  `json:"codeSnippets"`
	ReferenceSolutions map[string]string  `json:"referenceSolutions"`
}

func (in *ProblemInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", errs.InvalidInput)
	}
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("%w: description is required", errs.InvalidInput)
	}
	if !in.Difficulty.Valid() {
		return fmt.Errorf("%w: difficulty must be one of EASY, MEDIUM, HARD", errs.InvalidInput)
	}
	if len(in.TestCases) == 0 {
		return &errs.InvalidTestCasesError{Reason: "a problem needs at least one test case"}
	}
	if len(in.ReferenceSolutions) == 0 {
		return fmt.Errorf("%w: at least one reference solution is required", errs.InvalidInput)
	}
	return nil
}

// NewProblem creates a problem authored by userID.
func NewProblem(userID uuid.UUID, in ProblemInput) *Problem {
	now := time.Now().UTC()
	p := &Problem{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: now,
	}
	p.Apply(in, now)
	return p
}

// Apply overwrites every writable field with in.
func (p *Problem) Apply(in ProblemInput, now time.Time) {
	p.Title = in.Title
	p.Description = in.Description
	p.Difficulty = in.Difficulty
	p.Tags = in.Tags
	p.Examples = in.Examples
	p.Constraints = in.Constraints
	p.Hints = in.Hints
	p.Editorial = in.Editorial
	p.TestCases = in.TestCases
	p.CodeSnippets = in.CodeSnippets
	p.ReferenceSolutions = in.ReferenceSolutions
	p.UpdatedAt = now
}

type ProblemTable struct {
	ID                 string
	UserID             string
	Title              string
	Description        string
	Difficulty         string
	Tags               string
	Examples           string
	Constraints        string
	Hints              string
	Editorial          string
	TestCases          string
	CodeSnippets       string
	ReferenceSolutions string
	CreatedAt          string
	UpdatedAt          string
}

func GetProblemTable() ProblemTable {
	return ProblemTable{
		ID:                 "id",
		UserID:             "user_id",
		Title:              "title",
		Description:        "description",
		Difficulty:         "difficulty",
		Tags:               "tags",
		Examples:           "examples",
		Constraints:        "constraints",
		Hints:              "hints",
		Editorial:          "editorial",
		TestCases:          "testcases",
		CodeSnippets:       "code_snippets",
		ReferenceSolutions: "reference_solutions",
		CreatedAt:          "created_at",
		UpdatedAt:          "updated_at",
	}
}

func (ProblemTable) TableName() string {
	return "problems"
}

func (t ProblemTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.Title, t.Description, t.Difficulty, t.Tags, t.Examples,
		t.Constraints, t.Hints, t.Editorial, t.TestCases, t.CodeSnippets,
		t.ReferenceSolutions, t.CreatedAt, t.UpdatedAt,
	}
}
