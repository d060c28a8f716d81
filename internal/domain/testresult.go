package domain

import (
	"time"

	"github.com/google/uuid"
)

// TestCaseResult is the persisted row for one case of a submission.
type TestCaseResult struct {
	ID            uuid.UUID `db:"id" json:"id"`
	SubmissionID  uuid.UUID `db:"submission_id" json:"submissionId"`
	TestCase      int       `db:"test_case" json:"testCase"`
	Passed        bool      `db:"passed" json:"passed"`
	Stdout        *string   `db:"stdout" json:"stdout"`
	Expected      string    `db:"expected" json:"expected"`
	Stderr        *string   `db:"stderr" json:"stderr"`
	CompileOutput *string   `db:"compile_output" json:"compileOutput"`
	Status        string    `db:"status" json:"status"`
	Memory        *string   `db:"memory" json:"memory"`
	Time          *string   `db:"time" json:"time"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

type TestCaseResultTable struct {
	ID            string
	SubmissionID  string
	TestCase      string
	Passed        string
	Stdout        string
	Expected      string
	Stderr        string
	CompileOutput string
	Status        string
	Memory        string
	Time          string
	CreatedAt     string
}

func GetTestCaseResultTable() TestCaseResultTable {
	return TestCaseResultTable{
		ID:            "id",
		SubmissionID:  "submission_id",
		TestCase:      "test_case",
		Passed:        "passed",
		Stdout:        "stdout",
		Expected:      "expected",
		Stderr:        "stderr",
		CompileOutput: "compile_output",
		Status:        "status",
		Memory:        "memory",
		Time:          "time",
		CreatedAt:     "created_at",
	}
}

func (TestCaseResultTable) TableName() string {
	return "test_case_results"
}

func (t TestCaseResultTable) Columns() []string {
	return []string{
		t.ID, t.SubmissionID, t.TestCase, t.Passed, t.Stdout, t.Expected,
		t.Stderr, t.CompileOutput, t.Status, t.Memory, t.Time, t.CreatedAt,
	}
}
