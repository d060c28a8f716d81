package errs

import (
	"fmt"
	"time"
)

// InvalidTestCasesError rejects malformed or mismatched test-case arrays
// before anything is sent to the judge.
type InvalidTestCasesError struct {
	Reason   string
	Inputs   int
	Expected int
}

func (e *InvalidTestCasesError) Error() string {
	if e.Inputs != e.Expected {
		return fmt.Sprintf("invalid test cases: %s (%d inputs, %d expected outputs)", e.Reason, e.Inputs, e.Expected)
	}
	return "invalid test cases: " + e.Reason
}

// UnsupportedLanguageError is returned when a language has no judge id (or an id has no name).
type UnsupportedLanguageError struct {
	Language   string
	LanguageID int
}

func (e *UnsupportedLanguageError) Error() string {
	if e.Language != "" {
		return fmt.Sprintf("language %s is not supported", e.Language)
	}
	return fmt.Sprintf("language id %d is not supported", e.LanguageID)
}

// JudgeUnavailableError wraps a transport or HTTP failure talking to the judge.
type JudgeUnavailableError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *JudgeUnavailableError) Error() string {
	msg := "judge unavailable: " + e.Op
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *JudgeUnavailableError) Unwrap() error {
	return e.Err
}

// JudgeTimeoutError means the judge answered but results never became terminal in time.
type JudgeTimeoutError struct {
	Attempts int
	Waited   time.Duration
	Pending  int
	Err      error
}

func (e *JudgeTimeoutError) Error() string {
	return fmt.Sprintf("judge timed out: %d of the results still pending after %d polls (%s)",
		e.Pending, e.Attempts, e.Waited.Round(time.Millisecond))
}

func (e *JudgeTimeoutError) Unwrap() error {
	return e.Err
}

// ReferenceSolutionFailedError blocks a problem whose reference solution fails its own test cases.
// TestCaseIndex is zero-based.
type ReferenceSolutionFailedError struct {
	Language      string
	TestCaseIndex int
	Status        string
}

func (e *ReferenceSolutionFailedError) Error() string {
	return fmt.Sprintf("testcase %d failed for language %s: %s", e.TestCaseIndex+1, e.Language, e.Status)
}

// StorageError aborts a multi-row write; nothing from the write is persisted.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
