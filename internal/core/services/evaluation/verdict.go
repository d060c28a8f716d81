package evaluation

import (
	"strconv"
	"strings"

	"gitlab.com/codearena.net/internal/domain"
)

// BuildVerdict compares each result with its test case. results[i] belongs to testCases[i].
// A case passes only when the trimmed stdout equals the trimmed expected
// output and the judge accepted the run.
func BuildVerdict(testCases []domain.TestCase, results []domain.JudgeResult) *domain.EvaluationVerdict {
	verdict := &domain.EvaluationVerdict{
		Cases:     make([]domain.CaseVerdict, len(testCases)),
		AllPassed: len(testCases) > 0,
	}

	for i, tc := range testCases {
		var r domain.JudgeResult
		if i < len(results) {
			r = results[i]
		}

		stdout := strings.TrimSpace(deref(r.Stdout))
		expected := strings.TrimSpace(tc.ExpectedOutput)
		passed := r.Status.IsAccepted() && stdout == expected
		if !passed {
			verdict.AllPassed = false
		}

		verdict.Cases[i] = domain.CaseVerdict{
			TestCase:      i + 1,
			Passed:        passed,
			Stdout:        stdout,
			Expected:      expected,
			Stderr:        nonEmpty(r.Stderr),
			CompileOutput: nonEmpty(r.CompileOutput),
			Status:        r.Status.Description,
			StatusID:      r.Status.ID,
			Memory:        FormatMemory(r.Memory),
			Time:          FormatTime(r.Time),
		}
	}

	return verdict
}

// FormatMemory renders the judge's KB figure, e.g. "3412 KB".
func FormatMemory(kb *int) *string {
	if kb == nil || *kb == 0 {
		return nil
	}
	s := strconv.Itoa(*kb) + " KB"
	return &s
}

// FormatTime renders the judge's seconds figure, e.g. "0.012 s".
func FormatTime(seconds *string) *string {
	if seconds == nil || *seconds == "" {
		return nil
	}
	s := *seconds + " s"
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
