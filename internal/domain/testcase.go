package domain

import "gitlab.com/codearena.net/internal/static/errs"

// TestCase is one (input, expected output) pair; immutable once submitted.
type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"output"`
}

// NewTestCases zips parallel stdin / expected output arrays into test cases.
func NewTestCases(stdin, expectedOutputs []string) ([]TestCase, error) {
	if len(stdin) == 0 {
		return nil, &errs.InvalidTestCasesError{Reason: "at least one test case is required"}
	}
	if len(stdin) != len(expectedOutputs) {
		return nil, &errs.InvalidTestCasesError{
			Reason:   "stdin and expected_outputs must have the same length",
			Inputs:   len(stdin),
			Expected: len(expectedOutputs),
		}
	}

	testCases := make([]TestCase, len(stdin))
	for i := range stdin {
		testCases[i] = TestCase{Input: stdin[i], ExpectedOutput: expectedOutputs[i]}
	}
	return testCases, nil
}

// Inputs returns the stdin of every test case in order.
func Inputs(testCases []TestCase) []string {
	inputs := make([]string, len(testCases))
	for i, tc := range testCases {
		inputs[i] = tc.Input
	}
	return inputs
}
