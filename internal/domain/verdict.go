package domain

const (
	SubmissionStatusAccepted    = "Accepted"
	SubmissionStatusWrongAnswer = "Wrong Answer"
)

// CaseVerdict is the outcome of one test case.
type CaseVerdict struct {
	TestCase      int     `json:"testCase"`
	Passed        bool    `json:"passed"`
	Stdout        string  `json:"stdout"`
	Expected      string  `json:"expected"`
	Stderr        *string `json:"stderr"`
	CompileOutput *string `json:"compile_output"`
	Status        string  `json:"status"`
	StatusID      int     `json:"statusId"`
	Memory        *string `json:"memory,omitempty"`
	Time          *string `json:"time,omitempty"`
}

// EvaluationVerdict is always embedded in a Submission or discarded.
type EvaluationVerdict struct {
	Cases     []CaseVerdict `json:"cases"`
	AllPassed bool          `json:"allPassed"`
}

func (v *EvaluationVerdict) OverallStatus() string {
	if v.AllPassed {
		return SubmissionStatusAccepted
	}
	return SubmissionStatusWrongAnswer
}

// FirstFailure returns the zero-based index of the first failing case.
func (v *EvaluationVerdict) FirstFailure() (int, bool) {
	for i, c := range v.Cases {
		if !c.Passed {
			return i, true
		}
	}
	return -1, false
}
