package domain

// Judge0 status ids.
const (
	JudgeStatusInQueue           = 1
	JudgeStatusProcessing        = 2
	JudgeStatusAccepted          = 3
	JudgeStatusWrongAnswer       = 4
	JudgeStatusTimeLimitExceeded = 5
	JudgeStatusCompilationError  = 6
	JudgeStatusInternalError     = 13
)

// JudgeToken identifies one submission inside the judge service.
type JudgeToken string

type JudgeStatus struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// IsTerminal reports whether polling again could still change the status.
func (s JudgeStatus) IsTerminal() bool {
	return s.ID != JudgeStatusInQueue && s.ID != JudgeStatusProcessing
}

func (s JudgeStatus) IsAccepted() bool {
	return s.ID == JudgeStatusAccepted
}

// JudgeResult is the judge's report for one test case.
type JudgeResult struct {
	Token         JudgeToken  `json:"token"`
	Stdout        *string     `json:"stdout"`
	Stderr        *string     `json:"stderr"`
	CompileOutput *string     `json:"compile_output"`
	Message       *string     `json:"message"`
	Status        JudgeStatus `json:"status"`
	// Time is reported in seconds as a decimal string, e.g. "0.012".
	Time *string `json:"time"`
	// Memory is reported in KB.
	Memory *int `json:"memory"`
}

type EvaluationMode int

const (
	// ModeSubmission judges user code; the judge only runs it.
	ModeSubmission EvaluationMode = iota
	// ModeValidation also sends expected outputs so the judge grades each case itself.
	ModeValidation
)

// EvaluationRequest is built per evaluation and never persisted.
type EvaluationRequest struct {
	SourceCode string
	LanguageID int
	TestCases  []TestCase
	Mode       EvaluationMode
}
