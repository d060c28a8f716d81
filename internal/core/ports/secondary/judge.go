package secondary

import (
	"context"

	"gitlab.com/codearena.net/internal/domain"
)

// JudgeClient talks to the external batch judging service.
type JudgeClient interface {
	// SubmitBatch submits one run per test case and returns tokens in test-case order.
	SubmitBatch(ctx context.Context, sourceCode string, languageID int, testCases []domain.TestCase, withExpected bool) ([]domain.JudgeToken, error)

	// PollBatchResults waits until every token has a terminal status; results follow token order.
	PollBatchResults(ctx context.Context, tokens []domain.JudgeToken) ([]domain.JudgeResult, error)

	// LanguageIDFor maps a language name such as "PYTHON" to the judge's id.
	LanguageIDFor(name string) (int, error)

	// LanguageNameFor is the inverse of LanguageIDFor.
	LanguageNameFor(id int) (string, error)
}
