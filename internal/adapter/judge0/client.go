package judge0

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gitlab.com/codearena.net/internal/config"
	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/ports/secondary"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/static/errs"
)

var _ secondary.JudgeClient = (*Client)(nil)

const resultFields = "token,stdout,stderr,compile_output,message,status,time,memory"

// Client is a Judge0 batch API client. It keeps no state between calls.
type Client struct {
	baseURL         string
	apiKey          string
	rapidAPIHost    string
	httpClient      *http.Client
	pollInterval    time.Duration
	maxPollAttempts int
	logger          primary.Logger
}

// NewClient creates a new Judge0 client
func NewClient(cfg *config.JudgeConfig, logger primary.Logger) *Client {
	return &Client{
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:          cfg.APIKey,
		rapidAPIHost:    cfg.RapidAPIHost,
		httpClient:      &http.Client{Timeout: cfg.RequestTimeout},
		pollInterval:    cfg.PollInterval,
		maxPollAttempts: cfg.MaxPollAttempts,
		logger:          logger,
	}
}

type batchSubmission struct {
	SourceCode     string  `json:"source_code"`
	LanguageID     int     `json:"language_id"`
	Stdin          string  `json:"stdin"`
	ExpectedOutput *string `json:"expected_output,omitempty"`
}

type batchSubmitRequest struct {
	Submissions []batchSubmission `json:"submissions"`
}

type batchSubmitItem struct {
	Token domain.JudgeToken `json:"token"`
}

type batchResultsResponse struct {
	Submissions []*domain.JudgeResult `json:"submissions"`
}

func (c *Client) LanguageIDFor(name string) (int, error) {
	return LanguageIDFor(name)
}

func (c *Client) LanguageNameFor(id int) (string, error) {
	return LanguageNameFor(id)
}

// SubmitBatch sends every test case as one batch and returns one token per case, in order.
func (c *Client) SubmitBatch(ctx context.Context, sourceCode string, languageID int, testCases []domain.TestCase, withExpected bool) ([]domain.JudgeToken, error) {
	started := time.Now()
	payload := batchSubmitRequest{Submissions: make([]batchSubmission, len(testCases))}
	for i, tc := range testCases {
		item := batchSubmission{
			SourceCode: sourceCode,
			LanguageID: languageID,
			Stdin:      tc.Input,
		}
		if withExpected {
			expected := tc.ExpectedOutput
			item.ExpectedOutput = &expected
		}
		payload.Submissions[i] = item
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &errs.JudgeUnavailableError{Op: "encode batch", Err: err}
	}

	endpoint := c.baseURL + "/submissions/batch?base64_encoded=false"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &errs.JudgeUnavailableError{Op: "submit batch", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	var items []batchSubmitItem
	if err := c.do(req, "submit batch", &items); err != nil {
		if ctx.Err() != nil {
			return nil, c.timeout(0, started, len(testCases), ctx.Err())
		}
		return nil, err
	}

	if len(items) != len(testCases) {
		return nil, &errs.JudgeUnavailableError{
			Op:  "submit batch",
			Err: fmt.Errorf("expected %d tokens, got %d", len(testCases), len(items)),
		}
	}

	tokens := make([]domain.JudgeToken, len(items))
	for i, item := range items {
		if item.Token == "" {
			return nil, &errs.JudgeUnavailableError{
				Op:  "submit batch",
				Err: fmt.Errorf("submission %d was rejected by the judge", i+1),
			}
		}
		tokens[i] = item.Token
	}

	c.logger.Debug("Submitted batch to judge", "languageId", languageID, "count", len(tokens))
	return tokens, nil
}

// PollBatchResults polls with a fixed delay until every result is terminal or
// the attempt budget runs out. Results are matched back to tokens by their
// token field, so the judge may return them in any order.
func (c *Client) PollBatchResults(ctx context.Context, tokens []domain.JudgeToken) ([]domain.JudgeResult, error) {
	if len(tokens) == 0 {
		return []domain.JudgeResult{}, nil
	}

	started := time.Now()
	done := make(map[domain.JudgeToken]domain.JudgeResult, len(tokens))
	pending := tokens

	for attempt := 1; attempt <= c.maxPollAttempts; attempt++ {
		results, err := c.fetchBatch(ctx, pending)
		if err != nil {
			if ctx.Err() != nil {
				return nil, c.timeout(attempt, started, len(pending), ctx.Err())
			}
			return nil, err
		}

		for _, r := range results {
			if r != nil && r.Status.IsTerminal() {
				done[r.Token] = *r
			}
		}

		pending = pendingTokens(tokens, done)
		if len(pending) == 0 {
			ordered := make([]domain.JudgeResult, len(tokens))
			for i, token := range tokens {
				ordered[i] = done[token]
			}
			c.logger.Debug("Judge batch finished", "count", len(tokens), "attempts", attempt, "waited", time.Since(started))
			return ordered, nil
		}

		if attempt == c.maxPollAttempts {
			break
		}

		timer := time.NewTimer(c.pollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, c.timeout(attempt, started, len(pending), ctx.Err())
		case <-timer.C:
		}
	}

	return nil, c.timeout(c.maxPollAttempts, started, len(pending), nil)
}

func (c *Client) timeout(attempts int, started time.Time, pending int, cause error) error {
	err := &errs.JudgeTimeoutError{
		Attempts: attempts,
		Waited:   time.Since(started),
		Pending:  pending,
		Err:      cause,
	}
	c.logger.Warn("Judge polling timed out", "attempts", attempts, "pending", pending, "waited", err.Waited)
	return err
}

func pendingTokens(tokens []domain.JudgeToken, done map[domain.JudgeToken]domain.JudgeResult) []domain.JudgeToken {
	pending := make([]domain.JudgeToken, 0, len(tokens))
	for _, token := range tokens {
		if _, ok := done[token]; !ok {
			pending = append(pending, token)
		}
	}
	return pending
}

func (c *Client) fetchBatch(ctx context.Context, tokens []domain.JudgeToken) ([]*domain.JudgeResult, error) {
	raw := make([]string, len(tokens))
	for i, t := range tokens {
		raw[i] = string(t)
	}
	query := url.Values{}
	query.Set("tokens", strings.Join(raw, ","))
	query.Set("base64_encoded", "false")
	query.Set("fields", resultFields)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/submissions/batch?"+query.Encode(), nil)
	if err != nil {
		return nil, &errs.JudgeUnavailableError{Op: "poll batch", Err: err}
	}

	var resp batchResultsResponse
	if err := c.do(req, "poll batch", &resp); err != nil {
		return nil, err
	}
	return resp.Submissions, nil
}

func (c *Client) do(req *http.Request, op string, out interface{}) error {
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		if c.rapidAPIHost != "" {
			req.Header.Set("X-RapidAPI-Key", c.apiKey)
			req.Header.Set("X-RapidAPI-Host", c.rapidAPIHost)
		} else {
			req.Header.Set("X-Auth-Token", c.apiKey)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Judge request failed", "op", op, "error", err)
		return &errs.JudgeUnavailableError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		detail := strings.TrimSpace(string(raw))
		if detail == "" {
			detail = http.StatusText(resp.StatusCode)
		}
		c.logger.Error("Judge returned an error", "op", op, "status", resp.StatusCode, "body", detail)
		return &errs.JudgeUnavailableError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        errors.New(detail),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &errs.JudgeUnavailableError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}
