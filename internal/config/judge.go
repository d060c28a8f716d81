package config

import "time"

// JudgeConfig configures the Judge0 batch client.
type JudgeConfig struct {
	BaseURL         string
	APIKey          string
	RapidAPIHost    string
	RequestTimeout  time.Duration
	PollInterval    time.Duration
	MaxPollAttempts int
}

func NewJudgeConfig() *JudgeConfig {
	return &JudgeConfig{
		BaseURL:         getEnv("JUDGE0_API_URL", "http://localhost:2358"),
		APIKey:          getEnv("JUDGE0_API_KEY", ""),
		RapidAPIHost:    getEnv("JUDGE0_RAPIDAPI_HOST", ""),
		RequestTimeout:  time.Duration(getIntEnv("JUDGE0_REQUEST_TIMEOUT_SEC", 10)) * time.Second,
		PollInterval:    time.Duration(getIntEnv("JUDGE0_POLL_INTERVAL_MS", 1000)) * time.Millisecond,
		MaxPollAttempts: getIntEnv("JUDGE0_MAX_POLL_ATTEMPTS", 30),
	}
}

// MaxPollDuration is the upper bound a single batch may spend waiting on results.
func (c *JudgeConfig) MaxPollDuration() time.Duration {
	return time.Duration(c.MaxPollAttempts) * (c.PollInterval + c.RequestTimeout)
}
