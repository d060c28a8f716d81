package config

import "time"

type HttpConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// SecureCookies marks the auth cookie Secure; disable for plain-http local runs.
	SecureCookies bool
}

func NewHttpConfig() *HttpConfig {
	return &HttpConfig{
		Port:          getIntEnv("HTTP_PORT", 8082),
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  time.Duration(getIntEnv("HTTP_WRITE_TIMEOUT_SEC", 90)) * time.Second,
		IdleTimeout:   60 * time.Second,
		SecureCookies: getEnv("SECURE_COOKIES", "false") == "true",
	}
}

// RequestTimeout is the deadline put on each request's context. It stays
// below WriteTimeout so a handler that gives up can still write its answer.
func (c *HttpConfig) RequestTimeout() time.Duration {
	if c.WriteTimeout <= 0 {
		return 0
	}
	headroom := c.WriteTimeout / 10
	if headroom > 5*time.Second {
		headroom = 5 * time.Second
	}
	return c.WriteTimeout - headroom
}
