package config

import (
	"os"
	"time"
)

type JwtConfig struct {
	Secret string
	TTL    time.Duration
}

func NewJwtConfig() *JwtConfig {
	return &JwtConfig{
		Secret: os.Getenv("JWT_SECRET"),
		TTL:    time.Duration(getIntEnv("JWT_TTL_HOURS", 24*7)) * time.Hour,
	}
}
