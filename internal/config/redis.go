package config

import "time"

type RedisConfig struct {
	DB       int
	Url      string
	Password string
	// ProblemTTL bounds how long a problem stays in the read-through cache.
	ProblemTTL time.Duration
}

func NewRedisConfig() *RedisConfig {
	return &RedisConfig{
		DB:         getIntEnv("REDIS_DB", 0),
		Url:        getEnv("REDIS_ADDR", "localhost:6379"),
		Password:   getEnv("REDIS_PASSWORD", ""),
		ProblemTTL: time.Duration(getIntEnv("PROBLEM_CACHE_TTL_SEC", 300)) * time.Second,
	}
}
