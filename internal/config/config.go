package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	GinMode    string
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	RedisAddr  string
	JWTSecret  string
	CORSOrigin string
	SeedToken  string

	ApprovalSLA        time.Duration
	EscalationInterval time.Duration
	MissedGracePeriod  time.Duration
}

func Load() *Config {
	// Missing .env is fine; deployments can use the environment directly.
	_ = godotenv.Load()

	return &Config{
		Port:       getEnv("PORT", "8080"),
		GinMode:    getEnv("GIN_MODE", "debug"),
		DBDriver:   getEnv("DB_DRIVER", "mysql"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "stable"),
		DBPassword: getEnv("DB_PASSWORD", "stablepassword"),
		DBName:     getEnv("DB_NAME", "stable_api"),
		RedisAddr:  getEnv("REDIS_ADDR", ""),
		JWTSecret:  getEnv("JWT_SECRET", "default-secret-key-change-me"),
		CORSOrigin: getEnv("CORS_ORIGIN", ""),
		SeedToken:  getEnv("SEED_TOKEN", ""),

		ApprovalSLA:        time.Duration(getEnvInt("APPROVAL_SLA_HOURS", 48)) * time.Hour,
		EscalationInterval: time.Duration(getEnvInt("ESCALATION_INTERVAL_MINUTES", 15)) * time.Minute,
		MissedGracePeriod:  time.Duration(getEnvInt("MISSED_GRACE_HOURS", 24)) * time.Hour,
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
