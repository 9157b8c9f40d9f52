package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	DatabaseURL      string
	MigrationsURL    string
	JWTSecret        string
	TokenTTL         time.Duration
	PasswordResetTTL time.Duration
	AllowOrigins     []string
	LogstashTCPAddr  string
	FrontendBaseURL  string
	SMTPHost         string
	SMTPPort         string
	SMTPUsername     string
	SMTPPassword     string
	SMTPFrom         string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	return Config{
		Port:             getenv("PORT", "5000"),
		DatabaseURL:      must("DATABASE_URL"),
		MigrationsURL:    getenv("MIGRATIONS_URL", "file://internal/repository/postgres/migrations"),
		JWTSecret:        must("JWT_SECRET"),
		TokenTTL:         duration("TOKEN_TTL", 7*24*time.Hour),
		PasswordResetTTL: duration("PASSWORD_RESET_TTL", 10*time.Minute),
		AllowOrigins:     splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		LogstashTCPAddr:  getenv("LOGSTASH_TCP_ADDR", ""),
		FrontendBaseURL:  getenv("FRONTEND_BASE_URL", "http://localhost:5173"),
		SMTPHost:         getenv("SMTP_HOST", ""),
		SMTPPort:         getenv("SMTP_PORT", ""),
		SMTPUsername:     getenv("SMTP_USERNAME", ""),
		SMTPPassword:     getenv("SMTP_PASSWORD", ""),
		SMTPFrom:         getenv("SMTP_FROM", ""),
	}
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func duration(k string, d time.Duration) time.Duration {
	raw := getenv(k, "")
	if raw == "" {
		return d
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		log.Printf("Warning: invalid %s %q, using %s", k, raw, d)
		return d
	}
	return parsed
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
