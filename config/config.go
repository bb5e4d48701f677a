package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the environment surface of the API. Values come from the
// process environment, with .env as a development convenience.
type Config struct {
	HTTPAddr    string
	DatabaseURL string

	AuthBackend string // "local" or "supabase"

	JWTAccessSecret  string
	JWTRefreshSecret string
	JWTIssuer        string
	JWTAccessTTL     time.Duration
	JWTRefreshTTL    time.Duration
	ResetTokenTTL    time.Duration

	SupabaseURL            string
	SupabaseAnonKey        string
	SupabaseServiceRoleKey string
	SupabaseJWTSecret      string
	SupabaseResetRedirect  string

	ResendAPIKey string
	EmailFrom    string
	AppBaseURL   string

	GCSBucket      string
	GCSAccessToken string

	CookieDomain  string
	SecureCookies bool
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("error load env %s", err)
	}

	return Config{
		HTTPAddr:    envOr("HTTP_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		AuthBackend: strings.ToLower(envOr("AUTH_BACKEND", "local")),

		JWTAccessSecret:  os.Getenv("JWT_ACCESS_SECRET"),
		JWTRefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),
		JWTIssuer:        envOr("JWT_ISSUER", "agroapi"),
		JWTAccessTTL:     envDuration("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		JWTRefreshTTL:    envDuration("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
		ResetTokenTTL:    envMinutes("RESET_TOKEN_EXPIRES_MINUTES", time.Hour),

		SupabaseURL:            os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey:        os.Getenv("SUPABASE_ANON_KEY"),
		SupabaseServiceRoleKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		SupabaseJWTSecret:      os.Getenv("SUPABASE_JWT_SECRET"),
		SupabaseResetRedirect:  os.Getenv("SUPABASE_PASSWORD_RESET_REDIRECT"),

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		EmailFrom:    os.Getenv("EMAIL_FROM"),
		AppBaseURL:   os.Getenv("APP_BASE_URL"),

		GCSBucket:      os.Getenv("GCS_BUCKET"),
		GCSAccessToken: os.Getenv("GCS_ACCESS_TOKEN"),

		CookieDomain:  os.Getenv("COOKIE_DOMAIN"),
		SecureCookies: os.Getenv("COOKIE_SECURE") != "false",
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// envDuration accepts Go duration syntax plus a "Nd" day suffix, which
// time.ParseDuration does not understand.
func envDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	if strings.HasSuffix(value, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(value, "d"))
		if err == nil && days > 0 {
			return time.Duration(days) * 24 * time.Hour
		}
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("invalid duration for %s: %s", key, value)
		return fallback
	}
	return parsed
}

func envMinutes(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	minutes, err := strconv.Atoi(value)
	if err != nil || minutes <= 0 {
		log.Printf("invalid minutes for %s: %s", key, value)
		return fallback
	}
	return time.Duration(minutes) * time.Minute
}
