package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration sourced from the environment.
type Server struct {
	Addr          string
	DatabaseURL   string
	JWTSigningKey string

	// Object storage collaborator.
	StorageEndpoint    string
	StorageAccessKey   string
	StorageSecretKey   string
	PaymentProofBucket string
	DelegationBucket   string

	// Generative-text collaborator.
	GeminiAPIKey string

	// Review portal.
	PortalPasswordHash string
	PortalTokenTTL     time.Duration

	// Submission rate limiting. RedisAddr empty means in-process counters.
	RedisAddr       string
	SubmitRateLimit int
	SubmitRateWindow time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("VOFMUN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	paymentBucket := os.Getenv("PAYMENT_PROOFS_BUCKET")
	if paymentBucket == "" {
		paymentBucket = "payment-proofs"
	}
	delegationBucket := os.Getenv("DELEGATION_SPREADSHEETS_BUCKET")
	if delegationBucket == "" {
		delegationBucket = "school-delegations"
	}

	limit := 10
	if raw := os.Getenv("SUBMIT_RATE_LIMIT"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	return Server{
		Addr:               addr,
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		JWTSigningKey:      jwtSigningKey,
		StorageEndpoint:    os.Getenv("STORAGE_ENDPOINT"),
		StorageAccessKey:   os.Getenv("STORAGE_ACCESS_KEY_ID"),
		StorageSecretKey:   os.Getenv("STORAGE_ACCESS_KEY_SECRET"),
		PaymentProofBucket: paymentBucket,
		DelegationBucket:   delegationBucket,
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		PortalPasswordHash: os.Getenv("PORTAL_PASSWORD_HASH"),
		PortalTokenTTL:     12 * time.Hour,
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		SubmitRateLimit:    limit,
		SubmitRateWindow:   time.Minute,
	}
}
