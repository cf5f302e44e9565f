package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr        string
	Environment string

	JWTSigningKey     string
	RegulatorSubjects []string

	// UpdateCostFactor bounds a mandatory update's cost at
	// kyc_price * factor.
	UpdateCostFactor int64

	EventBuffer int

	KafkaBrokers []string
	KafkaTopic   string

	DatabaseURL string

	RedisURL       string
	RatingCacheTTL time.Duration
}

// DefaultRatingCacheTTL bounds staleness of the reputation read cache.
var DefaultRatingCacheTTL = 5 * time.Minute

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("KYCSHARE_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	environment := os.Getenv("KYCSHARE_ENV")
	if environment == "" {
		environment = "development"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	var regulators []string
	for _, s := range strings.Split(os.Getenv("REGULATOR_SUBJECTS"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			regulators = append(regulators, s)
		}
	}

	updateCostFactor := int64(2)
	if v := os.Getenv("KYC_UPDATE_COST_FACTOR"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			updateCostFactor = parsed
		}
	}

	eventBuffer := 1024
	if v := os.Getenv("EVENT_BUFFER"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			eventBuffer = parsed
		}
	}

	var brokers []string
	for _, b := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	ratingTTL := DefaultRatingCacheTTL
	if v := os.Getenv("RATING_CACHE_TTL"); v != "" {
		if duration, err := time.ParseDuration(v); err == nil {
			ratingTTL = duration
		}
	}

	return Server{
		Addr:              addr,
		Environment:       environment,
		JWTSigningKey:     jwtSigningKey,
		RegulatorSubjects: regulators,
		UpdateCostFactor:  updateCostFactor,
		EventBuffer:       eventBuffer,
		KafkaBrokers:      brokers,
		KafkaTopic:        os.Getenv("KAFKA_TOPIC"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		RatingCacheTTL:    ratingTTL,
	}
}
