package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string

	StripeSecretKey     string
	StripeWebhookSecret string

	ConvertKitAPIKey        string
	ConvertKitAPISecret     string
	ConvertKitFormID        string
	ConvertKitPurchaseTagID string

	AdminAPIKey string

	Currency           string
	DonationTiersCents []int64

	GeoIPDBPath        string
	CORSAllowedOrigins []string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
}

// DefaultDonationTiers are the sanctioned upsell amounts in whole dollars.
var DefaultDonationTiers = []int64{5, 10, 15, 25, 100, 200}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. Secrets the service cannot run without make boot
// fail immediately.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:                  getEnv("APP_ENV", "development"),
		Port:                    getEnv("PORT", "8080"),
		DatabaseURL:             os.Getenv("DATABASE_URL"),
		StripeSecretKey:         os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret:     os.Getenv("STRIPE_WEBHOOK_SECRET"),
		ConvertKitAPIKey:        os.Getenv("CONVERTKIT_API_KEY"),
		ConvertKitAPISecret:     os.Getenv("CONVERTKIT_API_SECRET"),
		ConvertKitFormID:        os.Getenv("CONVERTKIT_FORM_ID"),
		ConvertKitPurchaseTagID: os.Getenv("CONVERTKIT_PURCHASE_TAG_ID"),
		AdminAPIKey:             os.Getenv("ADMIN_API_KEY"),
		Currency:                getEnv("CURRENCY", "usd"),
		GeoIPDBPath:             os.Getenv("GEOIP_DB_PATH"),
		CORSAllowedOrigins:      splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
		HTTPReadTimeout:         time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:        time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:         time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:         getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}

	tiers, err := parseDonationTiers(os.Getenv("DONATION_TIERS"))
	if err != nil {
		return nil, err
	}
	cfg.DonationTiersCents = tiers

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	if cfg.StripeWebhookSecret == "" {
		return nil, fmt.Errorf("STRIPE_WEBHOOK_SECRET is required")
	}
	if cfg.AdminAPIKey == "" {
		return nil, fmt.Errorf("ADMIN_API_KEY is required")
	}

	return cfg, nil
}

// parseDonationTiers reads a comma list of whole-dollar amounts and returns
// them in minor units. An empty value yields the default tiers.
func parseDonationTiers(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		tiers := make([]int64, len(DefaultDonationTiers))
		for i, d := range DefaultDonationTiers {
			tiers[i] = d * 100
		}
		return tiers, nil
	}
	var tiers []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		dollars, err := strconv.ParseInt(part, 10, 64)
		if err != nil || dollars <= 0 {
			return nil, fmt.Errorf("DONATION_TIERS: invalid tier %q", part)
		}
		tiers = append(tiers, dollars*100)
	}
	if len(tiers) == 0 {
		return nil, fmt.Errorf("DONATION_TIERS must name at least one tier")
	}
	return tiers, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
