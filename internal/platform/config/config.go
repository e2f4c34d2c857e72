package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	RefreshTokenExpiryDuration time.Duration
	RefreshTokenCookieName     string
	RefreshTokenCookiePath     string

	// External OAuth providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FrontendBaseURL    string `mapstructure:"FRONTEND_BASE_URL"`

	PosthogAPIKey string `mapstructure:"POSTHOG_API_KEY"`
}

// LoadConfig loads configuration from environment variables and a .env file if present.
// Real environment variables take precedence over .env values, which take
// precedence over the built-in defaults.
func LoadConfig() (*Config, error) {
	// The .env file is optional; missing file is not an error.
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "oceanre-backend")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_NAME", "rtid")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_PATH", "/api/v1/auth")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:   viper.GetString("PGSQL_URL"),
		Port:          viper.GetString("PORT"),
		IsProduction:  viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck: viper.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:     viper.GetString("JWT_SECRET"),
		JWTIssuer:     viper.GetString("JWT_ISSUER"),

		RefreshTokenCookieName: viper.GetString("REFRESH_TOKEN_COOKIE_NAME"),
		RefreshTokenCookiePath: viper.GetString("REFRESH_TOKEN_COOKIE_PATH"),

		GoogleClientID:     viper.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: viper.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  viper.GetString("GOOGLE_REDIRECT_URL"),
		FrontendBaseURL:    viper.GetString("FRONTEND_BASE_URL"),

		PosthogAPIKey: viper.GetString("POSTHOG_API_KEY"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "insecure-development-only-secret-change-me"
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTExpiryDuration = parseDurationOrDefault("JWT_EXPIRY_DURATION", time.Hour)
	cfg.RefreshTokenExpiryDuration = parseDurationOrDefault("REFRESH_TOKEN_EXPIRY_DURATION", 7*24*time.Hour)

	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" || cfg.GoogleRedirectURL == "" {
		log.Println("Warning: Google OAuth credentials not fully set. Google login will not function.")
	}

	return cfg, nil
}

func parseDurationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s (%q). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}
