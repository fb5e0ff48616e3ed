package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime settings. It is loaded and validated once at
// startup; handlers receive it explicitly instead of reading the environment.
type Config struct {
	Port string

	// Either DatabaseURL or the individual DB_* fields must be set.
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	JWTSecret string

	StripeSecretKey     string
	StripeWebhookSecret string
	StripeAPIBaseURL    string

	FrontendBaseURL string
	UploadDir       string
	AllowedOrigins  []string
}

// Load reads .env (if present) and the environment, applies defaults and
// validates the result. Misconfiguration fails here, not at request time.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("STRIPE_API_BASE_URL", "https://api.stripe.com")
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("ALLOWED_ORIGINS", "*")

	cfg := &Config{
		Port:                v.GetString("PORT"),
		DatabaseURL:         v.GetString("DATABASE_URL"),
		DBHost:              v.GetString("DB_HOST"),
		DBPort:              v.GetString("DB_PORT"),
		DBUser:              v.GetString("DB_USER"),
		DBPassword:          v.GetString("DB_PASSWORD"),
		DBName:              v.GetString("DB_NAME"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		StripeSecretKey:     v.GetString("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: v.GetString("STRIPE_WEBHOOK_SECRET"),
		StripeAPIBaseURL:    v.GetString("STRIPE_API_BASE_URL"),
		FrontendBaseURL:     v.GetString("FRONTEND_BASE_URL"),
		UploadDir:           v.GetString("UPLOAD_DIR"),
		AllowedOrigins:      strings.Split(v.GetString("ALLOWED_ORIGINS"), ","),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.DatabaseURL == "" {
		if c.DBHost == "" {
			missing = append(missing, "DATABASE_URL or DB_HOST")
		}
		if c.DBUser == "" {
			missing = append(missing, "DB_USER")
		}
		if c.DBName == "" {
			missing = append(missing, "DB_NAME")
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// DSN returns the Postgres connection string.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}

// MockPayments reports whether checkout should bypass the payment provider.
// An absent key or an explicit mock key both select the synchronous demo path.
func (c *Config) MockPayments() bool {
	key := strings.TrimSpace(c.StripeSecretKey)
	return key == "" || strings.Contains(key, "mock")
}
