package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Config holds everything the server needs at startup. Values come from the
// process environment, optionally seeded from a .env file.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// Database
	DBDriver               string `env:"DB_DRIVER" envDefault:"postgres"` // "postgres" or "sqlite"
	DatabaseURL            string `env:"DATABASE_URL"`
	DBHost                 string `env:"DB_HOST" envDefault:"localhost"`
	DBPort                 string `env:"DB_PORT" envDefault:"5432"`
	DBUser                 string `env:"DB_USER" envDefault:"postgres"`
	DBPass                 string `env:"DB_PASS"`
	DBName                 string `env:"DB_NAME" envDefault:"portfolio"`
	InstanceConnectionName string `env:"INSTANCE_CONNECTION_NAME"` // Cloud SQL socket
	SQLitePath             string `env:"SQLITE_PATH" envDefault:"./data/portfolio.db"`
	UseMemoryStore         bool   `env:"USE_MEMORY_STORE" envDefault:"false"`

	// Uploads
	UploadDir      string `env:"UPLOAD_DIR" envDefault:"./public/uploads"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`

	// Admin account and sessions
	AdminUsername   string        `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword   string        `env:"ADMIN_PASSWORD"`
	AdminEmail      string        `env:"ADMIN_EMAIL"`
	AdminReplyEmail string        `env:"ADMIN_REPLY_EMAIL" envDefault:"admin@portfolio.local"`
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	ResetTokenTTL   time.Duration `env:"RESET_TOKEN_TTL" envDefault:"1h"`
	FrontendURL     string        `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`

	// HTTP
	CORSOrigins     string        `env:"CORS_ORIGINS" envDefault:"*"`
	RateLimitMax    int           `env:"RATE_LIMIT_MAX" envDefault:"20"` // 0 disables
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`

	// E-mail (gomail)
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"`
	NotifyEmail  string `env:"NOTIFY_EMAIL"`

	// WhatsApp (Twilio)
	TwilioAccountSID   string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken    string `env:"TWILIO_AUTH_TOKEN"`
	TwilioWhatsAppFrom string `env:"TWILIO_WHATSAPP_FROM"`
	NotifyWhatsAppTo   string `env:"NOTIFY_WHATSAPP_TO"`

	RetentionSweepInterval time.Duration `env:"RETENTION_SWEEP_INTERVAL" envDefault:"24h"`

	// Logging
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile       string `env:"LOG_FILE"`
	LogMaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"50"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"5"`
	LogMaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" envDefault:"30"`
}

// Load reads .env files for local development and parses the environment.
func Load() (*Config, error) {
	if os.Getenv("INSTANCE_CONNECTION_NAME") == "" {
		if err := godotenv.Load(".env"); err != nil {
			// Missing files are fine, the environment may already be populated.
			_ = godotenv.Load("environments/.env.development")
		}
	}
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if c.SessionTTL <= 0 || c.ResetTokenTTL <= 0 {
		return fmt.Errorf("SESSION_TTL and RESET_TOKEN_TTL must be positive")
	}
	return nil
}

// IsProduction reports whether cookies should be marked Secure and logs emitted as JSON.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production") || c.InstanceConnectionName != ""
}

func (c *Config) MailerConfigured() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

func (c *Config) TwilioConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioWhatsAppFrom != ""
}

// StorageDescription is a human-readable label used in startup logs and /health.
func (c *Config) StorageDescription() string {
	switch {
	case c.UseMemoryStore:
		return "In-Memory SQLite (testing)"
	case c.DBDriver == "sqlite":
		return "SQLite (" + c.SQLitePath + ")"
	default:
		return "PostgreSQL"
	}
}
