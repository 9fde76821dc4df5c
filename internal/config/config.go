// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package config

import (
	"errors"
	"fmt"
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

var configFile = altsrc.StringSourcer("config.toml")

// ErrMisconfigured marks fatal configuration errors detected at startup.
var ErrMisconfigured = errors.New("invalid configuration")

type Config struct { //nolint:govet // fieldalignment not critical for config structs
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	TLS      TLSConfig
	Session  SessionConfig
	Admin    AdminConfig
	Upload   UploadConfig
	AI       AIConfig
}

type TLSConfig struct {
	Mode     string // auto, acme, manual, off
	CertDir  string // Directory for auto-generated certificates
	Email    string // ACME email for Let's Encrypt
	CertFile string // Path to certificate file (manual mode)
	KeyFile  string // Path to private key file (manual mode)
}

type ServerConfig struct { //nolint:govet // fieldalignment not critical for config structs
	Host        string
	Port        int
	BaseURL     string
	MaxBodySize int // in MB
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text, json
}

type DatabaseConfig struct {
	DSN string
}

type SessionConfig struct { //nolint:govet // fieldalignment not critical
	CookieName string // Session cookie name
	MaxAge     int    // Session max age in seconds
	Secret     string // HMAC signing secret, required
	Secure     bool   // HTTPS only cookie
}

// AdminConfig seeds the initial admin user at startup.
type AdminConfig struct {
	Email    string
	Password string
}

type UploadConfig struct { //nolint:govet // fieldalignment not critical
	Dir     string // Directory for uploaded files
	MaxSize int    // Maximum upload size in MB
}

// AIConfig drives the optional content assistance endpoints. An empty
// API key disables the feature; the endpoints then answer 503.
type AIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // API endpoint, overridable for proxies
}

func NewFromCLI(cmd *cli.Command) *Config {
	cfg := &Config{
		Server: ServerConfig{
			Host:        cmd.String("host"),
			Port:        int(cmd.Int("port")),
			BaseURL:     cmd.String("base-url"),
			MaxBodySize: int(cmd.Int("max-body-size")),
		},
		Log: LogConfig{
			Level:  cmd.String("log-level"),
			Format: cmd.String("log-format"),
		},
		Database: DatabaseConfig{
			DSN: cmd.String("database-dsn"),
		},
		TLS: TLSConfig{
			Mode:     cmd.String("tls-mode"),
			CertDir:  cmd.String("tls-cert-dir"),
			Email:    cmd.String("tls-email"),
			CertFile: cmd.String("tls-cert-file"),
			KeyFile:  cmd.String("tls-key-file"),
		},
		Session: SessionConfig{
			CookieName: cmd.String("session-cookie-name"),
			MaxAge:     int(cmd.Int("session-max-age")),
			Secret:     cmd.String("session-secret"),
			Secure:     cmd.Bool("session-secure"),
		},
		Admin: AdminConfig{
			Email:    cmd.String("admin-email"),
			Password: cmd.String("admin-password"),
		},
		Upload: UploadConfig{
			Dir:     cmd.String("upload-dir"),
			MaxSize: int(cmd.Int("upload-max-size")),
		},
		AI: AIConfig{
			APIKey:  cmd.String("anthropic-api-key"),
			Model:   cmd.String("ai-model"),
			BaseURL: cmd.String("ai-base-url"),
		},
	}

	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = buildBaseURL(cfg)
	}

	// Cookies are HTTPS-only whenever the site itself is.
	if !cfg.Session.Secure {
		cfg.Session.Secure = strings.HasPrefix(cfg.Server.BaseURL, "https://")
	}

	return cfg
}

// Validate checks invariants that must hold before the server starts.
// A missing session secret is a fatal error here rather than a silent
// fallback to a built-in key.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Session.Secret) == "" {
		return fmt.Errorf("%w: session secret is required, set SESSION_SECRET", ErrMisconfigured)
	}
	if len(c.Session.Secret) < 32 {
		return fmt.Errorf("%w: session secret must be at least 32 characters", ErrMisconfigured)
	}
	if c.Session.MaxAge <= 0 {
		return fmt.Errorf("%w: session max age must be positive", ErrMisconfigured)
	}
	if c.Upload.MaxSize <= 0 {
		return fmt.Errorf("%w: upload max size must be positive", ErrMisconfigured)
	}
	return nil
}

func buildBaseURL(cfg *Config) string {
	host := cfg.Server.Host
	port := cfg.Server.Port
	mode := strings.ToLower(cfg.TLS.Mode)

	// Determine if TLS will be used
	useTLS := shouldUseTLS(cfg)

	scheme := "http"
	if useTLS {
		scheme = "https"
	}

	// ACME mode always uses port 443
	if mode == "acme" {
		return fmt.Sprintf("https://%s", host)
	}

	// Hide default ports in URL
	if (scheme == "http" && port == 80) || (scheme == "https" && port == 443) {
		return fmt.Sprintf("%s://%s", scheme, host)
	}
	return fmt.Sprintf("%s://%s:%d", scheme, host, port)
}

func shouldUseTLS(cfg *Config) bool {
	switch strings.ToLower(cfg.TLS.Mode) {
	case "off":
		return false
	case "acme", "manual":
		return true
	default: // "auto" or empty
		if IsLocalhost(cfg.Server.Host) {
			return false
		}
		// Auto mode needs a certificate source: manual files or an
		// ACME email. Without one the server stays on plain HTTP.
		if cfg.TLS.CertFile != "" && cfg.TLS.KeyFile != "" {
			return true
		}
		return cfg.TLS.Email != ""
	}
}

// IsLocalhost checks if the host is a localhost address.
func IsLocalhost(host string) bool {
	switch host {
	case "", "localhost", "127.0.0.1", "::1":
		return true
	}
	// Check for *.localhost subdomains (e.g., app.localhost)
	return strings.HasSuffix(host, ".localhost")
}

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "host",
			Value:   "localhost",
			Usage:   "Host to bind to",
			Sources: cli.NewValueSourceChain(cli.EnvVar("HOST"), toml.TOML("server.host", configFile)),
		},
		&cli.IntFlag{
			Name:    "port",
			Value:   8080,
			Usage:   "Port to listen on",
			Sources: cli.NewValueSourceChain(cli.EnvVar("PORT"), toml.TOML("server.port", configFile)),
		},
		&cli.StringFlag{
			Name:    "base-url",
			Usage:   "Base URL for the application",
			Sources: cli.NewValueSourceChain(cli.EnvVar("BASE_URL"), toml.TOML("server.base_url", configFile)),
		},
		&cli.IntFlag{
			Name:    "max-body-size",
			Value:   1,
			Usage:   "Maximum request body size in MB",
			Sources: cli.NewValueSourceChain(cli.EnvVar("MAX_BODY_SIZE"), toml.TOML("server.max_body_size", configFile)),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Usage:   "Log level (debug, info, warn, error)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LOG_LEVEL"), toml.TOML("log.level", configFile)),
		},
		&cli.StringFlag{
			Name:    "log-format",
			Value:   "text",
			Usage:   "Log format (text, json)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LOG_FORMAT"), toml.TOML("log.format", configFile)),
		},
		&cli.StringFlag{
			Name:    "database-dsn",
			Value:   "./data/cms.db",
			Usage:   "Database DSN",
			Sources: cli.NewValueSourceChain(cli.EnvVar("DATABASE_DSN"), toml.TOML("database.dsn", configFile)),
		},
		&cli.StringFlag{
			Name:    "tls-mode",
			Value:   "auto",
			Usage:   "TLS mode (auto, acme, manual, off)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("TLS_MODE"), toml.TOML("tls.mode", configFile)),
		},
		&cli.StringFlag{
			Name:    "tls-cert-dir",
			Value:   "./data/certs",
			Usage:   "Directory for auto-generated certificates",
			Sources: cli.NewValueSourceChain(cli.EnvVar("TLS_CERT_DIR"), toml.TOML("tls.cert_dir", configFile)),
		},
		&cli.StringFlag{
			Name:    "tls-email",
			Usage:   "Email for ACME/Let's Encrypt registration",
			Sources: cli.NewValueSourceChain(cli.EnvVar("TLS_EMAIL"), toml.TOML("tls.email", configFile)),
		},
		&cli.StringFlag{
			Name:    "tls-cert-file",
			Usage:   "Path to TLS certificate file (manual mode)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("TLS_CERT_FILE"), toml.TOML("tls.cert_file", configFile)),
		},
		&cli.StringFlag{
			Name:    "tls-key-file",
			Usage:   "Path to TLS private key file (manual mode)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("TLS_KEY_FILE"), toml.TOML("tls.key_file", configFile)),
		},
		// Session flags
		&cli.StringFlag{
			Name:    "session-cookie-name",
			Value:   "cms_session",
			Usage:   "Session cookie name",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SESSION_COOKIE_NAME"), toml.TOML("session.cookie_name", configFile)),
		},
		&cli.IntFlag{
			Name:    "session-max-age",
			Value:   604800, // 7 days in seconds
			Usage:   "Session max age in seconds",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SESSION_MAX_AGE"), toml.TOML("session.max_age", configFile)),
		},
		&cli.StringFlag{
			Name:    "session-secret",
			Usage:   "Session signing secret (required, at least 32 characters)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SESSION_SECRET"), toml.TOML("session.secret", configFile)),
		},
		&cli.BoolFlag{
			Name:    "session-secure",
			Usage:   "Force HTTPS-only session cookie (defaults to on for https base URLs)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SESSION_SECURE"), toml.TOML("session.secure", configFile)),
		},
		// Admin seed flags
		&cli.StringFlag{
			Name:    "admin-email",
			Usage:   "Email for the seeded admin user",
			Sources: cli.NewValueSourceChain(cli.EnvVar("ADMIN_EMAIL"), toml.TOML("admin.email", configFile)),
		},
		&cli.StringFlag{
			Name:    "admin-password",
			Usage:   "Password for the seeded admin user",
			Sources: cli.NewValueSourceChain(cli.EnvVar("ADMIN_PASSWORD"), toml.TOML("admin.password", configFile)),
		},
		// Upload flags
		&cli.StringFlag{
			Name:    "upload-dir",
			Value:   "./data/uploads",
			Usage:   "Directory for uploaded media files",
			Sources: cli.NewValueSourceChain(cli.EnvVar("UPLOAD_DIR"), toml.TOML("upload.dir", configFile)),
		},
		&cli.IntFlag{
			Name:    "upload-max-size",
			Value:   10,
			Usage:   "Maximum upload size in MB",
			Sources: cli.NewValueSourceChain(cli.EnvVar("UPLOAD_MAX_SIZE"), toml.TOML("upload.max_size", configFile)),
		},
		// AI assistance flags
		&cli.StringFlag{
			Name:    "anthropic-api-key",
			Usage:   "API key for the content assistance endpoints (empty disables them)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("ANTHROPIC_API_KEY"), toml.TOML("ai.api_key", configFile)),
		},
		&cli.StringFlag{
			Name:    "ai-model",
			Value:   "claude-sonnet-4-6",
			Usage:   "Model used for content assistance",
			Sources: cli.NewValueSourceChain(cli.EnvVar("AI_MODEL"), toml.TOML("ai.model", configFile)),
		},
		&cli.StringFlag{
			Name:    "ai-base-url",
			Value:   "https://api.anthropic.com",
			Usage:   "Base URL of the model API",
			Sources: cli.NewValueSourceChain(cli.EnvVar("AI_BASE_URL"), toml.TOML("ai.base_url", configFile)),
		},
	}
}
