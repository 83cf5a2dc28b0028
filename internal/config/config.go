// Package config reads the authorization core's settings from the
// environment.
package config

import (
	"os"
	"strconv"
	"time"
)

const (
	defaultAppName    = "tenantflow"
	defaultIssuer     = "com.tenantflow.auth"
	defaultTTLSeconds = 3600
)

// Config holds the settings the core needs at assembly time.
type Config struct {
	appName       string
	issuer        string
	signingSecret string
	sessionTTL    time.Duration
	sessionFile   string
}

// FromEnv builds a Config from TENANTFLOW_* environment variables, falling
// back to defaults where unset.
func FromEnv() Config {
	ttlSeconds := defaultTTLSeconds
	if raw := os.Getenv("TENANTFLOW_SESSION_TTL_SECONDS"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			ttlSeconds = parsed
		}
	}

	return Config{
		appName:       envOr("TENANTFLOW_APP_NAME", defaultAppName),
		issuer:        envOr("TENANTFLOW_ISSUER", defaultIssuer),
		signingSecret: os.Getenv("TENANTFLOW_SIGNING_SECRET"),
		sessionTTL:    time.Duration(ttlSeconds) * time.Second,
		sessionFile:   os.Getenv("TENANTFLOW_SESSION_FILE"),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func (c Config) GetAppName() string { return c.appName }

func (c Config) GetIssuer() string { return c.issuer }

// GetSigningSecret returns the HMAC secret for session tokens. Empty means
// the deployment relies on an external login collaborator for tokens.
func (c Config) GetSigningSecret() string { return c.signingSecret }

func (c Config) GetSessionTTL() time.Duration { return c.sessionTTL }

// GetSessionFile returns the path for the persisted session envelope. Empty
// selects the in-memory store.
func (c Config) GetSessionFile() string { return c.sessionFile }
