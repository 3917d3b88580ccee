package stationauth

import (
	"errors"
	"time"

	"github.com/tanquecheio/stationauth/captcha"
	"github.com/tanquecheio/stationauth/internal/audit"
	"github.com/tanquecheio/stationauth/internal/rate"
	"github.com/tanquecheio/stationauth/session"
)

// Config is the full engine configuration tree. Zero values fall back to
// the documented defaults; construct via [defaultConfig] through
// [New] and override with [Builder.WithConfig].
type Config struct {
	// KeyPrefix namespaces every Redis key the engine writes
	// (rate records, session record, security log).
	KeyPrefix string

	Security SecurityConfig
	Session  SessionConfig
	Ticket   TicketConfig
	Password PasswordConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
	Captcha  CaptchaConfig
}

// SecurityConfig tunes the login rate limiter.
type SecurityConfig struct {
	// MaxLoginAttempts before lockout. Defaults to 5.
	MaxLoginAttempts int
	// LockoutDuration is how long a locked identifier stays denied.
	// Defaults to 15 minutes. Expiry is a full counter reset.
	LockoutDuration time.Duration
}

// SessionConfig tunes session lifetime.
type SessionConfig struct {
	// Timeout is the session lifetime from issuance. Defaults to 30
	// minutes. Expiry is evaluated lazily on read.
	Timeout time.Duration
}

// TicketConfig controls the signed client-held session ticket.
type TicketConfig struct {
	// SigningKey is the HS256 key, at least 32 bytes. Empty means Build
	// generates a random per-process key; tickets then do not survive a
	// restart, which is fine when the session store does not either.
	SigningKey []byte
	// Issuer is the ticket "iss" claim. Defaults to "stationauth".
	Issuer string
}

// PasswordConfig tunes hashing and the seeded-credential compatibility
// path.
type PasswordConfig struct {
	// SaltLength in bytes, minimum 16. Defaults to 16.
	SaltLength int
	// SeedPasswords is the fixed allow-list consulted only for stored
	// secrets that predate the salted scheme. Defaults to the known
	// bootstrap credentials; set to an empty non-nil slice to disable the
	// legacy path entirely.
	SeedPasswords []string
}

// AuditConfig controls the asynchronous security event pipeline.
type AuditConfig struct {
	// Enabled defaults to true. Disabling removes the dispatcher goroutine
	// and the Redis security log.
	Enabled bool
	// BufferSize of the dispatch channel. Defaults to 64.
	BufferSize int
	// DropIfFull makes Emit discard instead of block when the buffer is
	// full. Defaults to true; login latency must not depend on the sink.
	DropIfFull bool
	// LogCapacity bounds the Redis security log. Defaults to 100; oldest
	// entries are evicted first.
	LogCapacity int
}

// MetricsConfig toggles the atomic counter set.
type MetricsConfig struct {
	Enabled bool
}

// CaptchaConfig tunes challenges built through [Engine.NewChallenge].
type CaptchaConfig struct {
	// MaxAttempts is the wrong-answer budget before regeneration.
	// Defaults to 3.
	MaxAttempts int
}

func defaultConfig() Config {
	return Config{
		KeyPrefix: "stationauth:",
		Security: SecurityConfig{
			MaxLoginAttempts: rate.DefaultMaxAttempts,
			LockoutDuration:  rate.DefaultLockoutDuration,
		},
		Session: SessionConfig{
			Timeout: session.DefaultTimeout,
		},
		Ticket: TicketConfig{
			Issuer: "stationauth",
		},
		Password: PasswordConfig{
			SaltLength:    16,
			SeedPasswords: []string{"TanqueCheio@123", "AdminSecure@2024"},
		},
		Audit: AuditConfig{
			Enabled:     true,
			BufferSize:  64,
			DropIfFull:  true,
			LogCapacity: audit.DefaultCap,
		},
		Captcha: CaptchaConfig{
			MaxAttempts: captcha.DefaultMaxAttempts,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Ticket.SigningKey = cloneBytes(cfg.Ticket.SigningKey)
	if cfg.Password.SeedPasswords != nil {
		out.Password.SeedPasswords = append([]string(nil), cfg.Password.SeedPasswords...)
	}
	return out
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// Validate reports the first configuration inconsistency. Zero values are
// legal everywhere; only actively wrong settings fail.
func (c *Config) Validate() error {
	if c.Security.MaxLoginAttempts < 0 {
		return errors.New("Security.MaxLoginAttempts must not be negative")
	}
	if c.Security.LockoutDuration < 0 {
		return errors.New("Security.LockoutDuration must not be negative")
	}
	if c.Session.Timeout < 0 {
		return errors.New("Session.Timeout must not be negative")
	}
	if len(c.Ticket.SigningKey) > 0 && len(c.Ticket.SigningKey) < 32 {
		return errors.New("Ticket.SigningKey must be at least 32 bytes when set")
	}
	if c.Password.SaltLength != 0 && c.Password.SaltLength < 16 {
		return errors.New("Password.SaltLength must be at least 16")
	}
	if c.Audit.LogCapacity < 0 {
		return errors.New("Audit.LogCapacity must not be negative")
	}
	if c.Captcha.MaxAttempts < 0 {
		return errors.New("Captcha.MaxAttempts must not be negative")
	}
	return nil
}
