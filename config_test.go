package stationauth

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Security.MaxLoginAttempts != 5 {
		t.Fatalf("MaxLoginAttempts = %d", cfg.Security.MaxLoginAttempts)
	}
	if cfg.Security.LockoutDuration != 15*time.Minute {
		t.Fatalf("LockoutDuration = %v", cfg.Security.LockoutDuration)
	}
	if cfg.Session.Timeout != 30*time.Minute {
		t.Fatalf("Session.Timeout = %v", cfg.Session.Timeout)
	}
	if cfg.Audit.LogCapacity != 100 {
		t.Fatalf("LogCapacity = %d", cfg.Audit.LogCapacity)
	}
	if cfg.Captcha.MaxAttempts != 3 {
		t.Fatalf("Captcha.MaxAttempts = %d", cfg.Captcha.MaxAttempts)
	}
	if len(cfg.Password.SeedPasswords) != 2 {
		t.Fatalf("SeedPasswords = %v", cfg.Password.SeedPasswords)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestConfigValidateRejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{"negative attempts", func(c *Config) { c.Security.MaxLoginAttempts = -1 }, "MaxLoginAttempts"},
		{"negative lockout", func(c *Config) { c.Security.LockoutDuration = -time.Minute }, "LockoutDuration"},
		{"negative session timeout", func(c *Config) { c.Session.Timeout = -time.Second }, "Session.Timeout"},
		{"short signing key", func(c *Config) { c.Ticket.SigningKey = []byte("short") }, "SigningKey"},
		{"short salt", func(c *Config) { c.Password.SaltLength = 8 }, "SaltLength"},
		{"negative log capacity", func(c *Config) { c.Audit.LogCapacity = -1 }, "LogCapacity"},
		{"negative captcha attempts", func(c *Config) { c.Captcha.MaxAttempts = -1 }, "Captcha.MaxAttempts"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate accepted bad config")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Fatalf("error %q does not mention %q", err, tc.wantSub)
			}
		})
	}
}

func TestCloneConfigIsDeep(t *testing.T) {
	cfg := defaultConfig()
	cfg.Ticket.SigningKey = []byte("0123456789abcdef0123456789abcdef")

	clone := cloneConfig(cfg)
	clone.Ticket.SigningKey[0] = 'X'
	clone.Password.SeedPasswords[0] = "mutated"

	if cfg.Ticket.SigningKey[0] == 'X' {
		t.Fatal("signing key shared between clones")
	}
	if cfg.Password.SeedPasswords[0] == "mutated" {
		t.Fatal("seed passwords shared between clones")
	}
}

func TestBuilderRequirements(t *testing.T) {
	if _, err := New().Build(); err == nil {
		t.Fatal("Build without redis succeeded")
	}

	_, client := newTestRedis(t)

	if _, err := New().WithRedis(client).Build(); err == nil {
		t.Fatal("Build without identity store succeeded")
	}

	b := New().WithRedis(client).WithIdentityStore(newMemoryIdentityStore())
	engine, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer engine.Close()

	if _, err := b.Build(); err == nil {
		t.Fatal("second Build on the same builder succeeded")
	}
}

func TestBuildGeneratesSigningKey(t *testing.T) {
	_, client := newTestRedis(t)

	// No key configured: Build generates one and tickets still round-trip
	// within the process.
	store := newMemoryIdentityStore()
	seedStation(store, "posto@example.com", "seeded")

	engine, err := New().WithRedis(client).WithIdentityStore(store).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer engine.Close()

	res, err := engine.Login(context.Background(), "posto@example.com", "TanqueCheio@123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := engine.ValidateTicket(context.Background(), res.Ticket); err != nil {
		t.Fatalf("ValidateTicket: %v", err)
	}
}
