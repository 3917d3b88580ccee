package stationauth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tanquecheio/stationauth/internal/audit"
	ratelimit "github.com/tanquecheio/stationauth/internal/rate"
	"github.com/tanquecheio/stationauth/password"
	"github.com/tanquecheio/stationauth/session"
)

// Builder assembles an [Engine]. Configure during initialization, call
// Build once, then treat the result as immutable.
type Builder struct {
	config Config
	redis  redis.UniversalClient

	identities IdentityStore
	auditSink  AuditSink

	built bool
}

// New returns a Builder preloaded with the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the entire configuration tree.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis sets the Redis client backing rate records, the session record,
// and the security log.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithIdentityStore sets the host's credential backend.
func (b *Builder) WithIdentityStore(store IdentityStore) *Builder {
	b.identities = store
	return b
}

// WithAuditSink sets the host-facing audit sink. The capped Redis security
// log is always attached in addition to this sink.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles the counter set.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration, wires the engine, and starts the audit
// dispatcher. A Builder can build at most once.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if b.redis == nil {
		return nil, errors.New("redis client required")
	}
	if b.identities == nil {
		return nil, errors.New("identity store required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seeds := cfg.Password.SeedPasswords
	if seeds == nil {
		seeds = defaultConfig().Password.SeedPasswords
	}
	hasher, err := password.NewHasher(password.Config{
		SaltLength:    cfg.Password.SaltLength,
		SeedPasswords: seeds,
	})
	if err != nil {
		return nil, err
	}

	signingKey := cfg.Ticket.SigningKey
	if len(signingKey) == 0 {
		signingKey = make([]byte, 32)
		if _, err := io.ReadFull(rand.Reader, signingKey); err != nil {
			return nil, fmt.Errorf("generate ticket signing key: %w", err)
		}
	}
	issuer := cfg.Ticket.Issuer
	if issuer == "" {
		issuer = "stationauth"
	}
	encoder, err := session.NewEncoder(signingKey, issuer)
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		config:     cfg,
		identities: b.identities,
		hasher:     hasher,
		encoder:    encoder,
		now:        time.Now,
	}

	engine.limiter = ratelimit.New(b.redis, ratelimit.Config{
		MaxAttempts:     cfg.Security.MaxLoginAttempts,
		LockoutDuration: cfg.Security.LockoutDuration,
		KeyPrefix:       cfg.KeyPrefix,
	})
	engine.sessions = session.NewStore(b.redis, cfg.KeyPrefix, cfg.Session.Timeout)

	if cfg.Audit.Enabled {
		capacity := cfg.Audit.LogCapacity
		if capacity == 0 {
			capacity = audit.DefaultCap
		}
		engine.securityLog = audit.NewLog(b.redis, cfg.KeyPrefix+"security_log", capacity)

		sinks := audit.MultiSink{engine.securityLog}
		if b.auditSink != nil {
			sinks = append(sinks, b.auditSink)
		}
		engine.dispatcher = audit.NewDispatcher(audit.Config{
			Enabled:    true,
			BufferSize: cfg.Audit.BufferSize,
			DropIfFull: cfg.Audit.DropIfFull,
		}, sinks)
	}

	engine.metrics = NewMetrics(cfg.Metrics)

	b.built = true

	return engine, nil
}
