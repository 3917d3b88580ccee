package rate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultMaxAttempts is the attempt budget before lockout.
	DefaultMaxAttempts = 5
	// DefaultLockoutDuration is how long a locked identifier stays denied.
	DefaultLockoutDuration = 15 * time.Minute
)

// ErrUnavailable indicates the rate-limit backend is unreachable.
var ErrUnavailable = errors.New("rate limit backend unavailable")

// Config holds rate limiter tuning parameters.
type Config struct {
	MaxAttempts     int
	LockoutDuration time.Duration
	KeyPrefix       string
}

// Result is the outcome of one Check call.
type Result struct {
	Allowed           bool
	RemainingAttempts int
	// LockoutRemaining is non-zero only when the identifier is locked.
	LockoutRemaining time.Duration
}

// record is the persisted per-identifier attempt state.
type record struct {
	Attempts     int   `json:"attempts"`
	FirstAttempt int64 `json:"first_attempt_ms"`
	Locked       bool  `json:"locked"`
	LockoutStart int64 `json:"lockout_start_ms,omitempty"`
}

// Limiter tracks login attempts per sanitized identifier using Redis-backed
// records.
type Limiter struct {
	redis  redis.UniversalClient
	config Config
	now    func() time.Time
}

// New creates a [Limiter] backed by the given Redis client.
func New(redisClient redis.UniversalClient, cfg Config) *Limiter {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.LockoutDuration <= 0 {
		cfg.LockoutDuration = DefaultLockoutDuration
	}

	return &Limiter{
		redis:  redisClient,
		config: cfg,
		now:    time.Now,
	}
}

func (l *Limiter) key(identifier string) string {
	return l.config.KeyPrefix + "rate_limit:" + identifier
}

// Check records one attempt for the identifier and reports whether it may
// proceed. The state machine:
//
//   - no record: create {attempts:1}, allow with max-1 remaining
//   - locked, lockout still running: deny with the remaining lockout time
//   - locked, lockout elapsed: full reset to {attempts:1}, allow
//   - otherwise increment; reaching the budget locks the identifier and
//     denies with the full lockout duration
func (l *Limiter) Check(ctx context.Context, identifier string) (Result, error) {
	key := l.key(identifier)
	now := l.now()

	data, err := l.redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return l.firstAttempt(ctx, key, now)
		}
		return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		// A corrupt record is replaced, not trusted.
		return l.firstAttempt(ctx, key, now)
	}

	if rec.Locked {
		elapsed := now.Sub(time.UnixMilli(rec.LockoutStart))
		if elapsed < l.config.LockoutDuration {
			return Result{LockoutRemaining: l.config.LockoutDuration - elapsed}, nil
		}
		// Lockout expiry is a full counter reset, not just an unlock.
		return l.firstAttempt(ctx, key, now)
	}

	rec.Attempts++
	if rec.Attempts >= l.config.MaxAttempts {
		rec.Locked = true
		rec.LockoutStart = now.UnixMilli()
		if err := l.save(ctx, key, rec); err != nil {
			return Result{}, err
		}
		return Result{LockoutRemaining: l.config.LockoutDuration}, nil
	}

	if err := l.save(ctx, key, rec); err != nil {
		return Result{}, err
	}
	return Result{Allowed: true, RemainingAttempts: l.config.MaxAttempts - rec.Attempts}, nil
}

// Reset deletes the attempt record outright. Called after a successful
// login; resetting a missing record is not an error.
func (l *Limiter) Reset(ctx context.Context, identifier string) error {
	if err := l.redis.Del(ctx, l.key(identifier)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Attempts returns the current attempt count for an identifier. Missing
// records report zero and do not reveal account existence.
func (l *Limiter) Attempts(ctx context.Context, identifier string) (int, error) {
	data, err := l.redis.Get(ctx, l.key(identifier)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return 0, nil
	}
	return rec.Attempts, nil
}

func (l *Limiter) firstAttempt(ctx context.Context, key string, now time.Time) (Result, error) {
	rec := record{Attempts: 1, FirstAttempt: now.UnixMilli()}
	if err := l.save(ctx, key, rec); err != nil {
		return Result{}, err
	}
	return Result{Allowed: true, RemainingAttempts: l.config.MaxAttempts - 1}, nil
}

func (l *Limiter) save(ctx context.Context, key string, rec record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	// Records carry no TTL: lockout expiry is decided by wall-clock
	// comparison on the next Check, and success deletes the key.
	if err := l.redis.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
