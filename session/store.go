package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTimeout is the session lifetime from issuance.
const DefaultTimeout = 30 * time.Minute

// ErrUnavailable indicates the session backend is unreachable.
var ErrUnavailable = errors.New("session backend unavailable")

// Store persists the single current session for one client installation.
type Store struct {
	redis   redis.UniversalClient
	key     string
	timeout time.Duration
	now     func() time.Time
}

// NewStore creates a session [Store] keyed under keyPrefix.
func NewStore(redisClient redis.UniversalClient, keyPrefix string, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Store{
		redis:   redisClient,
		key:     keyPrefix + "session",
		timeout: timeout,
		now:     time.Now,
	}
}

// Timeout returns the configured session lifetime.
func (s *Store) Timeout() time.Duration {
	return s.timeout
}

// Save persists sess as the current session, overwriting any existing one.
func (s *Store) Save(ctx context.Context, sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Get returns the current session, or nil when none exists. An expired or
// corrupt record is cleared on read — lazy expiry, no background timer.
func (s *Store) Get(ctx context.Context) (*Session, error) {
	data, err := s.redis.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		_ = s.Clear(ctx)
		return nil, nil
	}

	if sess.Expired(s.now()) {
		if err := s.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return &sess, nil
}

// Clear deletes the current session unconditionally. Clearing a missing
// session is not an error.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.redis.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
