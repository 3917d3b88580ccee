package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// DefaultCap is the number of entries the security log retains.
const DefaultCap = 100

// ErrLogUnavailable indicates the security log backend is unreachable.
var ErrLogUnavailable = errors.New("security log backend unavailable")

// Log is the append-only, capped security event log, persisted as a Redis
// list. Oldest entries are evicted first once the cap is exceeded.
type Log struct {
	redis redis.UniversalClient
	key   string
	cap   int
}

// NewLog creates a capped [Log] stored under key.
func NewLog(redisClient redis.UniversalClient, key string, capacity int) *Log {
	if key == "" {
		key = "security_logs"
	}
	if capacity <= 0 {
		capacity = DefaultCap
	}

	return &Log{
		redis: redisClient,
		key:   key,
		cap:   capacity,
	}
}

// Emit implements [Sink]: append the event and trim to the cap. Failures
// are swallowed — the log is a best-effort side channel and must never
// block the caller's primary operation.
func (l *Log) Emit(ctx context.Context, event Event) {
	if l == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	pipe := l.redis.TxPipeline()
	pipe.RPush(ctx, l.key, data)
	pipe.LTrim(ctx, l.key, int64(-l.cap), -1)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Print("stationauth: security log append failed")
	}
}

// Recent returns the newest n entries in chronological order (oldest
// first). n <= 0 or n beyond the cap returns everything retained. Entries
// that fail to decode are skipped.
func (l *Log) Recent(ctx context.Context, n int) ([]Event, error) {
	if n <= 0 || n > l.cap {
		n = l.cap
	}

	raw, err := l.redis.LRange(ctx, l.key, int64(-n), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLogUnavailable, err)
	}

	events := make([]Event, 0, len(raw))
	for _, item := range raw {
		var e Event
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

// Len reports how many entries the log currently holds.
func (l *Log) Len(ctx context.Context) (int, error) {
	n, err := l.redis.LLen(ctx, l.key).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrLogUnavailable, err)
	}
	return int(n), nil
}
