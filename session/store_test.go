package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(client, "sa:", DefaultTimeout), mr
}

func testSession(now time.Time) Session {
	return Session{
		ID:        "s1",
		UserID:    "u1",
		Email:     "posto@tanquecheio.com",
		Name:      "Posto Centro",
		Role:      "station",
		IssuedAt:  now,
		ExpiresAt: now.Add(DefaultTimeout),
	}
}

func TestStoreSaveAndGet(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, testSession(time.Now())); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := s.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil for live session")
	}
	if got.ID != "s1" || got.Role != "station" || got.Email != "posto@tanquecheio.com" {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestStoreGetMissing(t *testing.T) {
	s, _ := newTestStore(t)

	got, err := s.Get(context.Background())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil session, got %+v", got)
	}
}

func TestStoreLazyExpiry(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	base := time.Now()
	s.now = func() time.Time { return base }

	if err := s.Save(ctx, testSession(base)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Advance past the timeout: Get must return nil and delete the record.
	s.now = func() time.Time { return base.Add(DefaultTimeout + time.Second) }

	got, err := s.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expired session returned: %+v", got)
	}
	if mr.Exists("sa:session") {
		t.Fatal("expired session record still present")
	}
}

func TestStoreOverwrite(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	first := testSession(now)
	if err := s.Save(ctx, first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	second := testSession(now)
	second.ID = "s2"
	second.UserID = "u2"
	if err := s.Save(ctx, second); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := s.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil || got.ID != "s2" {
		t.Fatalf("expected overwritten session s2, got %+v", got)
	}
}

func TestStoreClear(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	// Clearing a missing session is not an error.
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear on empty store failed: %v", err)
	}

	if err := s.Save(ctx, testSession(time.Now())); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	got, err := s.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Fatal("session survived Clear")
	}
}

func TestStoreCorruptRecordTreatedAsMissing(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	mr.Set("sa:session", "not-json")

	got, err := s.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Fatalf("corrupt record returned as session: %+v", got)
	}
	if mr.Exists("sa:session") {
		t.Fatal("corrupt record not cleared")
	}
}
