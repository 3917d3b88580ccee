package stationauth

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestZerologSinkEmitsStructuredEvent(t *testing.T) {
	var buf bytes.Buffer
	sink := NewZerologSink(zerolog.New(&buf))

	sink.Emit(context.Background(), AuditEvent{
		ID:            "evt-1",
		Timestamp:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Kind:          EventLoginSuccess,
		Email:         "posto@example.com",
		Role:          "station",
		ClientContext: "tab-7",
		Success:       true,
	})

	out := buf.String()
	for _, want := range []string{
		`"kind":"LOGIN_SUCCESS"`,
		`"email":"posto@example.com"`,
		`"role":"station"`,
		`"client":"tab-7"`,
		`"success":true`,
		`"level":"info"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output %q missing %q", out, want)
		}
	}
}

func TestZerologSinkFailureLevel(t *testing.T) {
	var buf bytes.Buffer
	sink := NewZerologSink(zerolog.New(&buf))

	sink.Emit(context.Background(), AuditEvent{
		Kind:    EventLoginFailed,
		Email:   "posto@example.com",
		Success: false,
		Error:   "invalid credentials",
		Metadata: map[string]string{
			"remaining_attempts": "3",
		},
	})

	out := buf.String()
	if !strings.Contains(out, `"level":"warn"`) {
		t.Fatalf("failure not logged at warn: %q", out)
	}
	if !strings.Contains(out, `"meta_remaining_attempts":"3"`) {
		t.Fatalf("metadata dropped: %q", out)
	}
}

func TestZerologSinkNilSafe(t *testing.T) {
	var sink *ZerologSink
	sink.Emit(context.Background(), AuditEvent{Kind: EventLogout})
}

func TestEngineForwardsToHostSink(t *testing.T) {
	store := newMemoryIdentityStore()
	seedStation(store, "posto@example.com", "seeded")

	_, client := newTestRedis(t)
	channel := NewChannelSink(8)

	cfg := defaultConfig()
	cfg.Ticket.SigningKey = testSigningKey

	engine, err := New().
		WithConfig(cfg).
		WithRedis(client).
		WithIdentityStore(store).
		WithAuditSink(channel).
		Build()
	if err != nil {
		t.Fatalf("build engine: %v", err)
	}
	defer engine.Close()

	if _, err := engine.Login(context.Background(), "posto@example.com", "TanqueCheio@123"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	select {
	case event := <-channel.Events():
		if event.Kind != EventLoginSuccess {
			t.Fatalf("kind = %q", event.Kind)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("host sink never received the event")
	}
}
