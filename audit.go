package stationauth

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/tanquecheio/stationauth/internal/audit"
)

// AuditEvent is one security event as delivered to sinks and stored on the
// security log.
type AuditEvent = audit.Event

// AuditSink receives security events from the engine's asynchronous
// dispatcher. Implementations must tolerate concurrent calls.
type AuditSink = audit.Sink

// Sinks re-exported for hosts embedding the engine.
type (
	NoOpSink       = audit.NoOpSink
	ChannelSink    = audit.ChannelSink
	JSONWriterSink = audit.JSONWriterSink
	MultiSink      = audit.MultiSink
)

// Event kinds recorded on the security log.
const (
	EventLoginSuccess     = audit.KindLoginSuccess
	EventLoginFailed      = audit.KindLoginFailed
	EventLoginRateLimited = audit.KindLoginRateLimited
	EventLoginError       = audit.KindLoginError
	EventLogout           = audit.KindLogout
	EventPasswordChanged  = audit.KindPasswordChanged
)

// NewChannelSink buffers events on a channel for test or pipeline
// consumption.
func NewChannelSink(buffer int) *ChannelSink {
	return audit.NewChannelSink(buffer)
}

// NewJSONWriterSink writes one JSON object per line to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return audit.NewJSONWriterSink(w)
}

// ZerologSink emits security events as structured zerolog records. Failures
// log at warn level, successes at info.
type ZerologSink struct {
	logger zerolog.Logger
}

// NewZerologSink wraps an existing zerolog logger.
func NewZerologSink(logger zerolog.Logger) *ZerologSink {
	return &ZerologSink{logger: logger}
}

func (s *ZerologSink) Emit(_ context.Context, event AuditEvent) {
	if s == nil {
		return
	}

	entry := s.logger.Info()
	if !event.Success {
		entry = s.logger.Warn()
	}

	entry = entry.
		Str("event_id", event.ID).
		Time("event_time", event.Timestamp).
		Str("kind", event.Kind).
		Bool("success", event.Success)
	if event.Email != "" {
		entry = entry.Str("email", event.Email)
	}
	if event.Role != "" {
		entry = entry.Str("role", event.Role)
	}
	if event.ClientContext != "" {
		entry = entry.Str("client", event.ClientContext)
	}
	if event.Error != "" {
		entry = entry.Str("error", event.Error)
	}
	for k, v := range event.Metadata {
		entry = entry.Str("meta_"+k, v)
	}

	entry.Msg("security event")
}
