package stationauth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/tanquecheio/stationauth/captcha"
	"github.com/tanquecheio/stationauth/internal/audit"
	ratelimit "github.com/tanquecheio/stationauth/internal/rate"
	"github.com/tanquecheio/stationauth/password"
	"github.com/tanquecheio/stationauth/sanitize"
	"github.com/tanquecheio/stationauth/session"
	"github.com/tanquecheio/stationauth/validate"
)

// Engine orchestrates authentication for one client installation: rate
// limiting, credential verification, session issuance, and security event
// logging. Construct through [Builder.Build]; all methods are safe for
// concurrent use afterwards.
type Engine struct {
	config     Config
	identities IdentityStore

	hasher   *password.Hasher
	encoder  *session.Encoder
	limiter  *ratelimit.Limiter
	sessions *session.Store

	securityLog *audit.Log
	dispatcher  *audit.Dispatcher
	metrics     *Metrics

	now    func() time.Time
	closed atomic.Bool
}

// Login authenticates email/password.
//
// Order is fixed: rate-limit check, identity lookup (admin class first,
// inactive stations skipped), password verification, last-login stamp,
// session issuance, limiter reset, audit. A caller can never observe a
// session before a rate-limit pass.
//
// Failure modes: a [*RateLimitedError] when the identifier is locked out,
// [ErrInvalidCredentials] for unknown email or wrong password (the two are
// indistinguishable), and wrapped storage errors for anything unexpected,
// which are additionally recorded as LOGIN_ERROR events.
func (e *Engine) Login(ctx context.Context, email, pwd string) (*LoginResult, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}

	id := sanitize.Identifier(email)

	res, err := e.limiter.Check(ctx, id)
	if err != nil {
		return nil, e.loginError(ctx, id, fmt.Errorf("rate limit check: %w", err))
	}
	if !res.Allowed {
		e.metrics.Inc(MetricLoginRateLimited)
		e.emit(ctx, AuditEvent{
			Kind:    EventLoginRateLimited,
			Email:   id,
			Success: false,
			Metadata: map[string]string{
				"retry_after_ms": strconv.FormatInt(res.LockoutRemaining.Milliseconds(), 10),
			},
		})
		return nil, &RateLimitedError{RetryAfter: res.LockoutRemaining}
	}

	identity, err := e.lookup(ctx, id)
	if err != nil {
		return nil, e.loginError(ctx, id, fmt.Errorf("identity lookup: %w", err))
	}

	if identity == nil || !e.hasher.Verify(pwd, identity.Secret) {
		e.metrics.Inc(MetricLoginFailure)
		e.emit(ctx, AuditEvent{
			Kind:    EventLoginFailed,
			Email:   id,
			Success: false,
			Metadata: map[string]string{
				"remaining_attempts": strconv.Itoa(res.RemainingAttempts),
			},
		})
		return nil, ErrInvalidCredentials
	}

	now := e.now()
	if err := e.identities.UpdateLastLogin(ctx, identity.ID, identity.Role, now); err != nil {
		return nil, e.loginError(ctx, id, fmt.Errorf("stamp last login: %w", err))
	}
	identity.LastLogin = now

	sess := session.Session{
		ID:        uuid.NewString(),
		UserID:    identity.ID,
		Email:     identity.Email,
		Name:      identity.Name,
		Role:      string(identity.Role),
		IssuedAt:  now,
		ExpiresAt: now.Add(e.sessions.Timeout()),
	}
	if err := e.sessions.Save(ctx, sess); err != nil {
		return nil, e.loginError(ctx, id, fmt.Errorf("save session: %w", err))
	}

	ticket, err := e.encoder.Encode(sess)
	if err != nil {
		return nil, e.loginError(ctx, id, fmt.Errorf("encode ticket: %w", err))
	}

	if err := e.limiter.Reset(ctx, id); err != nil {
		return nil, e.loginError(ctx, id, fmt.Errorf("reset rate limit: %w", err))
	}

	e.metrics.Inc(MetricLoginSuccess)
	e.emit(ctx, AuditEvent{
		Kind:    EventLoginSuccess,
		Email:   identity.Email,
		Role:    string(identity.Role),
		Success: true,
	})

	return &LoginResult{Identity: identity, Ticket: ticket}, nil
}

// Logout records the event for the current session, if any, then clears the
// session unconditionally.
func (e *Engine) Logout(ctx context.Context) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}

	sess, err := e.sessions.Get(ctx)
	if err == nil && sess != nil {
		e.emit(ctx, AuditEvent{
			Kind:    EventLogout,
			Email:   sess.Email,
			Role:    sess.Role,
			Success: true,
		})
	}

	e.metrics.Inc(MetricLogout)
	return e.sessions.Clear(ctx)
}

// CurrentUser returns the live session, or nil without error when none
// exists or the stored one has expired.
func (e *Engine) CurrentUser(ctx context.Context) (*session.Session, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}
	return e.sessions.Get(ctx)
}

// ValidateTicket parses a client-held ticket and cross-checks it against
// the live session. The store is authoritative: a cryptographically valid
// ticket whose session was cleared, replaced, or expired is rejected.
// Returns [ErrTicketInvalid] on signature or claim failure, [ErrNoSession]
// when no live session exists.
func (e *Engine) ValidateTicket(ctx context.Context, ticket string) (*session.Session, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}

	claimed, err := e.encoder.Decode(ticket)
	if err != nil {
		e.metrics.Inc(MetricTicketRejected)
		return nil, ErrTicketInvalid
	}

	live, err := e.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	if live == nil {
		e.metrics.Inc(MetricTicketRejected)
		return nil, ErrNoSession
	}
	if live.ID != claimed.ID || live.Expired(e.now()) {
		e.metrics.Inc(MetricTicketRejected)
		return nil, ErrTicketInvalid
	}

	return live, nil
}

// ChangePassword verifies the current secret, enforces the strength policy
// on the new one, and persists the rehash through the identity store.
// Policy failures return a [*PolicyError] listing every violated rule.
func (e *Engine) ChangePassword(ctx context.Context, email, oldPwd, newPwd string) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}

	id := sanitize.Identifier(email)

	identity, err := e.lookup(ctx, id)
	if err != nil {
		return fmt.Errorf("identity lookup: %w", err)
	}
	if identity == nil || !e.hasher.Verify(oldPwd, identity.Secret) {
		return ErrInvalidCredentials
	}

	if strength := validate.PasswordStrength(newPwd); !strength.Valid {
		return &PolicyError{Violations: strength.Violations}
	}

	hash, err := e.hasher.Hash(newPwd)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := e.identities.UpdatePasswordHash(ctx, identity.ID, identity.Role, hash); err != nil {
		return fmt.Errorf("persist password hash: %w", err)
	}

	_ = e.limiter.Reset(ctx, id)

	e.metrics.Inc(MetricPasswordChanged)
	e.emit(ctx, AuditEvent{
		Kind:    EventPasswordChanged,
		Email:   identity.Email,
		Role:    string(identity.Role),
		Success: true,
	})

	return nil
}

// NewChallenge builds a CAPTCHA challenge using the configured attempt
// budget. The challenge gates the surrounding form's submit eligibility;
// it is not part of the Login call chain.
func (e *Engine) NewChallenge(surface captcha.Surface) *captcha.Challenge {
	return captcha.New(captcha.Config{
		MaxAttempts: e.config.Captcha.MaxAttempts,
		Surface:     surface,
	})
}

// SecurityLog returns the newest n security events in chronological order.
// Returns nil without error when auditing is disabled.
func (e *Engine) SecurityLog(ctx context.Context, n int) ([]AuditEvent, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}
	if e.securityLog == nil {
		return nil, nil
	}
	return e.securityLog.Recent(ctx, n)
}

// MetricsSnapshot copies the engine counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	return e.metrics.Snapshot()
}

// AuditDropped reports how many security events the dispatcher discarded
// because its buffer was full.
func (e *Engine) AuditDropped() uint64 {
	return e.dispatcher.Dropped()
}

// Close drains and stops the audit dispatcher. Subsequent Engine calls
// return [ErrEngineClosed]. Safe to call more than once.
func (e *Engine) Close() {
	if e.closed.Swap(true) {
		return
	}
	e.dispatcher.Close()
}

// lookup resolves a sanitized email across both identity classes, admin
// first. Inactive stations and misses resolve to nil, nil; only unexpected
// store errors propagate.
func (e *Engine) lookup(ctx context.Context, email string) (*Identity, error) {
	admin, err := e.identities.FindAdminByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrIdentityNotFound) {
		return nil, err
	}
	if admin != nil {
		return admin, nil
	}

	station, err := e.identities.FindStationByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrIdentityNotFound) {
		return nil, err
	}
	if station == nil || !station.Active {
		return nil, nil
	}
	return station, nil
}

// loginError records an unexpected failure as LOGIN_ERROR and returns err
// unchanged for the caller.
func (e *Engine) loginError(ctx context.Context, email string, err error) error {
	e.metrics.Inc(MetricLoginError)
	e.emit(ctx, AuditEvent{
		Kind:    EventLoginError,
		Email:   email,
		Success: false,
		Error:   err.Error(),
	})
	return err
}

func (e *Engine) emit(ctx context.Context, event AuditEvent) {
	if e.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = e.now()
	}
	if event.ClientContext == "" {
		event.ClientContext = clientContextFrom(ctx)
	}
	e.dispatcher.Emit(ctx, event)
}
