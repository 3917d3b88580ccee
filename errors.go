package stationauth

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidCredentials is returned for every authentication failure a
	// caller could use to probe accounts: unknown email, inactive station,
	// wrong password. Deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrLoginRateLimited is the sentinel matched by [RateLimitedError].
	ErrLoginRateLimited = errors.New("login rate limited")
	// ErrIdentityNotFound is returned by IdentityStore implementations on a
	// lookup miss. The engine never surfaces it to login callers.
	ErrIdentityNotFound = errors.New("identity not found")
	// ErrPasswordPolicy is the sentinel matched by [PolicyError].
	ErrPasswordPolicy = errors.New("password policy violation")
	// ErrTicketInvalid is returned when a session ticket fails signature or
	// claim validation, or no longer matches the live session.
	ErrTicketInvalid = errors.New("invalid session ticket")
	// ErrNoSession is returned by ticket validation when there is no live
	// session to check against.
	ErrNoSession = errors.New("no active session")
	// ErrEngineClosed is returned by Engine methods after Close.
	ErrEngineClosed = errors.New("engine closed")
)

// RateLimitedError reports a denied login attempt together with how long the
// lockout still holds. Matches [ErrLoginRateLimited] via errors.Is.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("login rate limited, retry in %s", e.RetryAfter.Round(time.Second))
}

func (e *RateLimitedError) Is(target error) bool {
	return target == ErrLoginRateLimited
}

// PolicyError carries every password strength rule the candidate violated,
// in rule order. Matches [ErrPasswordPolicy] via errors.Is.
type PolicyError struct {
	Violations []string
}

func (e *PolicyError) Error() string {
	return "password policy violation: " + strings.Join(e.Violations, "; ")
}

func (e *PolicyError) Is(target error) bool {
	return target == ErrPasswordPolicy
}
