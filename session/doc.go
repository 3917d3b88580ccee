// Package session persists the single current-user session and produces
// the signed ticket the client holds between reloads.
//
// # Model
//
// Exactly one session record exists per client installation. A new login
// overwrites it; logout deletes it; expiry is detected lazily on read (no
// background timer).
//
// # Tickets
//
// The ticket is an HS256-signed compact token carrying the session fields.
// It provides integrity, not confidentiality, and is never authoritative:
// callers must cross-check the live store, so a cleared or superseded
// session invalidates every previously issued ticket.
package session
