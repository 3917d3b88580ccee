// Package middleware exposes HTTP adapters built on top of
// stationauth.Engine ticket validation.
//
// [RequireSession] reads the Authorization bearer ticket, validates it
// through Engine.ValidateTicket, and injects the live session into the
// request context for handlers to read via [SessionFromContext].
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// implement authentication logic itself — all decisions are delegated to
// Engine.ValidateTicket.
//
// # What this package must NOT do
//
//   - Parse or create tickets directly (delegates to Engine).
//   - Access Redis (Engine handles I/O).
//   - Make authorization decisions beyond pass/reject from ValidateTicket.
package middleware
