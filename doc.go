// Package stationauth provides the authentication and abuse-resistance
// engine for fuel-station client applications: salted password hashing with
// a seeded-credential compatibility path, Redis-backed login rate limiting
// with timed lockout, single-session management with signed client tickets,
// a capped security event log, and a procedural arithmetic CAPTCHA.
//
// The package is designed for concurrent server workloads: Engine methods
// are safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// stationauth is the public surface. It exposes [Engine], [Builder],
// [Config], error sentinels, and value types. Coordination internals (rate
// limiting, audit dispatch) live under internal/ and are never exported.
// Domain subpackages (password, sanitize, validate, session, captcha,
// middleware) are importable on their own for hosts that need a single
// capability without the engine.
//
// # What this package must NOT do
//
//   - Expose Redis clients or key layouts in its public API.
//   - Own identity records: lookup and persistence go through the
//     host-supplied [IdentityStore].
//   - Perform I/O outside of Engine methods (construction via Builder is
//     allocation-only until Build).
package stationauth
