// Package rate enforces the per-identifier login attempt budget with a
// time-boxed lockout, backed by persisted Redis records.
//
// Check performs check-and-increment in one call: every login attempt costs
// one counted attempt, and only a successful login (via Reset) refunds the
// counter. Lockout expiry is detected by wall-clock comparison on read, not
// by a scheduled timer, and is a full reset rather than a bare unlock.
package rate
