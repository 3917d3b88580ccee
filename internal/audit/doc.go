// Package audit carries security events from the engine to wherever the
// host wants them, and maintains the capped persistent security log.
//
// Emission is best-effort by contract: a full buffer, a closed dispatcher,
// or an unreachable log backend must never fail or block the caller's
// primary operation.
package audit
