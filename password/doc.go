// Package password implements password hashing and verification for station
// and admin credentials.
//
// # Output format
//
// Stored secrets are serialized as:
//
//	<saltHex>:<sha256Hex>
//
// where the digest is SHA-256 over the UTF-8 bytes of the password followed
// by the hex-encoded salt. Verification always reuses the salt embedded in
// the stored value and compares digests in constant time.
//
// # Legacy secrets
//
// A stored value with no ':' separator predates the salted scheme. It is
// verified only by exact match or by membership of the supplied password in
// the configured seed allow-list — a bootstrap shim for the two seeded
// accounts, never a general verification path.
//
// # Architecture boundaries
//
// This package owns hashing and verification only. Password policy (length,
// character classes) lives in the validate package and is enforced by the
// Engine.
//
// # What this package must NOT do
//
//   - Store or retrieve passwords — callers supply plaintext and receive hashes.
//   - Import any other stationauth package.
//   - Log plaintext passwords.
package password
