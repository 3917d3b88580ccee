package password

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"strings"
)

const (
	defaultSaltLength = 16
	minSaltLength     = 16
)

// Config defines hashing parameters and the legacy compatibility surface.
//
// Config instances are intended to be configured during initialization and
// then treated as immutable.
type Config struct {
	// SaltLength is the number of random salt bytes per hash. Defaults to 16.
	SaltLength int

	// SeedPasswords is the fixed allow-list consulted by the legacy
	// verification path for stored secrets that predate the salted scheme
	// (no ':' separator). This is a bootstrap shim for seeded accounts and
	// must never grow to cover user-created credentials.
	SeedPasswords []string
}

// Hasher produces and verifies salted SHA-256 secrets serialized as
// "saltHex:digestHex".
type Hasher struct {
	config Config
	seeds  map[string]struct{}
}

// NewHasher validates cfg and returns a ready Hasher.
func NewHasher(cfg Config) (*Hasher, error) {
	if cfg.SaltLength == 0 {
		cfg.SaltLength = defaultSaltLength
	}
	if cfg.SaltLength < minSaltLength {
		return nil, errors.New("password salt length must be >= 16")
	}

	seeds := make(map[string]struct{}, len(cfg.SeedPasswords))
	for _, p := range cfg.SeedPasswords {
		seeds[p] = struct{}{}
	}

	return &Hasher{config: cfg, seeds: seeds}, nil
}

// Hash generates a fresh random salt and returns "saltHex:digestHex" where
// the digest is SHA-256 over the password concatenated with the hex-encoded
// salt.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.config.SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}

	saltHex := hex.EncodeToString(salt)
	return saltHex + ":" + digest(password, saltHex), nil
}

// Verify checks password against a stored secret. Stored values without a
// ':' separator take the legacy path; everything else recomputes the digest
// with the embedded salt and compares in constant time. Verify never
// returns an error: any malformed stored value verifies false.
func (h *Hasher) Verify(password, stored string) bool {
	if stored == "" {
		return false
	}
	if !strings.Contains(stored, ":") {
		return h.verifyLegacy(password, stored)
	}

	salt, want, ok := strings.Cut(stored, ":")
	if !ok || salt == "" || want == "" {
		return false
	}

	return constantTimeEqual(digest(password, salt), want)
}

// verifyLegacy handles pre-salt secrets: an exact match against the stored
// value, or membership of the password in the seed allow-list. Arbitrary
// freshly hashed input never matches here.
func (h *Hasher) verifyLegacy(password, stored string) bool {
	if constantTimeEqual(password, stored) {
		return true
	}
	_, seeded := h.seeds[password]
	return seeded
}

func digest(password, saltHex string) string {
	sum := sha256.Sum256([]byte(password + saltHex))
	return hex.EncodeToString(sum[:])
}

// constantTimeEqual compares equal-length strings by XOR accumulation so a
// mismatch position cannot be recovered from timing. Unequal lengths are
// immediately unequal.
func constantTimeEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}

	var v byte
	for i := 0; i < len(a); i++ {
		v |= a[i] ^ b[i]
	}
	return v == 0
}
