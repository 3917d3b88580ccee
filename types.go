package stationauth

import (
	"context"
	"time"
)

// Role tags the two identity classes.
type Role string

const (
	// RoleStation is a registered fuel-retailer account.
	RoleStation Role = "station"
	// RoleAdmin is the privileged management identity class.
	RoleAdmin Role = "admin"
)

// Identity is the credential record the engine reads from the host's
// store. The engine never creates identities; it only stamps LastLogin and
// replaces Secret on password change, both through [IdentityStore].
type Identity struct {
	ID    string
	Email string
	Name  string
	Role  Role

	// Secret is the stored password hash ("saltHex:digestHex", or a legacy
	// seed value without the separator).
	Secret string

	// Active applies to stations; inactive stations cannot log in. Admin
	// records are always considered active.
	Active bool

	LastLogin time.Time
}

// IdentityStore is the host-supplied credential backend.
//
// Lookups return [ErrIdentityNotFound] on a miss. Email uniqueness across
// the two classes is the store's responsibility; the engine resolves an
// (illegitimate) collision by letting the admin record win.
type IdentityStore interface {
	FindAdminByEmail(ctx context.Context, email string) (*Identity, error)
	// FindStationByEmail may return inactive records; the engine skips
	// them.
	FindStationByEmail(ctx context.Context, email string) (*Identity, error)
	UpdateLastLogin(ctx context.Context, id string, role Role, at time.Time) error
	UpdatePasswordHash(ctx context.Context, id string, role Role, hash string) error
}

// LoginResult is the successful outcome of [Engine.Login].
type LoginResult struct {
	Identity *Identity
	// Ticket is the signed client-held session representation. The session
	// store stays authoritative; present the ticket back through
	// [Engine.ValidateTicket] or middleware.RequireSession.
	Ticket string
}
