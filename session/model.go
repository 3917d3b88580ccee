package session

import "time"

// Session is the time-bounded record of the currently authenticated
// identity.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Role      string    `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given
// instant.
func (s Session) Expired(at time.Time) bool {
	return at.After(s.ExpiresAt)
}
