package session

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTicketInvalid covers every ticket rejection: bad signature, wrong
// method, expired, malformed. Callers get no finer detail.
var ErrTicketInvalid = errors.New("invalid session ticket")

const minSigningKeyLength = 32

// Encoder signs and parses the client-held session ticket.
type Encoder struct {
	key    []byte
	issuer string
}

type ticketClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// NewEncoder returns an Encoder signing with the given HS256 key.
func NewEncoder(signingKey []byte, issuer string) (*Encoder, error) {
	if len(signingKey) < minSigningKeyLength {
		return nil, errors.New("ticket signing key must be at least 32 bytes")
	}
	if issuer == "" {
		return nil, errors.New("ticket issuer required")
	}

	return &Encoder{key: signingKey, issuer: issuer}, nil
}

// Encode signs sess into a compact ticket string.
func (e *Encoder) Encode(sess Session) (string, error) {
	claims := ticketClaims{
		Email: sess.Email,
		Name:  sess.Name,
		Role:  sess.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			Subject:   sess.UserID,
			Issuer:    e.issuer,
			IssuedAt:  jwt.NewNumericDate(sess.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(e.key)
}

// Decode parses and validates a ticket, returning the session it encodes.
// The result says what the ticket claims, not what the store holds; callers
// must cross-check the live session.
func (e *Encoder) Decode(ticket string) (Session, error) {
	claims := &ticketClaims{}

	token, err := jwt.ParseWithClaims(ticket, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrTicketInvalid
			}
			return e.key, nil
		},
		jwt.WithIssuer(e.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return Session{}, ErrTicketInvalid
	}

	sess := Session{
		ID:     claims.ID,
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   claims.Role,
	}
	if claims.IssuedAt != nil {
		sess.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}

	return sess, nil
}
