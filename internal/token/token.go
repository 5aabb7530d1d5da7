package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is the payload a verification token proves: the phone number a
// request legitimately belongs to, plus an optional display name.
type Identity struct {
	Phone string
	Name  string
}

// Store issues and redeems short-lived proof-of-identity tokens.
type Store interface {
	Issue(id Identity) (string, error)
	Redeem(raw string) (Identity, error)
}

type claims struct {
	Phone string `json:"phone"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Signed is a stateless Store: HMAC-signed tokens with an embedded expiry.
// No process state, so no sweeping and nothing lost on restart. Tokens are
// not single-use; they stay valid until they expire.
type Signed struct {
	secret []byte
	ttl    time.Duration
}

const defaultTTL = 15 * time.Minute

func NewSigned(secret string) *Signed {
	return &Signed{secret: []byte(secret), ttl: defaultTTL}
}

func (s *Signed) Issue(id Identity) (string, error) {
	c := claims{
		Phone: id.Phone,
		Name:  id.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

func (s *Signed) Redeem(raw string) (Identity, error) {
	tok, err := jwt.ParseWithClaims(raw, &claims{}, func(t *jwt.Token) (any, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	c, ok := tok.Claims.(*claims)
	if !ok || !tok.Valid {
		return Identity{}, ErrInvalidToken
	}
	return Identity{Phone: c.Phone, Name: c.Name}, nil
}
