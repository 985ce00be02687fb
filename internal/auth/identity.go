package auth

import (
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the signed-in identity handed to us by the hosted auth provider.
// The email shape mirrors the provider's user object: a list of addresses, an
// optional primary reference, and a legacy flat field.
type Session struct {
	UserID         string   `json:"user_id"`
	EmailAddresses []string `json:"email_addresses"`
	PrimaryEmail   *string  `json:"primary_email"`
	Email          string   `json:"email"`
}

// ResolveEmail resolves the identity favorites are keyed by. Priority: first
// entry of the address list, then the primary reference, then the flat field.
// An empty return means no usable identity; favorites operations must no-op.
func (s *Session) ResolveEmail() string {
	if s == nil {
		return ""
	}

	if len(s.EmailAddresses) > 0 && s.EmailAddresses[0] != "" {
		return s.EmailAddresses[0]
	}

	if s.PrimaryEmail != nil && *s.PrimaryEmail != "" {
		return *s.PrimaryEmail
	}

	return s.Email
}

// SessionClaims is the JWT payload minted by the auth provider.
type SessionClaims struct {
	EmailAddresses []string `json:"email_addresses,omitempty"`
	PrimaryEmail   *string  `json:"primary_email,omitempty"`
	Email          string   `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func getJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
	}
	return []byte(secret)
}

// ParseSessionToken validates a bearer token and converts its claims into a Session.
func ParseSessionToken(tokenString string) (*Session, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return getJWTSecret(), nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("session token is not valid")
	}

	return &Session{
		UserID:         claims.Subject,
		EmailAddresses: claims.EmailAddresses,
		PrimaryEmail:   claims.PrimaryEmail,
		Email:          claims.Email,
	}, nil
}

// MintSessionToken signs a session token. Used by tests and local tooling; in
// production tokens come from the auth provider.
func MintSessionToken(session *Session) (string, error) {
	claims := SessionClaims{
		EmailAddresses: session.EmailAddresses,
		PrimaryEmail:   session.PrimaryEmail,
		Email:          session.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: session.UserID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getJWTSecret())
}
