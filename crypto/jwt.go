package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// MinSecretLength is the minimum required length for session signing keys.
	// 32 bytes (256 bits) is the minimum recommended length for HMAC-SHA256 keys.
	MinSecretLength = 32

	// JWT claim constants
	ClaimSubject   = "sub" // user id
	ClaimIssuedAt  = "iat"
	ClaimExpiresAt = "exp"
)

var (
	// ErrInvalidSubject is returned when issuing a token for an empty subject
	ErrInvalidSubject = errors.New("invalid token subject")
	// ErrInvalidSecretLength is returned for signing keys shorter than MinSecretLength
	ErrInvalidSecretLength = errors.New("invalid secret length")
	// ErrInvalidToken covers every verification failure: bad signature,
	// expired, malformed, wrong algorithm. Callers must not learn which.
	ErrInvalidToken = errors.New("invalid token")
)

// NewSessionToken signs a compact HS256 session token for subject.
// Claims carry iat and exp as epoch seconds; exp is now + ttl.
// Returns the token and its expiry time.
func NewSessionToken(subject string, secret []byte, ttl time.Duration) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, ErrInvalidSubject
	}
	if len(secret) < MinSecretLength {
		return "", time.Time{}, ErrInvalidSecretLength
	}

	now := time.Now()
	expires := now.Add(ttl)
	claims := jwt.MapClaims{
		ClaimSubject:   subject,
		ClaimIssuedAt:  now.Unix(),
		ClaimExpiresAt: expires.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expires, nil
}

// ParseSessionToken verifies signature and expiry and returns the
// subject. Every failure mode collapses to ErrInvalidToken so the
// verifier cannot be used as an oracle for why verification failed.
// The jwt library compares HMAC signatures in constant time.
func ParseSessionToken(token string, secret []byte) (string, error) {
	if len(secret) < MinSecretLength {
		return "", ErrInvalidSecretLength
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
	)

	parsed, err := parser.Parse(token, func(t *jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	subject, ok := claims[ClaimSubject].(string)
	if !ok || subject == "" {
		return "", ErrInvalidToken
	}
	return subject, nil
}
