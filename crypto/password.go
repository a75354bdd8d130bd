package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// MaxPasswordLength caps the cost of a hashing call. The check runs
// before any key derivation so oversized input never reaches argon2.
const MaxPasswordLength = 64

// Argon2id parameters following the OWASP low-memory recommendation.
const (
	argonMemory  = 19 * 1024 // KiB
	argonTime    = 2
	argonThreads = 1
	argonSaltLen = 16
	argonKeyLen  = 32
)

var (
	// ErrEmptyPassword is returned for empty password input
	ErrEmptyPassword = errors.New("password cannot be empty")
	// ErrPasswordTooLong is returned when the password exceeds MaxPasswordLength
	ErrPasswordTooLong = fmt.Errorf("password exceeds max length: %d characters", MaxPasswordLength)
	// ErrInvalidHashFormat is returned when a stored hash cannot be parsed
	ErrInvalidHashFormat = errors.New("password hash format is invalid")
)

func checkPasswordInput(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

// HashPassword derives an argon2id hash with a fresh random salt and
// encodes parameters, salt and digest as a single self-describing string:
//
//	$argon2id$v=19$m=19456,t=2,p=1$<salt>$<digest>
//
// Verification needs no side-channel lookup of algorithm parameters.
func HashPassword(password string) (string, error) {
	if err := checkPasswordInput(password); err != nil {
		return "", err
	}

	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	digest := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	)
	return encoded, nil
}

// CheckPassword reports whether password matches the encoded argon2id
// hash. A mismatch is (false, nil); an error is only returned for
// malformed input (empty/oversized password, unparseable hash).
// The digest comparison is constant time.
func CheckPassword(password, encoded string) (bool, error) {
	if err := checkPasswordInput(password); err != nil {
		return false, err
	}

	memory, time, threads, salt, digest, err := parseHash(encoded)
	if err != nil {
		return false, err
	}

	got := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(digest)))
	return subtle.ConstantTimeCompare(got, digest) == 1, nil
}

// parseHash splits a $argon2id$v=19$m=..,t=..,p=..$salt$digest string.
func parseHash(encoded string) (memory, time uint32, threads uint8, salt, digest []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return 0, 0, 0, nil, nil, ErrInvalidHashFormat
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return 0, 0, 0, nil, nil, ErrInvalidHashFormat
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return 0, 0, 0, nil, nil, ErrInvalidHashFormat
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return 0, 0, 0, nil, nil, ErrInvalidHashFormat
	}
	digest, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(digest) == 0 {
		return 0, 0, 0, nil, nil, ErrInvalidHashFormat
	}

	return memory, time, threads, salt, digest, nil
}
