package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"

	"github.com/google/uuid"
)

const alphanumericAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// RandomString returns a cryptographically secure random string of
// length n drawn from alphabet. Panics only if the system CSPRNG is
// unavailable, which is not a recoverable condition.
func RandomString(n int, alphabet string) string {
	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		b[i] = alphabet[idx.Int64()]
	}
	return string(b)
}

// NewVerificationToken returns a single-use token with well over 128
// bits of entropy: a v4 UUID (122 random bits) plus 8 random bytes.
func NewVerificationToken() string {
	extra := make([]byte, 8)
	if _, err := rand.Read(extra); err != nil {
		panic(err)
	}
	return uuid.NewString() + hex.EncodeToString(extra)
}
