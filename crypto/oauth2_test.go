package crypto

import (
	"strings"
	"testing"
)

func TestOauth2State(t *testing.T) {
	state := Oauth2State()
	if len(state) != Oauth2StateLength {
		t.Errorf("state length = %d, want %d", len(state), Oauth2StateLength)
	}
	for _, c := range state {
		if !strings.ContainsRune(alphanumericAlphabet, c) {
			t.Errorf("state contains character %q outside the alphanumeric alphabet", c)
		}
	}
	if Oauth2State() == state {
		t.Error("two states are identical")
	}
}

func TestOauth2CodeVerifier(t *testing.T) {
	verifier := Oauth2CodeVerifier()
	if len(verifier) != OauthCodeVerifierLength {
		t.Errorf("verifier length = %d, want %d", len(verifier), OauthCodeVerifierLength)
	}
	for _, c := range verifier {
		if !strings.ContainsRune(pkceAlphabet, c) {
			t.Errorf("verifier contains character %q outside the RFC 7636 alphabet", c)
		}
	}
}

// Test vector from RFC 7636 appendix B.
func TestS256Challenge(t *testing.T) {
	verifier := "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
	want := "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM"
	if got := S256Challenge(verifier); got != want {
		t.Errorf("S256Challenge = %q, want %q", got, want)
	}
}

func TestNewVerificationToken(t *testing.T) {
	t1 := NewVerificationToken()
	t2 := NewVerificationToken()
	if t1 == t2 {
		t.Error("two verification tokens are identical")
	}
	// uuid (36) + 16 hex chars
	if len(t1) != 52 {
		t.Errorf("token length = %d, want 52", len(t1))
	}
}
