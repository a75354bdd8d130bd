package oauth2

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/joblane/backend/config"
)

// AuthUser is the normalized identity shape extracted from a provider's
// user-info response.
type AuthUser struct {
	Name     string
	Email    string
	Verified bool
	// AvatarURL is optional and currently informational only.
	AvatarURL string
}

// ErrNoEmail is returned when the provider supplies no usable email,
// even after the secondary emails endpoint. Without an email no account
// can be matched or created.
var ErrNoEmail = errors.New("provider did not supply a verified email")

const maxUserInfoBody = 1 << 20

// FetchUser retrieves and normalizes the provider's user info using an
// already-authenticated HTTP client. Providers that may omit the email
// from the primary profile response (EmailsURL set) fall back to the
// secondary emails endpoint.
func FetchUser(ctx context.Context, client *http.Client, provider config.OAuth2Provider) (*AuthUser, error) {
	body, err := getJSON(ctx, client, provider.UserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("user info request failed: %w", err)
	}

	user, err := userFromUserInfo(body, provider.Name)
	if err != nil {
		return nil, err
	}

	if user.Email == "" && provider.EmailsURL != "" {
		email, err := primaryEmail(ctx, client, provider.EmailsURL)
		if err != nil {
			return nil, fmt.Errorf("emails request failed: %w", err)
		}
		user.Email = email
		user.Verified = email != ""
	}

	if user.Email == "" {
		return nil, ErrNoEmail
	}
	return user, nil
}

func getJSON(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxUserInfoBody))
}

// userFromUserInfo maps the provider-specific user-info payload onto
// the normalized AuthUser shape.
func userFromUserInfo(data []byte, providerName string) (*AuthUser, error) {
	switch providerName {
	case config.OAuth2ProviderGoogle:
		extracted := struct {
			Name          string `json:"name"`
			Email         string `json:"email"`
			EmailVerified bool   `json:"email_verified"`
			Picture       string `json:"picture"`
		}{}
		if err := json.Unmarshal(data, &extracted); err != nil {
			return nil, fmt.Errorf("failed to decode google user info: %w", err)
		}
		user := &AuthUser{
			Name:      extracted.Name,
			AvatarURL: extracted.Picture,
			Verified:  extracted.EmailVerified,
		}
		// An unverified provider email proves nothing about inbox
		// ownership; treat it as absent.
		if extracted.EmailVerified {
			user.Email = extracted.Email
		}
		return user, nil

	case config.OAuth2ProviderGithub:
		extracted := struct {
			Login     string `json:"login"`
			Name      string `json:"name"`
			Email     string `json:"email"`
			AvatarURL string `json:"avatar_url"`
		}{}
		if err := json.Unmarshal(data, &extracted); err != nil {
			return nil, fmt.Errorf("failed to decode github user info: %w", err)
		}
		name := extracted.Name
		if name == "" {
			name = extracted.Login
		}
		return &AuthUser{
			Name:      name,
			Email:     extracted.Email,
			Verified:  extracted.Email != "",
			AvatarURL: extracted.AvatarURL,
		}, nil
	}

	return nil, fmt.Errorf("unsupported oauth2 provider %q", providerName)
}

// primaryEmail queries the secondary emails endpoint and selects, in
// order of preference: the entry marked primary and verified, then any
// verified entry, otherwise nothing.
func primaryEmail(ctx context.Context, client *http.Client, emailsURL string) (string, error) {
	body, err := getJSON(ctx, client, emailsURL)
	if err != nil {
		return "", err
	}

	var entries []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := json.Unmarshal(body, &entries); err != nil {
		return "", fmt.Errorf("failed to decode emails response: %w", err)
	}

	var verified string
	for _, e := range entries {
		if !e.Verified {
			continue
		}
		if e.Primary {
			return e.Email, nil
		}
		if verified == "" {
			verified = e.Email
		}
	}
	return verified, nil
}
