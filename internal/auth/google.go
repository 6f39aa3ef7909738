package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	apperrors "taskplanner/internal/errors"
)

const googleUserinfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

// GoogleClaims are the normalized identity claims fetched from Google's
// userinfo endpoint after a successful code exchange.
type GoogleClaims struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleProvider drives the OAuth authorization-code exchange with Google.
type GoogleProvider struct {
	config      *oauth2.Config
	userinfoURL string
}

// NewGoogleProvider creates a provider for the registered OAuth client.
func NewGoogleProvider(clientID, clientSecret, redirectURI string) *GoogleProvider {
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userinfoURL: googleUserinfoURL,
	}
}

// AuthCodeURL returns the provider authorization URL for the given state nonce.
func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

// Exchange trades an authorization code for the provider's identity claims.
// Claims are fully validated before being returned; a missing subject or email
// fails the whole login so no partial user record is ever written from it.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*GoogleClaims, error) {
	if code == "" {
		return nil, apperrors.ErrExternalAuthFailed
	}

	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, apperrors.ErrExternalAuthFailed
	}

	resp, err := p.config.Client(ctx, token).Get(p.userinfoURL)
	if err != nil {
		return nil, apperrors.ErrExternalAuthFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.ErrExternalAuthFailed
	}

	var claims GoogleClaims
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return nil, apperrors.ErrExternalAuthFailed
	}
	if claims.Subject == "" || claims.Email == "" {
		return nil, apperrors.ErrExternalAuthFailed
	}
	return &claims, nil
}
