package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	apperrors "taskplanner/internal/errors"
)

// fakeProvider stands in for Google's token and userinfo endpoints.
func fakeProvider(t *testing.T, tokenStatus int, userinfo map[string]string) (*GoogleProvider, *httptest.Server) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if tokenStatus != http.StatusOK {
			w.WriteHeader(tokenStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"access_token": "provider-access-token",
			"token_type":   "bearer",
		})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(userinfo)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	provider := &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RedirectURL:  "http://localhost/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  server.URL + "/auth",
				TokenURL: server.URL + "/token",
			},
		},
		userinfoURL: server.URL + "/userinfo",
	}
	return provider, server
}

func TestGoogleProvider_ExchangeSuccess(t *testing.T) {
	provider, _ := fakeProvider(t, http.StatusOK, map[string]string{
		"sub":     "google-subject-1",
		"email":   "alice@example.com",
		"name":    "Alice",
		"picture": "https://example.com/alice.png",
	})

	claims, err := provider.Exchange(context.Background(), "auth-code")
	require.NoError(t, err)
	assert.Equal(t, "google-subject-1", claims.Subject)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "https://example.com/alice.png", claims.Picture)
}

func TestGoogleProvider_ExchangeFailures(t *testing.T) {
	tests := []struct {
		name        string
		code        string
		tokenStatus int
		userinfo    map[string]string
	}{
		{
			name:        "missing code",
			code:        "",
			tokenStatus: http.StatusOK,
			userinfo:    map[string]string{"sub": "s", "email": "a@b.c"},
		},
		{
			name:        "provider rejects code",
			code:        "bad-code",
			tokenStatus: http.StatusBadRequest,
			userinfo:    map[string]string{"sub": "s", "email": "a@b.c"},
		},
		{
			name:        "missing email claim",
			code:        "auth-code",
			tokenStatus: http.StatusOK,
			userinfo:    map[string]string{"sub": "google-subject-1", "name": "Alice"},
		},
		{
			name:        "missing subject claim",
			code:        "auth-code",
			tokenStatus: http.StatusOK,
			userinfo:    map[string]string{"email": "alice@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, _ := fakeProvider(t, tt.tokenStatus, tt.userinfo)

			_, err := provider.Exchange(context.Background(), tt.code)
			assert.ErrorIs(t, err, apperrors.ErrExternalAuthFailed)
		})
	}
}

func TestGoogleProvider_AuthCodeURL(t *testing.T) {
	provider := NewGoogleProvider("client-id", "client-secret", "http://localhost/callback")

	url := provider.AuthCodeURL("state-nonce")
	assert.Contains(t, url, "state=state-nonce")
	assert.Contains(t, url, "client_id=client-id")
	assert.Contains(t, url, "scope=openid+email+profile")
}
