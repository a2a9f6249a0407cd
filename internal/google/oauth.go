package google

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
)

// GetOAuthConfig returns the OAuth2 configuration for the calendar scope.
// Client ID and secret come from the environment (GOOGLE_CLIENT_ID,
// GOOGLE_CLIENT_SECRET), typically via a .env file.
func GetOAuthConfig() *oauth2.Config {
	const oob = "urn:ietf:wg:oauth:2.0:oob"
	return &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		Endpoint:     google.Endpoint,
		RedirectURL:  oob,
		Scopes: []string{
			calendar.CalendarScope,
		},
	}
}

// GetAuthURL returns the OAuth URL for user authorization.
func GetAuthURL() string {
	conf := GetOAuthConfig()
	return conf.AuthCodeURL("state", oauth2.AccessTypeOffline)
}

// SaveTokenForAccount exchanges an authorization code for tokens and saves
// them under the given account name.
func SaveTokenForAccount(ctx context.Context, account, authCode string) error {
	conf := GetOAuthConfig()

	token, err := conf.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("failed to exchange auth code: %w", err)
	}

	path := tokenFile(account)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// HasTokenForAccount checks if a stored token exists for the account.
func HasTokenForAccount(account string) bool {
	_, err := os.Stat(tokenFile(account))
	return err == nil
}

// GetTokenSourceForAccount returns an OAuth2 token source backed by the
// stored token for the account. The source refreshes expired tokens
// transparently.
func GetTokenSourceForAccount(ctx context.Context, account string) (oauth2.TokenSource, error) {
	slurp, err := os.ReadFile(tokenFile(account))
	if err != nil {
		return nil, fmt.Errorf("no Google OAuth token found for account %s", account)
	}

	var token oauth2.Token
	if err := json.Unmarshal(slurp, &token); err != nil {
		return nil, fmt.Errorf("invalid token file for account %s: %w", account, err)
	}

	conf := GetOAuthConfig()
	return conf.TokenSource(ctx, &token), nil
}

// tokenFile returns the token path for an account, e.g.
// ~/.cache/schedbot/token_user1.json on Linux.
func tokenFile(account string) string {
	return filepath.Join(userCacheDir(), "schedbot", "token_"+account+".json")
}

func userCacheDir() string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir(), "Library", "Caches")
	case "windows":
		for _, ev := range []string{"TEMP", "TMP"} {
			if v := os.Getenv(ev); v != "" {
				return v
			}
		}
		panic("No Windows TEMP or TMP environment variables found")
	}
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return xdg
	}
	return filepath.Join(homeDir(), ".cache")
}

func homeDir() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
	}
	return os.Getenv("HOME")
}
