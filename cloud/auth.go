package cloud

import (
	"context"
	"errors"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// Scope only grants access to the files created by the application.
const Scope = "https://www.googleapis.com/auth/drive.file"

// ErrNotSignedIn is returned when no token is configured.
var ErrNotSignedIn = errors.New("not signed in to Google Drive, run cloud-login")

// Config holds the OAuth client and the token of the shop's Drive account.
type Config struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
	RefreshToken string `mapstructure:"refresh_token"`
	AccessToken  string `mapstructure:"access_token"`
	BaseURL      string `mapstructure:"base_url"`
}

func (c Config) oauth2() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURL,
		Endpoint:     endpoints.Google,
		Scopes:       []string{Scope},
	}
}

// AuthURL returns the consent page URL. The code it yields is traded with
// Exchange for a refresh token.
func (c Config) AuthURL(state string) string {
	return c.oauth2().AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an authorization code for a token.
func (c Config) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return c.oauth2().Exchange(ctx, code)
}

// TokenSource prefers the refresh token, then a raw access token.
func (c Config) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	switch {
	case c.RefreshToken != "":
		return c.oauth2().TokenSource(ctx, &oauth2.Token{RefreshToken: c.RefreshToken}), nil
	case c.AccessToken != "":
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.AccessToken, TokenType: "Bearer"}), nil
	default:
		return nil, ErrNotSignedIn
	}
}

// Client returns an HTTP client authorizing its requests.
func (c Config) Client(ctx context.Context) (*http.Client, error) {
	ts, err := c.TokenSource(ctx)
	if err != nil {
		return nil, err
	}
	return oauth2.NewClient(ctx, ts), nil
}

// Open returns the Drive client of the configured account.
func Open(ctx context.Context, c Config) (*Drive, error) {
	hc, err := c.Client(ctx)
	if err != nil {
		return nil, err
	}
	return NewDrive(hc, c.BaseURL), nil
}
