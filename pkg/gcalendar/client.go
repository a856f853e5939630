package gcalendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// DefaultTokenPath is where scripts/gcal-auth stores the OAuth token.
const DefaultTokenPath = "token.json"

// ErrMissingToken is returned for OAuth desktop credentials without a saved token.
var ErrMissingToken = errors.New("gcalendar: OAuth desktop credentials need a token file, run scripts/gcal-auth")

// Client wraps the Google Calendar API service.
type Client struct {
	service *calendar.Service
}

// NewClientFromCredentialsFile creates a Calendar client from a credentials
// file. tokenPath is only read for OAuth desktop credentials.
func NewClientFromCredentialsFile(ctx context.Context, credentialsPath, tokenPath string) (*Client, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("gcalendar: read credentials: %w", err)
	}

	var token []byte
	if tokenPath == "" {
		tokenPath = DefaultTokenPath
	}
	if raw, err := os.ReadFile(tokenPath); err == nil {
		token = raw
	}

	return NewClientFromCredentialsJSON(ctx, data, token)
}

// NewClientFromCredentialsJSON accepts either a Service Account key or OAuth
// "installed" app credentials plus a saved token.
func NewClientFromCredentialsJSON(ctx context.Context, credentialsJSON, tokenJSON []byte) (*Client, error) {
	if jwtCfg, err := google.JWTConfigFromJSON(credentialsJSON, calendar.CalendarScope); err == nil {
		return newClient(ctx, option.WithTokenSource(jwtCfg.TokenSource(ctx)))
	}

	oauthCfg, err := google.ConfigFromJSON(credentialsJSON, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("gcalendar: unsupported credentials format: %w", err)
	}

	if len(tokenJSON) == 0 {
		return nil, ErrMissingToken
	}
	var tok oauth2.Token
	if err := json.Unmarshal(tokenJSON, &tok); err != nil {
		return nil, fmt.Errorf("gcalendar: parse token: %w", err)
	}

	return newClient(ctx, option.WithTokenSource(oauthCfg.TokenSource(ctx, &tok)))
}

// NewClientFromHTTP creates a Calendar client from a pre-configured HTTP client.
func NewClientFromHTTP(ctx context.Context, httpClient *http.Client) (*Client, error) {
	return newClient(ctx, option.WithHTTPClient(httpClient))
}

func newClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcalendar: create service: %w", err)
	}
	return &Client{service: svc}, nil
}
