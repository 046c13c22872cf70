package streamhttp

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthType identifies the authentication method.
type AuthType int

const (
	// AuthNone disables authentication.
	AuthNone AuthType = iota
	// AuthBearer uses Bearer token authentication.
	AuthBearer
	// AuthBasic uses HTTP Basic authentication.
	AuthBasic
	// AuthAPIKey uses API key authentication (header or query parameter).
	AuthAPIKey
	// AuthCustom uses a custom authentication function.
	AuthCustom
)

// AuthConfig configures authentication stamped onto every request at build
// time, before the descriptor headers are frozen.
type AuthConfig struct {
	// Type is the authentication method.
	Type AuthType
	// Token is the bearer token (AuthBearer). Ignored when Source is set.
	Token string
	// Source supplies bearer tokens per request (AuthBearer).
	Source TokenSource
	// Username is the basic auth username (AuthBasic).
	Username string
	// Password is the basic auth password (AuthBasic).
	Password string
	// Key is the API key value (AuthAPIKey).
	Key string
	// In specifies where to place the API key: "header" (default) or
	// "query" (AuthAPIKey).
	In string
	// Name is the header or query parameter name (AuthAPIKey). Defaults to
	// "X-API-Key".
	Name string
	// Apply is a custom function to modify headers and target (AuthCustom).
	Apply func(http.Header, *url.URL)
}

// BearerAuth creates a bearer token auth config.
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthBearer, Token: token}
}

// BearerTokenSource creates a bearer auth config backed by a token source.
func BearerTokenSource(source TokenSource) *AuthConfig {
	return &AuthConfig{Type: AuthBearer, Source: source}
}

// BasicAuth creates a basic auth config.
func BasicAuth(username, password string) *AuthConfig {
	return &AuthConfig{Type: AuthBasic, Username: username, Password: password}
}

// APIKeyAuth creates an API key auth config sent via the X-API-Key header.
func APIKeyAuth(key string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Key: key, In: "header", Name: "X-API-Key"}
}

// APIKeyAuthHeader creates an API key auth config with a custom header name.
func APIKeyAuthHeader(key, headerName string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Key: key, In: "header", Name: headerName}
}

// APIKeyAuthQuery creates an API key auth config sent via query parameter.
func APIKeyAuthQuery(key, paramName string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Key: key, In: "query", Name: paramName}
}

// CustomAuth creates a custom auth config with a modifier function.
func CustomAuth(fn func(http.Header, *url.URL)) *AuthConfig {
	return &AuthConfig{Type: AuthCustom, Apply: fn}
}

// apply stamps authentication onto the outgoing headers and target.
func (a *AuthConfig) apply(ctx context.Context, headers http.Header, target *url.URL) error {
	if a == nil {
		return nil
	}
	switch a.Type {
	case AuthBearer:
		token := a.Token
		if a.Source != nil {
			t, err := a.Source.Token(ctx)
			if err != nil {
				return err
			}
			token = t
		}
		headers.Set("Authorization", "Bearer "+token)
	case AuthBasic:
		cred := base64.StdEncoding.EncodeToString([]byte(a.Username + ":" + a.Password))
		headers.Set("Authorization", "Basic "+cred)
	case AuthAPIKey:
		name := a.Name
		if name == "" {
			name = "X-API-Key"
		}
		if a.In == "query" {
			q := target.Query()
			q.Set(name, a.Key)
			target.RawQuery = q.Encode()
		} else {
			headers.Set(name, a.Key)
		}
	case AuthCustom:
		if a.Apply != nil {
			a.Apply(headers, target)
		}
	}
	return nil
}

// TokenSource supplies bearer tokens for outbound requests.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource returning a fixed token.
type StaticToken string

// Token returns the fixed token.
func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

const defaultExpiryLeeway = 30 * time.Second

// RefreshingTokenSource caches a token and invokes refresh when it nears
// its JWT expiry. Tokens that do not parse as JWTs are treated as
// non-expiring and cached until the source is reset.
type RefreshingTokenSource struct {
	mu      sync.Mutex
	refresh func(ctx context.Context) (string, error)
	leeway  time.Duration
	current string
	expiry  time.Time
}

// NewRefreshingTokenSource creates a token source backed by a refresh
// function. The token's exp claim is read without signature verification;
// the client is not the token's audience, it only needs the deadline.
func NewRefreshingTokenSource(refresh func(ctx context.Context) (string, error)) *RefreshingTokenSource {
	return &RefreshingTokenSource{refresh: refresh, leeway: defaultExpiryLeeway}
}

// Token returns the cached token, refreshing it when expired or absent.
func (s *RefreshingTokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != "" && (s.expiry.IsZero() || time.Now().Before(s.expiry.Add(-s.leeway))) {
		return s.current, nil
	}
	token, err := s.refresh(ctx)
	if err != nil {
		return "", err
	}
	s.current = token
	s.expiry = jwtExpiry(token)
	return token, nil
}

// Reset drops the cached token so the next Token call refreshes.
func (s *RefreshingTokenSource) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = ""
	s.expiry = time.Time{}
}

// jwtExpiry extracts the exp claim without verifying the signature. A zero
// time means the token carries no usable expiry.
func jwtExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
