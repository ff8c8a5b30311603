package tmdb

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const approvalURL = "https://www.themoviedb.org/authenticate/%s"

// NewRequestToken requests a short-lived request token.
func (c *Client) NewRequestToken(ctx context.Context) (string, error) {
	res, err := get[AuthenticationResult](ctx, c, NewCommand("authentication/token/new"))
	if err != nil {
		return "", err
	}
	return res.RequestToken, nil
}

// ValidateWithLogin approves a request token with account credentials.
func (c *Client) ValidateWithLogin(ctx context.Context, token, username, password string) (string, error) {
	if token == "" || username == "" {
		return "", ErrInvalidArgument
	}
	cmd := NewCommand("authentication/token/validate_with_login").
		With("request_token", token).
		With("username", username).
		With("password", password)
	res, err := get[AuthenticationResult](ctx, c, cmd)
	if err != nil {
		return "", err
	}
	return res.RequestToken, nil
}

// NewSession exchanges an approved request token for a session id.
func (c *Client) NewSession(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidArgument
	}
	res, err := get[AuthenticationResult](ctx, c, NewCommand("authentication/session/new").With("request_token", token))
	if err != nil {
		return "", err
	}
	return res.SessionID, nil
}

// NewGuestSession opens a guest session.
func (c *Client) NewGuestSession(ctx context.Context) (string, error) {
	res, err := get[AuthenticationResult](ctx, c, NewCommand("authentication/guest_session/new"))
	if err != nil {
		return "", err
	}
	return res.GuestSessionID, nil
}

// Login runs the credential flow: a new request token is validated with
// the username and password and then exchanged for a session id.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	token, err := c.NewRequestToken(ctx)
	if err != nil {
		return "", fmt.Errorf("request token: %w", err)
	}
	validated, err := c.ValidateWithLogin(ctx, token, username, password)
	if err != nil {
		return "", fmt.Errorf("validate token: %w", err)
	}
	session, err := c.NewSession(ctx, validated)
	if err != nil {
		return "", fmt.Errorf("open session: %w", err)
	}
	return session, nil
}

// GetSession exchanges a request token the user approved at ApprovalURL for
// a session id. An empty token opens a guest session instead.
func (c *Client) GetSession(ctx context.Context, token string) (string, error) {
	if token == "" {
		return c.NewGuestSession(ctx)
	}
	return c.NewSession(ctx, token)
}

// ApprovalURL returns the page where a user approves a request token.
func ApprovalURL(token string) string {
	return fmt.Sprintf(approvalURL, escape(token))
}

// AccessTokenInfo describes a v4 read access token.
type AccessTokenInfo struct {
	// APIKey is the v3 API key the token was issued for.
	APIKey    string
	AccountID string
	Scopes    []string
	Version   int
	NotBefore time.Time
}

type accessTokenClaims struct {
	Scopes  []string `json:"scopes"`
	Version int      `json:"version"`
	jwt.RegisteredClaims
}

// ParseAccessToken reads the claims of a v4 read access token. The
// signature is not verified; only the service can do that.
func ParseAccessToken(token string) (*AccessTokenInfo, error) {
	claims := &accessTokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: access token: %w", ErrInvalidArgument, err)
	}

	info := &AccessTokenInfo{
		AccountID: claims.Subject,
		Scopes:    claims.Scopes,
		Version:   claims.Version,
	}
	if len(claims.Audience) > 0 {
		info.APIKey = claims.Audience[0]
	}
	if claims.NotBefore != nil {
		info.NotBefore = claims.NotBefore.Time
	}
	return info, nil
}
