package cmd

import (
	"github.com/lepinkainen/tmdbkit/internal/config"
	apperrors "github.com/lepinkainen/tmdbkit/internal/errors"
	"github.com/lepinkainen/tmdbkit/tmdb"
)

// LoginCmd represents the login command
type LoginCmd struct {
	Username string `short:"u" help:"TMDB username" env:"TMDB_USERNAME"`
	Password string `help:"TMDB password" env:"TMDB_PASSWORD"`
	Guest    bool   `help:"Open a guest session instead"`
	Token    string `help:"Request token approved in the browser"`
}

type sessionOutput struct {
	SessionID   string `json:"session_id" yaml:"session_id"`
	Guest       bool   `json:"guest" yaml:"guest"`
	ApprovalURL string `json:"approval_url,omitempty" yaml:"approval_url,omitempty"`
}

func (l *LoginCmd) Run(a *app) error {
	if err := requireCredentials(); err != nil {
		return err
	}

	var (
		out sessionOutput
		err error
	)
	switch {
	case l.Guest:
		out.Guest = true
		out.SessionID, err = a.client.GetSession(a.ctx, "")
	case l.Token != "":
		out.SessionID, err = a.client.GetSession(a.ctx, l.Token)
	case l.Username != "":
		if l.Password == "" {
			return apperrors.NewConfigError("password", "set --password or TMDB_PASSWORD")
		}
		out.SessionID, err = a.client.Login(a.ctx, l.Username, l.Password)
	default:
		// browser flow: print the approval link for a fresh token
		token, tokenErr := a.client.NewRequestToken(a.ctx)
		if tokenErr != nil {
			return tokenErr
		}
		out.ApprovalURL = tmdb.ApprovalURL(token)
		a.logger.Info("Approve the token in a browser, then run login --token", "token", token)
	}
	if err != nil {
		return err
	}

	t := &table{header: []string{"FIELD", "VALUE"}}
	if out.SessionID != "" {
		t.add("Session", out.SessionID)
		t.add("Guest", out.Guest)
	}
	if out.ApprovalURL != "" {
		t.add("Approve at", out.ApprovalURL)
	}
	return a.out.Print(out, t)
}

// TokenCmd represents the token command
type TokenCmd struct {
	Token string `arg:"" optional:"" help:"Access token (defaults to the configured one)"`
}

type tokenOutput struct {
	APIKey    string   `json:"api_key" yaml:"api_key"`
	AccountID string   `json:"account_id" yaml:"account_id"`
	Scopes    []string `json:"scopes" yaml:"scopes"`
	Version   int      `json:"version" yaml:"version"`
	NotBefore string   `json:"not_before,omitempty" yaml:"not_before,omitempty"`
}

func (c *TokenCmd) Run(a *app) error {
	token := c.Token
	if token == "" {
		token = config.AccessToken
	}
	if token == "" {
		return apperrors.NewConfigError("tmdb.access_token", "pass a token or set TMDB_ACCESS_TOKEN")
	}

	info, err := tmdb.ParseAccessToken(token)
	if err != nil {
		return err
	}

	out := tokenOutput{
		APIKey:    info.APIKey,
		AccountID: info.AccountID,
		Scopes:    info.Scopes,
		Version:   info.Version,
	}
	if !info.NotBefore.IsZero() {
		out.NotBefore = info.NotBefore.UTC().Format("2006-01-02T15:04:05Z")
	}

	t := &table{header: []string{"FIELD", "VALUE"}}
	t.add("API key", out.APIKey)
	t.add("Account", out.AccountID)
	t.add("Scopes", out.Scopes)
	t.add("Version", out.Version)
	return a.out.Print(out, t)
}
