package steemconnect

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/ulogs/wallet-backend/internal/domain"
)

// Config holds the pass-through settings of the signing service
type Config struct {
	App         string // Client ID registered with the signing service
	BaseURL     string // e.g. https://steemconnect.com
	CallbackURL string // Login callback registered for App

	// SignRedirectURL, when set, is sent as redirect_uri on sign URLs.
	// Empty leaves the user on the signing service after signing.
	SignRedirectURL string
}

// Client builds hot-signing URLs for the SteemConnect service.
// It implements domain.ActionDispatcher without any network call: the
// returned URL is opened by the user to sign out of band.
type Client struct {
	cfg  Config
	base *url.URL
}

// NewClient creates a new Client, validating the configured base URL
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("signing service base URL cannot be empty")
	}

	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid signing service base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("signing service base URL must be absolute: %s", cfg.BaseURL)
	}

	return &Client{cfg: cfg, base: base}, nil
}

// SignURL returns {base}/sign/{action}?{params}[&redirect_uri={SignRedirectURL}].
// Parameters are emitted in key order and encoded like encodeURIComponent,
// so a space in a memo becomes %20.
func (c *Client) SignURL(action domain.ActionName, params map[string]string) (string, error) {
	if action == "" {
		return "", errors.New("action name cannot be empty")
	}

	u := *c.base
	u.Path = u.Path + "/sign/" + url.PathEscape(string(action))

	query := make(map[string]string, len(params)+1)
	for key, value := range params {
		query[key] = value
	}
	if c.cfg.SignRedirectURL != "" {
		query["redirect_uri"] = c.cfg.SignRedirectURL
	}
	u.RawQuery = encodeQuery(query)

	return u.String(), nil
}

// componentUnescaper undoes the escapes QueryEscape applies to characters
// that encodeURIComponent leaves as they are
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

func encodeQuery(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, encodeComponent(key)+"="+encodeComponent(params[key]))
	}
	return strings.Join(parts, "&")
}

// Dispatch implements domain.ActionDispatcher
func (c *Client) Dispatch(_ context.Context, intent *domain.TransferIntent) (string, error) {
	if intent == nil {
		return "", errors.New("intent cannot be nil")
	}
	return c.SignURL(intent.ActionName, intent.Parameters)
}

// App returns the configured client ID
func (c *Client) App() string {
	return c.cfg.App
}

// CallbackURL returns the login callback registered for App
func (c *Client) CallbackURL() string {
	return c.cfg.CallbackURL
}
