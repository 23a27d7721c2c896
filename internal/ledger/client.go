package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/itorK/ilp-kit/internal/config"
)

const accountsNamespace = "/accounts/"

// Client issues authenticated HTTP requests against a single ledger. The
// endpoint is fixed at construction; the internal URI carries server-to-server
// calls while the public URI is the base under which account identifiers are
// exposed to clients.
type Client struct {
	uri       string
	publicURI string
	admin     Credentials
	client    *http.Client
	logger    *slog.Logger
}

// New builds a ledger client from the configured endpoint.
func New(cfg config.Ledger, logger *slog.Logger) *Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     90 * time.Second,
	}
	return &Client{
		uri:       cfg.URI,
		publicURI: cfg.PublicURI,
		admin:     Credentials{Name: cfg.AdminName, Pass: cfg.AdminPass},
		client:    &http.Client{Transport: transport},
		logger:    logger,
	}
}

// Admin returns the configured administrator credentials.
func (c *Client) Admin() Credentials {
	return c.admin
}

// PublicURI returns the ledger's public base URI.
func (c *Client) PublicURI() string {
	return c.publicURI
}

// AccountURI builds the public identifier for a username.
func (c *Client) AccountURI(username string) string {
	return c.publicURI + accountsNamespace + username
}

// Get issues an authenticated GET against the ledger's internal URI and
// decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, creds Credentials, out any) error {
	return c.do(ctx, http.MethodGet, path, creds, nil, out)
}

// Put issues an authenticated PUT with a JSON body and decodes the response
// into out. A 422 response surfaces as ErrAlreadyExists with out untouched.
func (c *Client) Put(ctx context.Context, path string, creds Credentials, body, out any) error {
	return c.do(ctx, http.MethodPut, path, creds, body, out)
}

// GetInfo fetches the ledger metadata document from the base URI.
func (c *Client) GetInfo(ctx context.Context) (Info, error) {
	var info Info
	if err := c.Get(ctx, "/", Credentials{}, &info); err != nil {
		return Info{}, err
	}
	return info, nil
}

func (c *Client) do(ctx context.Context, method, path string, creds Credentials, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode ledger request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.uri+path, reader)
	if err != nil {
		return fmt.Errorf("build ledger request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if creds.Name != "" {
		req.SetBasicAuth(creds.Name, creds.Pass)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("ledger request failed", "method", method, "path", path, "error", err)
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Status: resp.StatusCode, Err: err}
	}

	c.logger.Debug("ledger request", "method", method, "path", path, "status", resp.StatusCode)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil || len(raw) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode ledger response: %w", err)
		}
		return nil
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return ErrAlreadyExists
	default:
		return &TransportError{Status: resp.StatusCode, Body: string(raw)}
	}
}
