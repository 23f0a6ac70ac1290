// Package directory wraps the campus directory REST API. Registration uses
// it to confirm a NetID belongs to a real student before creating an account.
package directory

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"pathmatch-workers/internal/common/config"
	commonhttp "pathmatch-workers/internal/common/http"
)

// ErrNotFound reports a NetID the directory does not know.
var ErrNotFound = errors.New("person not found in directory")

// Person is the subset of directory attributes the platform needs.
type Person struct {
	NetID       string `json:"netId"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Affiliation string `json:"affiliation"`
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *commonhttp.Client
}

func NewClient(cfg config.DirectoryConfig) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Millisecond
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: commonhttp.NewClient(timeout),
	}
}

// Lookup fetches the directory record for a NetID. Returns ErrNotFound when
// the directory answers 404.
func (c *Client) Lookup(ctx context.Context, netID string) (*Person, error) {
	endpoint := fmt.Sprintf("%s/people/%s", c.baseURL, url.PathEscape(netID))

	var person Person
	err := c.httpClient.GetJSON(ctx, endpoint, c.headers(), &person)
	if err != nil {
		var statusErr *commonhttp.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == 404 {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("directory lookup failed: %w", err)
	}

	return &person, nil
}

// Verify reports whether a NetID exists in the directory.
func (c *Client) Verify(ctx context.Context, netID string) (bool, error) {
	_, err := c.Lookup(ctx, netID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c *Client) headers() map[string]string {
	h := map[string]string{"Accept": "application/json"}
	if c.apiKey != "" {
		h["X-API-Key"] = c.apiKey
	}
	return h
}
