// Package catalog fetches the list of image identifiers from the remote
// LGTM catalog service.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxBodySize bounds the response body read. The catalog is a short JSON
// list; anything larger is broken upstream.
const maxBodySize = 4 << 20

// StatusError reports a non-2xx catalog response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog: http %d", e.Code)
}

// Client fetches identifiers from the catalog service.
type Client struct {
	origin  string
	apiPath string
	hc      *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client. The default client imposes no
// timeout beyond transport defaults.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// New creates a Client for the given service origin and API path.
func New(origin, apiPath string, opts ...Option) *Client {
	c := &Client{
		origin:  origin,
		apiPath: apiPath,
		hc:      &http.Client{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type idsResponse struct {
	IDs []string `json:"ids"`
}

// FetchIDs performs one GET against {origin}{apiPath} and returns the
// identifier sequence. A non-2xx response yields a *StatusError carrying the
// numeric code. Transport failures are returned unchanged so callers see the
// underlying error. The returned slice may be empty; callers must not assume
// otherwise.
func (c *Client) FetchIDs(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.origin+c.apiPath, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("catalog: read body: %w", err)
	}

	var out idsResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("catalog: json decode: %w", err)
	}
	return out.IDs, nil
}
