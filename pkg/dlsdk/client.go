// Package dlsdk is a small client for a running gateway's release lookup API.
package dlsdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/airenamify/dlgate/pkg/dlsdk/dlerr"
)

// Release mirrors the gateway's latest-release response.
type Release struct {
	Platform string `json:"platform"`
	Arch     string `json:"arch,omitempty"`
	Key      string `json:"key"`
	URL      string `json:"url"`
	Source   string `json:"source"`
}

// problem is the subset of an RFC 9457 error body the client reads.
type problem struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Client queries a gateway.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a client for cfg.BaseURL.
func NewClient(cfg *Config) *Client {
	return &Client{
		BaseURL:    cfg.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Latest asks the gateway which installer it would serve for osName/arch.
func (c *Client) Latest(ctx context.Context, osName, arch string) (*Release, error) {
	q := url.Values{}
	q.Set("os", osName)
	if arch != "" {
		q.Set("arch", arch)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/releases/latest?"+q.Encode(), nil)
	if err != nil {
		return nil, dlerr.New(dlerr.CodeUnknown, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, dlerr.New(dlerr.CodeUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, dlerr.New(dlerr.CodeUnknown, err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := resp.Status
		var p problem
		if json.Unmarshal(body, &p) == nil && p.Detail != "" {
			msg = p.Detail
		}
		return nil, dlerr.New(dlerr.FromStatus(resp.StatusCode), errors.New(msg))
	}

	var rel Release
	if err := json.Unmarshal(body, &rel); err != nil {
		return nil, dlerr.New(dlerr.CodeUnknown, fmt.Errorf("decoding response: %w", err))
	}
	return &rel, nil
}
