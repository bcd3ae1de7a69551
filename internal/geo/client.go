// Package geo resolves network addresses to approximate locations using an
// ip-api.com style JSON endpoint. Lookups are strictly best-effort: callers
// treat any error as "location unknown".
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/campushub/campushub/internal/domain"
)

const lookupTimeout = 2 * time.Second

// Client implements domain.GeoResolver against an HTTP lookup service.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a geolocation client for the given endpoint, e.g.
// "http://ip-api.com/json". The per-lookup timeout is fixed so a slow
// upstream can never hold up a login.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: lookupTimeout},
	}
}

// Resolve looks up the approximate location of an IP address. Private and
// loopback addresses short-circuit to (nil, nil) since no public lookup can
// answer for them.
func (c *Client) Resolve(ctx context.Context, ip string) (*domain.Location, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return nil, fmt.Errorf("not an IP address: %q", ip)
	}
	if parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsUnspecified() {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/"+ip, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", ip, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lookup %s: status %d", ip, resp.StatusCode)
	}

	var body struct {
		Status     string `json:"status"`
		City       string `json:"city"`
		RegionName string `json:"regionName"`
		Country    string `json:"country"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if body.Status != "success" {
		return nil, fmt.Errorf("lookup %s: upstream status %q", ip, body.Status)
	}

	return &domain.Location{
		City:    body.City,
		Region:  body.RegionName,
		Country: body.Country,
	}, nil
}
