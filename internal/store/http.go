// internal/store/http.go
// HTTP backend for the dataset store. It fetches documents from a
// static asset origin (CDN or object-storage website endpoint).
package store

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// httpFetcher retrieves documents over HTTP from a base URL.
type httpFetcher struct {
	base string       // Base URL of the data origin, no trailing slash
	hc   *http.Client // HTTP client with custom configuration
}

// NewHTTP creates a store backed by an HTTP data origin.
// It configures appropriate timeouts for origin requests.
// Parameters:
//   - baseURL: Base URL of the data origin
// Returns:
//   - Store: Initialized store client
func NewHTTP(baseURL string) *Client {
	// Configure HTTP transport with connection timeouts
	transport := &http.Transport{
		DialContext: (&net.Dialer{Timeout: 2 * time.Second}).DialContext,
	}

	return newClient(&httpFetcher{
		base: strings.TrimSuffix(baseURL, "/"),
		hc:   &http.Client{Transport: transport, Timeout: 5 * time.Second},
	})
}

func (f *httpFetcher) fetch(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", f.base+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %v", ErrUnavailable, path, err)
	}
	defer resp.Body.Close()

	// Any non-200 response means the document is absent or the origin
	// is degraded. Both collapse into ErrUnavailable.
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fetching %s: %s", ErrUnavailable, path, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrUnavailable, path, err)
	}
	return body, nil
}
