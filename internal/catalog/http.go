package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/oggyb/swipe-discovery/internal/swipe"
)

// HTTPClient resolves metadata from a JSON catalog API laid out as
// GET {base}/{type}s/{id}.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Lookup(ctx context.Context, mediaType swipe.MediaType, mediaID string) (Metadata, error) {
	endpoint := fmt.Sprintf("%s/%ss/%s", c.baseURL, mediaType, url.PathEscape(mediaID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Metadata{}, fmt.Errorf("catalog: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Metadata{}, fmt.Errorf("catalog: request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Metadata{}, ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return Metadata{}, &RateLimitedError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), time.Now())}
	case resp.StatusCode != http.StatusOK:
		return Metadata{}, fmt.Errorf("catalog: unexpected status %d", resp.StatusCode)
	}

	var md Metadata
	if err := json.NewDecoder(resp.Body).Decode(&md); err != nil {
		return Metadata{}, fmt.Errorf("catalog: decode: %w", err)
	}
	if md.MediaType == "" {
		md.MediaType = mediaType
	}
	if md.MediaID == "" {
		md.MediaID = mediaID
	}
	return md, nil
}

// parseRetryAfter accepts delta-seconds or an HTTP date. Zero means the
// header was missing or unusable.
func parseRetryAfter(v string, now time.Time) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil && t.After(now) {
		return t.Sub(now)
	}
	return 0
}
