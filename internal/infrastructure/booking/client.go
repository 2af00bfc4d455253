package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/example/slotwatch/internal/domain/availability"
)

const (
	userAgent      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/139.0.0.0 Safari/537.36"
	acceptLanguage = "en-US,en;q=0.9,zh-CN;q=0.8,zh;q=0.7"
)

// Client holds the HTTP plumbing shared by both booking API variants.
type Client struct {
	hc       *http.Client
	endpoint string
	origin   string
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		hc:       &http.Client{Timeout: timeout},
		endpoint: endpoint,
		origin:   originOf(endpoint),
	}
}

// do sends one request and returns the body of a 200 response.
func (c *Client) do(ctx context.Context, loc availability.Location, method, contentType string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &availability.FetchError{Kind: availability.FetchTransport, LocationID: loc.ID, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", acceptLanguage)
	if c.origin != "" {
		req.Header.Set("Origin", c.origin)
		req.Header.Set("Referer", c.origin+"/")
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, &availability.FetchError{Kind: availability.FetchTransport, LocationID: loc.ID, Err: err}
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &availability.FetchError{Kind: availability.FetchTransport, LocationID: loc.ID, Err: err}
	}
	if res.StatusCode != http.StatusOK {
		return nil, &availability.FetchError{Kind: availability.FetchHTTPStatus, LocationID: loc.ID, StatusCode: res.StatusCode}
	}
	return b, nil
}

func invalidBody(loc availability.Location, err error) error {
	return &availability.FetchError{Kind: availability.FetchInvalidBody, LocationID: loc.ID, Err: err}
}

// locationID accepts the location as either a JSON number or string.
type locationID string

func (l *locationID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*l = locationID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		// null or an unexpected shape; treated as not reported
		*l = ""
		return nil
	}
	*l = locationID(n.String())
	return nil
}

func originOf(endpoint string) string {
	i := strings.Index(endpoint, "://")
	if i < 0 {
		return ""
	}
	rest := endpoint[i+3:]
	if j := strings.IndexByte(rest, '/'); j >= 0 {
		rest = rest[:j]
	}
	return endpoint[:i+3] + rest
}
