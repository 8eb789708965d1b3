package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrijs2005/fileshare/internal/netx"
)

// HTTPDataClient fetches the data endpoint with a bearer token.
type HTTPDataClient struct {
	endpoint   string
	httpClient *http.Client
	now        func() time.Time
}

func NewHTTPDataClient(endpoint string, httpClient *http.Client) *HTTPDataClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPDataClient{endpoint: endpoint, httpClient: httpClient, now: time.Now}
}

// Fetch GETs the endpoint with a ts=<epoch-ms> query parameter so that no
// intermediate cache answers. A non-2xx response yields a *netx.StatusError
// carrying the body text.
func (c *HTTPDataClient) Fetch(ctx context.Context, token string) ([]byte, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse data endpoint: %w", err)
	}
	q := u.Query()
	q.Set("ts", strconv.FormatInt(c.now().UnixMilli(), 10))
	u.RawQuery = q.Encode()

	req, err := netx.NewBearerRequest(ctx, http.MethodGet, u.String(), token, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer netx.Drain(resp)

	if err := netx.CheckResponse(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read data response: %w", err)
	}
	return body, nil
}
