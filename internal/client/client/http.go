package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/netx"
)

// HTTPObjectClient PUTs objects to the upload endpoint. The object key
// travels in the Asset-Path header; the URL is the same for every object.
type HTTPObjectClient struct {
	endpoint   string
	httpClient *http.Client
}

func NewHTTPObjectClient(endpoint string, httpClient *http.Client) *HTTPObjectClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPObjectClient{endpoint: endpoint, httpClient: httpClient}
}

func (c *HTTPObjectClient) PutObject(ctx context.Context, in PutObjectInput) error {
	body := in.Body
	if in.Size == 0 {
		// An empty *os.File would otherwise go out chunked.
		body = http.NoBody
	}
	req, err := netx.NewBearerRequest(ctx, http.MethodPut, c.endpoint, in.Token, body)
	if err != nil {
		return err
	}
	req.ContentLength = in.Size
	req.Header.Set(common.ContentTypeHeaderName, in.ContentType)
	req.Header.Set(common.AssetPathHeaderName, in.Key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer netx.Drain(resp)

	return netx.CheckResponse(resp)
}
