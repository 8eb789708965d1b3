package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/minio/minio-go/v7"
	miniocreds "github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/dmitrijs2005/fileshare/internal/netx"
)

type MinioOptions struct {
	// Endpoint is either host:port or a URL whose scheme decides TLS.
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Transport http.RoundTripper
}

// MinioObjectClient writes objects with minio-go.
type MinioObjectClient struct {
	api    *minio.Client
	bucket string
}

func NewMinioObjectClient(o MinioOptions) (*MinioObjectClient, error) {
	host, secure, err := splitEndpoint(o.Endpoint)
	if err != nil {
		return nil, err
	}

	api, err := minio.New(host, &minio.Options{
		Creds:     miniocreds.NewStaticV4(o.AccessKey, o.SecretKey, ""),
		Secure:    secure,
		Region:    o.Region,
		Transport: o.Transport,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	return &MinioObjectClient{api: api, bucket: o.Bucket}, nil
}

func (c *MinioObjectClient) PutObject(ctx context.Context, in PutObjectInput) error {
	_, err := c.api.PutObject(ctx, c.bucket, in.Key, in.Body, in.Size, minio.PutObjectOptions{
		ContentType: in.ContentType,
	})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.StatusCode != 0 {
			body := resp.Message
			if body == "" {
				body = resp.Code
			}
			return &netx.StatusError{
				Code:   resp.StatusCode,
				Status: fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
				Body:   body,
			}
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func splitEndpoint(endpoint string) (host string, secure bool, err error) {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		// bare host:port
		return endpoint, false, nil
	}
	switch u.Scheme {
	case "https":
		return u.Host, true, nil
	case "http":
		return u.Host, false, nil
	default:
		return "", false, fmt.Errorf("unsupported minio endpoint scheme %q", u.Scheme)
	}
}
