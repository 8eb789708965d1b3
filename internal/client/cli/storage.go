package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/fileshare/internal/client/client"
	"github.com/dmitrijs2005/fileshare/internal/client/config"
)

// newStorage picks the object client for c.Storage.Backend. Download links
// point at the download endpoint unless the s3 backend presigns them.
func newStorage(ctx context.Context, c *config.Config, httpClient *http.Client) (client.ObjectClient, client.Linker, error) {
	linker := client.NewEndpointLinker(c.DownloadEndpoint)
	s := c.Storage

	switch s.Backend {
	case config.BackendHTTP, "":
		return client.NewHTTPObjectClient(c.UploadEndpoint, httpClient), linker, nil

	case config.BackendS3:
		s3c, err := client.NewS3ObjectClient(ctx, client.S3Options{
			Bucket:    s.Bucket,
			Region:    s.Region,
			Endpoint:  s.Endpoint,
			AccessKey: s.AccessKey,
			SecretKey: s.SecretKey,
		})
		if err != nil {
			return nil, nil, err
		}
		if s.PresignDownloads {
			return s3c, s3c, nil
		}
		return s3c, linker, nil

	case config.BackendMinio:
		mc, err := client.NewMinioObjectClient(client.MinioOptions{
			Endpoint:  s.Endpoint,
			Bucket:    s.Bucket,
			Region:    s.Region,
			AccessKey: s.AccessKey,
			SecretKey: s.SecretKey,
			Transport: httpClient.Transport,
		})
		if err != nil {
			return nil, nil, err
		}
		return mc, linker, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", client.ErrUnknownBackend, s.Backend)
	}
}
