package cli

import (
	"context"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fileshare/internal/client/client"
	"github.com/dmitrijs2005/fileshare/internal/client/config"
)

func baseConfig() *config.Config {
	return &config.Config{
		UploadEndpoint:   "http://127.0.0.1:8080/upload",
		DownloadEndpoint: "http://127.0.0.1:8080/download",
		Storage:          config.StorageConfig{Region: "us-east-1", Bucket: "uploads", AccessKey: "a", SecretKey: "s"},
	}
}

func TestNewStorage_Backends(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", "/nonexistent")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/nonexistent")
	t.Setenv("AWS_CA_BUNDLE", "")
	ctx := context.Background()

	t.Run("http", func(t *testing.T) {
		c := baseConfig()
		c.Storage.Backend = config.BackendHTTP
		obj, link, err := newStorage(ctx, c, http.DefaultClient)
		require.NoError(t, err)
		assert.IsType(t, &client.HTTPObjectClient{}, obj)
		assert.IsType(t, &client.EndpointLinker{}, link)
	})

	t.Run("s3", func(t *testing.T) {
		c := baseConfig()
		c.Storage.Backend = config.BackendS3
		c.Storage.Endpoint = "http://127.0.0.1:9000"
		obj, link, err := newStorage(ctx, c, http.DefaultClient)
		require.NoError(t, err)
		assert.IsType(t, &client.S3ObjectClient{}, obj)
		assert.IsType(t, &client.EndpointLinker{}, link)
	})

	t.Run("s3 with ca bundle", func(t *testing.T) {
		tlsSrv := httptest.NewTLSServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		defer tlsSrv.Close()
		bundle := filepath.Join(t.TempDir(), "ca.pem")
		pemBytes := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: tlsSrv.Certificate().Raw})
		require.NoError(t, os.WriteFile(bundle, pemBytes, 0o600))
		t.Setenv("AWS_CA_BUNDLE", bundle)

		c := baseConfig()
		c.Storage.Backend = config.BackendS3
		c.Storage.Endpoint = "http://127.0.0.1:9000"
		obj, _, err := newStorage(ctx, c, &http.Client{})
		require.NoError(t, err)
		assert.IsType(t, &client.S3ObjectClient{}, obj)
	})

	t.Run("s3 presigned", func(t *testing.T) {
		c := baseConfig()
		c.Storage.Backend = config.BackendS3
		c.Storage.PresignDownloads = true
		obj, link, err := newStorage(ctx, c, http.DefaultClient)
		require.NoError(t, err)
		assert.Same(t, obj, link)
	})

	t.Run("minio", func(t *testing.T) {
		c := baseConfig()
		c.Storage.Backend = config.BackendMinio
		c.Storage.Endpoint = "127.0.0.1:9000"
		obj, _, err := newStorage(ctx, c, http.DefaultClient)
		require.NoError(t, err)
		assert.IsType(t, &client.MinioObjectClient{}, obj)
	})

	t.Run("unknown", func(t *testing.T) {
		c := baseConfig()
		c.Storage.Backend = "ftp"
		_, _, err := newStorage(ctx, c, http.DefaultClient)
		assert.ErrorIs(t, err, client.ErrUnknownBackend)
	})
}
