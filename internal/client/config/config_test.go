package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubDataDir(t *testing.T, dir string, err error) {
	t.Helper()
	orig := dataDir
	t.Cleanup(func() { dataDir = orig })
	dataDir = func() (string, error) { return dir, err }
}

func TestLoadDefaults(t *testing.T) {
	stubDataDir(t, "/var/fshare", nil)

	var c Config
	c.LoadDefaults()

	assert.Equal(t, "https://login.microsoftonline.com/common", c.Authority)
	assert.Equal(t, []string{"openid", "profile", "offline_access", "User.Read"}, c.Scopes)
	assert.Equal(t, "https://graph.microsoft.com/v1.0/me", c.ProfileEndpoint)
	assert.Equal(t, filepath.Join("/var/fshare", "fshare.db"), c.DBPath)
	assert.Equal(t, filepath.Join("/var/fshare", "fshare.log"), c.LogFile)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Equal(t, 5*time.Minute, c.SignInTimeout)
	assert.Zero(t, c.HistoryLimit)
	assert.Equal(t, BackendHTTP, c.Storage.Backend)
	assert.NoError(t, c.Validate())
}

func TestLoadDefaults_NoDataDir(t *testing.T) {
	stubDataDir(t, "", errors.New("no home"))

	var c Config
	c.LoadDefaults()
	assert.Equal(t, filepath.Join(".", "fshare.db"), c.DBPath)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	stubDataDir(t, t.TempDir(), nil)
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"fshare"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:8080/upload", cfg.UploadEndpoint)
}

func TestValidate(t *testing.T) {
	stubDataDir(t, t.TempDir(), nil)

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"ok", func(*Config) {}, ""},
		{"relative upload", func(c *Config) { c.UploadEndpoint = "/upload" }, "upload_endpoint"},
		{"negative limit", func(c *Config) { c.HistoryLimit = -1 }, "history_limit"},
		{"bad port", func(c *Config) { c.RedirectPort = 70000 }, "redirect_port"},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "ftp" }, "unknown backend"},
		{"s3 without bucket", func(c *Config) { c.Storage.Backend = BackendS3 }, "storage.bucket"},
		{"minio without endpoint", func(c *Config) { c.Storage.Backend = BackendMinio; c.Storage.Bucket = "b" }, "storage.endpoint"},
		{"minio", func(c *Config) {
			c.Storage.Backend = BackendMinio
			c.Storage.Bucket = "b"
			c.Storage.Endpoint = "127.0.0.1:9000"
		}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)

			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
