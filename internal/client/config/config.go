package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/fileshare/internal/filex"
)

// Storage backends.
const (
	BackendHTTP  = "http"
	BackendS3    = "s3"
	BackendMinio = "minio"
)

// StorageConfig selects where uploaded objects go.
type StorageConfig struct {
	Backend   string
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	// PresignDownloads makes the s3 backend hand out presigned GET links
	// instead of download-endpoint links.
	PresignDownloads bool
}

// Config holds runtime settings for the fshare CLI.
type Config struct {
	Authority       string
	ClientID        string
	Scopes          []string
	RedirectPort    int
	ProfileEndpoint string

	UploadEndpoint   string
	DownloadEndpoint string
	DataEndpoint     string

	DBPath   string
	LogFile  string
	LogLevel string

	RequestTimeout time.Duration
	SignInTimeout  time.Duration
	// HistoryLimit caps the upload history; 0 keeps everything.
	HistoryLimit int

	Storage StorageConfig
}

// dataDir is a seam for tests.
var dataDir = filex.DataDir

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	dir, err := dataDir()
	if err != nil {
		dir = "."
	}

	c.Authority = "https://login.microsoftonline.com/common"
	c.Scopes = []string{"openid", "profile", "offline_access", "User.Read"}
	c.ProfileEndpoint = "https://graph.microsoft.com/v1.0/me"
	c.UploadEndpoint = "http://127.0.0.1:8080/upload"
	c.DownloadEndpoint = "http://127.0.0.1:8080/download"
	c.DataEndpoint = "http://127.0.0.1:8080/data"
	c.DBPath = filepath.Join(dir, "fshare.db")
	c.LogFile = filepath.Join(dir, "fshare.log")
	c.LogLevel = "info"
	c.RequestTimeout = 30 * time.Second
	c.SignInTimeout = 5 * time.Minute
	c.Storage = StorageConfig{Backend: BackendHTTP, Region: "us-east-1"}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, ".env")
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate reports settings that make the client unusable. A missing client
// id is not an error here; the authenticator refuses to start without one.
func (c *Config) Validate() error {
	var errs []error

	for name, v := range map[string]string{
		"authority":         c.Authority,
		"upload_endpoint":   c.UploadEndpoint,
		"download_endpoint": c.DownloadEndpoint,
		"data_endpoint":     c.DataEndpoint,
	} {
		if u, err := url.Parse(v); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s: %q is not an absolute url", name, v))
		}
	}
	if c.HistoryLimit < 0 {
		errs = append(errs, fmt.Errorf("history_limit: must not be negative, got %d", c.HistoryLimit))
	}
	if c.RedirectPort < 0 || c.RedirectPort > 65535 {
		errs = append(errs, fmt.Errorf("redirect_port: %d out of range", c.RedirectPort))
	}

	switch c.Storage.Backend {
	case BackendHTTP:
	case BackendS3, BackendMinio:
		if c.Storage.Bucket == "" {
			errs = append(errs, fmt.Errorf("storage.bucket: required for backend %q", c.Storage.Backend))
		}
		if c.Storage.Backend == BackendMinio && c.Storage.Endpoint == "" {
			errs = append(errs, errors.New("storage.endpoint: required for backend \"minio\""))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.backend: unknown backend %q", c.Storage.Backend))
	}

	return errors.Join(errs...)
}
