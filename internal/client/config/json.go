package config

import (
	"os"

	"github.com/goccy/go-json"

	"github.com/dmitrijs2005/fileshare/internal/flagx"
	"github.com/dmitrijs2005/fileshare/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Only fields
// present in the file (non-zero after decoding) are copied into Config.
type JSONConfig struct {
	Authority        string         `json:"authority"`
	ClientID         string         `json:"client_id"`
	Scopes           []string       `json:"scopes"`
	RedirectPort     int            `json:"redirect_port"`
	ProfileEndpoint  string         `json:"profile_endpoint"`
	UploadEndpoint   string         `json:"upload_endpoint"`
	DownloadEndpoint string         `json:"download_endpoint"`
	DataEndpoint     string         `json:"data_endpoint"`
	DBPath           string         `json:"db_path"`
	LogFile          *string        `json:"log_file"`
	LogLevel         string         `json:"log_level"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
	SignInTimeout    timex.Duration `json:"signin_timeout"`
	HistoryLimit     *int           `json:"history_limit"`
	Storage          struct {
		Backend          string `json:"backend"`
		Bucket           string `json:"bucket"`
		Region           string `json:"region"`
		Endpoint         string `json:"endpoint"`
		AccessKey        string `json:"access_key"`
		SecretKey        string `json:"secret_key"`
		PresignDownloads *bool  `json:"presign_downloads"`
	} `json:"storage"`
}

// parseJSON overlays Config with values loaded from the JSON file named by
// -c or -config. Panics on read or unmarshal errors.
//
// log_file and history_limit are pointers so that "" and 0 can be set
// explicitly (log to stderr, unbounded history).
func parseJSON(cfg *Config) {
	path := flagx.ConfigPath(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}
	jc.apply(cfg)
}

func (jc *JSONConfig) apply(cfg *Config) {
	setString(&cfg.Authority, jc.Authority)
	setString(&cfg.ClientID, jc.ClientID)
	if len(jc.Scopes) > 0 {
		cfg.Scopes = jc.Scopes
	}
	if jc.RedirectPort != 0 {
		cfg.RedirectPort = jc.RedirectPort
	}
	setString(&cfg.ProfileEndpoint, jc.ProfileEndpoint)
	setString(&cfg.UploadEndpoint, jc.UploadEndpoint)
	setString(&cfg.DownloadEndpoint, jc.DownloadEndpoint)
	setString(&cfg.DataEndpoint, jc.DataEndpoint)
	setString(&cfg.DBPath, jc.DBPath)
	if jc.LogFile != nil {
		cfg.LogFile = *jc.LogFile
	}
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SignInTimeout.Duration != 0 {
		cfg.SignInTimeout = jc.SignInTimeout.Duration
	}
	if jc.HistoryLimit != nil {
		cfg.HistoryLimit = *jc.HistoryLimit
	}

	setString(&cfg.Storage.Backend, jc.Storage.Backend)
	setString(&cfg.Storage.Bucket, jc.Storage.Bucket)
	setString(&cfg.Storage.Region, jc.Storage.Region)
	setString(&cfg.Storage.Endpoint, jc.Storage.Endpoint)
	setString(&cfg.Storage.AccessKey, jc.Storage.AccessKey)
	setString(&cfg.Storage.SecretKey, jc.Storage.SecretKey)
	if jc.Storage.PresignDownloads != nil {
		cfg.Storage.PresignDownloads = *jc.Storage.PresignDownloads
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
