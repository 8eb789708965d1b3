package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "FSHARE_"

// parseEnv overlays Config with FSHARE_* variables. Values from the real
// environment win over values from dotenvPath; a missing file is ignored.
// Malformed numbers and durations panic, like the other loaders.
func parseEnv(cfg *Config, dotenvPath string) {
	file, err := godotenv.Read(dotenvPath)
	if err != nil {
		if !os.IsNotExist(err) {
			panic(err)
		}
		file = map[string]string{}
	}

	lookup := func(name string) (string, bool) {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			return v, true
		}
		v, ok := file[envPrefix+name]
		return v, ok
	}

	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}
	num := func(name string, dst *int) {
		if v, ok := lookup(name); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				panic(err)
			}
			*dst = n
		}
	}
	dur := func(name string, dst *time.Duration) {
		if v, ok := lookup(name); ok {
			d, err := time.ParseDuration(strings.TrimSpace(v))
			if err != nil {
				panic(err)
			}
			*dst = d
		}
	}

	str("AUTHORITY", &cfg.Authority)
	str("CLIENT_ID", &cfg.ClientID)
	if v, ok := lookup("SCOPES"); ok {
		cfg.Scopes = splitList(v)
	}
	num("REDIRECT_PORT", &cfg.RedirectPort)
	str("PROFILE_ENDPOINT", &cfg.ProfileEndpoint)
	str("UPLOAD_ENDPOINT", &cfg.UploadEndpoint)
	str("DOWNLOAD_ENDPOINT", &cfg.DownloadEndpoint)
	str("DATA_ENDPOINT", &cfg.DataEndpoint)
	str("DB_PATH", &cfg.DBPath)
	str("LOG_FILE", &cfg.LogFile)
	str("LOG_LEVEL", &cfg.LogLevel)
	dur("REQUEST_TIMEOUT", &cfg.RequestTimeout)
	dur("SIGNIN_TIMEOUT", &cfg.SignInTimeout)
	num("HISTORY_LIMIT", &cfg.HistoryLimit)

	str("STORAGE_BACKEND", &cfg.Storage.Backend)
	str("S3_BUCKET", &cfg.Storage.Bucket)
	str("S3_REGION", &cfg.Storage.Region)
	str("S3_ENDPOINT", &cfg.Storage.Endpoint)
	str("S3_ACCESS_KEY", &cfg.Storage.AccessKey)
	str("S3_SECRET_KEY", &cfg.Storage.SecretKey)
	if v, ok := lookup("S3_PRESIGN_DOWNLOADS"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			panic(err)
		}
		cfg.Storage.PresignDownloads = b
	}
}

// splitList splits on commas and whitespace.
func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}
