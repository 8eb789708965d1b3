package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/fileshare/internal/flagx"
)

var knownFlags = []string{
	"-client-id", "-authority", "-upload", "-download", "-data",
	"-backend", "-db", "-log-level", "-history-limit",
}

// parseFlags populates selected Config fields from command-line flags.
// os.Args is filtered with flagx.FilterArgs first so that -c/-config and
// anything else handled elsewhere does not trip the parser. Panics on
// malformed values.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ClientID, "client-id", cfg.ClientID, "application (client) id")
	fs.StringVar(&cfg.Authority, "authority", cfg.Authority, "identity provider authority url")
	fs.StringVar(&cfg.UploadEndpoint, "upload", cfg.UploadEndpoint, "upload endpoint")
	fs.StringVar(&cfg.DownloadEndpoint, "download", cfg.DownloadEndpoint, "download endpoint")
	fs.StringVar(&cfg.DataEndpoint, "data", cfg.DataEndpoint, "data endpoint")
	fs.StringVar(&cfg.Storage.Backend, "backend", cfg.Storage.Backend, "storage backend: http, s3 or minio")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.IntVar(&cfg.HistoryLimit, "history-limit", cfg.HistoryLimit, "max upload history records, 0 = unbounded")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
