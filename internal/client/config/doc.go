// Package config loads runtime configuration for the fshare CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables prefixed FSHARE_, with a .env file in the working
//     directory filling in anything the real environment leaves unset.
//  3. Optional JSON file (see parseJSON) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-client-id string   application (client) id registered with the provider
//	-authority string   identity provider authority URL
//	-upload string      upload endpoint
//	-download string    download endpoint
//	-data string        data endpoint
//	-backend string     storage backend: http, s3 or minio
//	-db string          SQLite database path
//	-log-level string   debug, info, warn or error
//
// # JSON schema
//
// Durations may be strings like "30s" or integer nanoseconds:
//
//	{
//	  "client_id": "00000000-0000-0000-0000-000000000000",
//	  "authority": "https://login.microsoftonline.com/common",
//	  "scopes": ["openid", "profile", "offline_access", "User.Read"],
//	  "upload_endpoint": "https://files.example.com/upload",
//	  "download_endpoint": "https://files.example.com/download",
//	  "data_endpoint": "https://api.example.com/data",
//	  "request_timeout": "30s",
//	  "history_limit": 100,
//	  "storage": {"backend": "s3", "bucket": "uploads", "region": "eu-west-1"}
//	}
package config
