package client

import "errors"

var (
	ErrUnavailable    = errors.New("server unavailable")
	ErrUnknownBackend = errors.New("unknown storage backend")
)
