package client

import (
	"context"
	"io"
	"net/url"
)

// PutObjectInput is one object write.
type PutObjectInput struct {
	// Key is the object key, sent as Asset-Path on the HTTP backend.
	Key string
	// ContentType of Body; never empty.
	ContentType string
	Body        io.Reader
	// Size of Body in bytes.
	Size int64
	// Token is the bearer token. Bucket backends authenticate with their own
	// credentials and ignore it.
	Token string
}

// ObjectClient writes objects to remote storage.
type ObjectClient interface {
	PutObject(ctx context.Context, in PutObjectInput) error
}

// Linker builds the link users follow to download an object.
type Linker interface {
	DownloadURL(ctx context.Context, key string) (string, error)
}

// EndpointLinker joins the download endpoint with the object key.
type EndpointLinker struct {
	base string
}

func NewEndpointLinker(base string) *EndpointLinker {
	return &EndpointLinker{base: base}
}

func (l *EndpointLinker) DownloadURL(_ context.Context, key string) (string, error) {
	return url.JoinPath(l.base, key)
}
