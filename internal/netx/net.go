// Package netx has the HTTP plumbing shared by the upload and data clients.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/fileshare/internal/common"
)

// maxErrorBody caps how much of a failed response body is kept.
const maxErrorBody = 64 << 10

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %s", e.Status)
	}
	return fmt.Sprintf("unexpected status %s: %s", e.Status, e.Body)
}

// StatusText is the reason phrase alone ("Forbidden"), falling back to the
// standard text for the code.
func (e *StatusError) StatusText() string {
	if _, reason, ok := strings.Cut(e.Status, " "); ok && reason != "" {
		return reason
	}
	if t := http.StatusText(e.Code); t != "" {
		return t
	}
	return e.Status
}

// IsSuccess reports whether code is 2xx.
func IsSuccess(code int) bool {
	return code >= 200 && code < 300
}

// CheckResponse returns a *StatusError for non-2xx responses, capturing up
// to 64KiB of the body as text.
func CheckResponse(resp *http.Response) error {
	if IsSuccess(resp.StatusCode) {
		return nil
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{Code: resp.StatusCode, Status: resp.Status, Body: string(b)}
}

// NewBearerRequest builds a request carrying "Authorization: Bearer <token>".
func NewBearerRequest(ctx context.Context, method, url, token string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	return req, nil
}

// Drain discards the rest of the body and closes it so the connection can be
// reused.
func Drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	_ = resp.Body.Close()
}
