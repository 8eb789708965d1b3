package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/fileshare/internal/netx"
)

// Metadata is the subset of the OpenID discovery document the client uses.
type Metadata struct {
	Issuer                string `json:"issuer"`
	AuthorizationEndpoint string `json:"authorization_endpoint"`
	TokenEndpoint         string `json:"token_endpoint"`
	EndSessionEndpoint    string `json:"end_session_endpoint"`
	UserInfoEndpoint      string `json:"userinfo_endpoint"`
}

// DiscoveryURL is the version-pinned discovery document for authority.
func DiscoveryURL(authority string) string {
	return strings.TrimRight(authority, "/") + "/v2.0/.well-known/openid-configuration"
}

// FallbackMetadata derives v2.0 endpoints from the authority URL.
func FallbackMetadata(authority string) *Metadata {
	base := strings.TrimRight(authority, "/")
	return &Metadata{
		AuthorizationEndpoint: base + "/oauth2/v2.0/authorize",
		TokenEndpoint:         base + "/oauth2/v2.0/token",
		EndSessionEndpoint:    base + "/oauth2/v2.0/logout",
	}
}

// MetadataLoader fetches the discovery document at most once at a time.
// Concurrent callers share the pending load; a success is kept for the life
// of the loader, a failure is not.
type MetadataLoader struct {
	url        string
	httpClient *http.Client

	group singleflight.Group

	mu sync.RWMutex
	md *Metadata
}

func NewMetadataLoader(discoveryURL string, httpClient *http.Client) *MetadataLoader {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &MetadataLoader{url: discoveryURL, httpClient: httpClient}
}

// Load returns the memoized document or fetches it.
func (l *MetadataLoader) Load(ctx context.Context) (*Metadata, error) {
	if md := l.Loaded(); md != nil {
		return md, nil
	}

	v, err, _ := l.group.Do("metadata", func() (any, error) {
		if md := l.Loaded(); md != nil {
			return md, nil
		}
		md, err := l.fetch(ctx)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.md = md
		l.mu.Unlock()
		return md, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Metadata), nil
}

// Loaded returns the memoized document, or nil.
func (l *MetadataLoader) Loaded() *Metadata {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.md
}

func (l *MetadataLoader) fetch(ctx context.Context) (*Metadata, error) {
	if _, err := url.ParseRequestURI(l.url); err != nil {
		return nil, fmt.Errorf("load openid configuration: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("load openid configuration: %w", err)
	}
	defer netx.Drain(resp)

	if err := netx.CheckResponse(resp); err != nil {
		return nil, fmt.Errorf("load openid configuration: %w", err)
	}

	var md Metadata
	if err := json.NewDecoder(resp.Body).Decode(&md); err != nil {
		return nil, fmt.Errorf("decode openid configuration: %w", err)
	}
	if md.AuthorizationEndpoint == "" || md.TokenEndpoint == "" {
		return nil, fmt.Errorf("openid configuration at %s lacks authorization or token endpoint", l.url)
	}
	return &md, nil
}
