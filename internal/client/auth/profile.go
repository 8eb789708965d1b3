package auth

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/dmitrijs2005/fileshare/internal/client/models"
	"github.com/dmitrijs2005/fileshare/internal/netx"
)

func (o *OIDC) UserDetails(ctx context.Context) (*models.Profile, error) {
	if _, _, err := o.oauthConfig(); err != nil {
		return nil, err
	}
	s, err := loadSession(ctx, o.store)
	if err != nil || s == nil {
		return nil, err
	}

	req, err := netx.NewBearerRequest(ctx, http.MethodGet, o.cfg.ProfileEndpoint, s.AccessToken, nil)
	if err != nil {
		return nil, err
	}
	resp, err := o.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	defer netx.Drain(resp)

	if err := netx.CheckResponse(resp); err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return parseProfile(body)
}

// parseProfile reads a Microsoft Graph /me document, falling back to the
// standard OIDC userinfo claim names.
func parseProfile(body []byte) (*models.Profile, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("profile response is not valid json")
	}
	r := gjson.ParseBytes(body)

	first := func(paths ...string) string {
		for _, p := range paths {
			if v := r.Get(p); v.Exists() && v.String() != "" {
				return v.String()
			}
		}
		return ""
	}

	return &models.Profile{
		ID:                first("id", "sub"),
		DisplayName:       first("displayName"),
		Name:              first("name"),
		Mail:              first("mail", "email"),
		UserPrincipalName: first("userPrincipalName", "preferred_username"),
	}, nil
}
