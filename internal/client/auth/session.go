package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/fileshare/internal/client/models"
	"github.com/dmitrijs2005/fileshare/internal/client/repositories/localstorage"
	"github.com/dmitrijs2005/fileshare/internal/common"
)

// SessionKey is the local storage slot holding the session.
const SessionKey = "fshare.session"

type session struct {
	IDToken      string         `json:"idToken"`
	AccessToken  string         `json:"accessToken"`
	RefreshToken string         `json:"refreshToken,omitempty"`
	Expiry       time.Time      `json:"expiry"`
	Account      models.Account `json:"account"`
}

func loadSession(ctx context.Context, store localstorage.Repository) (*session, error) {
	raw, ok, err := store.GetItem(ctx, SessionKey)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var s session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

func saveSession(ctx context.Context, store localstorage.Repository, s *session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return store.SetItem(ctx, SessionKey, string(b))
}

// parseClaims decodes the payload of an ID token without checking the
// signature. The token came straight from the provider's token endpoint.
func parseClaims(idToken string) (models.Claims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	return models.Claims(claims), nil
}

func accountFromClaims(c models.Claims) models.Account {
	username := c.String("preferred_username")
	if username == "" {
		username = c.String("email")
	}
	if username == "" {
		username = c.String("upn")
	}

	id := c.String("oid")
	if id == "" {
		id = c.String("sub")
	}
	tid := c.String("tid")
	if tid != "" && id != "" {
		id = id + "." + tid
	}

	return models.Account{
		Username:      username,
		Name:          c.String("name"),
		HomeAccountID: id,
		TenantID:      tid,
	}
}

// expired reports whether the exp claim lies in the past. Tokens without
// exp never expire.
func expired(c models.Claims, now time.Time) bool {
	exp, err := jwt.MapClaims(c).GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}
