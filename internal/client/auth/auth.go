package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/fileshare/internal/client/models"
)

// Authenticator is the auth surface the rest of the client sees.
type Authenticator interface {
	// Initialize validates configuration and settles the provider endpoints.
	// Every other method returns common.ErrNotInitialized until it succeeds.
	Initialize(ctx context.Context) error

	// Account returns the cached account, or nil when nobody is signed in.
	Account(ctx context.Context) (*models.Account, error)

	// SignIn runs the interactive flow and publishes LoginSucceeded.
	SignIn(ctx context.Context) error

	// SignOut wipes the cached session.
	SignOut(ctx context.Context) error

	// IDToken returns the cached ID token, or "" when absent or expired.
	IDToken(ctx context.Context) (string, error)

	// IDTokenClaims returns the decoded ID token payload, or nil.
	IDTokenClaims(ctx context.Context) (models.Claims, error)

	// UserDetails fetches the signed-in user's profile, or nil when nobody
	// is signed in.
	UserDetails(ctx context.Context) (*models.Profile, error)
}

type Config struct {
	ClientID  string
	Authority string
	Scopes    []string
	// RedirectPort is the loopback port; 0 picks a free one.
	RedirectPort    int
	ProfileEndpoint string
	SignInTimeout   time.Duration
	HTTPClient      *http.Client
	// OnAuthURL, if set, is told the authorization URL before the browser
	// is opened.
	OnAuthURL func(authURL string)
}
