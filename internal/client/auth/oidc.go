package auth

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/skratchdot/open-golang/open"
	"golang.org/x/oauth2"

	"github.com/dmitrijs2005/fileshare/internal/client/events"
	"github.com/dmitrijs2005/fileshare/internal/client/models"
	"github.com/dmitrijs2005/fileshare/internal/client/repositories/localstorage"
	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/logging"
)

// openBrowser is a seam for tests.
var openBrowser = open.Run

const callbackPath = "/callback"

// OIDC is the Authenticator backed by an OpenID Connect provider.
type OIDC struct {
	cfg    Config
	store  localstorage.Repository
	loader *MetadataLoader
	logins *events.Dispatcher[events.LoginSucceeded]
	logger logging.Logger
	now    func() time.Time

	mu       sync.RWMutex
	oauth    *oauth2.Config
	metadata *Metadata
}

func NewOIDC(
	cfg Config,
	store localstorage.Repository,
	loader *MetadataLoader,
	logins *events.Dispatcher[events.LoginSucceeded],
	logger logging.Logger,
) *OIDC {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if cfg.SignInTimeout <= 0 {
		cfg.SignInTimeout = 5 * time.Minute
	}
	return &OIDC{
		cfg:    cfg,
		store:  store,
		loader: loader,
		logins: logins,
		logger: logger,
		now:    time.Now,
	}
}

func (o *OIDC) Initialize(ctx context.Context) error {
	if o.cfg.ClientID == "" {
		return fmt.Errorf("%w: client id is required", common.ErrNotInitialized)
	}
	u, err := url.Parse(o.cfg.Authority)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: invalid authority %q", common.ErrNotInitialized, o.cfg.Authority)
	}

	md := o.loader.Loaded()
	if md == nil {
		o.logger.Warn(ctx, "discovery document not loaded, deriving endpoints from authority", "authority", o.cfg.Authority)
		md = FallbackMetadata(o.cfg.Authority)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.metadata = md
	o.oauth = &oauth2.Config{
		ClientID: o.cfg.ClientID,
		Scopes:   o.cfg.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   md.AuthorizationEndpoint,
			TokenURL:  md.TokenEndpoint,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	return nil
}

func (o *OIDC) oauthConfig() (*oauth2.Config, *Metadata, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.oauth == nil {
		return nil, nil, common.ErrNotInitialized
	}
	return o.oauth, o.metadata, nil
}

func (o *OIDC) Account(ctx context.Context) (*models.Account, error) {
	if _, _, err := o.oauthConfig(); err != nil {
		return nil, err
	}
	s, err := loadSession(ctx, o.store)
	if err != nil || s == nil {
		return nil, err
	}
	acc := s.Account
	return &acc, nil
}

type callbackResult struct {
	code string
	err  error
}

func (o *OIDC) SignIn(ctx context.Context) error {
	base, _, err := o.oauthConfig()
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(o.cfg.RedirectPort)))
	if err != nil {
		return fmt.Errorf("listen for redirect: %w", err)
	}

	cfg := *base
	cfg.RedirectURL = "http://" + ln.Addr().String() + callbackPath

	state, err := common.MakeRandHexString(16)
	if err != nil {
		_ = ln.Close()
		return fmt.Errorf("generate state: %w", err)
	}
	verifier := oauth2.GenerateVerifier()

	results := make(chan callbackResult, 1)
	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		res := readCallback(r, state)
		if res.err != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, "<p>Sign-in failed: %s</p>", html.EscapeString(res.err.Error()))
		} else {
			fmt.Fprint(w, "<p>Sign-in complete. You can close this window.</p>")
		}
		select {
		case results <- res:
		default:
		}
	})

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			o.logger.Error(ctx, "redirect listener stopped", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	authURL := cfg.AuthCodeURL(state,
		oauth2.S256ChallengeOption(verifier),
		oauth2.SetAuthURLParam("prompt", "select_account"),
	)
	if o.cfg.OnAuthURL != nil {
		o.cfg.OnAuthURL(authURL)
	}
	if err := openBrowser(authURL); err != nil {
		o.logger.Warn(ctx, "could not open browser", "error", err)
	}

	timer := time.NewTimer(o.cfg.SignInTimeout)
	defer timer.Stop()

	var res callbackResult
	select {
	case res = <-results:
	case <-timer.C:
		return errors.New("sign-in timed out")
	case <-ctx.Done():
		return ctx.Err()
	}
	if res.err != nil {
		return res.err
	}

	tok, err := cfg.Exchange(context.WithValue(ctx, oauth2.HTTPClient, o.cfg.HTTPClient), res.code, oauth2.VerifierOption(verifier))
	if err != nil {
		return fmt.Errorf("exchange code: %w", err)
	}

	idToken, _ := tok.Extra("id_token").(string)
	if idToken == "" {
		return errors.New("token response has no id_token")
	}
	claims, err := parseClaims(idToken)
	if err != nil {
		return err
	}

	s := &session{
		IDToken:      idToken,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		Expiry:       tok.Expiry,
		Account:      accountFromClaims(claims),
	}
	if err := saveSession(ctx, o.store, s); err != nil {
		return err
	}

	o.logger.Info(ctx, "signed in", "username", s.Account.Username)
	o.logins.Publish(events.LoginSucceeded{Account: s.Account})
	return nil
}

func readCallback(r *http.Request, state string) callbackResult {
	q := r.URL.Query()
	if e := q.Get("error"); e != "" {
		if d := q.Get("error_description"); d != "" {
			return callbackResult{err: fmt.Errorf("authorization failed: %s: %s", e, d)}
		}
		return callbackResult{err: fmt.Errorf("authorization failed: %s", e)}
	}
	if q.Get("state") != state {
		return callbackResult{err: errors.New("authorization failed: state mismatch")}
	}
	code := q.Get("code")
	if code == "" {
		return callbackResult{err: errors.New("authorization failed: no code in redirect")}
	}
	return callbackResult{code: code}
}

func (o *OIDC) SignOut(ctx context.Context) error {
	_, md, err := o.oauthConfig()
	if err != nil {
		return err
	}
	if err := o.store.RemoveItem(ctx, SessionKey); err != nil {
		return err
	}
	o.logger.Info(ctx, "signed out")

	if md.EndSessionEndpoint != "" {
		if err := openBrowser(md.EndSessionEndpoint); err != nil {
			o.logger.Warn(ctx, "could not open end-session page", "error", err)
		}
	}
	return nil
}

func (o *OIDC) IDToken(ctx context.Context) (string, error) {
	if _, _, err := o.oauthConfig(); err != nil {
		return "", err
	}
	s, err := loadSession(ctx, o.store)
	if err != nil || s == nil || s.IDToken == "" {
		return "", err
	}
	claims, err := parseClaims(s.IDToken)
	if err != nil {
		return "", err
	}
	if expired(claims, o.now()) {
		o.logger.Debug(ctx, "cached id token expired")
		return "", nil
	}
	return s.IDToken, nil
}

func (o *OIDC) IDTokenClaims(ctx context.Context) (models.Claims, error) {
	if _, _, err := o.oauthConfig(); err != nil {
		return nil, err
	}
	s, err := loadSession(ctx, o.store)
	if err != nil || s == nil || s.IDToken == "" {
		return nil, err
	}
	return parseClaims(s.IDToken)
}
