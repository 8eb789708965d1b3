package cli

import (
	"context"

	"github.com/dmitrijs2005/fileshare/internal/client/events"
)

// loginSubscriber is the dispatcher id of the app's sign-in handler.
const loginSubscriber = "app.refresh-user-state"

// Initialize brings up authentication. It is safe to call more than once;
// only the first successful call does any work.
//
// A discovery-document failure is shown and logged but does not stop
// initialization. An authenticator failure does, and leaves the app unable
// to sign in.
func (a *App) Initialize(ctx context.Context) error {
	if a.isInitialized() {
		return nil
	}

	if _, err := a.metadata.Load(ctx); err != nil {
		a.logger.Error(ctx, "failed to load identity provider metadata", "error", err)
		a.ui.ShowError("Failed to load authentication library: " + userMessage(err))
	}

	if err := a.auth.Initialize(ctx); err != nil {
		a.logger.Error(ctx, "failed to initialize authentication", "error", err)
		a.ui.ShowError("Failed to initialize authentication system")
		return err
	}

	a.wire()

	a.mu.Lock()
	a.state.initialized = true
	a.mu.Unlock()

	a.checkExistingAuth(ctx)
	return nil
}

// wire subscribes the app to sign-in events exactly once.
func (a *App) wire() {
	a.wireOnce.Do(func() {
		a.logins.Subscribe(loginSubscriber, func(e events.LoginSucceeded) {
			ctx, cancel := context.WithTimeout(context.Background(), a.requestTimeout)
			defer cancel()

			a.logger.Info(ctx, "login succeeded", "username", e.Account.Username)
			a.RefreshUserState(ctx)
		})
	})
}

func (a *App) checkExistingAuth(ctx context.Context) {
	acc, err := a.auth.Account(ctx)
	if err != nil {
		a.logger.Warn(ctx, "could not read cached session", "error", err)
	}
	if acc == nil {
		a.setAuthenticated(false, "")
		a.ui.ShowUnauthenticated()
		return
	}
	a.logger.Debug(ctx, "found cached session", "username", acc.Username)
	a.RefreshUserState(ctx)
}

// RefreshUserState asks the provider for the user's profile and renders the
// matching view. No profile means signed out.
func (a *App) RefreshUserState(ctx context.Context) {
	profile, err := a.auth.UserDetails(ctx)
	if err != nil {
		a.logger.Warn(ctx, "profile unavailable", "error", err)
	}
	if err != nil || profile == nil {
		a.setAuthenticated(false, "")
		a.ui.ShowUnauthenticated()
		return
	}

	claims, err := a.auth.IDTokenClaims(ctx)
	if err != nil {
		a.logger.Warn(ctx, "id token claims unavailable", "error", err)
	}

	a.setAuthenticated(true, profile.Label())
	a.ui.ShowAuthenticated(profile, claims)
	a.showHistory(ctx)
}
