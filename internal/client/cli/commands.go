package cli

import (
	"context"
	"errors"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/fileshare/internal/client/models"
	"github.com/dmitrijs2005/fileshare/internal/client/services"
	"github.com/dmitrijs2005/fileshare/internal/common"
)

// displayText holds the wording shown for well-known errors.
var displayText = []struct {
	err  error
	text string
}{
	{common.ErrNoToken, "Authentication token not available. Please sign in."},
	{services.ErrNoDataToken, "No authentication token available. Please sign in."},
	{common.ErrNoFileSelected, "Please select a file to upload."},
	{common.ErrNotInitialized, "Authentication system not initialized"},
}

// userMessage turns err into a sentence for the terminal.
func userMessage(err error) string {
	for _, d := range displayText {
		if errors.Is(err, d.err) {
			return d.text
		}
	}
	s := err.Error()
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func (a *App) requireInitialized() error {
	if !a.isInitialized() {
		a.ui.ShowError("Authentication system not initialized")
		return common.ErrNotInitialized
	}
	return nil
}

// SignIn runs the interactive sign-in. The view is refreshed by the
// LoginSucceeded handler.
func (a *App) SignIn(ctx context.Context) error {
	if err := a.requireInitialized(); err != nil {
		return err
	}
	if err := a.auth.SignIn(ctx); err != nil {
		a.logger.Error(ctx, "sign-in failed", "error", err)
		a.ui.ShowError("Failed to sign in")
		return err
	}
	return nil
}

func (a *App) SignOut(ctx context.Context) error {
	if err := a.requireInitialized(); err != nil {
		return err
	}
	if err := a.auth.SignOut(ctx); err != nil {
		a.logger.Error(ctx, "sign-out failed", "error", err)
		a.ui.ShowError("Failed to sign out")
		return err
	}

	a.data.Invalidate()
	a.setAuthenticated(false, "")
	a.ui.ShowUnauthenticated()
	return nil
}

// SelectFile remembers path for a later Upload.
func (a *App) SelectFile(ctx context.Context, path string) error {
	file, err := models.StatFile(path)
	if err != nil {
		a.logger.Warn(ctx, "cannot select file", "path", path, "error", err)
		a.ui.ShowError("Cannot select file: " + err.Error())
		return err
	}

	a.mu.Lock()
	a.selected = &file
	a.mu.Unlock()

	a.ui.ShowFileInfo(file.Name, file.SizeKB())
	return nil
}

// Reset forgets the selected file.
func (a *App) Reset() {
	a.mu.Lock()
	a.selected = nil
	a.mu.Unlock()
	a.ui.ClearFileInfo()
}

// Upload uploads path, or the selected file when path is empty.
func (a *App) Upload(ctx context.Context, path string) error {
	if path == "" {
		a.mu.Lock()
		sel := a.selected
		a.mu.Unlock()

		if sel == nil {
			a.ui.ShowError(userMessage(common.ErrNoFileSelected))
			return common.ErrNoFileSelected
		}
		path = sel.Path
	}
	return a.UploadFile(ctx, path)
}

// UploadFile shows the file's details and runs the upload workflow.
func (a *App) UploadFile(ctx context.Context, path string) error {
	file, err := models.StatFile(path)
	if err != nil {
		a.logger.Error(ctx, "upload failed", "path", path, "error", err)
		a.ui.ShowError("File upload failed: " + userMessage(err))
		return err
	}
	a.ui.ShowFileInfo(file.Name, file.SizeKB())

	rec, err := a.uploads.Upload(ctx, file)
	if err != nil {
		a.logger.Error(ctx, "upload failed", "file", file.Name, "error", err)
		a.ui.ShowError("File upload failed: " + userMessage(err))
		return err
	}

	a.mu.Lock()
	a.selected = nil
	a.mu.Unlock()

	a.ui.ShowDownloadLink(rec.DownloadURL)
	a.showHistory(ctx)
	return nil
}

func (a *App) History(ctx context.Context) error {
	return a.showHistory(ctx)
}

func (a *App) showHistory(ctx context.Context) error {
	records, err := a.history.List(ctx)
	if err != nil {
		a.logger.Error(ctx, "failed to load upload history", "error", err)
		a.ui.ShowError("Failed to load upload history")
		return err
	}
	a.ui.ShowHistory(records)
	return nil
}

// Data shows the data endpoint's payload, from cache unless force is set.
func (a *App) Data(ctx context.Context, force bool) error {
	payload, err := a.data.GetData(ctx, force)
	if err != nil {
		a.ui.ShowError("Failed to fetch data: " + userMessage(err))
		return err
	}
	a.ui.ShowData(payload)
	return nil
}

// WhoAmI shows the signed-in account's ID token claims.
func (a *App) WhoAmI(ctx context.Context) error {
	if !a.isAuthenticated() {
		a.ui.ShowUnauthenticated()
		return nil
	}
	acc, err := a.auth.Account(ctx)
	if err != nil {
		a.ui.ShowError(userMessage(err))
		return err
	}
	if acc != nil {
		a.ui.ShowInfo("Signed in as " + a.status() + " <" + acc.Username + ">")
	}
	claims, err := a.auth.IDTokenClaims(ctx)
	if err != nil {
		a.ui.ShowError(userMessage(err))
		return err
	}
	a.ui.ShowClaims(claims)
	return nil
}
