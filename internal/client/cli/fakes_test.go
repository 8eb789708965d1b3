package cli

import (
	"bytes"
	"context"
	"errors"

	"github.com/goccy/go-json"

	"github.com/dmitrijs2005/fileshare/internal/client/auth"
	"github.com/dmitrijs2005/fileshare/internal/client/events"
	"github.com/dmitrijs2005/fileshare/internal/client/models"
	"github.com/dmitrijs2005/fileshare/internal/client/services"
	"github.com/dmitrijs2005/fileshare/internal/client/ui"
	"github.com/dmitrijs2005/fileshare/internal/logging"
)

var errBoom = errors.New("boom")

type fakeLoader struct {
	err   error
	calls int
}

func (f *fakeLoader) Load(context.Context) (*auth.Metadata, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &auth.Metadata{}, nil
}

type fakeAuth struct {
	logins *events.Dispatcher[events.LoginSucceeded]

	initErr    error
	initCalls  int
	account    *models.Account
	accountErr error
	profile    *models.Profile
	profileErr error
	claims     models.Claims

	signInErr     error
	signInProfile *models.Profile
	signOutErr    error
	signOutCalls  int
}

func (f *fakeAuth) Initialize(context.Context) error {
	f.initCalls++
	return f.initErr
}

func (f *fakeAuth) Account(context.Context) (*models.Account, error) {
	return f.account, f.accountErr
}

func (f *fakeAuth) SignIn(context.Context) error {
	if f.signInErr != nil {
		return f.signInErr
	}
	f.account = &models.Account{Username: "ada@example.com"}
	f.profile = f.signInProfile
	f.logins.Publish(events.LoginSucceeded{Account: *f.account})
	return nil
}

func (f *fakeAuth) SignOut(context.Context) error {
	f.signOutCalls++
	if f.signOutErr != nil {
		return f.signOutErr
	}
	f.account = nil
	f.profile = nil
	return nil
}

func (f *fakeAuth) IDToken(context.Context) (string, error) { return "tok", nil }

func (f *fakeAuth) IDTokenClaims(context.Context) (models.Claims, error) { return f.claims, nil }

func (f *fakeAuth) UserDetails(context.Context) (*models.Profile, error) {
	return f.profile, f.profileErr
}

type fakeUploads struct {
	rec   *models.UploadRecord
	err   error
	files []models.LocalFile
	hist  *fakeHistory
}

func (f *fakeUploads) Upload(_ context.Context, file models.LocalFile) (*models.UploadRecord, error) {
	f.files = append(f.files, file)
	if f.err != nil {
		return nil, f.err
	}
	if f.hist != nil {
		f.hist.records = append(f.hist.records, *f.rec)
	}
	return f.rec, nil
}

type fakeData struct {
	payload     json.RawMessage
	err         error
	forced      []bool
	invalidated int
}

func (f *fakeData) GetData(_ context.Context, force bool) (json.RawMessage, error) {
	f.forced = append(f.forced, force)
	return f.payload, f.err
}

func (f *fakeData) Cache() services.FetchCache { return services.FetchCache{} }

func (f *fakeData) Invalidate() { f.invalidated++ }

type fakeHistory struct {
	records []models.UploadRecord
	listErr error
}

func (f *fakeHistory) Append(_ context.Context, rec models.UploadRecord) error {
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeHistory) List(context.Context) ([]models.UploadRecord, error) {
	return f.records, f.listErr
}

type harness struct {
	app     *App
	out     *bytes.Buffer
	term    *ui.Terminal
	auth    *fakeAuth
	loader  *fakeLoader
	uploads *fakeUploads
	data    *fakeData
	history *fakeHistory
	logins  *events.Dispatcher[events.LoginSucceeded]
}

func newHarness() *harness {
	var out bytes.Buffer
	logins := events.NewDispatcher[events.LoginSucceeded]()
	h := &harness{
		out:     &out,
		term:    ui.NewTerminal(&out, false),
		auth:    &fakeAuth{logins: logins},
		loader:  &fakeLoader{},
		uploads: &fakeUploads{},
		data:    &fakeData{},
		history: &fakeHistory{},
		logins:  logins,
	}
	h.app = newApp(deps{
		auth:     h.auth,
		metadata: h.loader,
		logins:   logins,
		uploads:  h.uploads,
		data:     h.data,
		history:  h.history,
		ui:       h.term,
		logger:   logging.NewNop(),
	})
	return h
}
