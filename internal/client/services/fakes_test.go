package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/fileshare/internal/client/models"
)

type fakeIdentity struct {
	token      string
	tokenErr   error
	profile    *models.Profile
	profileErr error

	mu          sync.Mutex
	tokenCalls  int
	profileCall int
}

func (f *fakeIdentity) IDToken(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokenCalls++
	return f.token, f.tokenErr
}

func (f *fakeIdentity) UserDetails(context.Context) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profileCall++
	return f.profile, f.profileErr
}

type fakeHistory struct {
	records   []models.UploadRecord
	appendErr error
}

func (f *fakeHistory) Append(_ context.Context, rec models.UploadRecord) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeHistory) List(context.Context) ([]models.UploadRecord, error) {
	return append([]models.UploadRecord(nil), f.records...), nil
}

type fakeFetcher struct {
	body  []byte
	err   error
	calls int
	token string
}

func (f *fakeFetcher) Fetch(_ context.Context, token string) ([]byte, error) {
	f.calls++
	f.token = token
	return f.body, f.err
}

var errBoom = errors.New("boom")
