package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/dmitrijs2005/fileshare/internal/logging"
	"github.com/dmitrijs2005/fileshare/internal/netx"
)

var ErrNoDataToken = errors.New("no authentication token available, please sign in")

type FetchStatus string

const (
	StatusIdle    FetchStatus = "idle"
	StatusLoading FetchStatus = "loading"
	StatusSuccess FetchStatus = "success"
	StatusError   FetchStatus = "error"
)

// FetchCache is the single-slot cache of the last data response.
type FetchCache struct {
	Status      FetchStatus
	Error       string
	LastFetched time.Time
	Data        json.RawMessage
}

// DataFetcher performs the authenticated GET.
type DataFetcher interface {
	Fetch(ctx context.Context, token string) ([]byte, error)
}

// DataService defines the cached data view.
type DataService interface {
	// GetData returns the cached payload unless it is empty or forceRefresh
	// is set, in which case the endpoint is fetched again.
	GetData(ctx context.Context, forceRefresh bool) (json.RawMessage, error)
	// Cache returns a copy of the slot.
	Cache() FetchCache
	// Invalidate empties the slot.
	Invalidate()
}

type dataService struct {
	identity Identity
	fetcher  DataFetcher
	logger   logging.Logger
	now      func() time.Time

	mu    sync.Mutex
	cache FetchCache
}

func NewDataService(identity Identity, fetcher DataFetcher, logger logging.Logger) DataService {
	return &dataService{
		identity: identity,
		fetcher:  fetcher,
		logger:   logger,
		now:      time.Now,
		cache:    FetchCache{Status: StatusIdle},
	}
}

func (s *dataService) GetData(ctx context.Context, forceRefresh bool) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cache.Data != nil && !forceRefresh {
		s.logger.Debug(ctx, "serving data from cache", "lastFetched", s.cache.LastFetched)
		return s.cache.Data, nil
	}

	s.cache.Status = StatusLoading
	s.cache.Error = ""

	data, err := s.fetch(ctx)
	if err != nil {
		s.cache.Status = StatusError
		s.cache.Error = err.Error()
		s.logger.Error(ctx, "data fetch failed", "error", err)
		return nil, err
	}

	s.cache.Status = StatusSuccess
	s.cache.Data = data
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		// A null payload leaves the slot empty, so the next call fetches again.
		s.cache.Data = nil
	}
	s.cache.LastFetched = s.now()
	return data, nil
}

func (s *dataService) fetch(ctx context.Context) (json.RawMessage, error) {
	token, err := s.identity.IDToken(ctx)
	if err != nil || token == "" {
		return nil, ErrNoDataToken
	}

	body, err := s.fetcher.Fetch(ctx, token)
	if err != nil {
		var se *netx.StatusError
		if errors.As(err, &se) {
			return nil, fmt.Errorf("api request failed with status %d: %s", se.Code, se.Body)
		}
		return nil, err
	}
	if !json.Valid(body) {
		return nil, errors.New("api response is not valid json")
	}
	return json.RawMessage(body), nil
}

func (s *dataService) Cache() FetchCache {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache
}

func (s *dataService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = FetchCache{Status: StatusIdle}
}
