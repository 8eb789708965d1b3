package history

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/fileshare/internal/client/models"
	"github.com/dmitrijs2005/fileshare/internal/client/repositories/localstorage"
	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/dbx"
	"github.com/dmitrijs2005/fileshare/internal/logging"
	"github.com/goccy/go-json"
)

// Repository is the upload history contract used by the upload service and
// the CLI.
type Repository interface {
	// Append adds rec at the end of the history.
	Append(ctx context.Context, rec models.UploadRecord) error

	// List returns all records in insertion order.
	List(ctx context.Context) ([]models.UploadRecord, error)
}

type Store struct {
	db     *sql.DB
	limit  int
	logger logging.Logger
}

// NewStore returns a history store over db. limit <= 0 means unbounded.
func NewStore(db *sql.DB, limit int, logger logging.Logger) *Store {
	return &Store{db: db, limit: limit, logger: logger}
}

func (s *Store) Append(ctx context.Context, rec models.UploadRecord) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := localstorage.NewSQLiteRepository(tx)

		records, err := load(ctx, repo)
		if err != nil {
			return err
		}

		records = append(records, rec)
		if s.limit > 0 && len(records) > s.limit {
			dropped := len(records) - s.limit
			records = records[dropped:]
			s.logger.Info(ctx, "history limit reached, dropped oldest records", "dropped", dropped, "limit", s.limit)
		}

		b, err := json.Marshal(records)
		if err != nil {
			return fmt.Errorf("encode history: %w", err)
		}
		return repo.SetItem(ctx, common.UploadedFilesKey, string(b))
	})
}

func (s *Store) List(ctx context.Context) ([]models.UploadRecord, error) {
	return load(ctx, localstorage.NewSQLiteRepository(s.db))
}

func load(ctx context.Context, repo localstorage.Repository) ([]models.UploadRecord, error) {
	raw, ok, err := repo.GetItem(ctx, common.UploadedFilesKey)
	if err != nil {
		return nil, err
	}

	records := make([]models.UploadRecord, 0)
	if !ok || raw == "" {
		return records, nil
	}
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	if records == nil {
		records = make([]models.UploadRecord, 0)
	}
	return records, nil
}
