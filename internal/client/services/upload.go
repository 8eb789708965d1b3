// Package services contains application services for the fshare client.
// This file defines the upload workflow: two ordered PUTs (object bytes then
// metadata sidecar), download link construction and history bookkeeping.
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/fileshare/internal/client/client"
	"github.com/dmitrijs2005/fileshare/internal/client/models"
	"github.com/dmitrijs2005/fileshare/internal/client/repositories/history"
	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/logging"
	"github.com/dmitrijs2005/fileshare/internal/netx"
)

// Identity is the part of the authenticator the services depend on.
type Identity interface {
	IDToken(ctx context.Context) (string, error)
	UserDetails(ctx context.Context) (*models.Profile, error)
}

// UploadService defines the upload workflow.
//
// Contract:
//   - no network call is made without a non-empty ID token;
//   - the object PUT precedes the metadata PUT and both share one UUID;
//   - history gains a record only after both PUTs succeed.
type UploadService interface {
	Upload(ctx context.Context, file models.LocalFile) (*models.UploadRecord, error)
}

// StepError reports which PUT failed. Non-2xx responses are summarised by
// their reason phrase.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	var se *netx.StatusError
	if errors.As(e.Err, &se) {
		return fmt.Sprintf("%s upload failed: %s", e.Step, se.StatusText())
	}
	return fmt.Sprintf("%s upload failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

type uploadService struct {
	identity Identity
	objects  client.ObjectClient
	linker   client.Linker
	history  history.Repository
	logger   logging.Logger

	newUUID func() string
	now     func() time.Time
}

func NewUploadService(
	identity Identity,
	objects client.ObjectClient,
	linker client.Linker,
	history history.Repository,
	logger logging.Logger,
) UploadService {
	return &uploadService{
		identity: identity,
		objects:  objects,
		linker:   linker,
		history:  history,
		logger:   logger,
		newUUID:  uuid.NewString,
		now:      time.Now,
	}
}

func (s *uploadService) Upload(ctx context.Context, file models.LocalFile) (*models.UploadRecord, error) {
	token, err := s.identity.IDToken(ctx)
	if err != nil {
		s.logger.Warn(ctx, "could not read id token", "error", err)
		return nil, common.ErrNoToken
	}
	if token == "" {
		return nil, common.ErrNoToken
	}

	id := s.newUUID()
	author := s.author(ctx)
	stamp := s.now().UTC().Format(models.TimestampLayout)
	objectKey := fmt.Sprintf("%s-%s", id, file.Name)
	metadataKey := fmt.Sprintf("%s_metadata.json", id)

	contentType := file.ContentType
	if contentType == "" {
		contentType = common.DefaultContentType
	}

	log := s.logger.With("uuid", id, "file", file.Name)

	f, err := os.Open(file.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", file.Path, err)
	}
	defer f.Close()

	log.Debug(ctx, "uploading object", "key", objectKey, "size", file.Size)
	err = s.objects.PutObject(ctx, client.PutObjectInput{
		Key:         objectKey,
		ContentType: contentType,
		Body:        f,
		Size:        file.Size,
		Token:       token,
	})
	if err != nil {
		return nil, &StepError{Step: "file", Err: err}
	}

	meta, err := json.Marshal(models.UploadMetadata{
		UUID:      id,
		UserName:  author,
		Timestamp: stamp,
		FileName:  file.Name,
		FileSize:  file.Size,
		FileType:  file.ContentType,
	})
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}

	log.Debug(ctx, "uploading metadata", "key", metadataKey)
	err = s.objects.PutObject(ctx, client.PutObjectInput{
		Key:         metadataKey,
		ContentType: common.JSONContentType,
		Body:        bytes.NewReader(meta),
		Size:        int64(len(meta)),
		Token:       token,
	})
	if err != nil {
		return nil, &StepError{Step: "metadata", Err: err}
	}

	link, err := s.linker.DownloadURL(ctx, objectKey)
	if err != nil {
		return nil, fmt.Errorf("build download url: %w", err)
	}

	rec := &models.UploadRecord{
		Name:        file.Name,
		Size:        file.Size,
		UploadDate:  stamp,
		UserName:    author,
		DownloadURL: link,
	}
	if err := s.history.Append(ctx, *rec); err != nil {
		return nil, fmt.Errorf("save history: %w", err)
	}

	log.Info(ctx, "upload finished", "key", objectKey)
	return rec, nil
}

func (s *uploadService) author(ctx context.Context) string {
	p, err := s.identity.UserDetails(ctx)
	if err != nil {
		s.logger.Warn(ctx, "profile unavailable, using placeholder author", "error", err)
	}
	if name := p.Author(); name != "" {
		return name
	}
	return common.UnknownUserName
}
