package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/katsunaka/court-booking/db"
	"github.com/katsunaka/court-booking/storage"
)

// BackupService snapshots the table files to object storage. Snapshots are
// best-effort: a failed upload is reported to the caller and retried on the
// next scheduler tick, it never blocks a booking operation.
type BackupService struct {
	store    *db.Store
	uploader storage.FileUploader
	prefix   string
	logger   *slog.Logger
}

func NewBackupService(store *db.Store, uploader storage.FileUploader, prefix string, logger *slog.Logger) *BackupService {
	return &BackupService{
		store:    store,
		uploader: uploader,
		prefix:   prefix,
		logger:   logger,
	}
}

// RunOnce uploads both tables under a stable key, overwriting the previous
// snapshot.
func (s *BackupService) RunOnce(ctx context.Context) error {
	for _, path := range []string{s.store.BookingsPath(), s.store.ParticipantsPath()} {
		if err := s.uploadFile(ctx, path); err != nil {
			return err
		}
	}
	return nil
}

func (s *BackupService) uploadFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open table for backup: %w", err)
	}
	defer f.Close()

	key := s.prefix + "/" + filepath.Base(path)
	result, err := s.uploader.Upload(ctx, key, "text/csv", f)
	if err != nil {
		return err
	}
	s.logger.Info("table snapshot uploaded", slog.String("key", result.Key), slog.String("etag", result.ETag))
	return nil
}
