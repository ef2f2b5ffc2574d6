package cloud

import (
	"context"

	"github.com/etnz/goldbook/store"
)

// Backup uploads the snapshot of s and records the backup time in its
// settings.
func Backup(ctx context.Context, d *Drive, s *store.Store) (fileID string, err error) {
	data, err := s.ExportJSON(ctx)
	if err != nil {
		return "", err
	}
	fileID, _, err = d.Upload(ctx, data)
	if err != nil {
		return "", err
	}
	_, err = s.Settings().MarkBackup(ctx)
	return fileID, err
}

// Restore downloads the backup and imports it into s.
func Restore(ctx context.Context, d *Drive, s *store.Store) ([]string, error) {
	data, err := d.Download(ctx)
	if err != nil {
		return nil, err
	}
	return s.ImportJSON(ctx, data)
}
