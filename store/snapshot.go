package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/goldbook"
	"github.com/etnz/goldbook/date"
)

// Snapshot is the full state of the shop, as found in backup files.
type Snapshot struct {
	Settings     goldbook.Settings      `json:"settings"`
	Users        []goldbook.User        `json:"users"`
	Transactions []goldbook.Transaction `json:"transactions"`
	Employees    []goldbook.Employee    `json:"employees"`
	Partners     []goldbook.Partner     `json:"partners"`
	Permissions  []goldbook.Permission  `json:"permissions"`
	Counters     map[string]int         `json:"counters"`
	Timestamp    string                 `json:"timestamp"`
}

// snapshotKeys maps the snapshot fields to the store keys, in restore order.
var snapshotKeys = []struct{ field, key string }{
	{"settings", KeySettings},
	{"users", KeyUsers},
	{"transactions", KeyTransactions},
	{"employees", KeyEmployees},
	{"partners", KeyPartners},
	{"permissions", KeyPermissions},
	{"counters", KeyCounters},
}

// Export gathers every collection.
func (s *Store) Export(ctx context.Context) (*Snapshot, error) {
	var err error
	snap := &Snapshot{Timestamp: s.now().UTC().Format(time.RFC3339)}
	if snap.Settings, err = s.Settings().Load(ctx); err != nil {
		return nil, err
	}
	if snap.Users, err = s.Users().List(ctx); err != nil {
		return nil, err
	}
	if snap.Transactions, err = s.Transactions().List(ctx); err != nil {
		return nil, err
	}
	if snap.Employees, err = s.Employees().List(ctx); err != nil {
		return nil, err
	}
	if snap.Partners, err = s.Partners().List(ctx); err != nil {
		return nil, err
	}
	if snap.Permissions, err = s.Permissions().List(ctx); err != nil {
		return nil, err
	}
	if snap.Counters, err = s.Counters().All(ctx); err != nil {
		return nil, err
	}
	// empty collections are written as [] rather than null
	snap.Transactions = nonNil(snap.Transactions)
	snap.Employees = nonNil(snap.Employees)
	snap.Partners = nonNil(snap.Partners)
	snap.Permissions = nonNil(snap.Permissions)
	snap.Users = nonNil(snap.Users)
	return snap, nil
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}

// ExportJSON returns the indented JSON snapshot.
func (s *Store) ExportJSON(ctx context.Context) ([]byte, error) {
	snap, err := s.Export(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(snap, "", "  ")
}

// ImportJSON restores a JSON snapshot. Only the fields present (and not
// null) are written back, absent collections keep their current value.
// Every present field is decoded before anything is written, so a
// malformed snapshot leaves the store untouched. Writes are not atomic
// across collections. It returns the restored fields.
func (s *Store) ImportJSON(ctx context.Context, data []byte) (restored []string, err error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid backup: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("invalid backup: no data")
	}

	// decode every field into its type to reject malformed backups early,
	// the stored value is the field as found in the backup.
	var snap Snapshot
	targets := map[string]any{
		"settings":     &snap.Settings,
		"users":        &snap.Users,
		"transactions": &snap.Transactions,
		"employees":    &snap.Employees,
		"partners":     &snap.Partners,
		"permissions":  &snap.Permissions,
		"counters":     &snap.Counters,
	}
	values := make(map[string][]byte)
	for _, k := range snapshotKeys {
		raw, ok := doc[k.field]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			continue
		}
		if err := json.Unmarshal(raw, targets[k.field]); err != nil {
			return nil, fmt.Errorf("invalid backup field %q: %w", k.field, err)
		}
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return nil, err
		}
		values[k.key] = buf.Bytes()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range snapshotKeys {
		v, ok := values[k.key]
		if !ok {
			continue
		}
		if err := s.backend.Set(ctx, k.key, v); err != nil {
			return restored, err
		}
		restored = append(restored, k.field)
	}
	s.log.WithField("fields", restored).Info("backup restored")
	return restored, nil
}

// BackupFileName returns the name of a local backup made on a given day.
func BackupFileName(on date.Date) string {
	return fmt.Sprintf("PyramidsGold_Backup_%s.json", on)
}

// WriteFile writes a snapshot into dir and returns the file path.
func (s *Store) WriteFile(ctx context.Context, dir string) (string, error) {
	data, err := s.ExportJSON(ctx)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, BackupFileName(date.New(s.now().Date())))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("cannot write backup: %w", err)
	}
	return path, nil
}

// ReadFile restores the snapshot file at path.
func (s *Store) ReadFile(ctx context.Context, path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read backup: %w", err)
	}
	return s.ImportJSON(ctx, data)
}
