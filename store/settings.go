package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/etnz/goldbook"
)

// SettingsRepo stores the settings singleton.
type SettingsRepo struct{ s *Store }

// Load returns the stored settings merged over the defaults. Undecodable
// settings are logged and replaced by the defaults.
func (r *SettingsRepo) Load(ctx context.Context) (goldbook.Settings, error) {
	data, ok, err := r.s.backend.Get(ctx, KeySettings)
	if err != nil {
		return goldbook.DefaultSettings(), err
	}
	if !ok {
		return goldbook.DefaultSettings(), nil
	}
	settings, err := goldbook.DecodeSettings(data)
	if err != nil {
		r.s.log.WithError(err).Warn("using default settings")
	}
	return settings, nil
}

// Save replaces the settings.
func (r *SettingsRepo) Save(ctx context.Context, settings goldbook.Settings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return r.s.backend.Set(ctx, KeySettings, data)
}

// MarkBackup records the time of the last cloud backup.
func (r *SettingsRepo) MarkBackup(ctx context.Context) (goldbook.Settings, error) {
	settings, err := r.Load(ctx)
	if err != nil {
		return settings, err
	}
	settings.Drive.LastBackup = r.s.now().UTC().Format(time.RFC3339)
	return settings, r.Save(ctx, settings)
}
