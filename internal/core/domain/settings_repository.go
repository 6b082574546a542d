package domain

import "context"

// SettingsRepository is the abstraction for any kind of database intended to
// persist the wallet Settings.
type SettingsRepository interface {
	// GetSettings returns the stored settings, or zero settings if none was
	// ever stored.
	GetSettings(ctx context.Context) (*Settings, error)
	// UpdateSettings updates the settings. The closure function let's to
	// commit multiple changes in a transactional way.
	UpdateSettings(
		ctx context.Context, updateFn func(s *Settings) (*Settings, error),
	) error
}
