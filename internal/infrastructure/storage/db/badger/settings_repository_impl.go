package dbbadger

import (
	"context"

	"github.com/dgraph-io/badger/v3"
	"github.com/tdex-network/hdwallet/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

const settingsKey = "settings"

type settingsRepositoryImpl struct {
	store *badgerhold.Store
}

func newSettingsRepositoryImpl(store *badgerhold.Store) domain.SettingsRepository {
	return settingsRepositoryImpl{store}
}

func (r settingsRepositoryImpl) GetSettings(
	ctx context.Context,
) (*domain.Settings, error) {
	var settings domain.Settings
	if err := r.store.Get(settingsKey, &settings); err != nil {
		if err == badgerhold.ErrNotFound {
			return &domain.Settings{}, nil
		}
		return nil, err
	}
	return &settings, nil
}

func (r settingsRepositoryImpl) UpdateSettings(
	ctx context.Context,
	updateFn func(s *domain.Settings) (*domain.Settings, error),
) error {
	return r.store.Badger().Update(func(tx *badger.Txn) error {
		var settings domain.Settings
		if err := r.store.TxGet(tx, settingsKey, &settings); err != nil {
			if err != badgerhold.ErrNotFound {
				return err
			}
		}

		updated, err := updateFn(&settings)
		if err != nil {
			return err
		}
		if updated == nil {
			return ErrNullSettings
		}
		return r.store.TxUpsert(tx, settingsKey, updated)
	})
}
