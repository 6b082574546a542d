package wallet

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/hdwallet/internal/core/domain"
	"github.com/tdex-network/hdwallet/internal/core/ports"
	hdwallet "github.com/tdex-network/hdwallet/pkg/wallet"
)

// AddAccount loads the account described by config at index. With a
// passphrase, the account is unlocked once to validate it, then locked.
func (s *Service) AddAccount(
	ctx context.Context, index uint32, config domain.AccountConfig,
	passphrase *string,
) error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	return s.addAccount(ctx, index, config, passphrase)
}

// CreateAccount loads a new account in the first free slot after the key
// file ones and persists its config. It returns the slot of the account.
func (s *Service) CreateAccount(
	ctx context.Context, config domain.AccountConfig, passphrase *string,
) (uint32, error) {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	return s.createAccount(ctx, config, passphrase)
}

// CreateWallet creates a key file from mnemonic, or from a random seed if
// empty, and an account for it.
func (s *Service) CreateWallet(
	ctx context.Context, config domain.AccountConfig, mnemonic []string,
	passphrase *string,
) (uint32, error) {
	if len(mnemonic) <= 0 {
		var err error
		if mnemonic, err = hdwallet.NewMnemonic(hdwallet.NewMnemonicOpts{}); err != nil {
			return 0, err
		}
	}
	seed, err := hdwallet.SeedFromMnemonic(mnemonic)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", domain.ErrInvalidArgument, err)
	}

	keyFile := domain.KeyFile{Seed: seed}
	if passphrase != nil {
		fingerprint := hdwallet.Fingerprint(seed, *passphrase)
		keyFile.Fingerprint = &fingerprint
	}
	return s.ImportWallet(ctx, config, keyFile, passphrase)
}

// ImportWallet stores keyFile and creates an account for it. The key file
// is removed again if the account cannot be created, unless it existed
// before.
func (s *Service) ImportWallet(
	ctx context.Context, config domain.AccountConfig, keyFile domain.KeyFile,
	passphrase *string,
) (uint32, error) {
	if keyFile.Seed == (domain.Hash{}) {
		return 0, domain.ErrZeroSeed
	}

	pass := ""
	if passphrase != nil {
		pass = *passphrase
	}
	fingerprint := hdwallet.Fingerprint(keyFile.Seed, pass)
	if keyFile.Fingerprint != nil && *keyFile.Fingerprint != fingerprint {
		if passphrase != nil {
			return 0, domain.ErrInvalidPassphrase
		}
		return 0, domain.ErrPassphraseNeeded
	}

	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	if config.NumAddresses == 0 {
		s.lock.RLock()
		config.NumAddresses = s.numAddresses
		s.lock.RUnlock()
	}
	config.WithPassphrase = passphrase != nil
	config.Fingerprint = fingerprint
	if config.KeyFile == "" {
		config.KeyFile = fmt.Sprintf("wallet_%s.dat", fingerprint)
	}

	existing, err := s.keyStore.GetKeyFile(config.KeyFile)
	if err != nil && !errors.Is(err, ports.ErrKeyFileNotFound) {
		return 0, err
	}
	if existing != nil && existing.Seed != keyFile.Seed {
		return 0, fmt.Errorf("%w: %s", ErrKeyFileExists, config.KeyFile)
	}
	if err := s.keyStore.PutKeyFile(config.KeyFile, keyFile); err != nil {
		return 0, err
	}

	index, err := s.createAccount(ctx, config, passphrase)
	if err != nil {
		if existing == nil {
			if err := s.keyStore.DeleteKeyFile(config.KeyFile); err != nil {
				log.WithError(err).Warnf("failed to remove key file %s", config.KeyFile)
			}
		}
		return 0, err
	}
	return index, nil
}

// ExportWallet returns the key file of the account at index.
func (s *Service) ExportWallet(
	_ context.Context, index uint32,
) (*domain.KeyFile, error) {
	var name string
	if err := s.withSlot(index, func(sl *slot) error {
		name = sl.wallet.Config().KeyFile
		return nil
	}); err != nil {
		return nil, err
	}
	return s.keyStore.GetKeyFile(name)
}

// GetMasterSeed returns the seed of the account at index.
func (s *Service) GetMasterSeed(
	ctx context.Context, index uint32,
) (domain.Hash, error) {
	keyFile, err := s.ExportWallet(ctx, index)
	if err != nil {
		return domain.Hash{}, err
	}
	return keyFile.Seed, nil
}

// GetMnemonicSeed returns the seed of the account at index as mnemonic.
func (s *Service) GetMnemonicSeed(
	ctx context.Context, index uint32,
) ([]string, error) {
	seed, err := s.GetMasterSeed(ctx, index)
	if err != nil {
		return nil, err
	}
	return hdwallet.MnemonicFromSeed(seed)
}

// RemoveAccount hides the created account at index and unloads it. Key
// file accounts cannot be removed.
func (s *Service) RemoveAccount(ctx context.Context, index uint32) error {
	if index < s.maxKeyFiles {
		return ErrLegacyAccount
	}

	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	if _, err := s.getSlot(index); err != nil {
		return err
	}

	offset := int(index - s.maxKeyFiles)
	if err := s.updateAccounts(ctx, func(accounts []domain.AccountConfig) error {
		if offset >= len(accounts) {
			return ErrLegacyAccount
		}
		accounts[offset].Hidden = true
		return nil
	}); err != nil {
		return err
	}

	s.drop(index)
	log.Infof("removed account %d", index)
	return nil
}

// SetAddressCount changes the number of addresses of the created account at
// index and reloads it. For a key file account it changes the default count
// and reloads every account.
func (s *Service) SetAddressCount(
	ctx context.Context, index, count uint32,
) error {
	if count < 1 || count > s.maxAddresses {
		return ErrInvalidAddressCount
	}

	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	if index >= s.maxKeyFiles {
		offset := int(index - s.maxKeyFiles)
		var config domain.AccountConfig
		if err := s.updateAccounts(ctx, func(accounts []domain.AccountConfig) error {
			if offset >= len(accounts) {
				return fmt.Errorf("%w: %d", ErrAccountNotFound, index)
			}
			accounts[offset].NumAddresses = count
			config = accounts[offset]
			return nil
		}); err != nil {
			return err
		}

		s.drop(index)
		return s.addAccount(ctx, index, config, nil)
	}

	if err := s.repo.SettingsRepository().UpdateSettings(
		ctx, func(settings *domain.Settings) (*domain.Settings, error) {
			settings.NumAddresses = &count
			return settings, nil
		},
	); err != nil {
		return err
	}

	s.lock.Lock()
	s.numAddresses = count
	slots := s.slots
	s.slots = nil
	s.lock.Unlock()

	s.timers.stopAll()
	for _, sl := range slots {
		if sl == nil {
			continue
		}
		sl.mu.Lock()
		sl.removed = true
		sl.wallet.Lock()
		sl.mu.Unlock()
	}

	log.Infof("default address count set to %d, reloading accounts", count)
	return s.load(ctx)
}

// Unlock unlocks the account at index. A passphrase protected account gets
// locked again after the configured inactivity timeout, and its addresses
// are stored to check the next passphrases against.
func (s *Service) Unlock(
	ctx context.Context, index uint32, passphrase string,
) error {
	return s.withSlot(index, func(sl *slot) error {
		return s.unlockSlot(ctx, index, sl, passphrase, true)
	})
}

// Lock wipes the keys of the account at index.
func (s *Service) Lock(_ context.Context, index uint32) error {
	if err := s.withSlot(index, func(sl *slot) error {
		sl.wallet.Lock()
		return nil
	}); err != nil {
		return err
	}
	s.timers.cancel(index)
	return nil
}

// IsLocked ...
func (s *Service) IsLocked(_ context.Context, index uint32) (bool, error) {
	var locked bool
	if err := s.withSlot(index, func(sl *slot) error {
		locked = sl.wallet.IsLocked()
		return nil
	}); err != nil {
		return false, err
	}
	return locked, nil
}

// createAccount must be called with the lifecycle mutex held.
func (s *Service) createAccount(
	ctx context.Context, config domain.AccountConfig, passphrase *string,
) (uint32, error) {
	if config.NumAddresses < 1 || config.NumAddresses > s.maxAddresses {
		return 0, ErrInvalidAddressCount
	}

	s.lock.RLock()
	index := s.maxKeyFiles + uint32(len(s.accounts))
	s.lock.RUnlock()

	if err := s.addAccount(ctx, index, config, passphrase); err != nil {
		return 0, err
	}
	if err := s.updateAccounts(ctx, func(accounts []domain.AccountConfig) error {
		return nil
	}, config); err != nil {
		s.drop(index)
		return 0, err
	}

	log.WithFields(log.Fields{
		"account":  index,
		"key_file": config.KeyFile,
		"name":     config.Name,
	}).Info("account created")
	return index, nil
}

// updateAccounts applies updateFn to a copy of the created accounts, with
// extra appended, and persists the result. The caller must hold the
// lifecycle mutex.
func (s *Service) updateAccounts(
	ctx context.Context, updateFn func(accounts []domain.AccountConfig) error,
	extra ...domain.AccountConfig,
) error {
	s.lock.RLock()
	accounts := make([]domain.AccountConfig, 0, len(s.accounts)+len(extra))
	accounts = append(accounts, s.accounts...)
	s.lock.RUnlock()

	accounts = append(accounts, extra...)
	if err := updateFn(accounts); err != nil {
		return err
	}

	if err := s.repo.SettingsRepository().UpdateSettings(
		ctx, func(settings *domain.Settings) (*domain.Settings, error) {
			settings.Accounts = accounts
			return settings, nil
		},
	); err != nil {
		return err
	}

	s.lock.Lock()
	s.accounts = accounts
	s.lock.Unlock()
	return nil
}

// unlockSlot unlocks the wallet of sl. The caller must hold the slot mutex
// unless sl is not installed yet.
func (s *Service) unlockSlot(
	ctx context.Context, index uint32, sl *slot, passphrase string,
	withTimer bool,
) error {
	w := sl.wallet
	if err := w.Unlock(passphrase); err != nil {
		s.metrics.unlockFailures.Inc()
		return err
	}

	config := w.Config()
	if !config.WithPassphrase {
		return nil
	}

	if withTimer && s.lockTimeout > 0 {
		s.timers.arm(index, s.lockTimeout, func() {
			sl.mu.Lock()
			sl.wallet.Lock()
			sl.mu.Unlock()

			s.metrics.autoLocks.Inc()
			log.Infof("account %d locked after inactivity", index)
		})
	}

	if err := s.repo.AddressBookRepository().SaveAddresses(
		ctx, config.Fingerprint, config.Index, w.Addresses(),
	); err != nil {
		log.WithError(err).Errorf("failed to store addresses of account %d", index)
	}
	return nil
}
