package domain

import (
	"github.com/tdex-network/hdwallet/pkg/wallet"
)

// IsLocked returns whether some known address misses its key pair.
func (w *AccountWallet) IsLocked() bool {
	return len(w.addresses) == 0 || len(w.keys) < len(w.addresses)
}

// Lock wipes every key pair. Addresses remain known.
func (w *AccountWallet) Lock() {
	for _, key := range w.keys {
		key.Zero()
	}
	w.keys = nil
}

// Unlock derives the key pairs of the configured addresses. With passphrase
// protection the fingerprint is checked before any derivation. The wallet is
// left untouched on failure.
func (w *AccountWallet) Unlock(passphrase string) error {
	if w.config.WithPassphrase {
		if wallet.Fingerprint(w.seed, passphrase) != w.config.Fingerprint {
			return ErrInvalidPassphrase
		}
	}

	account := wallet.DeriveAccountKey(w.seed, passphrase, w.config.Index)
	defer account.Zero()

	keys := make([]*wallet.KeyPair, 0, w.config.NumAddresses)
	addresses := make([]Address, 0, w.config.NumAddresses)
	wipe := func() {
		for _, key := range keys {
			key.Zero()
		}
	}

	for i := uint32(0); i < w.config.NumAddresses; i++ {
		key, err := wallet.DeriveAddress(account, i)
		if err != nil {
			wipe()
			return err
		}
		keys = append(keys, key)
		addresses = append(addresses, key.Address())

		if i == 0 && len(w.addresses) > 0 && addresses[0] != w.addresses[0] {
			wipe()
			return ErrInvalidPassphrase
		}
	}

	w.Lock()
	w.keys = keys
	w.setAddresses(addresses)
	return nil
}

// unlockForCall unlocks a locked wallet with opts.Passphrase and returns the
// func that restores the lock state found at entry. Callers must defer it.
func (w *AccountWallet) unlockForCall(opts SpendOptions) (func(), error) {
	if !w.IsLocked() {
		return func() {}, nil
	}
	if opts.Passphrase == nil {
		return nil, ErrLockedAccount
	}
	if err := w.Unlock(*opts.Passphrase); err != nil {
		return nil, err
	}
	return w.Lock, nil
}
