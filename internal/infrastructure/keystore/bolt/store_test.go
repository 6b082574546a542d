package boltkeystore_test

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/hdwallet/internal/core/domain"
	"github.com/tdex-network/hdwallet/internal/core/ports"
	boltkeystore "github.com/tdex-network/hdwallet/internal/infrastructure/keystore/bolt"
)

func TestKeyStore(t *testing.T) {
	datadir := t.TempDir()
	seed := chainhash.DoubleHashH([]byte("seed"))
	fingerprint := "0a1b2c3d"

	store, err := boltkeystore.NewKeyStore(datadir, "")
	require.NoError(t, err)

	_, err = store.GetKeyFile("wallet.dat")
	require.ErrorIs(t, err, ports.ErrKeyFileNotFound)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.PutKeyFile("wallet.dat", domain.KeyFile{Seed: seed}))
	require.NoError(t, store.PutKeyFile("wallet_0a1b2c3d.dat", domain.KeyFile{
		Seed: seed, Fingerprint: &fingerprint,
	}))
	require.NoError(t, store.Close())

	store, err = boltkeystore.NewKeyStore(datadir, "")
	require.NoError(t, err)
	defer store.Close()

	kf, err := store.GetKeyFile("wallet.dat")
	require.NoError(t, err)
	require.Equal(t, seed, kf.Seed)
	require.Nil(t, kf.Fingerprint)

	kf, err = store.GetKeyFile("wallet_0a1b2c3d.dat")
	require.NoError(t, err)
	require.Equal(t, seed, kf.Seed)
	require.Equal(t, &fingerprint, kf.Fingerprint)

	require.NoError(t, store.DeleteKeyFile("wallet.dat"))
	_, err = store.GetKeyFile("wallet.dat")
	require.ErrorIs(t, err, ports.ErrKeyFileNotFound)

	tests := []struct {
		name string
		run  func() error
		err  error
	}{
		{
			"zero seed",
			func() error { return store.PutKeyFile("zero.dat", domain.KeyFile{}) },
			domain.ErrZeroSeed,
		},
		{
			"missing name on put",
			func() error { return store.PutKeyFile("", domain.KeyFile{Seed: seed}) },
			boltkeystore.ErrMissingKeyFileName,
		},
		{
			"missing name on delete",
			func() error { return store.DeleteKeyFile("") },
			boltkeystore.ErrMissingKeyFileName,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.run(), tt.err)
		})
	}
}
