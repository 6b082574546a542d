package dbbadger_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/hdwallet/internal/core/domain"
	"github.com/tdex-network/hdwallet/internal/core/ports"
	dbbadger "github.com/tdex-network/hdwallet/internal/infrastructure/storage/db/badger"
)

var ctx = context.Background()

func TestRepoManager(t *testing.T) {
	repoManager, err := dbbadger.NewRepoManager("", nil)
	require.NoError(t, err)
	defer repoManager.Close()

	t.Run("settings", testSettings(repoManager))
	t.Run("address book", testAddressBook(repoManager))
	t.Run("tx log", testTxLog(repoManager))
}

func TestRepoManagerOnDisk(t *testing.T) {
	dir := t.TempDir()
	token := newAddress("token")

	repoManager, err := dbbadger.NewRepoManager(dir, nil)
	require.NoError(t, err)
	err = repoManager.SettingsRepository().UpdateSettings(
		ctx, func(s *domain.Settings) (*domain.Settings, error) {
			s.TokenWhitelist = append(s.TokenWhitelist, token)
			return s, nil
		},
	)
	require.NoError(t, err)
	repoManager.Close()

	repoManager, err = dbbadger.NewRepoManager(dir, nil)
	require.NoError(t, err)
	defer repoManager.Close()

	settings, err := repoManager.SettingsRepository().GetSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.Address{token}, settings.TokenWhitelist)
}

func testSettings(repoManager ports.RepoManager) func(*testing.T) {
	return func(t *testing.T) {
		repo := repoManager.SettingsRepository()

		settings, err := repo.GetSettings(ctx)
		require.NoError(t, err)
		require.Empty(t, settings.Accounts)
		require.Nil(t, settings.NumAddresses)

		numAddresses := uint32(42)
		account := domain.AccountConfig{
			Index:          100,
			KeyFile:        "wallet_abcd.dat",
			Name:           "savings",
			NumAddresses:   10,
			WithPassphrase: true,
			Fingerprint:    "abcd0123",
		}
		err = repo.UpdateSettings(ctx, func(s *domain.Settings) (*domain.Settings, error) {
			s.NumAddresses = &numAddresses
			s.Accounts = append(s.Accounts, account)
			return s, nil
		})
		require.NoError(t, err)

		settings, err = repo.GetSettings(ctx)
		require.NoError(t, err)
		require.Equal(t, &numAddresses, settings.NumAddresses)
		require.Equal(t, []domain.AccountConfig{account}, settings.Accounts)

		expectedErr := fmt.Errorf("something went wrong")
		err = repo.UpdateSettings(ctx, func(s *domain.Settings) (*domain.Settings, error) {
			s.Accounts = nil
			return nil, expectedErr
		})
		require.ErrorIs(t, err, expectedErr)

		settings, err = repo.GetSettings(ctx)
		require.NoError(t, err)
		require.Len(t, settings.Accounts, 1)
	}
}

func testAddressBook(repoManager ports.RepoManager) func(*testing.T) {
	return func(t *testing.T) {
		repo := repoManager.AddressBookRepository()

		addresses, err := repo.GetAddresses(ctx, "abcd0123", 100)
		require.NoError(t, err)
		require.Empty(t, addresses)

		addresses = []domain.Address{newAddress("a"), newAddress("b")}
		require.NoError(t, repo.SaveAddresses(ctx, "abcd0123", 100, addresses))

		got, err := repo.GetAddresses(ctx, "abcd0123", 100)
		require.NoError(t, err)
		require.Equal(t, addresses, got)

		got, err = repo.GetAddresses(ctx, "abcd0123", 101)
		require.NoError(t, err)
		require.Empty(t, got)

		addresses = addresses[:1]
		require.NoError(t, repo.SaveAddresses(ctx, "abcd0123", 100, addresses))
		got, err = repo.GetAddresses(ctx, "abcd0123", 100)
		require.NoError(t, err)
		require.Equal(t, addresses, got)
	}
}

func testTxLog(repoManager ports.RepoManager) func(*testing.T) {
	return func(t *testing.T) {
		repo := repoManager.TxLogRepository()
		owner := newAddress("owner")
		other := newAddress("other")

		now := time.Now().Unix()
		for i := 0; i < 5; i++ {
			tx := domain.NewTransaction()
			tx.ID = chainhash.DoubleHashH([]byte(fmt.Sprintf("tx%d", i)))
			tx.Note = domain.TxNoteTransfer
			tx.Operations = []domain.Operation{
				domain.NewExecuteOp(other, "trade", []interface{}{"0x10", nil}, nil),
			}
			err := repo.AddEntry(ctx, owner, domain.TxLogEntry{Time: now, Tx: tx})
			require.NoError(t, err)
		}
		err := repo.AddEntry(ctx, other, domain.TxLogEntry{Time: now, Tx: domain.NewTransaction()})
		require.NoError(t, err)

		err = repo.AddEntry(ctx, owner, domain.TxLogEntry{Time: now})
		require.ErrorIs(t, err, domain.ErrInvalidArgument)

		entries, err := repo.GetLastEntries(ctx, owner, 3)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		require.Equal(t, chainhash.DoubleHashH([]byte("tx4")), entries[0].Tx.ID)
		require.Equal(t, chainhash.DoubleHashH([]byte("tx2")), entries[2].Tx.ID)
		require.Equal(t, domain.TxNoteTransfer, entries[0].Tx.Note)
		require.Equal(t, "trade", entries[0].Tx.Operations[0].Method)

		entries, err = repo.GetLastEntries(ctx, owner, 0)
		require.NoError(t, err)
		require.Len(t, entries, 5)

		entries, err = repo.GetLastEntries(ctx, newAddress("nobody"), 10)
		require.NoError(t, err)
		require.Empty(t, entries)

		sender := newAddress("sender")
		for _, ts := range []int64{3, 0, 4, 1, 2} {
			err := repo.AddEntry(ctx, sender, domain.TxLogEntry{
				Time: ts, Tx: domain.NewTransaction(),
			})
			require.NoError(t, err)
		}

		entries, err = repo.GetLastEntries(ctx, sender, 2)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		require.Equal(t, int64(4), entries[0].Time)
		require.Equal(t, int64(3), entries[1].Time)

		entries, err = repo.GetLastEntries(ctx, sender, 0)
		require.NoError(t, err)
		require.Len(t, entries, 5)
		for i := 1; i < len(entries); i++ {
			require.Greater(t, entries[i-1].Time, entries[i].Time)
		}
	}
}

func newAddress(label string) domain.Address {
	return domain.Address(chainhash.DoubleHashH([]byte(label)))
}
