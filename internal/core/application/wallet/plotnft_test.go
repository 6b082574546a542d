package wallet_test

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/hdwallet/internal/core/application/wallet"
	"github.com/tdex-network/hdwallet/internal/core/domain"
)

func TestPlotNFT(t *testing.T) {
	env := newTestEnv(t)
	env.params = domain.DefaultChainParams()
	env.params.PlotNFTBinary = domain.Address(chainhash.DoubleHashH([]byte("plot nft binary")))
	svc := env.start(t)

	index, err := svc.ImportWallet(
		ctx, domain.AccountConfig{}, domain.KeyFile{Seed: testSeed}, nil,
	)
	require.NoError(t, err)
	addresses, err := svc.GetAllAddresses(ctx, int(index))
	require.NoError(t, err)

	mockIdleLedger(env.ledger, 100, map[domain.BalanceKey]uint64{
		{Address: addresses[0], Currency: domain.NativeCurrency}: 10000000,
	})
	env.ledger.On("AddTransaction", mock.Anything, true).Return(nil)

	nft := domain.Address(chainhash.DoubleHashH([]byte("plot nft")))
	unknown := domain.Address(chainhash.DoubleHashH([]byte("not a plot nft")))
	env.ledger.On("GetPlotNFTInfo", nft).
		Return(&domain.PlotNFTInfo{Address: nft, Name: "farm", Owner: addresses[1]}, nil)
	env.ledger.On("GetPlotNFTInfo", unknown).Return(nil, nil)

	t.Run("create", func(t *testing.T) {
		owner := uint32(1)
		tx, err := svc.PlotNFTCreate(ctx, index, "farm", &owner, domain.DefaultSpendOptions())
		require.NoError(t, err)
		require.Equal(t, domain.TxNoteDeploy, tx.Note)
		require.NotNil(t, tx.Deploy)
		require.Equal(t, env.params.PlotNFTBinary, tx.Deploy.Binary)
		require.Equal(t, "farm", tx.Deploy.Name)
		require.Equal(t, addresses[1].String(), tx.Deploy.InitArgs[0])
		require.True(t, tx.IsSigned())

		tx, err = svc.PlotNFTCreate(ctx, index, "default", nil, domain.DefaultSpendOptions())
		require.NoError(t, err)
		require.Equal(t, addresses[0].String(), tx.Deploy.InitArgs[0])
	})

	t.Run("exec", func(t *testing.T) {
		owner, err := svc.GetPlotNFTOwner(ctx, nft)
		require.NoError(t, err)
		require.Equal(t, addresses[1], owner)

		tx, err := svc.PlotNFTExec(
			ctx, nft, "lock", []interface{}{}, domain.DefaultSpendOptions(),
		)
		require.NoError(t, err)
		require.Len(t, tx.Operations, 1)

		op := tx.Operations[0]
		require.Equal(t, "lock", op.Method)
		require.Equal(t, nft, op.Address)
		require.NotNil(t, op.User)
		require.Equal(t, addresses[1], *op.User)
		require.NotEqual(t, uint16(domain.NoSolution), op.Solution)
		require.True(t, tx.IsSigned())
	})

	t.Run("not_a_plot_nft", func(t *testing.T) {
		_, err := svc.GetPlotNFTOwner(ctx, unknown)
		require.ErrorIs(t, err, wallet.ErrNotPlotNFT)

		_, err = svc.PlotNFTExec(ctx, unknown, "lock", nil, domain.DefaultSpendOptions())
		require.ErrorIs(t, err, wallet.ErrNotPlotNFT)
	})
}
