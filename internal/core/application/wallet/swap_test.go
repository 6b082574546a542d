package wallet_test

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/hdwallet/internal/core/application/wallet"
	"github.com/tdex-network/hdwallet/internal/core/domain"
)

func TestSwap(t *testing.T) {
	env := newTestEnv(t)
	svc := env.start(t)

	index, err := svc.ImportWallet(
		ctx, domain.AccountConfig{}, domain.KeyFile{Seed: testSeed}, nil,
	)
	require.NoError(t, err)
	addr0, err := svc.GetAddress(ctx, index, 0)
	require.NoError(t, err)

	mockIdleLedger(env.ledger, 100, map[domain.BalanceKey]uint64{
		{Address: addr0, Currency: domain.NativeCurrency}: 10000000,
		{Address: addr0, Currency: testToken}:             5000,
	})
	env.ledger.On("AddTransaction", mock.Anything, true).Return(nil)

	pool := domain.Address(chainhash.DoubleHashH([]byte("pool")))
	unknown := domain.Address(chainhash.DoubleHashH([]byte("unknown")))
	env.ledger.On("GetSwapInfo", pool).Return(&domain.SwapInfo{
		Address: pool,
		Tokens:  [2]domain.Address{domain.NativeCurrency, testToken},
	}, nil)
	env.ledger.On("GetSwapInfo", unknown).Return(nil, nil)

	t.Run("trade", func(t *testing.T) {
		minTrade := uint64(50)
		tx, err := svc.SwapTrade(
			ctx, index, pool, 100, testToken, &minTrade, 20,
			domain.DefaultSpendOptions(),
		)
		require.NoError(t, err)
		require.Equal(t, domain.TxNoteTrade, tx.Note)
		require.Len(t, tx.Operations, 1)

		op := tx.Operations[0]
		require.Equal(t, domain.OpDeposit, op.Kind)
		require.Equal(t, "trade", op.Method)
		require.Equal(t, uint64(100), op.Amount)
		require.Equal(t, testToken, op.Currency)
		require.Equal(t, []interface{}{1, addr0.String(), uint64(50), 20}, op.Args)

		funded := uint64(0)
		for _, in := range tx.Inputs {
			if in.Currency == testToken {
				funded += in.Amount
			}
		}
		require.Equal(t, uint64(100), funded)
	})

	t.Run("add_liquid", func(t *testing.T) {
		tx, err := svc.SwapAddLiquid(
			ctx, index, pool, [2]uint64{1000, 0}, 2, domain.DefaultSpendOptions(),
		)
		require.NoError(t, err)
		require.Len(t, tx.Operations, 1)
		require.Equal(t, domain.NativeCurrency, tx.Operations[0].Currency)
		require.Equal(t, []interface{}{0, uint32(2)}, tx.Operations[0].Args)

		tx, err = svc.SwapAddLiquid(
			ctx, index, pool, [2]uint64{1000, 200}, 0, domain.DefaultSpendOptions(),
		)
		require.NoError(t, err)
		require.Len(t, tx.Operations, 2)
		require.Equal(t, testToken, tx.Operations[1].Currency)
		require.Equal(t, addr0, *tx.Operations[1].User)
		require.True(t, tx.IsSigned())
	})

	t.Run("rem_liquid", func(t *testing.T) {
		tx, err := svc.SwapRemLiquid(
			ctx, index, pool, [2]uint64{10, 0}, domain.DefaultSpendOptions(),
		)
		require.NoError(t, err)
		require.Equal(t, domain.TxNoteWithdraw, tx.Note)
		require.Len(t, tx.Operations, 2)
		require.Equal(t, "payout", tx.Operations[0].Method)
		require.Equal(t, "rem_liquid", tx.Operations[1].Method)
		for _, op := range tx.Operations {
			require.NotEqual(t, uint16(domain.NoSolution), op.Solution)
		}
	})

	t.Run("failing", func(t *testing.T) {
		other := domain.Address(chainhash.DoubleHashH([]byte("other token")))

		tests := []struct {
			name        string
			call        func() error
			expectedErr error
		}{
			{
				name: "trade_unknown_currency",
				call: func() error {
					_, err := svc.SwapTrade(
						ctx, index, pool, 100, other, nil, 1, domain.DefaultSpendOptions(),
					)
					return err
				},
				expectedErr: wallet.ErrInvalidSwapCurrency,
			},
			{
				name: "trade_unknown_pool",
				call: func() error {
					_, err := svc.SwapTrade(
						ctx, index, unknown, 100, testToken, nil, 1,
						domain.DefaultSpendOptions(),
					)
					return err
				},
				expectedErr: wallet.ErrSwapNotFound,
			},
			{
				name: "add_zero_amounts",
				call: func() error {
					_, err := svc.SwapAddLiquid(
						ctx, index, pool, [2]uint64{}, 0, domain.DefaultSpendOptions(),
					)
					return err
				},
				expectedErr: wallet.ErrZeroAmount,
			},
			{
				name: "rem_zero_address",
				call: func() error {
					_, err := svc.SwapRemLiquid(
						ctx, index, domain.Address{}, [2]uint64{1, 1},
						domain.DefaultSpendOptions(),
					)
					return err
				},
				expectedErr: wallet.ErrZeroAddress,
			},
			{
				name: "trade_insufficient_funds",
				call: func() error {
					_, err := svc.SwapTrade(
						ctx, index, pool, 1000000, testToken, nil, 1,
						domain.DefaultSpendOptions(),
					)
					return err
				},
				expectedErr: domain.ErrInsufficientFunds,
			},
		}

		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				require.ErrorIs(t, tt.call(), tt.expectedErr)
			})
		}
	})
}
