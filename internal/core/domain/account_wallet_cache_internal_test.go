package domain

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"
)

func TestUpdateCacheDeductions(t *testing.T) {
	addr := Address(chainhash.DoubleHashH([]byte("address")))
	key := BalanceKey{Address: addr, Currency: NativeCurrency}
	pendingID := chainhash.DoubleHashH([]byte("pending"))

	tests := []struct {
		name      string
		balance   uint64
		reserved  uint64
		pending   uint64
		spendable uint64
	}{
		{"reserved and pending", 100, 20, 30, 50},
		{"clamped at zero", 100, 80, 30, 0},
		{"nothing held back", 100, 0, 0, 100},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewAccountWallet(
				chainhash.DoubleHashH([]byte("seed")),
				AccountConfig{NumAddresses: 1},
				DefaultChainParams(),
			)
			require.NoError(t, err)

			if tt.reserved > 0 {
				w.reservedMap[key] = tt.reserved
			}
			if tt.pending > 0 {
				w.pendingMap[pendingID] = map[BalanceKey]uint64{key: tt.pending}
				w.pendingTx[pendingID] = 1000
			}

			w.UpdateCache(map[BalanceKey]uint64{key: tt.balance}, nil, 10)
			require.Equal(t, tt.spendable, w.Balances()[key])

			w.ReleaseAll()
			require.Empty(t, w.ReservedBalances())
		})
	}
}
