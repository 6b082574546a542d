package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/hdwallet/internal/config"
	"github.com/tdex-network/hdwallet/internal/core/domain"
)

func TestInitConfig(t *testing.T) {
	datadir := t.TempDir()
	token := domain.Address(chainhash.DoubleHashH([]byte("token")))

	t.Setenv("HDWALLET_DATADIR", datadir)
	t.Setenv("HDWALLET_FEE_RATIO", "1.5")
	t.Setenv("HDWALLET_TOKEN_WHITELIST", token.String())
	t.Setenv("HDWALLET_OFFER_BINARY", token.String())
	t.Setenv("HDWALLET_LOCK_TIMEOUT", "30s")

	require.NoError(t, config.InitConfig())

	require.Equal(t, datadir, config.GetDatadir())
	require.Equal(t, uint64(1536), config.GetFeeRatio())
	require.Equal(t, []domain.Address{token}, config.GetTokenWhitelist())
	require.Equal(t, 30*time.Second, config.GetDuration(config.LockTimeoutKey))
	require.Equal(t, domain.DefaultNumAddresses, config.GetInt(config.NumAddressesKey))

	params := config.GetChainParams()
	require.Equal(t, "mainnet", params.Network)
	require.Equal(t, token, params.OfferBinary)
	require.True(t, params.PlotNFTBinary.IsZero())

	for _, dir := range []string{config.DbLocation, config.KeyLocation, config.LogsLocation} {
		info, err := os.Stat(filepath.Join(datadir, dir))
		require.NoError(t, err)
		require.True(t, info.IsDir())
	}
}

func TestInitConfigFails(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"fee ratio below 1x", "HDWALLET_FEE_RATIO", "0.5"},
		{"malformed fee ratio", "HDWALLET_FEE_RATIO", "fast"},
		{"malformed token", "HDWALLET_TOKEN_WHITELIST", "not-an-address"},
		{"too many addresses", "HDWALLET_NUM_ADDRESSES", "100000"},
		{"zero addresses", "HDWALLET_NUM_ADDRESSES", "0"},
		{"malformed binary", "HDWALLET_PLOTNFT_BINARY", "xyz"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HDWALLET_DATADIR", t.TempDir())
			t.Setenv(tt.key, tt.value)
			require.Error(t, config.InitConfig())
		})
	}
}
