package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/tdex-network/hdwallet/internal/core/domain"
	"github.com/tdex-network/hdwallet/pkg/wallet"
)

const (
	// DatadirKey is the local data directory where key files, databases and
	// logs are stored
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// NetworkKey is the network tag every transaction is signed for
	NetworkKey = "NETWORK"
	// KeyFilesKey is the list of legacy key files loaded in the first slots
	KeyFilesKey = "KEY_FILES"
	// NumAddressesKey is the default number of addresses derived per account
	NumAddressesKey = "NUM_ADDRESSES"
	// MaxAddressesKey is the max number of addresses an account can derive
	MaxAddressesKey = "MAX_ADDRESSES"
	// MaxKeyFilesKey is the number of slots reserved to legacy key files.
	// Created accounts are loaded starting from this slot
	MaxKeyFilesKey = "MAX_KEY_FILES"
	// CacheTTLKey is the duration after which balances are fetched again from
	// the ledger
	CacheTTLKey = "CACHE_TTL"
	// DefaultExpireKey is the number of blocks after which a transaction
	// expires if not specified otherwise
	DefaultExpireKey = "DEFAULT_EXPIRE"
	// LockTimeoutKey is the inactivity duration after which a passphrase
	// protected account is locked again. Zero disables auto-locking
	LockTimeoutKey = "LOCK_TIMEOUT"
	// TokenWhitelistKey is the list of recognized token addresses
	TokenWhitelistKey = "TOKEN_WHITELIST"
	// FeeRatioKey is the fee multiplier applied to every transaction, ie. 1.5
	FeeRatioKey = "FEE_RATIO"
	// LedgerRateLimitKey is the max number of ledger requests per second.
	// Zero means unlimited
	LedgerRateLimitKey = "LEDGER_RATE_LIMIT"
	// OfferBinaryKey is the address of the offer contract binary
	OfferBinaryKey = "OFFER_BINARY"
	// SwapBinaryKey is the address of the swap contract binary
	SwapBinaryKey = "SWAP_BINARY"
	// PlotNFTBinaryKey is the address of the plot NFT contract binary
	PlotNFTBinaryKey = "PLOTNFT_BINARY"

	DbLocation   = "db"
	KeyLocation  = "keys"
	LogsLocation = "logs"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("hdwallet", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("HDWALLET")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(NetworkKey, domain.DefaultChainParams().Network)
	vip.SetDefault(KeyFilesKey, []string{})
	vip.SetDefault(NumAddressesKey, domain.DefaultNumAddresses)
	vip.SetDefault(MaxAddressesKey, domain.DefaultMaxAddresses)
	vip.SetDefault(MaxKeyFilesKey, domain.DefaultMaxKeyFiles)
	vip.SetDefault(CacheTTLKey, 3*time.Second)
	vip.SetDefault(DefaultExpireKey, domain.DefaultExpireHeights)
	vip.SetDefault(LockTimeoutKey, 10*time.Minute)
	vip.SetDefault(TokenWhitelistKey, []string{})
	vip.SetDefault(FeeRatioKey, "1")
	vip.SetDefault(LedgerRateLimitKey, 0)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetUint32(key string) uint32 {
	return vip.GetUint32(key)
}

func GetStringSlice(key string) []string {
	return vip.GetStringSlice(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetFeeRatio returns the configured fee multiplier in units of
// domain.FeeRatioUnit.
func GetFeeRatio() uint64 {
	ratio, _ := parseFeeRatio(GetString(FeeRatioKey))
	return ratio
}

// GetTokenWhitelist returns the configured token addresses.
func GetTokenWhitelist() []domain.Address {
	tokens, _ := parseAddresses(GetStringSlice(TokenWhitelistKey))
	return tokens
}

// GetChainParams returns the default chain params with network and
// contract binaries overridden by config.
func GetChainParams() *domain.ChainParams {
	params := domain.DefaultChainParams()
	params.Network = GetString(NetworkKey)
	for key, binary := range map[string]*domain.Address{
		OfferBinaryKey:   &params.OfferBinary,
		SwapBinaryKey:    &params.SwapBinary,
		PlotNFTBinaryKey: &params.PlotNFTBinary,
	} {
		if s := GetString(key); s != "" {
			addr, _ := wallet.ParseAddress(s)
			*binary = addr
		}
	}
	return params
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	if len(GetString(NetworkKey)) <= 0 {
		return fmt.Errorf("missing network")
	}

	numAddresses := GetInt(NumAddressesKey)
	maxAddresses := GetInt(MaxAddressesKey)
	if numAddresses < 1 {
		return fmt.Errorf("%s must be positive", NumAddressesKey)
	}
	if numAddresses > maxAddresses {
		return fmt.Errorf("%s must not exceed %s", NumAddressesKey, MaxAddressesKey)
	}

	if len(GetStringSlice(KeyFilesKey)) > GetInt(MaxKeyFilesKey) {
		return fmt.Errorf("too many key files, max is %d", GetInt(MaxKeyFilesKey))
	}

	if GetDuration(CacheTTLKey) < 0 {
		return fmt.Errorf("%s must not be negative", CacheTTLKey)
	}
	if GetDuration(LockTimeoutKey) < 0 {
		return fmt.Errorf("%s must not be negative", LockTimeoutKey)
	}
	if GetInt(LedgerRateLimitKey) < 0 {
		return fmt.Errorf("%s must not be negative", LedgerRateLimitKey)
	}

	if _, err := parseFeeRatio(GetString(FeeRatioKey)); err != nil {
		return err
	}

	if _, err := parseAddresses(GetStringSlice(TokenWhitelistKey)); err != nil {
		return fmt.Errorf("invalid %s: %s", TokenWhitelistKey, err)
	}

	for _, key := range []string{OfferBinaryKey, SwapBinaryKey, PlotNFTBinaryKey} {
		if s := GetString(key); s != "" {
			if _, err := wallet.ParseAddress(s); err != nil {
				return fmt.Errorf("invalid %s: %s", key, err)
			}
		}
	}

	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	for _, dir := range []string{DbLocation, KeyLocation, LogsLocation} {
		if err := makeDirectoryIfNotExists(filepath.Join(datadir, dir)); err != nil {
			return err
		}
	}
	return nil
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0700)
	}
	return nil
}

func parseFeeRatio(s string) (uint64, error) {
	ratio, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", FeeRatioKey, err)
	}
	if ratio.LessThan(decimal.NewFromInt(1)) {
		return 0, fmt.Errorf("%s must be equal or greater than 1", FeeRatioKey)
	}
	units := ratio.Mul(decimal.NewFromInt(domain.FeeRatioUnit)).Floor()
	if units.GreaterThan(decimal.NewFromInt(1<<32)) {
		return 0, fmt.Errorf("%s is too large", FeeRatioKey)
	}
	return uint64(units.IntPart()), nil
}

func parseAddresses(list []string) ([]domain.Address, error) {
	addresses := make([]domain.Address, 0, len(list))
	for _, s := range list {
		addr, err := wallet.ParseAddress(s)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, addr)
	}
	return addresses, nil
}
