package domain

import (
	"math"
	"math/bits"
	"sort"
)

// AccountConfig tells how to rebuild the wallet of an account slot.
type AccountConfig struct {
	Index          uint32
	KeyFile        string
	Name           string
	NumAddresses   uint32
	WithPassphrase bool
	Fingerprint    string
	Hidden         bool
}

// AccountInfo is the public view of a loaded account.
type AccountInfo struct {
	AccountConfig
	Slot    uint32
	Address *Address
}

// KeyFile is the persisted seed of one or more accounts.
type KeyFile struct {
	Seed        Hash
	Fingerprint *string
}

// Settings are the persisted wallet-wide preferences.
type Settings struct {
	// NumAddresses overrides the configured default address count of
	// key-file accounts when set.
	NumAddresses *uint32
	// Accounts holds the configs of explicitly created accounts, in slot order
	// starting from the max number of key files.
	Accounts       []AccountConfig
	TokenWhitelist []Address
}

// BalanceKey indexes balances by address and currency.
type BalanceKey struct {
	Address  Address
	Currency Address
}

// Less orders keys by address, then currency.
func (k BalanceKey) Less(other BalanceKey) bool {
	if c := k.Address.Compare(other.Address); c != 0 {
		return c < 0
	}
	return k.Currency.Compare(other.Currency) < 0
}

// Balance is the breakdown of a currency amount held by an account.
type Balance struct {
	Spendable   uint64
	Reserved    uint64
	Locked      uint64
	Total       uint64
	IsValidated bool
}

// AddressAmount is an amount sent to an address.
type AddressAmount struct {
	Address Address
	Amount  uint64
}

// CurrencyAmount ...
type CurrencyAmount struct {
	Currency Address
	Amount   uint64
}

// SortedBalanceKeys returns the keys of m in ascending order.
func SortedBalanceKeys(m map[BalanceKey]uint64) []BalanceKey {
	keys := make([]BalanceKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// SortedAddresses returns the keys of m in ascending order.
func SortedAddresses(m map[Address]uint64) []Address {
	keys := make([]Address, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Compare(keys[j]) < 0 })
	return keys
}

// AddAmounts returns a+b, or ErrAmountOverflow if the sum wraps.
func AddAmounts(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrAmountOverflow
	}
	return sum, nil
}

func saturatedAdd(a, b uint64) uint64 {
	if sum, err := AddAmounts(a, b); err == nil {
		return sum
	}
	return math.MaxUint64
}

// addTo adds amount to m[key].
func addTo[K comparable](m map[K]uint64, key K, amount uint64) error {
	sum, err := AddAmounts(m[key], amount)
	if err != nil {
		return err
	}
	m[key] = sum
	return nil
}

func clampedSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
