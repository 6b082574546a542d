package domain

import (
	"fmt"

	"github.com/tdex-network/hdwallet/pkg/wallet"
)

// AccountWallet is the wallet of one account slot. It is created locked and
// holds key material only while unlocked.
//
// An AccountWallet is not safe for concurrent use.
type AccountWallet struct {
	seed          Hash
	config        AccountConfig
	params        *ChainParams
	defaultExpire uint32
	farmerPubKey  []byte

	keys      []*wallet.KeyPair
	addresses []Address
	addrIndex map[Address]int

	height             uint32
	balanceMap         map[BalanceKey]uint64
	reservedMap        map[BalanceKey]uint64
	pendingMap         map[Hash]map[BalanceKey]uint64
	pendingTx          map[Hash]uint32
	externalBalanceMap map[Address]uint64
}

// NewAccountWallet returns a locked wallet for the given seed and config.
func NewAccountWallet(
	seed Hash, config AccountConfig, params *ChainParams,
) (*AccountWallet, error) {
	return NewAccountWalletWithAddresses(seed, config, params, nil)
}

// NewAccountWalletWithAddresses returns a locked wallet that already knows
// its addresses. The first one is checked at every unlock.
func NewAccountWalletWithAddresses(
	seed Hash, config AccountConfig, params *ChainParams, addresses []Address,
) (*AccountWallet, error) {
	if seed == (Hash{}) {
		return nil, ErrZeroSeed
	}
	if config.NumAddresses == 0 {
		return nil, fmt.Errorf("%w: number of addresses must be positive", ErrOutOfRange)
	}
	if params == nil {
		params = DefaultChainParams()
	}
	farmerKey, err := wallet.DeriveFarmerKey(seed)
	if err != nil {
		return nil, err
	}
	pubkey := append([]byte(nil), farmerKey.PublicKey...)
	farmerKey.Zero()

	w := &AccountWallet{
		seed:          seed,
		config:        config,
		params:        params,
		defaultExpire: DefaultExpireHeights,
		farmerPubKey:  pubkey,
	}
	w.setAddresses(append([]Address(nil), addresses...))
	w.ResetCache()
	return w, nil
}

// Config ...
func (w *AccountWallet) Config() AccountConfig {
	return w.config
}

// Seed ...
func (w *AccountWallet) Seed() Hash {
	return w.seed
}

// Height returns the ledger height of the last cache update.
func (w *AccountWallet) Height() uint32 {
	return w.height
}

// SetDefaultExpire sets the number of blocks after which completed
// transactions expire when options do not say otherwise.
func (w *AccountWallet) SetDefaultExpire(delta uint32) {
	w.defaultExpire = delta
}

// FarmerKey returns the public farmer key.
func (w *AccountWallet) FarmerKey() []byte {
	return append([]byte(nil), w.farmerPubKey...)
}

// Address returns the address at the given index.
func (w *AccountWallet) Address(index int) (Address, error) {
	if index < 0 || index >= len(w.addresses) {
		return Address{}, ErrAddressIndexOutOfRange
	}
	return w.addresses[index], nil
}

// Addresses returns every known address.
func (w *AccountWallet) Addresses() []Address {
	return append([]Address(nil), w.addresses...)
}

// AddressIndex returns the index of an address of the wallet.
func (w *AccountWallet) AddressIndex(addr Address) (int, error) {
	index, ok := w.addrIndex[addr]
	if !ok {
		return -1, ErrUnknownAddress
	}
	return index, nil
}

// HasAddress ...
func (w *AccountWallet) HasAddress(addr Address) bool {
	_, ok := w.addrIndex[addr]
	return ok
}

// KeyPair returns the key pair of the address at the given index.
func (w *AccountWallet) KeyPair(index int) (*wallet.KeyPair, error) {
	if index < 0 || index >= len(w.addresses) {
		return nil, ErrAddressIndexOutOfRange
	}
	if index >= len(w.keys) {
		return nil, ErrLockedAccount
	}
	return w.keys[index], nil
}

// KeyPairFor returns the key pair of addr, or nil when the address does not
// belong to the wallet.
func (w *AccountWallet) KeyPairFor(addr Address) (*wallet.KeyPair, error) {
	index, ok := w.addrIndex[addr]
	if !ok {
		return nil, nil
	}
	return w.KeyPair(index)
}

func (w *AccountWallet) setAddresses(addresses []Address) {
	w.addresses = addresses
	w.addrIndex = make(map[Address]int, len(addresses))
	for i, addr := range addresses {
		if _, ok := w.addrIndex[addr]; !ok {
			w.addrIndex[addr] = i
		}
	}
}
