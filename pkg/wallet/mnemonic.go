package wallet

import (
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/vulpemventures/go-bip39"
)

type NewMnemonicOpts struct {
	EntropySize int
}

func (o NewMnemonicOpts) validate() error {
	if o.EntropySize > 0 {
		if o.EntropySize < 128 || o.EntropySize > 256 || o.EntropySize%32 != 0 {
			return ErrInvalidEntropySize
		}
	}
	if o.EntropySize < 0 {
		return ErrInvalidEntropySize
	}
	return nil
}

// NewMnemonic returns a new mnemonic as a list of words
func NewMnemonic(opts NewMnemonicOpts) ([]string, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.EntropySize == 0 {
		opts.EntropySize = 256
	}

	return generateMnemonic(opts.EntropySize)
}

// SeedFromMnemonic returns the 256-bit seed encoded by a 24 words mnemonic.
// The mnemonic is the entropy itself, no BIP39 salting is involved.
func SeedFromMnemonic(mnemonic []string) (chainhash.Hash, error) {
	if len(mnemonic) <= 0 {
		return chainhash.Hash{}, ErrNullMnemonic
	}
	m := strings.Join(mnemonic, " ")
	if !bip39.IsMnemonicValid(m) {
		return chainhash.Hash{}, ErrInvalidMnemonic
	}
	entropy, err := bip39.EntropyFromMnemonic(m)
	if err != nil {
		return chainhash.Hash{}, ErrInvalidMnemonic
	}
	if len(entropy) != chainhash.HashSize {
		return chainhash.Hash{}, ErrInvalidSeedMnemonic
	}

	var seed chainhash.Hash
	copy(seed[:], entropy)
	if seed == (chainhash.Hash{}) {
		return chainhash.Hash{}, ErrNullSeed
	}
	return seed, nil
}

// MnemonicFromSeed is the inverse of SeedFromMnemonic.
func MnemonicFromSeed(seed chainhash.Hash) ([]string, error) {
	if seed == (chainhash.Hash{}) {
		return nil, ErrNullSeed
	}
	mnemonic, err := bip39.NewMnemonic(seed[:])
	if err != nil {
		return nil, err
	}
	return strings.Split(mnemonic, " "), nil
}

func generateMnemonic(entropySize int) ([]string, error) {
	entropy, err := bip39.NewEntropy(entropySize)
	if err != nil {
		return nil, err
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, err
	}
	return strings.Split(mnemonic, " "), nil
}
