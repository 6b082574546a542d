package wallet

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// KeyPair holds the secret scalar and compressed public key of one address.
type KeyPair struct {
	PrivateKey *btcec.PrivateKey
	PublicKey  []byte
}

// NewKeyPair returns the key pair for the given 32 byte secret.
func NewKeyPair(secret [32]byte) (*KeyPair, error) {
	prvkey, pubkey := btcec.PrivKeyFromBytes(secret[:])
	if prvkey.Key.IsZero() {
		return nil, ErrInvalidChildKey
	}
	return &KeyPair{
		PrivateKey: prvkey,
		PublicKey:  pubkey.SerializeCompressed(),
	}, nil
}

// Address returns the address controlled by the key pair.
func (k *KeyPair) Address() Address {
	return NewAddressFromPublicKey(k.PublicKey)
}

// Zero overwrites the key material in place.
func (k *KeyPair) Zero() {
	if k.PrivateKey != nil {
		k.PrivateKey.Zero()
	}
	for i := range k.PublicKey {
		k.PublicKey[i] = 0
	}
}

// DeriveAddress derives the key pair for the address at the given index of
// an account key tree.
func DeriveAddress(account ExtendedKey, index uint32) (*KeyPair, error) {
	child := account.Child(index)
	defer child.Zero()
	return NewKeyPair(child.Secret)
}

// DeriveFarmerKey derives the farmer key from the seed stretched with the
// farmer salt. The farmer tree is independent from any passphrase.
func DeriveFarmerKey(seed chainhash.Hash) (*KeyPair, error) {
	if seed == (chainhash.Hash{}) {
		return nil, ErrNullSeed
	}
	root := Stretch(seed, farmerSalt())
	defer root.Zero()
	child := root.Child(0)
	defer child.Zero()
	return NewKeyPair(child.Secret)
}

func farmerSalt() chainhash.Hash {
	return chainhash.DoubleHashH([]byte(farmerLabel))
}
