package wallet

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"encoding/hex"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/pbkdf2"
)

// ExtendedKey is a 32 byte secret together with the chain code used to derive
// its children.
type ExtendedKey struct {
	Secret    [32]byte
	ChainCode [32]byte
}

// Zero overwrites both secret and chain code.
func (k *ExtendedKey) Zero() {
	for i := range k.Secret {
		k.Secret[i] = 0
	}
	for i := range k.ChainCode {
		k.ChainCode[i] = 0
	}
}

// Child returns the child key at the given index, computed as
// HMAC-SHA512(chain code, secret || index).
func (k ExtendedKey) Child(index uint32) ExtendedKey {
	var buf [36]byte
	copy(buf[:32], k.Secret[:])
	binary.BigEndian.PutUint32(buf[32:], index)

	mac := hmac.New(sha512.New, k.ChainCode[:])
	mac.Write(buf[:])
	sum := mac.Sum(nil)

	var child ExtendedKey
	copy(child.Secret[:], sum[:32])
	copy(child.ChainCode[:], sum[32:])
	return child
}

// PassphraseHash returns the salt used to stretch a seed with the given
// passphrase. The empty passphrase is a valid input.
func PassphraseHash(passphrase string) chainhash.Hash {
	return chainhash.DoubleHashH([]byte(seedLabel + passphrase))
}

// Stretch derives the master key of the account tree from seed and the hash
// of a passphrase.
func Stretch(seed, passphrase chainhash.Hash) ExtendedKey {
	key := pbkdf2.Key(seed[:], passphrase[:], KDFIterations, 64, sha512.New)

	var master ExtendedKey
	copy(master.Secret[:], key[:32])
	copy(master.ChainCode[:], key[32:])
	return master
}

// DeriveChain isolates the account key tree from the master key.
func DeriveChain(master ExtendedKey) ExtendedKey {
	return master.Child(ChainLabel)
}

// DeriveAccount returns the root of the key tree for the given account slot.
func DeriveAccount(chain ExtendedKey, account uint32) ExtendedKey {
	return chain.Child(account)
}

// DeriveAccountKey is a shortcut for stretch, chain and account derivation.
func DeriveAccountKey(
	seed chainhash.Hash, passphrase string, account uint32,
) ExtendedKey {
	master := Stretch(seed, PassphraseHash(passphrase))
	defer master.Zero()
	chain := DeriveChain(master)
	defer chain.Zero()
	return DeriveAccount(chain, account)
}

// Fingerprint returns a short identifier of the (seed, passphrase) pair that
// allows to check a passphrase without ever storing it.
func Fingerprint(seed chainhash.Hash, passphrase string) string {
	master := Stretch(seed, PassphraseHash(passphrase))
	defer master.Zero()

	buf := append([]byte(fingerprintLabel), master.Secret[:]...)
	hash := chainhash.DoubleHashH(buf)
	return hex.EncodeToString(hash[:4])
}
