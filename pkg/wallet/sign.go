package wallet

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Sign returns the DER encoded signature of msg.
func (k *KeyPair) Sign(msg chainhash.Hash) []byte {
	return ecdsa.Sign(k.PrivateKey, msg[:]).Serialize()
}

// VerifySignature checks a DER signature of msg against a compressed public
// key.
func VerifySignature(pubkey []byte, msg chainhash.Hash, sig []byte) error {
	if len(pubkey) <= 0 {
		return ErrNullPublicKey
	}
	key, err := btcec.ParsePubKey(pubkey)
	if err != nil {
		return err
	}
	signature, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return ErrInvalidSignature
	}
	if !signature.Verify(msg[:], key) {
		return ErrInvalidSignature
	}
	return nil
}
