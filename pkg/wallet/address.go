package wallet

import (
	"bytes"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// AddressHRP is the human readable part of encoded addresses.
const AddressHRP = "hdw"

// Address is the hash of a public key, or of a contract definition. The zero
// address identifies the native currency.
type Address [32]byte

// NewAddressFromPublicKey returns the address of a serialized public key.
func NewAddressFromPublicKey(pubkey []byte) Address {
	return Address(chainhash.DoubleHashH(pubkey))
}

// ParseAddress decodes a bech32 encoded address.
func ParseAddress(str string) (Address, error) {
	hrp, data, err := bech32.Decode(str)
	if err != nil {
		return Address{}, ErrInvalidAddress
	}
	if hrp != AddressHRP {
		return Address{}, ErrInvalidAddressPrefix
	}
	buf, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil || len(buf) != len(Address{}) {
		return Address{}, ErrInvalidAddress
	}
	var addr Address
	copy(addr[:], buf)
	return addr, nil
}

// IsZero ...
func (a Address) IsZero() bool {
	return a == Address{}
}

// Compare orders addresses by their bytes.
func (a Address) Compare(b Address) int {
	return bytes.Compare(a[:], b[:])
}

func (a Address) String() string {
	data, err := bech32.ConvertBits(a[:], 8, 5, true)
	if err != nil {
		return ""
	}
	str, err := bech32.Encode(AddressHRP, data)
	if err != nil {
		return ""
	}
	return str
}

// MarshalText ...
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText ...
func (a *Address) UnmarshalText(text []byte) error {
	addr, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
