package wallet

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"
)

var testSeed = chainhash.DoubleHashH([]byte("test seed"))

func TestDeriveAddress(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		first := deriveAddresses(t, testSeed, "", 0, 5)
		second := deriveAddresses(t, testSeed, "", 0, 5)
		require.Equal(t, first, second)
	})

	t.Run("distinct per index", func(t *testing.T) {
		addresses := deriveAddresses(t, testSeed, "", 0, 10)
		seen := make(map[Address]struct{})
		for _, addr := range addresses {
			_, ok := seen[addr]
			require.False(t, ok)
			seen[addr] = struct{}{}
		}
	})

	t.Run("distinct per account", func(t *testing.T) {
		first := deriveAddresses(t, testSeed, "", 0, 1)
		second := deriveAddresses(t, testSeed, "", 1, 1)
		require.NotEqual(t, first[0], second[0])
	})

	t.Run("distinct per passphrase", func(t *testing.T) {
		first := deriveAddresses(t, testSeed, "", 0, 1)
		second := deriveAddresses(t, testSeed, "secret", 0, 1)
		require.NotEqual(t, first[0], second[0])
	})
}

func TestKeyPair(t *testing.T) {
	account := DeriveAccountKey(testSeed, "", 0)
	key, err := DeriveAddress(account, 0)
	require.NoError(t, err)
	require.Len(t, key.PublicKey, 33)
	require.Equal(t, NewAddressFromPublicKey(key.PublicKey), key.Address())

	msg := chainhash.DoubleHashH([]byte("message"))
	sig := key.Sign(msg)
	require.NoError(t, VerifySignature(key.PublicKey, msg, sig))

	other := chainhash.DoubleHashH([]byte("other message"))
	require.ErrorIs(t, VerifySignature(key.PublicKey, other, sig), ErrInvalidSignature)

	key.Zero()
	require.True(t, key.PrivateKey.Key.IsZero())
	require.Equal(t, make([]byte, 33), key.PublicKey)
}

func TestDeriveFarmerKey(t *testing.T) {
	key, err := DeriveFarmerKey(testSeed)
	require.NoError(t, err)

	again, err := DeriveFarmerKey(testSeed)
	require.NoError(t, err)
	require.Equal(t, key.PublicKey, again.PublicKey)

	accountKeys := deriveAddresses(t, testSeed, "", 0, 1)
	require.NotEqual(t, accountKeys[0], key.Address())

	root := Stretch(testSeed, farmerSalt())
	expected, err := NewKeyPair(root.Child(0).Secret)
	require.NoError(t, err)
	require.Equal(t, expected.PublicKey, key.PublicKey)

	unstretched := ExtendedKey{Secret: testSeed, ChainCode: farmerSalt()}
	plain, err := NewKeyPair(unstretched.Child(0).Secret)
	require.NoError(t, err)
	require.NotEqual(t, plain.PublicKey, key.PublicKey)

	_, err = DeriveFarmerKey(chainhash.Hash{})
	require.ErrorIs(t, err, ErrNullSeed)
}

func TestFingerprint(t *testing.T) {
	fp := Fingerprint(testSeed, "passphrase")
	require.Len(t, fp, 8)
	require.Equal(t, fp, Fingerprint(testSeed, "passphrase"))
	require.NotEqual(t, fp, Fingerprint(testSeed, "wrong"))
	require.NotEqual(t, fp, Fingerprint(testSeed, ""))
}

func TestAddressEncoding(t *testing.T) {
	addresses := deriveAddresses(t, testSeed, "", 0, 3)
	for _, addr := range addresses {
		str := addr.String()
		require.NotEmpty(t, str)

		parsed, err := ParseAddress(str)
		require.NoError(t, err)
		require.Equal(t, addr, parsed)

		text, err := addr.MarshalText()
		require.NoError(t, err)
		var decoded Address
		require.NoError(t, decoded.UnmarshalText(text))
		require.Equal(t, addr, decoded)
	}

	tests := []struct {
		name string
		str  string
		err  error
	}{
		{"garbage", "not an address", ErrInvalidAddress},
		{"empty", "", ErrInvalidAddress},
		{"wrong prefix", "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4", ErrInvalidAddressPrefix},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAddress(tt.str)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func deriveAddresses(
	t *testing.T, seed chainhash.Hash, passphrase string, account, count uint32,
) []Address {
	key := DeriveAccountKey(seed, passphrase, account)
	addresses := make([]Address, 0, count)
	for i := uint32(0); i < count; i++ {
		pair, err := DeriveAddress(key, i)
		require.NoError(t, err)
		addresses = append(addresses, pair.Address())
	}
	return addresses
}
