package wallet

import (
	"errors"
)

const (
	// ChainLabel is the child index separating the account key tree from any
	// other material derived from the same master key.
	ChainLabel = 11337
	// KDFIterations is the number of PBKDF2 rounds used to stretch a seed.
	KDFIterations = 4096

	seedLabel        = "HDW/seed/"
	farmerLabel      = "HDW/farmer_keys"
	fingerprintLabel = "HDW/fingerprint/"
)

var (
	// ErrNullSeed ...
	ErrNullSeed = errors.New("seed must not be zero")
	// ErrNullMnemonic ...
	ErrNullMnemonic = errors.New("mnemonic must not be null")
	// ErrNullPublicKey ...
	ErrNullPublicKey = errors.New("public key must not be null")

	// ErrInvalidMnemonic ...
	ErrInvalidMnemonic = errors.New("mnemonic is invalid")
	// ErrInvalidEntropySize ...
	ErrInvalidEntropySize = errors.New(
		"entropy size must be a multiple of 32 in the range [128,256]",
	)
	// ErrInvalidSeedMnemonic ...
	ErrInvalidSeedMnemonic = errors.New(
		"mnemonic must encode a 256-bit seed (24 words)",
	)
	// ErrInvalidChildKey ...
	ErrInvalidChildKey = errors.New("derived child key is not a valid scalar")
	// ErrInvalidAddress ...
	ErrInvalidAddress = errors.New("address must be a valid bech32 string")
	// ErrInvalidAddressPrefix ...
	ErrInvalidAddressPrefix = errors.New("address has an unknown human readable part")
	// ErrInvalidSignature ...
	ErrInvalidSignature = errors.New("signature must be DER encoded")
)
