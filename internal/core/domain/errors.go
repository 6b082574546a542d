package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the package wraps one of these so
// that callers can match with errors.Is.
var (
	// ErrInvalidCredential ...
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrLockedAccount is thrown when signing or selecting inputs with a
	// locked wallet and no passphrase
	ErrLockedAccount = errors.New("wallet is locked")
	// ErrNotFound ...
	ErrNotFound = errors.New("not found")
	// ErrOutOfRange ...
	ErrOutOfRange = errors.New("out of range")
	// ErrInvalidArgument ...
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInsufficientFunds ...
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrConflict ...
	ErrConflict = errors.New("conflict")
)

var (
	// ErrZeroSeed ...
	ErrZeroSeed = fmt.Errorf("%w: seed must not be zero", ErrInvalidCredential)
	// ErrInvalidPassphrase is thrown when the fingerprint or the first derived
	// address does not match
	ErrInvalidPassphrase = fmt.Errorf("%w: passphrase is not valid", ErrInvalidCredential)
	// ErrPassphraseNeeded ...
	ErrPassphraseNeeded = fmt.Errorf("%w: passphrase needed", ErrInvalidCredential)

	// ErrAddressIndexOutOfRange ...
	ErrAddressIndexOutOfRange = fmt.Errorf("%w: address index", ErrOutOfRange)
	// ErrUnknownAddress ...
	ErrUnknownAddress = fmt.Errorf("%w: address does not belong to wallet", ErrNotFound)

	// ErrInsufficientFundsForFee ...
	ErrInsufficientFundsForFee = fmt.Errorf("%w for tx fee", ErrInsufficientFunds)

	// ErrAmountOverflow is thrown when a sum of amounts does not fit 64 bits.
	ErrAmountOverflow = fmt.Errorf("%w: amount overflow", ErrInvalidArgument)
	// ErrFeeOverflow ...
	ErrFeeOverflow = fmt.Errorf("%w: fee amount overflow", ErrInvalidArgument)
	// ErrNullTransaction ...
	ErrNullTransaction = fmt.Errorf("%w: transaction must not be null", ErrInvalidArgument)
)
