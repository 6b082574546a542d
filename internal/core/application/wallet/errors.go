package wallet

import (
	"errors"
	"fmt"

	"github.com/tdex-network/hdwallet/internal/core/domain"
)

var (
	// ErrMissingLedger ...
	ErrMissingLedger = errors.New("missing ledger client")
	// ErrMissingKeyStore ...
	ErrMissingKeyStore = errors.New("missing key store")
	// ErrMissingRepository ...
	ErrMissingRepository = errors.New("missing repository manager")
	// ErrInvalidAddressLimits ...
	ErrInvalidAddressLimits = errors.New(
		"number of addresses must be positive and not exceed the max",
	)

	// ErrAccountNotFound is returned for an empty or unknown slot.
	ErrAccountNotFound = fmt.Errorf("%w: no such account", domain.ErrNotFound)
	// ErrAccountExists ...
	ErrAccountExists = fmt.Errorf("%w: account already exists", domain.ErrConflict)
	// ErrKeyFileExists is returned when importing a seed over a different one.
	ErrKeyFileExists = fmt.Errorf("%w: key file already exists", domain.ErrConflict)
	// ErrLegacyAccount is returned when removing an account loaded from a
	// key file of the config.
	ErrLegacyAccount = fmt.Errorf("%w: cannot remove wallet", domain.ErrConflict)
	// ErrInvalidAddressCount ...
	ErrInvalidAddressCount = fmt.Errorf("%w: invalid address count", domain.ErrOutOfRange)
	// ErrWalletNotFound is returned when no account owns an address.
	ErrWalletNotFound = fmt.Errorf("%w: wallet for address", domain.ErrNotFound)

	// ErrZeroAmount ...
	ErrZeroAmount = fmt.Errorf("%w: amount cannot be zero", domain.ErrInvalidArgument)
	// ErrZeroAddress ...
	ErrZeroAddress = fmt.Errorf("%w: address cannot be zero", domain.ErrInvalidArgument)
	// ErrInvalidContract ...
	ErrInvalidContract = fmt.Errorf("%w: invalid contract", domain.ErrInvalidArgument)
	// ErrContractWithoutOwner ...
	ErrContractWithoutOwner = fmt.Errorf("%w: contract has no owner", domain.ErrInvalidArgument)
	// ErrPriceOutOfRange ...
	ErrPriceOutOfRange = fmt.Errorf("%w: price out of range", domain.ErrInvalidArgument)
	// ErrInvalidSwapCurrency ...
	ErrInvalidSwapCurrency = fmt.Errorf("%w: invalid currency for swap", domain.ErrInvalidArgument)
	// ErrOfferNotFound ...
	ErrOfferNotFound = fmt.Errorf("%w: offer", domain.ErrNotFound)
	// ErrSwapNotFound ...
	ErrSwapNotFound = fmt.Errorf("%w: swap", domain.ErrNotFound)
	// ErrNotPlotNFT ...
	ErrNotPlotNFT = fmt.Errorf("%w: not a plot NFT", domain.ErrNotFound)
	// ErrTokenNotFound ...
	ErrTokenNotFound = fmt.Errorf("%w: cannot remove token", domain.ErrNotFound)
)
