package domain

import "context"

// AddressBookRepository persists the addresses derived for an account, so
// that a passphrase can be checked against address 0 before unlocking.
type AddressBookRepository interface {
	// GetAddresses returns the addresses of the given account, or an empty
	// list if none were stored.
	GetAddresses(
		ctx context.Context, fingerprint string, index uint32,
	) ([]Address, error)
	// SaveAddresses overwrites the addresses of the given account.
	SaveAddresses(
		ctx context.Context, fingerprint string, index uint32, addresses []Address,
	) error
}
