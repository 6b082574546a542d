package dbbadger

import (
	"context"
	"fmt"

	"github.com/tdex-network/hdwallet/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type addressBook struct {
	Fingerprint string
	Index       uint32
	Addresses   []domain.Address
}

type addressBookRepositoryImpl struct {
	store *badgerhold.Store
}

func newAddressBookRepositoryImpl(
	store *badgerhold.Store,
) domain.AddressBookRepository {
	return addressBookRepositoryImpl{store}
}

func (r addressBookRepositoryImpl) GetAddresses(
	ctx context.Context, fingerprint string, index uint32,
) ([]domain.Address, error) {
	var book addressBook
	if err := r.store.Get(addressBookKey(fingerprint, index), &book); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return book.Addresses, nil
}

func (r addressBookRepositoryImpl) SaveAddresses(
	ctx context.Context, fingerprint string, index uint32,
	addresses []domain.Address,
) error {
	book := addressBook{
		Fingerprint: fingerprint,
		Index:       index,
		Addresses:   addresses,
	}
	return r.store.Upsert(addressBookKey(fingerprint, index), &book)
}

func addressBookKey(fingerprint string, index uint32) string {
	return fmt.Sprintf("addressbook/%s/%d", fingerprint, index)
}
