package wallet

import (
	"context"
	"fmt"

	"github.com/tdex-network/hdwallet/internal/core/domain"
	hdwallet "github.com/tdex-network/hdwallet/pkg/wallet"
)

// GetHistory returns the ledger history of every address of the account at
// index. Entries in a whitelisted currency are marked as validated.
func (s *Service) GetHistory(
	ctx context.Context, index uint32, filter domain.QueryFilter,
) ([]domain.TxEntry, error) {
	addresses, err := s.addresses(index)
	if err != nil {
		return nil, err
	}
	if filter.WhiteList {
		filter.Currency = s.tokenWhitelist()
	}

	history, err := s.ledger.GetHistory(ctx, addresses, filter)
	if err != nil {
		return nil, err
	}
	for i := range history {
		history[i].IsValidated = filter.WhiteList || s.isWhitelisted(history[i].Currency)
	}
	return history, nil
}

// GetTxLog returns up to limit transactions sent by the account at index,
// most recent first.
func (s *Service) GetTxLog(
	ctx context.Context, index uint32, limit int,
) ([]domain.TxLogEntry, error) {
	owner, err := s.GetAddress(ctx, index, 0)
	if err != nil {
		return nil, err
	}
	return s.repo.TxLogRepository().GetLastEntries(ctx, owner, limit)
}

// GetBalance returns the balance of currency held by the account at index.
func (s *Service) GetBalance(
	ctx context.Context, index uint32, currency domain.Address,
) (domain.Balance, error) {
	balances, err := s.GetBalances(ctx, index, false)
	if err != nil {
		return domain.Balance{}, err
	}
	balance := balances[currency]
	balance.IsValidated = s.isWhitelisted(currency)
	return balance, nil
}

// GetBalances returns the balances of the account at index by currency. With
// withZero, every whitelisted currency is listed even without funds.
func (s *Service) GetBalances(
	ctx context.Context, index uint32, withZero bool,
) (map[domain.Address]domain.Balance, error) {
	result := make(map[domain.Address]domain.Balance)
	if err := s.withSlot(index, func(sl *slot) error {
		if err := s.updateCache(ctx, index, sl); err != nil {
			return err
		}

		w := sl.wallet
		add := func(
			currency domain.Address, amount uint64,
			field func(*domain.Balance) *uint64,
		) error {
			balance := result[currency]
			sum, err := domain.AddAmounts(*field(&balance), amount)
			if err != nil {
				return err
			}
			*field(&balance) = sum
			result[currency] = balance
			return nil
		}
		spendable := func(b *domain.Balance) *uint64 { return &b.Spendable }
		reserved := func(b *domain.Balance) *uint64 { return &b.Reserved }
		locked := func(b *domain.Balance) *uint64 { return &b.Locked }

		for key, amount := range w.Balances() {
			if err := add(key.Currency, amount, spendable); err != nil {
				return err
			}
		}
		for key, amount := range w.ReservedBalances() {
			if err := add(key.Currency, amount, reserved); err != nil {
				return err
			}
		}
		for key, amount := range w.PendingBalances() {
			if err := add(key.Currency, amount, reserved); err != nil {
				return err
			}
		}
		for currency, amount := range w.ExternalBalances() {
			if err := add(currency, amount, locked); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if withZero {
		for _, currency := range s.tokenWhitelist() {
			if _, ok := result[currency]; !ok {
				result[currency] = domain.Balance{}
			}
		}
	}
	for currency, balance := range result {
		total, err := domain.AddAmounts(balance.Spendable, balance.Reserved)
		if err != nil {
			return nil, err
		}
		if total, err = domain.AddAmounts(total, balance.Locked); err != nil {
			return nil, err
		}
		balance.Total = total
		balance.IsValidated = s.isWhitelisted(currency)
		result[currency] = balance
	}
	return result, nil
}

// GetTotalBalances returns the whitelisted balances held by addresses,
// including the ones of the contracts they own.
func (s *Service) GetTotalBalances(
	ctx context.Context, addresses []domain.Address,
) (map[domain.Address]uint64, error) {
	return s.ledger.GetTotalBalances(ctx, addresses, s.tokenWhitelist())
}

// GetContractBalances returns the whitelisted balances held by the contract
// at address.
func (s *Service) GetContractBalances(
	ctx context.Context, address domain.Address,
) (map[domain.Address]domain.Balance, error) {
	balances, err := s.ledger.GetContractBalances(ctx, address, s.tokenWhitelist())
	if err != nil {
		return nil, err
	}
	for currency, balance := range balances {
		balance.IsValidated = s.isWhitelisted(currency)
		balances[currency] = balance
	}
	return balances, nil
}

// GetContracts returns the contracts that reference an address of the
// account at index, optionally restricted to typeName and typeHash.
func (s *Service) GetContracts(
	ctx context.Context, index uint32, typeName *string, typeHash *domain.Hash,
) (map[domain.Address]*domain.Contract, error) {
	addresses, err := s.addresses(index)
	if err != nil {
		return nil, err
	}
	found, err := s.ledger.GetContractsBy(ctx, addresses, typeHash)
	if err != nil {
		return nil, err
	}
	return s.contractsByAddress(ctx, found, typeName)
}

// GetContractsOwned returns the contracts owned by the account at index,
// optionally restricted to typeName and typeHash.
func (s *Service) GetContractsOwned(
	ctx context.Context, index uint32, typeName *string, typeHash *domain.Hash,
) (map[domain.Address]*domain.Contract, error) {
	addresses, err := s.addresses(index)
	if err != nil {
		return nil, err
	}

	owned, err := s.ledger.GetContractsOwnedBy(ctx, addresses, typeHash)
	if err != nil {
		return nil, err
	}
	return s.contractsByAddress(ctx, owned, typeName)
}

// contractsByAddress fetches the contracts at addresses, skipping the
// missing ones and those not of typeName if given.
func (s *Service) contractsByAddress(
	ctx context.Context, addresses []domain.Address, typeName *string,
) (map[domain.Address]*domain.Contract, error) {
	contracts, err := s.ledger.GetContracts(ctx, addresses)
	if err != nil {
		return nil, err
	}

	result := make(map[domain.Address]*domain.Contract, len(addresses))
	for i, contract := range contracts {
		if i >= len(addresses) || contract == nil {
			continue
		}
		if typeName != nil && contract.TypeName != *typeName {
			continue
		}
		result[addresses[i]] = contract
	}
	return result, nil
}

// GetOffers returns the open, or closed, offers owned by the account at
// index.
func (s *Service) GetOffers(
	ctx context.Context, index uint32, state bool,
) ([]domain.OfferInfo, error) {
	addresses, err := s.addresses(index)
	if err != nil {
		return nil, err
	}
	return s.ledger.GetOffersBy(ctx, addresses, state)
}

// GetSwapLiquidity returns the liquidity provided by the account at index,
// by pool.
func (s *Service) GetSwapLiquidity(
	ctx context.Context, index uint32,
) (map[domain.Address][2]domain.CurrencyAmount, error) {
	addresses, err := s.addresses(index)
	if err != nil {
		return nil, err
	}
	return s.ledger.GetSwapLiquidityBy(ctx, addresses)
}

// GetAddress returns the address at offset of the account at index.
func (s *Service) GetAddress(
	_ context.Context, index, offset uint32,
) (domain.Address, error) {
	var addr domain.Address
	if err := s.withSlot(index, func(sl *slot) (err error) {
		addr, err = sl.wallet.Address(int(offset))
		return
	}); err != nil {
		return domain.Address{}, err
	}
	return addr, nil
}

// GetAllAddresses returns the addresses of the account at index, or of every
// account if index is negative.
func (s *Service) GetAllAddresses(
	_ context.Context, index int,
) ([]domain.Address, error) {
	if index >= 0 {
		return s.addresses(uint32(index))
	}

	var all []domain.Address
	for _, sl := range s.loadedSlots() {
		addresses, err := s.addresses(sl.index)
		if err != nil {
			continue
		}
		all = append(all, addresses...)
	}
	return all, nil
}

// FindWalletByAddr returns the slot of the account owning addr.
func (s *Service) FindWalletByAddr(
	_ context.Context, addr domain.Address,
) (uint32, error) {
	for _, sl := range s.loadedSlots() {
		sl.mu.Lock()
		found := !sl.removed && sl.wallet.HasAddress(addr)
		sl.mu.Unlock()
		if found {
			return sl.index, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrWalletNotFound, addr)
}

// GetFarmerKeys returns the farmer key pair of the account at index. The
// caller must zero it once done.
func (s *Service) GetFarmerKeys(
	_ context.Context, index uint32,
) (*hdwallet.KeyPair, error) {
	var seed domain.Hash
	if err := s.withSlot(index, func(sl *slot) error {
		seed = sl.wallet.Seed()
		return nil
	}); err != nil {
		return nil, err
	}
	return hdwallet.DeriveFarmerKey(seed)
}

// GetAllFarmerKeys returns the farmer key pairs of every account, in slot
// order.
func (s *Service) GetAllFarmerKeys(
	ctx context.Context,
) ([]*hdwallet.KeyPair, error) {
	slots := s.loadedSlots()
	keys := make([]*hdwallet.KeyPair, 0, len(slots))
	for _, sl := range slots {
		key, err := s.GetFarmerKeys(ctx, sl.index)
		if err != nil {
			for _, k := range keys {
				k.Zero()
			}
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// GetAccount returns the info of the account at index.
func (s *Service) GetAccount(
	_ context.Context, index uint32,
) (*domain.AccountInfo, error) {
	var info *domain.AccountInfo
	if err := s.withSlot(index, func(sl *slot) error {
		info = accountInfo(index, sl.wallet)
		return nil
	}); err != nil {
		return nil, err
	}
	return info, nil
}

// GetAllAccounts returns the info of every loaded account, in slot order.
func (s *Service) GetAllAccounts(
	_ context.Context,
) ([]domain.AccountInfo, error) {
	slots := s.loadedSlots()
	accounts := make([]domain.AccountInfo, 0, len(slots))
	for _, sl := range slots {
		sl.mu.Lock()
		if !sl.removed {
			accounts = append(accounts, *accountInfo(sl.index, sl.wallet))
		}
		sl.mu.Unlock()
	}
	return accounts, nil
}

func (s *Service) addresses(index uint32) ([]domain.Address, error) {
	var addresses []domain.Address
	if err := s.withSlot(index, func(sl *slot) error {
		addresses = sl.wallet.Addresses()
		return nil
	}); err != nil {
		return nil, err
	}
	return addresses, nil
}

func accountInfo(index uint32, w *domain.AccountWallet) *domain.AccountInfo {
	info := &domain.AccountInfo{AccountConfig: w.Config(), Slot: index}
	if addr, err := w.Address(0); err == nil {
		info.Address = &addr
	}
	return info
}
