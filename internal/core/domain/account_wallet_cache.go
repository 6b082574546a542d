package domain

// UpdateCache replaces the confirmed balances with the ledger ones, forgets
// pending transactions that expired before height or got confirmed, and
// deducts what is still reserved or pending.
func (w *AccountWallet) UpdateCache(
	balances map[BalanceKey]uint64, confirmed []Hash, height uint32,
) {
	w.height = height

	w.balanceMap = make(map[BalanceKey]uint64, len(balances))
	for k, v := range balances {
		w.balanceMap[k] = v
	}

	for _, id := range confirmed {
		delete(w.pendingTx, id)
		delete(w.pendingMap, id)
	}
	for id, expires := range w.pendingTx {
		if expires < height {
			delete(w.pendingTx, id)
			delete(w.pendingMap, id)
		}
	}

	w.deduct(w.reservedMap)
	for _, pending := range w.pendingMap {
		w.deduct(pending)
	}
}

// UpdateFrom reserves the funds spent by a transaction issued by the wallet
// until it gets confirmed or expires. It is a no-op for an already tracked
// transaction.
func (w *AccountWallet) UpdateFrom(tx *Transaction) error {
	if tx == nil {
		return ErrNullTransaction
	}
	if _, ok := w.pendingTx[tx.ID]; ok {
		return nil
	}

	pending := make(map[BalanceKey]uint64)
	if tx.Sender != nil {
		fee, err := CostToFee(tx.StaticCost, tx.FeeRatio)
		if err != nil {
			return err
		}
		pending[BalanceKey{*tx.Sender, NativeCurrency}] = fee
	}
	for _, in := range tx.Inputs {
		if w.HasAddress(in.Address) {
			key := BalanceKey{in.Address, in.Currency}
			if err := addTo(pending, key, in.Amount); err != nil {
				return err
			}
		}
	}

	w.deduct(pending)
	w.pendingMap[tx.ID] = pending
	w.pendingTx[tx.ID] = tx.Expires
	return nil
}

// SetExternalBalances sets the balances held by contracts owned by the
// wallet.
func (w *AccountWallet) SetExternalBalances(balances map[Address]uint64) {
	w.externalBalanceMap = make(map[Address]uint64, len(balances))
	for k, v := range balances {
		w.externalBalanceMap[k] = v
	}
}

// ReleaseAll drops every reservation.
func (w *AccountWallet) ReleaseAll() {
	w.reservedMap = make(map[BalanceKey]uint64)
}

// ResetCache clears every cached balance and pending transaction.
func (w *AccountWallet) ResetCache() {
	w.height = 0
	w.balanceMap = make(map[BalanceKey]uint64)
	w.reservedMap = make(map[BalanceKey]uint64)
	w.pendingMap = make(map[Hash]map[BalanceKey]uint64)
	w.pendingTx = make(map[Hash]uint32)
	w.externalBalanceMap = make(map[Address]uint64)
}

// Balances returns the spendable balances, already net of reserved and
// pending amounts.
func (w *AccountWallet) Balances() map[BalanceKey]uint64 {
	return copyBalances(w.balanceMap)
}

// ReservedBalances ...
func (w *AccountWallet) ReservedBalances() map[BalanceKey]uint64 {
	return copyBalances(w.reservedMap)
}

// PendingBalances returns the amounts held by pending transactions, summed
// by key. Sums saturate at math.MaxUint64.
func (w *AccountWallet) PendingBalances() map[BalanceKey]uint64 {
	sum := make(map[BalanceKey]uint64)
	for _, pending := range w.pendingMap {
		for k, v := range pending {
			sum[k] = saturatedAdd(sum[k], v)
		}
	}
	return sum
}

// ExternalBalances ...
func (w *AccountWallet) ExternalBalances() map[Address]uint64 {
	balances := make(map[Address]uint64, len(w.externalBalanceMap))
	for k, v := range w.externalBalanceMap {
		balances[k] = v
	}
	return balances
}

// PendingTxs returns the expiry height of every pending transaction.
func (w *AccountWallet) PendingTxs() map[Hash]uint32 {
	txs := make(map[Hash]uint32, len(w.pendingTx))
	for k, v := range w.pendingTx {
		txs[k] = v
	}
	return txs
}

func (w *AccountWallet) deduct(amounts map[BalanceKey]uint64) {
	for k, amount := range amounts {
		if balance, ok := w.balanceMap[k]; ok {
			w.balanceMap[k] = clampedSub(balance, amount)
		}
	}
}

func copyBalances(m map[BalanceKey]uint64) map[BalanceKey]uint64 {
	c := make(map[BalanceKey]uint64, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
