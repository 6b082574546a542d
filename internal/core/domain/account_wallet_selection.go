package domain

import (
	"fmt"
	"sort"
)

// GatherInputs funds amount of currency into tx. Existing inputs of the
// wallet in that currency are topped up first, then new inputs are added
// from the addresses with the largest residual balance. spent accumulates
// what this build already consumed so that consecutive calls never spend the
// same balance twice.
//
// Neither tx nor spent are modified when funds are insufficient.
func (w *AccountWallet) GatherInputs(
	tx *Transaction, spent map[BalanceKey]uint64,
	amount uint64, currency Address, opts SpendOptions,
) error {
	if tx == nil {
		return ErrNullTransaction
	}
	if spent == nil {
		return fmt.Errorf("%w: spent map must not be null", ErrInvalidArgument)
	}

	used := make(map[BalanceKey]uint64)
	residual := func(key BalanceKey) uint64 {
		balance := clampedSub(w.balanceMap[key], spent[key])
		return clampedSub(balance, used[key])
	}
	left := amount

	type topUp struct {
		index  int
		amount uint64
	}
	topUps := make([]topUp, 0)
	for i, in := range tx.Inputs {
		if left == 0 {
			break
		}
		if in.Currency != currency || !w.HasAddress(in.Address) {
			continue
		}
		key := BalanceKey{in.Address, in.Currency}
		if take := minUint64(residual(key), left); take > 0 {
			if _, err := AddAmounts(in.Amount, take); err != nil {
				return err
			}
			topUps = append(topUps, topUp{i, take})
			used[key] += take
			left -= take
		}
	}

	type candidate struct {
		address Address
		balance uint64
	}
	candidates := make([]candidate, 0)
	if left > 0 {
		for _, key := range SortedBalanceKeys(w.balanceMap) {
			if key.Currency != currency {
				continue
			}
			if balance := residual(key); balance > 0 {
				candidates = append(candidates, candidate{key.Address, balance})
			}
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].balance > candidates[j].balance
		})
	}

	newInputs := make([]TxIn, 0)
	for _, c := range candidates {
		if left == 0 {
			break
		}
		take := minUint64(c.balance, left)
		newInputs = append(newInputs, TxIn{
			Address:  c.address,
			Currency: currency,
			Amount:   take,
			Memo:     opts.Memo,
			Solution: NoSolution,
		})
		used[BalanceKey{c.address, currency}] += take
		left -= take
	}

	if left > 0 {
		return fmt.Errorf(
			"%w: missing %d of currency %s", ErrInsufficientFunds, left, currency,
		)
	}

	for _, t := range topUps {
		tx.Inputs[t.index].Amount += t.amount
	}
	tx.Inputs = append(tx.Inputs, newInputs...)
	for k, v := range used {
		spent[k] += v
	}
	return nil
}

func minUint64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
