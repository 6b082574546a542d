package wallet

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/hdwallet/internal/core/domain"
)

// SwapTrade sells amount of currency to the pool at address. The proceeds go
// to the first address of the account. minTrade, if given, is the least
// amount accepted in return.
func (s *Service) SwapTrade(
	ctx context.Context, index uint32, address domain.Address, amount uint64,
	currency domain.Address, minTrade *uint64, numIter int,
	opts domain.SpendOptions,
) (*domain.Transaction, error) {
	info, err := s.getSwapInfo(ctx, address)
	if err != nil {
		return nil, err
	}
	token := -1
	for i, t := range info.Tokens {
		if t == currency {
			token = i
		}
	}
	if token < 0 {
		return nil, ErrInvalidSwapCurrency
	}

	var tx *domain.Transaction
	if err := s.withSlot(index, func(sl *slot) error {
		user, err := sl.wallet.Address(0)
		if err != nil {
			return err
		}
		var minAmount interface{}
		if minTrade != nil {
			minAmount = *minTrade
		}
		args := []interface{}{token, user.String(), minAmount, numIter}
		tx, err = s.deposit(
			ctx, index, sl, address, "trade", args, amount, currency,
			opts.WithNote(domain.TxNoteTrade),
		)
		return err
	}); err != nil {
		return nil, err
	}
	return tx, nil
}

// SwapAddLiquid deposits the non-zero amounts of the two pool tokens into
// the liquidity pool poolIdx of the swap at address.
func (s *Service) SwapAddLiquid(
	ctx context.Context, index uint32, address domain.Address,
	amounts [2]uint64, poolIdx uint32, opts domain.SpendOptions,
) (*domain.Transaction, error) {
	if amounts[0] == 0 && amounts[1] == 0 {
		return nil, ErrZeroAmount
	}
	info, err := s.getSwapInfo(ctx, address)
	if err != nil {
		return nil, err
	}

	tx := domain.NewTransaction()
	tx.Note = domain.TxNoteDeposit

	if err := s.withSlot(index, func(sl *slot) error {
		user, err := sl.wallet.Address(0)
		if err != nil {
			return err
		}
		for i, amount := range amounts {
			if amount == 0 {
				continue
			}
			tx.Operations = append(tx.Operations, domain.NewDepositOp(
				address, "add_liquid", []interface{}{i, poolIdx},
				&user, amount, info.Tokens[i],
			))
		}
		return s.build(ctx, index, sl, tx, opts, nil)
	}); err != nil {
		return nil, err
	}

	log.WithField("txid", tx.ID).Debugf("built add liquidity to %s", address)
	return tx, nil
}

// SwapRemLiquid pays out the fees earned and withdraws the non-zero amounts
// of liquidity from the swap at address.
func (s *Service) SwapRemLiquid(
	ctx context.Context, index uint32, address domain.Address,
	amounts [2]uint64, opts domain.SpendOptions,
) (*domain.Transaction, error) {
	if address.IsZero() {
		return nil, ErrZeroAddress
	}

	tx := domain.NewTransaction()
	tx.Note = domain.TxNoteWithdraw

	if err := s.withSlot(index, func(sl *slot) error {
		user, err := sl.wallet.Address(0)
		if err != nil {
			return err
		}
		tx.Operations = append(tx.Operations, domain.NewExecuteOp(
			address, "payout", nil, &user,
		))
		for i, amount := range amounts {
			if amount == 0 {
				continue
			}
			tx.Operations = append(tx.Operations, domain.NewExecuteOp(
				address, "rem_liquid", []interface{}{i, amount, false}, &user,
			))
		}
		return s.build(ctx, index, sl, tx, opts, nil)
	}); err != nil {
		return nil, err
	}

	log.WithField("txid", tx.ID).Debugf("built remove liquidity from %s", address)
	return tx, nil
}

func (s *Service) getSwapInfo(
	ctx context.Context, address domain.Address,
) (*domain.SwapInfo, error) {
	info, err := s.ledger.GetSwapInfo(ctx, address)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, fmt.Errorf("%w: %s", ErrSwapNotFound, address)
	}
	return info, nil
}
