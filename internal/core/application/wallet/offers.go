package wallet

import (
	"context"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/hdwallet/internal/core/domain"
)

// maxPriceBits is the width of the inverse price stored by offer contracts.
const maxPriceBits = 128

// MakeOffer deploys an offer contract selling bidAmount of bidCurrency for
// askAmount of askCurrency, funded in the same transaction. The offer is
// owned by the address at index owner of the account.
func (s *Service) MakeOffer(
	ctx context.Context, index, owner uint32,
	bidAmount uint64, bidCurrency domain.Address,
	askAmount uint64, askCurrency domain.Address,
	opts domain.SpendOptions,
) (*domain.Transaction, error) {
	if bidAmount == 0 || askAmount == 0 {
		return nil, ErrZeroAmount
	}

	// inverse price is bid / ask in 64.64 fixed point
	invPrice := new(big.Int).Lsh(new(big.Int).SetUint64(bidAmount), 64)
	invPrice.Div(invPrice, new(big.Int).SetUint64(askAmount))
	if invPrice.BitLen() > maxPriceBits {
		return nil, ErrPriceOutOfRange
	}

	tx := domain.NewTransaction()
	tx.Note = domain.TxNoteOffer

	if err := s.withSlot(index, func(sl *slot) error {
		ownerAddress, err := sl.wallet.Address(int(owner))
		if err != nil {
			return err
		}
		tx.Deploy = &domain.Contract{
			TypeName:   domain.ContractTypeExecutable,
			Binary:     s.params.OfferBinary,
			InitMethod: "init",
			InitArgs: []interface{}{
				ownerAddress.String(),
				bidCurrency.String(),
				askCurrency.String(),
				toHexString(invPrice),
				nil,
			},
		}
		deposits := []domain.CurrencyAmount{{Currency: bidCurrency, Amount: bidAmount}}
		return s.build(ctx, index, sl, tx, opts, deposits)
	}); err != nil {
		return nil, err
	}

	price := decimal.NewFromBigInt(new(big.Int).SetUint64(askAmount), 0).Div(
		decimal.NewFromBigInt(new(big.Int).SetUint64(bidAmount), 0),
	)
	log.WithField("txid", tx.ID).Debugf(
		"built offer of %d [%s] for %d [%s] at price %s",
		bidAmount, bidCurrency, askAmount, askCurrency, price.String(),
	)
	return tx, nil
}

// OfferTrade buys from the offer at address by depositing amount of its ask
// currency. The bought funds go to the address at index dst of the account.
// price is the expected inverse price, the trade fails if the offer has
// changed it.
func (s *Service) OfferTrade(
	ctx context.Context, index uint32, address domain.Address, amount uint64,
	dst uint32, price *big.Int, opts domain.SpendOptions,
) (*domain.Transaction, error) {
	return s.tradeOffer(ctx, index, address, "trade", &amount, dst, price, opts)
}

// AcceptOffer buys the whole bid balance of the offer at address.
func (s *Service) AcceptOffer(
	ctx context.Context, index uint32, address domain.Address,
	dst uint32, price *big.Int, opts domain.SpendOptions,
) (*domain.Transaction, error) {
	return s.tradeOffer(ctx, index, address, "accept", nil, dst, price, opts)
}

// CancelOffer revokes the offer at address. The call is signed by the offer
// owner.
func (s *Service) CancelOffer(
	ctx context.Context, index uint32, address domain.Address,
	opts domain.SpendOptions,
) (*domain.Transaction, error) {
	return s.ownerCall(ctx, index, address, "cancel", opts)
}

// OfferWithdraw withdraws the ask currency collected by the offer at
// address.
func (s *Service) OfferWithdraw(
	ctx context.Context, index uint32, address domain.Address,
	opts domain.SpendOptions,
) (*domain.Transaction, error) {
	return s.ownerCall(ctx, index, address, "withdraw", opts)
}

func (s *Service) tradeOffer(
	ctx context.Context, index uint32, address domain.Address, method string,
	amount *uint64, dst uint32, price *big.Int, opts domain.SpendOptions,
) (*domain.Transaction, error) {
	if price == nil || price.Sign() < 0 || price.BitLen() > maxPriceBits {
		return nil, ErrPriceOutOfRange
	}

	offer, err := s.getOffer(ctx, address)
	if err != nil {
		return nil, err
	}
	depositAmount := offer.AskAmount
	if amount != nil {
		depositAmount = *amount
	}

	var tx *domain.Transaction
	if err := s.withSlot(index, func(sl *slot) error {
		dstAddress, err := sl.wallet.Address(int(dst))
		if err != nil {
			return err
		}
		args := []interface{}{dstAddress.String(), toHexString(price)}
		tx, err = s.deposit(
			ctx, index, sl, address, method, args, depositAmount,
			offer.AskCurrency, opts.WithNote(domain.TxNoteTrade),
		)
		return err
	}); err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *Service) ownerCall(
	ctx context.Context, index uint32, address domain.Address, method string,
	opts domain.SpendOptions,
) (*domain.Transaction, error) {
	offer, err := s.getOffer(ctx, address)
	if err != nil {
		return nil, err
	}
	owner := offer.Owner
	opts.User = &owner
	return s.Execute(ctx, index, address, method, nil, nil, opts)
}

func (s *Service) getOffer(
	ctx context.Context, address domain.Address,
) (*domain.OfferInfo, error) {
	offer, err := s.ledger.GetOffer(ctx, address)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, fmt.Errorf("%w: %s", ErrOfferNotFound, address)
	}
	return offer, nil
}

func toHexString(n *big.Int) string {
	return "0x" + n.Text(16)
}
