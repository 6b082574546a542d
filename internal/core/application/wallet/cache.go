package wallet

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/hdwallet/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

// UpdateCache refreshes the balances of the account at index if they are
// older than the cache TTL.
func (s *Service) UpdateCache(ctx context.Context, index uint32) error {
	return s.withSlot(index, func(sl *slot) error {
		return s.updateCache(ctx, index, sl)
	})
}

// ResetCache drops every cached balance and pending transaction of the
// account at index and fetches them again.
func (s *Service) ResetCache(ctx context.Context, index uint32) error {
	return s.withSlot(index, func(sl *slot) error {
		sl.wallet.ResetCache()
		sl.lastUpdate = time.Time{}
		return s.updateCache(ctx, index, sl)
	})
}

// ReleaseAll drops the reservations of every account.
func (s *Service) ReleaseAll() {
	for _, sl := range s.loadedSlots() {
		sl.mu.Lock()
		sl.wallet.ReleaseAll()
		sl.mu.Unlock()
	}
}

// updateCache must be called with the slot mutex held.
func (s *Service) updateCache(ctx context.Context, index uint32, sl *slot) error {
	now := s.clock.Now()
	if !sl.lastUpdate.IsZero() && now.Sub(sl.lastUpdate) <= s.cacheTTL {
		return nil
	}

	w := sl.wallet
	addresses := w.Addresses()
	whitelist := s.tokenWhitelist()
	withPending := len(w.PendingTxs()) > 0
	since := w.Height() - minUint32(s.params.CommitDelay, w.Height())

	var (
		height    uint32
		balances  map[domain.BalanceKey]uint64
		external  map[domain.Address]uint64
		liquidity map[domain.Address][2]domain.CurrencyAmount
		confirmed []domain.Hash
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		height, err = s.ledger.GetHeight(gctx)
		return
	})
	g.Go(func() (err error) {
		balances, err = s.ledger.GetAllBalances(gctx, addresses, whitelist)
		return
	})
	g.Go(func() error {
		contracts, err := s.ledger.GetContractsOwnedBy(gctx, addresses, nil)
		if err != nil || len(contracts) <= 0 {
			return err
		}
		external, err = s.ledger.GetTotalBalances(gctx, contracts, whitelist)
		return err
	})
	g.Go(func() (err error) {
		liquidity, err = s.ledger.GetSwapLiquidityBy(gctx, addresses)
		return
	})
	if withPending {
		g.Go(func() (err error) {
			confirmed, err = s.ledger.GetTxIDsSince(gctx, since)
			return
		})
	}
	if err := g.Wait(); err != nil {
		s.metrics.ledgerErrors.Inc()
		return err
	}

	locked := make(map[domain.Address]uint64)
	for currency, amount := range external {
		locked[currency] += amount
	}
	for _, pair := range liquidity {
		for _, entry := range pair {
			locked[entry.Currency] += entry.Amount
		}
	}

	w.SetExternalBalances(locked)
	w.UpdateCache(balances, confirmed, height)
	sl.lastUpdate = now
	s.metrics.cacheRefreshes.Inc()

	log.WithFields(log.Fields{
		"account": index,
		"height":  height,
		"pending": len(w.PendingTxs()),
	}).Debug("balance cache updated")
	return nil
}

func minUint32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}
