package ledger

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/tdex-network/hdwallet/internal/core/domain"
	"github.com/tdex-network/hdwallet/internal/core/ports"
	"go.uber.org/ratelimit"
)

type guardedClient struct {
	inner   ports.LedgerClient
	breaker *gobreaker.CircuitBreaker
	limiter ratelimit.Limiter
}

// NewGuardedClient wraps inner so that calls are throttled to
// requestsPerSecond and stop reaching the node while it keeps failing.
// A non-positive requestsPerSecond disables throttling.
func NewGuardedClient(
	inner ports.LedgerClient, requestsPerSecond int,
) (ports.LedgerClient, error) {
	if inner == nil {
		return nil, ErrNullClient
	}

	limiter := ratelimit.NewUnlimited()
	if requestsPerSecond > 0 {
		limiter = ratelimit.New(requestsPerSecond)
	}
	return &guardedClient{
		inner:   inner,
		breaker: newCircuitBreaker("ledger"),
		limiter: limiter,
	}, nil
}

func (c *guardedClient) execute(
	ctx context.Context, method string, fn func() (interface{}, error),
) (interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.limiter.Take()

	res, err := c.breaker.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) ||
			errors.Is(err, gobreaker.ErrTooManyRequests) {
			log.WithField("method", method).Debug("ledger breaker open, call skipped")
			return nil, fmt.Errorf("%w: %s", ErrLedgerUnavailable, err)
		}
		return nil, err
	}
	return res, nil
}

func (c *guardedClient) GetHeight(ctx context.Context) (uint32, error) {
	res, err := c.execute(ctx, "GetHeight", func() (interface{}, error) {
		return c.inner.GetHeight(ctx)
	})
	if err != nil {
		return 0, err
	}
	return res.(uint32), nil
}

func (c *guardedClient) GetAllBalances(
	ctx context.Context, addresses, whitelist []domain.Address,
) (map[domain.BalanceKey]uint64, error) {
	res, err := c.execute(ctx, "GetAllBalances", func() (interface{}, error) {
		return c.inner.GetAllBalances(ctx, addresses, whitelist)
	})
	if err != nil {
		return nil, err
	}
	return res.(map[domain.BalanceKey]uint64), nil
}

func (c *guardedClient) GetTotalBalances(
	ctx context.Context, addresses, whitelist []domain.Address,
) (map[domain.Address]uint64, error) {
	res, err := c.execute(ctx, "GetTotalBalances", func() (interface{}, error) {
		return c.inner.GetTotalBalances(ctx, addresses, whitelist)
	})
	if err != nil {
		return nil, err
	}
	return res.(map[domain.Address]uint64), nil
}

func (c *guardedClient) GetContractBalances(
	ctx context.Context, address domain.Address, whitelist []domain.Address,
) (map[domain.Address]domain.Balance, error) {
	res, err := c.execute(ctx, "GetContractBalances", func() (interface{}, error) {
		return c.inner.GetContractBalances(ctx, address, whitelist)
	})
	if err != nil {
		return nil, err
	}
	return res.(map[domain.Address]domain.Balance), nil
}

func (c *guardedClient) GetContractsBy(
	ctx context.Context, addresses []domain.Address, typeHash *domain.Hash,
) ([]domain.Address, error) {
	res, err := c.execute(ctx, "GetContractsBy", func() (interface{}, error) {
		return c.inner.GetContractsBy(ctx, addresses, typeHash)
	})
	if err != nil {
		return nil, err
	}
	return res.([]domain.Address), nil
}

func (c *guardedClient) GetContractsOwnedBy(
	ctx context.Context, addresses []domain.Address, typeHash *domain.Hash,
) ([]domain.Address, error) {
	res, err := c.execute(ctx, "GetContractsOwnedBy", func() (interface{}, error) {
		return c.inner.GetContractsOwnedBy(ctx, addresses, typeHash)
	})
	if err != nil {
		return nil, err
	}
	return res.([]domain.Address), nil
}

func (c *guardedClient) GetSwapLiquidityBy(
	ctx context.Context, addresses []domain.Address,
) (map[domain.Address][2]domain.CurrencyAmount, error) {
	res, err := c.execute(ctx, "GetSwapLiquidityBy", func() (interface{}, error) {
		return c.inner.GetSwapLiquidityBy(ctx, addresses)
	})
	if err != nil {
		return nil, err
	}
	return res.(map[domain.Address][2]domain.CurrencyAmount), nil
}

func (c *guardedClient) GetTxIDsSince(
	ctx context.Context, height uint32,
) ([]domain.Hash, error) {
	res, err := c.execute(ctx, "GetTxIDsSince", func() (interface{}, error) {
		return c.inner.GetTxIDsSince(ctx, height)
	})
	if err != nil {
		return nil, err
	}
	return res.([]domain.Hash), nil
}

func (c *guardedClient) GetHistory(
	ctx context.Context, addresses []domain.Address, filter domain.QueryFilter,
) ([]domain.TxEntry, error) {
	res, err := c.execute(ctx, "GetHistory", func() (interface{}, error) {
		return c.inner.GetHistory(ctx, addresses, filter)
	})
	if err != nil {
		return nil, err
	}
	return res.([]domain.TxEntry), nil
}

func (c *guardedClient) GetContract(
	ctx context.Context, address domain.Address,
) (*domain.Contract, error) {
	res, err := c.execute(ctx, "GetContract", func() (interface{}, error) {
		return c.inner.GetContract(ctx, address)
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.Contract), nil
}

func (c *guardedClient) GetContracts(
	ctx context.Context, addresses []domain.Address,
) ([]*domain.Contract, error) {
	res, err := c.execute(ctx, "GetContracts", func() (interface{}, error) {
		return c.inner.GetContracts(ctx, addresses)
	})
	if err != nil {
		return nil, err
	}
	return res.([]*domain.Contract), nil
}

func (c *guardedClient) GetOffer(
	ctx context.Context, address domain.Address,
) (*domain.OfferInfo, error) {
	res, err := c.execute(ctx, "GetOffer", func() (interface{}, error) {
		return c.inner.GetOffer(ctx, address)
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.OfferInfo), nil
}

func (c *guardedClient) GetOffersBy(
	ctx context.Context, owners []domain.Address, state bool,
) ([]domain.OfferInfo, error) {
	res, err := c.execute(ctx, "GetOffersBy", func() (interface{}, error) {
		return c.inner.GetOffersBy(ctx, owners, state)
	})
	if err != nil {
		return nil, err
	}
	return res.([]domain.OfferInfo), nil
}

func (c *guardedClient) GetSwapInfo(
	ctx context.Context, address domain.Address,
) (*domain.SwapInfo, error) {
	res, err := c.execute(ctx, "GetSwapInfo", func() (interface{}, error) {
		return c.inner.GetSwapInfo(ctx, address)
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.SwapInfo), nil
}

func (c *guardedClient) GetPlotNFTInfo(
	ctx context.Context, address domain.Address,
) (*domain.PlotNFTInfo, error) {
	res, err := c.execute(ctx, "GetPlotNFTInfo", func() (interface{}, error) {
		return c.inner.GetPlotNFTInfo(ctx, address)
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.PlotNFTInfo), nil
}

// AddTransaction is never retried. A node rejecting a transaction still
// counts as a failure for the breaker.
func (c *guardedClient) AddTransaction(
	ctx context.Context, tx *domain.Transaction, broadcast bool,
) error {
	_, err := c.execute(ctx, "AddTransaction", func() (interface{}, error) {
		return nil, c.inner.AddTransaction(ctx, tx, broadcast)
	})
	return err
}

func (c *guardedClient) Validate(
	ctx context.Context, tx *domain.Transaction,
) (*domain.ExecResult, error) {
	res, err := c.execute(ctx, "Validate", func() (interface{}, error) {
		return c.inner.Validate(ctx, tx)
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.ExecResult), nil
}
