package ledger

import (
	"context"

	"github.com/tdex-network/hdwallet/internal/core/domain"
	"github.com/tdex-network/hdwallet/internal/core/ports"
)

type offlineClient struct{}

// NewOfflineClient returns a ledger client for a wallet with no node
// connection. Every call fails with ErrLedgerUnavailable.
func NewOfflineClient() ports.LedgerClient {
	return offlineClient{}
}

func (offlineClient) GetHeight(context.Context) (uint32, error) {
	return 0, ErrLedgerUnavailable
}

func (offlineClient) GetAllBalances(
	context.Context, []domain.Address, []domain.Address,
) (map[domain.BalanceKey]uint64, error) {
	return nil, ErrLedgerUnavailable
}

func (offlineClient) GetTotalBalances(
	context.Context, []domain.Address, []domain.Address,
) (map[domain.Address]uint64, error) {
	return nil, ErrLedgerUnavailable
}

func (offlineClient) GetContractBalances(
	context.Context, domain.Address, []domain.Address,
) (map[domain.Address]domain.Balance, error) {
	return nil, ErrLedgerUnavailable
}

func (offlineClient) GetContractsBy(
	context.Context, []domain.Address, *domain.Hash,
) ([]domain.Address, error) {
	return nil, ErrLedgerUnavailable
}

func (offlineClient) GetContractsOwnedBy(
	context.Context, []domain.Address, *domain.Hash,
) ([]domain.Address, error) {
	return nil, ErrLedgerUnavailable
}

func (offlineClient) GetSwapLiquidityBy(
	context.Context, []domain.Address,
) (map[domain.Address][2]domain.CurrencyAmount, error) {
	return nil, ErrLedgerUnavailable
}

func (offlineClient) GetTxIDsSince(context.Context, uint32) ([]domain.Hash, error) {
	return nil, ErrLedgerUnavailable
}

func (offlineClient) GetHistory(
	context.Context, []domain.Address, domain.QueryFilter,
) ([]domain.TxEntry, error) {
	return nil, ErrLedgerUnavailable
}

func (offlineClient) GetContract(
	context.Context, domain.Address,
) (*domain.Contract, error) {
	return nil, ErrLedgerUnavailable
}

func (offlineClient) GetContracts(
	context.Context, []domain.Address,
) ([]*domain.Contract, error) {
	return nil, ErrLedgerUnavailable
}

func (offlineClient) GetOffer(
	context.Context, domain.Address,
) (*domain.OfferInfo, error) {
	return nil, ErrLedgerUnavailable
}

func (offlineClient) GetOffersBy(
	context.Context, []domain.Address, bool,
) ([]domain.OfferInfo, error) {
	return nil, ErrLedgerUnavailable
}

func (offlineClient) GetSwapInfo(
	context.Context, domain.Address,
) (*domain.SwapInfo, error) {
	return nil, ErrLedgerUnavailable
}

func (offlineClient) GetPlotNFTInfo(
	context.Context, domain.Address,
) (*domain.PlotNFTInfo, error) {
	return nil, ErrLedgerUnavailable
}

func (offlineClient) AddTransaction(
	context.Context, *domain.Transaction, bool,
) error {
	return ErrLedgerUnavailable
}

func (offlineClient) Validate(
	context.Context, *domain.Transaction,
) (*domain.ExecResult, error) {
	return nil, ErrLedgerUnavailable
}
