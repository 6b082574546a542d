package ports

import (
	"context"

	"github.com/tdex-network/hdwallet/internal/core/domain"
)

// LedgerClient is the remote node the wallet queries for balances, contracts
// and history, and sends transactions to.
type LedgerClient interface {
	GetHeight(ctx context.Context) (uint32, error)
	GetAllBalances(
		ctx context.Context, addresses, whitelist []domain.Address,
	) (map[domain.BalanceKey]uint64, error)
	GetTotalBalances(
		ctx context.Context, addresses, whitelist []domain.Address,
	) (map[domain.Address]uint64, error)
	GetContractBalances(
		ctx context.Context, address domain.Address, whitelist []domain.Address,
	) (map[domain.Address]domain.Balance, error)
	GetContractsBy(
		ctx context.Context, addresses []domain.Address, typeHash *domain.Hash,
	) ([]domain.Address, error)
	GetContractsOwnedBy(
		ctx context.Context, addresses []domain.Address, typeHash *domain.Hash,
	) ([]domain.Address, error)
	GetSwapLiquidityBy(
		ctx context.Context, addresses []domain.Address,
	) (map[domain.Address][2]domain.CurrencyAmount, error)
	GetTxIDsSince(ctx context.Context, height uint32) ([]domain.Hash, error)
	GetHistory(
		ctx context.Context, addresses []domain.Address, filter domain.QueryFilter,
	) ([]domain.TxEntry, error)
	// GetContract returns nil if no contract exists at address.
	GetContract(
		ctx context.Context, address domain.Address,
	) (*domain.Contract, error)
	// GetContracts returns one entry per address, nil when missing.
	GetContracts(
		ctx context.Context, addresses []domain.Address,
	) ([]*domain.Contract, error)
	GetOffer(ctx context.Context, address domain.Address) (*domain.OfferInfo, error)
	GetOffersBy(
		ctx context.Context, owners []domain.Address, state bool,
	) ([]domain.OfferInfo, error)
	GetSwapInfo(ctx context.Context, address domain.Address) (*domain.SwapInfo, error)
	// GetPlotNFTInfo returns nil if no plot NFT exists at address.
	GetPlotNFTInfo(
		ctx context.Context, address domain.Address,
	) (*domain.PlotNFTInfo, error)
	AddTransaction(
		ctx context.Context, tx *domain.Transaction, broadcast bool,
	) error
	Validate(
		ctx context.Context, tx *domain.Transaction,
	) (*domain.ExecResult, error)
}
