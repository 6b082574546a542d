package wallet_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tdex-network/hdwallet/internal/core/domain"
)

// **** Ledger ****

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) GetHeight(ctx context.Context) (uint32, error) {
	args := m.Called()

	var res uint32
	if a := args.Get(0); a != nil {
		res = a.(uint32)
	}
	return res, args.Error(1)
}

func (m *mockLedger) GetAllBalances(
	ctx context.Context, addresses, whitelist []domain.Address,
) (map[domain.BalanceKey]uint64, error) {
	args := m.Called(addresses, whitelist)

	var res map[domain.BalanceKey]uint64
	if a := args.Get(0); a != nil {
		res = a.(map[domain.BalanceKey]uint64)
	}
	return res, args.Error(1)
}

func (m *mockLedger) GetTotalBalances(
	ctx context.Context, addresses, whitelist []domain.Address,
) (map[domain.Address]uint64, error) {
	args := m.Called(addresses, whitelist)

	var res map[domain.Address]uint64
	if a := args.Get(0); a != nil {
		res = a.(map[domain.Address]uint64)
	}
	return res, args.Error(1)
}

func (m *mockLedger) GetContractBalances(
	ctx context.Context, address domain.Address, whitelist []domain.Address,
) (map[domain.Address]domain.Balance, error) {
	args := m.Called(address, whitelist)

	var res map[domain.Address]domain.Balance
	if a := args.Get(0); a != nil {
		res = a.(map[domain.Address]domain.Balance)
	}
	return res, args.Error(1)
}

func (m *mockLedger) GetContractsBy(
	ctx context.Context, addresses []domain.Address, typeHash *domain.Hash,
) ([]domain.Address, error) {
	args := m.Called(addresses, typeHash)

	var res []domain.Address
	if a := args.Get(0); a != nil {
		res = a.([]domain.Address)
	}
	return res, args.Error(1)
}

func (m *mockLedger) GetContractsOwnedBy(
	ctx context.Context, addresses []domain.Address, typeHash *domain.Hash,
) ([]domain.Address, error) {
	args := m.Called(addresses, typeHash)

	var res []domain.Address
	if a := args.Get(0); a != nil {
		res = a.([]domain.Address)
	}
	return res, args.Error(1)
}

func (m *mockLedger) GetSwapLiquidityBy(
	ctx context.Context, addresses []domain.Address,
) (map[domain.Address][2]domain.CurrencyAmount, error) {
	args := m.Called(addresses)

	var res map[domain.Address][2]domain.CurrencyAmount
	if a := args.Get(0); a != nil {
		res = a.(map[domain.Address][2]domain.CurrencyAmount)
	}
	return res, args.Error(1)
}

func (m *mockLedger) GetTxIDsSince(
	ctx context.Context, height uint32,
) ([]domain.Hash, error) {
	args := m.Called(height)

	var res []domain.Hash
	if a := args.Get(0); a != nil {
		res = a.([]domain.Hash)
	}
	return res, args.Error(1)
}

func (m *mockLedger) GetHistory(
	ctx context.Context, addresses []domain.Address, filter domain.QueryFilter,
) ([]domain.TxEntry, error) {
	args := m.Called(addresses, filter)

	var res []domain.TxEntry
	if a := args.Get(0); a != nil {
		res = a.([]domain.TxEntry)
	}
	return res, args.Error(1)
}

func (m *mockLedger) GetContract(
	ctx context.Context, address domain.Address,
) (*domain.Contract, error) {
	args := m.Called(address)

	var res *domain.Contract
	if a := args.Get(0); a != nil {
		res = a.(*domain.Contract)
	}
	return res, args.Error(1)
}

func (m *mockLedger) GetContracts(
	ctx context.Context, addresses []domain.Address,
) ([]*domain.Contract, error) {
	args := m.Called(addresses)

	var res []*domain.Contract
	if a := args.Get(0); a != nil {
		res = a.([]*domain.Contract)
	}
	return res, args.Error(1)
}

func (m *mockLedger) GetOffer(
	ctx context.Context, address domain.Address,
) (*domain.OfferInfo, error) {
	args := m.Called(address)

	var res *domain.OfferInfo
	if a := args.Get(0); a != nil {
		res = a.(*domain.OfferInfo)
	}
	return res, args.Error(1)
}

func (m *mockLedger) GetOffersBy(
	ctx context.Context, owners []domain.Address, state bool,
) ([]domain.OfferInfo, error) {
	args := m.Called(owners, state)

	var res []domain.OfferInfo
	if a := args.Get(0); a != nil {
		res = a.([]domain.OfferInfo)
	}
	return res, args.Error(1)
}

func (m *mockLedger) GetSwapInfo(
	ctx context.Context, address domain.Address,
) (*domain.SwapInfo, error) {
	args := m.Called(address)

	var res *domain.SwapInfo
	if a := args.Get(0); a != nil {
		res = a.(*domain.SwapInfo)
	}
	return res, args.Error(1)
}

func (m *mockLedger) GetPlotNFTInfo(
	ctx context.Context, address domain.Address,
) (*domain.PlotNFTInfo, error) {
	args := m.Called(address)

	var res *domain.PlotNFTInfo
	if a := args.Get(0); a != nil {
		res = a.(*domain.PlotNFTInfo)
	}
	return res, args.Error(1)
}

func (m *mockLedger) AddTransaction(
	ctx context.Context, tx *domain.Transaction, broadcast bool,
) error {
	args := m.Called(tx, broadcast)
	return args.Error(0)
}

func (m *mockLedger) Validate(
	ctx context.Context, tx *domain.Transaction,
) (*domain.ExecResult, error) {
	args := m.Called(tx)

	var res *domain.ExecResult
	if a := args.Get(0); a != nil {
		res = a.(*domain.ExecResult)
	}
	return res, args.Error(1)
}

// mockIdleLedger sets up the calls of a cache refresh for a ledger where
// only the given balances exist.
func mockIdleLedger(
	m *mockLedger, height uint32, balances map[domain.BalanceKey]uint64,
) {
	m.On("GetHeight").Return(height, nil)
	m.On("GetAllBalances", mock.Anything, mock.Anything).Return(balances, nil)
	m.On("GetContractsOwnedBy", mock.Anything, mock.Anything).
		Return([]domain.Address{}, nil)
	m.On("GetSwapLiquidityBy", mock.Anything).
		Return(map[domain.Address][2]domain.CurrencyAmount{}, nil)
	m.On("GetTxIDsSince", mock.Anything).Return([]domain.Hash{}, nil)
}
