package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/hdwallet/internal/core/domain"
	"github.com/tdex-network/hdwallet/internal/core/ports"
	"github.com/tdex-network/hdwallet/internal/infrastructure/ledger"
)

var ctx = context.Background()

// mockLedger only overrides the methods exercised here, the embedded nil
// interface panics on anything else.
type mockLedger struct {
	ports.LedgerClient
	mock.Mock
}

func (m *mockLedger) GetHeight(ctx context.Context) (uint32, error) {
	args := m.Called(ctx)

	var res uint32
	if a := args.Get(0); a != nil {
		res = a.(uint32)
	}
	return res, args.Error(1)
}

func (m *mockLedger) GetContract(
	ctx context.Context, address domain.Address,
) (*domain.Contract, error) {
	args := m.Called(ctx, address)

	var res *domain.Contract
	if a := args.Get(0); a != nil {
		res = a.(*domain.Contract)
	}
	return res, args.Error(1)
}

func (m *mockLedger) AddTransaction(
	ctx context.Context, tx *domain.Transaction, broadcast bool,
) error {
	args := m.Called(ctx, tx, broadcast)
	return args.Error(0)
}

func TestOfflineClient(t *testing.T) {
	client := ledger.NewOfflineClient()

	_, err := client.GetHeight(ctx)
	require.ErrorIs(t, err, ledger.ErrLedgerUnavailable)
	_, err = client.GetAllBalances(ctx, nil, nil)
	require.ErrorIs(t, err, ledger.ErrLedgerUnavailable)
	err = client.AddTransaction(ctx, domain.NewTransaction(), true)
	require.ErrorIs(t, err, ledger.ErrLedgerUnavailable)
	_, err = client.Validate(ctx, domain.NewTransaction())
	require.ErrorIs(t, err, ledger.ErrLedgerUnavailable)
}

func TestGuardedClient(t *testing.T) {
	t.Run("null inner client", func(t *testing.T) {
		client, err := ledger.NewGuardedClient(nil, 0)
		require.ErrorIs(t, err, ledger.ErrNullClient)
		require.Nil(t, client)
	})

	t.Run("forwards calls", func(t *testing.T) {
		address := domain.Address(chainhash.DoubleHashH([]byte("contract")))
		contract := &domain.Contract{TypeName: domain.ContractTypeToken, Symbol: "TKN"}
		tx := domain.NewTransaction()

		inner := &mockLedger{}
		inner.On("GetHeight", mock.Anything).Return(uint32(42), nil)
		inner.On("GetContract", mock.Anything, address).Return(contract, nil)
		inner.On("GetContract", mock.Anything, mock.Anything).Return(nil, nil)
		inner.On("AddTransaction", mock.Anything, tx, true).Return(nil)

		client, err := ledger.NewGuardedClient(inner, 100)
		require.NoError(t, err)

		height, err := client.GetHeight(ctx)
		require.NoError(t, err)
		require.Equal(t, uint32(42), height)

		got, err := client.GetContract(ctx, address)
		require.NoError(t, err)
		require.Equal(t, contract, got)

		got, err = client.GetContract(ctx, domain.Address{})
		require.NoError(t, err)
		require.Nil(t, got)

		require.NoError(t, client.AddTransaction(ctx, tx, true))
		inner.AssertExpectations(t)
	})

	t.Run("opens after repeated failures", func(t *testing.T) {
		nodeErr := errors.New("connection refused")
		inner := &mockLedger{}
		inner.On("GetHeight", mock.Anything).Return(nil, nodeErr)

		client, err := ledger.NewGuardedClient(inner, 0)
		require.NoError(t, err)

		for i := 0; i <= ledger.MaxNumOfFailingRequests; i++ {
			_, err := client.GetHeight(ctx)
			require.ErrorIs(t, err, nodeErr)
		}

		_, err = client.GetHeight(ctx)
		require.ErrorIs(t, err, ledger.ErrLedgerUnavailable)
		inner.AssertNumberOfCalls(t, "GetHeight", ledger.MaxNumOfFailingRequests+1)
	})

	t.Run("canceled context", func(t *testing.T) {
		inner := &mockLedger{}
		client, err := ledger.NewGuardedClient(inner, 0)
		require.NoError(t, err)

		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err = client.GetHeight(canceled)
		require.ErrorIs(t, err, context.Canceled)
		inner.AssertNotCalled(t, "GetHeight", mock.Anything)
	})
}
