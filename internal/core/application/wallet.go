package application

import (
	"context"
	"math/big"

	"github.com/tdex-network/hdwallet/internal/core/application/wallet"
	"github.com/tdex-network/hdwallet/internal/core/domain"
	hdwallet "github.com/tdex-network/hdwallet/pkg/wallet"
)

// WalletService manages every account of the wallet. Accounts are addressed
// by slot index.
type WalletService interface {
	Start(ctx context.Context) error
	Close()

	// Lifecycle
	AddAccount(
		ctx context.Context, index uint32, config domain.AccountConfig,
		passphrase *string,
	) error
	CreateAccount(
		ctx context.Context, config domain.AccountConfig, passphrase *string,
	) (uint32, error)
	CreateWallet(
		ctx context.Context, config domain.AccountConfig, mnemonic []string,
		passphrase *string,
	) (uint32, error)
	ImportWallet(
		ctx context.Context, config domain.AccountConfig, keyFile domain.KeyFile,
		passphrase *string,
	) (uint32, error)
	ExportWallet(ctx context.Context, index uint32) (*domain.KeyFile, error)
	RemoveAccount(ctx context.Context, index uint32) error
	SetAddressCount(ctx context.Context, index, count uint32) error
	GetMasterSeed(ctx context.Context, index uint32) (domain.Hash, error)
	GetMnemonicSeed(ctx context.Context, index uint32) ([]string, error)

	// Locking
	Unlock(ctx context.Context, index uint32, passphrase string) error
	Lock(ctx context.Context, index uint32) error
	IsLocked(ctx context.Context, index uint32) (bool, error)

	// Cache
	UpdateCache(ctx context.Context, index uint32) error
	ResetCache(ctx context.Context, index uint32) error
	ReleaseAll()

	// Tokens
	GetTokenList(ctx context.Context) ([]domain.Address, error)
	AddToken(ctx context.Context, token domain.Address) error
	RemToken(ctx context.Context, token domain.Address) error

	// Transactions
	Send(
		ctx context.Context, index uint32, amount uint64,
		dst, currency domain.Address, opts domain.SpendOptions,
	) (*domain.Transaction, error)
	SendMany(
		ctx context.Context, index uint32, recipients []domain.AddressAmount,
		currency domain.Address, opts domain.SpendOptions,
	) (*domain.Transaction, error)
	SendFrom(
		ctx context.Context, index uint32, amount uint64,
		dst, src, currency domain.Address, opts domain.SpendOptions,
	) (*domain.Transaction, error)
	Deploy(
		ctx context.Context, index uint32, contract *domain.Contract,
		opts domain.SpendOptions,
	) (*domain.Transaction, error)
	Execute(
		ctx context.Context, index uint32, address domain.Address, method string,
		args []interface{}, user *uint32, opts domain.SpendOptions,
	) (*domain.Transaction, error)
	Deposit(
		ctx context.Context, index uint32, address domain.Address, method string,
		args []interface{}, amount uint64, currency domain.Address,
		opts domain.SpendOptions,
	) (*domain.Transaction, error)
	MakeOffer(
		ctx context.Context, index, owner uint32,
		bidAmount uint64, bidCurrency domain.Address,
		askAmount uint64, askCurrency domain.Address,
		opts domain.SpendOptions,
	) (*domain.Transaction, error)
	OfferTrade(
		ctx context.Context, index uint32, address domain.Address, amount uint64,
		dst uint32, price *big.Int, opts domain.SpendOptions,
	) (*domain.Transaction, error)
	AcceptOffer(
		ctx context.Context, index uint32, address domain.Address,
		dst uint32, price *big.Int, opts domain.SpendOptions,
	) (*domain.Transaction, error)
	CancelOffer(
		ctx context.Context, index uint32, address domain.Address,
		opts domain.SpendOptions,
	) (*domain.Transaction, error)
	OfferWithdraw(
		ctx context.Context, index uint32, address domain.Address,
		opts domain.SpendOptions,
	) (*domain.Transaction, error)
	SwapTrade(
		ctx context.Context, index uint32, address domain.Address, amount uint64,
		currency domain.Address, minTrade *uint64, numIter int,
		opts domain.SpendOptions,
	) (*domain.Transaction, error)
	SwapAddLiquid(
		ctx context.Context, index uint32, address domain.Address,
		amounts [2]uint64, poolIdx uint32, opts domain.SpendOptions,
	) (*domain.Transaction, error)
	SwapRemLiquid(
		ctx context.Context, index uint32, address domain.Address,
		amounts [2]uint64, opts domain.SpendOptions,
	) (*domain.Transaction, error)
	PlotNFTExec(
		ctx context.Context, address domain.Address, method string,
		args []interface{}, opts domain.SpendOptions,
	) (*domain.Transaction, error)
	PlotNFTCreate(
		ctx context.Context, index uint32, name string, owner *uint32,
		opts domain.SpendOptions,
	) (*domain.Transaction, error)

	// Tx plumbing
	Complete(
		ctx context.Context, index uint32, tx *domain.Transaction,
		opts domain.SpendOptions,
	) (*domain.Transaction, error)
	SignOff(
		ctx context.Context, index uint32, tx *domain.Transaction,
		opts domain.SpendOptions,
	) (*domain.Transaction, error)
	SignMsg(
		ctx context.Context, index uint32, address domain.Address, msg domain.Hash,
	) (*domain.Solution, error)
	SendOff(ctx context.Context, index uint32, tx *domain.Transaction) error
	GatherInputsFor(
		ctx context.Context, index uint32, amount uint64, currency domain.Address,
		opts domain.SpendOptions,
	) ([]domain.TxIn, error)

	// Queries
	GetHistory(
		ctx context.Context, index uint32, filter domain.QueryFilter,
	) ([]domain.TxEntry, error)
	GetTxLog(
		ctx context.Context, index uint32, limit int,
	) ([]domain.TxLogEntry, error)
	GetBalance(
		ctx context.Context, index uint32, currency domain.Address,
	) (domain.Balance, error)
	GetBalances(
		ctx context.Context, index uint32, withZero bool,
	) (map[domain.Address]domain.Balance, error)
	GetTotalBalances(
		ctx context.Context, addresses []domain.Address,
	) (map[domain.Address]uint64, error)
	GetContractBalances(
		ctx context.Context, address domain.Address,
	) (map[domain.Address]domain.Balance, error)
	GetContracts(
		ctx context.Context, index uint32, typeName *string, typeHash *domain.Hash,
	) (map[domain.Address]*domain.Contract, error)
	GetContractsOwned(
		ctx context.Context, index uint32, typeName *string, typeHash *domain.Hash,
	) (map[domain.Address]*domain.Contract, error)
	GetOffers(
		ctx context.Context, index uint32, state bool,
	) ([]domain.OfferInfo, error)
	GetSwapLiquidity(
		ctx context.Context, index uint32,
	) (map[domain.Address][2]domain.CurrencyAmount, error)
	GetAddress(ctx context.Context, index, offset uint32) (domain.Address, error)
	GetAllAddresses(ctx context.Context, index int) ([]domain.Address, error)
	FindWalletByAddr(ctx context.Context, addr domain.Address) (uint32, error)
	GetFarmerKeys(ctx context.Context, index uint32) (*hdwallet.KeyPair, error)
	GetAllFarmerKeys(ctx context.Context) ([]*hdwallet.KeyPair, error)
	GetAccount(ctx context.Context, index uint32) (*domain.AccountInfo, error)
	GetAllAccounts(ctx context.Context) ([]domain.AccountInfo, error)
	GetPlotNFTOwner(
		ctx context.Context, address domain.Address,
	) (domain.Address, error)
}

func NewWalletService(opts wallet.Opts) (WalletService, error) {
	svc, err := wallet.NewService(opts)
	if err != nil {
		return nil, err
	}
	return svc, nil
}
