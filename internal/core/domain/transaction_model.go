package domain

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/tdex-network/hdwallet/pkg/wallet"
)

// Hash is a 256-bit identifier (tx id, content hash, seed).
type Hash = chainhash.Hash

// Address identifies an account address, a contract or a currency.
type Address = wallet.Address

// NativeCurrency is the currency of fees.
var NativeCurrency = Address{}

const (
	// TxInIsExec marks an input whose spending is delegated to the owner of
	// a contract.
	TxInIsExec uint16 = 1 << iota
)

// TxIn spends an amount of a currency from an address.
type TxIn struct {
	Address  Address
	Currency Address
	Amount   uint64
	Memo     *string
	Solution uint16
	Flags    uint16
}

// TxOut sends an amount of a currency to an address.
type TxOut struct {
	Address  Address
	Currency Address
	Amount   uint64
	Memo     *string
}

// Solution authorizes inputs and operations of a transaction.
type Solution struct {
	PubKey    []byte
	Signature []byte
}

// OpKind is the discriminant of Operation.
type OpKind uint8

const (
	// OpExecute calls a method of a contract.
	OpExecute OpKind = iota
	// OpDeposit calls a method of a contract while depositing funds into it.
	OpDeposit
)

func (k OpKind) String() string {
	switch k {
	case OpExecute:
		return "execute"
	case OpDeposit:
		return "deposit"
	default:
		return "unknown"
	}
}

// Operation is a contract call attached to a transaction. Amount and
// Currency are meaningful for OpDeposit only.
type Operation struct {
	Kind     OpKind
	Address  Address
	Method   string
	Args     []interface{}
	User     *Address
	Amount   uint64
	Currency Address
	Solution uint16
}

// Contract is the definition of a contract to deploy, or the info returned
// by the ledger about a deployed one.
type Contract struct {
	TypeName   string
	Name       string
	Symbol     string
	Decimals   int
	Owner      *Address
	Binary     Address
	InitMethod string
	InitArgs   []interface{}
	Depends    map[string]Address
}

// ExecResult is the outcome of a dry-run validation.
type ExecResult struct {
	DidFail   bool
	TotalCost uint64
	TotalFee  uint64
	Message   string
}

// Transaction is the skeleton built, completed and signed by the wallet.
type Transaction struct {
	ID           Hash
	Network      string
	Expires      uint32
	FeeRatio     uint64
	StaticCost   uint64
	MaxFeeAmount uint64
	Nonce        uint64
	Note         TxNote
	Sender       *Address
	Inputs       []TxIn
	Outputs      []TxOut
	Operations   []Operation
	Deploy       *Contract
	Solutions    []Solution
	ContentHash  Hash
	ExecResult   *ExecResult
}

// NewTransaction returns an empty transaction that never expires and pays a
// 1x fee.
func NewTransaction() *Transaction {
	return &Transaction{
		Expires:  NoExpiry,
		FeeRatio: FeeRatioUnit,
	}
}

// NewExecuteOp ...
func NewExecuteOp(
	address Address, method string, args []interface{}, user *Address,
) Operation {
	return Operation{
		Kind:     OpExecute,
		Address:  address,
		Method:   method,
		Args:     args,
		User:     user,
		Solution: NoSolution,
	}
}

// NewDepositOp ...
func NewDepositOp(
	address Address, method string, args []interface{}, user *Address,
	amount uint64, currency Address,
) Operation {
	return Operation{
		Kind:     OpDeposit,
		Address:  address,
		Method:   method,
		Args:     args,
		User:     user,
		Amount:   amount,
		Currency: currency,
		Solution: NoSolution,
	}
}

// IsValid tells whether the contract can be deployed.
func (c *Contract) IsValid() bool {
	if c == nil || c.TypeName == "" {
		return false
	}
	if c.TypeName == ContractTypeExecutable {
		return !c.Binary.IsZero()
	}
	return true
}
