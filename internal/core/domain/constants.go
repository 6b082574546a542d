package domain

import "math"

const (
	// FeeRatioUnit is the fee ratio of a 1x fee.
	FeeRatioUnit = 1024
	// NoSolution marks an input or operation that has not been signed.
	NoSolution = math.MaxUint16
	// NoExpiry is the expiry height of a transaction that never expires.
	NoExpiry = math.MaxUint32

	DefaultNumAddresses  = 100
	DefaultMaxAddresses  = 10000
	DefaultMaxKeyFiles   = 100
	DefaultExpireHeights = 100
)

// TxNote categorizes a transaction for history and logs.
type TxNote string

const (
	TxNoteTransfer TxNote = "TRANSFER"
	TxNoteWithdraw TxNote = "WITHDRAW"
	TxNoteDeploy   TxNote = "DEPLOY"
	TxNoteExecute  TxNote = "EXECUTE"
	TxNoteDeposit  TxNote = "DEPOSIT"
	TxNoteOffer    TxNote = "OFFER"
	TxNoteTrade    TxNote = "TRADE"
	TxNoteRevoke   TxNote = "REVOKE"
	TxNoteMint     TxNote = "MINT"
)

const (
	ContractTypeToken      = "token"
	ContractTypeExecutable = "executable"
)
