package domain

// TxEntry is one history record returned by the ledger.
type TxEntry struct {
	Height      uint32
	TxID        Hash
	Type        string
	Address     Address
	Currency    Address
	Amount      uint64
	Memo        *string
	IsValidated bool
}

// QueryFilter restricts history queries.
type QueryFilter struct {
	Since     uint32
	Until     uint32
	Limit     int
	MaxSearch int
	Currency  []Address
	Type      string
	WhiteList bool
}

// OfferInfo is the state of an offer contract.
type OfferInfo struct {
	Address     Address
	Owner       Address
	BidCurrency Address
	AskCurrency Address
	BidBalance  uint64
	AskBalance  uint64
	// AskAmount is the amount of ask currency that buys the whole bid balance.
	AskAmount   uint64
	InvPrice    string
	IsOpen      bool
}

// SwapInfo is the state of a liquidity pool contract.
type SwapInfo struct {
	Address  Address
	Name     string
	Tokens   [2]Address
	Balance  [2]uint64
	Volume   [2]uint64
	FeeRates []float64
}

// PlotNFTInfo is the state of a plot NFT contract.
type PlotNFTInfo struct {
	Address      Address
	Name         string
	Owner        Address
	IsLocked     bool
	UnlockHeight *uint32
	ServerURL    *string
}

// TxLogEntry is one transaction issued by the wallet.
type TxLogEntry struct {
	Time int64
	Tx   *Transaction
}
