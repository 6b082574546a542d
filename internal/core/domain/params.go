package domain

import (
	"math/bits"
)

// ChainParams are the ledger constants the wallet relies on to build and
// price transactions.
type ChainParams struct {
	Network     string
	MinFeeRatio uint64
	CommitDelay uint32

	TxBaseCost     uint64
	TxInputCost    uint64
	TxOutputCost   uint64
	TxExecuteCost  uint64
	TxSolutionCost uint64
	TxDeployCost   uint64
	TxByteCost     uint64

	// Addresses of the on-chain binaries used by offers, swaps and plot NFTs.
	OfferBinary   Address
	SwapBinary    Address
	PlotNFTBinary Address
}

// DefaultChainParams returns the mainnet parameters.
func DefaultChainParams() *ChainParams {
	return &ChainParams{
		Network:        "mainnet",
		MinFeeRatio:    FeeRatioUnit,
		CommitDelay:    18,
		TxBaseCost:     5000,
		TxInputCost:    1000,
		TxOutputCost:   1000,
		TxExecuteCost:  10000,
		TxSolutionCost: 1000,
		TxDeployCost:   50000,
		TxByteCost:     10,
	}
}

// CostToFee converts a static cost into a fee amount for the given fee ratio,
// where FeeRatioUnit means 1x.
func CostToFee(cost, feeRatio uint64) (uint64, error) {
	hi, lo := bits.Mul64(cost, feeRatio)
	if hi >= FeeRatioUnit {
		return 0, ErrFeeOverflow
	}
	quo, _ := bits.Div64(hi, lo, FeeRatioUnit)
	return quo, nil
}
