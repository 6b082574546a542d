package wallet

import (
	"context"
	"fmt"

	"github.com/tdex-network/hdwallet/internal/core/domain"
)

// PlotNFTExec calls method of the plot NFT at address with the account
// owning it.
func (s *Service) PlotNFTExec(
	ctx context.Context, address domain.Address, method string,
	args []interface{}, opts domain.SpendOptions,
) (*domain.Transaction, error) {
	owner, err := s.GetPlotNFTOwner(ctx, address)
	if err != nil {
		return nil, err
	}
	index, err := s.FindWalletByAddr(ctx, owner)
	if err != nil {
		return nil, err
	}
	opts.User = &owner
	return s.Execute(ctx, index, address, method, args, nil, opts)
}

// PlotNFTCreate deploys a plot NFT named name, owned by the address at index
// owner of the account, or by its first address.
func (s *Service) PlotNFTCreate(
	ctx context.Context, index uint32, name string, owner *uint32,
	opts domain.SpendOptions,
) (*domain.Transaction, error) {
	var tx *domain.Transaction
	if err := s.withSlot(index, func(sl *slot) error {
		offset := 0
		if owner != nil {
			offset = int(*owner)
		}
		ownerAddress, err := sl.wallet.Address(offset)
		if err != nil {
			return err
		}
		nft := &domain.Contract{
			TypeName:   domain.ContractTypeExecutable,
			Name:       name,
			Binary:     s.params.PlotNFTBinary,
			InitMethod: "init",
			InitArgs:   []interface{}{ownerAddress.String()},
		}
		tx, err = s.deploy(ctx, index, sl, nft, opts)
		return err
	}); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetPlotNFTOwner returns the owner of the plot NFT at address.
func (s *Service) GetPlotNFTOwner(
	ctx context.Context, address domain.Address,
) (domain.Address, error) {
	info, err := s.ledger.GetPlotNFTInfo(ctx, address)
	if err != nil {
		return domain.Address{}, err
	}
	if info == nil {
		return domain.Address{}, fmt.Errorf("%w: %s", ErrNotPlotNFT, address)
	}
	return info.Owner, nil
}
