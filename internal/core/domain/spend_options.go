package domain

// SpendOptions tunes every transaction build.
type SpendOptions struct {
	// Passphrase unlocks a locked wallet for the duration of the call.
	Passphrase *string
	// FeeRatio is the minimum fee ratio, FeeRatioUnit meaning 1x.
	FeeRatio uint64
	// GasLimit is the dynamic cost budget covered by MaxFeeAmount.
	GasLimit uint64
	// ExpireAt takes precedence over ExpireDelta.
	ExpireAt    *uint32
	ExpireDelta *uint32
	Nonce       *uint64
	AutoSend    bool
	MarkSpent   bool
	Sender      *Address
	User        *Address
	Memo        *string
	Note        *TxNote
	// OwnerMap delegates signing of a contract address to another address.
	OwnerMap map[Address]Address
}

// DefaultSpendOptions returns options that pay a 1x fee and broadcast the
// signed transaction.
func DefaultSpendOptions() SpendOptions {
	return SpendOptions{
		FeeRatio: FeeRatioUnit,
		AutoSend: true,
	}
}

// WithOwner returns a copy of the options delegating the signing of address
// to owner.
func (o SpendOptions) WithOwner(address, owner Address) SpendOptions {
	ownerMap := make(map[Address]Address, len(o.OwnerMap)+1)
	for k, v := range o.OwnerMap {
		ownerMap[k] = v
	}
	ownerMap[address] = owner
	o.OwnerMap = ownerMap
	return o
}

// WithNote ...
func (o SpendOptions) WithNote(note TxNote) SpendOptions {
	o.Note = &note
	return o
}
