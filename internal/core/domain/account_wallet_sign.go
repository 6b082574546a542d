package domain

// SignOff finalizes tx and signs it once per distinct owner of the sender,
// the inputs and the operations that still miss a solution. A locked wallet
// is unlocked with opts.Passphrase for the duration of the call.
func (w *AccountWallet) SignOff(tx *Transaction, opts SpendOptions) error {
	if tx == nil {
		return ErrNullTransaction
	}
	relock, err := w.unlockForCall(opts)
	if err != nil {
		return err
	}
	defer relock()

	work := tx.Clone()
	if err := w.signOff(work, opts); err != nil {
		return err
	}
	*tx = *work
	return nil
}

// SignMsg signs msg with the key of address. It returns nil when the address
// does not belong to the wallet.
func (w *AccountWallet) SignMsg(address Address, msg Hash) (*Solution, error) {
	if w.IsLocked() {
		return nil, ErrLockedAccount
	}
	key, err := w.KeyPairFor(address)
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, nil
	}
	return &Solution{
		PubKey:    append([]byte(nil), key.PublicKey...),
		Signature: key.Sign(msg),
	}, nil
}

// Complete funds tx with inputs for every output, deposit operation and
// extra deposit, picks a sender able to pay the fee if missing, and signs it.
// tx is left untouched on failure.
func (w *AccountWallet) Complete(
	tx *Transaction, opts SpendOptions, deposits []CurrencyAmount,
) error {
	if tx == nil {
		return ErrNullTransaction
	}
	relock, err := w.unlockForCall(opts)
	if err != nil {
		return err
	}
	defer relock()

	work := tx.Clone()
	if err := w.complete(work, opts, deposits); err != nil {
		return err
	}
	*tx = *work
	return nil
}

func (w *AccountWallet) complete(
	tx *Transaction, opts SpendOptions, deposits []CurrencyAmount,
) error {
	if opts.Note != nil {
		tx.Note = *opts.Note
	}
	switch {
	case opts.ExpireAt != nil:
		tx.Expires = minUint32(tx.Expires, *opts.ExpireAt)
	case opts.ExpireDelta != nil:
		tx.Expires = minUint32(tx.Expires, addHeight(w.height, *opts.ExpireDelta))
	default:
		tx.Expires = minUint32(tx.Expires, addHeight(w.height, w.defaultExpire))
	}
	if opts.FeeRatio > tx.FeeRatio {
		tx.FeeRatio = opts.FeeRatio
	}

	missing := make(map[Address]uint64)
	for _, out := range tx.Outputs {
		if err := addTo(missing, out.Currency, out.Amount); err != nil {
			return err
		}
	}
	for _, op := range tx.Operations {
		if op.Kind == OpDeposit {
			if err := addTo(missing, op.Currency, op.Amount); err != nil {
				return err
			}
		}
	}
	for _, in := range tx.Inputs {
		missing[in.Currency] = clampedSub(missing[in.Currency], in.Amount)
	}
	for _, d := range deposits {
		if err := addTo(missing, d.Currency, d.Amount); err != nil {
			return err
		}
	}

	spent := make(map[BalanceKey]uint64)
	for _, currency := range SortedAddresses(missing) {
		if amount := missing[currency]; amount > 0 {
			if err := w.GatherInputs(tx, spent, amount, currency, opts); err != nil {
				return err
			}
		}
	}

	staticCost, err := tx.CalcCost(w.params)
	if err != nil {
		return err
	}
	staticFee, err := CostToFee(staticCost, tx.FeeRatio)
	if err != nil {
		return err
	}
	if staticCost+opts.GasLimit < staticCost {
		return ErrFeeOverflow
	}
	maxFee, err := CostToFee(staticCost+opts.GasLimit, tx.FeeRatio)
	if err != nil {
		return err
	}
	tx.MaxFeeAmount = maxFee

	if tx.Sender == nil {
		if opts.Sender != nil {
			sender := *opts.Sender
			tx.Sender = &sender
		} else {
			sender, ok := w.pickSender(spent, staticFee)
			if !ok {
				return ErrInsufficientFundsForFee
			}
			tx.Sender = &sender
		}
	}

	return w.signOff(tx, opts)
}

// pickSender returns the address with the largest native residual balance,
// if it covers fee.
func (w *AccountWallet) pickSender(
	spent map[BalanceKey]uint64, fee uint64,
) (Address, bool) {
	var (
		maxAddress Address
		maxAmount  uint64
		found      bool
	)
	for _, key := range SortedBalanceKeys(w.balanceMap) {
		if key.Currency != NativeCurrency {
			continue
		}
		balance := clampedSub(w.balanceMap[key], spent[key])
		if balance > maxAmount {
			maxAmount = balance
			maxAddress = key.Address
			found = true
		}
	}
	return maxAddress, found && maxAmount >= fee
}

func (w *AccountWallet) signOff(tx *Transaction, opts SpendOptions) error {
	if opts.Nonce != nil {
		tx.Nonce = *opts.Nonce
	}
	tx.Network = w.params.Network
	if err := tx.Finalize(); err != nil {
		return err
	}

	solutions := make(map[Address]uint16)
	sign := func(owner Address) (uint16, error) {
		if index, ok := solutions[owner]; ok {
			return index, nil
		}
		sol, err := w.SignMsg(owner, tx.ID)
		if err != nil {
			return NoSolution, err
		}
		if sol == nil {
			return NoSolution, nil
		}
		index := uint16(len(tx.Solutions))
		solutions[owner] = index
		tx.Solutions = append(tx.Solutions, *sol)
		return index, nil
	}

	if tx.Sender != nil && len(tx.Solutions) == 0 {
		if _, err := sign(*tx.Sender); err != nil {
			return err
		}
	}

	for i := range tx.Inputs {
		in := &tx.Inputs[i]
		if in.Solution != NoSolution {
			continue
		}
		owner := in.Address
		if delegate, ok := opts.OwnerMap[owner]; ok {
			in.Flags |= TxInIsExec
			owner = delegate
		}
		index, err := sign(owner)
		if err != nil {
			return err
		}
		in.Solution = index
	}

	for i := range tx.Operations {
		op := &tx.Operations[i]
		if op.Solution != NoSolution {
			continue
		}
		var owner Address
		switch op.Kind {
		case OpExecute, OpDeposit:
			if op.User == nil {
				continue
			}
			owner = *op.User
		default:
			owner = op.Address
			if delegate, ok := opts.OwnerMap[op.Address]; ok {
				owner = delegate
			}
		}
		index, err := sign(owner)
		if err != nil {
			return err
		}
		op.Solution = index
	}

	staticCost, err := tx.CalcCost(w.params)
	if err != nil {
		return err
	}
	tx.StaticCost = staticCost
	contentHash, err := tx.CalcHash(true)
	if err != nil {
		return err
	}
	tx.ContentHash = contentHash
	return nil
}

func addHeight(height, delta uint32) uint32 {
	if sum := height + delta; sum >= height {
		return sum
	}
	return NoExpiry
}

func minUint32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}
