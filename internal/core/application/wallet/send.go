package wallet

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/hdwallet/internal/core/domain"
)

// Send transfers amount of currency to dst.
func (s *Service) Send(
	ctx context.Context, index uint32, amount uint64,
	dst, currency domain.Address, opts domain.SpendOptions,
) (*domain.Transaction, error) {
	if amount == 0 {
		return nil, ErrZeroAmount
	}
	if dst.IsZero() {
		return nil, ErrZeroAddress
	}

	tx := domain.NewTransaction()
	tx.Note = domain.TxNoteTransfer
	tx.Outputs = append(tx.Outputs, domain.TxOut{
		Address:  dst,
		Currency: currency,
		Amount:   amount,
		Memo:     opts.Memo,
	})

	if err := s.withSlot(index, func(sl *slot) error {
		return s.build(ctx, index, sl, tx, opts, nil)
	}); err != nil {
		return nil, err
	}

	log.WithField("txid", tx.ID).Debugf("built transfer of %d to %s", amount, dst)
	return tx, nil
}

// SendMany transfers amounts of currency to many recipients in one
// transaction.
func (s *Service) SendMany(
	ctx context.Context, index uint32, recipients []domain.AddressAmount,
	currency domain.Address, opts domain.SpendOptions,
) (*domain.Transaction, error) {
	tx := domain.NewTransaction()
	tx.Note = domain.TxNoteTransfer
	for _, r := range recipients {
		if r.Address.IsZero() {
			return nil, ErrZeroAddress
		}
		if r.Amount == 0 {
			return nil, ErrZeroAmount
		}
		tx.Outputs = append(tx.Outputs, domain.TxOut{
			Address:  r.Address,
			Currency: currency,
			Amount:   r.Amount,
			Memo:     opts.Memo,
		})
	}

	if err := s.withSlot(index, func(sl *slot) error {
		return s.build(ctx, index, sl, tx, opts, nil)
	}); err != nil {
		return nil, err
	}

	log.WithField("txid", tx.ID).Debugf("built transfer to %d recipients", len(recipients))
	return tx, nil
}

// SendFrom transfers amount of currency from src to dst. If src is a
// contract, its owner signs for it.
func (s *Service) SendFrom(
	ctx context.Context, index uint32, amount uint64,
	dst, src, currency domain.Address, opts domain.SpendOptions,
) (*domain.Transaction, error) {
	if amount == 0 {
		return nil, ErrZeroAmount
	}
	if dst.IsZero() {
		return nil, ErrZeroAddress
	}

	contract, err := s.ledger.GetContract(ctx, src)
	if err != nil {
		return nil, err
	}
	if contract != nil {
		// TODO: support multisig contracts, they have no single owner.
		if contract.Owner == nil {
			return nil, ErrContractWithoutOwner
		}
		opts = opts.WithOwner(src, *contract.Owner)
	}

	tx := domain.NewTransaction()
	tx.Note = domain.TxNoteWithdraw
	tx.Inputs = append(tx.Inputs, domain.TxIn{
		Address:  src,
		Currency: currency,
		Amount:   amount,
		Solution: domain.NoSolution,
	})
	tx.Outputs = append(tx.Outputs, domain.TxOut{
		Address:  dst,
		Currency: currency,
		Amount:   amount,
		Memo:     opts.Memo,
	})

	if err := s.withSlot(index, func(sl *slot) error {
		return s.build(ctx, index, sl, tx, opts, nil)
	}); err != nil {
		return nil, err
	}
	return tx, nil
}

// Deploy deploys contract. Its address is the id of the returned
// transaction.
func (s *Service) Deploy(
	ctx context.Context, index uint32, contract *domain.Contract,
	opts domain.SpendOptions,
) (*domain.Transaction, error) {
	var tx *domain.Transaction
	if err := s.withSlot(index, func(sl *slot) (err error) {
		tx, err = s.deploy(ctx, index, sl, contract, opts)
		return
	}); err != nil {
		return nil, err
	}
	return tx, nil
}

// Execute calls method of the contract at address. The call is signed by
// the address at index user of the account if given, by opts.User
// otherwise, or left unsigned if none.
func (s *Service) Execute(
	ctx context.Context, index uint32, address domain.Address, method string,
	args []interface{}, user *uint32, opts domain.SpendOptions,
) (*domain.Transaction, error) {
	var tx *domain.Transaction
	if err := s.withSlot(index, func(sl *slot) (err error) {
		tx, err = s.execute(ctx, index, sl, address, method, args, user, opts)
		return
	}); err != nil {
		return nil, err
	}
	return tx, nil
}

// Deposit calls method of the contract at address while depositing amount
// of currency into it.
func (s *Service) Deposit(
	ctx context.Context, index uint32, address domain.Address, method string,
	args []interface{}, amount uint64, currency domain.Address,
	opts domain.SpendOptions,
) (*domain.Transaction, error) {
	var tx *domain.Transaction
	if err := s.withSlot(index, func(sl *slot) (err error) {
		tx, err = s.deposit(
			ctx, index, sl, address, method, args, amount, currency, opts,
		)
		return
	}); err != nil {
		return nil, err
	}
	return tx, nil
}

// Complete returns a funded and signed copy of tx.
func (s *Service) Complete(
	ctx context.Context, index uint32, tx *domain.Transaction,
	opts domain.SpendOptions,
) (*domain.Transaction, error) {
	if tx == nil {
		return nil, domain.ErrNullTransaction
	}

	completed := tx.Clone()
	if err := s.withSlot(index, func(sl *slot) error {
		if err := s.updateCache(ctx, index, sl); err != nil {
			return err
		}
		return sl.wallet.Complete(completed, s.applyDefaults(opts), nil)
	}); err != nil {
		return nil, err
	}
	return completed, nil
}

// SignOff returns a signed copy of tx.
func (s *Service) SignOff(
	ctx context.Context, index uint32, tx *domain.Transaction,
	opts domain.SpendOptions,
) (*domain.Transaction, error) {
	if tx == nil {
		return nil, domain.ErrNullTransaction
	}

	signed := tx.Clone()
	if err := s.withSlot(index, func(sl *slot) error {
		if err := s.updateCache(ctx, index, sl); err != nil {
			return err
		}
		return sl.wallet.SignOff(signed, opts)
	}); err != nil {
		return nil, err
	}
	return signed, nil
}

// SignMsg signs msg with the key of address. It returns nil if the address
// does not belong to the account.
func (s *Service) SignMsg(
	_ context.Context, index uint32, address domain.Address, msg domain.Hash,
) (*domain.Solution, error) {
	var sol *domain.Solution
	if err := s.withSlot(index, func(sl *slot) (err error) {
		sol, err = sl.wallet.SignMsg(address, msg)
		return
	}); err != nil {
		return nil, err
	}
	return sol, nil
}

// SendOff broadcasts tx, reserves the funds it spends and appends it to the
// log of the account. It is not idempotent.
func (s *Service) SendOff(
	ctx context.Context, index uint32, tx *domain.Transaction,
) error {
	if tx == nil {
		return domain.ErrNullTransaction
	}
	return s.withSlot(index, func(sl *slot) error {
		return s.sendOff(ctx, index, sl, tx)
	})
}

// GatherInputsFor returns the inputs the account at index would use to fund
// amount of currency.
func (s *Service) GatherInputsFor(
	ctx context.Context, index uint32, amount uint64, currency domain.Address,
	opts domain.SpendOptions,
) ([]domain.TxIn, error) {
	tx := domain.NewTransaction()
	if err := s.withSlot(index, func(sl *slot) error {
		if err := s.updateCache(ctx, index, sl); err != nil {
			return err
		}
		spent := make(map[domain.BalanceKey]uint64)
		return sl.wallet.GatherInputs(tx, spent, amount, currency, opts)
	}); err != nil {
		return nil, err
	}
	return tx.Inputs, nil
}

func (s *Service) deploy(
	ctx context.Context, index uint32, sl *slot, contract *domain.Contract,
	opts domain.SpendOptions,
) (*domain.Transaction, error) {
	if !contract.IsValid() {
		return nil, ErrInvalidContract
	}

	tx := domain.NewTransaction()
	tx.Note = domain.TxNoteDeploy
	tx.Deploy = contract

	if err := s.build(ctx, index, sl, tx, opts, nil); err != nil {
		return nil, err
	}

	log.WithField("txid", tx.ID).Debugf(
		"built deploy of %s as %s", contract.TypeName, tx.ContractAddress(),
	)
	return tx, nil
}

func (s *Service) execute(
	ctx context.Context, index uint32, sl *slot, address domain.Address,
	method string, args []interface{}, user *uint32, opts domain.SpendOptions,
) (*domain.Transaction, error) {
	if address.IsZero() {
		return nil, ErrZeroAddress
	}

	userAddress := opts.User
	if user != nil {
		addr, err := sl.wallet.Address(int(*user))
		if err != nil {
			return nil, err
		}
		userAddress = &addr
	}

	tx := domain.NewTransaction()
	tx.Note = domain.TxNoteExecute
	tx.Operations = append(
		tx.Operations, domain.NewExecuteOp(address, method, args, userAddress),
	)

	if err := s.build(ctx, index, sl, tx, opts, nil); err != nil {
		return nil, err
	}

	log.WithField("txid", tx.ID).Debugf("built call of %s() on %s", method, address)
	return tx, nil
}

func (s *Service) deposit(
	ctx context.Context, index uint32, sl *slot, address domain.Address,
	method string, args []interface{}, amount uint64, currency domain.Address,
	opts domain.SpendOptions,
) (*domain.Transaction, error) {
	if address.IsZero() {
		return nil, ErrZeroAddress
	}
	if amount == 0 {
		return nil, ErrZeroAmount
	}

	tx := domain.NewTransaction()
	tx.Note = domain.TxNoteDeposit
	tx.Operations = append(tx.Operations, domain.NewDepositOp(
		address, method, args, opts.User, amount, currency,
	))

	if err := s.build(ctx, index, sl, tx, opts, nil); err != nil {
		return nil, err
	}

	log.WithField("txid", tx.ID).Debugf(
		"built deposit of %d into %s() on %s", amount, method, address,
	)
	return tx, nil
}

// build refreshes the cache, completes tx and then either broadcasts it or
// attaches the outcome of a dry run. Must be called with the slot mutex
// held.
func (s *Service) build(
	ctx context.Context, index uint32, sl *slot, tx *domain.Transaction,
	opts domain.SpendOptions, deposits []domain.CurrencyAmount,
) error {
	if err := s.updateCache(ctx, index, sl); err != nil {
		return err
	}

	opts = s.applyDefaults(opts)
	if err := sl.wallet.Complete(tx, opts, deposits); err != nil {
		return err
	}

	if tx.IsSigned() {
		if opts.AutoSend {
			if err := s.sendOff(ctx, index, sl, tx); err != nil {
				return err
			}
		} else {
			res, err := s.ledger.Validate(ctx, tx)
			if err != nil {
				return err
			}
			tx.ExecResult = res
		}
	}

	if opts.MarkSpent {
		return sl.wallet.UpdateFrom(tx)
	}
	return nil
}

func (s *Service) sendOff(
	ctx context.Context, index uint32, sl *slot, tx *domain.Transaction,
) error {
	s.timers.reset(index)

	if err := s.ledger.AddTransaction(ctx, tx, true); err != nil {
		return err
	}
	if err := sl.wallet.UpdateFrom(tx); err != nil {
		return err
	}
	s.metrics.txsSent.WithLabelValues(string(tx.Note)).Inc()

	owner, err := sl.wallet.Address(0)
	if err != nil {
		return err
	}
	entry := domain.TxLogEntry{Time: s.clock.Now().UnixMilli(), Tx: tx}
	if err := s.repo.TxLogRepository().AddEntry(ctx, owner, entry); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"account": index,
		"note":    tx.Note,
		"cost":    tx.StaticCost,
		"txid":    tx.ID,
	}).Info("transaction sent")
	return nil
}
