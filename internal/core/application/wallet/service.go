package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lightningnetwork/lnd/clock"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/hdwallet/internal/core/domain"
	"github.com/tdex-network/hdwallet/internal/core/ports"
	hdwallet "github.com/tdex-network/hdwallet/pkg/wallet"
)

// DefaultKeyFile is loaded in slot 0 when no key file is configured.
const DefaultKeyFile = "wallet.dat"

// Opts configures a Service. Zero values get the package defaults.
type Opts struct {
	Ledger     ports.LedgerClient
	KeyStore   ports.KeyStore
	Repository ports.RepoManager
	Params     *domain.ChainParams
	Clock      clock.Clock
	// Registerer is where metrics get registered. Nil keeps them private.
	Registerer prometheus.Registerer

	// KeyFiles are loaded in the first slots, in order.
	KeyFiles      []string
	NumAddresses  uint32
	MaxAddresses  uint32
	MaxKeyFiles   uint32
	CacheTTL      time.Duration
	DefaultExpire uint32
	// LockTimeout is the inactivity after which passphrase protected
	// accounts get locked again. Zero disables it.
	LockTimeout    time.Duration
	FeeRatio       uint64
	TokenWhitelist []domain.Address
}

func (o Opts) validate() error {
	if o.Ledger == nil {
		return ErrMissingLedger
	}
	if o.KeyStore == nil {
		return ErrMissingKeyStore
	}
	if o.Repository == nil {
		return ErrMissingRepository
	}
	numAddresses, maxAddresses := o.NumAddresses, o.MaxAddresses
	if numAddresses == 0 {
		numAddresses = domain.DefaultNumAddresses
	}
	if maxAddresses == 0 {
		maxAddresses = domain.DefaultMaxAddresses
	}
	if numAddresses > maxAddresses {
		return ErrInvalidAddressLimits
	}
	maxKeyFiles := o.MaxKeyFiles
	if maxKeyFiles == 0 {
		maxKeyFiles = domain.DefaultMaxKeyFiles
	}
	if len(o.KeyFiles) > int(maxKeyFiles) {
		return fmt.Errorf("%w: too many key files", domain.ErrOutOfRange)
	}
	if o.CacheTTL < 0 || o.LockTimeout < 0 {
		return errors.New("durations must not be negative")
	}
	return nil
}

// slot holds the wallet of one account. mu is held for the whole duration of
// any operation on the wallet, ledger round-trips included.
type slot struct {
	mu         sync.Mutex
	wallet     *domain.AccountWallet
	lastUpdate time.Time
	removed    bool
}

// Service manages the wallets of every account slot. Slots below
// MaxKeyFiles belong to the configured key files, the following ones to the
// accounts created at runtime.
type Service struct {
	ledger   ports.LedgerClient
	keyStore ports.KeyStore
	repo     ports.RepoManager
	params   *domain.ChainParams
	clock    clock.Clock

	keyFiles      []string
	maxAddresses  uint32
	maxKeyFiles   uint32
	cacheTTL      time.Duration
	defaultExpire uint32
	lockTimeout   time.Duration
	feeRatio      uint64

	// lifecycle serializes every change to the set of accounts.
	lifecycle sync.Mutex

	// lock guards the fields below. It is never acquired while waiting for a
	// slot mutex.
	lock         sync.RWMutex
	slots        []*slot
	accounts     []domain.AccountConfig
	numAddresses uint32

	tokenLock sync.RWMutex
	whitelist map[domain.Address]struct{}

	timers  *lockTimers
	metrics *metrics
}

// NewService returns a Service with no account loaded. Start loads them.
func NewService(opts Opts) (*Service, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	params := opts.Params
	if params == nil {
		params = domain.DefaultChainParams()
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.NewDefaultClock()
	}
	numAddresses := opts.NumAddresses
	if numAddresses == 0 {
		numAddresses = domain.DefaultNumAddresses
	}
	maxAddresses := opts.MaxAddresses
	if maxAddresses == 0 {
		maxAddresses = domain.DefaultMaxAddresses
	}
	maxKeyFiles := opts.MaxKeyFiles
	if maxKeyFiles == 0 {
		maxKeyFiles = domain.DefaultMaxKeyFiles
	}
	defaultExpire := opts.DefaultExpire
	if defaultExpire == 0 {
		defaultExpire = domain.DefaultExpireHeights
	}
	feeRatio := opts.FeeRatio
	if feeRatio < params.MinFeeRatio {
		feeRatio = params.MinFeeRatio
	}

	whitelist := map[domain.Address]struct{}{domain.NativeCurrency: {}}
	for _, token := range opts.TokenWhitelist {
		whitelist[token] = struct{}{}
	}

	return &Service{
		ledger:        opts.Ledger,
		keyStore:      opts.KeyStore,
		repo:          opts.Repository,
		params:        params,
		clock:         clk,
		keyFiles:      append([]string(nil), opts.KeyFiles...),
		maxAddresses:  maxAddresses,
		maxKeyFiles:   maxKeyFiles,
		cacheTTL:      opts.CacheTTL,
		defaultExpire: defaultExpire,
		lockTimeout:   opts.LockTimeout,
		feeRatio:      feeRatio,
		numAddresses:  numAddresses,
		whitelist:     whitelist,
		timers:        newLockTimers(clk),
		metrics:       newMetrics(opts.Registerer),
	}, nil
}

// Start loads the key file accounts, then the persisted ones. Accounts that
// fail to load are skipped with a warning.
func (s *Service) Start(ctx context.Context) error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	settings, err := s.repo.SettingsRepository().GetSettings(ctx)
	if err != nil {
		return err
	}

	s.lock.Lock()
	if settings.NumAddresses != nil {
		s.numAddresses = *settings.NumAddresses
	}
	s.accounts = append([]domain.AccountConfig(nil), settings.Accounts...)
	s.lock.Unlock()

	s.tokenLock.Lock()
	for _, token := range settings.TokenWhitelist {
		s.whitelist[token] = struct{}{}
	}
	s.tokenLock.Unlock()

	return s.load(ctx)
}

// Close locks every account and stops the auto-lock timers.
func (s *Service) Close() {
	s.timers.stopAll()

	s.lock.RLock()
	slots := append([]*slot(nil), s.slots...)
	s.lock.RUnlock()

	for _, sl := range slots {
		if sl == nil {
			continue
		}
		sl.mu.Lock()
		sl.wallet.Lock()
		sl.mu.Unlock()
	}
}

func (s *Service) load(ctx context.Context) error {
	keyFiles := s.keyFiles
	if len(keyFiles) <= 0 {
		_, err := s.keyStore.GetKeyFile(DefaultKeyFile)
		if err == nil {
			keyFiles = []string{DefaultKeyFile}
		} else if !errors.Is(err, ports.ErrKeyFileNotFound) {
			return err
		}
	}

	s.lock.RLock()
	numAddresses := s.numAddresses
	accounts := append([]domain.AccountConfig(nil), s.accounts...)
	s.lock.RUnlock()

	for i, keyFile := range keyFiles {
		config := domain.AccountConfig{
			KeyFile:      keyFile,
			NumAddresses: numAddresses,
		}
		if err := s.addAccount(ctx, uint32(i), config, nil); err != nil {
			log.WithError(err).Warnf("failed to load key file %s", keyFile)
		}
	}
	for i, config := range accounts {
		if config.Hidden {
			continue
		}
		index := s.maxKeyFiles + uint32(i)
		if err := s.addAccount(ctx, index, config, nil); err != nil {
			log.WithError(err).Warnf("failed to load account %d", index)
		}
	}
	return nil
}

// addAccount builds the wallet of config and installs it at index. A
// passphrase protected account without passphrase is loaded locked with the
// addresses of its address book. The caller must hold the lifecycle mutex.
func (s *Service) addAccount(
	ctx context.Context, index uint32, config domain.AccountConfig,
	passphrase *string,
) error {
	if s.hasSlot(index) {
		return ErrAccountExists
	}

	keyFile, err := s.keyStore.GetKeyFile(config.KeyFile)
	if err != nil {
		return fmt.Errorf("failed to read key file %s: %w", config.KeyFile, err)
	}

	if config.WithPassphrase && passphrase == nil {
		addresses, err := s.repo.AddressBookRepository().GetAddresses(
			ctx, config.Fingerprint, config.Index,
		)
		if err != nil {
			return err
		}
		if len(addresses) <= 0 {
			log.Warnf("missing address book for account %d", index)
		}
		w, err := domain.NewAccountWalletWithAddresses(
			keyFile.Seed, config, s.params, addresses,
		)
		if err != nil {
			return err
		}
		w.SetDefaultExpire(s.defaultExpire)
		s.install(index, &slot{wallet: w})
		return nil
	}

	pass := ""
	if passphrase != nil {
		pass = *passphrase
	}
	if config.Fingerprint == "" {
		config.Fingerprint = hdwallet.Fingerprint(keyFile.Seed, pass)
	}
	w, err := domain.NewAccountWallet(keyFile.Seed, config, s.params)
	if err != nil {
		return err
	}
	w.SetDefaultExpire(s.defaultExpire)

	sl := &slot{wallet: w}
	if err := s.unlockSlot(ctx, index, sl, pass, false); err != nil {
		return err
	}
	if passphrase != nil {
		w.Lock()
	}
	s.install(index, sl)

	log.WithFields(log.Fields{
		"account":  index,
		"key_file": config.KeyFile,
		"locked":   w.IsLocked(),
	}).Debug("account loaded")
	return nil
}

func (s *Service) hasSlot(index uint32) bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return int(index) < len(s.slots) && s.slots[index] != nil
}

func (s *Service) install(index uint32, sl *slot) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if int(index) >= len(s.slots) {
		slots := make([]*slot, index+1)
		copy(slots, s.slots)
		s.slots = slots
	}
	s.slots[index] = sl
}

// drop removes the account at index and wipes its keys.
func (s *Service) drop(index uint32) {
	s.lock.Lock()
	var sl *slot
	if int(index) < len(s.slots) {
		sl = s.slots[index]
		s.slots[index] = nil
	}
	s.lock.Unlock()

	s.timers.cancel(index)
	if sl != nil {
		sl.mu.Lock()
		sl.removed = true
		sl.wallet.Lock()
		sl.mu.Unlock()
	}
}

func (s *Service) getSlot(index uint32) (*slot, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if int(index) >= len(s.slots) || s.slots[index] == nil {
		return nil, fmt.Errorf("%w: %d", ErrAccountNotFound, index)
	}
	return s.slots[index], nil
}

// withSlot runs fn with exclusive access to the wallet at index.
func (s *Service) withSlot(index uint32, fn func(sl *slot) error) error {
	sl, err := s.getSlot(index)
	if err != nil {
		return err
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()

	if sl.removed {
		return fmt.Errorf("%w: %d", ErrAccountNotFound, index)
	}
	return fn(sl)
}

type indexedSlot struct {
	index uint32
	*slot
}

// loadedSlots returns the installed slots in index order.
func (s *Service) loadedSlots() []indexedSlot {
	s.lock.RLock()
	defer s.lock.RUnlock()

	slots := make([]indexedSlot, 0, len(s.slots))
	for i, sl := range s.slots {
		if sl != nil {
			slots = append(slots, indexedSlot{uint32(i), sl})
		}
	}
	return slots
}

func (s *Service) applyDefaults(opts domain.SpendOptions) domain.SpendOptions {
	if opts.FeeRatio < s.feeRatio {
		opts.FeeRatio = s.feeRatio
	}
	return opts
}
