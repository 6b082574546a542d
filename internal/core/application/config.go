package application

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/lightningnetwork/lnd/clock"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/hdwallet/internal/core/application/wallet"
	"github.com/tdex-network/hdwallet/internal/core/domain"
	"github.com/tdex-network/hdwallet/internal/core/ports"
	boltkeystore "github.com/tdex-network/hdwallet/internal/infrastructure/keystore/bolt"
	"github.com/tdex-network/hdwallet/internal/infrastructure/ledger"
	dbbadger "github.com/tdex-network/hdwallet/internal/infrastructure/storage/db/badger"
)

const (
	DBBadger = "badger"
)

var (
	SupportedDBType = map[string]struct{}{
		DBBadger: {},
	}
)

// Config wires the wallet service with its storage and ledger. Dependencies
// are built lazily on first access.
type Config struct {
	DBType string
	// DBDir is where the badger stores live. Empty keeps them in memory.
	DBDir string
	// KeyDir is where the key store lives.
	KeyDir string

	// Ledger is the remote node. Nil runs the wallet offline.
	Ledger          ports.LedgerClient
	LedgerRateLimit int
	Params          *domain.ChainParams
	Clock           clock.Clock
	Registerer      prometheus.Registerer

	KeyFiles       []string
	NumAddresses   uint32
	MaxAddresses   uint32
	MaxKeyFiles    uint32
	CacheTTL       time.Duration
	DefaultExpire  uint32
	LockTimeout    time.Duration
	FeeRatio       uint64
	TokenWhitelist []domain.Address

	repo     ports.RepoManager
	keyStore ports.KeyStore
	ledger   ports.LedgerClient
	wallet   WalletService
}

func (c *Config) Validate() error {
	if _, ok := SupportedDBType[c.DBType]; !ok {
		return fmt.Errorf("db type not supported, please select one of: %v", SupportedDBType)
	}
	if len(c.KeyDir) <= 0 {
		return errors.New("missing key store directory")
	}
	if _, err := c.repoManager(); err != nil {
		return err
	}
	if _, err := c.keyStoreSvc(); err != nil {
		return err
	}
	if _, err := c.ledgerClient(); err != nil {
		return err
	}
	if _, err := c.walletService(); err != nil {
		return err
	}
	return nil
}

func (c *Config) RepoManager() ports.RepoManager {
	svc, _ := c.repoManager()
	return svc
}

func (c *Config) KeyStore() ports.KeyStore {
	svc, _ := c.keyStoreSvc()
	return svc
}

func (c *Config) LedgerClient() ports.LedgerClient {
	svc, _ := c.ledgerClient()
	return svc
}

func (c *Config) WalletService() WalletService {
	svc, _ := c.walletService()
	return svc
}

// Close stops the wallet service and releases the stores.
func (c *Config) Close() {
	if c.wallet != nil {
		c.wallet.Close()
	}
	if c.keyStore != nil {
		if err := c.keyStore.Close(); err != nil {
			log.WithError(err).Warn("failed to close key store")
		}
	}
	if c.repo != nil {
		c.repo.Close()
	}
}

func (c *Config) repoManager() (ports.RepoManager, error) {
	if c.repo == nil {
		if c.DBType == DBBadger {
			var dbDir string
			if len(c.DBDir) > 0 {
				dbDir = filepath.Clean(c.DBDir)
			}
			repoManager, err := dbbadger.NewRepoManager(dbDir, log.New())
			if err != nil {
				return nil, err
			}
			c.repo = repoManager
		}
	}
	return c.repo, nil
}

func (c *Config) keyStoreSvc() (ports.KeyStore, error) {
	if c.keyStore == nil {
		keyStore, err := boltkeystore.NewKeyStore(c.KeyDir, "")
		if err != nil {
			return nil, err
		}
		c.keyStore = keyStore
	}
	return c.keyStore, nil
}

func (c *Config) ledgerClient() (ports.LedgerClient, error) {
	if c.ledger == nil {
		if c.Ledger == nil {
			log.Warn("no ledger configured, running offline")
			c.ledger = ledger.NewOfflineClient()
			return c.ledger, nil
		}
		client, err := ledger.NewGuardedClient(c.Ledger, c.LedgerRateLimit)
		if err != nil {
			return nil, err
		}
		c.ledger = client
	}
	return c.ledger, nil
}

func (c *Config) walletService() (WalletService, error) {
	if c.wallet == nil {
		repo, err := c.repoManager()
		if err != nil {
			return nil, err
		}
		keyStore, err := c.keyStoreSvc()
		if err != nil {
			return nil, err
		}
		ledgerClient, err := c.ledgerClient()
		if err != nil {
			return nil, err
		}
		svc, err := NewWalletService(wallet.Opts{
			Ledger:         ledgerClient,
			KeyStore:       keyStore,
			Repository:     repo,
			Params:         c.Params,
			Clock:          c.Clock,
			Registerer:     c.Registerer,
			KeyFiles:       c.KeyFiles,
			NumAddresses:   c.NumAddresses,
			MaxAddresses:   c.MaxAddresses,
			MaxKeyFiles:    c.MaxKeyFiles,
			CacheTTL:       c.CacheTTL,
			DefaultExpire:  c.DefaultExpire,
			LockTimeout:    c.LockTimeout,
			FeeRatio:       c.FeeRatio,
			TokenWhitelist: c.TokenWhitelist,
		})
		if err != nil {
			return nil, err
		}
		c.wallet = svc
	}
	return c.wallet, nil
}
