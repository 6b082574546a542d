package dbbadger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/hdwallet/internal/core/domain"
	"github.com/tdex-network/hdwallet/internal/core/ports"
	"github.com/timshannon/badgerhold/v4"
)

const gcInterval = 30 * time.Minute

type repoManager struct {
	walletStore *badgerhold.Store
	txLogStore  *badgerhold.Store

	settingsRepository    domain.SettingsRepository
	addressBookRepository domain.AddressBookRepository
	txLogRepository       domain.TxLogRepository

	quit chan struct{}
	wg   sync.WaitGroup
}

// NewRepoManager opens (or creates if not exists) the badger stores under
// baseDbDir, one for settings and address books, one for the tx log.
// With an empty baseDbDir the stores are kept in memory.
func NewRepoManager(
	baseDbDir string, logger badger.Logger,
) (ports.RepoManager, error) {
	var walletDir, txLogDir string
	if len(baseDbDir) > 0 {
		walletDir = filepath.Join(baseDbDir, "wallet")
		txLogDir = filepath.Join(baseDbDir, "txlog")
	}

	walletStore, err := createDb(walletDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening wallet db: %w", err)
	}
	txLogStore, err := createDb(txLogDir, logger)
	if err != nil {
		walletStore.Close()
		return nil, fmt.Errorf("opening tx log db: %w", err)
	}

	r := &repoManager{
		walletStore:           walletStore,
		txLogStore:            txLogStore,
		settingsRepository:    newSettingsRepositoryImpl(walletStore),
		addressBookRepository: newAddressBookRepositoryImpl(walletStore),
		txLogRepository:       newTxLogRepositoryImpl(txLogStore),
		quit:                  make(chan struct{}),
	}
	if len(baseDbDir) > 0 {
		r.startValueLogGC(walletStore, txLogStore)
	}
	return r, nil
}

func (r *repoManager) SettingsRepository() domain.SettingsRepository {
	return r.settingsRepository
}

func (r *repoManager) AddressBookRepository() domain.AddressBookRepository {
	return r.addressBookRepository
}

func (r *repoManager) TxLogRepository() domain.TxLogRepository {
	return r.txLogRepository
}

// Close stops the value log GC and closes the stores. It must be called
// only once.
func (r *repoManager) Close() {
	close(r.quit)
	r.wg.Wait()
	r.walletStore.Close()
	r.txLogStore.Close()
}

func (r *repoManager) startValueLogGC(stores ...*badgerhold.Store) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ticker := time.NewTicker(gcInterval)
		defer ticker.Stop()

		for {
			select {
			case <-r.quit:
				return
			case <-ticker.C:
				for _, db := range stores {
					if err := db.Badger().RunValueLogGC(0.5); err != nil &&
						err != badger.ErrNoRewrite {
						log.Error(err)
					}
				}
			}
		}
	}()
}

// JSONEncode is a custom JSON based encoder for badger
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer

	en := json.NewEncoder(&buff)

	err := en.Encode(value)
	if err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger
func JSONDecode(data []byte, value interface{}) error {
	var buff bytes.Buffer
	de := json.NewDecoder(&buff)

	_, err := buff.Write(data)
	if err != nil {
		return err
	}

	return de.Decode(value)
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	return badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}
