package boltkeystore

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/tdex-network/hdwallet/internal/core/domain"
	"github.com/tdex-network/hdwallet/internal/core/ports"
	bolt "go.etcd.io/bbolt"
)

const (
	// DefaultFilename is the name of the key store file in the datadir.
	DefaultFilename = "keystore.db"
)

var (
	// keyFileBucketName is the name of the bucket holding every key file.
	keyFileBucketName = []byte("keyfiles")
)

type keyFile struct {
	Seed        string  `json:"seed"`
	Fingerprint *string `json:"finger_print,omitempty"`
}

type keyStore struct {
	db *bolt.DB
}

// NewKeyStore opens (or creates if not exists) the bolt key store in datadir.
func NewKeyStore(datadir, filename string) (ports.KeyStore, error) {
	if _, err := os.Stat(datadir); os.IsNotExist(err) {
		if err := os.MkdirAll(datadir, 0700); err != nil {
			return nil, err
		}
	}
	if filename == "" {
		filename = DefaultFilename
	}

	db, err := bolt.Open(
		filepath.Join(datadir, filename), 0600, &bolt.Options{Timeout: time.Second},
	)
	if err != nil {
		return nil, err
	}

	// If the store's bucket doesn't exist, create it.
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(keyFileBucketName)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &keyStore{db}, nil
}

func (s *keyStore) GetKeyFile(name string) (*domain.KeyFile, error) {
	if len(name) <= 0 {
		return nil, ErrMissingKeyFileName
	}

	var buf []byte
	if err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(keyFileBucketName)
		if bucket == nil {
			return ErrBucketNotFound
		}
		if v := bucket.Get([]byte(name)); v != nil {
			buf = make([]byte, len(v))
			copy(buf, v)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if buf == nil {
		return nil, ports.ErrKeyFileNotFound
	}

	var kf keyFile
	if err := json.Unmarshal(buf, &kf); err != nil {
		return nil, err
	}
	seed, err := hex.DecodeString(kf.Seed)
	if err != nil || len(seed) != len(domain.Hash{}) {
		return nil, ErrMalformedKeyFile
	}

	res := &domain.KeyFile{Fingerprint: kf.Fingerprint}
	copy(res.Seed[:], seed)
	return res, nil
}

func (s *keyStore) PutKeyFile(name string, kf domain.KeyFile) error {
	if len(name) <= 0 {
		return ErrMissingKeyFileName
	}
	if kf.Seed == (domain.Hash{}) {
		return domain.ErrZeroSeed
	}

	buf, err := json.Marshal(keyFile{
		Seed:        hex.EncodeToString(kf.Seed[:]),
		Fingerprint: kf.Fingerprint,
	})
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(keyFileBucketName)
		if bucket == nil {
			return ErrBucketNotFound
		}
		return bucket.Put([]byte(name), buf)
	})
}

func (s *keyStore) DeleteKeyFile(name string) error {
	if len(name) <= 0 {
		return ErrMissingKeyFileName
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(keyFileBucketName)
		if bucket == nil {
			return ErrBucketNotFound
		}
		return bucket.Delete([]byte(name))
	})
}

func (s *keyStore) Close() error {
	return s.db.Close()
}
