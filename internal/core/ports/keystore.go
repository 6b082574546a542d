package ports

import (
	"fmt"

	"github.com/tdex-network/hdwallet/internal/core/domain"
)

// ErrKeyFileNotFound is returned by KeyStore.GetKeyFile for missing files.
var ErrKeyFileNotFound = fmt.Errorf("%w: key file", domain.ErrNotFound)

// KeyStore persists key files, the only place where seeds are ever written.
type KeyStore interface {
	GetKeyFile(name string) (*domain.KeyFile, error)
	PutKeyFile(name string, keyFile domain.KeyFile) error
	DeleteKeyFile(name string) error
	Close() error
}
