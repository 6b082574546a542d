package ports

import "github.com/tdex-network/hdwallet/internal/core/domain"

// RepoManager gives access to every repository of the wallet.
type RepoManager interface {
	SettingsRepository() domain.SettingsRepository
	AddressBookRepository() domain.AddressBookRepository
	TxLogRepository() domain.TxLogRepository
	Close()
}
