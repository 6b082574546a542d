package domain

import "context"

// TxLogRepository is the append-only log of the transactions issued by an
// account, keyed by its first address.
type TxLogRepository interface {
	// AddEntry appends an entry to the log of owner.
	AddEntry(ctx context.Context, owner Address, entry TxLogEntry) error
	// GetLastEntries returns up to limit entries of owner, most recent first.
	GetLastEntries(
		ctx context.Context, owner Address, limit int,
	) ([]TxLogEntry, error)
}
