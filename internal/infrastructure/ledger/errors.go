package ledger

import "errors"

var (
	// ErrLedgerUnavailable is returned by every call of an offline client and
	// by a guarded client whose breaker is open.
	ErrLedgerUnavailable = errors.New("ledger is unavailable")
	// ErrNullClient ...
	ErrNullClient = errors.New("ledger client must not be null")
)
