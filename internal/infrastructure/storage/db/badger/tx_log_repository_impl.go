package dbbadger

import (
	"context"

	"github.com/google/uuid"
	"github.com/tdex-network/hdwallet/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type txLogEntry struct {
	ID    string
	Owner string `badgerhold:"index"`
	Time  int64
	Seq   uint64
	Tx    *domain.Transaction
}

type txLogRepositoryImpl struct {
	store *badgerhold.Store
}

func newTxLogRepositoryImpl(store *badgerhold.Store) domain.TxLogRepository {
	return txLogRepositoryImpl{store}
}

func (r txLogRepositoryImpl) AddEntry(
	ctx context.Context, owner domain.Address, entry domain.TxLogEntry,
) error {
	if entry.Tx == nil {
		return domain.ErrNullTransaction
	}
	seq, err := r.store.Badger().GetSequence([]byte("txlog/seq"), 1)
	if err != nil {
		return err
	}
	defer seq.Release()
	next, err := seq.Next()
	if err != nil {
		return err
	}

	id := uuid.New().String()
	return r.store.Insert(id, &txLogEntry{
		ID:    id,
		Owner: owner.String(),
		Time:  entry.Time,
		Seq:   next,
		Tx:    entry.Tx,
	})
}

func (r txLogRepositoryImpl) GetLastEntries(
	ctx context.Context, owner domain.Address, limit int,
) ([]domain.TxLogEntry, error) {
	query := badgerhold.Where("Owner").Eq(owner.String()).
		SortBy("Time", "Seq").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}

	var entries []txLogEntry
	if err := r.store.Find(&entries, query); err != nil {
		return nil, err
	}

	res := make([]domain.TxLogEntry, 0, len(entries))
	for _, e := range entries {
		res = append(res, domain.TxLogEntry{Time: e.Time, Tx: e.Tx})
	}
	return res, nil
}
