package handlers

import (
	"context"
	"sync"
	"time"

	"salesboard-server/src/models"
	"salesboard-server/src/store"
)

// fakeStore answers queries from an in-memory slice, applying only the date
// window and pagination. Search behavior is asserted through lastFilter.
// Guarded by a mutex because Combined queries it from three goroutines.
type fakeStore struct {
	mu         sync.Mutex
	txs        []models.Transaction
	lastFilter store.ListFilter
	rangeCalls int
	listErr    error
	rangeErr   error
	replaceErr error
}

func (f *fakeStore) window(start, end time.Time) []models.Transaction {
	var out []models.Transaction
	for _, t := range f.txs {
		if !t.DateOfSale.Before(start) && t.DateOfSale.Before(end) {
			out = append(out, t)
		}
	}
	return out
}

func (f *fakeStore) ListTransactions(ctx context.Context, fl store.ListFilter) ([]models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = fl
	if f.listErr != nil {
		return nil, f.listErr
	}
	matched := f.window(fl.Start, fl.End)
	if fl.Offset >= len(matched) {
		return nil, nil
	}
	matched = matched[fl.Offset:]
	if fl.Limit < len(matched) {
		matched = matched[:fl.Limit]
	}
	return matched, nil
}

func (f *fakeStore) CountTransactions(ctx context.Context, fl store.ListFilter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return 0, f.listErr
	}
	return int64(len(f.window(fl.Start, fl.End))), nil
}

func (f *fakeStore) TransactionsInRange(ctx context.Context, start, end time.Time) ([]models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rangeCalls++
	if f.rangeErr != nil {
		return nil, f.rangeErr
	}
	return f.window(start, end), nil
}

func (f *fakeStore) ReplaceAll(ctx context.Context, txs []models.Transaction) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.replaceErr != nil {
		return 0, f.replaceErr
	}
	f.txs = txs
	return int64(len(txs)), nil
}

func (f *fakeStore) Close() error { return nil }

func f64(v float64) *float64 { return &v }

func janTx(id int64, price float64, category string, sold bool) models.Transaction {
	return models.Transaction{
		ID:         id,
		Title:      "Item",
		Price:      price,
		Category:   category,
		Sold:       sold,
		DateOfSale: time.Date(2022, time.January, int(id%27)+1, 12, 0, 0, 0, time.UTC),
	}
}

func augustDate() time.Time {
	return time.Date(2022, time.August, 10, 12, 0, 0, 0, time.UTC)
}
