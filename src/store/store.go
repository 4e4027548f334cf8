package store

import (
	"context"
	"time"

	"salesboard-server/src/models"
)

// ListFilter narrows a transaction query to one month window plus an
// optional search term. A non-empty Search matches records whose title or
// description contains it, case-insensitively, or whose price equals Price.
// Price is nil when the term is not numeric; the price arm of the OR is then
// trivially true, so non-numeric searches match every record in the window.
type ListFilter struct {
	Start  time.Time
	End    time.Time
	Search string
	Price  *float64
	Offset int
	Limit  int
}

// Store is the persistent transaction collection behind every endpoint.
type Store interface {
	// ListTransactions returns one page of records matching the filter,
	// ordered by id.
	ListTransactions(ctx context.Context, f ListFilter) ([]models.Transaction, error)

	// CountTransactions returns the unpaginated match count for the filter.
	CountTransactions(ctx context.Context, f ListFilter) (int64, error)

	// TransactionsInRange returns every record whose dateOfSale falls in
	// [start, end).
	TransactionsInRange(ctx context.Context, start, end time.Time) ([]models.Transaction, error)

	// ReplaceAll clears the collection and inserts txs in a single
	// transaction, returning the inserted count.
	ReplaceAll(ctx context.Context, txs []models.Transaction) (int64, error)

	Close() error
}
