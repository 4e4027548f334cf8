package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"salesboard-server/src/models"
	"salesboard-server/src/store"
)

const transactionColumns = "id, title, price, description, category, image, sold, date_of_sale"

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, url string) (*Store, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, err
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	s := &Store{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS transactions (
			id BIGINT PRIMARY KEY,
			title TEXT NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			description TEXT NOT NULL,
			category TEXT NOT NULL,
			image TEXT NOT NULL DEFAULT '',
			sold BOOLEAN NOT NULL,
			date_of_sale TIMESTAMPTZ NOT NULL
		)
	`
	if _, err := s.pool.Exec(ctx, query); err != nil {
		return err
	}
	_, err := s.pool.Exec(ctx, `CREATE INDEX IF NOT EXISTS idx_transactions_date_of_sale ON transactions (date_of_sale)`)
	return err
}

// filterSQL renders the WHERE clause for a ListFilter. The price arm of the
// search OR stays trivially true when the term is not numeric, so such
// searches match every row in the month window.
func filterSQL(f store.ListFilter) (string, []interface{}) {
	where := `WHERE date_of_sale >= $1 AND date_of_sale < $2`
	args := []interface{}{f.Start, f.End}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		if f.Price != nil {
			where += ` AND (title ILIKE $3 OR description ILIKE $3 OR price = $4)`
			args = append(args, pattern, *f.Price)
		} else {
			where += ` AND (title ILIKE $3 OR description ILIKE $3 OR price >= 0)`
			args = append(args, pattern)
		}
	}
	return where, args
}

func (s *Store) ListTransactions(ctx context.Context, f store.ListFilter) ([]models.Transaction, error) {
	where, args := filterSQL(f)
	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions
		%s
		ORDER BY id
		OFFSET $%d LIMIT $%d
	`, transactionColumns, where, len(args)+1, len(args)+2)
	args = append(args, f.Offset, f.Limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (s *Store) CountTransactions(ctx context.Context, f store.ListFilter) (int64, error) {
	where, args := filterSQL(f)
	query := `SELECT COUNT(*) FROM transactions ` + where

	var total int64
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) TransactionsInRange(ctx context.Context, start, end time.Time) ([]models.Transaction, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions
		WHERE date_of_sale >= $1 AND date_of_sale < $2
		ORDER BY id
	`, transactionColumns)

	rows, err := s.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (s *Store) ReplaceAll(ctx context.Context, txs []models.Transaction) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE transactions`); err != nil {
		return 0, err
	}

	records := make([][]interface{}, len(txs))
	for i, t := range txs {
		records[i] = []interface{}{t.ID, t.Title, t.Price, t.Description, t.Category, t.Image, t.Sold, t.DateOfSale}
	}
	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{"transactions"},
		[]string{"id", "title", "price", "description", "category", "image", "sold", "date_of_sale"},
		pgx.CopyFromRows(records),
	)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return copied, nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func scanTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	var txs []models.Transaction
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(&t.ID, &t.Title, &t.Price, &t.Description, &t.Category, &t.Image, &t.Sold, &t.DateOfSale)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
