package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"salesboard-server/src/models"
	"salesboard-server/src/store"
)

// Dates are stored as zero-padded UTC text so lexicographic range compares
// stay chronological.
const timeLayout = "2006-01-02 15:04:05"

const transactionColumns = "id, title, price, description, category, image, sold, date_of_sale"

type Store struct {
	db *sql.DB
}

func New(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db}
	if err := s.ensureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS transactions (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			price REAL NOT NULL,
			description TEXT NOT NULL,
			category TEXT NOT NULL,
			image TEXT NOT NULL DEFAULT '',
			sold INTEGER NOT NULL,
			date_of_sale TEXT NOT NULL
		)
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_transactions_date_of_sale ON transactions (date_of_sale)`)
	return err
}

func filterSQL(f store.ListFilter) (string, []interface{}) {
	where := `WHERE date_of_sale >= ? AND date_of_sale < ?`
	args := []interface{}{f.Start.UTC().Format(timeLayout), f.End.UTC().Format(timeLayout)}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		if f.Price != nil {
			where += ` AND (LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR price = ?)`
			args = append(args, pattern, pattern, *f.Price)
		} else {
			where += ` AND (LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR price >= 0)`
			args = append(args, pattern, pattern)
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
		LIMIT ? OFFSET ?
	`, transactionColumns, where)
	args = append(args, f.Limit, f.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
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
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) TransactionsInRange(ctx context.Context, start, end time.Time) ([]models.Transaction, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions
		WHERE date_of_sale >= ? AND date_of_sale < ?
		ORDER BY id
	`, transactionColumns)

	rows, err := s.db.QueryContext(ctx, query, start.UTC().Format(timeLayout), end.UTC().Format(timeLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (s *Store) ReplaceAll(ctx context.Context, txs []models.Transaction) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`INSERT INTO transactions (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, transactionColumns)
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, t := range txs {
		_, err := stmt.ExecContext(ctx, t.ID, t.Title, t.Price, t.Description, t.Category, t.Image, t.Sold, t.DateOfSale.UTC().Format(timeLayout))
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int64(len(txs)), nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func scanTransactions(rows *sql.Rows) ([]models.Transaction, error) {
	var txs []models.Transaction
	for rows.Next() {
		var (
			t       models.Transaction
			dateRaw string
		)
		err := rows.Scan(&t.ID, &t.Title, &t.Price, &t.Description, &t.Category, &t.Image, &t.Sold, &dateRaw)
		if err != nil {
			return nil, err
		}
		t.DateOfSale, err = parseTime(dateRaw)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range []string{timeLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date_of_sale: %q", s)
}
