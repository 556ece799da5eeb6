package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerlight-dev/ledgerlight/internal/model"
)

// InsertTransaction persists a transaction and returns its id. A zero
// CategoryID is stored as NULL.
func (s *Store) InsertTransaction(t model.Transaction) (int64, error) {
	var category any
	if t.CategoryID != 0 {
		category = t.CategoryID
	}
	recurring := 0
	if t.Recurring {
		recurring = 1
	}
	res, err := s.db.Exec(
		"INSERT INTO transactions (date, description, amount, category_id, type, is_recurring) VALUES (?, ?, ?, ?, ?, ?)",
		t.Date.Format(dateFormat), t.Description, t.Amount.String(), category, string(t.Type), recurring,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting transaction %q: %w", t.Description, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("transaction insert id: %w", err)
	}
	return id, nil
}

// CountSimilar counts persisted transactions whose description contains
// token (case-insensitive) and whose amount differs from amount by less
// than tolerance. Used by the recurrence check.
func (s *Store) CountSimilar(token string, amount, tolerance decimal.Decimal) (int, error) {
	rows, err := s.db.Query(
		"SELECT amount FROM transactions WHERE instr(lower(description), lower(?)) > 0", token,
	)
	if err != nil {
		return 0, fmt.Errorf("querying similar transactions: %w", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return 0, fmt.Errorf("scanning transaction amount: %w", err)
		}
		amt, err := decimal.NewFromString(raw)
		if err != nil {
			return 0, fmt.Errorf("transaction amount %q: %w", raw, err)
		}
		if amt.Sub(amount).Abs().LessThan(tolerance) {
			count++
		}
	}
	return count, rows.Err()
}

// Transactions returns all transactions ordered by date then id.
func (s *Store) Transactions() ([]model.Transaction, error) {
	return s.queryTransactions("SELECT id, date, description, amount, category_id, type, is_recurring FROM transactions ORDER BY date, id")
}

// RecurringInMonth returns the recurring transactions dated in the given
// month, so a new month can be seeded from the previous one.
func (s *Store) RecurringInMonth(year int, month time.Month) ([]model.Transaction, error) {
	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	return s.queryTransactions(
		"SELECT id, date, description, amount, category_id, type, is_recurring FROM transactions WHERE is_recurring = 1 AND date LIKE ? ORDER BY date, id",
		prefix+"%",
	)
}

func (s *Store) queryTransactions(query string, args ...any) ([]model.Transaction, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer rows.Close()

	var txns []model.Transaction
	for rows.Next() {
		var (
			t         model.Transaction
			date, raw string
			category  sql.NullInt64
			typ       string
			recurring int
		)
		if err := rows.Scan(&t.ID, &date, &t.Description, &raw, &category, &typ, &recurring); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		if t.Date, err = time.Parse(dateFormat, strings.TrimSpace(date)); err != nil {
			return nil, fmt.Errorf("transaction %d date %q: %w", t.ID, date, err)
		}
		if t.Amount, err = decimal.NewFromString(raw); err != nil {
			return nil, fmt.Errorf("transaction %d amount %q: %w", t.ID, raw, err)
		}
		if category.Valid {
			t.CategoryID = category.Int64
		}
		t.Type = model.CategoryType(typ)
		t.Recurring = recurring != 0
		txns = append(txns, t)
	}
	return txns, rows.Err()
}
