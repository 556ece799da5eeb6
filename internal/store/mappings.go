package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerlight-dev/ledgerlight/internal/model"
)

// Mappings returns every learned mapping. The categoriser scans them all per
// transaction; mapping tables stay small (one row per learned keyword).
func (s *Store) Mappings() ([]model.Mapping, error) {
	rows, err := s.db.Query(
		"SELECT id, keyword, min_amount, max_amount, category_id, recurring_guess, last_used FROM mappings ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("querying mappings: %w", err)
	}
	defer rows.Close()

	var mappings []model.Mapping
	for rows.Next() {
		var (
			m         model.Mapping
			low, high string
			recurring int
			lastUsed  sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.Keyword, &low, &high, &m.CategoryID, &recurring, &lastUsed); err != nil {
			return nil, fmt.Errorf("scanning mapping: %w", err)
		}
		if m.LowAmount, err = decimal.NewFromString(low); err != nil {
			return nil, fmt.Errorf("mapping %d min_amount %q: %w", m.ID, low, err)
		}
		if m.HighAmount, err = decimal.NewFromString(high); err != nil {
			return nil, fmt.Errorf("mapping %d max_amount %q: %w", m.ID, high, err)
		}
		m.RecurringGuess = recurring != 0
		if lastUsed.Valid {
			if m.LastUsed, err = time.Parse(time.RFC3339, lastUsed.String); err != nil {
				return nil, fmt.Errorf("mapping %d last_used %q: %w", m.ID, lastUsed.String, err)
			}
		}
		mappings = append(mappings, m)
	}
	return mappings, rows.Err()
}

// InsertMapping persists a learned mapping and returns its id.
func (s *Store) InsertMapping(m model.Mapping) (int64, error) {
	recurring := 0
	if m.RecurringGuess {
		recurring = 1
	}
	res, err := s.db.Exec(
		"INSERT INTO mappings (keyword, min_amount, max_amount, category_id, recurring_guess, last_used) VALUES (?, ?, ?, ?, ?, ?)",
		m.Keyword, m.LowAmount.String(), m.HighAmount.String(), m.CategoryID, recurring,
		m.LastUsed.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting mapping %q: %w", m.Keyword, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("mapping insert id: %w", err)
	}
	return id, nil
}

// TouchMapping records that a mapping matched a transaction at the given
// time.
func (s *Store) TouchMapping(id int64, when time.Time) error {
	if _, err := s.db.Exec(
		"UPDATE mappings SET last_used = ? WHERE id = ?", when.Format(time.RFC3339), id,
	); err != nil {
		return fmt.Errorf("touching mapping %d: %w", id, err)
	}
	return nil
}
