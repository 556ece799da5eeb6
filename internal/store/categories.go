package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ledgerlight-dev/ledgerlight/internal/model"
)

// Categories returns all categories ordered by id.
func (s *Store) Categories() ([]model.Category, error) {
	rows, err := s.db.Query("SELECT id, name, type FROM categories ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var cats []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// CategoryByName returns the category with the exact given name.
// The lookup is case-sensitive. Returns (zero, false, nil) when absent.
func (s *Store) CategoryByName(name string) (model.Category, bool, error) {
	var c model.Category
	err := s.db.QueryRow(
		"SELECT id, name, type FROM categories WHERE name = ?", name,
	).Scan(&c.ID, &c.Name, &c.Type)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Category{}, false, nil
	}
	if err != nil {
		return model.Category{}, false, fmt.Errorf("querying category %q: %w", name, err)
	}
	return c, true, nil
}

// InsertCategory creates a category and returns its id.
func (s *Store) InsertCategory(name string, typ model.CategoryType) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO categories (name, type) VALUES (?, ?)", name, string(typ),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting category %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("category insert id: %w", err)
	}
	return id, nil
}

// DeleteCategory removes a category, nulling the category reference on
// transactions that used it. Transactions themselves are never deleted.
func (s *Store) DeleteCategory(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("UPDATE transactions SET category_id = NULL WHERE category_id = ?", id); err != nil {
		return fmt.Errorf("orphaning transactions: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM mappings WHERE category_id = ?", id); err != nil {
		return fmt.Errorf("deleting mappings for category %d: %w", id, err)
	}
	if _, err := tx.Exec("DELETE FROM categories WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting category %d: %w", id, err)
	}
	return tx.Commit()
}
