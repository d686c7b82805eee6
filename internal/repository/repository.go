package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kadgis/fieldstore/internal/models"
)

// ErrNotFound is returned by id-targeted mutations that matched no row.
// Lookups report absence as a nil record instead.
var ErrNotFound = errors.New("record not found")

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// newRecordID returns a UUIDv7: a 48-bit millisecond timestamp prefix followed
// by random bits, so ids sort roughly by creation time.
func newRecordID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate record id: %w", err)
	}
	return id.String(), nil
}

// likePattern wraps keyword in % wildcards, escaping LIKE metacharacters so
// they match literally under ESCAPE '\'.
func likePattern(keyword string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(keyword) + "%"
}

// placeholders returns "?, ?, ..." with n markers.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}

// insertStatement binds n columns and stamps createdAt and updatedAt with the
// current time, so inserts do not rely on column defaults that an upgraded
// table may lack.
func insertStatement(table, columns string, n int) string {
	return fmt.Sprintf("INSERT INTO %s (%s, createdAt, updatedAt) VALUES (%s, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)",
		table, columns, placeholders(n))
}

// updateRecord writes the patched columns plus a refreshed updatedAt.
// An empty patch still touches updatedAt.
func updateRecord(ctx context.Context, db *sql.DB, table, id string, assignments []models.Assignment) error {
	sets := make([]string, 0, len(assignments)+1)
	args := make([]any, 0, len(assignments)+1)
	for _, a := range assignments {
		sets = append(sets, a.Column+" = ?")
		args = append(args, a.Value)
	}
	sets = append(sets, "updatedAt = CURRENT_TIMESTAMP")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(sets, ", "))
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update %s record %s: %w", table, id, err)
	}
	return requireAffected(result, table, id)
}

func requireAffected(result sql.Result, table, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows on %s: %w", table, err)
	}
	if n == 0 {
		return fmt.Errorf("%s record %s: %w", table, id, ErrNotFound)
	}
	return nil
}

func deleteByID(ctx context.Context, db *sql.DB, table, id string) error {
	if _, err := db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), id); err != nil {
		return fmt.Errorf("failed to delete %s record %s: %w", table, id, err)
	}
	return nil
}

func deleteAll(ctx context.Context, db *sql.DB, table string) (int64, error) {
	result, err := db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", table))
	if err != nil {
		return 0, fmt.Errorf("failed to wipe %s: %w", table, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows on %s: %w", table, err)
	}
	return n, nil
}

func exists(ctx context.Context, db *sql.DB, table, id string) (bool, error) {
	var n int64
	err := db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE id = ?", table), id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check %s record %s: %w", table, id, err)
	}
	return n > 0, nil
}

func count(ctx context.Context, db *sql.DB, table string) (int64, error) {
	var n int64
	if err := db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}

// countByCategory issues one COUNT per requested value of column inside a
// single transaction so every count sees the same snapshot. The result has
// one entry per input value in input order, zero counts included.
func countByCategory(ctx context.Context, db *sql.DB, table, column string, categories []string) ([]models.CategoryCount, error) {
	counts := make([]models.CategoryCount, 0, len(categories))
	if len(categories) == 0 {
		return counts, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin count transaction on %s: %w", table, err)
	}
	defer func() { _ = tx.Rollback() }()

	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = ?", table, column)
	for _, category := range categories {
		var n int64
		if err := tx.QueryRowContext(ctx, query, category).Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to count %s by %s=%q: %w", table, column, category, err)
		}
		counts = append(counts, models.CategoryCount{Category: category, Count: n})
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to finish count transaction on %s: %w", table, err)
	}
	return counts, nil
}
