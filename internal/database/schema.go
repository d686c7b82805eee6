package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Storage types used by record tables.
const (
	TypeText    = "TEXT"
	TypeInteger = "INTEGER"
	TypeReal    = "REAL"
)

// Column describes one column of a record table.
type Column struct {
	Name       string
	Type       string
	PrimaryKey bool
	NotNull    bool
	Default    string // raw SQL default expression, empty for none
}

// Index describes a secondary index on a record table.
type Index struct {
	Name    string
	Columns []string
}

// TableSchema is the declared layout of one record kind's table.
type TableSchema struct {
	Name    string
	Columns []Column
	Indexes []Index
}

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// DDL renders the CREATE TABLE IF NOT EXISTS statement for the table.
func (s TableSchema) DDL() string {
	defs := make([]string, 0, len(s.Columns))
	for _, col := range s.Columns {
		defs = append(defs, col.definition())
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", s.Name, strings.Join(defs, ",\n\t"))
}

// IndexDDL renders one CREATE INDEX IF NOT EXISTS statement per index.
func (s TableSchema) IndexDDL() []string {
	stmts := make([]string, 0, len(s.Indexes))
	for _, idx := range s.Indexes {
		stmts = append(stmts, fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s(%s)",
			idx.Name, s.Name, strings.Join(idx.Columns, ", ")))
	}
	return stmts
}

// ColumnNames lists the declared columns in order.
func (s TableSchema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		names[i] = col.Name
	}
	return names
}

func (c Column) definition() string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteString(" ")
	b.WriteString(c.Type)
	if c.PrimaryKey {
		b.WriteString(" PRIMARY KEY")
	}
	if c.NotNull {
		b.WriteString(" NOT NULL")
	}
	if c.Default != "" {
		b.WriteString(" DEFAULT ")
		b.WriteString(c.Default)
	}
	return b.String()
}

// timeDefault reports whether the default is one of SQLite's CURRENT_TIME,
// CURRENT_DATE or CURRENT_TIMESTAMP keywords.
func (c Column) timeDefault() bool {
	return strings.HasPrefix(strings.ToUpper(c.Default), "CURRENT_")
}

// alterDefinition is the definition usable in ALTER TABLE ADD COLUMN, which
// rejects primary keys, NOT NULL without a default and non-constant defaults.
func (c Column) alterDefinition() string {
	def := c.Name + " " + c.Type
	if c.Default != "" && !c.timeDefault() {
		def += " DEFAULT " + c.Default
	}
	return def
}

// EnsureSchema creates every table and index that does not exist yet and adds
// declared columns missing from tables created by an older layout. It runs in
// a single transaction: either the whole schema is in place afterwards or
// nothing changed. Calling it repeatedly is a no-op.
func EnsureSchema(ctx context.Context, db *sql.DB, schemas ...TableSchema) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, schema := range schemas {
		if _, err := tx.ExecContext(ctx, schema.DDL()); err != nil {
			return fmt.Errorf("failed to create table %s: %w", schema.Name, err)
		}

		existing, err := TableColumns(ctx, tx, schema.Name)
		if err != nil {
			return err
		}
		for _, col := range schema.Columns {
			if existing[strings.ToLower(col.Name)] {
				continue
			}
			stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", schema.Name, col.alterDefinition())
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to add column %s.%s: %w", schema.Name, col.Name, err)
			}
			// Time defaults are dropped by ADD COLUMN; fill existing rows once.
			if col.timeDefault() {
				backfill := fmt.Sprintf("UPDATE %s SET %s = %s WHERE %s IS NULL",
					schema.Name, col.Name, col.Default, col.Name)
				if _, err := tx.ExecContext(ctx, backfill); err != nil {
					return fmt.Errorf("failed to backfill column %s.%s: %w", schema.Name, col.Name, err)
				}
			}
		}

		for _, stmt := range schema.IndexDDL() {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to create index on %s: %w", schema.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}
	return nil
}

// TableColumns returns the lower-cased names of the columns the table has on
// disk. A missing table yields an empty set.
func TableColumns(ctx context.Context, q Querier, table string) (map[string]bool, error) {
	rows, err := q.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var (
			cid        int
			name       string
			colType    string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultVal, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column of %s: %w", table, err)
		}
		columns[strings.ToLower(name)] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating columns of %s: %w", table, err)
	}
	return columns, nil
}
