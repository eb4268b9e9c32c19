package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"schemascan/internal/schema"
)

// Inspector reads schema metadata from a single SQLite database file.
type Inspector struct {
	db *sql.DB
}

// Open opens the database at path for introspection. The connection is
// read-only so a missing file is reported as an open failure instead of
// being silently created empty.
func Open(path string) (*Inspector, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	return &Inspector{db: db}, nil
}

func (i *Inspector) Close() error {
	return i.db.Close()
}

// Tables lists the entries of type 'table' in sqlite_master, in catalog
// order. Internal sqlite_% tables are included; the catalog does not
// distinguish them by type.
func (i *Inspector) Tables() ([]schema.Table, error) {
	rows, err := i.db.Query(`SELECT name, sql FROM sqlite_master WHERE type = 'table'`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sqlite_master: %w", err)
	}
	defer rows.Close()

	var tables []schema.Table
	for rows.Next() {
		var table schema.Table
		var sqlDef sql.NullString
		if err := rows.Scan(&table.Name, &sqlDef); err != nil {
			return nil, err
		}
		table.SQL = sqlDef.String

		tables = append(tables, table)
	}

	return tables, rows.Err()
}

// Columns returns column information for the given table. Unknown tables
// yield an empty slice, matching the pragma's behavior.
func (i *Inspector) Columns(tableName string) ([]schema.Column, error) {
	rows, err := i.db.Query(`
		SELECT name, type, "notnull", dflt_value, pk
		FROM pragma_table_info(?)
		ORDER BY cid`, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to read columns for %s: %w", tableName, err)
	}
	defer rows.Close()

	var columns []schema.Column
	for rows.Next() {
		var col schema.Column
		var notNull, pk int
		var defaultValue sql.NullString

		if err := rows.Scan(&col.Name, &col.Type, &notNull, &defaultValue, &pk); err != nil {
			return nil, err
		}

		col.IsNullable = notNull == 0
		// pk is the 1-based position within the primary key, 0 otherwise.
		col.IsPrimaryKey = pk > 0
		if defaultValue.Valid {
			col.DefaultValue = &defaultValue.String
		}

		columns = append(columns, col)
	}

	return columns, rows.Err()
}

// ForeignKeys returns the declared outgoing foreign-key references of the
// given table, one entry per constraint column, in declaration order.
func (i *Inspector) ForeignKeys(tableName string) ([]schema.ForeignKey, error) {
	rows, err := i.db.Query(`
		SELECT "table", "from", "to"
		FROM pragma_foreign_key_list(?)
		ORDER BY id, seq`, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to read foreign keys for %s: %w", tableName, err)
	}
	defer rows.Close()

	var foreignKeys []schema.ForeignKey
	for rows.Next() {
		var fk schema.ForeignKey
		var to sql.NullString

		if err := rows.Scan(&fk.ToTable, &fk.FromColumn, &to); err != nil {
			return nil, err
		}

		// "to" is NULL when the constraint references the parent table's
		// primary key implicitly.
		fk.Table = tableName
		fk.ToColumn = to.String

		foreignKeys = append(foreignKeys, fk)
	}

	return foreignKeys, rows.Err()
}
