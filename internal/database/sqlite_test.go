package database_test

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemascan/internal/database"
	"schemascan/internal/schema"
)

// createDB builds a throwaway database file from DDL statements and
// returns its path.
func createDB(t *testing.T, ddl ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	// sql.Open is lazy; force a connection so the file exists even when
	// there is no DDL to run.
	require.NoError(t, db.Ping())

	for _, stmt := range ddl {
		_, err := db.Exec(stmt)
		require.NoErrorf(t, err, "exec %q", stmt)
	}

	return path
}

func openDB(t *testing.T, ddl ...string) *database.Inspector {
	t.Helper()

	insp, err := database.Open(createDB(t, ddl...))
	require.NoError(t, err)
	t.Cleanup(func() { insp.Close() })

	return insp
}

func TestOpenMissingFile(t *testing.T) {
	_, err := database.Open(filepath.Join(t.TempDir(), "no-such.db"))
	assert.Error(t, err)
}

func TestOpenDoesNotCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-such.db")

	_, err := database.Open(path)
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "open must not create the database file")
}

func TestTablesCatalogOrder(t *testing.T) {
	insp := openDB(t,
		"CREATE TABLE zebra (id INTEGER PRIMARY KEY)",
		"CREATE TABLE apple (id INTEGER PRIMARY KEY)",
		"CREATE TABLE mango (id INTEGER PRIMARY KEY)",
	)

	tables, err := insp.Tables()
	require.NoError(t, err)

	var names []string
	for _, table := range tables {
		names = append(names, table.Name)
	}

	// Catalog order is creation order, not alphabetical.
	assert.Equal(t, []string{"zebra", "apple", "mango"}, names)
}

func TestTablesIncludeCreationSQL(t *testing.T) {
	insp := openDB(t, "CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT)")

	tables, err := insp.Tables()
	require.NoError(t, err)
	require.Len(t, tables, 1)

	assert.Equal(t, "users", tables[0].Name)
	assert.Contains(t, tables[0].SQL, "CREATE TABLE users")
}

func TestTablesEmptyDatabase(t *testing.T) {
	insp := openDB(t)

	tables, err := insp.Tables()
	require.NoError(t, err)
	assert.Empty(t, tables)
}

func TestColumns(t *testing.T) {
	insp := openDB(t, `CREATE TABLE users (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		active INTEGER DEFAULT 1
	)`)

	columns, err := insp.Columns("users")
	require.NoError(t, err)
	require.Len(t, columns, 4)

	one := "1"
	assert.Equal(t, []schema.Column{
		{Name: "id", Type: "INTEGER", IsNullable: true, IsPrimaryKey: true},
		{Name: "name", Type: "TEXT", IsNullable: false},
		{Name: "email", Type: "TEXT", IsNullable: true},
		{Name: "active", Type: "INTEGER", IsNullable: true, DefaultValue: &one},
	}, columns)
}

func TestColumnsCompositePrimaryKey(t *testing.T) {
	insp := openDB(t, `CREATE TABLE memberships (
		user_id INTEGER,
		group_id INTEGER,
		PRIMARY KEY (user_id, group_id)
	)`)

	columns, err := insp.Columns("memberships")
	require.NoError(t, err)
	require.Len(t, columns, 2)

	assert.True(t, columns[0].IsPrimaryKey)
	assert.True(t, columns[1].IsPrimaryKey)
}

func TestColumnsUnknownTable(t *testing.T) {
	insp := openDB(t, "CREATE TABLE users (id INTEGER PRIMARY KEY)")

	columns, err := insp.Columns("missing")
	require.NoError(t, err)
	assert.Empty(t, columns)
}

func TestForeignKeys(t *testing.T) {
	insp := openDB(t,
		"CREATE TABLE customers (id INTEGER PRIMARY KEY)",
		`CREATE TABLE orders (
			id INTEGER PRIMARY KEY,
			customer_id INTEGER REFERENCES customers(id)
		)`,
	)

	fks, err := insp.ForeignKeys("orders")
	require.NoError(t, err)

	assert.Equal(t, []schema.ForeignKey{
		{Table: "orders", FromColumn: "customer_id", ToTable: "customers", ToColumn: "id"},
	}, fks)
}

func TestForeignKeysStableOrder(t *testing.T) {
	insp := openDB(t,
		"CREATE TABLE customers (id INTEGER PRIMARY KEY)",
		"CREATE TABLE products (id INTEGER PRIMARY KEY)",
		`CREATE TABLE orders (
			id INTEGER PRIMARY KEY,
			customer_id INTEGER REFERENCES customers(id),
			product_id INTEGER REFERENCES products(id)
		)`,
	)

	fks, err := insp.ForeignKeys("orders")
	require.NoError(t, err)
	require.Len(t, fks, 2)

	// foreign_key_list numbers constraints newest-first, so ordering by id
	// yields the reverse of declaration order, every run.
	assert.Equal(t, []schema.ForeignKey{
		{Table: "orders", FromColumn: "product_id", ToTable: "products", ToColumn: "id"},
		{Table: "orders", FromColumn: "customer_id", ToTable: "customers", ToColumn: "id"},
	}, fks)
}

func TestForeignKeysImplicitTarget(t *testing.T) {
	insp := openDB(t,
		"CREATE TABLE customers (id INTEGER PRIMARY KEY)",
		`CREATE TABLE orders (
			id INTEGER PRIMARY KEY,
			customer_id INTEGER REFERENCES customers
		)`,
	)

	fks, err := insp.ForeignKeys("orders")
	require.NoError(t, err)
	require.Len(t, fks, 1)

	// An implicit reference to the parent's primary key has no "to" column.
	assert.Equal(t, "customers", fks[0].ToTable)
	assert.Equal(t, "", fks[0].ToColumn)
}

func TestForeignKeysNone(t *testing.T) {
	insp := openDB(t, "CREATE TABLE users (id INTEGER PRIMARY KEY)")

	fks, err := insp.ForeignKeys("users")
	require.NoError(t, err)
	assert.Empty(t, fks)
}
