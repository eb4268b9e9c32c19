package schema

// Schema is the full introspection result for one database file.
type Schema struct {
	Database    string       `json:"database"`
	Tables      []Table      `json:"tables"`
	ForeignKeys []ForeignKey `json:"foreign_keys"`
}

// Table is one entry of kind "table" from sqlite_master, in catalog order.
// SQL holds the raw creation statement as stored in the catalog.
type Table struct {
	Name        string   `json:"name"`
	SQL         string   `json:"sql"`
	Columns     []Column `json:"columns"`
	PrimaryKeys []string `json:"primary_keys"`
}

type Column struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	IsNullable   bool    `json:"is_nullable"`
	DefaultValue *string `json:"default_value,omitempty"`
	IsPrimaryKey bool    `json:"is_primary_key"`
}

// ForeignKey is one declared outgoing foreign-key reference. ToColumn is
// empty when the constraint references the parent's primary key implicitly.
type ForeignKey struct {
	Table      string `json:"table"`
	FromColumn string `json:"from_column"`
	ToTable    string `json:"to_table"`
	ToColumn   string `json:"to_column"`
}

// Report is the summary document the analyze command prints.
type Report struct {
	ForeignKeys []ForeignKey `json:"foreign_keys"`
	TableCount  int          `json:"table_count"`
	FoundFKs    int          `json:"found_fk_count"`
}

// Report aggregates the schema into the printable summary. ForeignKeys is
// never nil so an empty list serializes as [].
func (s *Schema) Report() Report {
	fks := s.ForeignKeys
	if fks == nil {
		fks = []ForeignKey{}
	}

	return Report{
		ForeignKeys: fks,
		TableCount:  len(s.Tables),
		FoundFKs:    len(fks),
	}
}
