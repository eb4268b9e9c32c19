package analyzer

import (
	"github.com/rs/zerolog"

	"schemascan/internal/database"
	"schemascan/internal/schema"
)

// Kind classifies an analysis failure.
type Kind string

const (
	// KindOpen covers failures to open the database file.
	KindOpen Kind = "open"
	// KindIntrospect covers failures while querying schema metadata.
	KindIntrospect Kind = "introspect"
)

// Error is an analysis failure with its phase attached.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// Analyze opens the database at path and collects its tables and declared
// foreign keys. Foreign keys preserve catalog order across tables and
// declaration order within a table. The connection is closed on every path.
func Analyze(path string, log zerolog.Logger) (*schema.Schema, error) {
	insp, err := database.Open(path)
	if err != nil {
		return nil, &Error{Kind: KindOpen, Err: err}
	}
	defer insp.Close()

	log.Debug().Str("database", path).Msg("database opened")

	tables, err := insp.Tables()
	if err != nil {
		return nil, &Error{Kind: KindIntrospect, Err: err}
	}

	sch := &schema.Schema{
		Database: path,
		Tables:   tables,
	}

	for idx := range sch.Tables {
		table := &sch.Tables[idx]

		columns, err := insp.Columns(table.Name)
		if err != nil {
			return nil, &Error{Kind: KindIntrospect, Err: err}
		}
		table.Columns = columns

		for _, col := range columns {
			if col.IsPrimaryKey {
				table.PrimaryKeys = append(table.PrimaryKeys, col.Name)
			}
		}

		foreignKeys, err := insp.ForeignKeys(table.Name)
		if err != nil {
			return nil, &Error{Kind: KindIntrospect, Err: err}
		}
		sch.ForeignKeys = append(sch.ForeignKeys, foreignKeys...)

		log.Debug().
			Str("table", table.Name).
			Int("columns", len(columns)).
			Int("foreign_keys", len(foreignKeys)).
			Msg("table inspected")
	}

	log.Info().
		Int("tables", len(sch.Tables)).
		Int("foreign_keys", len(sch.ForeignKeys)).
		Msg("analysis complete")

	return sch, nil
}
