package generators

import (
	"fmt"
	"strings"

	"schemascan/internal/schema"
)

func GenerateGraphviz(s *schema.Schema) string {
	var builder strings.Builder

	builder.WriteString("digraph schema {\n")
	builder.WriteString("  rankdir=TB;\n")
	builder.WriteString("  node [shape=record, style=filled, fillcolor=lightblue];\n")
	builder.WriteString("  edge [color=gray];\n\n")

	for _, table := range s.Tables {
		builder.WriteString(fmt.Sprintf("  %s [label=\"{%s|", cleanName(table.Name), table.Name))

		var fields []string
		for _, col := range table.Columns {
			field := col.Name + ": " + formatType(col.Type)
			if col.IsPrimaryKey {
				field = "+" + field
			}
			if !col.IsNullable {
				field += " NOT NULL"
			}
			fields = append(fields, field)
		}

		builder.WriteString(strings.Join(fields, "\\l"))
		builder.WriteString("\\l}\"];\n")
	}

	builder.WriteString("\n")

	for _, fk := range s.ForeignKeys {
		builder.WriteString(fmt.Sprintf("  %s -> %s [label=\"%s\"];\n",
			cleanName(fk.ToTable),
			cleanName(fk.Table),
			fk.FromColumn))
	}

	builder.WriteString("}\n")

	return builder.String()
}
