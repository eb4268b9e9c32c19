package generators

import (
	"fmt"
	"strings"

	"schemascan/internal/schema"
)

func GenerateMermaid(s *schema.Schema) string {
	var builder strings.Builder

	builder.WriteString("# Database Schema Diagram\n\n")
	builder.WriteString("```mermaid\nerDiagram\n")

	for _, table := range s.Tables {
		builder.WriteString(fmt.Sprintf("    %s {\n", cleanName(table.Name)))

		for _, col := range table.Columns {
			keyStr := ""
			if col.IsPrimaryKey {
				keyStr = " PK"
			} else if !col.IsNullable {
				keyStr = " NOT NULL"
			}

			builder.WriteString(fmt.Sprintf("        %s %s%s\n", formatType(col.Type), col.Name, keyStr))
		}

		builder.WriteString("    }\n\n")
	}

	for _, fk := range s.ForeignKeys {
		builder.WriteString(fmt.Sprintf("    %s ||--o{ %s : %s\n",
			cleanName(fk.ToTable),
			cleanName(fk.Table),
			fk.FromColumn))
	}

	builder.WriteString("```\n\n")
	builder.WriteString(fmt.Sprintf("Total Tables: %d\n", len(s.Tables)))
	builder.WriteString(fmt.Sprintf("Total Foreign Keys: %d\n", len(s.ForeignKeys)))

	return builder.String()
}

func formatType(sqlType string) string {
	switch strings.ToLower(sqlType) {
	case "varchar", "text", "char", "clob", "string":
		return "varchar"
	case "int", "integer", "bigint", "smallint", "tinyint":
		return "int"
	case "real", "double", "float":
		return "float"
	case "decimal", "numeric":
		return "decimal"
	case "boolean", "bool":
		return "boolean"
	case "date":
		return "date"
	case "timestamp", "datetime":
		return "timestamp"
	case "":
		// SQLite allows typeless columns.
		return "any"
	default:
		return strings.ToLower(sqlType)
	}
}

func cleanName(name string) string {
	name = strings.ReplaceAll(name, "-", "_")
	name = strings.ReplaceAll(name, ".", "_")
	return name
}
