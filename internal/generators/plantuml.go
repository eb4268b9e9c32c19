package generators

import (
	"fmt"
	"strings"

	"schemascan/internal/schema"
)

func GeneratePlantUML(s *schema.Schema) string {
	var builder strings.Builder

	builder.WriteString("@startuml\n")
	builder.WriteString("!theme plain\n")
	builder.WriteString("skinparam linetype ortho\n\n")

	for _, table := range s.Tables {
		builder.WriteString(fmt.Sprintf("entity \"%s\" as %s {\n", table.Name, cleanName(table.Name)))

		for _, col := range table.Columns {
			if col.IsPrimaryKey {
				builder.WriteString(fmt.Sprintf("  * %s : %s <<PK>>\n", col.Name, formatType(col.Type)))
			}
		}

		builder.WriteString("  --\n")

		for _, col := range table.Columns {
			if !col.IsPrimaryKey {
				nullStr := ""
				if !col.IsNullable {
					nullStr = " <<NOT NULL>>"
				}
				builder.WriteString(fmt.Sprintf("  %s : %s%s\n", col.Name, formatType(col.Type), nullStr))
			}
		}

		builder.WriteString("}\n\n")
	}

	for _, fk := range s.ForeignKeys {
		builder.WriteString(fmt.Sprintf("%s ||--o{ %s : %s\n",
			cleanName(fk.ToTable),
			cleanName(fk.Table),
			fk.FromColumn))
	}

	builder.WriteString("\n@enduml\n")

	return builder.String()
}
