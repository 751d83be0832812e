package ddl

import (
	"strings"

	"github.com/letmehues/flink/pkg/config"
)

// ParseTableReference parses a table reference into database, schema and
// table components. Handles formats: table, schema.table,
// database.schema.table. Missing components fall back to the configured
// defaults. Unquoted identifiers normalize to uppercase.
func ParseTableReference(ref string) (database, schema, table string) {
	ref = strings.TrimSpace(ref)
	parts := strings.Split(ref, ".")

	switch len(parts) {
	case 1:
		return config.DefaultDatabase, config.DefaultSchema, normalizeIdent(parts[0])
	case 2:
		return config.DefaultDatabase, normalizeIdent(parts[0]), normalizeIdent(parts[1])
	case 3:
		return normalizeIdent(parts[0]), normalizeIdent(parts[1]), normalizeIdent(parts[2])
	default:
		// For invalid formats, treat the whole reference as the table name.
		return config.DefaultDatabase, config.DefaultSchema, normalizeIdent(ref)
	}
}

// QualifiedName builds the fully qualified DATABASE.SCHEMA.TABLE form.
func QualifiedName(database, schema, table string) string {
	database = normalizeIdent(database)
	schema = normalizeIdent(schema)
	table = normalizeIdent(table)

	if database == "" {
		database = config.DefaultDatabase
	}
	if schema == "" {
		schema = config.DefaultSchema
	}
	return database + "." + schema + "." + table
}

// normalizeIdent trims an identifier, strips backtick or double-quote
// delimiters, and uppercases unquoted names.
func normalizeIdent(ident string) string {
	ident = strings.TrimSpace(ident)
	if len(ident) >= 2 {
		if (ident[0] == '`' && ident[len(ident)-1] == '`') ||
			(ident[0] == '"' && ident[len(ident)-1] == '"') {
			return ident[1 : len(ident)-1]
		}
	}
	return strings.ToUpper(ident)
}

// extractTableReference pulls the table reference out of a CREATE TABLE
// statement by scanning the raw text.
func extractTableReference(sql string) string {
	fields := strings.Fields(sql)
	for i := 0; i < len(fields)-1; i++ {
		if strings.EqualFold(fields[i], "TABLE") {
			ref := fields[i+1]
			// Skip IF NOT EXISTS.
			if strings.EqualFold(ref, "IF") && i+4 < len(fields) {
				ref = fields[i+4]
			}
			if open := strings.IndexByte(ref, '('); open >= 0 {
				ref = ref[:open]
			}
			return ref
		}
	}
	return ""
}
