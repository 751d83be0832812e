package ddl

import (
	"fmt"

	"github.com/blastrain/vitess-sqlparser/sqlparser"

	"github.com/letmehues/flink/pkg/types"
)

// TableSchema is the engine-level schema derived from one CREATE TABLE
// statement.
type TableSchema struct {
	Database string
	Schema   string
	Table    string
	RowType  types.EngineType
}

// Names returns the ordered column names.
func (s TableSchema) Names() []string {
	names := make([]string, len(s.RowType.Fields))
	for i, f := range s.RowType.Fields {
		names[i] = f.Name
	}
	return names
}

// Types returns the ordered column engine types.
func (s TableSchema) Types() []types.EngineType {
	ts := make([]types.EngineType, len(s.RowType.Fields))
	for i, f := range s.RowType.Fields {
		ts[i] = f.Type
	}
	return ts
}

// Nullables returns the ordered column nullability flags.
func (s TableSchema) Nullables() []bool {
	ns := make([]bool, len(s.RowType.Fields))
	for i, f := range s.RowType.Fields {
		ns[i] = f.Nullable
	}
	return ns
}

// DeriveTableSchema parses a single CREATE TABLE statement and returns the
// engine row type for its columns. Columns are nullable unless declared NOT
// NULL or PRIMARY KEY.
func DeriveTableSchema(sql string) (TableSchema, error) {
	stmt, err := sqlparser.Parse(sql)
	if err != nil {
		return TableSchema{}, fmt.Errorf("failed to parse DDL: %w", err)
	}

	create, ok := stmt.(*sqlparser.CreateTable)
	if !ok {
		return TableSchema{}, fmt.Errorf("expected a CREATE TABLE statement, got %T", stmt)
	}
	if len(create.Columns) == 0 {
		return TableSchema{}, fmt.Errorf("CREATE TABLE declares no columns")
	}

	fields := make([]types.Field, 0, len(create.Columns))
	for _, col := range create.Columns {
		et, err := MapColumnType(col.Type)
		if err != nil {
			return TableSchema{}, fmt.Errorf("column %q: %w", col.Name, err)
		}

		nullable := true
		for _, opt := range col.Options {
			switch opt.Type {
			case sqlparser.ColumnOptionNotNull, sqlparser.ColumnOptionPrimaryKey:
				nullable = false
			}
		}

		fields = append(fields, types.Field{Name: col.Name, Type: et, Nullable: nullable})
	}

	// The table reference is recovered from the statement text rather than
	// the AST, which normalizes qualified names inconsistently.
	database, schema, table := ParseTableReference(extractTableReference(sql))

	return TableSchema{
		Database: database,
		Schema:   schema,
		Table:    table,
		RowType:  types.Row(fields...),
	}, nil
}
