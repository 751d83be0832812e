// Package ddl derives engine types from SQL DDL statements so that table
// schemas declared in SQL can enter the planner through the type bridge.
package ddl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/letmehues/flink/pkg/types"
)

// columnKinds maps SQL column type names to engine kinds. CHAR maps to the
// engine Char kind on purpose: the bridge rejects it, and a silent STRING
// substitution would hide that.
var columnKinds = map[string]types.Kind{
	"BOOLEAN":   types.KindBoolean,
	"BOOL":      types.KindBoolean,
	"TINYINT":   types.KindByte,
	"SMALLINT":  types.KindShort,
	"INT":       types.KindInt,
	"INTEGER":   types.KindInt,
	"MEDIUMINT": types.KindInt,
	"BIGINT":    types.KindLong,
	"FLOAT":     types.KindFloat,
	"REAL":      types.KindFloat,
	"DOUBLE":    types.KindDouble,
	"VARCHAR":   types.KindString,
	"TEXT":      types.KindString,
	"STRING":    types.KindString,
	"CHAR":      types.KindChar,
	"DATE":      types.KindDate,
	"TIME":      types.KindTime,
	"TIMESTAMP": types.KindTimestamp,
	"DATETIME":  types.KindTimestamp,
	"BINARY":    types.KindBinary,
	"VARBINARY": types.KindBinary,
	"BLOB":      types.KindBinary,
	"BYTEA":     types.KindBinary,
}

// MapColumnType converts a SQL column type declaration to an engine type.
// The declaration may carry arguments, e.g. "varchar(255)" or
// "decimal(10, 2)". Unknown type names are an error rather than a text
// fallback: the bridge's extensibility contract is explicit failure.
func MapColumnType(decl string) (types.EngineType, error) {
	name, args := splitTypeDecl(decl)
	if name == "" {
		return types.EngineType{}, fmt.Errorf("empty column type declaration")
	}

	if name == "DECIMAL" || name == "NUMERIC" {
		precision, scale, err := decimalArgs(args)
		if err != nil {
			return types.EngineType{}, fmt.Errorf("invalid %s arguments in %q: %w", name, decl, err)
		}
		return types.Decimal(precision, scale), nil
	}

	kind, ok := columnKinds[name]
	if !ok {
		return types.EngineType{}, fmt.Errorf("unknown column type %q", decl)
	}
	return types.Primitive(kind), nil
}

// splitTypeDecl separates a type declaration into its uppercase name and
// argument list, e.g. "decimal(10,2)" -> "DECIMAL", ["10", "2"].
func splitTypeDecl(decl string) (string, []string) {
	decl = strings.TrimSpace(decl)
	open := strings.IndexByte(decl, '(')
	if open < 0 {
		return strings.ToUpper(decl), nil
	}

	name := strings.ToUpper(strings.TrimSpace(decl[:open]))
	close := strings.LastIndexByte(decl, ')')
	if close < open {
		return name, nil
	}

	raw := strings.Split(decl[open+1:close], ",")
	args := make([]string, 0, len(raw))
	for _, a := range raw {
		if trimmed := strings.TrimSpace(a); trimmed != "" {
			args = append(args, trimmed)
		}
	}
	return name, args
}

func decimalArgs(args []string) (int, int, error) {
	if len(args) == 0 {
		return types.PrecisionUnspecified, types.PrecisionUnspecified, nil
	}
	precision, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("precision: %w", err)
	}
	scale := 0
	if len(args) > 1 {
		scale, err = strconv.Atoi(args[1])
		if err != nil {
			return 0, 0, fmt.Errorf("scale: %w", err)
		}
	}
	return precision, scale, nil
}
