package planner

var kindsByName = map[string]Kind{
	"BOOLEAN":   KindBoolean,
	"TINYINT":   KindTinyInt,
	"SMALLINT":  KindSmallInt,
	"INTEGER":   KindInteger,
	"BIGINT":    KindBigInt,
	"FLOAT":     KindFloat,
	"DOUBLE":    KindDouble,
	"DECIMAL":   KindDecimal,
	"CHAR":      KindChar,
	"VARCHAR":   KindVarchar,
	"DATE":      KindDate,
	"TIME":      KindTime,
	"TIMESTAMP": KindTimestamp,
	"VARBINARY": KindVarBinary,
	"NULL":      KindNull,
	"ANY":       KindAny,
	"SYMBOL":    KindSymbol,
	"ROW":       KindRow,
	"ARRAY":     KindArray,
	"MAP":       KindMap,
}

// KindFromName resolves a planner kind from its canonical name.
func KindFromName(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}
