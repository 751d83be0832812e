package types

var kindsByName = map[string]Kind{
	"BOOLEAN":   KindBoolean,
	"BYTE":      KindByte,
	"SHORT":     KindShort,
	"INT":       KindInt,
	"LONG":      KindLong,
	"FLOAT":     KindFloat,
	"DOUBLE":    KindDouble,
	"STRING":    KindString,
	"DATE":      KindDate,
	"TIME":      KindTime,
	"TIMESTAMP": KindTimestamp,
	"BINARY":    KindBinary,
	"CHAR":      KindChar,
	"DECIMAL":   KindDecimal,
	"ROW":       KindRow,
	"ARRAY":     KindArray,
	"MAP":       KindMap,
}

// KindFromName resolves an engine kind from its canonical name.
func KindFromName(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}
