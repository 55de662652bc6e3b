package model

// Comparator is the operator between a field key and its value.
type Comparator string

// Comparators understood by the script syntax.
const (
	CmpEq       Comparator = "="
	CmpQEq      Comparator = "?="
	CmpNe       Comparator = "!="
	CmpLt       Comparator = "<"
	CmpLe       Comparator = "<="
	CmpGt       Comparator = ">"
	CmpGe       Comparator = ">="
	CmpNone     Comparator = "" // bare value inside a block, no key
	CmpEqEq     Comparator = "=="
	CmpQuestion Comparator = "?" // reserved, not emitted by the parser
)

// BV holds either a single token or a nested block, never both.
type BV struct {
	Token *Token
	Block *Block
}

// IsToken reports whether the value side is a single token.
func (v BV) IsToken() bool { return v.Token != nil }

// IsBlock reports whether the value side is a nested block.
func (v BV) IsBlock() bool { return v.Block != nil }

// Field is one `key = value` entry of a block. Loose values (array elements)
// have a zero Key and CmpNone.
type Field struct {
	Key   Token
	Cmp   Comparator
	Value BV
}

// HasKey reports whether the field is a keyed assignment rather than a loose value.
func (f Field) HasKey() bool {
	return f.Cmp != CmpNone
}

// Block is a brace-delimited sequence of fields, or a whole file at top level.
type Block struct {
	Loc    Loc
	Fields []Field
}

// FindField returns the first field with the given key.
func (b *Block) FindField(key string) (Field, bool) {
	for _, f := range b.Fields {
		if f.HasKey() && f.Key.Is(key) {
			return f, true
		}
	}

	return Field{}, false
}

// HasKeyField reports whether a field with the given key exists.
func (b *Block) HasKeyField(key string) bool {
	_, ok := b.FindField(key)
	return ok
}
