package entity

// Table is a named character-reference lookup table: a restartable trie
// plus the registration contract that lets a consumer extend or replace
// it. The concrete entries are an input to this package, not part of its
// logic: DefaultTable ships a representative subset covering the XML
// predefined entities and the common HTML legacy names, not the full
// ~2,231-entry WHATWG table.
type Table struct {
	t *trie
}

// NewTable returns an empty table ready for Register calls.
func NewTable() *Table {
	return &Table{t: newTrie()}
}

// Register adds (or overwrites) a named entity. name must not include the
// leading '&' or trailing ';'. legacy marks whether HTML may match this
// entity without a trailing ';'.
func (tb *Table) Register(name string, codepoints []rune, legacy bool) {
	tb.t.insert(name, codepoints, legacy)
}

var defaultTable = buildDefaultTable()

// DefaultTable returns the package's shared representative named-entity
// table. Callers needing the full WHATWG table should build their own
// Table via Register and pass it to Decoder.Start instead.
func DefaultTable() *Table {
	return defaultTable
}

var xmlTable = buildXMLTable()

// XMLTable returns the table of the five XML predefined entities — the
// only named references an XML document may use without declaring them.
func XMLTable() *Table {
	return xmlTable
}

func buildXMLTable() *Table {
	tb := NewTable()
	tb.Register("amp", []rune{'&'}, false)
	tb.Register("lt", []rune{'<'}, false)
	tb.Register("gt", []rune{'>'}, false)
	tb.Register("quot", []rune{'"'}, false)
	tb.Register("apos", []rune{'\''}, false)
	return tb
}

func buildDefaultTable() *Table {
	tb := NewTable()
	for _, e := range builtinEntities {
		tb.Register(e.name, e.codepoints, e.legacy)
	}
	return tb
}

type entityDef struct {
	name       string
	codepoints []rune
	legacy     bool
}

// builtinEntities is a representative subset of the HTML named character
// reference table: the five XML-predefined entities plus a sampling of
// the common HTML legacy (semicolon-optional) and modern (semicolon-
// required) names, enough to exercise the decoder's full rule set.
var builtinEntities = []entityDef{
	// XML predefined five — always recognized in both modes.
	{"amp", []rune{'&'}, true},
	{"lt", []rune{'<'}, true},
	{"gt", []rune{'>'}, true},
	{"quot", []rune{'"'}, true},
	{"apos", []rune{'\''}, false},

	// Legacy (HTML-only, semicolon optional) uppercase historical aliases.
	{"AMP", []rune{'&'}, true},
	{"LT", []rune{'<'}, true},
	{"GT", []rune{'>'}, true},
	{"QUOT", []rune{'"'}, true},

	// Common legacy symbols.
	{"copy", []rune{'©'}, true},
	{"COPY", []rune{'©'}, true},
	{"reg", []rune{'®'}, true},
	{"REG", []rune{'®'}, true},
	{"times", []rune{'×'}, true},
	{"timesbar", []rune{'⨱'}, true},
	{"divide", []rune{'÷'}, true},
	{"frac12", []rune{'½'}, true},
	{"frac14", []rune{'¼'}, true},
	{"eacute", []rune{'é'}, true},
	{"Eacute", []rune{'É'}, true},
	{"aacute", []rune{'á'}, true},
	{"uuml", []rune{'ü'}, true},
	{"szlig", []rune{'ß'}, true},
	{"nbsp", []rune{' '}, true},

	// Common modern (semicolon-required) symbols.
	{"trade", []rune{'™'}, false},
	{"hellip", []rune{'…'}, false},
	{"mdash", []rune{'—'}, false},
	{"ndash", []rune{'–'}, false},
	{"permil", []rune{'‰'}, false},
	{"rarr", []rune{'→'}, false},
	{"larr", []rune{'←'}, false},

	// A two-codepoint entity (some names in the real WHATWG table emit a
	// combining pair).
	{"NotEqualTilde", []rune{'≂', '̸'}, false},
}
