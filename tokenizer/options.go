package tokenizer

// Options configures the lexical behavior of a Tokenizer. parser.Options
// embeds this struct so callers configure both layers from a single value.
// The zero value is not a sensible default (DecodeEntities false, for
// instance) — callers normally start from parser.DefaultOptions() or
// parser.DefaultXMLOptions() rather than an Options{} literal; a Tokenizer
// constructed directly via New receives the Options exactly as given.
type Options struct {
	// XMLMode switches on strict XML lexical rules: the named-entity set
	// shrinks to the five XML predefined entities and self-closing tags
	// are honored on every element. CDATA recognition is still governed
	// by RecognizeCDATA alone (parser.DefaultXMLOptions turns it on).
	XMLMode bool

	// DecodeEntities controls whether '&'-introduced character references
	// in text and attribute values are decoded. When false, they are
	// passed through as literal text.
	DecodeEntities bool

	// RecognizeCDATA controls whether "<![CDATA[...]]>" is parsed as a
	// CDATA section (true) or an ordinary declaration (false).
	RecognizeCDATA bool

	// RecognizeSelfClosing controls whether "/>" closes the current tag
	// immediately in HTML mode. Always honored in XML mode regardless of
	// this setting.
	RecognizeSelfClosing bool

	// StrictMode enables lexical validation; the Err* values in errors.go
	// are the finite set of errors it can raise.
	StrictMode bool
}
