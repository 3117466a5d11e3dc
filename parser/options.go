package parser

import "github.com/corelex/htmlkit/tokenizer"

// Tokenizer is the subset of *tokenizer.Tokenizer the Parser drives. A
// custom TokenizerFactory must return something satisfying it.
type Tokenizer interface {
	Write(chunk string) error
	End(chunk ...string) error
	Pause()
	Resume()
	Reset()
	ParseComplete(data string) error
	StartIndex() int
	EndIndex() int
}

// Options configures both the Parser and the Tokenizer it drives. The
// zero value is valid HTML-mode configuration except for the three
// booleans whose natural default is true (DecodeEntities, LowerCaseTags,
// LowerCaseAttributeNames) — callers should start from DefaultOptions or
// DefaultXMLOptions rather than an Options{} literal.
type Options struct {
	tokenizer.Options

	// LowerCaseTags lowercases tag names on emission.
	LowerCaseTags bool

	// LowerCaseAttributeNames lowercases attribute names on emission.
	LowerCaseAttributeNames bool

	// TokenizerFactory, if set, replaces the built-in Tokenizer
	// construction — e.g. to wrap it with diagnostic logging.
	TokenizerFactory func(tokenizer.Options, tokenizer.Callbacks) Tokenizer
}

// DefaultOptions returns the HTML-mode defaults: entities decoded, tags
// and attribute names lowercased, CDATA and stray "/>" not specially
// recognized, lenient (non-strict) lexing.
func DefaultOptions() Options {
	return Options{
		Options: tokenizer.Options{
			DecodeEntities: true,
		},
		LowerCaseTags:           true,
		LowerCaseAttributeNames: true,
	}
}

// DefaultXMLOptions returns the XML-mode defaults: entities decoded (but
// restricted to the five predefined ones), names preserved verbatim,
// CDATA sections and self-closing tags recognized on every element.
func DefaultXMLOptions() Options {
	return Options{
		Options: tokenizer.Options{
			XMLMode:              true,
			DecodeEntities:       true,
			RecognizeCDATA:       true,
			RecognizeSelfClosing: true,
		},
	}
}
