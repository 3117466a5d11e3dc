package parser

import (
	"strings"

	"github.com/corelex/htmlkit/tokenizer"
)

// Parser drives a Tokenizer and layers element-structure semantics on top
// of its raw lexical events: an open-element stack, void-element and
// self-closing-tag handling, implicit closes, and case folding. It
// implements tokenizer.Callbacks itself rather than delegating to a
// separate listener type.
type Parser struct {
	opts    Options
	handler Handler
	tok     Tokenizer

	stack []string

	pendingOpenName string
	curOpenStart    int
	curAttribs      map[string]string

	curAttrName  string
	curAttrBuf   strings.Builder
	curAttrQuote byte

	startIndex int
	endIndex   int
}

// New constructs a Parser around a fresh Tokenizer (or whatever
// opts.TokenizerFactory returns) and fires handler.OnParserInit exactly
// once before returning.
func New(opts Options, handler Handler) *Parser {
	p := &Parser{
		opts:       opts,
		handler:    handler,
		curAttribs: make(map[string]string),
	}
	if opts.TokenizerFactory != nil {
		p.tok = opts.TokenizerFactory(opts.Options, p)
	} else {
		p.tok = tokenizer.New(opts.Options, p)
	}
	if p.handler.OnParserInit != nil {
		p.handler.OnParserInit(p)
	}
	return p
}

// Write feeds chunk to the underlying tokenizer. It may be called
// repeatedly across network or file reads; a multi-byte construct split
// across calls is handled transparently.
func (p *Parser) Write(chunk string) error { return p.tok.Write(chunk) }

// End signals no further input, optionally flushing one last chunk first.
func (p *Parser) End(chunk ...string) error { return p.tok.End(chunk...) }

// Pause suspends event dispatch; Resume continues it from exactly where
// it left off, including mid-token.
func (p *Parser) Pause()  { p.tok.Pause() }
func (p *Parser) Resume() { p.tok.Resume() }

// Reset returns the Parser to its post-construction state so the same
// instance can parse a new document.
func (p *Parser) Reset() {
	p.tok.Reset()
	p.stack = nil
	p.curAttribs = make(map[string]string)
	p.curAttrName = ""
	p.curAttrBuf.Reset()
	p.curAttrQuote = 0
	p.pendingOpenName = ""
	p.startIndex, p.endIndex = 0, 0
	p.handler.fireReset()
}

// ParseComplete parses data in one call, as if written in full and then
// ended; it is a convenience wrapper (Reset followed by End), not a
// distinct parsing mode.
func (p *Parser) ParseComplete(data string) error {
	p.Reset()
	return p.tok.End(data)
}

// StartIndex and EndIndex report the absolute byte span of the most
// recently dispatched Handler event. For a real closing tag that also
// implicitly closes elements above it on the stack, each implicit pop's
// span collapses to [endIndex, endIndex] of the triggering token; only
// the outermost, explicitly matched pop carries the tag's real span.
func (p *Parser) StartIndex() int { return p.startIndex }
func (p *Parser) EndIndex() int   { return p.endIndex }

func (p *Parser) foldTag(name string) string {
	if p.opts.LowerCaseTags {
		return strings.ToLower(name)
	}
	return name
}

func (p *Parser) foldAttr(name string) string {
	if p.opts.LowerCaseAttributeNames {
		return strings.ToLower(name)
	}
	return name
}

// finalizeAttr closes out whichever attribute is currently accumulating,
// concatenating every OnAttribData segment the tokenizer sent for it
// (an attribute value split around a decoded entity arrives as more than
// one segment) into the single value Handler.OnAttribute expects.
func (p *Parser) finalizeAttr() {
	if p.curAttrName == "" {
		return
	}
	value := p.curAttrBuf.String()
	p.curAttribs[p.curAttrName] = value
	p.handler.fireAttribute(p.curAttrName, value, p.curAttrQuote)
	p.curAttrName = ""
	p.curAttrBuf.Reset()
	p.curAttrQuote = 0
}

// completeOpenTag runs once an opening tag's ">" or "/>" has been seen:
// the OnOpenTag dispatch, then void/self-closing resolution. Implicit
// closes have already run in OnOpenTagName.
func (p *Parser) completeOpenTag(end int, selfClosingToken bool) {
	name := p.pendingOpenName

	p.handler.fireOpenTag(name, p.curAttribs)

	isVoid := !p.opts.XMLMode && voidElements[name]
	honorSelfClose := selfClosingToken &&
		(p.opts.RecognizeSelfClosing || p.opts.XMLMode || !knownNonVoidElements[name])

	if isVoid || honorSelfClose {
		p.handler.fireCloseTag(name)
		return
	}
	p.stack = append(p.stack, name)
}

func (p *Parser) OnOpenTagName(name string, start, end int) {
	p.pendingOpenName = p.foldTag(name)
	// The implicit-close tables are HTML-only; XML nests freely. Each
	// implicit pop's span collapses to the end of the new tag's name.
	if !p.opts.XMLMode {
		for len(p.stack) > 0 && implicitlyCloses(p.pendingOpenName, p.stack[len(p.stack)-1]) {
			top := p.stack[len(p.stack)-1]
			p.stack = p.stack[:len(p.stack)-1]
			p.startIndex, p.endIndex = end, end
			p.handler.fireCloseTag(top)
		}
	}
	// The tag name starts right after its '<'; the open tag's span does too.
	p.curOpenStart = start - 1
	p.curAttribs = make(map[string]string)
	p.curAttrName = ""
	p.curAttrBuf.Reset()
	p.startIndex, p.endIndex = start, end
	p.handler.fireOpenTagName(p.pendingOpenName)
}

func (p *Parser) OnAttribName(name string, start, end int) {
	p.finalizeAttr()
	p.curAttrName = p.foldAttr(name)
}

func (p *Parser) OnAttribData(value string, quote byte, start, end int) {
	p.curAttrBuf.WriteString(value)
	p.curAttrQuote = quote
}

func (p *Parser) OnOpenTagEnd(end int) {
	p.finalizeAttr()
	p.startIndex, p.endIndex = p.curOpenStart, end
	p.completeOpenTag(end, false)
}

func (p *Parser) OnSelfClosingTag(end int) {
	p.finalizeAttr()
	p.startIndex, p.endIndex = p.curOpenStart, end
	p.completeOpenTag(end, true)
}

// OnCloseTag scans the stack from the top for a matching open element.
// Anything above the match is implicitly closed with a collapsed span;
// the match itself is closed with the tag's real span. A name not found
// on the stack is a strict-mode error and a silent no-op otherwise.
func (p *Parser) OnCloseTag(name string, start, end int) {
	folded := p.foldTag(name)

	idx := -1
	for i := len(p.stack) - 1; i >= 0; i-- {
		if p.stack[i] == folded {
			idx = i
			break
		}
	}
	if idx == -1 {
		if p.opts.StrictMode {
			p.handler.fireError(&StructureError{Msg: ErrClosingTagMissing.Msg, Tag: folded})
		}
		return
	}

	for len(p.stack)-1 > idx {
		top := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]
		p.startIndex, p.endIndex = end, end
		p.handler.fireCloseTag(top)
	}
	p.stack = p.stack[:len(p.stack)-1]
	p.startIndex, p.endIndex = start, end
	p.handler.fireCloseTag(folded)
}

func (p *Parser) OnText(text string, start, end int) {
	p.startIndex, p.endIndex = start, end
	p.handler.fireText(text)
}

func (p *Parser) OnComment(data string, start, end int) {
	p.startIndex, p.endIndex = start, end
	p.handler.fireComment(data)
}

func (p *Parser) OnCommentEnd(end int) {
	p.endIndex = end
	p.handler.fireCommentEnd()
}

func (p *Parser) OnCDataStart(start int) {
	p.startIndex = start
	p.handler.fireCDataStart()
}

// OnCData forwards the section's characters through OnText: the Handler
// surface exposes CDATA boundaries via OnCDataStart/OnCDataEnd but not a
// dedicated data callback, so a consumer building a text tree still
// needs the characters to land somewhere.
func (p *Parser) OnCData(data string, start, end int) {
	p.startIndex, p.endIndex = start, end
	p.handler.fireText(data)
}

func (p *Parser) OnCDataEnd(end int) {
	p.endIndex = end
	p.handler.fireCDataEnd()
}

func (p *Parser) OnProcessingInstruction(data string, start, end int) {
	p.startIndex, p.endIndex = start, end
	name, rest := splitPIData(data)
	p.handler.firePI(name, rest)
}

func (p *Parser) OnDeclaration(data string, start, end int) {
	p.startIndex, p.endIndex = start, end
	p.handler.fireDeclaration(data)
}

func (p *Parser) OnError(err error) {
	p.handler.fireError(err)
}

// OnEnd drains any still-open elements before firing handler.OnEnd: an
// unterminated document raises ErrClosingTagMissing in strict mode, or
// silently closes the remaining stack (innermost first) otherwise.
func (p *Parser) OnEnd() {
	if len(p.stack) > 0 {
		if p.opts.StrictMode {
			top := p.stack[len(p.stack)-1]
			p.handler.fireError(&StructureError{Msg: ErrClosingTagMissing.Msg, Tag: top})
		} else {
			end := p.tok.EndIndex()
			for i := len(p.stack) - 1; i >= 0; i-- {
				p.startIndex, p.endIndex = end, end
				p.handler.fireCloseTag(p.stack[i])
			}
		}
		p.stack = nil
	}
	p.handler.fireEnd()
}

// splitPIData separates a processing instruction's target name from the
// remainder of its data, e.g. `xml-stylesheet type="text/css" ...` splits
// into ("xml-stylesheet", `type="text/css" ...`).
func splitPIData(data string) (name, rest string) {
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case ' ', '\t', '\n', '\r':
			return data[:i], strings.TrimLeft(data[i:], " \t\r\n")
		}
	}
	return data, ""
}
