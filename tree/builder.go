// Package tree builds a simple, parent/child/sibling DOM from the events
// a parser.Parser emits. It is a downstream consumer of the Handler
// surface, not part of the parsing core: nothing in tokenizer or parser
// depends on it.
package tree

import (
	"strings"

	"github.com/corelex/htmlkit/parser"
)

// Build parses source in full with opts and returns the resulting
// document tree. If a strict-mode or structural error occurs partway
// through, Build still returns the partial tree built so far alongside a
// non-nil *BuildError.
func Build(source string, opts parser.Options) (*Node, error) {
	b := &builder{source: source, root: &Node{Type: DocumentNode}}
	b.current = b.root

	handler := parser.Handler{
		OnAttribute: func(name, value string, quote byte) {
			b.pendingAttrOrder = append(b.pendingAttrOrder, name)
		},
		OnOpenTag:               b.openElement,
		OnCloseTag:              b.closeElement,
		OnText:                  b.appendText,
		OnComment:               b.appendComment,
		OnDeclaration:           b.appendDeclaration,
		OnProcessingInstruction: b.appendPI,
		OnError: func(err error) {
			if b.err == nil {
				b.err = &BuildError{Path: buildErrorPath(b.stack), Err: err}
			}
		},
	}

	p := parser.New(opts, handler)
	b.p = p
	if err := p.ParseComplete(source); err != nil {
		return b.root, err
	}
	if b.err != nil {
		return b.root, b.err
	}
	return b.root, nil
}

type builder struct {
	source  string
	root    *Node
	current *Node
	stack   nodeStack

	pendingAttrOrder []string

	p   *parser.Parser
	err error
}

func (b *builder) span() Span {
	start, end := b.p.StartIndex(), b.p.EndIndex()
	return Span{Offset: start, Length: end - start}
}

func (b *builder) openElement(name string, attribs map[string]string) {
	sp := b.span()
	order := b.pendingAttrOrder
	b.pendingAttrOrder = nil

	var spans map[string]Span
	if sp.Length > 0 && sp.Offset+sp.Length <= len(b.source) {
		raw := []byte(b.source[sp.Offset : sp.Offset+sp.Length])
		spans = scanAttributeSpans(raw, sp.Offset, order)
	}

	attrs := make([]Attribute, 0, len(order))
	for _, key := range order {
		attrs = append(attrs, Attribute{Key: key, Val: attribs[key], Span: spans[key]})
	}

	n := &Node{Type: ElementNode, Data: name, Attr: attrs, Span: sp}
	b.current.AppendChild(n)
	b.stack.push(n)
	b.current = n
}

func (b *builder) closeElement(name string) {
	if len(b.stack) == 0 {
		return
	}
	closed := b.stack.pop()
	closed.Span.Length = b.p.EndIndex() - closed.Span.Offset
	if top := b.stack.top(); top != nil {
		b.current = top
	} else {
		b.current = b.root
	}
}

func (b *builder) appendText(text string) {
	b.current.AppendChild(&Node{Type: TextNode, Data: text, Span: b.span()})
}

func (b *builder) appendComment(data string) {
	b.current.AppendChild(&Node{Type: CommentNode, Data: data, Span: b.span()})
}

func (b *builder) appendDeclaration(data string) {
	sp := b.span()
	if looksLikeDoctype(data) {
		b.current.AppendChild(parseDoctype(stripDoctypeKeyword(data), sp))
		return
	}
	b.current.AppendChild(&Node{Type: DeclarationNode, Data: data, Span: sp})
}

func (b *builder) appendPI(name, data string) {
	text := name
	if data != "" {
		text = strings.TrimSpace(name + " " + data)
	}
	b.current.AppendChild(&Node{Type: ProcessingInstructionNode, Data: text, Span: b.span()})
}
