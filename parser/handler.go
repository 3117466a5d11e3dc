package parser

// Handler is the external event sink for a Parser: a plain struct of
// optional function fields, each nil-checked before dispatch — the Go
// rendering of a duck-typed "method missing means no-op" handler object.
// Handler is copied by value into the Parser at construction; a caller
// that needs to vary behavior mid-stream should close over mutable state
// in the function fields themselves rather than expect to swap the
// Handler out later.
type Handler struct {
	// OnParserInit is called exactly once, synchronously, during
	// Parser construction, with the Parser itself.
	OnParserInit func(p *Parser)

	OnReset func()
	OnEnd   func()
	OnError func(err error)

	OnOpenTagName func(name string)
	OnOpenTag     func(name string, attribs map[string]string)
	OnAttribute   func(name, value string, quote byte)
	OnCloseTag    func(name string)

	OnText func(text string)

	OnComment    func(data string)
	OnCommentEnd func()

	OnCDataStart func()
	OnCDataEnd   func()

	OnProcessingInstruction func(name, data string)
	OnDeclaration           func(data string)
}

func (h *Handler) fireOpenTagName(name string) {
	if h.OnOpenTagName != nil {
		h.OnOpenTagName(name)
	}
}

func (h *Handler) fireOpenTag(name string, attribs map[string]string) {
	if h.OnOpenTag != nil {
		h.OnOpenTag(name, attribs)
	}
}

func (h *Handler) fireAttribute(name, value string, quote byte) {
	if h.OnAttribute != nil {
		h.OnAttribute(name, value, quote)
	}
}

func (h *Handler) fireCloseTag(name string) {
	if h.OnCloseTag != nil {
		h.OnCloseTag(name)
	}
}

func (h *Handler) fireText(text string) {
	if text == "" {
		return
	}
	if h.OnText != nil {
		h.OnText(text)
	}
}

func (h *Handler) fireComment(data string) {
	if h.OnComment != nil {
		h.OnComment(data)
	}
}

func (h *Handler) fireCommentEnd() {
	if h.OnCommentEnd != nil {
		h.OnCommentEnd()
	}
}

func (h *Handler) fireCDataStart() {
	if h.OnCDataStart != nil {
		h.OnCDataStart()
	}
}

func (h *Handler) fireCDataEnd() {
	if h.OnCDataEnd != nil {
		h.OnCDataEnd()
	}
}

func (h *Handler) firePI(name, data string) {
	if h.OnProcessingInstruction != nil {
		h.OnProcessingInstruction(name, data)
	}
}

func (h *Handler) fireDeclaration(data string) {
	if h.OnDeclaration != nil {
		h.OnDeclaration(data)
	}
}

func (h *Handler) fireError(err error) {
	if h.OnError != nil {
		h.OnError(err)
	}
}

func (h *Handler) fireEnd() {
	if h.OnEnd != nil {
		h.OnEnd()
	}
}

func (h *Handler) fireReset() {
	if h.OnReset != nil {
		h.OnReset()
	}
}
