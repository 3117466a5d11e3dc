package tokenizer

// Callbacks is the event sink the Tokenizer drives as it recognizes
// lexemes. The parser package implements it; every method receives raw,
// un-case-folded slices plus the absolute, half-open byte span of the
// source that produced them.
type Callbacks interface {
	OnAttribName(name string, start, end int)
	OnAttribData(value string, quote byte, start, end int)
	OnOpenTagName(name string, start, end int)
	OnOpenTagEnd(end int)
	OnSelfClosingTag(end int)
	OnCloseTag(name string, start, end int)
	OnText(text string, start, end int)
	OnComment(data string, start, end int)
	OnCommentEnd(end int)
	OnCDataStart(start int)
	OnCData(data string, start, end int)
	OnCDataEnd(end int)
	OnProcessingInstruction(data string, start, end int)
	OnDeclaration(data string, start, end int)
	OnError(err error)
	OnEnd()
}

// NopCallbacks implements Callbacks with no-op methods, embeddable by
// callers (and tests) that only care about a subset of events.
type NopCallbacks struct{}

func (NopCallbacks) OnAttribName(name string, start, end int)              {}
func (NopCallbacks) OnAttribData(value string, quote byte, start, end int) {}
func (NopCallbacks) OnOpenTagName(name string, start, end int)             {}
func (NopCallbacks) OnOpenTagEnd(end int)                                  {}
func (NopCallbacks) OnSelfClosingTag(end int)                              {}
func (NopCallbacks) OnCloseTag(name string, start, end int)                {}
func (NopCallbacks) OnText(text string, start, end int)                    {}
func (NopCallbacks) OnComment(data string, start, end int)                 {}
func (NopCallbacks) OnCommentEnd(end int)                                  {}
func (NopCallbacks) OnCDataStart(start int)                                {}
func (NopCallbacks) OnCData(data string, start, end int)                   {}
func (NopCallbacks) OnCDataEnd(end int)                                    {}
func (NopCallbacks) OnProcessingInstruction(data string, start, end int)   {}
func (NopCallbacks) OnDeclaration(data string, start, end int)             {}
func (NopCallbacks) OnError(err error)                                     {}
func (NopCallbacks) OnEnd()                                                {}
