// Package tokenizer implements a byte-driven, incrementally resumable
// lexer for HTML and XML markup. It is built around a text/template-style
// state-function scanner, generalized from a one-shot terminating scan
// into a non-terminating loop that can be fed input across many Write
// calls and paused/resumed at any point.
//
// The Tokenizer knows nothing about element semantics (void elements,
// implicit closes, tree structure) — that belongs to package parser, which
// drives a Tokenizer and implements Callbacks to receive its raw lexical
// events.
package tokenizer

import (
	"github.com/corelex/htmlkit/entity"
	"github.com/corelex/htmlkit/internal/position"
)

// stateFn is one state of the scanner: a function of the current scanner
// that returns the next state. A stateFn may be re-entered after
// returning (when input runs out or the caller pauses) and must leave the
// Tokenizer in a consistent, resumable condition.
type stateFn func(*Tokenizer) stateFn

const (
	entPhaseStart = iota // just consumed '&', deciding numeric vs named
	entPhaseHash         // consumed '#', deciding decimal vs hex
	entPhaseWalk         // decoder.Start called, feeding bytes one at a time
)

// Tokenizer is a resumable, byte-driven HTML/XML lexer. It is not safe
// for concurrent use.
type Tokenizer struct {
	opts Options
	cbs  Callbacks

	buf          []byte
	bufOffset    int // absolute offset of buf[0]
	pos          int // absolute scan position
	sectionStart int // absolute start of the lexeme/run in progress

	state  stateFn
	paused bool
	done   bool
	ending bool

	posTracker *position.Tracker

	openTagStart     int // absolute position of the current tag's '<'
	tagNameStart     int
	pendingOpenName  string
	pendingCloseName string

	attrNameStart  int
	attrValueStart int
	quote          byte // 0, '\'', or '"' — current attribute value delimiter

	declStart     int
	commentStart  int
	cdataStart    int
	cdataMatchIdx int
	piStart       int
	piQPos        int

	specialTag        string // lowercased script/style/title/textarea, "" if none
	specialMatchIdx   int
	specialCloseStart int

	ent          entity.Decoder
	entPhase     int
	entReturn    stateFn
	entPending   bool
	entInAttr    bool
	entAmpPos    int
	entNameStart int

	lastStart int
	lastEnd   int
}

// New constructs a Tokenizer that reports lexical events to cbs.
func New(opts Options, cbs Callbacks) *Tokenizer {
	t := &Tokenizer{opts: opts, cbs: cbs}
	t.Reset()
	return t
}

// Reset returns the Tokenizer to its initial state, as if newly
// constructed, discarding any buffered or in-progress input.
func (t *Tokenizer) Reset() {
	t.buf = nil
	t.bufOffset = 0
	t.pos = 0
	t.sectionStart = 0
	t.state = stateText
	t.paused = false
	t.done = false
	t.ending = false
	t.posTracker = position.NewTracker()
	t.openTagStart = 0
	t.pendingOpenName = ""
	t.pendingCloseName = ""
	t.quote = 0
	t.specialTag = ""
	t.specialMatchIdx = 0
	t.cdataMatchIdx = 0
	t.entReturn = nil
	t.entPending = false
	t.lastStart = 0
	t.lastEnd = 0
}

// Write appends chunk to the input and, unless paused, scans as much of it
// as possible before returning.
func (t *Tokenizer) Write(chunk string) error {
	if t.done {
		err := t.errAt(ErrWriteAfterDone)
		if t.cbs != nil {
			t.cbs.OnError(err)
		}
		return err
	}
	t.buf = append(t.buf, chunk...)
	if !t.paused {
		t.run()
		t.compact()
	}
	return nil
}

// End appends any final chunks, marks the stream complete, and (unless
// paused) drains the buffer and fires the terminal OnEnd callback.
func (t *Tokenizer) End(chunk ...string) error {
	if t.done {
		err := t.errAt(ErrEndAfterDone)
		if t.cbs != nil {
			t.cbs.OnError(err)
		}
		return err
	}
	for _, c := range chunk {
		t.buf = append(t.buf, c...)
	}
	t.ending = true
	if !t.paused {
		t.run()
		t.finalize()
		t.compact()
	}
	return nil
}

// Pause suspends scanning. Write continues to buffer input but no bytes
// are consumed and no callbacks fire until Resume.
func (t *Tokenizer) Pause() {
	t.paused = true
}

// Resume clears a pause and continues scanning from where it left off. A
// no-op if not currently paused. If End was called while paused, Resume
// drains the remaining input and fires OnEnd.
func (t *Tokenizer) Resume() {
	if !t.paused {
		return
	}
	t.paused = false
	t.run()
	if t.ending {
		t.finalize()
	}
	t.compact()
}

// ParseComplete is a convenience equivalent to Reset followed by End(data).
func (t *Tokenizer) ParseComplete(data string) error {
	t.Reset()
	return t.End(data)
}

// StartIndex returns the absolute start offset of the most recently
// emitted event's source span.
func (t *Tokenizer) StartIndex() int { return t.lastStart }

// EndIndex returns the absolute end offset of the most recently emitted
// event's source span.
func (t *Tokenizer) EndIndex() int { return t.lastEnd }

// run drives the state machine until the buffer is exhausted, the
// Tokenizer is paused, or it has reached a terminal state.
func (t *Tokenizer) run() {
	for {
		if t.paused || t.done {
			return
		}
		if !t.available() {
			return
		}
		t.state = t.state(t)
	}
}

// finalize flushes any trailing content once End has drained the buffer
// and marks the Tokenizer done. A construct left unterminated at
// end-of-input (an open tag, comment, etc. with no closing delimiter) is
// flushed as plain text rather than silently discarded.
func (t *Tokenizer) finalize() {
	if t.done || t.paused {
		return
	}
	// A character reference still mid-walk when the input ends is given
	// one last chance to resolve: HTML accepts "&timesbar" or "&#123"
	// without their terminator at end of input, XML does not. Attribute
	// context is excluded — an attribute value cut off by end of input is
	// an unterminated tag, flushed below as literal trailing text.
	if t.entPending && t.entPhase == entPhaseWalk && !t.entInAttr {
		step := t.ent.End()
		if step.Action == entity.Emit {
			t.pos = t.entNameStart + step.Consumed
			t.resolveEntity(step.Codepoints)
		} else {
			t.resolveEntity(nil)
		}
		t.pos = t.bufOffset + len(t.buf)
	}
	t.entPending = false
	if t.paused {
		// A callback during entity resolution paused us; Resume re-enters
		// finalize with entPending already cleared.
		return
	}
	if t.pos > t.sectionStart {
		t.flushText(t.pos)
		if t.paused {
			return
		}
	}
	t.done = true
	if t.cbs != nil {
		t.cbs.OnEnd()
	}
}

// blocked reports whether the current stateFn should yield back to run:
// either paused, or no more bytes are available right now.
func (t *Tokenizer) blocked() bool {
	return t.paused || !t.available()
}

func (t *Tokenizer) available() bool {
	return t.pos < t.bufOffset+len(t.buf)
}

func (t *Tokenizer) peek() byte {
	return t.buf[t.pos-t.bufOffset]
}

func (t *Tokenizer) next() byte {
	b := t.buf[t.pos-t.bufOffset]
	t.posTracker.Advance(b, t.pos)
	t.pos++
	return b
}

func (t *Tokenizer) slice(start, end int) string {
	return string(t.buf[start-t.bufOffset : end-t.bufOffset])
}

// compact discards buffered bytes no longer reachable by any in-progress
// lexeme. sectionStart is always the earliest absolute offset any pending
// construct (tag, attribute, comment, CDATA, declaration, PI) could need.
func (t *Tokenizer) compact() {
	if t.sectionStart <= t.bufOffset {
		return
	}
	drop := t.sectionStart - t.bufOffset
	t.buf = t.buf[drop:]
	t.bufOffset = t.sectionStart
}

func (t *Tokenizer) errAt(base *LexError) *LexError {
	return lexErrorAt(base, t.posTracker.Line())
}

func (t *Tokenizer) raiseStrict(base *LexError) {
	err := t.errAt(base)
	t.done = true
	if t.cbs != nil {
		t.cbs.OnError(err)
	}
}

func (t *Tokenizer) flushText(end int) {
	if end > t.sectionStart {
		s := t.slice(t.sectionStart, end)
		t.cbs.OnText(s, t.sectionStart, end)
		t.lastStart, t.lastEnd = t.sectionStart, end
	}
	t.sectionStart = end
}

func (t *Tokenizer) flushAttrValue(end int) {
	if end > t.attrValueStart {
		s := t.slice(t.attrValueStart, end)
		t.cbs.OnAttribData(s, t.quote, t.attrValueStart, end)
		t.lastStart, t.lastEnd = t.attrValueStart, end
	}
	t.attrValueStart = end
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

func isAsciiAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func lowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

func lowerASCII(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = lowerByte(s[i])
	}
	return string(out)
}

// stateText is the initial state and the state reached between tags:
// plain character data, watching for '<' (tag/comment/declaration start)
// and, when entity decoding is on, '&' (character reference start).
func stateText(t *Tokenizer) stateFn {
	for {
		if t.blocked() {
			return stateText
		}
		switch t.peek() {
		case '<':
			ltPos := t.pos
			t.flushText(ltPos)
			t.next()
			t.openTagStart = ltPos
			return stateBeforeTagName
		case '&':
			if t.opts.DecodeEntities {
				return t.startEntity(false, stateText)
			}
			t.next()
		default:
			t.next()
		}
	}
}

func stateBeforeTagName(t *Tokenizer) stateFn {
	if t.blocked() {
		return stateBeforeTagName
	}
	b := t.peek()
	switch {
	case b == '!':
		t.next()
		return stateDeclOpen
	case b == '?':
		t.next()
		t.piStart = t.pos
		return stateInProcessingInstruction
	case b == '/':
		t.next()
		t.tagNameStart = t.pos
		return stateInClosingTagName
	case isAsciiAlpha(b):
		t.tagNameStart = t.pos
		return stateInTagName
	default:
		// Not a valid tag start: "<" and this byte are ordinary text.
		t.sectionStart = t.openTagStart
		return stateText
	}
}

func stateInTagName(t *Tokenizer) stateFn {
	for {
		if t.blocked() {
			return stateInTagName
		}
		b := t.peek()
		switch {
		case isWhitespace(b):
			t.finishOpenTagName(t.pos)
			t.next()
			return stateBeforeAttributeName
		case b == '/' || b == '>':
			t.finishOpenTagName(t.pos)
			return stateBeforeAttributeName
		case b == '<':
			if t.opts.StrictMode {
				t.raiseStrict(ErrElementNameLt)
				return stateDone
			}
			t.next()
		case b == '&':
			if t.opts.StrictMode {
				t.raiseStrict(ErrElementNameAmp)
				return stateDone
			}
			t.next()
		default:
			t.next()
		}
	}
}

func (t *Tokenizer) finishOpenTagName(end int) {
	name := t.slice(t.tagNameStart, end)
	t.pendingOpenName = name
	t.cbs.OnOpenTagName(name, t.tagNameStart, end)
	t.lastStart, t.lastEnd = t.tagNameStart, end
}

func stateInClosingTagName(t *Tokenizer) stateFn {
	for {
		if t.blocked() {
			return stateInClosingTagName
		}
		b := t.peek()
		switch {
		case isWhitespace(b) || b == '>':
			name := t.slice(t.tagNameStart, t.pos)
			t.pendingCloseName = name
			if b == '>' {
				t.next()
				t.cbs.OnCloseTag(name, t.openTagStart, t.pos)
				t.lastStart, t.lastEnd = t.openTagStart, t.pos
				t.sectionStart = t.pos
				return stateText
			}
			t.next()
			return stateAfterClosingTagName
		case b == '<':
			if t.opts.StrictMode {
				t.raiseStrict(ErrElementNameLt)
				return stateDone
			}
			t.next()
		case b == '&':
			if t.opts.StrictMode {
				t.raiseStrict(ErrElementNameAmp)
				return stateDone
			}
			t.next()
		default:
			t.next()
		}
	}
}

func stateAfterClosingTagName(t *Tokenizer) stateFn {
	for {
		if t.blocked() {
			return stateAfterClosingTagName
		}
		if t.peek() == '>' {
			t.next()
			t.cbs.OnCloseTag(t.pendingCloseName, t.openTagStart, t.pos)
			t.lastStart, t.lastEnd = t.openTagStart, t.pos
			t.sectionStart = t.pos
			return stateText
		}
		t.next()
	}
}

func stateBeforeAttributeName(t *Tokenizer) stateFn {
	for {
		if t.blocked() {
			return stateBeforeAttributeName
		}
		b := t.peek()
		switch {
		case isWhitespace(b):
			t.next()
		case b == '/':
			t.next()
			return stateSelfClosingTag
		case b == '>':
			t.next()
			t.finishOpenTagEnd(t.pos, false)
			return t.afterOpenTagState()
		default:
			t.attrNameStart = t.pos
			return stateInAttributeName
		}
	}
}

func (t *Tokenizer) finishOpenTagEnd(end int, selfClosing bool) {
	if selfClosing {
		t.cbs.OnSelfClosingTag(end)
	} else {
		t.cbs.OnOpenTagEnd(end)
	}
	t.lastStart, t.lastEnd = t.openTagStart, end
	t.sectionStart = end
}

// afterOpenTagState decides whether a just-closed open tag starts a
// raw-text region (script/style/title/textarea). XML has no raw-text
// elements.
func (t *Tokenizer) afterOpenTagState() stateFn {
	if t.opts.XMLMode {
		return stateText
	}
	switch lowerASCII(t.pendingOpenName) {
	case "script", "style", "title", "textarea":
		t.specialTag = lowerASCII(t.pendingOpenName)
		t.specialMatchIdx = 0
		return stateInSpecialTag
	default:
		return stateText
	}
}

func stateSelfClosingTag(t *Tokenizer) stateFn {
	if t.blocked() {
		return stateSelfClosingTag
	}
	if t.peek() == '>' {
		t.next()
		t.finishOpenTagEnd(t.pos, true)
		if t.opts.RecognizeSelfClosing || t.opts.XMLMode {
			return stateText
		}
		// "/>" is noise on a non-void HTML element when self-closing is
		// not recognized: the element stays open, so a raw-text element
		// still captures its body.
		return t.afterOpenTagState()
	}
	// A stray '/' not immediately followed by '>' is ignored; resume
	// scanning for the next attribute (or the real tag end).
	return stateBeforeAttributeName
}

func stateInAttributeName(t *Tokenizer) stateFn {
	for {
		if t.blocked() {
			return stateInAttributeName
		}
		b := t.peek()
		switch {
		case isWhitespace(b):
			t.finishAttribName(t.pos)
			t.next()
			return stateAfterAttributeName
		case b == '=':
			t.finishAttribName(t.pos)
			t.next()
			return stateBeforeAttributeValue
		case b == '/' || b == '>':
			t.finishAttribName(t.pos)
			return stateBeforeAttributeName
		case b == '<':
			if t.opts.StrictMode {
				t.raiseStrict(ErrAttributeNameLt)
				return stateDone
			}
			t.next()
		case b == '&':
			if t.opts.StrictMode {
				t.raiseStrict(ErrAttributeNameAmp)
				return stateDone
			}
			t.next()
		default:
			t.next()
		}
	}
}

func (t *Tokenizer) finishAttribName(end int) {
	name := t.slice(t.attrNameStart, end)
	t.cbs.OnAttribName(name, t.attrNameStart, end)
	t.lastStart, t.lastEnd = t.attrNameStart, end
}

func stateAfterAttributeName(t *Tokenizer) stateFn {
	for {
		if t.blocked() {
			return stateAfterAttributeName
		}
		b := t.peek()
		if isWhitespace(b) {
			t.next()
			continue
		}
		if b == '=' {
			t.next()
			return stateBeforeAttributeValue
		}
		return stateBeforeAttributeName
	}
}

func stateBeforeAttributeValue(t *Tokenizer) stateFn {
	for {
		if t.blocked() {
			return stateBeforeAttributeValue
		}
		b := t.peek()
		if isWhitespace(b) {
			t.next()
			continue
		}
		switch b {
		case '"':
			t.next()
			t.quote = '"'
			t.attrValueStart = t.pos
			return stateInAttributeValueDq
		case '\'':
			t.next()
			t.quote = '\''
			t.attrValueStart = t.pos
			return stateInAttributeValueSq
		case '>':
			if t.opts.StrictMode {
				t.raiseStrict(ErrAttributeValueMissing)
				return stateDone
			}
			return stateBeforeAttributeName
		default:
			if t.opts.StrictMode {
				t.raiseStrict(ErrAttributeValueNotQuoted)
				return stateDone
			}
			t.quote = 0
			t.attrValueStart = t.pos
			return stateInAttributeValueNq
		}
	}
}

func stateInAttributeValueDq(t *Tokenizer) stateFn {
	return t.inAttributeValueQuoted('"')
}

func stateInAttributeValueSq(t *Tokenizer) stateFn {
	return t.inAttributeValueQuoted('\'')
}

func (t *Tokenizer) inAttributeValueQuoted(quote byte) stateFn {
	self := stateInAttributeValueDq
	if quote == '\'' {
		self = stateInAttributeValueSq
	}
	for {
		if t.blocked() {
			return self
		}
		b := t.peek()
		if b == quote {
			t.flushAttrValue(t.pos)
			t.next()
			return stateBeforeAttributeName
		}
		if b == '&' && t.opts.DecodeEntities {
			return t.startEntity(true, self)
		}
		t.next()
	}
}

func stateInAttributeValueNq(t *Tokenizer) stateFn {
	for {
		if t.blocked() {
			return stateInAttributeValueNq
		}
		b := t.peek()
		if isWhitespace(b) || b == '>' {
			t.flushAttrValue(t.pos)
			return stateBeforeAttributeName
		}
		if b == '<' {
			if t.opts.StrictMode {
				t.raiseStrict(ErrUnescapedLtInAttribValue)
				return stateDone
			}
			t.next()
			continue
		}
		if b == '&' && t.opts.DecodeEntities {
			return t.startEntity(true, stateInAttributeValueNq)
		}
		t.next()
	}
}

// stateDeclOpen is reached right after "<!"; it decides between a comment
// ("<!--"), a CDATA section ("<![CDATA[", only when RecognizeCDATA), and a
// generic declaration (doctype and anything else).
func stateDeclOpen(t *Tokenizer) stateFn {
	if t.blocked() {
		return stateDeclOpen
	}
	b := t.peek()
	if b == '-' {
		t.next()
		return stateDeclDash
	}
	if b == '[' && t.opts.RecognizeCDATA {
		t.next()
		t.cdataMatchIdx = 0
		return stateCdataOpen
	}
	t.declStart = t.openTagStart + 2
	return stateInDeclaration
}

func stateDeclDash(t *Tokenizer) stateFn {
	if t.blocked() {
		return stateDeclDash
	}
	if t.peek() == '-' {
		t.next()
		t.commentStart = t.pos
		return stateInComment
	}
	// Only a single dash: not a comment, just a generic declaration whose
	// content happens to start with '-'.
	t.declStart = t.openTagStart + 2
	return stateInDeclaration
}

const cdataLiteral = "CDATA["

func stateCdataOpen(t *Tokenizer) stateFn {
	for t.cdataMatchIdx < len(cdataLiteral) {
		if t.blocked() {
			return stateCdataOpen
		}
		if t.peek() != cdataLiteral[t.cdataMatchIdx] {
			t.declStart = t.openTagStart + 2
			return stateInDeclaration
		}
		t.next()
		t.cdataMatchIdx++
	}
	t.cdataStart = t.pos
	t.cbs.OnCDataStart(t.cdataStart)
	return stateInCdata
}

func stateInDeclaration(t *Tokenizer) stateFn {
	for {
		if t.blocked() {
			return stateInDeclaration
		}
		if t.peek() == '>' {
			content := t.slice(t.declStart, t.pos)
			t.next()
			t.cbs.OnDeclaration(content, t.openTagStart, t.pos)
			t.lastStart, t.lastEnd = t.openTagStart, t.pos
			t.sectionStart = t.pos
			return stateText
		}
		t.next()
	}
}

func stateInProcessingInstruction(t *Tokenizer) stateFn {
	for {
		if t.blocked() {
			return stateInProcessingInstruction
		}
		if t.peek() != '?' {
			t.next()
			continue
		}
		t.piQPos = t.pos
		t.next()
		return statePIQuestion
	}
}

func statePIQuestion(t *Tokenizer) stateFn {
	if t.blocked() {
		return statePIQuestion
	}
	if t.peek() == '>' {
		content := t.slice(t.piStart, t.piQPos)
		t.next()
		t.cbs.OnProcessingInstruction(content, t.openTagStart, t.pos)
		t.lastStart, t.lastEnd = t.openTagStart, t.pos
		t.sectionStart = t.pos
		return stateText
	}
	return stateInProcessingInstruction
}

func stateInComment(t *Tokenizer) stateFn {
	for {
		if t.blocked() {
			return stateInComment
		}
		if t.peek() == '-' {
			t.next()
			return stateAfterCommentDash1
		}
		t.next()
	}
}

func stateAfterCommentDash1(t *Tokenizer) stateFn {
	if t.blocked() {
		return stateAfterCommentDash1
	}
	if t.peek() == '-' {
		t.next()
		return stateAfterCommentDash2
	}
	return stateInComment
}

func stateAfterCommentDash2(t *Tokenizer) stateFn {
	for {
		if t.blocked() {
			return stateAfterCommentDash2
		}
		b := t.peek()
		if b == '>' {
			content := t.slice(t.commentStart, t.pos-2)
			t.next()
			t.cbs.OnComment(content, t.openTagStart, t.pos)
			t.cbs.OnCommentEnd(t.pos)
			t.lastStart, t.lastEnd = t.openTagStart, t.pos
			t.sectionStart = t.pos
			return stateText
		}
		if b == '-' {
			t.next() // tolerate "--->"-style extra dashes
			continue
		}
		return stateInComment
	}
}

func stateInCdata(t *Tokenizer) stateFn {
	for {
		if t.blocked() {
			return stateInCdata
		}
		if t.peek() == ']' {
			t.next()
			return stateAfterCdataBracket1
		}
		t.next()
	}
}

func stateAfterCdataBracket1(t *Tokenizer) stateFn {
	if t.blocked() {
		return stateAfterCdataBracket1
	}
	if t.peek() == ']' {
		t.next()
		return stateAfterCdataBracket2
	}
	return stateInCdata
}

func stateAfterCdataBracket2(t *Tokenizer) stateFn {
	for {
		if t.blocked() {
			return stateAfterCdataBracket2
		}
		b := t.peek()
		if b == '>' {
			content := t.slice(t.cdataStart, t.pos-2)
			t.next()
			t.cbs.OnCData(content, t.openTagStart, t.pos)
			t.cbs.OnCDataEnd(t.pos)
			t.lastStart, t.lastEnd = t.openTagStart, t.pos
			t.sectionStart = t.pos
			return stateText
		}
		if b == ']' {
			t.next()
			continue
		}
		return stateInCdata
	}
}

// stateInSpecialTag scans the body of a script/style/title/textarea
// element, where everything — including angle brackets — is text except
// for a case-insensitive "</name" close sequence followed by a boundary
// character.
func stateInSpecialTag(t *Tokenizer) stateFn {
	for {
		if t.blocked() {
			return stateInSpecialTag
		}
		b := t.peek()

		if t.specialMatchIdx == 0 {
			if b == '<' {
				t.specialCloseStart = t.pos
				t.next()
				t.specialMatchIdx = 1
				continue
			}
			if b == '&' && t.opts.DecodeEntities && (t.specialTag == "title" || t.specialTag == "textarea") {
				return t.startEntity(false, stateInSpecialTag)
			}
			t.next()
			continue
		}

		if t.specialMatchIdx == 1 {
			if b == '/' {
				t.next()
				t.specialMatchIdx = 2
				continue
			}
			t.specialMatchIdx = 0
			continue
		}

		if t.specialMatchIdx-2 < len(t.specialTag) {
			if lowerByte(b) == t.specialTag[t.specialMatchIdx-2] {
				t.next()
				t.specialMatchIdx++
				continue
			}
			t.specialMatchIdx = 0
			continue
		}

		// Full "</name" matched; this byte must be a boundary.
		if isWhitespace(b) || b == '/' || b == '>' {
			name := t.specialTag
			closeStart := t.specialCloseStart
			t.specialTag = ""
			t.specialMatchIdx = 0
			t.flushText(closeStart)
			t.openTagStart = closeStart
			t.pendingCloseName = name
			if b == '>' {
				t.next()
				t.cbs.OnCloseTag(name, closeStart, t.pos)
				t.lastStart, t.lastEnd = closeStart, t.pos
				t.sectionStart = t.pos
				return stateText
			}
			t.next()
			return stateAfterClosingTagName
		}
		t.specialMatchIdx = 0
	}
}

// stateDone is the terminal state after a strict-mode error; run() checks
// t.done before ever invoking it again.
func stateDone(t *Tokenizer) stateFn {
	return stateDone
}

// startEntity records where a '&' begins a character-reference attempt,
// consumes it, and hands control to stateEntity; ret is the state to
// return to once the attempt emits or rejects.
func (t *Tokenizer) startEntity(inAttr bool, ret stateFn) stateFn {
	t.entAmpPos = t.pos
	t.next()
	t.entInAttr = inAttr
	t.entReturn = ret
	t.entPhase = entPhaseStart
	t.entPending = true
	return stateEntity
}

// stateEntity drives entity.Decoder one candidate byte at a time. It is
// entered right after the leading '&' has been consumed (by stateText or
// one of the attribute-value states) and resumes correctly across Write
// boundaries, since all of its progress lives in Tokenizer fields rather
// than local variables.
func stateEntity(t *Tokenizer) stateFn {
	for {
		if t.blocked() {
			return stateEntity
		}
		switch t.entPhase {
		case entPhaseStart:
			if t.peek() == '#' {
				t.next()
				t.entPhase = entPhaseHash
				continue
			}
			t.ent.Start(entity.KindNamed, t.opts.XMLMode, t.entInAttr, nil)
			t.entNameStart = t.pos
			t.entPhase = entPhaseWalk
		case entPhaseHash:
			if b := t.peek(); b == 'x' || b == 'X' {
				t.next()
				t.ent.Start(entity.KindHex, t.opts.XMLMode, t.entInAttr, nil)
			} else {
				t.ent.Start(entity.KindDecimal, t.opts.XMLMode, t.entInAttr, nil)
			}
			t.entNameStart = t.pos
			t.entPhase = entPhaseWalk
		case entPhaseWalk:
			step := t.ent.Feed(t.peek())
			switch step.Action {
			case entity.Continue:
				t.next()
			case entity.Emit:
				t.pos = t.entNameStart + step.Consumed
				return t.resolveEntity(step.Codepoints)
			default: // entity.Reject
				return t.resolveEntity(nil)
			}
		}
	}
}

// resolveEntity finalizes an entity attempt: on a successful decode it
// flushes the literal text/attribute-value run up to the '&', emits the
// decoded codepoints as a synthetic segment, and advances the
// section/attribute start past the consumed reference. On rejection it
// does nothing — the '&' and any bytes consumed during the failed walk
// remain part of the ongoing text/attribute-value run to be flushed later.
func (t *Tokenizer) resolveEntity(codepoints []rune) stateFn {
	if codepoints != nil {
		decoded := string(codepoints)
		if t.entInAttr {
			t.flushAttrValue(t.entAmpPos)
			t.cbs.OnAttribData(decoded, t.quote, t.entAmpPos, t.pos)
			t.lastStart, t.lastEnd = t.entAmpPos, t.pos
			t.attrValueStart = t.pos
		} else {
			t.flushText(t.entAmpPos)
			t.cbs.OnText(decoded, t.entAmpPos, t.pos)
			t.lastStart, t.lastEnd = t.entAmpPos, t.pos
			t.sectionStart = t.pos
		}
	}
	ret := t.entReturn
	t.entReturn = nil
	t.entPending = false
	return ret
}
