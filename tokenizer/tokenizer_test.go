package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// recorder is a NopCallbacks-backed event log: it records callback
// invocations in order instead of asserting inline.
type recorder struct {
	NopCallbacks
	events []string
	errs   []error
}

func (r *recorder) OnOpenTagName(name string, start, end int) {
	r.events = append(r.events, "opentagname:"+name)
}
func (r *recorder) OnOpenTagEnd(end int) {
	r.events = append(r.events, "opentagend")
}
func (r *recorder) OnSelfClosingTag(end int) {
	r.events = append(r.events, "selfclosing")
}
func (r *recorder) OnAttribName(name string, start, end int) {
	r.events = append(r.events, "attribname:"+name)
}
func (r *recorder) OnAttribData(value string, quote byte, start, end int) {
	r.events = append(r.events, "attribdata:"+value)
}
func (r *recorder) OnCloseTag(name string, start, end int) {
	r.events = append(r.events, "closetag:"+name)
}
func (r *recorder) OnText(text string, start, end int) {
	r.events = append(r.events, "text:"+text)
}
func (r *recorder) OnComment(data string, start, end int) {
	r.events = append(r.events, "comment:"+data)
}
func (r *recorder) OnCommentEnd(end int) {
	r.events = append(r.events, "commentend")
}
func (r *recorder) OnCDataStart(start int) {
	r.events = append(r.events, "cdatastart")
}
func (r *recorder) OnCData(data string, start, end int) {
	r.events = append(r.events, "cdata:"+data)
}
func (r *recorder) OnCDataEnd(end int) {
	r.events = append(r.events, "cdataend")
}
func (r *recorder) OnProcessingInstruction(data string, start, end int) {
	r.events = append(r.events, "pi:"+data)
}
func (r *recorder) OnDeclaration(data string, start, end int) {
	r.events = append(r.events, "decl:"+data)
}
func (r *recorder) OnError(err error) {
	r.errs = append(r.errs, err)
}
func (r *recorder) OnEnd() {
	r.events = append(r.events, "end")
}

func TestTokenizer_SimpleTagAndText(t *testing.T) {
	rec := &recorder{}
	tok := New(Options{}, rec)
	require.NoError(t, tok.ParseComplete("<p>hi</p>"))
	require.Equal(t, []string{
		"opentagname:p", "opentagend", "text:hi", "closetag:p", "end",
	}, rec.events)
}

func TestTokenizer_AttributesQuotedAndUnquoted(t *testing.T) {
	rec := &recorder{}
	tok := New(Options{}, rec)
	require.NoError(t, tok.ParseComplete(`<a href="x" id='y' disabled z=w>t</a>`))
	require.Equal(t, []string{
		"opentagname:a",
		"attribname:href", "attribdata:x",
		"attribname:id", "attribdata:y",
		"attribname:disabled",
		"attribname:z", "attribdata:w",
		"opentagend",
		"text:t",
		"closetag:a",
		"end",
	}, rec.events)
}

func TestTokenizer_SelfClosingTagXML(t *testing.T) {
	rec := &recorder{}
	tok := New(Options{XMLMode: true, RecognizeSelfClosing: true}, rec)
	require.NoError(t, tok.ParseComplete(`<br/>`))
	require.Equal(t, []string{"opentagname:br", "selfclosing", "end"}, rec.events)
}

func TestTokenizer_Comment(t *testing.T) {
	rec := &recorder{}
	tok := New(Options{}, rec)
	require.NoError(t, tok.ParseComplete("a<!-- hi -->b"))
	require.Equal(t, []string{"text:a", "comment: hi ", "commentend", "text:b", "end"}, rec.events)
}

func TestTokenizer_CommentToleratesExtraDashes(t *testing.T) {
	rec := &recorder{}
	tok := New(Options{}, rec)
	require.NoError(t, tok.ParseComplete("<!--hi--->"))
	require.Equal(t, []string{"comment:hi-", "commentend", "end"}, rec.events)
}

func TestTokenizer_CDATA(t *testing.T) {
	rec := &recorder{}
	tok := New(Options{RecognizeCDATA: true}, rec)
	require.NoError(t, tok.ParseComplete("<![CDATA[<not a tag>]]>"))
	require.Equal(t, []string{"cdatastart", "cdata:<not a tag>", "cdataend", "end"}, rec.events)
}

func TestTokenizer_CDATANotRecognizedFallsBackToDeclaration(t *testing.T) {
	rec := &recorder{}
	tok := New(Options{RecognizeCDATA: false}, rec)
	require.NoError(t, tok.ParseComplete("<![CDATA[x]]>"))
	require.Equal(t, []string{"decl:[CDATA[x]]"}, rec.events[:1])
}

func TestTokenizer_Declaration(t *testing.T) {
	rec := &recorder{}
	tok := New(Options{}, rec)
	require.NoError(t, tok.ParseComplete(`<!DOCTYPE html>`))
	require.Equal(t, []string{"decl:DOCTYPE html", "end"}, rec.events)
}

func TestTokenizer_ProcessingInstruction(t *testing.T) {
	rec := &recorder{}
	tok := New(Options{XMLMode: true}, rec)
	require.NoError(t, tok.ParseComplete(`<?xml version="1.0"?>`))
	require.Equal(t, []string{`pi:xml version="1.0"`, "end"}, rec.events)
}

func TestTokenizer_RawTextScriptIgnoresMarkup(t *testing.T) {
	rec := &recorder{}
	tok := New(Options{}, rec)
	require.NoError(t, tok.ParseComplete(`<script>if (a < b) { }</script>`))
	require.Equal(t, []string{
		"opentagname:script", "opentagend",
		"text:if (a < b) { }",
		"closetag:script",
		"end",
	}, rec.events)
}

func TestTokenizer_RawTextScriptFalseAlarmCloseTag(t *testing.T) {
	rec := &recorder{}
	tok := New(Options{}, rec)
	// "</scriptx>" does not actually close the element (wrong boundary);
	// it must be swallowed as literal script content instead.
	require.NoError(t, tok.ParseComplete(`<script>a</scriptx>b</script>`))
	require.Equal(t, []string{
		"opentagname:script", "opentagend",
		"text:a</scriptx>b",
		"closetag:script",
		"end",
	}, rec.events)
}

func TestTokenizer_TitleDecodesEntities(t *testing.T) {
	rec := &recorder{}
	tok := New(Options{DecodeEntities: true}, rec)
	require.NoError(t, tok.ParseComplete(`<title>a&amp;b</title>`))
	require.Equal(t, []string{
		"opentagname:title", "opentagend",
		"text:a", "text:&", "text:b",
		"closetag:title",
		"end",
	}, rec.events)
}

func TestTokenizer_NamedEntityWithSemicolon(t *testing.T) {
	rec := &recorder{}
	tok := New(Options{DecodeEntities: true}, rec)
	require.NoError(t, tok.ParseComplete(`a&amp;b`))
	require.Equal(t, []string{"text:a", "text:&", "text:b"}, rec.events[:3])
}

func TestTokenizer_EntitiesDisabledPassesThroughLiteral(t *testing.T) {
	rec := &recorder{}
	tok := New(Options{DecodeEntities: false}, rec)
	require.NoError(t, tok.ParseComplete(`a&amp;b`))
	require.Equal(t, []string{"text:a&amp;b", "end"}, rec.events)
}

func TestTokenizer_UnknownEntityRejectedStaysLiteral(t *testing.T) {
	rec := &recorder{}
	tok := New(Options{DecodeEntities: true}, rec)
	require.NoError(t, tok.ParseComplete(`a&bogus;b`))
	require.Equal(t, []string{"text:a&bogus;b", "end"}, rec.events)
}

func TestTokenizer_EntityInAttributeValue(t *testing.T) {
	rec := &recorder{}
	tok := New(Options{DecodeEntities: true}, rec)
	require.NoError(t, tok.ParseComplete(`<a href="x&amp;y">`))
	require.Equal(t, []string{
		"opentagname:a",
		"attribname:href",
		"attribdata:x", "attribdata:&", "attribdata:y",
		"opentagend",
		"end",
	}, rec.events)
}

func TestTokenizer_WriteSplitAcrossEntityBoundary(t *testing.T) {
	rec := &recorder{}
	tok := New(Options{DecodeEntities: true}, rec)
	require.NoError(t, tok.Write("a&am"))
	require.NoError(t, tok.Write("p;b"))
	require.NoError(t, tok.End())
	require.Equal(t, []string{"text:a", "text:&", "text:b", "end"}, rec.events)
}

func TestTokenizer_WriteSplitMidTagName(t *testing.T) {
	rec := &recorder{}
	tok := New(Options{}, rec)
	require.NoError(t, tok.Write("<di"))
	require.NoError(t, tok.Write("v>hi</div>"))
	require.NoError(t, tok.End())
	require.Equal(t, []string{
		"opentagname:div", "opentagend", "text:hi", "closetag:div", "end",
	}, rec.events)
}

func TestTokenizer_PauseResumeMidEntity(t *testing.T) {
	rec := &recorder{}
	tok := New(Options{DecodeEntities: true}, rec)
	tok.Pause()
	require.NoError(t, tok.Write("a&amp;b"))
	require.Empty(t, rec.events)
	tok.Resume()
	require.NoError(t, tok.End())
	require.Equal(t, []string{"text:a", "text:&", "text:b", "end"}, rec.events)
}

func TestTokenizer_LegacyEntityResolvedAtEndOfInput(t *testing.T) {
	rec := &recorder{}
	tok := New(Options{DecodeEntities: true}, rec)
	require.NoError(t, tok.ParseComplete("&timesbar;&timesbar"))
	require.Equal(t, []string{"text:⨱", "text:⨱", "end"}, rec.events)
}

func TestTokenizer_NumericEntityResolvedAtEndOfInput(t *testing.T) {
	rec := &recorder{}
	tok := New(Options{DecodeEntities: true}, rec)
	require.NoError(t, tok.ParseComplete("a&#65"))
	require.Equal(t, []string{"text:a", "text:A", "end"}, rec.events)
}

func TestTokenizer_SelfClosingSpecialSkipsRawTextWhenRecognized(t *testing.T) {
	rec := &recorder{}
	tok := New(Options{DecodeEntities: true, RecognizeSelfClosing: true}, rec)
	require.NoError(t, tok.ParseComplete(`<style />&apos;<br/>`))
	require.Equal(t, []string{
		"opentagname:style", "selfclosing",
		"text:'",
		"opentagname:br", "selfclosing",
		"end",
	}, rec.events)
}

func TestTokenizer_SelfClosingSpecialStillRawTextWhenNotRecognized(t *testing.T) {
	rec := &recorder{}
	tok := New(Options{}, rec)
	// Without RecognizeSelfClosing the "/>" is noise, the style element
	// stays open, and its body is captured as raw text.
	require.NoError(t, tok.ParseComplete(`<style/>a{}</style>`))
	require.Equal(t, []string{
		"opentagname:style", "selfclosing",
		"text:a{}",
		"closetag:style",
		"end",
	}, rec.events)
}

func TestTokenizer_XMLModeHasNoRawTextElements(t *testing.T) {
	rec := &recorder{}
	tok := New(Options{XMLMode: true}, rec)
	require.NoError(t, tok.ParseComplete(`<script><x/></script>`))
	require.Equal(t, []string{
		"opentagname:script", "opentagend",
		"opentagname:x", "selfclosing",
		"closetag:script",
		"end",
	}, rec.events)
}

func TestTokenizer_StrictModeUnquotedAttributeValueRejected(t *testing.T) {
	rec := &recorder{}
	tok := New(Options{StrictMode: true}, rec)
	require.NoError(t, tok.ParseComplete(`<a href=x>`))
	require.NotEmpty(t, rec.errs)
	require.ErrorIs(t, rec.errs[0], ErrAttributeValueNotQuoted)
}

func TestTokenizer_StrictModeLtInTagNameRejected(t *testing.T) {
	rec := &recorder{}
	tok := New(Options{StrictMode: true}, rec)
	require.NoError(t, tok.ParseComplete(`<a<b>`))
	require.NotEmpty(t, rec.errs)
	require.ErrorIs(t, rec.errs[0], ErrElementNameLt)
}

func TestTokenizer_UnterminatedTagFlushedAsTextAtEnd(t *testing.T) {
	rec := &recorder{}
	tok := New(Options{}, rec)
	require.NoError(t, tok.Write("hello <b"))
	require.NoError(t, tok.End())
	require.Equal(t, []string{"text:hello ", "text:<b", "end"}, rec.events)
}

func TestTokenizer_StartEndIndexReflectLastEvent(t *testing.T) {
	rec := &recorder{}
	tok := New(Options{}, rec)
	require.NoError(t, tok.ParseComplete("<p>hi</p>"))
	require.LessOrEqual(t, tok.StartIndex(), tok.EndIndex())
	require.Equal(t, len("<p>hi</p>"), tok.EndIndex())
}

func TestTokenizer_WriteAfterEndErrors(t *testing.T) {
	rec := &recorder{}
	tok := New(Options{}, rec)
	require.NoError(t, tok.ParseComplete("x"))
	err := tok.Write("y")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrWriteAfterDone)
}

func TestTokenizer_ResetAllowsReparse(t *testing.T) {
	rec := &recorder{}
	tok := New(Options{}, rec)
	require.NoError(t, tok.ParseComplete("<p>a</p>"))
	rec.events = nil
	tok.Reset()
	require.NoError(t, tok.ParseComplete("<p>b</p>"))
	require.Equal(t, []string{
		"opentagname:p", "opentagend", "text:b", "closetag:p", "end",
	}, rec.events)
}
