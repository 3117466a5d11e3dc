package parser

// voidElements auto-close immediately after their opening tag: no content
// model, never pushed onto the open-element stack.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// blockClosesP is the set of tag names whose opening implicitly closes a
// currently open "p" element: the start tags that pop an open p in the
// HTML parsing algorithm's "in body" insertion mode, reproduced as a flat
// table instead of that algorithm's scope-aware machinery.
var blockClosesP = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"center": true, "details": true, "dialog": true, "dir": true,
	"div": true, "dl": true, "fieldset": true, "figcaption": true,
	"figure": true, "footer": true, "form": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "header": true,
	"hgroup": true, "hr": true, "main": true, "menu": true, "nav": true,
	"ol": true, "p": true, "plaintext": true, "pre": true, "section": true,
	"summary": true, "table": true, "ul": true, "listing": true, "xmp": true,
}

// selfClosesOnSameName is the set of elements that implicitly close a
// previously open instance of themselves (HTML permits "<li><li>" without
// an explicit "</li>").
var selfClosesOnSameName = map[string]bool{
	"li": true, "dt": true, "dd": true, "option": true, "optgroup": true,
	"tr": true, "td": true, "th": true,
}

// rowClosesCell closes an open "td"/"th" when a new "tr" opens.
var rowClosesCell = map[string]bool{"td": true, "th": true}

// knownNonVoidElements lists common standard HTML elements that take
// content and are never void. A self-closing "/>" on one of these is
// HTML noise unless RecognizeSelfClosing or XMLMode says otherwise; a
// self-closing "/>" on anything NOT in this set (a custom element, an
// embedded SVG tag, an unrecognized name) is honored regardless, since
// there is no standard non-void meaning to fall back on.
var knownNonVoidElements = map[string]bool{
	"html": true, "head": true, "body": true, "title": true, "div": true,
	"span": true, "p": true, "a": true, "ul": true, "ol": true, "li": true,
	"table": true, "tr": true, "td": true, "th": true, "thead": true,
	"tbody": true, "tfoot": true, "form": true, "label": true,
	"select": true, "option": true, "optgroup": true, "textarea": true,
	"button": true, "script": true, "style": true, "pre": true,
	"blockquote": true, "section": true, "article": true, "header": true,
	"footer": true, "nav": true, "main": true, "aside": true, "figure": true,
	"figcaption": true, "dl": true, "dt": true, "dd": true, "h1": true,
	"h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// implicitlyCloses reports whether tagName opening should implicitly
// close the element currently on top of the open-element stack. It never
// looks further down the stack than the top element: this is a flat
// per-top-element rule, not the full active-formatting-element algorithm.
func implicitlyCloses(tagName, top string) bool {
	if top == "" {
		return false
	}
	if top == "p" && blockClosesP[tagName] {
		return true
	}
	if top == tagName && selfClosesOnSameName[top] {
		return true
	}
	if top == "option" && (tagName == "option" || tagName == "optgroup") {
		return true
	}
	if top == "tr" && tagName == "tr" {
		return true
	}
	if rowClosesCell[top] && (tagName == "tr" || rowClosesCell[tagName]) {
		return true
	}
	return false
}
