package tree

import (
	"testing"

	"github.com/corelex/htmlkit/parser"
	"github.com/stretchr/testify/require"
)

func childData(n *Node) []string {
	var out []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c.Data)
	}
	return out
}

func TestBuild_SimpleElementTree(t *testing.T) {
	root, err := Build(`<div class="a"><p>hello</p></div>`, parser.DefaultOptions())
	require.NoError(t, err)

	div := root.FirstChild
	require.NotNil(t, div)
	require.Equal(t, ElementNode, div.Type)
	require.Equal(t, "div", div.Data)
	require.Len(t, div.Attr, 1)
	require.Equal(t, "class", div.Attr[0].Key)
	require.Equal(t, "a", div.Attr[0].Val)

	p := div.FirstChild
	require.NotNil(t, p)
	require.Equal(t, "p", p.Data)
	require.Equal(t, p.Parent, div)

	text := p.FirstChild
	require.NotNil(t, text)
	require.Equal(t, TextNode, text.Type)
	require.Equal(t, "hello", text.Data)
}

func TestBuild_VoidElementHasNoChildren(t *testing.T) {
	root, err := Build(`<div><br><img src="x"></div>`, parser.DefaultOptions())
	require.NoError(t, err)

	div := root.FirstChild
	require.Equal(t, []string{"br", "img"}, childData(div))

	br := div.FirstChild
	require.Nil(t, br.FirstChild)
	img := br.NextSibling
	require.Nil(t, img.FirstChild)
	require.Equal(t, "x", img.Attr[0].Val)
}

func TestBuild_ImplicitCloseReparents(t *testing.T) {
	root, err := Build(`<p>one<div>two</div>`, parser.DefaultOptions())
	require.NoError(t, err)

	require.Equal(t, []string{"p", "div"}, childData(root))
	p := root.FirstChild
	div := p.NextSibling
	require.Equal(t, "one", p.FirstChild.Data)
	require.Equal(t, "two", div.FirstChild.Data)
}

func TestBuild_DoctypeNode(t *testing.T) {
	root, err := Build("<!DOCTYPE html>\n<html></html>", parser.DefaultOptions())
	require.NoError(t, err)

	doctype := root.FirstChild
	require.Equal(t, DoctypeNode, doctype.Type)
	require.Equal(t, "html", doctype.Data)
}

func TestBuild_DoctypeWithPublicSystem(t *testing.T) {
	root, err := Build(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">`, parser.DefaultOptions())
	require.NoError(t, err)

	doctype := root.FirstChild
	require.Equal(t, DoctypeNode, doctype.Type)
	require.Equal(t, "html", doctype.Data)
	require.Len(t, doctype.Attr, 2)
	require.Equal(t, "public", doctype.Attr[0].Key)
	require.Equal(t, "-//W3C//DTD XHTML 1.0//EN", doctype.Attr[0].Val)
	require.Equal(t, "system", doctype.Attr[1].Key)
}

func TestBuild_CommentNode(t *testing.T) {
	root, err := Build(`a<!-- note -->b`, parser.DefaultOptions())
	require.NoError(t, err)

	require.Equal(t, []string{"a", " note ", "b"}, childData(root))
	require.Equal(t, CommentNode, root.FirstChild.NextSibling.Type)
}

func TestBuild_ProcessingInstructionNode(t *testing.T) {
	root, err := Build(`<?xml version="1.0"?><root/>`, parser.DefaultXMLOptions())
	require.NoError(t, err)

	pi := root.FirstChild
	require.Equal(t, ProcessingInstructionNode, pi.Type)
	require.Equal(t, `xml version="1.0"`, pi.Data)
}

func TestBuild_StrictModeReturnsBuildErrorWithPath(t *testing.T) {
	opts := parser.DefaultOptions()
	opts.StrictMode = true
	_, err := Build("<div>x", opts)
	require.Error(t, err)
	var be *BuildError
	require.ErrorAs(t, err, &be)
	require.Equal(t, "div", be.Path)
}

func TestBuild_AttributeSpanIsWithinSource(t *testing.T) {
	src := `<a href="target">t</a>`
	root, err := Build(src, parser.DefaultOptions())
	require.NoError(t, err)

	a := root.FirstChild
	sp := a.Attr[0].Span
	require.Equal(t, "target", src[sp.Offset:sp.End()])
}
