// Command xmltree reads an XML document from stdin (or parses a built-in
// sample when stdin is a terminal) and prints it back re-indented, built
// through an etree.Document assembled from parser events.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/beevik/etree"
	"github.com/corelex/htmlkit/parser"
)

const sample = `<?xml version="1.0"?>
<library><book id="1"><title>Go &amp; XML</title></book><book id="2"/></library>`

func main() {
	input := sample
	if fi, err := os.Stdin.Stat(); err == nil && fi.Mode()&os.ModeCharDevice == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintln(os.Stderr, "read stdin:", err)
			os.Exit(1)
		}
		input = string(data)
	}

	doc, err := buildDocument(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, "parse:", err)
		os.Exit(1)
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "write:", err)
		os.Exit(1)
	}
}

// buildDocument assembles an etree.Document from the Parser's event
// stream. The open-element bookkeeping is already done by the Parser; the
// handler only has to mirror opens and closes onto an etree cursor.
func buildDocument(input string) (*etree.Document, error) {
	doc := etree.NewDocument()
	var cursor *etree.Element
	var parseErr error

	handler := parser.Handler{
		OnOpenTag: func(name string, attribs map[string]string) {
			var el *etree.Element
			if cursor == nil {
				el = doc.CreateElement(name)
			} else {
				el = cursor.CreateElement(name)
			}
			for k, v := range attribs {
				el.CreateAttr(k, v)
			}
			cursor = el
		},
		OnCloseTag: func(name string) {
			if cursor != nil {
				cursor = cursor.Parent()
			}
		},
		OnText: func(text string) {
			if cursor != nil {
				cursor.CreateText(text)
			}
		},
		OnComment: func(data string) {
			if cursor == nil {
				doc.CreateComment(data)
			} else {
				cursor.CreateComment(data)
			}
		},
		OnProcessingInstruction: func(name, data string) {
			doc.CreateProcInst(name, data)
		},
		OnError: func(err error) {
			if parseErr == nil {
				parseErr = err
			}
		},
	}

	p := parser.New(parser.DefaultXMLOptions(), handler)
	if err := p.ParseComplete(input); err != nil {
		return doc, err
	}
	return doc, parseErr
}
