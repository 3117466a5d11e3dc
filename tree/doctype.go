// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// Modifications:
// Copyright 2024 Daniel Potapov
//  - Removed quirks mode to keep code simpler.
//  - Parses the raw declaration body handed to OnDeclaration rather than
//    a pre-split html.Token.Data field.

package tree

import "strings"

// parseDoctype parses s — the declaration body with the leading "DOCTYPE"
// keyword already stripped — into a DoctypeNode: Data is the lowercased
// name, and Attr holds "public"/"system" entries for the two identifiers
// when present.
func parseDoctype(s string, span Span) *Node {
	n := &Node{Type: DoctypeNode, Span: span}

	// Find the name.
	space := strings.IndexAny(s, whitespace)
	if space == -1 {
		space = len(s)
	}
	n.Data = strings.ToLower(s[:space])
	s = strings.TrimLeft(s[space:], whitespace)

	if len(s) < 6 {
		// It can't start with "PUBLIC" or "SYSTEM".
		// Ignore the rest of the string.
		return n
	}

	key := strings.ToLower(s[:6])
	s = s[6:]
	for key == "public" || key == "system" {
		s = strings.TrimLeft(s, whitespace)
		if s == "" {
			break
		}
		quote := s[0]
		if quote != '"' && quote != '\'' {
			break
		}
		s = s[1:]
		q := strings.IndexRune(s, rune(quote))
		var id string
		if q == -1 {
			id = s
			s = ""
		} else {
			id = s[:q]
			s = s[q+1:]
		}
		n.Attr = append(n.Attr, Attribute{Key: key, Val: id})
		if key == "public" {
			key = "system"
		} else {
			key = ""
		}
	}

	return n
}

// stripDoctypeKeyword removes the leading "DOCTYPE" (or "doctype", etc.)
// token from a declaration body, since our Tokenizer — unlike the
// upstream html.Tokenizer this logic is adapted from — never strips it
// itself; declarations are handed through uninterpreted.
func stripDoctypeKeyword(data string) string {
	idx := strings.IndexAny(data, whitespace)
	if idx == -1 {
		return ""
	}
	return strings.TrimLeft(data[idx:], whitespace)
}

func looksLikeDoctype(data string) bool {
	space := strings.IndexAny(data, whitespace)
	keyword := data
	if space != -1 {
		keyword = data[:space]
	}
	return strings.EqualFold(keyword, "DOCTYPE")
}
