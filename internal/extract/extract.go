// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns an anthology volume XML document into Records.
//
// The document is a root element holding volume elements, each holding
// paper elements. Only ./volume/paper is visited: direct volume children
// of the root and their direct paper children, in document order. Each
// paper yields exactly one Record; missing children degrade to empty fields.
package extract

import (
	"strings"

	"github.com/pdiddy/anthology-export/pkg/types"
)

// DefaultHomepage is the paper homepage template. "{path}" is replaced by
// the text of the paper's url element.
const DefaultHomepage = "https://www.aclweb.org/anthology/{path}"

// authorSeparator joins author display names in Record.Author.
const authorSeparator = ", "

// Extractor converts anthology XML into Records.
type Extractor struct {
	// Homepage is the URL template for Record.Url (default DefaultHomepage).
	Homepage string
}

// Records parses data with the default homepage template.
func Records(data []byte) ([]types.Record, error) {
	return Extractor{}.Records(data)
}

// Records parses data and returns one Record per ./volume/paper element.
// The whole document is parsed before any Record is built, so malformed
// XML fails with *ParseError and no Records.
func (x Extractor) Records(data []byte) ([]types.Record, error) {
	root, err := parseTree(data)
	if err != nil {
		return nil, err
	}

	homepage := x.Homepage
	if homepage == "" {
		homepage = DefaultHomepage
	}

	records := make([]types.Record, 0)
	for _, volume := range root.childElements("volume") {
		for _, p := range volume.childElements("paper") {
			records = append(records, paperRecord(p, homepage))
		}
	}
	return records, nil
}

// childKind is the closed set of paper children that carry data.
type childKind int

const (
	kindIgnored childKind = iota
	kindTitle
	kindAbstract
	kindAuthor
	kindURL
)

func classify(name string) childKind {
	switch name {
	case "title":
		return kindTitle
	case "abstract":
		return kindAbstract
	case "author":
		return kindAuthor
	case "url":
		return kindURL
	default:
		return kindIgnored
	}
}

// paperFields accumulates one paper's data. with never mutates its
// receiver's author slice, so earlier values stay valid.
type paperFields struct {
	title    string
	abstract string
	url      string
	authors  []string
}

func (f paperFields) with(child *element, homepage string) paperFields {
	switch classify(child.name) {
	case kindTitle:
		f.title = child.innerText()
	case kindAbstract:
		f.abstract = child.innerText()
	case kindAuthor:
		f.authors = append(f.authors[:len(f.authors):len(f.authors)], authorName(child))
	case kindURL:
		f.url = strings.ReplaceAll(homepage, "{path}", child.leadingText())
	case kindIgnored:
	}
	return f
}

func (f paperFields) record() types.Record {
	return types.Record{
		Title:    f.title,
		Author:   strings.Join(f.authors, authorSeparator),
		Abstract: f.abstract,
		Url:      f.url,
	}
}

func paperRecord(p *element, homepage string) types.Record {
	var f paperFields
	for _, c := range p.children {
		if ce, ok := c.(*element); ok {
			f = f.with(ce, homepage)
		}
	}
	return f.record()
}

// authorName builds "First Last" from an author element's first and last
// children. Either part may be missing; a lone part is used without padding.
// When a part repeats, the last one wins.
func authorName(author *element) string {
	var first, last string
	for _, c := range author.children {
		ce, ok := c.(*element)
		if !ok {
			continue
		}
		switch ce.name {
		case "first":
			first = ce.leadingText()
		case "last":
			last = ce.leadingText()
		}
	}
	return strings.TrimSpace(first + " " + last)
}
