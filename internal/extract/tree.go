// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// ParseError reports a document that is not well-formed XML. Offset is the
// decoder's byte offset when the failure was detected.
type ParseError struct {
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing anthology XML at offset %d: %v", e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// node is a text run or an element. Comments and processing instructions
// are not kept.
type node interface {
	isNode()
}

type text string

type element struct {
	name     string
	children []node
}

func (text) isNode()     {}
func (*element) isNode() {}

// childElements returns the direct child elements of e named name.
func (e *element) childElements(name string) []*element {
	var out []*element
	for _, c := range e.children {
		if ce, ok := c.(*element); ok && ce.name == name {
			out = append(out, ce)
		}
	}
	return out
}

// innerText concatenates every text run in e's subtree in document order,
// with no separator. Text following e itself is not included.
func (e *element) innerText() string {
	var b strings.Builder
	e.writeText(&b)
	return b.String()
}

func (e *element) writeText(b *strings.Builder) {
	for _, c := range e.children {
		switch c := c.(type) {
		case text:
			b.WriteString(string(c))
		case *element:
			c.writeText(b)
		}
	}
}

// leadingText returns the text before e's first child element.
func (e *element) leadingText() string {
	var b strings.Builder
	for _, c := range e.children {
		t, ok := c.(text)
		if !ok {
			break
		}
		b.WriteString(string(t))
	}
	return b.String()
}

// parseTree decodes data into an element tree rooted at the document
// element. The declared encoding is honored; anything other than
// whitespace, comments, and processing instructions outside the root
// element is an error.
func parseTree(data []byte) (*element, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel

	var root *element
	var stack []*element
	fail := func(err error) (*element, error) {
		return nil, &ParseError{Offset: dec.InputOffset(), Err: err}
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fail(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return fail(fmt.Errorf("element <%s> after document element", t.Name.Local))
			}
			e := &element{name: t.Name.Local}
			if len(stack) == 0 {
				root = e
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, e)
			}
			stack = append(stack, e)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(t)) > 0 {
					return fail(errors.New("text outside document element"))
				}
				continue
			}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, text(t))
		}
	}

	if root == nil {
		return fail(errors.New("no document element"))
	}
	if len(stack) > 0 {
		return fail(fmt.Errorf("unclosed element <%s>", stack[len(stack)-1].name))
	}
	return root, nil
}
