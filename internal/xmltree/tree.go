// Package xmltree decodes XML into a schema-free tree and searches it by tag name.
//
// A tree is built from three node kinds: Text (a scalar), List (an ordered
// sequence of nodes) and *Map (an element, keyed by attribute and child tag).
// Tags and attributes are keyed by local name so lookups do not depend on the
// namespace prefix a producer chose.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// TextKey is the key under which an element's character data is stored.
const TextKey = "#text"

// AttrPrefix prefixes attribute keys so they cannot collide with child tags.
const AttrPrefix = "@"

// Node is one value in a decoded tree: Text, List or *Map.
type Node interface {
	node()
}

// Text is a scalar value (attribute value or character data).
type Text string

// List is an ordered sequence of nodes.
type List []Node

// Map is one element. Entries keep document order and a key may repeat,
// once per child element carrying that tag.
type Map struct {
	Tag     string
	entries []entry
}

type entry struct {
	key   string
	value Node
}

func (Text) node() {}
func (List) node() {}
func (*Map) node() {}

func (m *Map) add(key string, value Node) {
	m.entries = append(m.entries, entry{key: key, value: value})
}

// Keys returns the entry keys in document order, including repeats.
func (m *Map) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		keys = append(keys, e.key)
	}
	return keys
}

// Get returns every value stored under key, in document order.
func (m *Map) Get(key string) List {
	if m == nil {
		return nil
	}
	var out List
	for _, e := range m.entries {
		if e.key == key {
			out = append(out, e.value)
		}
	}
	return out
}

// Child returns the first child element with the given tag, or nil.
func (m *Map) Child(tag string) *Map {
	if m == nil {
		return nil
	}
	for _, e := range m.entries {
		if e.key != tag {
			continue
		}
		if c, ok := e.value.(*Map); ok {
			return c
		}
	}
	return nil
}

// Children returns the direct child elements in document order.
func (m *Map) Children() []*Map {
	if m == nil {
		return nil
	}
	var out []*Map
	for _, e := range m.entries {
		if c, ok := e.value.(*Map); ok {
			out = append(out, c)
		}
	}
	return out
}

// Attr returns the value of an attribute by local name.
func (m *Map) Attr(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	for _, e := range m.entries {
		if e.key == AttrPrefix+name {
			if t, ok := e.value.(Text); ok {
				return string(t), true
			}
		}
	}
	return "", false
}

// Text returns the element's own character data.
func (m *Map) Text() string {
	if m == nil {
		return ""
	}
	for _, e := range m.entries {
		if e.key == TextKey {
			if t, ok := e.value.(Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

// FindAll searches n depth-first and returns every element with the given
// tag in document order. Matches are descended into as well, so nested
// matches follow their ancestor.
func FindAll(n Node, tag string) []*Map {
	var out []*Map
	var walk func(Node)
	walk = func(n Node) {
		switch v := n.(type) {
		case List:
			for _, item := range v {
				walk(item)
			}
		case *Map:
			if v == nil {
				return
			}
			for _, e := range v.entries {
				if c, ok := e.value.(*Map); ok && e.key == tag {
					out = append(out, c)
				}
				walk(e.value)
			}
		}
	}
	walk(n)
	return out
}

// Find returns the first element with the given tag under n, or nil.
func Find(n Node, tag string) *Map {
	found := FindAll(n, tag)
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

// ErrNoRoot is returned when a document contains no element.
var ErrNoRoot = errors.New("document has no root element")

// Parse decodes an XML document. The returned map is a synthetic document
// node whose single child entry is the root element.
func Parse(data []byte) (*Map, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads an XML document from r into a tree.
func Decode(r io.Reader) (*Map, error) {
	decoder := xml.NewDecoder(r)

	doc := &Map{}
	stack := []*Map{doc}
	texts := []*strings.Builder{{}}

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("XML parse error: %w", err)
		}

		switch tok := token.(type) {
		case xml.StartElement:
			elem := &Map{Tag: tok.Name.Local}
			for _, attr := range tok.Attr {
				if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
					continue
				}
				elem.add(AttrPrefix+attr.Name.Local, Text(attr.Value))
			}
			stack[len(stack)-1].add(tok.Name.Local, elem)
			stack = append(stack, elem)
			texts = append(texts, &strings.Builder{})
		case xml.CharData:
			texts[len(texts)-1].Write(tok)
		case xml.EndElement:
			if len(stack) == 1 {
				return nil, fmt.Errorf("XML parse error: unexpected end element %s", tok.Name.Local)
			}
			elem := stack[len(stack)-1]
			text := texts[len(texts)-1].String()
			// whitespace between child elements is layout, not content
			if text != "" && (strings.TrimSpace(text) != "" || len(elem.Children()) == 0) {
				elem.add(TextKey, Text(text))
			}
			stack = stack[:len(stack)-1]
			texts = texts[:len(texts)-1]
		}
	}

	if len(stack) != 1 {
		return nil, fmt.Errorf("XML parse error: unexpected EOF inside %s", stack[len(stack)-1].Tag)
	}
	if len(doc.Children()) == 0 {
		return nil, ErrNoRoot
	}
	return doc, nil
}
