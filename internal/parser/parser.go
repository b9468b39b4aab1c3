package parser

import (
	"golang.org/x/net/html"
)

// Handlers is the set of callbacks a Tokenizer reports to.
// A nil callback means the caller is not interested in that event.
type Handlers struct {
	StartTag func(name string, attrs []html.Attribute)
	EndTag   func(name string)
	Data     func(data string)
}

// Tokenizer scans a complete document and reports tags and character
// data to the handlers in document order.
type Tokenizer interface {
	Feed(doc string, h Handlers) error
}

func (h Handlers) startTag(name string, attrs []html.Attribute) {
	if h.StartTag != nil {
		h.StartTag(name, attrs)
	}
}

func (h Handlers) endTag(name string) {
	if h.EndTag != nil {
		h.EndTag(name)
	}
}

func (h Handlers) data(s string) {
	if h.Data != nil {
		h.Data(s)
	}
}
