package parser

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// cdataElements hold their content as unparsed character data. Every other
// element the tokenizer would treat as raw text (title, textarea, noscript,
// ...) is tokenized normally so markup inside it is not reported as data.
var cdataElements = map[string]bool{
	"script": true,
	"style":  true,
}

// HTMLTokenizer drives the x/net/html streaming tokenizer. It never builds
// a tree, so malformed markup is reported exactly as the tokenizer sees it.
type HTMLTokenizer struct{}

func (t *HTMLTokenizer) Feed(doc string, h Handlers) error {
	z := html.NewTokenizer(strings.NewReader(doc))

	// The tokenizer may split one run of text across several tokens, so
	// text is buffered until the next non-text token.
	var pending strings.Builder
	flush := func() {
		if pending.Len() > 0 {
			h.data(pending.String())
			pending.Reset()
		}
	}

	for {
		switch z.Next() {
		case html.ErrorToken:
			flush()
			if err := z.Err(); err != io.EOF {
				return fmt.Errorf("tokenize html: %w", err)
			}
			return nil

		case html.TextToken:
			pending.Write(z.Text())

		case html.StartTagToken:
			flush()
			name, attrs := tagWithAttrs(z)
			if !cdataElements[name] {
				z.NextIsNotRawText()
			}
			h.startTag(name, attrs)

		case html.EndTagToken:
			flush()
			name, _ := z.TagName()
			h.endTag(string(name))

		case html.SelfClosingTagToken:
			flush()
			name, attrs := tagWithAttrs(z)
			z.NextIsNotRawText()
			h.startTag(name, attrs)
			h.endTag(name)

		case html.CommentToken, html.DoctypeToken:
			flush()
		}
	}
}

func tagWithAttrs(z *html.Tokenizer) (string, []html.Attribute) {
	name, hasAttr := z.TagName()
	tag := string(name)
	var attrs []html.Attribute
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		attrs = append(attrs, html.Attribute{Key: string(key), Val: string(val)})
	}
	return tag, attrs
}
