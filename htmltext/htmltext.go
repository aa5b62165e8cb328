// Package htmltext converts HTML documents to plain-text lines for the
// menu extractor. It keeps document order, breaks at block-level elements,
// and drops markup, scripts and styles. It makes no attempt at layout
// fidelity beyond that.
package htmltext

import (
	"strings"

	"golang.org/x/net/html"
)

// blockElements are elements that terminate the current text line.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "dd": true, "div": true, "dl": true, "dt": true,
	"fieldset": true, "figure": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "nav": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"td": true, "th": true, "tr": true, "ul": true,
}

// skippedElements contribute no text at all.
var skippedElements = map[string]bool{
	"head": true, "noscript": true, "script": true, "style": true,
	"template": true, "title": true,
}

// Lines parses an HTML document and returns its visible text as a sequence
// of lines. Parsing is forgiving: x/net/html repairs malformed markup the
// way browsers do, so this never fails on bad input.
func Lines(document string) []string {
	root, err := html.Parse(strings.NewReader(document))
	if err != nil {
		// html.Parse only fails on reader errors, which strings.Reader
		// cannot produce. Treat the document as empty.
		return nil
	}

	var lines []string
	var current strings.Builder

	flush := func() {
		lines = append(lines, current.String())
		current.Reset()
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedElements[n.Data] {
			return
		}
		block := n.Type == html.ElementNode && blockElements[n.Data]
		if block && current.Len() > 0 {
			flush()
		}
		if n.Type == html.TextNode {
			appendText(&current, n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block && current.Len() > 0 {
			flush()
		}
	}
	walk(root)

	if current.Len() > 0 {
		flush()
	}
	return lines
}

// appendText adds a text node's content to the current line, collapsing
// runs of whitespace into single spaces.
func appendText(b *strings.Builder, text string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return
	}
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	b.WriteString(strings.Join(fields, " "))
}
