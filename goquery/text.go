package goquery

import (
	"strings"

	"golang.org/x/net/html"
)

var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"caption": true, "dd": true, "details": true, "dialog": true,
	"div": true, "dl": true, "dt": true, "fieldset": true,
	"figcaption": true, "figure": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "nav": true,
	"ol": true, "p": true, "pre": true, "section": true, "summary": true,
	"table": true, "tbody": true, "tfoot": true, "thead": true, "tr": true,
	"ul": true,
}

// innerText approximates the browser's innerText: block elements and <br>
// break lines, table cells are followed by a tab and whitespace collapses
// outside <pre>. Blank lines are dropped.
func innerText(n *html.Node) string {
	var b strings.Builder
	walkText(n, &b, false)

	lines := strings.Split(b.String(), "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func walkText(n *html.Node, b *strings.Builder, pre bool) {
	switch n.Type {
	case html.TextNode:
		if pre {
			b.WriteString(n.Data)
			return
		}
		writeCollapsed(b, n.Data)
		return
	case html.ElementNode:
		if hiddenTags[n.Data] {
			return
		}
		if n.Data == "br" {
			b.WriteByte('\n')
			return
		}
	case html.DocumentNode:
	default:
		return
	}

	pre = pre || n.Data == "pre" || n.Data == "textarea"
	block := n.Type == html.ElementNode && blockTags[n.Data]
	if block {
		newline(b)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkText(c, b, pre)
	}
	switch {
	case n.Data == "td" || n.Data == "th":
		b.WriteByte('\t')
	case block:
		newline(b)
	}
}

// writeCollapsed writes s with whitespace runs collapsed to one space and
// no space after a line or cell break.
func writeCollapsed(b *strings.Builder, s string) {
	lead := strings.TrimLeft(s, " \t\n\r\f") != s
	trail := strings.TrimRight(s, " \t\n\r\f") != s
	if lead && !atBreak(b) {
		b.WriteByte(' ')
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return
	}
	b.WriteString(strings.Join(words, " "))
	if trail {
		b.WriteByte(' ')
	}
}

func lastByte(b *strings.Builder) byte {
	if b.Len() == 0 {
		return 0
	}
	s := b.String()
	return s[len(s)-1]
}

func atBreak(b *strings.Builder) bool {
	switch lastByte(b) {
	case 0, '\n', ' ', '\t':
		return true
	}
	return false
}

func newline(b *strings.Builder) {
	if c := lastByte(b); c != 0 && c != '\n' {
		b.WriteByte('\n')
	}
}
