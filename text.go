package tablewatch

import (
	"regexp"
	"strings"
	"unicode"
)

// NormalizeText collapses runs of whitespace into single spaces and trims
// the result.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// IsMeaningful reports whether s contains at least one letter or digit.
func IsMeaningful(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// IsSymbolOnly reports whether s is non-blank but holds no letter or digit.
func IsSymbolOnly(s string) bool {
	return strings.TrimSpace(s) != "" && !IsMeaningful(s)
}

var numericRe = regexp.MustCompile(`^[\s\d.,+\-%$€£]+$`)

// IsNumeric reports whether s consists purely of a number, allowing
// separators, signs, percent and currency symbols.
func IsNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return numericRe.MatchString(s) && strings.ContainsAny(s, "0123456789")
}

func countMeaningful(cells []string) int {
	n := 0
	for _, c := range cells {
		if IsMeaningful(c) {
			n++
		}
	}
	return n
}

// Lines splits text into lines, trimming trailing whitespace and dropping
// blank lines.
func Lines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// LooksLikePipeTable is a cheap check for pipe-table text: at least two
// lines carrying two or more pipes, or a high overall pipe count when line
// structure was lost.
func LooksLikePipeTable(text string) bool {
	pipeLines := 0
	for _, line := range Lines(text) {
		if strings.Count(line, "|") >= 2 {
			pipeLines++
			if pipeLines >= 2 {
				return true
			}
		}
	}
	return strings.Count(text, "|") >= 6
}

var (
	boldRe    = regexp.MustCompile(`\*\*(.+?)\*\*|__(.+?)__`)
	italicRe  = regexp.MustCompile(`(^|[^*\w])\*([^*\s][^*]*?)\*|(^|[^_\w])_([^_\s][^_]*?)_`)
	strikeRe  = regexp.MustCompile(`~~(.+?)~~`)
	codeRe    = regexp.MustCompile("`+([^`]*)`+")
	linkRe    = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]*\)`)
	htmlTagRe = regexp.MustCompile(`</?(?:br|b|i|em|strong|code|span|sup|sub)\s*/?>`)
)

// StripMarkdown removes inline markdown syntax, keeping the inner text:
// **bold**, __bold__, *italic*, _italic_, ~~strike~~, `code`,
// [text](url) and ![alt](src).
func StripMarkdown(s string) string {
	s = codeRe.ReplaceAllString(s, "$1")
	s = linkRe.ReplaceAllString(s, "$1")
	s = boldRe.ReplaceAllString(s, "$1$2")
	s = strikeRe.ReplaceAllString(s, "$1")
	s = italicRe.ReplaceAllString(s, "$1$2$3$4")
	s = htmlTagRe.ReplaceAllString(s, " ")
	return NormalizeText(s)
}

// LeadingContentLength is the number of normalized characters compared
// when deduplicating candidates by content.
const LeadingContentLength = 100

// LeadingContent returns the first LeadingContentLength characters of the
// table's normalized, lowercased content.
func LeadingContent(headers []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString(strings.Join(headers, " "))
	for _, row := range rows {
		b.WriteByte(' ')
		b.WriteString(strings.Join(row, " "))
	}
	s := strings.ToLower(NormalizeText(b.String()))
	r := []rune(s)
	if len(r) > LeadingContentLength {
		r = r[:LeadingContentLength]
	}
	return string(r)
}
