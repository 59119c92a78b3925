// Package detect implements the table detection pipeline: candidate
// finding, format parsing, scoring, wrapper filtering, the batch registry
// and the mutation-triggered rescan scheduler.
package detect

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/tablewatch"
)

// ID derives a table ID from the anchor's structural path and the table
// content. Repeated passes over an unchanged document yield the same IDs.
func ID(anchor tablewatch.Node, headers []string, rows [][]string) string {
	var path string
	if anchor != nil {
		path = anchor.Path()
	}
	return fmt.Sprintf("tbl-%016x", xxhash.Sum64String(path+"\x00"+content(headers, rows)))
}

// Fingerprint hashes table content only, so the same table found at a new
// location has the same fingerprint.
func Fingerprint(headers []string, rows [][]string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content(headers, rows)))
}

func content(headers []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString(strings.Join(headers, "\x1f"))
	for _, row := range rows {
		b.WriteByte('\x1e')
		b.WriteString(strings.Join(row, "\x1f"))
	}
	return b.String()
}
