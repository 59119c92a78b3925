// Package tablewatch extracts tables embedded in AI chat transcripts and
// keeps a live, deduplicated registry of the tables found while the page
// mutates.
//
// This package contains domain types, interfaces and the pure extraction
// algorithms (line parsing, structure repair, confidence scoring) following
// Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// rod/, bloom/).
package tablewatch
