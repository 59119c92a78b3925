package tablewatch

import "time"

// Format identifies the source representation a table was parsed from.
type Format string

// Source representations, in parser priority order.
const (
	FormatMarkup   Format = "markup"
	FormatMarkdown Format = "markdown"
	FormatDivGrid  Format = "div-grid"
	FormatText     Format = "text"
)

// Alignment is the column alignment declared by a markdown separator line.
type Alignment string

// Column alignments.
const (
	AlignNone   Alignment = ""
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Cell is a source cell before structure repair.
type Cell struct {
	Text string

	// ColSpan is the number of logical columns the cell covers.
	// Values below 1 are treated as 1.
	ColSpan int
}

// Features are the structural observations a parser made about its source,
// consumed by the confidence scoring functions.
type Features struct {
	// Lines is the number of lines that matched the table pattern.
	Lines int

	// TotalLines is the number of non-empty lines in the source text.
	TotalLines int

	// ClassHint is set when the source node carries a table-like class name.
	ClassHint bool

	// RoleGrid is set when a div grid was found through explicit ARIA roles
	// or table class conventions rather than repeated structure alone.
	RoleGrid bool
}

// RawTable is the output of a format parser, before structure repair.
// Header is nil when the source had no recognizable header.
type RawTable struct {
	Format       Format
	Header       []Cell
	Rows         [][]Cell
	Alignments   []Alignment
	HasSeparator bool
	Features     Features
}

// Extraction is a repaired and validated table.
type Extraction struct {
	Format       Format
	Headers      []string
	Rows         [][]string
	Alignments   []Alignment
	HasSeparator bool
	Features     Features
}

// TableData is the canonical extraction result handed to consumers.
type TableData struct {
	// ID identifies the table for deduplication and debugging. It is derived
	// from the anchor location and the extracted content.
	ID          string      `json:"id"`
	Headers     []string    `json:"headers"`
	Rows        [][]string  `json:"rows"`
	Alignments  []Alignment `json:"alignments,omitempty"`
	Format      Format      `json:"format"`
	Confidence  float64     `json:"confidence"`
	Platform    Platform    `json:"platform"`
	ExtractedAt time.Time   `json:"extractedAt"`
	URL         string      `json:"url"`
	Title       string      `json:"title"`
}

// Validate returns an error if the table breaks the canonical shape:
// every row must be as wide as the header, and a non-empty header needs at
// least two meaningful cells.
func (t *TableData) Validate() error {
	if t.ID == "" {
		return Errorf(EINVALID, "table ID required")
	}
	if len(t.Headers) > 0 && countMeaningful(t.Headers) < 2 {
		return Errorf(EINVALID, "table %s has fewer than 2 meaningful headers", t.ID)
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return Errorf(EINVALID, "table %s row %d has %d cells, want %d", t.ID, i, len(row), len(t.Headers))
		}
	}
	return nil
}

// TableDetectionResult pairs a table with the node it was extracted from.
type TableDetectionResult struct {
	Table    *TableData `json:"table"`
	Anchor   Node       `json:"-"`
	Position Position   `json:"position"`
}

// Candidate is a node provisionally identified as possibly holding a table.
// Candidates live for one detection pass only.
type Candidate struct {
	Node       Node
	Format     Format
	Confidence float64
	Reason     string
	IsWrapper  bool
	Wraps      []Node
	Accepted   bool

	// Extraction is nil when no parser produced a valid table.
	Extraction *Extraction
}
