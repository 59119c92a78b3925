package tablewatch

// Confidence constants. They were tuned by hand on chat transcripts and
// should be recalibrated against a labelled corpus before being changed.
const (
	// DefaultThreshold is the minimum confidence for a candidate to be accepted.
	DefaultThreshold = 0.6

	MarkupConfidence            = 0.95
	MarkdownSeparatorConfidence = 0.9
	MarkdownConfidence          = 0.7
	RoleGridConfidence          = 0.85
	StructuralGridConfidence    = 0.75

	// TextConfidenceCap keeps text heuristics below explicit markup.
	TextConfidenceCap = 0.9

	// WrapperConfidence is forced onto candidates wrapping another table.
	WrapperConfidence = 0.1

	// ClassHintBonus multiplies text confidence when the node carries a
	// table-like class name.
	ClassHintBonus = 1.2
)

// LineRatio returns the share of non-empty lines that matched the table pattern.
func LineRatio(f Features) float64 {
	if f.TotalLines <= 0 {
		return 0
	}
	return min(float64(f.Lines)/float64(f.TotalLines), 1)
}

// LineCountFactor rewards tables with more rows: 0.8 for two lines,
// reaching 1.0 at four lines. Fewer than two lines score 0.
func LineCountFactor(lines int) float64 {
	if lines < MinTextLines {
		return 0
	}
	return min(0.6+0.1*float64(lines), 1)
}

// TextConfidence scores a plain-text table as
// lineRatio × lineCountFactor × classHintBonus, capped at TextConfidenceCap.
func TextConfidence(f Features) float64 {
	score := LineRatio(f) * LineCountFactor(f.Lines)
	if f.ClassHint {
		score *= ClassHintBonus
	}
	return min(score, TextConfidenceCap)
}

// MarkdownTableConfidence scores a pipe table by whether it declared an
// alignment separator.
func MarkdownTableConfidence(hasSeparator bool) float64 {
	if hasSeparator {
		return MarkdownSeparatorConfidence
	}
	return MarkdownConfidence
}

// DivGridConfidence scores a grid of divs by how it was recognized.
func DivGridConfidence(f Features) float64 {
	if f.RoleGrid {
		return RoleGridConfidence
	}
	return StructuralGridConfidence
}

// Confidence scores an extraction by its source format.
func Confidence(e *Extraction) float64 {
	if e == nil {
		return 0
	}
	switch e.Format {
	case FormatMarkup:
		return MarkupConfidence
	case FormatMarkdown:
		return MarkdownTableConfidence(e.HasSeparator)
	case FormatDivGrid:
		return DivGridConfidence(e.Features)
	case FormatText:
		return TextConfidence(e.Features)
	}
	return 0
}
