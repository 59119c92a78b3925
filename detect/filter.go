package detect

import (
	"fmt"

	"github.com/fwojciec/tablewatch"
)

// filterCandidates marks wrappers and duplicates and sets Accepted on the
// survivors. Candidates must be in discovery order; on conflict the earlier
// candidate wins.
//
// A candidate is a wrapper when its subtree holds another candidate scoring
// at or above the threshold, a known anchor, or a code block holding a pipe
// table. Wrappers are forced to tablewatch.WrapperConfidence.
func filterCandidates(cands []*tablewatch.Candidate, known []tablewatch.Node, threshold float64) {
	for _, c := range cands {
		c.Wraps = wrapped(c, cands, known, threshold)
	}
	for _, c := range cands {
		if len(c.Wraps) > 0 {
			c.IsWrapper = true
			c.Confidence = tablewatch.WrapperConfidence
			c.Reason = fmt.Sprintf("wraps %d table(s)", len(c.Wraps))
		}
	}
	accept(cands, threshold, true)
}

// filterLegacy accepts candidates above the threshold and drops those
// overlapping an earlier accepted candidate.
func filterLegacy(cands []*tablewatch.Candidate, threshold float64) {
	accept(cands, threshold, false)
}

func accept(cands []*tablewatch.Candidate, threshold float64, byContent bool) {
	var kept []*tablewatch.Candidate
	for _, c := range cands {
		if c.IsWrapper || c.Extraction == nil {
			continue
		}
		if c.Confidence < threshold {
			c.Reason = fmt.Sprintf("confidence %.2f below threshold %.2f", c.Confidence, threshold)
			continue
		}
		if dup := duplicateOf(c, kept, byContent); dup != nil {
			c.Reason = "duplicate of " + dup.Node.Path()
			continue
		}
		c.Accepted = true
		kept = append(kept, c)
	}
}

func wrapped(c *tablewatch.Candidate, cands []*tablewatch.Candidate, known []tablewatch.Node, threshold float64) []tablewatch.Node {
	var out []tablewatch.Node
	for _, d := range cands {
		if d == c || d.Node == c.Node || d.Extraction == nil || d.Confidence < threshold {
			continue
		}
		if c.Node.Contains(d.Node) {
			out = append(out, d.Node)
		}
	}
	for _, k := range known {
		if k != c.Node && c.Node.Contains(k) {
			out = appendUnique(out, k)
		}
	}
	if tag := c.Node.Tag(); tag != "pre" && tag != "code" {
		for _, code := range c.Node.Find("pre, code") {
			if tablewatch.LooksLikePipeTable(code.InnerText()) {
				out = appendUnique(out, code)
			}
		}
	}
	return out
}

func appendUnique(nodes []tablewatch.Node, n tablewatch.Node) []tablewatch.Node {
	for _, m := range nodes {
		if m == n || m.Contains(n) {
			return nodes
		}
	}
	return append(nodes, n)
}

func duplicateOf(c *tablewatch.Candidate, kept []*tablewatch.Candidate, byContent bool) *tablewatch.Candidate {
	var lead string
	if byContent {
		lead = tablewatch.LeadingContent(c.Extraction.Headers, c.Extraction.Rows)
	}
	for _, k := range kept {
		if tablewatch.Overlaps(c.Node, k.Node) {
			return k
		}
		if byContent && lead == tablewatch.LeadingContent(k.Extraction.Headers, k.Extraction.Rows) {
			return k
		}
	}
	return nil
}
