package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/tablewatch"
)

// scanOutput is the JSON document printed by scan --json.
type scanOutput struct {
	PassID   string                             `json:"passId"`
	URL      string                             `json:"url"`
	Platform tablewatch.Platform                `json:"platform"`
	Strategy tablewatch.Strategy                `json:"strategy"`
	Title    string                             `json:"title,omitempty"`
	Tables   []*tablewatch.TableDetectionResult `json:"tables"`
}

// Run executes the scan command.
func (c *ScanCmd) Run(deps *Dependencies) error {
	strategy, err := tablewatch.ParseStrategy(c.Strategy)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tablewatch.ErrorMessage(err))
		return err
	}

	doc, err := c.Load(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tablewatch.ErrorMessage(err))
		return err
	}

	report, err := deps.Detector.Detect(deps.Ctx, doc, tablewatch.DetectOptions{Strategy: strategy})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tablewatch.ErrorMessage(err))
		return err
	}
	if report.Err != nil {
		fmt.Fprintf(deps.Stderr, "warning: detection failed: %s\n", tablewatch.ErrorMessage(report.Err))
	}

	if c.JSON {
		out := scanOutput{
			PassID:   report.PassID,
			URL:      doc.URL(),
			Platform: report.Platform,
			Strategy: report.Strategy,
			Title:    report.Title,
			Tables:   report.Results,
		}
		if out.Tables == nil {
			out.Tables = []*tablewatch.TableDetectionResult{}
		}
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(report.Results) == 0 {
		fmt.Fprintf(deps.Stdout, "No tables found (%s).\n", report.Platform)
	} else {
		fmt.Fprintln(deps.Stdout, tablewatch.FormatTables(report.Results))
	}

	if c.Candidates {
		fmt.Fprintln(deps.Stdout)
		printCandidates(deps, report.Candidates)
	}
	return nil
}

func printCandidates(deps *Dependencies, candidates []*tablewatch.Candidate) {
	fmt.Fprintf(deps.Stdout, "Candidates (%d):\n", len(candidates))
	for _, c := range candidates {
		status := "accepted"
		if !c.Accepted {
			status = "rejected: " + c.Reason
		}
		format := string(c.Format)
		if format == "" {
			format = "-"
		}
		fmt.Fprintf(deps.Stdout, "  %s  %s  %.2f  %s\n", c.Node.Path(), format, c.Confidence, status)
	}
}
