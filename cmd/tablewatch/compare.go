package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/tablewatch"
)

// compareOutput is the JSON document printed by compare --json.
type compareOutput struct {
	Legacy       int      `json:"legacy"`
	Standard     int      `json:"standard"`
	Shared       []string `json:"shared"`
	LegacyOnly   []string `json:"legacyOnly"`
	StandardOnly []string `json:"standardOnly"`
}

// Run executes the compare command.
func (c *CompareCmd) Run(deps *Dependencies) error {
	doc, err := c.Load(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tablewatch.ErrorMessage(err))
		return err
	}

	cmp, err := deps.Comparer.Compare(deps.Ctx, doc, nil)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tablewatch.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(compareOutput{
			Legacy:       len(cmp.Legacy.Results),
			Standard:     len(cmp.Standard.Results),
			Shared:       nonNil(cmp.Shared),
			LegacyOnly:   nonNil(cmp.LegacyOnly),
			StandardOnly: nonNil(cmp.StandardOnly),
		})
	}

	fmt.Fprintf(deps.Stdout, "legacy:   %d tables\n", len(cmp.Legacy.Results))
	fmt.Fprintf(deps.Stdout, "standard: %d tables\n", len(cmp.Standard.Results))
	fmt.Fprintf(deps.Stdout, "shared:        %s\n", joinIDs(cmp.Shared))
	fmt.Fprintf(deps.Stdout, "legacy only:   %s\n", joinIDs(cmp.LegacyOnly))
	fmt.Fprintf(deps.Stdout, "standard only: %s\n", joinIDs(cmp.StandardOnly))
	return nil
}

func joinIDs(ids []string) string {
	if len(ids) == 0 {
		return "-"
	}
	return strings.Join(ids, ", ")
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
