package main_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	main "github.com/fwojciec/tablewatch/cmd/tablewatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const watchHTML = `<html><body>
<table><tr><th>Plan</th><th>Price</th></tr><tr><td>Free</td><td>0</td></tr></table>
</body></html>`

func watchCmd(file, records string) *main.WatchCmd {
	return &main.WatchCmd{
		File:     file,
		Records:  records,
		Strategy: "standard",
		Debounce: 10 * time.Millisecond,
	}
}

func TestWatchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("tracks tables inserted by records", func(t *testing.T) {
		t.Parallel()

		records := writeFile(t, "records.jsonl", strings.Join([]string{
			`{"op":"insert","xpath":"//body","html":"<table><tr><th>Region</th><th>Sales</th></tr><tr><td>EU</td><td>10</td></tr></table>"}`,
			`{"op":"attr","xpath":"//body","name":"class","value":"dark"}`,
		}, "\n"))
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := watchCmd(writeFile(t, "page.html", watchHTML), records).Run(newDeps(stdout, stderr))

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "| Free | 0 |")
		assert.Contains(t, stdout.String(), "| EU | 10 |")
		assert.Contains(t, stderr.String(), "scan full: +1 -0 new=1 total=1")
		assert.Contains(t, stderr.String(), "total=2")
	})

	t.Run("drops tables removed by records", func(t *testing.T) {
		t.Parallel()

		records := writeFile(t, "records.jsonl", `{"op":"remove","xpath":"//table"}`)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := watchCmd(writeFile(t, "page.html", watchHTML), records).Run(newDeps(stdout, stderr))

		require.NoError(t, err)
		assert.Equal(t, "No tables found.\n", stdout.String())
	})

	t.Run("reads records from stdin and skips malformed lines", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Stdin = strings.NewReader("\n{not json}\n" + `{"op":"doc_reset","html":"<table><tr><th>X</th><th>Y</th></tr><tr><td>1</td><td>2</td></tr></table>"}` + "\n")

		err := watchCmd(writeFile(t, "page.html", watchHTML), "-").Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "line 2: invalid record")
		assert.Contains(t, stdout.String(), "| X | Y |")
		assert.NotContains(t, stdout.String(), "| Plan | Price |")
	})

	t.Run("reports a missing records file", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := watchCmd(writeFile(t, "page.html", watchHTML), "missing.jsonl").Run(newDeps(stdout, stderr))

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "records file missing.jsonl not found")
	})
}
