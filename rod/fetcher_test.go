//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/tablewatch"
	"github.com/fwojciec/tablewatch/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ tablewatch.Fetcher = (*rod.Fetcher)(nil)

// streamingChat renders its assistant message after a delay, like a chat
// app hydrating a conversation.
const streamingChat = `<!DOCTYPE html>
<html><head><title>Pricing - Claude</title></head>
<body><main id="thread"></main>
<script>
setTimeout(function () {
  var m = document.createElement('div');
  m.className = 'font-claude-message';
  m.innerHTML = '<table><tr><th>Plan</th><th>Price</th></tr><tr><td>Pro</td><td>$20</td></tr></table>';
  document.getElementById('thread').appendChild(m);
}, 200);
</script></body></html>`

func serve(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("waits for the ready selector", func(t *testing.T) {
		t.Parallel()

		srv := serve(t, streamingChat)
		fetcher, err := rod.NewFetcher(rod.WithWaitSelector(func(string) string { return ".font-claude-message" }))
		require.NoError(t, err)
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Contains(t, html, "<td>$20</td>")
	})

	t.Run("returns the context error when canceled", func(t *testing.T) {
		t.Parallel()

		srv := serve(t, streamingChat)
		fetcher, err := rod.NewFetcher()
		require.NoError(t, err)
		defer fetcher.Close()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = fetcher.Fetch(ctx, srv.URL)

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("times out when the selector never appears", func(t *testing.T) {
		t.Parallel()

		srv := serve(t, `<html><body><p>no conversation</p></body></html>`)
		fetcher, err := rod.NewFetcher(
			rod.WithFetchTimeout(500*time.Millisecond),
			rod.WithWaitSelector(func(string) string { return ".font-claude-message" }),
		)
		require.NoError(t, err)
		defer fetcher.Close()

		_, err = fetcher.Fetch(context.Background(), srv.URL)

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("rejects fetches after close", func(t *testing.T) {
		t.Parallel()

		fetcher, err := rod.NewFetcher()
		require.NoError(t, err)
		require.NoError(t, fetcher.Close())
		require.NoError(t, fetcher.Close())

		_, err = fetcher.Fetch(context.Background(), "http://example.com")

		assert.Equal(t, tablewatch.EINVALID, tablewatch.ErrorCode(err))
		assert.Contains(t, tablewatch.ErrorMessage(err), "closed")
	})
}
