package main

import (
	"os"
	"path/filepath"

	"github.com/fwojciec/tablewatch"
	"github.com/fwojciec/tablewatch/goquery"
)

// Load reads the source as a local HTML file when Target names one and
// fetches it as a page URL otherwise.
func (s *Source) Load(deps *Dependencies) (*goquery.Document, error) {
	if isURL(s.Target) {
		return s.fetch(deps)
	}
	return loadFile(s.Target, s.URL)
}

func (s *Source) fetch(deps *Dependencies) (*goquery.Document, error) {
	if deps.OpenFetcher == nil {
		return nil, tablewatch.Errorf(tablewatch.EINVALID, "fetching pages is not configured")
	}
	fetcher, err := deps.OpenFetcher(s.Render)
	if err != nil {
		return nil, err
	}
	defer fetcher.Close()

	delays := deps.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(deps.Ctx, s.Target, fetcher.Fetch, deps.Logger, delays)
	if err != nil {
		return nil, err
	}

	url := s.URL
	if url == "" {
		url = s.Target
	}
	return goquery.NewDocumentFromString(html, url)
}

// loadFile parses an HTML file. Without a page URL the document is
// addressed by its file URL and resolves to the generic platform.
func loadFile(path, url string) (*goquery.Document, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, tablewatch.Errorf(tablewatch.ENOTFOUND, "%s is neither a file nor an http(s) URL", path)
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	if url == "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}
		url = "file://" + filepath.ToSlash(abs)
	}
	return goquery.NewDocument(f, url)
}
