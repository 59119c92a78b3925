package goquery

import (
	"strings"

	"github.com/fwojciec/tablewatch"
)

var _ tablewatch.PlatformProfile = (*Profile)(nil)

// ProfileConfig describes where a platform renders assistant responses and
// where it shows the conversation title.
type ProfileConfig struct {
	// ScopeSelectors match the containers searched for tables. When empty
	// the whole document is one scope.
	ScopeSelectors []string

	// TitleSelectors are tried in order; the first visible, non-empty match
	// is the title.
	TitleSelectors []string

	// TitleSuffixes are trimmed from the document title when no title
	// selector matches (e.g., " - Claude").
	TitleSuffixes []string
}

// Profile is a CSS selector based PlatformProfile.
type Profile struct {
	platform tablewatch.Platform
	cfg      ProfileConfig
}

// NewProfile creates a Profile for a platform.
func NewProfile(platform tablewatch.Platform, cfg ProfileConfig) *Profile {
	return &Profile{platform: platform, cfg: cfg}
}

// Platform returns the platform the profile describes.
func (p *Profile) Platform() tablewatch.Platform {
	return p.platform
}

// ReadySelector returns a selector group matching any scope container, or
// "" when the profile searches the whole document. A browser fetcher waits
// for it before reading the page.
func (p *Profile) ReadySelector() string {
	return strings.Join(p.cfg.ScopeSelectors, ", ")
}

// Scopes returns the outermost visible elements matching the scope
// selectors, in selector order.
func (p *Profile) Scopes(doc tablewatch.Document) []tablewatch.Node {
	if len(p.cfg.ScopeSelectors) == 0 {
		if root := doc.Root(); root != nil {
			return []tablewatch.Node{root}
		}
		return nil
	}

	var scopes []tablewatch.Node
	for _, sel := range p.cfg.ScopeSelectors {
		for _, n := range doc.Find(sel) {
			if !n.Visible() || containedIn(n, scopes) {
				continue
			}
			// Drop scopes nested inside the new one.
			kept := scopes[:0]
			for _, s := range scopes {
				if !n.Contains(s) {
					kept = append(kept, s)
				}
			}
			scopes = append(kept, n)
		}
	}
	return scopes
}

// Title returns the conversation title.
func (p *Profile) Title(doc tablewatch.Document) string {
	for _, sel := range p.cfg.TitleSelectors {
		for _, n := range doc.Find(sel) {
			if !n.Visible() {
				continue
			}
			if title := tablewatch.NormalizeText(n.Text()); title != "" {
				return title
			}
		}
	}

	title := doc.Title()
	for _, suffix := range p.cfg.TitleSuffixes {
		title = strings.TrimSuffix(title, suffix)
	}
	return strings.TrimSpace(title)
}

func containedIn(n tablewatch.Node, scopes []tablewatch.Node) bool {
	for _, s := range scopes {
		if s.Contains(n) {
			return true
		}
	}
	return false
}
