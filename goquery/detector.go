package goquery

import (
	"net/url"
	"strings"

	"github.com/fwojciec/tablewatch"
)

var _ tablewatch.PlatformDetector = (*Detector)(nil)

// Detector identifies chat front ends from document URLs.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// platformHosts maps registrable hosts to platforms. Subdomains match too.
var platformHosts = []struct {
	host     string
	platform tablewatch.Platform
}{
	{"chatgpt.com", tablewatch.PlatformChatGPT},
	{"chat.openai.com", tablewatch.PlatformChatGPT},
	{"claude.ai", tablewatch.PlatformClaude},
	{"gemini.google.com", tablewatch.PlatformGemini},
	{"chat.deepseek.com", tablewatch.PlatformDeepSeek},
	{"perplexity.ai", tablewatch.PlatformPerplexity},
	{"grok.com", tablewatch.PlatformGrok},
	{"copilot.microsoft.com", tablewatch.PlatformCopilot},
}

// Detect returns the platform serving rawURL.
// Returns PlatformGeneric for unknown or unparseable URLs.
func (d *Detector) Detect(rawURL string) tablewatch.Platform {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Hostname() == "" {
		return tablewatch.PlatformGeneric
	}
	host := strings.ToLower(u.Hostname())

	// Grok is also served from x.com under /i/grok.
	if matchHost(host, "x.com") && strings.HasPrefix(u.Path, "/i/grok") {
		return tablewatch.PlatformGrok
	}

	for _, ph := range platformHosts {
		if matchHost(host, ph.host) {
			return ph.platform
		}
	}
	return tablewatch.PlatformGeneric
}

func matchHost(host, want string) bool {
	return host == want || strings.HasSuffix(host, "."+want)
}
