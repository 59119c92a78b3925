package tablewatch

// Platform identifies a chat front end.
type Platform string

// Supported platforms.
const (
	PlatformGeneric    Platform = "generic"
	PlatformChatGPT    Platform = "chatgpt"
	PlatformClaude     Platform = "claude"
	PlatformGemini     Platform = "gemini"
	PlatformDeepSeek   Platform = "deepseek"
	PlatformPerplexity Platform = "perplexity"
	PlatformGrok       Platform = "grok"
	PlatformCopilot    Platform = "copilot"
)

// PlatformProfile is the per-platform configuration of where to search for
// tables and how to extract the conversation title.
type PlatformProfile interface {
	// Platform returns the platform the profile describes.
	Platform() Platform

	// Scopes returns the subtrees to search for candidates, typically the
	// assistant response containers. An empty result means the platform's
	// primary selectors matched nothing.
	Scopes(doc Document) []Node

	// Title returns the conversation title, or "" when none is found.
	Title(doc Document) string
}

// PlatformDetector identifies the platform serving a document URL.
type PlatformDetector interface {
	// Detect returns PlatformGeneric when the URL is not recognized.
	Detect(url string) Platform
}

// PlatformResolver maps document URLs to platform profiles.
type PlatformResolver interface {
	// Resolve returns the profile for the URL's platform, falling back to
	// the generic profile. It never returns nil.
	Resolve(url string) PlatformProfile

	// Get returns the profile registered for a platform.
	// Returns nil if no profile is registered.
	Get(platform Platform) PlatformProfile

	// Register adds a profile, replacing any profile for the same platform.
	Register(profile PlatformProfile)

	// List returns all registered platforms.
	List() []Platform
}
