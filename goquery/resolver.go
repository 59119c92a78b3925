package goquery

import (
	"slices"

	"github.com/fwojciec/tablewatch"
)

var _ tablewatch.PlatformResolver = (*Resolver)(nil)

// Resolver maps document URLs to platform profiles. It uses a
// PlatformDetector to identify the platform and returns the registered
// profile, falling back to a generic profile when the platform is unknown
// or no profile is registered for it.
type Resolver struct {
	detector tablewatch.PlatformDetector
	fallback tablewatch.PlatformProfile
	profiles map[tablewatch.Platform]tablewatch.PlatformProfile
}

// NewResolver creates a new Resolver with the given detector and fallback profile.
func NewResolver(detector tablewatch.PlatformDetector, fallback tablewatch.PlatformProfile) *Resolver {
	return &Resolver{
		detector: detector,
		fallback: fallback,
		profiles: make(map[tablewatch.Platform]tablewatch.PlatformProfile),
	}
}

// DefaultResolver returns a Resolver with every built-in platform registered.
func DefaultResolver() *Resolver {
	r := NewResolver(NewDetector(), NewGenericProfile())
	r.Register(NewChatGPTProfile())
	r.Register(NewClaudeProfile())
	r.Register(NewGeminiProfile())
	r.Register(NewDeepSeekProfile())
	r.Register(NewPerplexityProfile())
	r.Register(NewGrokProfile())
	r.Register(NewCopilotProfile())
	return r
}

// Get returns the profile for a specific platform.
// Returns nil if no profile is registered for the platform.
func (r *Resolver) Get(platform tablewatch.Platform) tablewatch.PlatformProfile {
	return r.profiles[platform]
}

// Resolve detects the platform from the URL and returns its profile.
func (r *Resolver) Resolve(url string) tablewatch.PlatformProfile {
	if p, ok := r.profiles[r.detector.Detect(url)]; ok {
		return p
	}
	return r.fallback
}

// Register adds a profile.
// If a profile is already registered for the platform, it is replaced.
func (r *Resolver) Register(profile tablewatch.PlatformProfile) {
	r.profiles[profile.Platform()] = profile
}

// List returns all registered platforms, sorted.
func (r *Resolver) List() []tablewatch.Platform {
	platforms := make([]tablewatch.Platform, 0, len(r.profiles))
	for p := range r.profiles {
		platforms = append(platforms, p)
	}
	slices.Sort(platforms)
	return platforms
}
