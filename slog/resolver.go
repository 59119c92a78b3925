package slog

import (
	"log/slog"

	"github.com/fwojciec/tablewatch"
)

// Ensure LoggingResolver implements tablewatch.PlatformResolver.
var _ tablewatch.PlatformResolver = (*LoggingResolver)(nil)

// LoggingResolver wraps a PlatformResolver with logging of resolved platforms.
type LoggingResolver struct {
	next   tablewatch.PlatformResolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next tablewatch.PlatformResolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

// Resolve delegates to the wrapped resolver and logs the platform.
func (r *LoggingResolver) Resolve(url string) tablewatch.PlatformProfile {
	profile := r.next.Resolve(url)
	r.logger.Info("platform resolution",
		"url", url,
		"platform", profile.Platform(),
	)
	return profile
}

// Get delegates to the wrapped resolver.
func (r *LoggingResolver) Get(platform tablewatch.Platform) tablewatch.PlatformProfile {
	return r.next.Get(platform)
}

// Register delegates to the wrapped resolver.
func (r *LoggingResolver) Register(profile tablewatch.PlatformProfile) {
	r.next.Register(profile)
}

// List delegates to the wrapped resolver.
func (r *LoggingResolver) List() []tablewatch.Platform {
	return r.next.List()
}
