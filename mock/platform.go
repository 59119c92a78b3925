package mock

import "github.com/fwojciec/tablewatch"

var _ tablewatch.PlatformDetector = (*PlatformDetector)(nil)

// PlatformDetector is a mock implementation of tablewatch.PlatformDetector.
type PlatformDetector struct {
	DetectFn func(url string) tablewatch.Platform
}

func (d *PlatformDetector) Detect(url string) tablewatch.Platform {
	return d.DetectFn(url)
}

var _ tablewatch.PlatformProfile = (*PlatformProfile)(nil)

// PlatformProfile is a mock implementation of tablewatch.PlatformProfile.
type PlatformProfile struct {
	PlatformFn func() tablewatch.Platform
	ScopesFn   func(doc tablewatch.Document) []tablewatch.Node
	TitleFn    func(doc tablewatch.Document) string
}

func (p *PlatformProfile) Platform() tablewatch.Platform {
	return p.PlatformFn()
}

func (p *PlatformProfile) Scopes(doc tablewatch.Document) []tablewatch.Node {
	return p.ScopesFn(doc)
}

func (p *PlatformProfile) Title(doc tablewatch.Document) string {
	if p.TitleFn != nil {
		return p.TitleFn(doc)
	}
	return ""
}

var _ tablewatch.PlatformResolver = (*PlatformResolver)(nil)

// PlatformResolver is a mock implementation of tablewatch.PlatformResolver.
type PlatformResolver struct {
	ResolveFn  func(url string) tablewatch.PlatformProfile
	GetFn      func(platform tablewatch.Platform) tablewatch.PlatformProfile
	RegisterFn func(profile tablewatch.PlatformProfile)
	ListFn     func() []tablewatch.Platform
}

func (r *PlatformResolver) Resolve(url string) tablewatch.PlatformProfile {
	return r.ResolveFn(url)
}

func (r *PlatformResolver) Get(platform tablewatch.Platform) tablewatch.PlatformProfile {
	return r.GetFn(platform)
}

func (r *PlatformResolver) Register(profile tablewatch.PlatformProfile) {
	r.RegisterFn(profile)
}

func (r *PlatformResolver) List() []tablewatch.Platform {
	return r.ListFn()
}
