package container

import "sync"

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider mirrors Laravel's Illuminate\Support\ServiceProvider.
// Register only binds; Boot runs once every provider is registered and may
// resolve anything.
//
//	type RuleServiceProvider struct{ container.BaseProvider }
//
//	func (p *RuleServiceProvider) Register(app *container.Container) {}
//
//	func (p *RuleServiceProvider) Boot(app *container.Container) {
//	    reg := container.Resolve[*validation.Registry](app, "validation.registry")
//	    reg.MustRegister("postcode", NewPostcodeRule())
//	}
type ServiceProvider interface {
	Register(app *Container)
	Boot(app *Container)

	// Provides lists the abstracts a deferred provider binds.
	Provides() []string

	// IsDeferred delays Register until one of Provides() is first resolved.
	// Laravel: protected $defer = true;
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider supplies no-op Boot, Provides and IsDeferred. Embed it and
// override what the provider needs.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container)  {}
func (p *BaseProvider) Provides() []string { return nil }
func (p *BaseProvider) IsDeferred() bool   { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry registers and boots providers, Laravel's
// Application::register and Application::boot.
type ProviderRegistry struct {
	app *Container

	mu         sync.Mutex
	eager      []ServiceProvider
	deferred   map[string]ServiceProvider // abstract → provider
	booted     bool
	registered map[ServiceProvider]bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		deferred:   make(map[string]ServiceProvider),
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider. Eager providers are registered at once, and
// booted at once when the registry already booted. Registering the same
// provider twice is a no-op.
func (r *ProviderRegistry) Register(provider ServiceProvider) {
	r.mu.Lock()
	if r.registered[provider] {
		r.mu.Unlock()
		return
	}
	r.registered[provider] = true

	if provider.IsDeferred() {
		for _, abstract := range provider.Provides() {
			r.deferred[abstract] = provider
		}
		r.mu.Unlock()
		r.interceptDeferred(provider)
		return
	}

	r.eager = append(r.eager, provider)
	booted := r.booted
	r.mu.Unlock()

	provider.Register(r.app)
	if booted {
		provider.Boot(r.app)
	}
}

// interceptDeferred binds a placeholder for each deferred abstract. The first
// Make registers the provider for real (replacing the placeholders), boots it
// when the registry is already booted, then resolves again.
func (r *ProviderRegistry) interceptDeferred(provider ServiceProvider) {
	for _, abstract := range provider.Provides() {
		r.app.Bind(abstract, func(c *Container) any {
			r.loadDeferred(abstract)
			return c.Make(abstract)
		})
	}
}

// loadDeferred registers the provider pending for abstract, if any.
func (r *ProviderRegistry) loadDeferred(abstract string) {
	r.mu.Lock()
	provider, pending := r.deferred[abstract]
	if !pending {
		r.mu.Unlock()
		return
	}
	for _, abs := range provider.Provides() {
		delete(r.deferred, abs)
	}
	booted := r.booted
	r.mu.Unlock()

	provider.Register(r.app)
	if booted {
		provider.Boot(r.app)
	}
}

// Boot calls Boot() on all eager providers, once.
func (r *ProviderRegistry) Boot() {
	r.mu.Lock()
	if r.booted {
		r.mu.Unlock()
		return
	}
	r.booted = true
	eager := append([]ServiceProvider(nil), r.eager...)
	r.mu.Unlock()

	for _, provider := range eager {
		provider.Boot(r.app)
	}
}

// Booted returns true if Boot() has been called.
func (r *ProviderRegistry) Booted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.booted
}

// Providers returns the registered eager providers.
func (r *ProviderRegistry) Providers() []ServiceProvider {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ServiceProvider(nil), r.eager...)
}

// Deferred returns the abstracts still waiting for their provider.
func (r *ProviderRegistry) Deferred() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.deferred))
	for abstract := range r.deferred {
		out = append(out, abstract)
	}
	return out
}
