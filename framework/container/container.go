package container

import (
	"fmt"
	"sort"
	"sync"
)

// Factory builds a service from the container.
type Factory func(c *Container) any

type binding struct {
	factory   Factory
	singleton bool
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container is a small IoC container in the spirit of Laravel's
// Illuminate\Container\Container: string keys, explicit factories,
// singletons and aliases. Go has no constructor reflection, so there is no
// auto-wiring.
type Container struct {
	mu        sync.RWMutex
	bindings  map[string]*binding
	instances map[string]any
	aliases   map[string]string
}

// New creates an empty container bound to itself under "container".
func New() *Container {
	c := &Container{
		bindings:  make(map[string]*binding),
		instances: make(map[string]any),
		aliases:   make(map[string]string),
	}
	c.Instance("container", c)
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Bind registers a transient factory: every Make builds a new value.
//
//	c.Bind("validator", func(c *container.Container) any {
//	    return validation.New(container.Resolve[*validation.Registry](c, "validation.registry"))
//	})
func (c *Container) Bind(abstract string, factory Factory) {
	c.bind(abstract, factory, false)
}

// Singleton registers a factory whose result is cached after first Make.
//
//	c.Singleton("rulesets", func(c *container.Container) any {
//	    return ruleset.NewStore(container.Resolve[*config.Config](c, "config").Validation.RuleSetDir)
//	})
func (c *Container) Singleton(abstract string, factory Factory) {
	c.bind(abstract, factory, true)
}

func (c *Container) bind(abstract string, factory Factory, singleton bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := c.canonical(abstract)
	delete(c.instances, key) // rebuilt with the new factory
	c.bindings[key] = &binding{factory: factory, singleton: singleton}
}

// Instance registers a pre-built value.
func (c *Container) Instance(abstract string, instance any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := c.canonical(abstract)
	delete(c.bindings, key)
	c.instances[key] = instance
}

// Alias registers another name for abstract.
func (c *Container) Alias(abstract, alias string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if abstract == alias {
		panic(fmt.Sprintf("container: [%s] is aliased to itself", abstract))
	}
	c.aliases[alias] = c.canonical(abstract)
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Make resolves abstract. It panics when nothing is bound: a missing binding
// is a wiring bug in the application bootstrap.
func (c *Container) Make(abstract string) any {
	c.mu.RLock()
	key := c.canonical(abstract)
	if inst, ok := c.instances[key]; ok {
		c.mu.RUnlock()
		return inst
	}
	b, ok := c.bindings[key]
	c.mu.RUnlock()

	if !ok {
		panic(fmt.Sprintf("container: no binding registered for [%s]", abstract))
	}

	// Factories may call Make themselves, so no lock is held while they run.
	instance := b.factory(c)
	if !b.singleton {
		return instance
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.instances[key]; ok {
		return existing
	}
	c.instances[key] = instance
	return instance
}

// Bound reports whether abstract has a binding or instance.
func (c *Container) Bound(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key := c.canonical(abstract)
	_, hasBinding := c.bindings[key]
	_, hasInstance := c.instances[key]
	return hasBinding || hasInstance
}

// Resolved reports whether abstract holds a cached instance.
func (c *Container) Resolved(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.instances[c.canonical(abstract)]
	return ok
}

// Bindings returns every registered key, sorted.
func (c *Container) Bindings() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]struct{}, len(c.bindings)+len(c.instances))
	for k := range c.bindings {
		seen[k] = struct{}{}
	}
	for k := range c.instances {
		seen[k] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// canonical resolves an alias; callers hold mu.
func (c *Container) canonical(abstract string) string {
	if target, ok := c.aliases[abstract]; ok {
		return target
	}
	return abstract
}

// ── Generics helpers ──────────────────────────────────────────────────────────

// Resolve calls Make and type-asserts the result.
//
//	v := container.Resolve[*validation.Validator](app, "validator")
func Resolve[T any](c *Container, abstract string) T {
	instance := c.Make(abstract)
	typed, ok := instance.(T)
	if !ok {
		panic(fmt.Sprintf("container: Resolve[%T]: [%s] resolved to %T", *new(T), abstract, instance))
	}
	return typed
}

// TryResolve is Resolve for optional services: it reports false instead of
// panicking when abstract is unbound or of another type.
func TryResolve[T any](c *Container, abstract string) (T, bool) {
	var zero T
	if !c.Bound(abstract) {
		return zero, false
	}
	typed, ok := c.Make(abstract).(T)
	return typed, ok
}
