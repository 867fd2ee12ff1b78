// Package container provides the IoC container and service providers that
// wire the application together.
//
// # Bindings
//
//	c := container.New()
//
//	// Singleton: created once, reused
//	c.Singleton("validation.registry", func(c *container.Container) any {
//	    return validation.DefaultRegistry()
//	})
//
//	// Transient: a new value on every Make
//	c.Bind("validator", func(c *container.Container) any {
//	    return validation.New(container.Resolve[*validation.Registry](c, "validation.registry"))
//	})
//
//	// Pre-built value and alias
//	c.Instance("config", cfg)
//	c.Alias("config", "configuration")
//
// # Resolving
//
//	raw := c.Make("validator")                                   // any
//	v := container.Resolve[*validation.Validator](c, "validator") // typed, panics on mismatch
//	m, ok := container.TryResolve[*metrics.Collector](c, "metrics")
//
// # Service Providers
//
// Register binds services; Boot runs after every provider is registered and
// may resolve anything. Deferred providers are registered on the first Make
// of one of their Provides() keys.
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&providers.ConfigServiceProvider{})
//	registry.Register(&providers.ValidationServiceProvider{})
//	registry.Boot()
package container
