package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/km-arc/go-validation/framework/container"
)

type service struct{ name string }

func TestContainer_SingletonAndBind(t *testing.T) {
	c := container.New()
	c.Singleton("single", func(*container.Container) any { return &service{name: "single"} })
	c.Bind("transient", func(*container.Container) any { return &service{name: "transient"} })

	assert.Same(t, c.Make("single"), c.Make("single"))
	assert.NotSame(t, c.Make("transient"), c.Make("transient"))
	assert.True(t, c.Resolved("single"))
	assert.False(t, c.Resolved("transient"))
}

func TestContainer_RebindDropsInstance(t *testing.T) {
	c := container.New()
	c.Singleton("svc", func(*container.Container) any { return &service{name: "old"} })
	_ = c.Make("svc")

	c.Singleton("svc", func(*container.Container) any { return &service{name: "new"} })
	assert.Equal(t, "new", container.Resolve[*service](c, "svc").name)
}

func TestContainer_FactoriesResolveDependencies(t *testing.T) {
	c := container.New()
	c.Instance("name", "dep")
	c.Singleton("svc", func(c *container.Container) any {
		return &service{name: container.Resolve[string](c, "name")}
	})

	assert.Equal(t, "dep", container.Resolve[*service](c, "svc").name)
}

func TestContainer_Alias(t *testing.T) {
	c := container.New()
	c.Instance("config", "cfg")
	c.Alias("config", "configuration")

	assert.Equal(t, "cfg", c.Make("configuration"))
	assert.Panics(t, func() { c.Alias("x", "x") })
}

func TestContainer_Missing(t *testing.T) {
	c := container.New()

	assert.Panics(t, func() { c.Make("missing") })
	assert.False(t, c.Bound("missing"))

	_, ok := container.TryResolve[*service](c, "missing")
	assert.False(t, ok)

	c.Instance("wrong", 42)
	_, ok = container.TryResolve[*service](c, "wrong")
	assert.False(t, ok)
	assert.Panics(t, func() { container.Resolve[*service](c, "wrong") })
}

func TestContainer_Bindings(t *testing.T) {
	c := container.New()
	c.Bind("b", func(*container.Container) any { return nil })
	c.Instance("a", 1)

	assert.Equal(t, []string{"a", "b", "container"}, c.Bindings())
	assert.Same(t, c, container.Resolve[*container.Container](c, "container"))
}
