package validation_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-validation/framework/validation"
)

func TestRegistry(t *testing.T) {
	t.Run("register and get", func(t *testing.T) {
		reg := validation.NewRegistry()
		require.NoError(t, reg.Register("required", validation.Required()))

		assert.True(t, reg.Has("required"))
		assert.Equal(t, "required", reg.Get("required").Name())
		assert.Nil(t, reg.Get("Required"), "names are case-sensitive")
	})

	t.Run("replace existing", func(t *testing.T) {
		reg := validation.NewRegistry(validation.Required())
		custom := validation.WithMessage(validation.Required(), "custom")
		require.NoError(t, reg.Register("required", custom))
		assert.Equal(t, "custom", reg.Get("required").Message())
	})

	t.Run("empty name", func(t *testing.T) {
		assert.ErrorIs(t, validation.NewRegistry().Register("", validation.Required()), validation.ErrEmptyRuleName)
	})

	t.Run("nil rule", func(t *testing.T) {
		assert.ErrorIs(t, validation.NewRegistry().Register("x", nil), validation.ErrNilRule)
	})

	t.Run("must register panics", func(t *testing.T) {
		assert.Panics(t, func() { validation.NewRegistry().MustRegister("", validation.Required()) })
	})

	t.Run("names sorted and all copied", func(t *testing.T) {
		reg := validation.NewRegistry(validation.Required(), validation.Email(), validation.Between())
		assert.Equal(t, []string{"between", "email", "required"}, reg.Names())

		all := reg.All()
		delete(all, "email")
		assert.True(t, reg.Has("email"))
	})

	t.Run("concurrent reads after setup", func(t *testing.T) {
		reg := validation.DefaultRegistry()
		v := validation.New(reg)

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				res, err := v.Validate(map[string]any{"email": "x"}, validation.Rules{"email": "required|email"}, nil)
				assert.NoError(t, err)
				assert.True(t, res.Fails())
				assert.True(t, reg.Has("email"))
			}()
		}
		wg.Wait()
	})
}
