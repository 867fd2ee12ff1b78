package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/km-arc/go-validation/framework/validation"
)

func TestContext_Immutable(t *testing.T) {
	base := validation.NewContext("signup")
	next := base.WithRule("email", "required").WithMessage("required", "need :attribute").WithAttribute("country", "NL")

	assert.Empty(t, base.Rules())
	assert.Empty(t, base.Messages())
	assert.Empty(t, base.Attributes())
	assert.False(t, base.IsZero(), "named context is not zero")

	assert.Equal(t, validation.Rules{"email": "required"}, next.Rules())
	assert.Equal(t, validation.Messages{"required": "need :attribute"}, next.Messages())
	assert.Equal(t, "NL", next.Attribute("country", nil))
	assert.Equal(t, "fallback", next.Attribute("missing", "fallback"))

	// returned maps are copies
	next.Rules()["email"] = "string"
	assert.Equal(t, "required", next.Rules()["email"])
}

func TestNewContextWith_CopiesInput(t *testing.T) {
	rules := validation.Rules{"a": "required"}
	ctx := validation.NewContextWith("c", rules, nil, nil)

	rules["a"] = "string"
	assert.Equal(t, "required", ctx.Rules()["a"])
	assert.Equal(t, "c", ctx.Name())
	assert.True(t, validation.Context{}.IsZero())
}
