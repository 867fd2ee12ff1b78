package validation_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/km-arc/go-validation/framework/validation"
)

func TestDefaultFormatter(t *testing.T) {
	f := validation.DefaultFormatter{}

	t.Run("attribute and params", func(t *testing.T) {
		got := f.Format("The :attribute must be between :param0 and :param1", "age", []string{"18", "65"}, nil)
		assert.Equal(t, "The age must be between 18 and 65", got)
	})

	t.Run("double digit params", func(t *testing.T) {
		params := make([]string, 11)
		for i := range params {
			params[i] = "p" + strconv.Itoa(i)
		}
		assert.Equal(t, "p10 p1", f.Format(":param10 :param1", "f", params, nil))
	})

	t.Run("longest named key first", func(t *testing.T) {
		got := f.Format(":max_len/:max", "f", nil, map[string]any{"max": 5, "max_len": 10})
		assert.Equal(t, "10/5", got)
	})

	t.Run("unknown placeholders stay", func(t *testing.T) {
		assert.Equal(t, "f :other", f.Format(":attribute :other", "f", nil, nil))
	})
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "1", validation.Stringify(true))
	assert.Equal(t, "", validation.Stringify(false))
	assert.Equal(t, "", validation.Stringify(nil))
	assert.Equal(t, "42", validation.Stringify(42))
	assert.Equal(t, "1.5", validation.Stringify(1.5))
	assert.Equal(t, "x", validation.Stringify("x"))
}
