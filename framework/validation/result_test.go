package validation_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-validation/framework/validation"
)

func TestResult(t *testing.T) {
	res := validation.NewResult()
	assert.True(t, res.Passes())
	assert.NoError(t, res.Err())

	res.AddError("email", "first").AddError("email", "second").AddValidData("age", 25).MarkValidated("age")

	assert.True(t, res.Fails())
	assert.Equal(t, "first", res.First("email"))
	assert.Equal(t, "", res.First("age"))
	assert.Equal(t, []string{"first", "second"}, res.FieldErrors("email"))
	assert.Equal(t, map[string]string{"email": "first"}, res.FirstErrors())
	assert.Equal(t, 2, res.ErrorCount())
	assert.Equal(t, []string{"email", "age"}, res.ValidatedFields())

	// accessors return copies
	res.Errors()["email"][0] = "changed"
	res.ValidData()["age"] = 1
	assert.Equal(t, "first", res.First("email"))
	assert.Equal(t, map[string]any{"age": 25}, res.ValidData())
}

func TestResult_Err(t *testing.T) {
	res := validation.NewResult().AddError("name", "The name field is required.")

	err := res.Err()
	require.Error(t, err)
	assert.True(t, validation.IsValidationError(err))
	assert.Equal(t, map[string][]string{"name": {"The name field is required."}}, validation.ExtractErrors(err))
}

func TestResult_MarshalJSON(t *testing.T) {
	res := validation.NewResult().AddError("email", "bad").AddValidData("age", 25)

	b, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"errors":{"email":["bad"]},"valid":{"age":25}}`, string(b))
}
