package validator

import (
	"testing"

	"patient-registry-service/pkg/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFields = []Field{
	{Name: "firstName", Required: true, Kind: String},
	{Name: "limit", Kind: Number},
	{Name: "isActive", Kind: Boolean},
}

func requireAPIError(t *testing.T, err error) *apierror.Error {
	t.Helper()
	require.Error(t, err)
	apiErr, ok := err.(*apierror.Error)
	require.True(t, ok, "expected a coded api error, got %T", err)
	return apiErr
}

func TestCheckCoercesPresentFields(t *testing.T) {
	values, err := Check(testFields, map[string]any{
		"firstName": "Lisa",
		"limit":     "15",
		"isActive":  "TRUE",
	})
	require.NoError(t, err)

	first, ok := values.String("firstName")
	assert.True(t, ok)
	assert.Equal(t, "Lisa", first)

	limit, ok := values.Number("limit")
	assert.True(t, ok)
	assert.Equal(t, float64(15), limit)

	isActive, ok := values.Bool("isActive")
	assert.True(t, ok)
	assert.True(t, isActive)
}

func TestCheckMissingRequiredField(t *testing.T) {
	_, err := Check(testFields, map[string]any{"limit": 10})

	apiErr := requireAPIError(t, err)
	assert.Equal(t, apierror.CodeValidation, apiErr.Code)
	assert.Contains(t, apiErr.Details, "firstName")
}

func TestCheckOmitsAbsentOptionalFields(t *testing.T) {
	values, err := Check(testFields, map[string]any{"firstName": "Bart"})
	require.NoError(t, err)

	assert.Len(t, values, 1)
	_, ok := values.Number("limit")
	assert.False(t, ok)
}

func TestCheckDropsUnknownFields(t *testing.T) {
	values, err := Check(testFields, map[string]any{
		"firstName": "Bart",
		"nickname":  "El Barto",
	})
	require.NoError(t, err)

	_, present := values["nickname"]
	assert.False(t, present)
}

func TestCheckNumberCoercionFailure(t *testing.T) {
	_, err := Check(testFields, map[string]any{
		"firstName": "Bart",
		"limit":     "fifteen",
	})

	apiErr := requireAPIError(t, err)
	assert.Equal(t, apierror.CodeValidation, apiErr.Code)
	assert.Contains(t, apiErr.Details, "limit")
	assert.Contains(t, apiErr.Details, "number")
}

func TestCheckNumberCoercionRejectsNaNAndInfinity(t *testing.T) {
	// ParseFloat would accept these spellings, but they are not usable
	// numbers and must fail coercion on the field that carries them.
	for _, raw := range []string{"NaN", "nan", "Inf", "-Inf", "Infinity", "+infinity"} {
		_, err := Check(testFields, map[string]any{
			"firstName": "Bart",
			"limit":     raw,
		})

		apiErr := requireAPIError(t, err)
		assert.Equal(t, apierror.CodeValidation, apiErr.Code, "raw value %q", raw)
		assert.Contains(t, apiErr.Details, "limit", "raw value %q", raw)
	}
}

func TestCheckBooleanCoercion(t *testing.T) {
	cases := []struct {
		raw  any
		want bool
	}{
		{true, true},
		{false, false},
		{"true", true},
		{"False", false},
	}
	for _, tc := range cases {
		values, err := Check(testFields, map[string]any{
			"firstName": "Bart",
			"isActive":  tc.raw,
		})
		require.NoError(t, err)

		got, ok := values.Bool("isActive")
		assert.True(t, ok)
		assert.Equal(t, tc.want, got, "raw value %v", tc.raw)
	}

	_, err := Check(testFields, map[string]any{
		"firstName": "Bart",
		"isActive":  "yes",
	})
	apiErr := requireAPIError(t, err)
	assert.Equal(t, apierror.CodeValidation, apiErr.Code)
}

func TestCheckStringCoercionNeverFails(t *testing.T) {
	values, err := Check(testFields, map[string]any{"firstName": 42})
	require.NoError(t, err)

	first, ok := values.String("firstName")
	assert.True(t, ok)
	assert.Equal(t, "42", first)
}

func TestCheckAbortsOnFirstFailure(t *testing.T) {
	// Both limit and isActive are broken; the error must name the first field
	// in list order.
	_, err := Check(testFields, map[string]any{
		"firstName": "Bart",
		"limit":     "NaN",
		"isActive":  "maybe",
	})

	apiErr := requireAPIError(t, err)
	assert.Contains(t, apiErr.Details, "limit")
	assert.NotContains(t, apiErr.Details, "isActive")
}
