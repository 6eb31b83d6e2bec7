package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quoteSchema = JSONSchema{
	Type: "object",
	Properties: map[string]Property{
		"systemSizeKW": {Type: "number", Minimum: Float(0)},
		"totalQuote":   {Type: "number"},
		"city":         {Type: "string", MaxLength: Int(64)},
	},
	Required: []string{"systemSizeKW", "totalQuote"},
}

func TestSchema_Validate(t *testing.T) {
	s := MustCompile(quoteSchema)

	tests := []struct {
		name      string
		input     map[string]interface{}
		valid     bool
		errFields []string
	}{
		{
			name:  "valid with extra process variables",
			input: map[string]interface{}{"systemSizeKW": 3.0, "totalQuote": 180000.0, "processVar": "x"},
			valid: true,
		},
		{
			name:      "missing required",
			input:     map[string]interface{}{"systemSizeKW": 3.0},
			errFields: []string{"totalQuote"},
		},
		{
			name:      "wrong type",
			input:     map[string]interface{}{"systemSizeKW": "three", "totalQuote": 1.0},
			errFields: []string{"systemSizeKW"},
		},
		{
			name:      "below minimum",
			input:     map[string]interface{}{"systemSizeKW": -1.0, "totalQuote": 1.0},
			errFields: []string{"systemSizeKW"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.Validate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, res.Valid)
			for _, f := range tt.errFields {
				assert.True(t, res.HasErrors(f), "expected error for %s, got %v", f, res.GetErrorMessages())
			}
		})
	}
}

func TestSchema_ValidateVariables(t *testing.T) {
	s := MustCompile(quoteSchema)

	res, err := s.ValidateVariables(`{"systemSizeKW": 2, "totalQuote": 100000, "city": "pune"}`)
	require.NoError(t, err)
	assert.True(t, res.Valid)

	_, err = s.ValidateVariables(`{not json`)
	assert.Error(t, err)
}

func TestValidateInput_Uncompiled(t *testing.T) {
	res := ValidateInput(map[string]interface{}{"systemSizeKW": 1.0}, quoteSchema)
	assert.False(t, res.Valid)
	assert.Len(t, res.GetErrorsForField("totalQuote"), 1)
}

func TestSchema_Decode(t *testing.T) {
	s := MustCompile(quoteSchema)

	var dst struct {
		SystemSizeKW float64 `json:"systemSizeKW"`
		City         string  `json:"city"`
	}
	res, err := s.Decode(`{"systemSizeKW": 3, "totalQuote": 150000, "city": "mumbai"}`, &dst)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, 3.0, dst.SystemSizeKW)
	assert.Equal(t, "mumbai", dst.City)

	dst.City = "unchanged"
	res, err = s.Decode(`{"systemSizeKW": 3}`, &dst)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, "unchanged", dst.City)

	res, err = s.Decode("", &dst)
	require.NoError(t, err)
	assert.False(t, res.Valid)
}
