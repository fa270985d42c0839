package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildContext(t *testing.T) {
	tests := []struct {
		name     string
		features []string
		specs    []string
		expected string
	}{
		{
			name:     "Features and specs",
			features: []string{"Durable", "Waterproof"},
			specs:    []string{"Color", "Red", "Weight", "200 g"},
			expected: "Widget X\nProduct Price after Discount $10. Product Actual Price $20.\nDurable, Waterproof, Color Red, Weight 200 g.\n",
		},
		{
			name:     "Specs only",
			specs:    []string{"Color", "Red"},
			expected: "Widget X\nProduct Price after Discount $10. Product Actual Price $20.\nColor Red.\n",
		},
		{
			name:     "Features only",
			features: []string{"Durable"},
			expected: "Widget X\nProduct Price after Discount $10. Product Actual Price $20.\nDurable.\n",
		},
		{
			name:     "Neither",
			expected: "Widget X\nProduct Price after Discount $10. Product Actual Price $20.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			context, err := BuildContext("Widget X", "Product Price after Discount $10",
				"Product Actual Price $20", tt.features, tt.specs)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, context)
		})
	}
}

func TestBuildContextIsDeterministic(t *testing.T) {
	features := []string{"Durable", "Battery: 10 hours"}
	specs := []string{"Color", "Red", "Brand", "Acme"}

	first, err := BuildContext("Widget X", "Product Price after Discount $10", "Product Actual Price $20", features, specs)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := BuildContext("Widget X", "Product Price after Discount $10", "Product Actual Price $20", features, specs)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestBuildContextRejectsOddSpecs(t *testing.T) {
	context, err := BuildContext("Widget X", "d", "a", nil, []string{"Color", "Red", "Weight"})

	assert.Empty(t, context)
	assert.ErrorIs(t, err, ErrOddSpecs)

	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, "specs", extractionErr.Field)
	assert.Contains(t, err.Error(), "3 entries")
}
