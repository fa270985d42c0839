package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImageSet(t *testing.T) {
	raw := `{"https://m.media-amazon.com/images/I/b.jpg":[500,500],"https://m.media-amazon.com/images/I/a.jpg":[1500,1200]}`

	set, err := ParseImageSet(raw)
	require.NoError(t, err)
	require.Len(t, set, 2)

	// source order, not lexical order
	assert.Equal(t, "https://m.media-amazon.com/images/I/b.jpg", set.Primary())
	assert.Equal(t, ImageVariant{URL: "https://m.media-amazon.com/images/I/a.jpg", Width: 1500, Height: 1200}, set[1])

	v, ok := set.Lookup("https://m.media-amazon.com/images/I/a.jpg")
	assert.True(t, ok)
	assert.Equal(t, 1200, v.Height)

	assert.Equal(t, []string{
		"https://m.media-amazon.com/images/I/b.jpg",
		"https://m.media-amazon.com/images/I/a.jpg",
	}, set.URLs())
}

func TestParseImageSetErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"Empty", ""},
		{"Not JSON", "not json"},
		{"Array", `["https://example.com/a.jpg"]`},
		{"Bad size", `{"https://example.com/a.jpg":"big"}`},
		{"Truncated", `{"https://example.com/a.jpg":[1,2]`},
		{"Trailing data", `{"https://example.com/a.jpg":[1,2]} {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseImageSet(tt.raw)
			assert.ErrorIs(t, err, ErrInvalidImageSet)
		})
	}
}

func TestEmptyImageSet(t *testing.T) {
	set, err := ParseImageSet(`{}`)
	require.NoError(t, err)
	assert.Empty(t, set)
	assert.Equal(t, "", set.Primary())
}
