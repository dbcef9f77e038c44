package normalize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kataras/figma-sparrow/pkg/figma"
)

func TestFigmaRGBAToHex(t *testing.T) {
	tests := []struct {
		name  string
		color figma.Color
		want  string
	}{
		{name: "fully opaque red", color: figma.RGB(1, 0, 0), want: "#FF0000"},
		{name: "white", color: figma.RGB(1, 1, 1), want: "#FFFFFF"},
		{name: "black", color: figma.RGB(0, 0, 0), want: "#000000"},
		{name: "mid-tone", color: figma.RGB(0.231, 0.51, 0.965), want: "#3B82F6"},
		{name: "half alpha", color: figma.RGBA(1, 0, 0, 0.5), want: "#FF000080"},
		{name: "explicit opaque alpha omitted", color: figma.RGBA(1, 0, 0, 1), want: "#FF0000"},
		{name: "transparent", color: figma.RGBA(0, 0, 0, 0), want: "#00000000"},
		{name: "alpha rounding to opaque omitted", color: figma.RGBA(0, 0, 1, 0.999), want: "#0000FF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FigmaRGBAToHex(tt.color)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFigmaRGBAToHex_OutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		color figma.Color
	}{
		{name: "red above one", color: figma.RGB(1.2, 0, 0)},
		{name: "green negative", color: figma.RGB(0, -0.1, 0)},
		{name: "alpha above one", color: figma.RGBA(0, 0, 0, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FigmaRGBAToHex(tt.color)
			assert.Empty(t, got)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, "FigmaRGBAToHex", verr.Op)
		})
	}
}

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "uppercases hex", input: "#ff0000", want: "#FF0000"},
		{name: "strips fully opaque alpha", input: "#FF0000FF", want: "#FF0000"},
		{name: "preserves non-opaque alpha", input: "#FF000080", want: "#FF000080"},
		{name: "expands shorthand", input: "#f00", want: "#FF0000"},
		{name: "trims whitespace", input: "  #FF0000  ", want: "#FF0000"},
		{name: "no leading hash", input: "3b82f6", want: "#3B82F6"},
		{name: "lowercase opaque alpha", input: "#00ff00ff", want: "#00FF00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeColor(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeColor_Invalid(t *testing.T) {
	for _, input := range []string{"", "#", "#12", "#12345", "#1234567", "#GGGGGG", "red", "#FF0000FF00"} {
		t.Run(input, func(t *testing.T) {
			_, err := NormalizeColor(input)

			var verr *ValidationError
			assert.True(t, errors.As(err, &verr), "expected ValidationError for %q, got %v", input, err)
		})
	}
}

func TestNormalizeColor_Idempotent(t *testing.T) {
	for _, input := range []string{"#ff0000", "#FF0000FF", "#f00", "#FF000080", "abc"} {
		once, err := NormalizeColor(input)
		require.NoError(t, err)
		twice, err := NormalizeColor(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice, "input %q", input)
	}

	a, _ := NormalizeColor("#ff0000")
	b, _ := NormalizeColor("#FF0000FF")
	assert.Equal(t, a, b)
}

func TestFigmaRGBAToHex_IsCanonical(t *testing.T) {
	for _, c := range []figma.Color{figma.RGB(0.2, 0.4, 0.6), figma.RGBA(0.1, 0.2, 0.3, 0.25), figma.RGBA(1, 1, 1, 1)} {
		hex, err := FigmaRGBAToHex(c)
		require.NoError(t, err)

		normalized, err := NormalizeColor(hex)
		require.NoError(t, err)
		assert.Equal(t, hex, normalized)
	}
}

func TestNumericClose(t *testing.T) {
	assert.True(t, NumericClose(10, 10))
	assert.True(t, NumericClose(10, 10.005))
	assert.False(t, NumericClose(10, 10.02))

	assert.True(t, NumericCloseTol(10, 10.5, 1))
	assert.False(t, NumericCloseTol(10, 12, 1))
	assert.True(t, NumericCloseTol(10, 10.005, 0.01))
	assert.False(t, NumericCloseTol(10, 10.02, 0.01))
	assert.True(t, NumericCloseTol(-5, -4.5, 1))
	assert.True(t, NumericCloseTol(3, 4, 1), "boundary is inclusive")
}
