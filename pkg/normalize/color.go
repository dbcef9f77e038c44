// Package normalize holds the primitive normalizers shared by every extractor:
// color conversion, numeric tolerance, variant-name handling and node resolution.
package normalize

import (
	"fmt"
	"math"
	"strings"

	"github.com/kataras/figma-sparrow/pkg/figma"
)

// DefaultTolerance is the tolerance used by NumericClose.
const DefaultTolerance = 0.01

// FigmaRGBAToHex converts a Figma color (0-1 float channels) to "#RRGGBB", or
// "#RRGGBBAA" when the color carries an alpha that does not round to fully opaque.
// The output is always in NormalizeColor's canonical form.
func FigmaRGBAToHex(c figma.Color) (string, error) {
	channels := []channel{{"r", c.R}, {"g", c.G}, {"b", c.B}}
	if c.A != nil {
		channels = append(channels, channel{"a", *c.A})
	}

	for _, ch := range channels {
		if math.IsNaN(ch.value) || ch.value < 0 || ch.value > 1 {
			return "", &ValidationError{
				Op:     "FigmaRGBAToHex",
				Input:  fmt.Sprintf("%s=%g", ch.name, ch.value),
				Reason: "color channel must be within [0,1]",
			}
		}
	}

	hex := fmt.Sprintf("#%02X%02X%02X", to255(c.R), to255(c.G), to255(c.B))
	if c.A != nil {
		if a := to255(*c.A); a != 255 {
			hex += fmt.Sprintf("%02X", a)
		}
	}

	return hex, nil
}

type channel struct {
	name  string
	value float64
}

func to255(v float64) int {
	return int(math.Round(v * 255))
}

// NormalizeColor canonicalizes a hex color string: surrounding whitespace and the
// leading '#' are optional, digits are uppercased, 3-digit shorthand is expanded and
// a fully opaque "FF" alpha suffix is dropped.
func NormalizeColor(s string) (string, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	for _, r := range hex {
		if !isHexDigit(r) {
			return "", &ValidationError{Op: "NormalizeColor", Input: s, Reason: "not a hex color"}
		}
	}

	hex = strings.ToUpper(hex)
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	case 8:
		hex = strings.TrimSuffix(hex, "FF")
	default:
		return "", &ValidationError{Op: "NormalizeColor", Input: s, Reason: "expected 3, 6 or 8 hex digits"}
	}

	return "#" + hex, nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// NumericClose reports whether a and b differ by at most DefaultTolerance.
func NumericClose(a, b float64) bool {
	return NumericCloseTol(a, b, DefaultTolerance)
}

// NumericCloseTol reports whether |a-b| <= tol.
func NumericCloseTol(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
