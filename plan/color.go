package plan

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var errColor = errors.New("invalid color")

// ParseColor reads a CSS color, as stored by the editor:
// #rgb, #rrggbb, #rrggbbaa, rgb(r,g,b), rgba(r,g,b,a) or a color name.
// "none", "transparent" and the empty string return a nil color.
func ParseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "none", "transparent":
		return nil, nil
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	if strings.HasPrefix(s, "rgb") {
		return parseFunctional(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", errColor, s)
}

func parseHex(h string) (color.Color, error) {
	switch len(h) {
	case 3, 4: // expand short form
		var b strings.Builder
		for _, r := range h {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		h = b.String()
	case 6, 8:
	default:
		return nil, fmt.Errorf("%w: #%s", errColor, h)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: #%s", errColor, h)
	}
	if len(h) == 6 {
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// parseFunctional handles rgb(...) and rgba(...), with the
// alpha component given as a fraction.
func parseFunctional(s string) (color.Color, error) {
	lo, hi := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if lo < 0 || hi < lo {
		return nil, fmt.Errorf("%w: %q", errColor, s)
	}
	parts := strings.Split(s[lo+1:hi], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return nil, fmt.Errorf("%w: %q", errColor, s)
	}
	var comps [3]uint8
	for i := range comps {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil || v < 0 || v > 255 {
			return nil, fmt.Errorf("%w: %q", errColor, s)
		}
		comps[i] = uint8(v)
	}
	alpha := uint8(0xff)
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return nil, fmt.Errorf("%w: %q", errColor, s)
		}
		alpha = uint8(a*255 + 0.5)
	}
	return color.NRGBA{R: comps[0], G: comps[1], B: comps[2], A: alpha}, nil
}
