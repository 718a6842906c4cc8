package lightbar

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is an RGB value with each channel in [0,255]. Construct through
// NewColor to get clamping; the zero value is black.
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// NewColor builds a Color, clamping each channel to [0,255].
func NewColor(r, g, b int) Color {
	return Color{clampChannel(r), clampChannel(g), clampChannel(b)}
}

// Hex renders the color as a #rrggbb string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses a 6-hex-digit color, with or without a leading '#'.
// Anything else yields black.
func ParseHex(s string) Color {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return Color{}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}
	}
	return Color{int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)}
}

// Lerp interpolates channel-wise between c1 and c2. t is clamped to [0,1]
// and the result truncates toward zero, matching the adapter's expectations.
func Lerp(c1, c2 Color, t float64) Color {
	t = clamp01(t)
	return Color{
		R: int(float64(c1.R) + float64(c2.R-c1.R)*t),
		G: int(float64(c1.G) + float64(c2.G-c1.G)*t),
		B: int(float64(c1.B) + float64(c2.B-c1.B)*t),
	}
}

// HSVToRGB converts h, s and v (each in [0,1]) to an 8-bit Color.
func HSVToRGB(h, s, v float64) Color {
	if s <= 0 {
		ch := int(v * 255)
		return NewColor(ch, ch, ch)
	}

	i := int(h*6) % 6
	if i < 0 {
		i += 6
	}
	f := h*6 - math.Floor(h*6)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	var r, g, b float64
	switch i {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}

	return NewColor(int(r*255), int(g*255), int(b*255))
}

// scale multiplies every channel by the brightness factor, truncating.
func scale(c Color, brightness float64) Color {
	return NewColor(
		int(float64(c.R)*brightness),
		int(float64(c.G)*brightness),
		int(float64(c.B)*brightness),
	)
}

func clampChannel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
