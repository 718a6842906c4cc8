package lightbar

import "math"

// Easing names a [0,1]→[0,1] shaping function applied to the interpolation
// fraction between two keyframes.
type Easing string

const (
	EaseLinear Easing = "linear"
	EaseIn     Easing = "ease_in"
	EaseOut    Easing = "ease_out"
	EaseInOut  Easing = "ease_in_out"
	EaseSine   Easing = "sine"
)

// Ease applies the named easing function to t. Unknown names fall back to
// linear so stale persisted data never breaks playback.
func Ease(e Easing, t float64) float64 {
	switch e {
	case EaseIn:
		return t * t
	case EaseOut:
		return 1 - (1-t)*(1-t)
	case EaseInOut:
		return t * t * (3 - 2*t)
	case EaseSine:
		return (1 - math.Cos(t*math.Pi)) / 2
	default:
		return t
	}
}
