package lightbar

import "math"

// animationSource resolves custom animation ids during rendering. The
// Registry satisfies it; tests can substitute their own.
type animationSource interface {
	Get(id string) (Animation, error)
}

// renderFrame computes the output frame for a configuration at the given
// elapsed time. It is pure: the same inputs always yield the same frame.
func renderFrame(cfg Config, elapsedMS int64, battery int, src animationSource) Frame {
	var c Color
	switch cfg.Mode {
	case ModeStatic:
		c = scale(cfg.Color, cfg.Brightness)
	case ModeBreathing:
		c = renderBreathing(cfg, elapsedMS)
	case ModeRainbow:
		c = renderRainbow(cfg, elapsedMS)
	case ModeWave:
		c = renderWave(cfg, elapsedMS)
	case ModeBattery:
		c = renderBattery(cfg, elapsedMS, battery)
	case ModeCustom:
		c = renderCustom(cfg, elapsedMS, src)
	default:
		// ModeOff and anything unknown render black.
	}

	return Frame{
		R:                   c.R,
		G:                   c.G,
		B:                   c.B,
		PlayerLEDs:          cfg.PlayerLEDs,
		PlayerLEDBrightness: cfg.PlayerLEDBrightness,
	}
}

// renderBreathing produces a sinusoidal brightness cycle, optionally
// crossfading to a second color at the top of each breath.
func renderBreathing(cfg Config, elapsedMS int64) Color {
	speed := int64(cfg.BreathingSpeedMS)
	phase := float64(elapsedMS%speed) / float64(speed)
	breath := (math.Sin(phase*2*math.Pi-math.Pi/2) + 1) / 2
	brightness := cfg.BreathingMinBrightness + (1-cfg.BreathingMinBrightness)*breath

	c := cfg.Color
	if cfg.BreathingColor2 != nil {
		c = Lerp(cfg.Color, *cfg.BreathingColor2, breath)
	}
	return scale(c, brightness*cfg.Brightness)
}

// renderRainbow walks the hue circle once per cycle.
func renderRainbow(cfg Config, elapsedMS int64) Color {
	speed := int64(cfg.RainbowSpeedMS)
	hue := float64(elapsedMS%speed) / float64(speed)
	return HSVToRGB(hue, cfg.RainbowSaturation, cfg.Brightness)
}

// renderWave interpolates through the configured palette in a loop. An
// empty palette renders black.
func renderWave(cfg Config, elapsedMS int64) Color {
	n := len(cfg.WaveColors)
	if n == 0 {
		return Color{}
	}

	speed := int64(cfg.WaveSpeedMS)
	pos := float64(elapsedMS%speed) / float64(speed) * float64(n)
	i := int(pos) % n
	t := pos - math.Floor(pos)

	c := Lerp(cfg.WaveColors[i], cfg.WaveColors[(i+1)%n], t)
	return scale(c, cfg.Brightness)
}

// renderBattery maps the battery level onto a low/mid/high gradient,
// pulsing below the low threshold when configured. A low threshold of zero
// degenerates the bottom band to the mid color.
func renderBattery(cfg Config, elapsedMS int64, level int) Color {
	lo, hi := cfg.BatteryLowThreshold, cfg.BatteryHighThreshold

	var c Color
	switch {
	case level >= hi:
		c = cfg.BatteryHighColor
	case level >= lo:
		t := 1.0
		if hi > lo {
			t = float64(level-lo) / float64(hi-lo)
		}
		c = Lerp(cfg.BatteryMidColor, cfg.BatteryHighColor, t)
	default:
		t := 1.0
		if lo > 0 {
			t = float64(level) / float64(lo)
		}
		c = Lerp(cfg.BatteryLowColor, cfg.BatteryMidColor, t)
	}

	brightness := cfg.Brightness
	if level < lo && cfg.BatteryPulseWhenLow {
		pulse := (math.Sin(float64(elapsedMS)/200) + 1) / 2
		brightness *= 0.3 + 0.7*pulse
	}
	return scale(c, brightness)
}

// renderCustom plays back the referenced keyframe animation. A missing or
// empty animation renders black.
func renderCustom(cfg Config, elapsedMS int64, src animationSource) Color {
	if src == nil {
		return Color{}
	}
	anim, err := src.Get(cfg.CustomAnimationID)
	if err != nil || len(anim.Keyframes) == 0 || anim.DurationMS <= 0 {
		return Color{}
	}

	var animTime int64
	if anim.Loop {
		animTime = elapsedMS % int64(anim.DurationMS)
	} else {
		animTime = elapsedMS
		if animTime > int64(anim.DurationMS) {
			animTime = int64(anim.DurationMS)
		}
	}

	// Latest keyframe at or before animTime, and its successor. When the
	// last keyframe is passed, a looping animation wraps to the first while
	// a one-shot holds in place.
	prev := anim.Keyframes[0]
	next := anim.Keyframes[len(anim.Keyframes)-1]
	for i, kf := range anim.Keyframes {
		if int64(kf.TimeMS) > animTime {
			continue
		}
		prev = kf
		switch {
		case i+1 < len(anim.Keyframes):
			next = anim.Keyframes[i+1]
		case anim.Loop:
			next = anim.Keyframes[0]
		default:
			next = kf
		}
	}

	t := 0.0
	if prev.TimeMS != next.TimeMS {
		segment := next.TimeMS - prev.TimeMS
		if segment < 0 {
			// Wrap-around segment from the last keyframe back to the first.
			segment += anim.DurationMS
		}
		t = Ease(prev.Easing, float64(animTime-int64(prev.TimeMS))/float64(segment))
	}

	c := Lerp(prev.Color, next.Color, t)
	brightness := prev.Brightness + (next.Brightness-prev.Brightness)*t
	return scale(c, brightness*cfg.Brightness)
}
