package lightbar

// Preset colors used by defaults and the wave fallback palette.
var (
	Red     = Color{255, 0, 0}
	Green   = Color{0, 255, 0}
	Blue    = Color{0, 0, 255}
	Cyan    = Color{0, 255, 255}
	Magenta = Color{255, 0, 255}
	Yellow  = Color{255, 255, 0}
	Orange  = Color{255, 128, 0}
	Purple  = Color{128, 0, 255}
	White   = Color{255, 255, 255}
)

// Built-in animation ids.
const (
	PresetPulseSlow = "pulse_slow"
	PresetPulseFast = "pulse_fast"
	PresetPolice    = "police"
	PresetFire      = "fire"
)

// builtinOrder fixes the listing order of the built-in table.
var builtinOrder = []string{PresetPulseSlow, PresetPulseFast, PresetPolice, PresetFire}

// builtins is the read-only preset table. It is populated once and never
// mutated; lookups hit it before the user registry.
var builtins = map[string]Animation{
	PresetPulseSlow: {
		ID:   PresetPulseSlow,
		Name: "Slow Pulse",
		Keyframes: []Keyframe{
			{TimeMS: 0, Color: White, Brightness: 1.0, Easing: EaseInOut},
			{TimeMS: 1500, Color: White, Brightness: 0.2, Easing: EaseInOut},
			{TimeMS: 3000, Color: White, Brightness: 1.0, Easing: EaseInOut},
		},
		DurationMS: 3000,
		Loop:       true,
	},
	PresetPulseFast: {
		ID:   PresetPulseFast,
		Name: "Fast Pulse",
		Keyframes: []Keyframe{
			{TimeMS: 0, Color: White, Brightness: 1.0, Easing: EaseLinear},
			{TimeMS: 250, Color: White, Brightness: 0.2, Easing: EaseLinear},
			{TimeMS: 500, Color: White, Brightness: 1.0, Easing: EaseLinear},
		},
		DurationMS: 500,
		Loop:       true,
	},
	PresetPolice: {
		ID:   PresetPolice,
		Name: "Police Lights",
		Keyframes: []Keyframe{
			{TimeMS: 0, Color: Red, Brightness: 1.0, Easing: EaseLinear},
			{TimeMS: 100, Color: Red, Brightness: 0.0, Easing: EaseLinear},
			{TimeMS: 200, Color: Blue, Brightness: 1.0, Easing: EaseLinear},
			{TimeMS: 300, Color: Blue, Brightness: 0.0, Easing: EaseLinear},
			{TimeMS: 400, Color: Red, Brightness: 1.0, Easing: EaseLinear},
		},
		DurationMS: 400,
		Loop:       true,
	},
	PresetFire: {
		ID:   PresetFire,
		Name: "Fire Flicker",
		Keyframes: []Keyframe{
			{TimeMS: 0, Color: Color{255, 50, 0}, Brightness: 1.0, Easing: EaseOut},
			{TimeMS: 100, Color: Color{255, 100, 0}, Brightness: 0.8, Easing: EaseIn},
			{TimeMS: 200, Color: Color{255, 30, 0}, Brightness: 0.9, Easing: EaseOut},
			{TimeMS: 350, Color: Color{255, 80, 0}, Brightness: 0.7, Easing: EaseIn},
			{TimeMS: 500, Color: Color{255, 50, 0}, Brightness: 1.0, Easing: EaseLinear},
		},
		DurationMS: 500,
		Loop:       true,
	},
}

// defaultWaveColors is the palette substituted when a wave config arrives
// without colors.
func defaultWaveColors() []Color {
	return []Color{Red, Orange, Yellow, Green, Cyan, Blue, Purple}
}
