package lightbar

import "fmt"

// Mode selects one of the mutually exclusive rendering strategies.
type Mode string

const (
	ModeOff       Mode = "off"
	ModeStatic    Mode = "static"
	ModeBreathing Mode = "breathing"
	ModeRainbow   Mode = "rainbow"
	ModeWave      Mode = "wave"
	ModeBattery   Mode = "battery"
	ModeCustom    Mode = "custom"
)

// Config is the complete lightbar configuration. Exactly one Config is live
// at any time; Apply replaces it wholesale.
type Config struct {
	Mode       Mode    `json:"mode"`
	Color      Color   `json:"color"`
	Brightness float64 `json:"brightness"`

	BreathingSpeedMS       int     `json:"breathing_speed_ms"`
	BreathingMinBrightness float64 `json:"breathing_min_brightness"`
	BreathingColor2        *Color  `json:"breathing_color2,omitempty"`

	RainbowSpeedMS    int     `json:"rainbow_speed_ms"`
	RainbowSaturation float64 `json:"rainbow_saturation"`

	WaveSpeedMS int     `json:"wave_speed_ms"`
	WaveColors  []Color `json:"wave_colors"`

	BatteryHighColor     Color `json:"battery_high_color"`
	BatteryMidColor      Color `json:"battery_mid_color"`
	BatteryLowColor      Color `json:"battery_low_color"`
	BatteryHighThreshold int   `json:"battery_high_threshold"`
	BatteryLowThreshold  int   `json:"battery_low_threshold"`
	BatteryPulseWhenLow  bool  `json:"battery_pulse_when_low"`

	CustomAnimationID string `json:"custom_animation_id,omitempty"`

	// The five indicator LEDs next to the lightbar, as a bitmask.
	PlayerLEDs          int     `json:"player_leds"`
	PlayerLEDBrightness float64 `json:"player_led_brightness"`
}

// DefaultConfig is the configuration active before anything is applied:
// a static PS blue at full brightness.
func DefaultConfig() Config {
	return Config{
		Mode:                   ModeStatic,
		Color:                  Blue,
		Brightness:             1.0,
		BreathingSpeedMS:       2000,
		BreathingMinBrightness: 0.1,
		RainbowSpeedMS:         3000,
		RainbowSaturation:      1.0,
		WaveSpeedMS:            2000,
		BatteryHighColor:       Green,
		BatteryMidColor:        Yellow,
		BatteryLowColor:        Red,
		BatteryHighThreshold:   70,
		BatteryLowThreshold:    20,
		BatteryPulseWhenLow:    true,
		PlayerLEDBrightness:    1.0,
	}
}

// normalize clamps every field to its valid range and substitutes defaults
// for values that would break the renderer (zero cycle lengths, an empty
// wave palette).
func (c *Config) normalize() {
	c.Color = NewColor(c.Color.R, c.Color.G, c.Color.B)
	c.Brightness = clamp01(c.Brightness)
	c.BreathingMinBrightness = clamp01(c.BreathingMinBrightness)
	c.RainbowSaturation = clamp01(c.RainbowSaturation)
	c.PlayerLEDBrightness = clamp01(c.PlayerLEDBrightness)
	c.PlayerLEDs &= 0x1f

	if c.BreathingSpeedMS <= 0 {
		c.BreathingSpeedMS = 2000
	}
	if c.RainbowSpeedMS <= 0 {
		c.RainbowSpeedMS = 3000
	}
	if c.WaveSpeedMS <= 0 {
		c.WaveSpeedMS = 2000
	}
	if c.Mode == ModeWave && len(c.WaveColors) == 0 {
		c.WaveColors = defaultWaveColors()
	}

	if c.BatteryLowThreshold < 0 {
		c.BatteryLowThreshold = 0
	}
	if c.BatteryHighThreshold > 100 {
		c.BatteryHighThreshold = 100
	}
}

// validate rejects configurations the renderer cannot act on.
func (c Config) validate() error {
	switch c.Mode {
	case ModeOff, ModeStatic, ModeBreathing, ModeRainbow, ModeWave, ModeBattery:
	case ModeCustom:
		if c.CustomAnimationID == "" {
			return fmt.Errorf("%w: custom mode requires an animation id", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	}
	return nil
}

// clone returns a copy sharing no mutable storage with the original.
func (c Config) clone() Config {
	out := c
	if c.BreathingColor2 != nil {
		c2 := *c.BreathingColor2
		out.BreathingColor2 = &c2
	}
	if c.WaveColors != nil {
		out.WaveColors = make([]Color, len(c.WaveColors))
		copy(out.WaveColors, c.WaveColors)
	}
	return out
}
