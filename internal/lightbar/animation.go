package lightbar

// Keyframe is a single anchor point in an animation. TimeMS is the offset
// from animation start; keyframes are expected in ascending time order.
type Keyframe struct {
	TimeMS     int     `json:"time_ms"`
	Color      Color   `json:"color"`
	Brightness float64 `json:"brightness"`
	Easing     Easing  `json:"easing"`
}

// Animation is a named keyframe sequence. Slice order is playback order.
// DurationMS is the total loop length and may extend past the last keyframe.
type Animation struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Keyframes  []Keyframe `json:"keyframes"`
	DurationMS int        `json:"duration_ms"`
	Loop       bool       `json:"loop"`
}

// clone returns a copy that shares no keyframe storage with the original.
func (a Animation) clone() Animation {
	out := a
	out.Keyframes = make([]Keyframe, len(a.Keyframes))
	copy(out.Keyframes, a.Keyframes)
	return out
}

// normalize clamps keyframe fields to their valid ranges.
func (a *Animation) normalize() {
	for i := range a.Keyframes {
		kf := &a.Keyframes[i]
		kf.Color = NewColor(kf.Color.R, kf.Color.G, kf.Color.B)
		kf.Brightness = clamp01(kf.Brightness)
		if kf.TimeMS < 0 {
			kf.TimeMS = 0
		}
		if kf.Easing == "" {
			kf.Easing = EaseLinear
		}
	}
}
