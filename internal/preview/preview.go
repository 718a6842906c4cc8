// Package preview mirrors rendered lightbar frames onto a short ws2812
// strip attached to the panel host. It is a bench debugging aid: the real
// lightbar lives on the controller and is driven by the adapter process.
package preview

import (
	"github.com/rosettapad/rosettapad/internal/lightbar"
)

const (
	brightness = 64
	ledCount   = 8
)

type wsEngine interface {
	Init() error
	Render() error
	Fini()
	Leds(channel int) []uint32
}

// Strip paints every LED with the frame color. It implements
// lightbar.Sink and is safe to chain behind a MultiSink.
type Strip struct {
	ws wsEngine
}

func (s *Strip) WriteFrame(f lightbar.Frame) error {
	color := uint32(f.R)<<16 | uint32(f.G)<<8 | uint32(f.B)

	leds := s.ws.Leds(0)
	for i := range leds {
		leds[i] = color
	}
	return s.ws.Render()
}

func (s *Strip) Close() {
	s.ws.Fini()
}
