package lightbar

import (
	"encoding/json"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Frame is one rendered output sample: the lightbar color plus the player
// LED state, so the adapter always receives a complete picture.
type Frame struct {
	R                   int     `json:"r"`
	G                   int     `json:"g"`
	B                   int     `json:"b"`
	PlayerLEDs          int     `json:"player_leds"`
	PlayerLEDBrightness float64 `json:"player_led_brightness"`
}

// Sink receives rendered frames on their way to the hardware adapter.
// Delivery is best-effort: the engine drops a frame whose write fails and
// carries on with the next tick.
type Sink interface {
	WriteFrame(Frame) error
}

// FileSink publishes the latest frame by overwriting a JSON state file that
// the adapter process polls.
type FileSink struct {
	path string
}

// NewFileSink creates the sink, making sure the parent directory exists.
func NewFileSink(path string) (*FileSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &FileSink{path: path}, nil
}

func (s *FileSink) WriteFrame(f Frame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// MultiSink fans each frame out to all sinks. Individual failures are
// logged at debug and do not stop the fan-out.
type MultiSink []Sink

func (m MultiSink) WriteFrame(f Frame) error {
	for _, s := range m {
		if err := s.WriteFrame(f); err != nil {
			log.Debugf("Sink dropped frame: %v", err)
		}
	}
	return nil
}
