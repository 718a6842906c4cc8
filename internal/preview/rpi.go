//go:build pi

package preview

import (
	ws "github.com/rpi-ws281x/rpi-ws281x-go"
)

// NewStrip opens the ws2812 strip on the default PWM channel.
func NewStrip() (*Strip, error) {
	opt := ws.DefaultOptions
	opt.Channels[0].Brightness = brightness
	opt.Channels[0].LedCount = ledCount

	dev, err := ws.MakeWS2811(&opt)
	if err != nil {
		return nil, err
	}
	if err := dev.Init(); err != nil {
		return nil, err
	}

	return &Strip{ws: dev}, nil
}
