//go:build !pi

package preview

import (
	log "github.com/sirupsen/logrus"
)

type mockEngine struct {
	colors []uint32
}

func (m mockEngine) Init() error {
	return nil
}

func (m mockEngine) Render() error {
	log.Debugf("preview: %06x", m.colors[0])
	return nil
}

func (m mockEngine) Fini() {}

func (m mockEngine) Leds(_ int) []uint32 {
	return m.colors
}

func NewStrip() (*Strip, error) {
	return &Strip{
		ws: mockEngine{
			colors: make([]uint32, ledCount),
		},
	}, nil
}
