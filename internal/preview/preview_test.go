//go:build !pi

package preview

import (
	"testing"

	"github.com/rosettapad/rosettapad/internal/lightbar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFramePaintsAllLeds(t *testing.T) {
	strip, err := NewStrip()
	require.NoError(t, err)
	defer strip.Close()

	require.NoError(t, strip.WriteFrame(lightbar.Frame{R: 0x80, G: 0x60, B: 0x40}))

	for _, c := range strip.ws.Leds(0) {
		assert.Equal(t, uint32(0x806040), c)
	}
}
