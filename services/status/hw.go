package status

import "image/color"

// StripWriter writes one whole frame to the addressable strip. A write
// either lands as a unit or fails as a unit; callers never hand over a
// partially built frame. tinygo.org/x/drivers/ws2812 satisfies this on
// MCU builds.
type StripWriter interface {
	WriteColors(buf []color.RGBA) error
}

// PowerPin gates electrical power to the strip. High whenever any pixel
// is lit, low once the strip is fully cleared.
type PowerPin interface {
	Set(high bool)
	Get() bool
}
