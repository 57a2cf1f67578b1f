package status

import (
	"image/color"
	"time"

	"ledstatus-go/types"
)

// Animator runs the one-shot power-on choreography. It holds exclusive
// ownership of the strip and power gate until Take hands them on.
type Animator struct {
	strip StripWriter
	power PowerPin
	cfg   types.LEDConfig
	frame []color.RGBA
	wait  func(d time.Duration)
}

func NewAnimator(strip StripWriter, power PowerPin, cfg types.LEDConfig) *Animator {
	return &Animator{
		strip: strip,
		power: power,
		cfg:   cfg,
		frame: make([]color.RGBA, cfg.NumPixels),
		wait:  time.Sleep,
	}
}

// Run plays the fixed sequence: an accent wave filling the strip pixel by
// pixel, a full-strip flash, then a blank frame. On return the strip is
// drained and the gate is low, so the next owner starts clean.
func (a *Animator) Run() {
	a.power.Set(true)

	step := time.Duration(a.cfg.BootStepMs) * time.Millisecond
	for i := 0; i < a.cfg.NumPixels; i++ {
		for j := range a.frame {
			if j <= i {
				a.frame[j] = colorBootWave
			} else {
				a.frame[j] = color.RGBA{}
			}
		}
		a.write()
		a.wait(step)
	}

	for j := range a.frame {
		a.frame[j] = colorBootFlash
	}
	a.write()
	a.wait(time.Duration(a.cfg.BootHoldMs) * time.Millisecond)

	for j := range a.frame {
		a.frame[j] = color.RGBA{}
	}
	a.write()
	a.wait(time.Duration(a.cfg.BootClearMs) * time.Millisecond)

	a.power.Set(false)
}

// Take releases the hardware to the next owner, unchanged.
func (a *Animator) Take() (StripWriter, PowerPin) {
	return a.strip, a.power
}

// write is best-effort; a dropped boot frame is cosmetic.
func (a *Animator) write() {
	if err := a.strip.WriteColors(a.frame); err != nil {
		println("[anim] strip write failed:", err.Error())
	}
}
