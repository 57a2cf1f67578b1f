package status

import (
	"image/color"

	"ledstatus-go/x/mathx"
)

// Indicator palette. Deliberately dim; the strip sits centimetres from
// the user's eyes.
var (
	colorBlink    = color.RGBA{B: 70}
	colorConfirm  = color.RGBA{G: 70}
	colorGaugeOK  = color.RGBA{G: 70}
	colorGaugeLow = color.RGBA{R: 70}

	colorBootWave  = color.RGBA{R: 60, G: 20}
	colorBootFlash = color.RGBA{B: 50}
)

// gaugeCount maps a charge percentage onto lit pixels. Levels at or above
// fullAt light the whole strip; 1..fullAt-1 ramp linearly over 1..n-1
// pixels. An exactly-empty reading is a deployment choice: one pixel as a
// near-empty marker, or the whole strip (fullAtZero).
func gaugeCount(percent uint8, n int, fullAt uint8, fullAtZero bool) int {
	switch {
	case percent == 0:
		if fullAtZero {
			return n
		}
		return 1
	case percent >= fullAt:
		return n
	default:
		return (int(percent)-1)*(n-1)/(int(fullAt)-1) + 1
	}
}

// renderProfile lights the active profile's pixel. The index is clamped
// so an out-of-range slot from upstream can never write past the strip.
func (c *Controller) renderProfile(col color.RGBA) {
	c.power.Set(true)
	for i := range c.frame {
		c.frame[i] = color.RGBA{}
	}
	idx := mathx.Clamp(int(c.currentProfile), 0, c.cfg.NumPixels-1)
	c.frame[idx] = col
	c.write()
	c.ledsOn = true
}

// clearAll blanks the strip and drops the power gate.
func (c *Controller) clearAll() {
	for i := range c.frame {
		c.frame[i] = color.RGBA{}
	}
	c.write()
	c.power.Set(false)
	c.ledsOn = false
}

// showBattery renders the charge gauge from the last known level: red
// under the low threshold, green otherwise.
func (c *Controller) showBattery() {
	c.power.Set(true)
	lit := gaugeCount(c.batteryPercent, c.cfg.NumPixels, c.cfg.FullGaugePct, c.cfg.FullGaugeAtZero)
	col := colorGaugeOK
	if c.batteryPercent < c.cfg.LowBatteryPct {
		col = colorGaugeLow
	}
	for i := range c.frame {
		if i < lit {
			c.frame[i] = col
		} else {
			c.frame[i] = color.RGBA{}
		}
	}
	c.write()
	c.ledsOn = true
	println("[led] battery gauge:", c.batteryPercent, "% ->", lit, "pixels")
}

// write pushes the whole frame. Failures are cosmetic: logged, never
// retried, and tracked state advances as if the write landed.
func (c *Controller) write() {
	if err := c.strip.WriteColors(c.frame); err != nil {
		println("[led] strip write failed:", err.Error())
	}
}
