package status

import (
	"context"
	"image/color"
	"time"

	"ledstatus-go/bus"
	"ledstatus-go/types"
)

// Controller owns the strip and power gate for the remainder of device
// lifetime and renders connectivity, pairing, and battery state. All of
// its state lives behind one goroutine: Run is the only mutator, fed by
// a single bus subscription and a single ticker, never both at once.
type Controller struct {
	strip StripWriter
	power PowerPin
	conn  *bus.Connection
	cfg   types.LEDConfig

	frame []color.RGBA

	// wait is time.Sleep unless a test swaps it out.
	wait func(d time.Duration)

	shouldBlink      bool
	ledsOn           bool
	currentProfile   uint8
	batteryPercent   uint8
	isShowingBattery bool
	keyHeld          bool
}

// NewController takes ownership of strip and power, normally fresh from
// Animator.Take.
func NewController(strip StripWriter, power PowerPin, conn *bus.Connection, cfg types.LEDConfig) *Controller {
	return &Controller{
		strip: strip,
		power: power,
		conn:  conn,
		cfg:   cfg,
		frame: make([]color.RGBA, cfg.NumPixels),
		wait:  time.Sleep,
		// Start true: the first advertising event can fire while the
		// boot animation still owns the strip, and would otherwise be
		// missed.
		shouldBlink:    true,
		batteryPercent: 100,
	}
}

// Run consumes status events and the render tick until ctx is cancelled.
func (c *Controller) Run(ctx context.Context) {
	sub := c.conn.Subscribe(topicAll())
	defer c.conn.Unsubscribe(sub)

	tick := time.NewTicker(time.Duration(c.cfg.PollIntervalMs) * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			c.clearAll()
			println("[led] controller stopping")
			return
		case msg := <-sub.Channel():
			c.handle(msg)
		case <-tick.C:
			c.tick()
		}
	}
}

// handle runs one state-machine step. Never reentrant: Run is its only
// caller.
func (c *Controller) handle(msg *bus.Message) {
	switch ev := msg.Payload.(type) {
	case types.ConnectionChange:
		c.onConnectionChange(ev)
	case types.PairingChange:
		c.onPairingChange(ev)
	case types.BatteryState:
		c.onBatteryState(ev)
	case types.ProfileChange:
		println("[led] profile changed:", ev.Profile)
		c.currentProfile = ev.Profile
	case types.KeyEvent:
		c.onKeyEvent(ev)
	default:
		// Other traffic under kbd/ is not ours to act on.
	}
}

func (c *Controller) onConnectionChange(ev types.ConnectionChange) {
	switch ev.Type {
	case types.ConnWireless:
		println("[led] wireless link - advertising indicator armed")
		c.shouldBlink = true
	case types.ConnWired:
		println("[led] wired link - advertising indicator off")
		c.shouldBlink = false
		if !c.isShowingBattery {
			c.clearAll()
		}
	}
}

func (c *Controller) onPairingChange(ev types.PairingChange) {
	switch ev.State {
	case types.PairingAdvertising:
		println("[led] advertising, profile", ev.Profile)
		c.currentProfile = ev.Profile
		c.shouldBlink = true
	case types.PairingConnected:
		println("[led] connected, profile", ev.Profile)
		c.currentProfile = ev.Profile
		c.shouldBlink = false
		c.confirmSequence()
	case types.PairingNone:
		println("[led] pairing idle")
		c.shouldBlink = false
		c.clearAll()
	}
}

// confirmSequence acknowledges a completed pairing with a fixed number of
// green blinks on the profile pixel. It deliberately occupies the state
// machine: events arriving meanwhile queue on the subscription and are
// handled after the last blink.
func (c *Controller) confirmSequence() {
	interval := time.Duration(c.cfg.ConfirmIntervalMs) * time.Millisecond
	for i := 0; i < c.cfg.ConfirmBlinks; i++ {
		c.renderProfile(colorConfirm)
		c.wait(interval)
		c.clearAll()
		c.wait(interval)
	}
}

func (c *Controller) onBatteryState(ev types.BatteryState) {
	switch ev.State {
	case types.ChargeNormal:
		c.batteryPercent = ev.Percent
		println("[led] battery:", ev.Percent, "%")
	case types.ChargeCharged:
		c.batteryPercent = 100
		println("[led] battery fully charged")
	case types.ChargeCharging:
		println("[led] battery charging")
	case types.ChargeNotAvailable:
		println("[led] battery not available")
	}
}

func (c *Controller) onKeyEvent(ev types.KeyEvent) {
	if ev.Action != c.cfg.ShowBatteryAction {
		return
	}
	// The key engine reports the same action on press and release; the
	// latch turns that into show/hide.
	if !c.keyHeld {
		println("[led] battery key down - showing gauge")
		c.keyHeld = true
		c.isShowingBattery = true
		c.showBattery()
	} else {
		println("[led] battery key up - hiding gauge")
		c.keyHeld = false
		c.isShowingBattery = false
		c.clearAll()
	}
}

// tick toggles the advertising indicator on the poll period. The battery
// overlay wins while active; shouldBlink is left untouched so the blink
// resumes as soon as the overlay drops.
func (c *Controller) tick() {
	if !c.shouldBlink || c.isShowingBattery {
		return
	}
	if c.ledsOn {
		c.clearAll()
	} else {
		c.renderProfile(colorBlink)
	}
}
