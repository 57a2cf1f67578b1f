//go:build rp2040

// Command kb-led is the on-board entry point for the LED status
// subsystem: boot animation first, then the status controller owns the
// strip for the life of the device. Status events come over the bus; a
// UART debug console can inject them during bring-up.
package main

import (
	"context"
	"machine"
	"time"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/ws2812"

	"ledstatus-go/bus"
	"ledstatus-go/services/config"
	"ledstatus-go/services/console"
	"ledstatus-go/services/heartbeat"
	"ledstatus-go/services/status"
)

const (
	stripDataPin  = machine.GPIO16
	stripPowerPin = machine.GPIO17
)

// uartReader adapts the async UART to the console's io.Reader.
type uartReader struct {
	ctx context.Context
	u   *uartx.UART
}

func (r uartReader) Read(p []byte) (int, error) { return r.u.RecvSomeContext(r.ctx, p) }

// gatePin adapts a machine.Pin to the controller's power-gate contract.
type gatePin struct{ p machine.Pin }

func (g gatePin) Set(high bool) {
	if high {
		g.p.High()
	} else {
		g.p.Low()
	}
}
func (g gatePin) Get() bool { return g.p.Get() }

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("[main] boot")

	ctx := config.WithDevice(context.Background(), "kb14")
	b := bus.NewBus(16)

	config.NewConfigService().Start(ctx, b.NewConnection("config"))

	cfgCtx, cancel := context.WithTimeout(ctx, time.Second)
	cfg := config.AwaitLED(cfgCtx, b.NewConnection("led-config"))
	cancel()

	_ = (&heartbeat.Service{}).Start(ctx, b.NewConnection("hb"))

	// Debug console on UART0. On a production build the wireless stack,
	// battery sampler, and key engine publish the same topics.
	_ = uartx.UART0.Configure(uartx.UARTConfig{
		BaudRate: 115200,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
	console.New(uartReader{ctx: ctx, u: uartx.UART0}).Start(ctx, b.NewConnection("console"))

	gate := gatePin{p: stripPowerPin}
	gate.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	stripDataPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	strip := ws2812.New(stripDataPin)

	anim := status.NewAnimator(strip, gate, cfg)
	anim.Run()

	s, g := anim.Take()
	status.NewController(s, g, b.NewConnection("led"), cfg).Run(ctx)
}
