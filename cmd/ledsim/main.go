// Command ledsim runs the LED status subsystem on a development host:
// the strip is drawn as a line of terminal blocks and stdin takes the
// debug-console commands a board would take over UART.
package main

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"ledstatus-go/bus"
	"ledstatus-go/services/config"
	"ledstatus-go/services/console"
	"ledstatus-go/services/status"
)

// termStrip renders each frame as one line of colored blocks.
type termStrip struct {
	mu sync.Mutex
}

func (s *termStrip) WriteColors(buf []color.RGBA) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sb strings.Builder
	sb.WriteString("strip |")
	for _, px := range buf {
		if px == (color.RGBA{}) {
			sb.WriteByte('.')
			continue
		}
		// The palette is dim for eyes next to the hardware; scale it up
		// for a terminal.
		fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm█\x1b[0m", scale(px.R), scale(px.G), scale(px.B))
	}
	sb.WriteByte('|')
	fmt.Println(sb.String())
	return nil
}

func scale(v uint8) int {
	out := int(v) * 3
	if out > 255 {
		out = 255
	}
	return out
}

// termPin logs gate transitions instead of driving a GPIO.
type termPin struct {
	mu   sync.Mutex
	high bool
}

func (p *termPin) Set(high bool) {
	p.mu.Lock()
	changed := p.high != high
	p.high = high
	p.mu.Unlock()
	if changed {
		fmt.Println("gate  ", map[bool]string{true: "HIGH", false: "low"}[high])
	}
}

func (p *termPin) Get() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.high
}

func main() {
	ctx, stop := signal.NotifyContext(config.WithDevice(context.Background(), "sim"), os.Interrupt)
	defer stop()

	b := bus.NewBus(16)

	config.NewConfigService().Start(ctx, b.NewConnection("config"))

	cfgCtx, cancel := context.WithTimeout(ctx, time.Second)
	cfg := config.AwaitLED(cfgCtx, b.NewConnection("led-config"))
	cancel()

	console.New(os.Stdin).Start(ctx, b.NewConnection("console"))

	fmt.Println("ledsim: type 'help' for commands, ctrl-c to quit")

	strip := &termStrip{}
	gate := &termPin{}

	anim := status.NewAnimator(strip, gate, cfg)
	anim.Run()

	s, g := anim.Take()
	status.NewController(s, g, b.NewConnection("led"), cfg).Run(ctx)
}
