package status

import (
	"image/color"
	"sync"
	"time"

	"ledstatus-go/bus"
	"ledstatus-go/types"
)

// fakeStrip records every frame handed to WriteColors.
type fakeStrip struct {
	mu     sync.Mutex
	frames [][]color.RGBA
	err    error
	notify chan []color.RGBA // optional, for loop tests
}

func (s *fakeStrip) WriteColors(buf []color.RGBA) error {
	cp := make([]color.RGBA, len(buf))
	copy(cp, buf)
	s.mu.Lock()
	s.frames = append(s.frames, cp)
	err := s.err
	s.mu.Unlock()
	if s.notify != nil {
		select {
		case s.notify <- cp:
		default:
		}
	}
	return err
}

func (s *fakeStrip) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

func (s *fakeStrip) last() []color.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

func (s *fakeStrip) frame(i int) []color.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames[i]
}

func (s *fakeStrip) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// fakePin records every gate transition.
type fakePin struct {
	mu   sync.Mutex
	high bool
	hist []bool
}

func (p *fakePin) Set(high bool) {
	p.mu.Lock()
	p.high = high
	p.hist = append(p.hist, high)
	p.mu.Unlock()
}

func (p *fakePin) Get() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.high
}

// newTestController wires a controller to fakes with instant waits.
// waits collects every delay the controller would have slept.
func newTestController(cfg types.LEDConfig) (*Controller, *fakeStrip, *fakePin, *[]time.Duration) {
	strip := &fakeStrip{}
	pin := &fakePin{}
	c := NewController(strip, pin, nil, cfg)
	waits := &[]time.Duration{}
	c.wait = func(d time.Duration) { *waits = append(*waits, d) }
	return c, strip, pin, waits
}

func msg(payload any) *bus.Message {
	return &bus.Message{Payload: payload}
}

func allZero(frame []color.RGBA) bool {
	for _, px := range frame {
		if px != (color.RGBA{}) {
			return false
		}
	}
	return true
}

func litCount(frame []color.RGBA) int {
	n := 0
	for _, px := range frame {
		if px != (color.RGBA{}) {
			n++
		}
	}
	return n
}

func onlyPixelLit(frame []color.RGBA, idx int, col color.RGBA) bool {
	for i, px := range frame {
		if i == idx {
			if px != col {
				return false
			}
			continue
		}
		if px != (color.RGBA{}) {
			return false
		}
	}
	return true
}

func defaultTestConfig() types.LEDConfig {
	return types.DefaultLEDConfig()
}
