package status

import (
	"errors"
	"testing"
	"time"

	"ledstatus-go/types"
)

func newTestAnimator(cfg types.LEDConfig) (*Animator, *fakeStrip, *fakePin, *[]time.Duration) {
	strip := &fakeStrip{}
	pin := &fakePin{}
	a := NewAnimator(strip, pin, cfg)
	waits := &[]time.Duration{}
	a.wait = func(d time.Duration) { *waits = append(*waits, d) }
	return a, strip, pin, waits
}

func TestAnimatorChoreography(t *testing.T) {
	cfg := defaultTestConfig()
	a, strip, pin, waits := newTestAnimator(cfg)

	a.Run()

	// N wave frames, one full flash, one drain.
	if got, want := strip.count(), cfg.NumPixels+2; got != want {
		t.Fatalf("wrote %d frames, want %d", got, want)
	}
	for i := 0; i < cfg.NumPixels; i++ {
		f := strip.frame(i)
		for j, px := range f {
			if j <= i && px != colorBootWave {
				t.Fatalf("wave frame %d: pixel %d should be lit", i, j)
			}
			if j > i && !allZero(f[j:j+1]) {
				t.Fatalf("wave frame %d: pixel %d should be dark", i, j)
			}
		}
	}
	flash := strip.frame(cfg.NumPixels)
	if litCount(flash) != cfg.NumPixels || flash[0] != colorBootFlash {
		t.Error("flash frame should light the whole strip in the flash color")
	}
	if !allZero(strip.last()) {
		t.Error("final frame must drain the strip")
	}
	if pin.Get() {
		t.Error("power gate must be low after the animation")
	}
	if len(pin.hist) < 2 || !pin.hist[0] || pin.hist[len(pin.hist)-1] {
		t.Errorf("gate should go high first and low last: %v", pin.hist)
	}

	if got, want := len(*waits), cfg.NumPixels+2; got != want {
		t.Fatalf("slept %d times, want %d", got, want)
	}
	for i := 0; i < cfg.NumPixels; i++ {
		if (*waits)[i] != 100*time.Millisecond {
			t.Errorf("wave step %d delay %v", i, (*waits)[i])
		}
	}
	if (*waits)[cfg.NumPixels] != 300*time.Millisecond {
		t.Errorf("flash hold delay %v", (*waits)[cfg.NumPixels])
	}
	if (*waits)[cfg.NumPixels+1] != 50*time.Millisecond {
		t.Errorf("drain hold delay %v", (*waits)[cfg.NumPixels+1])
	}
}

func TestAnimatorHandsOffHardware(t *testing.T) {
	a, strip, pin, _ := newTestAnimator(defaultTestConfig())
	a.Run()

	s, p := a.Take()
	if s != StripWriter(strip) || p != PowerPin(pin) {
		t.Error("Take must return the exact resources the animator was built with")
	}
}

func TestAnimatorToleratesWriteFailures(t *testing.T) {
	cfg := defaultTestConfig()
	a, strip, pin, _ := newTestAnimator(cfg)
	strip.setErr(errors.New("spi busy"))

	a.Run() // must not panic or bail early

	if got, want := strip.count(), cfg.NumPixels+2; got != want {
		t.Errorf("animation stopped early: %d of %d frames", got, want)
	}
	if pin.Get() {
		t.Error("gate must still end low")
	}
}
