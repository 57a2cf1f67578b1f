// config/config_test.go
package config

import (
	"context"
	"testing"
	"time"

	"ledstatus-go/bus"
	"ledstatus-go/types"
)

func TestConfig_PublishEmbedded_RetainedPerKey(t *testing.T) {
	// Override lookup for this test.
	oldLookup := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(device string) (map[string]any, bool) {
		if device != "kb14" {
			return nil, false
		}
		return map[string]any{
			"led":       types.DefaultLEDConfig(),
			"heartbeat": map[string]any{"interval": 2},
		}, true
	}
	t.Cleanup(func() { EmbeddedConfigLookup = oldLookup })

	b := bus.NewBus(16)
	conn := b.NewConnection("test-config")
	svc := NewConfigService()

	svc.Start(WithDevice(context.Background(), "kb14"), conn)

	// Subscribe after a beat; retained messages must still arrive.
	sub := conn.Subscribe(bus.Topic{configPrefix, "#"})

	got := map[string]any{}
	deadline := time.Now().Add(600 * time.Millisecond)
	for len(got) < 2 && time.Now().Before(deadline) {
		select {
		case m := <-sub.Channel():
			if m.Topic.Len() != 2 {
				t.Fatalf("unexpected topic length: %#v", m.Topic)
			}
			key, ok := m.Topic.At(1).(string)
			if !ok {
				t.Fatalf("topic[1] type %T, want string", m.Topic.At(1))
			}
			if !m.Retained {
				t.Errorf("config %q not retained", key)
			}
			got[key] = m.Payload
		case <-time.After(20 * time.Millisecond):
		}
	}

	led, ok := got["led"].(types.LEDConfig)
	if !ok {
		t.Fatalf("led config missing or wrong type: %#v", got["led"])
	}
	if led.NumPixels != 14 || led.PollIntervalMs != 700 {
		t.Errorf("unexpected led defaults: %+v", led)
	}
	if _, ok := got["heartbeat"]; !ok {
		t.Error("heartbeat config missing")
	}
}

func TestConfig_UnknownDevice(t *testing.T) {
	b := bus.NewBus(4)
	conn := b.NewConnection("test-config")
	svc := NewConfigService()

	if err := svc.publishConfig(WithDevice(context.Background(), "nope"), conn); err == nil {
		t.Fatal("expected error for unknown device")
	}
	if err := svc.publishConfig(context.Background(), conn); err == nil {
		t.Fatal("expected error for missing device ID")
	}
}

func TestAwaitLED_FallsBackToDefaults(t *testing.T) {
	b := bus.NewBus(4)
	conn := b.NewConnection("led")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	cfg := AwaitLED(ctx, conn)
	if cfg.NumPixels != 14 {
		t.Errorf("expected default config, got %+v", cfg)
	}
}

func TestAwaitLED_PicksUpRetained(t *testing.T) {
	b := bus.NewBus(4)
	pub := b.NewConnection("config")

	want := types.DefaultLEDConfig()
	want.NumPixels = 8
	pub.Publish(&bus.Message{Topic: bus.T("config", "led"), Payload: want, Retained: true})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	cfg := AwaitLED(ctx, b.NewConnection("led"))
	if cfg.NumPixels != 8 {
		t.Errorf("expected retained config with 8 pixels, got %+v", cfg)
	}
}
