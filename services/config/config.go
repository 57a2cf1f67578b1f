package config

import (
	"context"
	"errors"

	"ledstatus-go/bus"
	"ledstatus-go/types"
)

// -----------------------------------------------------------------------------
// String constants (live in flash, not RAM)
// -----------------------------------------------------------------------------

const (
	serviceName  = "config"
	configPrefix = "config"
	ctxDeviceKey = "device" // context key used for device ID
)

// EmbeddedConfigLookup allows overriding how configs are resolved.
var EmbeddedConfigLookup = func(device string) (map[string]any, bool) {
	c, ok := embeddedConfigs[device]
	return c, ok
}

// WithDevice places the device ID the publisher should use into ctx.
func WithDevice(ctx context.Context, device string) context.Context {
	return context.WithValue(ctx, ctxDeviceKey, device)
}

// -----------------------------------------------------------------------------
// Config Service
// -----------------------------------------------------------------------------

type ConfigService struct {
	Name string
}

func NewConfigService() *ConfigService {
	return &ConfigService{Name: serviceName}
}

// publishConfig resolves the device's embedded config and publishes each
// top-level key as a retained message under config/<key>.
func (s *ConfigService) publishConfig(ctx context.Context, conn *bus.Connection) error {
	device, _ := ctx.Value(ctxDeviceKey).(string)
	if device == "" {
		return errors.New("missing device ID in context")
	}

	cfg, ok := EmbeddedConfigLookup(device)
	if !ok || len(cfg) == 0 {
		return errors.New("no embedded config for device: " + device)
	}

	for k, v := range cfg {
		conn.Publish(&bus.Message{
			Topic:    bus.T(configPrefix, k),
			Payload:  v,
			Retained: true,
		})
	}
	return nil
}

// Start launches the config publisher in a goroutine.
func (s *ConfigService) Start(ctx context.Context, conn *bus.Connection) {
	go func() {
		if err := s.publishConfig(ctx, conn); err != nil {
			println("[config]", err.Error())
		}
	}()
}

// AwaitLED returns the retained LED configuration, falling back to the
// shipped defaults if none is published before ctx expires.
func AwaitLED(ctx context.Context, conn *bus.Connection) types.LEDConfig {
	sub := conn.Subscribe(bus.T(configPrefix, "led"))
	defer conn.Unsubscribe(sub)

	select {
	case msg := <-sub.Channel():
		if cfg, ok := msg.Payload.(types.LEDConfig); ok {
			return cfg
		}
	case <-ctx.Done():
	}
	println("[config] no led config published, using defaults")
	return types.DefaultLEDConfig()
}
