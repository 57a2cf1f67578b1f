package heartbeat

import (
	"context"
	"time"

	"ledstatus-go/bus"
)

var topicConfigHeartbeat = bus.Topic{"config", "heartbeat"}

// Service emits a periodic liveness line so a bench log shows the firmware
// is still scheduling. The interval follows retained config on the bus.
type Service struct{}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfigHeartbeat)
	defer conn.Unsubscribe(cfgSub)

	tick := time.NewTicker(1 * time.Second)
	defer tick.Stop()

	beats := 0
	for {
		select {
		case <-ctx.Done():
			println("[hb] stopping")
			return
		case <-tick.C:
			beats++
			println("[hb] alive, beat", beats)
		case msg := <-cfgSub.Channel():
			m, ok := msg.Payload.(map[string]any)
			if !ok {
				continue
			}
			switch iv := m["interval"].(type) {
			case int:
				tick.Reset(time.Duration(iv) * time.Second)
				println("[hb] interval set to", iv, "seconds")
			case float64:
				tick.Reset(time.Duration(iv) * time.Second)
				println("[hb] interval set to", int(iv), "seconds")
			}
		}
	}
}

// Start the heartbeat service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}
