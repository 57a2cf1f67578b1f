package console

import (
	"bufio"
	"context"
	"io"
	"strconv"

	"github.com/google/shlex"

	"ledstatus-go/bus"
	"ledstatus-go/errcode"
	"ledstatus-go/services/status"
	"ledstatus-go/types"
	"ledstatus-go/x/timex"
)

// Service reads command lines from a serial port (or stdin on the host)
// and publishes the matching keyboard status events. During bring-up it
// stands in for the wireless stack, the battery sampler, and the key
// engine, which publish the same topics on a real board.
type Service struct {
	r io.Reader
}

func New(r io.Reader) *Service { return &Service{r: r} }

// Start launches the reader loop in a goroutine.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) {
	go s.loop(ctx, conn)
}

func (s *Service) loop(ctx context.Context, conn *bus.Connection) {
	sc := bufio.NewScanner(s.r)
	for sc.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := sc.Text()
		if line == "" {
			continue
		}
		if err := Dispatch(conn, line); err != nil {
			println("[console]", string(errcode.Of(err)), "-", line)
		}
	}
	println("[console] input closed")
}

// Dispatch parses one command line and publishes the event it names.
func Dispatch(conn *bus.Connection, line string) error {
	args, err := shlex.Split(line)
	if err != nil {
		return &errcode.E{C: errcode.InvalidCommand, Op: "split", Err: err}
	}
	if len(args) == 0 {
		return nil
	}

	now := timex.NowMs()
	switch args[0] {
	case "wired":
		conn.Publish(conn.NewMessage(status.TopicConnection(),
			types.ConnectionChange{Type: types.ConnWired, TS: now}, false))
	case "wireless":
		conn.Publish(conn.NewMessage(status.TopicConnection(),
			types.ConnectionChange{Type: types.ConnWireless, TS: now}, false))
	case "adv":
		p, err := profileArg(args)
		if err != nil {
			return err
		}
		conn.Publish(conn.NewMessage(status.TopicPairing(),
			types.PairingChange{State: types.PairingAdvertising, Profile: p, TS: now}, false))
	case "conn":
		p, err := profileArg(args)
		if err != nil {
			return err
		}
		conn.Publish(conn.NewMessage(status.TopicPairing(),
			types.PairingChange{State: types.PairingConnected, Profile: p, TS: now}, false))
	case "none":
		conn.Publish(conn.NewMessage(status.TopicPairing(),
			types.PairingChange{State: types.PairingNone, TS: now}, false))
	case "bat":
		p, err := profileArg(args) // same 0..255 parse, range-checked below
		if err != nil {
			return err
		}
		if p > 100 {
			return errcode.InvalidParams
		}
		conn.Publish(conn.NewMessage(status.TopicBattery(),
			types.BatteryState{State: types.ChargeNormal, Percent: p, TS: now}, false))
	case "charging":
		conn.Publish(conn.NewMessage(status.TopicBattery(),
			types.BatteryState{State: types.ChargeCharging, TS: now}, false))
	case "charged":
		conn.Publish(conn.NewMessage(status.TopicBattery(),
			types.BatteryState{State: types.ChargeCharged, TS: now}, false))
	case "nobat":
		conn.Publish(conn.NewMessage(status.TopicBattery(),
			types.BatteryState{State: types.ChargeNotAvailable, TS: now}, false))
	case "profile":
		p, err := profileArg(args)
		if err != nil {
			return err
		}
		conn.Publish(conn.NewMessage(status.TopicProfile(),
			types.ProfileChange{Profile: p, TS: now}, false))
	case "key":
		action := types.ActionBatteryCheck
		if len(args) > 1 {
			action = args[1]
		}
		conn.Publish(conn.NewMessage(status.TopicKey(),
			types.KeyEvent{Action: action, TS: now}, false))
	case "help":
		printHelp()
	default:
		return errcode.InvalidCommand
	}
	return nil
}

func profileArg(args []string) (uint8, error) {
	if len(args) < 2 {
		return 0, errcode.InvalidParams
	}
	v, err := strconv.ParseUint(args[1], 10, 8)
	if err != nil {
		return 0, &errcode.E{C: errcode.InvalidParams, Op: args[0], Err: err}
	}
	return uint8(v), nil
}

func printHelp() {
	println("commands:")
	println("  wired | wireless          link type")
	println("  adv N | conn N | none     pairing state (profile N)")
	println("  bat N                     battery level percent")
	println("  charging | charged | nobat")
	println("  profile N                 switch pairing slot")
	println("  key [action]              key event (default battery_check)")
}
