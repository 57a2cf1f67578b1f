package config

import "ledstatus-go/types"

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Keyed by device ID (same value placed in ctx via WithDevice). Values are
// published as-is, one retained message per top-level key.
// -----------------------------------------------------------------------------

var embeddedConfigs = map[string]map[string]any{
	// The shipping 14-pixel wireless board.
	"kb14": {
		"led": types.DefaultLEDConfig(),
		"heartbeat": map[string]any{
			"interval": 2,
		},
	},
	// Host simulator: same LED geometry, chattier heartbeat.
	"sim": {
		"led": types.DefaultLEDConfig(),
		"heartbeat": map[string]any{
			"interval": 10,
		},
	},
}
