package types

// ------------------------
// LED subsystem configuration
// ------------------------

// LEDConfig carries every construction-time parameter of the LED status
// subsystem. Published retained on config/led by the config service.
type LEDConfig struct {
	NumPixels int `json:"num_pixels"`

	// Status controller timing.
	PollIntervalMs    uint32 `json:"poll_interval_ms"`
	ConfirmBlinks     int    `json:"confirm_blinks"`
	ConfirmIntervalMs uint32 `json:"confirm_interval_ms"`

	// Boot animation timing.
	BootStepMs  uint32 `json:"boot_step_ms"`
	BootHoldMs  uint32 `json:"boot_hold_ms"`
	BootClearMs uint32 `json:"boot_clear_ms"`

	// Battery gauge thresholds.
	LowBatteryPct uint8 `json:"low_battery_pct"` // red below this
	FullGaugePct  uint8 `json:"full_gauge_pct"`  // all pixels at or above

	// FullGaugeAtZero selects the rendering of an exactly-empty reading:
	// false lights a single pixel, true lights the whole strip. Field
	// exists because deployed firmware revisions did both.
	FullGaugeAtZero bool `json:"full_gauge_at_zero"`

	// Decoded key action that toggles the battery overlay.
	ShowBatteryAction string `json:"show_battery_action"`
}

// DefaultLEDConfig returns the values the shipping keyboard uses.
func DefaultLEDConfig() LEDConfig {
	return LEDConfig{
		NumPixels:         14,
		PollIntervalMs:    700,
		ConfirmBlinks:     4,
		ConfirmIntervalMs: 500,
		BootStepMs:        100,
		BootHoldMs:        300,
		BootClearMs:       50,
		LowBatteryPct:     30,
		FullGaugePct:      89,
		FullGaugeAtZero:   false,
		ShowBatteryAction: ActionBatteryCheck,
	}
}
