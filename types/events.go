package types

// ------------------------
// Connectivity
// ------------------------

// ConnType is the active host link of the keyboard.
type ConnType string

const (
	ConnWired    ConnType = "wired"    // USB, host powered
	ConnWireless ConnType = "wireless" // BLE
)

// ConnectionChange is published when the active link switches.
type ConnectionChange struct {
	Type ConnType `json:"type"`
	TS   int64    `json:"ts_ms"`
}

// ------------------------
// Pairing
// ------------------------

// PairingState is the wireless pairing lifecycle of one profile slot.
type PairingState string

const (
	PairingAdvertising PairingState = "advertising"
	PairingConnected   PairingState = "connected"
	PairingNone        PairingState = "none"
)

// PairingChange carries a pairing transition for a profile slot.
type PairingChange struct {
	State   PairingState `json:"state"`
	Profile uint8        `json:"profile"`
	TS      int64        `json:"ts_ms"`
}

// ProfileChange is published when the active pairing slot is switched
// without a pairing transition.
type ProfileChange struct {
	Profile uint8 `json:"profile"`
	TS      int64 `json:"ts_ms"`
}

// ------------------------
// Battery
// ------------------------

// ChargeState distinguishes a plain level sample from charger activity.
type ChargeState string

const (
	ChargeNormal       ChargeState = "normal"
	ChargeCharging     ChargeState = "charging"
	ChargeCharged      ChargeState = "charged"
	ChargeNotAvailable ChargeState = "not_available"
)

// BatteryState is published by the battery sampler. Percent is only
// meaningful for ChargeNormal.
type BatteryState struct {
	State   ChargeState `json:"state"`
	Percent uint8       `json:"percent"` // 0..100
	TS      int64       `json:"ts_ms"`
}

// ------------------------
// Keys
// ------------------------

// KeyEvent is a decoded key action emitted by the key engine. Only
// actions a subscriber recognizes are acted on; everything else is
// ignored.
type KeyEvent struct {
	Action string `json:"action"`
	Row    uint8  `json:"row"`
	Col    uint8  `json:"col"`
	TS     int64  `json:"ts_ms"`
}

// Decoded key actions with a subscriber in this repo.
const (
	ActionBatteryCheck = "battery_check"
)
