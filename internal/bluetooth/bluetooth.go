// Package bluetooth handles controller discovery, pairing and connection.
// The real implementation shells out to bluetoothctl; a stub keeps the rest
// of the panel fully usable on a development machine.
package bluetooth

import (
	"context"
	"errors"
)

var (
	// ErrScanInProgress is returned when a scan is already running.
	ErrScanInProgress = errors.New("bluetooth: scan already in progress")

	// ErrUnknownDevice is returned for operations on an address that is
	// neither discovered nor saved.
	ErrUnknownDevice = errors.New("bluetooth: unknown device")
)

// PairingState describes what the manager is currently doing.
type PairingState string

const (
	StateIdle      PairingState = "idle"
	StateScanning  PairingState = "scanning"
	StatePairing   PairingState = "pairing"
	StateConnected PairingState = "connected"
	StateError     PairingState = "error"
)

// Device is a controller visible over bluetooth.
type Device struct {
	Address   string `json:"address"`
	Name      string `json:"name"`
	Paired    bool   `json:"paired"`
	Connected bool   `json:"connected"`
	Trusted   bool   `json:"trusted"`
}

// ConnectionStatus describes the currently connected controller, if any.
type ConnectionStatus struct {
	Connected  bool             `json:"connected"`
	Controller *SavedController `json:"controller"`
	LatencyMS  float64          `json:"latency_ms"`
}

// Status is the full picture reported to the UI.
type Status struct {
	State             PairingState     `json:"state"`
	DiscoveredDevices []Device         `json:"discovered_devices"`
	TrustedDevices    []Device         `json:"trusted_devices"`
	Connection        ConnectionStatus `json:"connection"`
	Message           string           `json:"message"`
}

// Manager is the discovery/pairing surface consumed by the API layer.
type Manager interface {
	Status() Status
	StartScan(ctx context.Context) error
	StopScan(ctx context.Context) error
	Pair(ctx context.Context, address string) error
	Connect(ctx context.Context, address string) error
	Disconnect(ctx context.Context, address string) error
	Forget(ctx context.Context, address string) error
	Rename(address, name string) error
}
