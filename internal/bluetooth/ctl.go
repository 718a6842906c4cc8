package bluetooth

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// commandTimeout bounds every bluetoothctl invocation.
const commandTimeout = 10 * time.Second

// Bluetoothctl is the real Manager. It drives the BlueZ stack through the
// bluetoothctl binary, the same way the panel's installer scripts do.
type Bluetoothctl struct {
	store     *ControllerStore
	onBattery func(level int)

	mu         sync.Mutex
	state      PairingState
	discovered []Device
	message    string
	connected  string
	scanCancel context.CancelFunc
}

func NewBluetoothctl(store *ControllerStore, onBattery func(level int)) *Bluetoothctl {
	return &Bluetoothctl{
		store:     store,
		onBattery: onBattery,
		state:     StateIdle,
	}
}

func (b *Bluetoothctl) Status() Status {
	b.mu.Lock()
	defer b.mu.Unlock()

	trusted := make([]Device, 0)
	for _, c := range b.store.All() {
		trusted = append(trusted, Device{
			Address:   c.Address,
			Name:      c.DisplayName(),
			Paired:    true,
			Trusted:   true,
			Connected: c.Address == b.connected,
		})
	}

	conn := ConnectionStatus{}
	if b.connected != "" {
		conn.Connected = true
		if c, ok := b.store.Get(b.connected); ok {
			conn.Controller = &c
		}
	}

	return Status{
		State:             b.state,
		DiscoveredDevices: append([]Device(nil), b.discovered...),
		TrustedDevices:    trusted,
		Connection:        conn,
		Message:           b.message,
	}
}

// StartScan turns discovery on and polls the device list until the scan is
// stopped or times itself out.
func (b *Bluetoothctl) StartScan(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateScanning {
		return ErrScanInProgress
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.scanCancel = cancel
	b.state = StateScanning
	b.discovered = nil
	b.message = "Scanning for controllers..."

	go b.scanLoop(ctx)
	return nil
}

func (b *Bluetoothctl) scanLoop(ctx context.Context) {
	defer func() {
		b.mu.Lock()
		if b.state == StateScanning {
			b.state = StateIdle
			b.message = "Scan finished"
		}
		b.mu.Unlock()
	}()

	if _, err := b.run(ctx, "--timeout", "15", "scan", "on"); err != nil {
		log.Warnf("bluetoothctl scan failed: %v", err)
		return
	}

	out, err := b.run(ctx, "devices")
	if err != nil {
		log.Warnf("bluetoothctl devices failed: %v", err)
		return
	}

	b.mu.Lock()
	b.discovered = parseDevices(out)
	b.message = fmt.Sprintf("Found %d controller(s)", len(b.discovered))
	b.mu.Unlock()
}

func (b *Bluetoothctl) StopScan(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.scanCancel != nil {
		b.scanCancel()
		b.scanCancel = nil
	}
	if b.state == StateScanning {
		b.state = StateIdle
		b.message = "Scan stopped"
	}
	return nil
}

// Pair pairs and trusts the device, then remembers it.
func (b *Bluetoothctl) Pair(ctx context.Context, address string) error {
	b.setState(StatePairing, "Pairing with "+address)

	if _, err := b.run(ctx, "pair", address); err != nil {
		b.setState(StateError, "Pairing failed")
		return fmt.Errorf("pairing %s: %w", address, err)
	}
	if _, err := b.run(ctx, "trust", address); err != nil {
		log.Warnf("Could not trust %s: %v", address, err)
	}

	name := address
	b.mu.Lock()
	for _, d := range b.discovered {
		if d.Address == address {
			name = d.Name
		}
	}
	b.mu.Unlock()

	b.store.Add(address, name)
	b.setState(StateIdle, "Paired with "+name)
	return nil
}

func (b *Bluetoothctl) Connect(ctx context.Context, address string) error {
	if _, ok := b.store.Get(address); !ok {
		return ErrUnknownDevice
	}
	if _, err := b.run(ctx, "connect", address); err != nil {
		b.setState(StateError, "Connection failed")
		return fmt.Errorf("connecting %s: %w", address, err)
	}

	b.mu.Lock()
	b.connected = address
	b.state = StateConnected
	b.message = "Connected"
	b.mu.Unlock()

	// bluetoothctl has no portable battery query; assume full until the
	// adapter reports otherwise over the HTTP API.
	if b.onBattery != nil {
		b.onBattery(100)
	}
	return nil
}

func (b *Bluetoothctl) Disconnect(ctx context.Context, address string) error {
	if _, err := b.run(ctx, "disconnect", address); err != nil {
		return fmt.Errorf("disconnecting %s: %w", address, err)
	}

	b.mu.Lock()
	if b.connected == address {
		b.connected = ""
	}
	b.state = StateIdle
	b.message = "Disconnected"
	b.mu.Unlock()
	return nil
}

func (b *Bluetoothctl) Forget(ctx context.Context, address string) error {
	if _, err := b.run(ctx, "remove", address); err != nil {
		log.Warnf("Could not remove %s from the adapter: %v", address, err)
	}

	b.mu.Lock()
	if b.connected == address {
		b.connected = ""
		b.state = StateIdle
	}
	b.mu.Unlock()

	if !b.store.Remove(address) {
		return ErrUnknownDevice
	}
	return nil
}

func (b *Bluetoothctl) Rename(address, name string) error {
	if !b.store.Rename(address, name) {
		return ErrUnknownDevice
	}
	return nil
}

func (b *Bluetoothctl) setState(state PairingState, message string) {
	b.mu.Lock()
	b.state = state
	b.message = message
	b.mu.Unlock()
}

func (b *Bluetoothctl) run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "bluetoothctl", args...).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("bluetoothctl %s: %w (%s)", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

// parseDevices extracts controllers from `bluetoothctl devices` output.
// Lines look like "Device AA:BB:CC:DD:EE:FF Wireless Controller".
func parseDevices(out string) []Device {
	var devices []Device
	for _, line := range strings.Split(out, "\n") {
		fields := strings.SplitN(strings.TrimSpace(line), " ", 3)
		if len(fields) != 3 || fields[0] != "Device" {
			continue
		}
		name := fields[2]
		if !strings.Contains(strings.ToLower(name), "controller") &&
			!strings.Contains(strings.ToLower(name), "dualsense") {
			continue
		}
		devices = append(devices, Device{Address: fields[1], Name: name})
	}
	return devices
}
