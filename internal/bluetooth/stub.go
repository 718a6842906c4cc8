package bluetooth

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// stubBattery is the battery level a fake controller reports on connect.
const stubBattery = 85

// Stub is a development-mode Manager that fabricates controllers instead of
// touching the bluetooth stack.
type Stub struct {
	store     *ControllerStore
	onBattery func(level int)

	mu         sync.Mutex
	state      PairingState
	discovered []Device
	message    string
	connected  string
	latency    float64
	scanCancel context.CancelFunc
}

// NewStub creates a stub manager. onBattery, when non-nil, receives the
// connected controller's battery level; it is how the lightbar's battery
// mode gets a live input in stub mode.
func NewStub(store *ControllerStore, onBattery func(level int)) *Stub {
	return &Stub{
		store:     store,
		onBattery: onBattery,
		state:     StateIdle,
	}
}

func (s *Stub) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	trusted := make([]Device, 0)
	for _, c := range s.store.All() {
		trusted = append(trusted, Device{
			Address:   c.Address,
			Name:      c.DisplayName(),
			Paired:    true,
			Trusted:   true,
			Connected: c.Address == s.connected,
		})
	}

	conn := ConnectionStatus{LatencyMS: s.latency}
	if s.connected != "" {
		conn.Connected = true
		if c, ok := s.store.Get(s.connected); ok {
			conn.Controller = &c
		}
	}

	return Status{
		State:             s.state,
		DiscoveredDevices: append([]Device(nil), s.discovered...),
		TrustedDevices:    trusted,
		Connection:        conn,
		Message:           s.message,
	}
}

// StartScan fakes a discovery run: two controllers appear over the first
// second and the scan winds down by itself after a few more.
func (s *Stub) StartScan(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateScanning {
		return ErrScanInProgress
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.scanCancel = cancel
	s.state = StateScanning
	s.discovered = nil
	s.message = "Scanning for controllers..."

	go s.fakeScan(ctx)
	return nil
}

func (s *Stub) fakeScan(ctx context.Context) {
	appear := []struct {
		after  time.Duration
		device Device
	}{
		{500 * time.Millisecond, Device{Address: "AA:BB:CC:DD:EE:01", Name: "Wireless Controller"}},
		{1200 * time.Millisecond, Device{Address: "AA:BB:CC:DD:EE:02", Name: "DualSense Edge"}},
	}

	start := time.Now()
	for _, a := range appear {
		select {
		case <-ctx.Done():
			return
		case <-time.After(a.after - time.Since(start)):
		}

		s.mu.Lock()
		s.discovered = append(s.discovered, a.device)
		s.message = "Found " + a.device.Name
		s.mu.Unlock()
		log.Debugf("Stub scan discovered %s (%s)", a.device.Name, a.device.Address)
	}

	select {
	case <-ctx.Done():
		return
	case <-time.After(5 * time.Second):
	}
	s.mu.Lock()
	if s.state == StateScanning {
		s.state = StateIdle
		s.message = "Scan finished"
	}
	s.mu.Unlock()
}

func (s *Stub) StopScan(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scanCancel != nil {
		s.scanCancel()
		s.scanCancel = nil
	}
	if s.state == StateScanning {
		s.state = StateIdle
		s.message = "Scan stopped"
	}
	return nil
}

// Pair saves a discovered controller as trusted.
func (s *Stub) Pair(_ context.Context, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.discovered {
		if d.Address == address {
			s.store.Add(address, d.Name)
			s.state = StateIdle
			s.message = "Paired with " + d.Name
			return nil
		}
	}
	return ErrUnknownDevice
}

// Connect marks a saved controller as the connected one and reports its
// battery level.
func (s *Stub) Connect(_ context.Context, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.store.Get(address)
	if !ok {
		return ErrUnknownDevice
	}

	s.connected = address
	s.state = StateConnected
	s.latency = 4.2
	s.message = "Connected to " + c.DisplayName()

	if s.onBattery != nil {
		s.onBattery(stubBattery)
	}
	return nil
}

func (s *Stub) Disconnect(_ context.Context, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connected != address {
		return ErrUnknownDevice
	}
	s.connected = ""
	s.state = StateIdle
	s.latency = 0
	s.message = "Disconnected"
	return nil
}

// Forget drops a controller from storage, disconnecting it first if needed.
func (s *Stub) Forget(_ context.Context, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connected == address {
		s.connected = ""
		s.state = StateIdle
	}
	if !s.store.Remove(address) {
		return ErrUnknownDevice
	}
	return nil
}

func (s *Stub) Rename(address, name string) error {
	if !s.store.Rename(address, name) {
		return ErrUnknownDevice
	}
	return nil
}
