package bluetooth

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStub(t *testing.T) *Stub {
	t.Helper()
	store := NewControllerStore(filepath.Join(t.TempDir(), "controllers.json"))
	return NewStub(store, nil)
}

func TestStubScanLifecycle(t *testing.T) {
	s := testStub(t)
	ctx := context.Background()

	require.NoError(t, s.StartScan(ctx))
	assert.Equal(t, StateScanning, s.Status().State)

	// A second scan while one is running is refused.
	assert.ErrorIs(t, s.StartScan(ctx), ErrScanInProgress)

	// Fake controllers appear shortly after the scan starts.
	require.Eventually(t, func() bool {
		return len(s.Status().DiscoveredDevices) >= 1
	}, 3*time.Second, 20*time.Millisecond)

	require.NoError(t, s.StopScan(ctx))
	assert.Equal(t, StateIdle, s.Status().State)
}

func TestStubPairConnectFlow(t *testing.T) {
	s := testStub(t)
	ctx := context.Background()

	require.NoError(t, s.StartScan(ctx))
	require.Eventually(t, func() bool {
		return len(s.Status().DiscoveredDevices) >= 1
	}, 3*time.Second, 20*time.Millisecond)
	require.NoError(t, s.StopScan(ctx))

	addr := s.Status().DiscoveredDevices[0].Address
	require.NoError(t, s.Pair(ctx, addr))

	status := s.Status()
	require.Len(t, status.TrustedDevices, 1)
	assert.True(t, status.TrustedDevices[0].Paired)

	require.NoError(t, s.Connect(ctx, addr))
	status = s.Status()
	assert.Equal(t, StateConnected, status.State)
	assert.True(t, status.Connection.Connected)
	require.NotNil(t, status.Connection.Controller)
	assert.Equal(t, addr, status.Connection.Controller.Address)

	require.NoError(t, s.Disconnect(ctx, addr))
	assert.False(t, s.Status().Connection.Connected)
}

func TestStubConnectReportsBattery(t *testing.T) {
	store := NewControllerStore(filepath.Join(t.TempDir(), "controllers.json"))
	store.Add("AA:BB:CC:DD:EE:01", "Wireless Controller")

	var reported int
	s := NewStub(store, func(level int) { reported = level })

	require.NoError(t, s.Connect(context.Background(), "AA:BB:CC:DD:EE:01"))
	assert.Equal(t, stubBattery, reported)
}

func TestStubUnknownAddresses(t *testing.T) {
	s := testStub(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.Pair(ctx, "00:00:00:00:00:00"), ErrUnknownDevice)
	assert.ErrorIs(t, s.Connect(ctx, "00:00:00:00:00:00"), ErrUnknownDevice)
	assert.ErrorIs(t, s.Forget(ctx, "00:00:00:00:00:00"), ErrUnknownDevice)
	assert.ErrorIs(t, s.Rename("00:00:00:00:00:00", "x"), ErrUnknownDevice)
}

func TestControllerStorePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "controllers.json")

	store := NewControllerStore(path)
	store.Add("AA:BB:CC:DD:EE:01", "Wireless Controller")
	require.True(t, store.Rename("AA:BB:CC:DD:EE:01", "Couch Pad"))

	reloaded := NewControllerStore(path)
	c, ok := reloaded.Get("AA:BB:CC:DD:EE:01")
	require.True(t, ok)
	assert.Equal(t, "Wireless Controller", c.Name)
	assert.Equal(t, "Couch Pad", c.DisplayName())
}

func TestControllerStoreMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "controllers.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	store := NewControllerStore(path)
	assert.Empty(t, store.All())

	// Still usable after the bad load.
	store.Add("AA:BB:CC:DD:EE:02", "DualSense Edge")
	assert.Len(t, store.All(), 1)
}

func TestParseDevices(t *testing.T) {
	out := `Device AA:BB:CC:DD:EE:01 Wireless Controller
Device 11:22:33:44:55:66 JBL Flip 5
Device AA:BB:CC:DD:EE:02 DualSense Edge
garbage line`

	devices := parseDevices(out)
	require.Len(t, devices, 2)
	assert.Equal(t, "AA:BB:CC:DD:EE:01", devices[0].Address)
	assert.Equal(t, "DualSense Edge", devices[1].Name)
}
