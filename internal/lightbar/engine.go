package lightbar

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
)

// tickInterval is the render loop period, targeting 60 frames per second.
const tickInterval = 16 * time.Millisecond

// State is a snapshot of the engine as reported to callers.
type State struct {
	Config  Config `json:"config"`
	Battery int    `json:"battery"`
	Running bool   `json:"running"`
}

// Engine owns the live lightbar configuration and drives at most one render
// task at a time. Apply cancels and drains the previous task before starting
// the next, so the sink never sees two writers.
type Engine struct {
	registry *Registry
	sink     Sink

	mu     sync.Mutex
	cfg    Config
	cancel context.CancelFunc
	done   chan struct{}

	battery atomic.Int32
	tasks   atomic.Int32
}

// NewEngine creates an engine rendering through the given sink. The battery
// reading starts at 100 until a caller reports otherwise.
func NewEngine(registry *Registry, sink Sink) *Engine {
	e := &Engine{
		registry: registry,
		sink:     sink,
		cfg:      DefaultConfig(),
	}
	e.battery.Store(100)
	return e
}

// Apply replaces the active configuration. Off and static modes render a
// single frame immediately; every other mode starts a render task.
func (e *Engine) Apply(cfg Config) error {
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopTask()
	e.cfg = cfg

	switch cfg.Mode {
	case ModeOff, ModeStatic:
		e.write(renderFrame(cfg, 0, int(e.battery.Load()), e.registry))
	default:
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		e.cancel = cancel
		e.done = done
		go e.run(ctx, cfg, done)
	}

	log.Debugf("Applied lightbar config in %s mode", cfg.Mode)
	return nil
}

// SetBattery updates the battery reading used by battery mode. It takes
// effect on the next tick without restarting the render task.
func (e *Engine) SetBattery(level int) {
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}
	e.battery.Store(int32(level))
}

// Stop cancels any running render task and blanks the lightbar.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopTask()
	e.write(Frame{})
	log.Debug("Lightbar stopped")
}

// State reports the current configuration, battery level and whether a
// render task is running.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return State{
		Config:  e.cfg.clone(),
		Battery: int(e.battery.Load()),
		Running: e.cancel != nil,
	}
}

// stopTask cancels the running render task and blocks until it has fully
// terminated. Callers hold e.mu.
func (e *Engine) stopTask() {
	if e.cancel == nil {
		return
	}
	e.cancel()
	<-e.done
	e.cancel = nil
	e.done = nil
}

// run is the render task. It recomputes elapsed time from a monotonic start
// timestamp every tick and terminates only on cancellation.
func (e *Engine) run(ctx context.Context, cfg Config, done chan struct{}) {
	defer close(done)

	e.tasks.Add(1)
	defer e.tasks.Add(-1)

	log.Debugf("Render task started in %s mode", cfg.Mode)
	start := time.Now()
	tick := time.NewTicker(tickInterval)
	defer tick.Stop()

	for {
		e.step(cfg, time.Since(start).Milliseconds())

		select {
		case <-ctx.Done():
			log.Debug("Render task stopped")
			return
		case <-tick.C:
		}
	}
}

// step renders and writes a single frame. The loop's availability is the
// point of the engine, so an unexpected panic in mode math is logged and
// the loop keeps ticking.
func (e *Engine) step(cfg Config, elapsedMS int64) {
	defer func() {
		if r := recover(); r != nil {
			log.Warnf("Render tick failed: %v", r)
		}
	}()

	e.write(renderFrame(cfg, elapsedMS, int(e.battery.Load()), e.registry))
}

// write forwards a frame to the sink, dropping it on failure. The animation
// is cosmetic and must never fail the caller that triggered it.
func (e *Engine) write(f Frame) {
	if err := e.sink.WriteFrame(f); err != nil {
		log.Debugf("Dropping frame: %v", err)
	}
}
