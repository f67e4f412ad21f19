// Package controller drives the simulation in real time. It owns the current
// snapshot, the playing flag, the surfaced alerts and the impact samples, and
// advances the engine from an injected scheduler.
package controller

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/outbreak-forecast/internal/alerts"
	"github.com/iwvelando/outbreak-forecast/internal/clock"
	"github.com/iwvelando/outbreak-forecast/internal/dashboard"
	"github.com/iwvelando/outbreak-forecast/internal/simulation"
	"github.com/iwvelando/outbreak-forecast/pkg/constants"
	"github.com/iwvelando/outbreak-forecast/pkg/validation"
	"go.uber.org/zap"
)

var (
	// ErrRunComplete is returned when the run already reached its last day.
	ErrRunComplete = errors.New("simulation already reached its final day")
	// ErrPlaying is returned for manual steps while the run is playing.
	ErrPlaying = errors.New("simulation is playing")
)

// Options configures a Controller. Zero values select the defaults.
type Options struct {
	MaxDay       int
	Speed        float64
	BaseInterval time.Duration
	Engine       *simulation.Engine
	Catalog      alerts.Catalog
	Scheduler    clock.Scheduler
}

// Listener receives a snapshot after every change.
type Listener func(Snapshot)

// Controller is the single writer of simulation state. All methods are safe
// for concurrent use.
type Controller struct {
	logger       *zap.Logger
	engine       *simulation.Engine
	scheduler    clock.Scheduler
	maxDay       int
	baseInterval time.Duration

	mu         sync.Mutex
	state      simulation.State
	playing    bool
	speed      float64
	feed       *alerts.Feed
	samples    []dashboard.ImpactSample
	runID      string
	generation uint64
	version    uint64
	timer      clock.Timer
	listeners  []Listener
}

// New creates a controller positioned at the initial state.
func New(logger *zap.Logger, opts Options) (*Controller, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxDay == 0 {
		opts.MaxDay = constants.DefaultMaxDay
	}
	if err := validation.ValidateMaxDay(opts.MaxDay); err != nil {
		return nil, err
	}
	if opts.Speed == 0 {
		opts.Speed = constants.DefaultSpeed
	}
	if err := validation.ValidateSpeed(opts.Speed); err != nil {
		return nil, err
	}
	if opts.BaseInterval <= 0 {
		opts.BaseInterval = constants.DefaultBaseInterval
	}
	if opts.Engine == nil {
		opts.Engine = simulation.NewEngine(logger, simulation.OnsetExact)
	}
	if opts.Scheduler == nil {
		opts.Scheduler = clock.System()
	}

	return &Controller{
		logger:       logger,
		engine:       opts.Engine,
		scheduler:    opts.Scheduler,
		maxDay:       opts.MaxDay,
		baseInterval: opts.BaseInterval,
		state:        simulation.InitialState(),
		speed:        opts.Speed,
		feed:         alerts.NewFeed(opts.Catalog),
		runID:        uuid.NewString(),
	}, nil
}

// Subscribe registers a listener invoked after every state change. Listeners
// run outside the controller lock and must not block for long.
func (c *Controller) Subscribe(listener Listener) {
	if listener == nil {
		return
	}
	c.mu.Lock()
	c.listeners = append(c.listeners, listener)
	c.mu.Unlock()
}

// Interval returns the delay between steps at the current speed.
func (c *Controller) Interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.intervalLocked()
}

func (c *Controller) intervalLocked() time.Duration {
	return time.Duration(float64(c.baseInterval) / c.speed)
}

// Play starts advancing the simulation. Calling Play while playing is a
// no-op.
func (c *Controller) Play() error {
	c.mu.Lock()
	if c.playing {
		c.mu.Unlock()
		return nil
	}
	if c.state.Day >= c.maxDay {
		c.mu.Unlock()
		return ErrRunComplete
	}
	c.playing = true
	c.scheduleLocked()
	snap := c.changedLocked()
	c.mu.Unlock()

	c.logger.Info("simulation playing",
		zap.String("op", "controller.Play"),
		zap.String("run", snap.RunID),
		zap.Int("day", snap.Day),
		zap.Float64("speed", snap.Speed),
	)
	c.notify(snap)
	return nil
}

// Pause stops advancing without altering the current state.
func (c *Controller) Pause() {
	c.mu.Lock()
	if !c.playing {
		c.mu.Unlock()
		return
	}
	c.playing = false
	c.cancelLocked()
	snap := c.changedLocked()
	c.mu.Unlock()

	c.logger.Info("simulation paused",
		zap.String("op", "controller.Pause"),
		zap.String("run", snap.RunID),
		zap.Int("day", snap.Day),
	)
	c.notify(snap)
}

// Reset cancels any pending step and restores the initial state, clearing
// alerts, impact samples and the playing flag in one move.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.cancelLocked()
	c.playing = false
	c.state = simulation.InitialState()
	c.feed.Reset()
	c.samples = nil
	c.runID = uuid.NewString()
	snap := c.changedLocked()
	c.mu.Unlock()

	c.logger.Info("simulation reset",
		zap.String("op", "controller.Reset"),
		zap.String("run", snap.RunID),
	)
	c.notify(snap)
}

// SetSpeed changes the speed multiplier. A pending step is rescheduled with
// the new interval.
func (c *Controller) SetSpeed(speed float64) error {
	if err := validation.ValidateSpeed(speed); err != nil {
		return err
	}

	c.mu.Lock()
	c.speed = speed
	if c.playing {
		c.cancelLocked()
		c.scheduleLocked()
	}
	snap := c.changedLocked()
	c.mu.Unlock()

	c.logger.Debug("simulation speed changed",
		zap.String("op", "controller.SetSpeed"),
		zap.Float64("speed", speed),
	)
	c.notify(snap)
	return nil
}

// StepOnce advances a paused simulation by a single day.
func (c *Controller) StepOnce() (Snapshot, error) {
	c.mu.Lock()
	if c.playing {
		c.mu.Unlock()
		return Snapshot{}, ErrPlaying
	}
	if c.state.Day >= c.maxDay {
		c.mu.Unlock()
		return Snapshot{}, ErrRunComplete
	}
	c.advanceLocked()
	snap := c.changedLocked()
	c.mu.Unlock()

	c.notify(snap)
	return snap, nil
}

// State returns a copy of the current snapshot.
func (c *Controller) State() simulation.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// changedLocked records a state change and returns the resulting snapshot.
func (c *Controller) changedLocked() Snapshot {
	c.version++
	return c.snapshotLocked()
}

// Snapshot returns a deep copy of everything the dashboard renders.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// scheduleLocked arms the next firing. Each firing carries the generation it
// was scheduled under; cancelLocked bumps the generation so a callback that
// already left the timer queue does nothing.
func (c *Controller) scheduleLocked() {
	gen := c.generation
	c.timer = c.scheduler.AfterFunc(c.intervalLocked(), func() {
		c.fire(gen)
	})
}

func (c *Controller) cancelLocked() {
	c.generation++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || !c.playing {
		c.mu.Unlock()
		c.logger.Debug("discarding stale simulation step",
			zap.String("op", "controller.fire"),
		)
		return
	}
	c.timer = nil
	c.advanceLocked()

	completed := c.state.Day >= c.maxDay
	if completed {
		c.playing = false
	} else {
		c.scheduleLocked()
	}
	snap := c.changedLocked()
	c.mu.Unlock()

	if completed {
		c.logger.Info("simulation complete",
			zap.String("op", "controller.fire"),
			zap.String("run", snap.RunID),
			zap.Int("day", snap.Day),
			zap.Int("totalCases", snap.Summary.TotalCases),
		)
	}
	c.notify(snap)
}

// advanceLocked applies exactly one step, surfaces the new day's alerts and
// records one impact sample.
func (c *Controller) advanceLocked() {
	from := c.state
	transition := c.engine.Step(from)
	c.state = transition.State

	surfaced := c.feed.Surface(c.state.Day)
	c.samples = append(c.samples, dashboard.NewImpactSample(from, transition))

	c.logger.Debug("simulation advanced",
		zap.String("op", "controller.advance"),
		zap.Int("day", c.state.Day),
		zap.Int("totalCases", c.state.TotalCases()),
		zap.Int("predictedCases", transition.PredictedCases),
		zap.Int("alerts", len(surfaced)),
	)
}

func (c *Controller) notify(snap Snapshot) {
	c.mu.Lock()
	listeners := append([]Listener(nil), c.listeners...)
	c.mu.Unlock()

	for _, listener := range listeners {
		listener(snap)
	}
}
