package snow

import (
	"errors"

	"go.uber.org/zap"
)

var (
	// ErrNoSurface means the host has no drawing context; the simulator will not start
	ErrNoSurface = errors.New("snow: no drawing surface")

	// ErrNoScheduler means there is no way to request the next frame
	ErrNoScheduler = errors.New("snow: no frame scheduler")
)

// Simulator owns the particle field for one surface.
// All methods must be called from the frame goroutine; hosts post resize
// events through the same Scheduler/FrameQueue used for ticks.
type Simulator struct {
	config    SimulationConfig
	surface   Surface
	scheduler Scheduler
	rng       Rand

	size      SurfaceSize
	particles []Particle
	running   bool
	stopped   bool
	frames    uint64

	Log *zap.SugaredLogger
}

// NewSimulator creates a simulator. A nil rng uses a clock-seeded source.
func NewSimulator(config SimulationConfig, surface Surface, scheduler Scheduler, rng Rand) *Simulator {
	if rng == nil {
		rng = NewEntropyRand()
	}
	return &Simulator{
		config:    config,
		surface:   surface,
		scheduler: scheduler,
		rng:       rng,
		Log:       zap.NewNop().Sugar(),
	}
}

// Start measures the surface, populates the field and schedules the first tick.
func (s *Simulator) Start() error {
	if s.surface == nil {
		return ErrNoSurface
	}
	if s.scheduler == nil {
		return ErrNoScheduler
	}
	if s.running || s.stopped {
		return nil
	}

	s.size = MeasureSurface(s.surface)
	s.particles = Populate(s.config, s.size, s.rng)
	s.running = true
	s.Log.Infow("snow started",
		"particles", len(s.particles),
		"speed", s.config.SpeedMultiplier,
		"size", s.config.SizeRange,
		"width", s.size.Width,
		"height", s.size.Height)

	s.scheduler.Schedule(s.Tick)
	return nil
}

// Tick advances and renders every particle, then asks for the next frame.
func (s *Simulator) Tick() {
	if !s.running {
		return
	}
	for i := range s.particles {
		s.particles[i] = Advance(s.particles[i], s.config, s.size, s.rng)
	}
	Render(s.surface, s.particles)
	s.frames++

	if s.running {
		s.scheduler.Schedule(s.Tick)
	}
}

// Resize re-measures the surface and replaces the whole particle field
// using the original configuration.
func (s *Simulator) Resize() {
	if s.stopped || s.surface == nil {
		return
	}
	s.size = MeasureSurface(s.surface)
	s.particles = Populate(s.config, s.size, s.rng)
	s.Log.Debugw("snow resized", "width", s.size.Width, "height", s.size.Height, "particles", len(s.particles))
}

// Stop ends the loop. It is one-shot; a stopped simulator never restarts.
func (s *Simulator) Stop() {
	if s.stopped {
		return
	}
	s.running = false
	s.stopped = true
	s.Log.Infow("snow stopped", "frames", s.frames)
}

// Running reports whether ticks are still being scheduled
func (s *Simulator) Running() bool { return s.running }

// Config returns the configuration the simulator was built with
func (s *Simulator) Config() SimulationConfig { return s.config }

// Size returns the last measured surface size
func (s *Simulator) Size() SurfaceSize { return s.size }

// Particles returns the live particle slice. Callers must not keep it across ticks.
func (s *Simulator) Particles() []Particle { return s.particles }

// Frames returns how many ticks have run
func (s *Simulator) Frames() uint64 { return s.frames }
