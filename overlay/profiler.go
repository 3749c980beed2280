package overlay

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Profiler captures CPU profiles when the frame rate drops
type Profiler struct {
	mu              sync.Mutex
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	profilesDir     string
	captureDuration time.Duration

	Log *zap.SugaredLogger
}

// NewProfiler creates a profiler writing into dir
func NewProfiler(dir string) (*Profiler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create profile dir: %w", err)
	}
	return &Profiler{
		captureCooldown: 10 * time.Second, // Don't capture more than once every 10 seconds
		profilesDir:     dir,
		captureDuration: 5 * time.Second,
		Log:             zap.NewNop().Sugar(),
	}, nil
}

// CaptureProfile starts a background CPU profile capture
func (p *Profiler) CaptureProfile(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if time.Since(p.lastCaptureTime) < p.captureCooldown {
		return fmt.Errorf("capture on cooldown (last capture was %v ago)", time.Since(p.lastCaptureTime))
	}
	if p.isProfiling {
		return fmt.Errorf("already profiling")
	}

	p.isProfiling = true
	p.lastCaptureTime = time.Now()
	baseName := fmt.Sprintf("fps-drop-%s-%s", time.Now().Format("20060102-150405"), reason)

	// capture off the frame goroutine
	go func() {
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()
		path, err := p.captureCPUProfile(baseName)
		if err != nil {
			p.Log.Errorw("cpu profile failed", "err", err)
			return
		}
		p.logMemStats(path)
	}()
	return nil
}

func (p *Profiler) captureCPUProfile(baseName string) (string, error) {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")

	file, err := os.Create(profilePath)
	if err != nil {
		return "", fmt.Errorf("failed to create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return "", fmt.Errorf("failed to start CPU profile: %w", err)
	}
	time.Sleep(p.captureDuration)
	pprof.StopCPUProfile()
	return profilePath, nil
}

func (p *Profiler) logMemStats(path string) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p.Log.Infow("cpu profile saved",
		"path", path,
		"alloc_kb", m.Alloc/1024,
		"sys_kb", m.Sys/1024,
		"num_gc", m.NumGC,
		"heap_objects", m.HeapObjects)
}

// IsProfiling returns whether a profile capture is currently in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

// Watchdog tracks the frame rate and reports drops
type Watchdog struct {
	fps              float64
	fpsUpdateCounter int
	lastFrame        time.Time
	fpsUpdateTimer   float64
	startTime        time.Time
	lastDropTime     time.Time

	// Threshold is the frame rate considered a drop
	Threshold float64
	// Warmup ignores drops right after start
	Warmup time.Duration
	// Cooldown is the minimum gap between reported drops
	Cooldown time.Duration

	// OnDrop is called with the measured frame rate
	OnDrop func(fps float64)
}

// NewWatchdog creates a watchdog for the target frame rate
func NewWatchdog(target int, now time.Time) *Watchdog {
	return &Watchdog{
		fps:       float64(target),
		lastFrame: now,
		startTime: now,
		Threshold: float64(target) * 0.9,
		Warmup:    3 * time.Second,
		Cooldown:  10 * time.Second,
	}
}

// FPS returns the last measured frame rate
func (w *Watchdog) FPS() float64 { return w.fps }

// Frame records one frame. It returns true when a drop was reported.
func (w *Watchdog) Frame(now time.Time) bool {
	dt := now.Sub(w.lastFrame).Seconds()
	w.lastFrame = now
	w.fpsUpdateTimer += dt
	w.fpsUpdateCounter++

	// Update FPS every 0.5 seconds
	if w.fpsUpdateTimer < 0.5 {
		return false
	}
	w.fps = float64(w.fpsUpdateCounter) / w.fpsUpdateTimer
	w.fpsUpdateCounter = 0
	w.fpsUpdateTimer = 0

	if w.fps >= w.Threshold || now.Sub(w.startTime) < w.Warmup {
		return false
	}
	if !w.lastDropTime.IsZero() && now.Sub(w.lastDropTime) < w.Cooldown {
		return false
	}
	w.lastDropTime = now
	if w.OnDrop != nil {
		w.OnDrop(w.fps)
	}
	return true
}
