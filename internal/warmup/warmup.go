package warmup

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/baditaflorin/go_absorbing_walk/internal/ports"
)

// Config defines configuration for warming up the system before
// latency-sensitive use: it exercises the simulator step loop, the
// estimator worker pool and the outcome buffers so first real calls do not
// pay allocation and scheduler ramp-up costs.
type Config struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultConfig returns the default warmup configuration.
func DefaultConfig() Config {
	return Config{
		Concurrency: runtime.NumCPU(),
		Iterations:  100,
		Duration:    5 * time.Second,
		ForceGC:     true,
	}
}

// Manager handles system warmup operations.
type Manager struct {
	logger     ports.Logger
	simulators []ports.WalkSimulator
	estimators []ports.AbsorptionEstimator
	config     Config
}

// NewManager creates a new warmup manager.
func NewManager(logger ports.Logger, config Config) *Manager {
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterSimulator adds a walk simulator to be warmed up.
func (wm *Manager) RegisterSimulator(sim ports.WalkSimulator) {
	wm.simulators = append(wm.simulators, sim)
}

// RegisterEstimator adds an absorption estimator to be warmed up.
func (wm *Manager) RegisterEstimator(est ports.AbsorptionEstimator) {
	wm.estimators = append(wm.estimators, est)
}

// WarmUp runs the warmup process for all registered components.
func (wm *Manager) WarmUp(ctx context.Context) {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.simulators)+len(wm.estimators),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	var warmupCtx context.Context
	var cancel context.CancelFunc
	if wm.config.Duration > 0 {
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	} else {
		warmupCtx = ctx
	}

	wm.warmUpSimulators(warmupCtx)
	wm.warmUpEstimators(warmupCtx)

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("System warmup completed",
		"duration", time.Since(startTime),
	)
}

// warmUpSimulators replays short walks across a spread of seeds.
func (wm *Manager) warmUpSimulators(ctx context.Context) {
	if len(wm.simulators) == 0 {
		return
	}

	wm.logger.Debug("Warming up simulators", "count", len(wm.simulators))

	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func(routineID int) {
			defer wg.Done()

			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}

				for _, sim := range wm.simulators {
					_, _ = sim.Walk(ctx, int64(routineID*wm.config.Iterations+j))
				}
			}
		}(i)
	}

	wg.Wait()
}

// warmUpEstimators runs pilot distributions; the duration cap keeps the
// total work bounded for estimators configured with large walk counts.
func (wm *Manager) warmUpEstimators(ctx context.Context) {
	if len(wm.estimators) == 0 {
		return
	}

	wm.logger.Debug("Warming up estimators", "count", len(wm.estimators))

	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func(routineID int) {
			defer wg.Done()

			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}

				for _, est := range wm.estimators {
					_, _ = est.Distribution(ctx)
				}
			}
		}(i)
	}

	wg.Wait()
}
