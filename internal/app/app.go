package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/newthinker/pricelog/internal/collector"
	"github.com/newthinker/pricelog/internal/core"
	"github.com/newthinker/pricelog/internal/fetcher"
	"go.uber.org/zap"
)

// DefaultInterval is the pause between the end of one cycle and the start of the next
const DefaultInterval = 30 * time.Second

// App is the scheduler: it drives the orchestrator over all registered collectors
type App struct {
	logger       *zap.Logger
	collectors   *collector.Registry
	orchestrator *fetcher.Orchestrator
	interval     time.Duration

	mu          sync.RWMutex
	running     bool
	cancel      context.CancelFunc
	cycles      int
	lastOutcome []core.Outcome
}

// New creates a new App instance
func New(orchestrator *fetcher.Orchestrator, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &App{
		logger:       logger,
		collectors:   collector.NewRegistry(),
		orchestrator: orchestrator,
		interval:     DefaultInterval,
	}
}

// RegisterCollector adds a collector; polling follows registration order
func (a *App) RegisterCollector(c collector.Collector) error {
	return a.collectors.Register(c)
}

// SetInterval sets the pause between cycles
func (a *App) SetInterval(d time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.interval = d
}

// Start runs a cycle immediately and then keeps running cycles, sleeping
// for the interval after each one finishes. It returns when ctx is done.
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return fmt.Errorf("app already running")
	}
	a.running = true

	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	interval := a.interval
	a.mu.Unlock()

	defer func() {
		cancel()
		a.mu.Lock()
		a.running = false
		a.mu.Unlock()
	}()

	a.logger.Info("price fetcher starting",
		zap.Strings("sources", a.collectors.Names()),
		zap.Duration("interval", interval),
	)

	for {
		a.RunOnce(ctx)

		if ctx.Err() == nil {
			a.logger.Info("fetch cycle completed, waiting", zap.Duration("interval", interval))
		}
		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			a.logger.Info("price fetcher shutting down")
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Stop stops the scheduling loop
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		a.cancel()
	}
}

// RunOnce performs a single cycle over all collectors
func (a *App) RunOnce(ctx context.Context) []core.Outcome {
	outcomes := a.orchestrator.RunCycle(ctx, a.collectors.GetAll())

	a.mu.Lock()
	a.cycles++
	a.lastOutcome = outcomes
	a.mu.Unlock()

	return outcomes
}

// GetStats returns application statistics
func (a *App) GetStats() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()

	last := make(map[string]string, len(a.lastOutcome))
	for _, o := range a.lastOutcome {
		last[o.Source] = string(o.Kind)
	}

	return map[string]any{
		"running":    a.running,
		"collectors": a.collectors.Len(),
		"cycles":     a.cycles,
		"interval":   a.interval,
		"last_cycle": last,
	}
}

// GetCollectors returns all registered collectors.
func (a *App) GetCollectors() []collector.Collector {
	return a.collectors.GetAll()
}
