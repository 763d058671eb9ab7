package ai

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Ticker is anything advanced once per tick.
type Ticker interface {
	Tick()
}

// TickFunc adapts a function to Ticker.
type TickFunc func()

// Tick calls f.
func (f TickFunc) Tick() { f() }

// TickManager calls a Ticker at a fixed interval.
type TickManager struct {
	target   Ticker
	interval time.Duration
	stopCh   chan struct{}
	ticks    atomic.Int64
}

// NewTickManager creates new tick manager
func NewTickManager(target Ticker, interval time.Duration) *TickManager {
	return &TickManager{
		target:   target,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start starts the tick loop (blocks until context is canceled)
func (m *TickManager) Start(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	slog.Info("tick manager started", "interval", m.interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("tick manager stopping", "ticks", m.ticks.Load())
			return ctx.Err()

		case <-m.stopCh:
			slog.Info("tick manager stopped", "ticks", m.ticks.Load())
			return nil

		case <-ticker.C:
			m.target.Tick()
			m.ticks.Add(1)
		}
	}
}

// Stop stops the tick loop
func (m *TickManager) Stop() {
	close(m.stopCh)
}

// Ticks returns number of completed ticks.
func (m *TickManager) Ticks() int64 {
	return m.ticks.Load()
}
