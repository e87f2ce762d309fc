package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/magpress/magauth/internal/auth/store"
)

// HousekeepingService periodically evicts expired refresh-token records.
// Eviction is a storage bound, not a correctness requirement: expired
// records are kept for Retention past their expiry so a late replay of a
// rotated token still trips reuse detection.
type HousekeepingService struct {
	Store     store.Store
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service. Non-positive
// interval defaults to 1 hour, non-positive retention to 24 hours.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval, retention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	if retention <= 0 {
		retention = 24 * time.Hour
	}
	return &HousekeepingService{
		Store:     st,
		Logger:    logger,
		Interval:  interval,
		Retention: retention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop to shut down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping started", "interval", s.Interval, "retention", s.Retention)
}

// Stop shuts down the worker, blocking until in-progress cleanup finishes.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// cleanup deletes refresh tokens that expired before the retention cutoff.
func (s *HousekeepingService) cleanup() {
	ctx := context.Background()
	cutoff := time.Now().UTC().Add(-s.Retention)

	if err := s.Store.RefreshTokens().DeleteExpiredRefreshTokens(ctx, cutoff); err != nil {
		s.Logger.Error("failed to evict expired refresh tokens", "error", err)
		return
	}
	s.Logger.Debug("evicted expired refresh tokens", "cutoff", cutoff)
}
