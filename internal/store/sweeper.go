package store

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ELpastelAnyCtt/BurnBox/internal/metrics"
)

// Sweeper periodically destroys rooms whose auto-destruct deadline elapsed.
// Expiration is not authorization-gated; a swept room is indistinguishable
// from an explicitly deleted one to subsequent reads.
type Sweeper struct {
	store    *MemoryStore
	interval time.Duration
	logger   zerolog.Logger
}

// NewSweeper creates a sweeper over the given store.
func NewSweeper(store *MemoryStore, interval time.Duration, logger zerolog.Logger) *Sweeper {
	return &Sweeper{store: store, interval: interval, logger: logger}
}

// Run sweeps once per interval until ctx is cancelled.
func (sw *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(sw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			sw.sweepOnce(now)
		}
	}
}

// sweepOnce destroys every room due at now. The store lock is held for the
// whole pass, so a sweep never races a concurrent message post.
func (sw *Sweeper) sweepOnce(now time.Time) {
	for _, room := range sw.store.ExpireDue(now) {
		metrics.RoomsDeleted.WithLabelValues("expired").Inc()
		metrics.ActiveRooms.Dec()

		sw.logger.Info().
			Str("room_id", room.ID).
			Str("name", room.Name).
			Int("lifetime_minutes", room.LifetimeBudget).
			Msg("room auto-destructed")
	}
}
