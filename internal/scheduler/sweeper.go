package scheduler

import (
	"context"
	"log"
	"time"
)

type slotPurger interface {
	PurgeStale(ctx context.Context, retention time.Duration) (int64, error)
}

// Sweeper periodically removes open slots that are too old to be booked.
type Sweeper struct {
	slots     slotPurger
	interval  time.Duration
	retention time.Duration
}

func NewSweeper(slots slotPurger, interval, retention time.Duration) *Sweeper {
	return &Sweeper{
		slots:     slots,
		interval:  interval,
		retention: retention,
	}
}

// Start blocks until ctx is done.
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("[SlotSweeper] started interval=%s retention=%s", s.interval, s.retention)

	for {
		select {
		case <-ctx.Done():
			log.Println("[SlotSweeper] stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Sweeper) tick(ctx context.Context) {
	n, err := s.slots.PurgeStale(ctx, s.retention)
	if err != nil {
		log.Printf("[SlotSweeper] failed to purge stale slots: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[SlotSweeper] purged %d stale slots", n)
	}
}
