package progression

import (
	"fmt"
	"log"
	"time"

	"lunabot/pkg/store"

	"github.com/go-co-op/gocron/v2"
)

// Sweeper periodically applies bond decay to users past the inactivity
// window, so relationships cool off even for users who never come back to
// trigger the lazy decay in Touch.
type Sweeper struct {
	store     store.Store
	meter     *Meter
	interval  time.Duration
	scheduler gocron.Scheduler
}

func NewSweeper(s store.Store, m *Meter, interval time.Duration) *Sweeper {
	return &Sweeper{store: s, meter: m, interval: interval}
}

// Start schedules the sweep at the configured interval.
func (sw *Sweeper) Start() error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(sw.interval),
		gocron.NewTask(func() {
			sw.Sweep()
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule bond decay sweep: %w", err)
	}

	sched.Start()
	sw.scheduler = sched
	return nil
}

// Sweep is separated from the schedule so it can run directly.
func (sw *Sweeper) Sweep() {
	doc, err := sw.store.Load()
	if err != nil {
		log.Printf("Error loading store for bond decay sweep: %v", err)
		return
	}

	decayed := 0
	for userID := range doc.Bond {
		applied, err := sw.meter.ApplyDecay(userID)
		if err != nil {
			log.Printf("Error applying bond decay for %s: %v", userID, err)
			continue
		}
		if applied {
			decayed++
		}
	}

	if decayed > 0 {
		log.Printf("Applied bond decay to %d users", decayed)
	}
}

// Stop shuts the scheduler down.
func (sw *Sweeper) Stop() {
	if sw.scheduler != nil {
		if err := sw.scheduler.Shutdown(); err != nil {
			log.Printf("Error shutting down scheduler: %v", err)
		}
	}
}
