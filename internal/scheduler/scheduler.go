package scheduler

import (
	"context"
	"log"
	"time"
)

type Task func(ctx context.Context) error

// Every runs task immediately, then on every tick until the context ends.
// Runs are sequential: a tick that fires while the previous run is still
// going is simply the next iteration, never a concurrent one.
func Every(ctx context.Context, interval time.Duration, name string, task Task) {
	run := func() {
		if err := task(ctx); err != nil {
			log.Printf("[%s] error: %v", name, err)
		}
	}

	run()

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			run()
		}
	}
}
