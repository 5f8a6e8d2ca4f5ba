package browser

import (
	"context"
	"math/rand"
	"time"
)

// RandomDelay waits for a random duration between min and max milliseconds,
// or until ctx is done.
func RandomDelay(ctx context.Context, min, max int) error {
	duration := time.Duration(min) * time.Millisecond
	if max > min {
		duration = time.Duration(rand.Intn(max-min+1)+min) * time.Millisecond
	}

	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
