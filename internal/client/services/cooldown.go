package services

import (
	"context"
	"sync"
	"time"
)

// Cooldown counts down from a fixed number of steps, one step per tick.
// Resend is allowed once it reaches zero. The ticking goroutine is owned by
// the Cooldown and is gone once Stop returns.
type Cooldown struct {
	steps    int
	interval time.Duration

	// lifeMu serialises Start and Stop.
	lifeMu sync.Mutex

	mu        sync.Mutex
	remaining int
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewCooldown returns a stopped cooldown of steps ticks, each interval long.
func NewCooldown(steps int, interval time.Duration) *Cooldown {
	return &Cooldown{steps: steps, interval: interval}
}

// Start resets the countdown to its full length and begins ticking. A
// running countdown is stopped first.
func (c *Cooldown) Start() {
	c.lifeMu.Lock()
	defer c.lifeMu.Unlock()

	c.stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	c.mu.Lock()
	c.remaining = c.steps
	c.cancel = cancel
	c.done = done
	c.mu.Unlock()

	if c.steps <= 0 {
		cancel()
		close(done)
		return
	}

	go c.run(ctx, done)
}

// Stop halts ticking and waits for the goroutine to exit. The remaining
// count is left as it was. Stopping a stopped cooldown is a no-op.
func (c *Cooldown) Stop() {
	c.lifeMu.Lock()
	defer c.lifeMu.Unlock()

	c.stop()
}

func (c *Cooldown) stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Remaining returns the steps left before resend is allowed.
func (c *Cooldown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

func (c *Cooldown) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if c.tick() == 0 {
				return
			}
		}
	}
}

func (c *Cooldown) tick() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.remaining > 0 {
		c.remaining--
	}
	return c.remaining
}
