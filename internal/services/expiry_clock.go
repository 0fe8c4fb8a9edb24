package services

import (
	"context"
	"sync"
	"time"
)

// ticker is the part of time.Ticker the expiry clock needs.
type ticker interface {
	Chan() <-chan time.Time
	Stop()
}

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) Chan() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()                  { t.t.Stop() }

// expiryClock holds the "now" reference used for the registration countdown.
// It only moves forward when Run observes a tick.
type expiryClock struct {
	mu       sync.RWMutex
	now      time.Time
	interval time.Duration

	clockNow  func() time.Time
	newTicker func(time.Duration) ticker
}

func NewExpiryClock(interval time.Duration) *expiryClock {
	if interval <= 0 {
		interval = time.Hour
	}
	c := &expiryClock{
		interval: interval,
		clockNow: time.Now,
		newTicker: func(d time.Duration) ticker {
			return timeTicker{t: time.NewTicker(d)}
		},
	}
	c.now = c.clockNow()
	return c
}

func (c *expiryClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Run refreshes the reference on every tick until ctx is done.
func (c *expiryClock) Run(ctx context.Context) {
	t := c.newTicker(c.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.Chan():
			c.refresh()
		}
	}
}

func (c *expiryClock) refresh() {
	now := c.clockNow()
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}
