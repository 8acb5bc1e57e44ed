// Package memoryless helps repeated calls to a function be distributed in
// time in a memoryless fashion: the wait between calls is drawn from an
// exponential distribution, clamped into [Min, Max].
//
// Adapted from https://github.com/m-lab/go/commit/df205a2a463b6624de235da6a61b409567b1ed98
// SPDX-License-Identifier: Apache-2.0
package memoryless

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// Config holds the time distribution parameters.
type Config struct {
	// Expected is the expected wait time.
	Expected time.Duration

	// Min is the minimum wait time.
	Min time.Duration

	// Max is the maximum wait time. Zero means no maximum.
	Max time.Duration

	// Once indicates that [Run] should call the function exactly once.
	Once bool
}

// Check validates the configuration.
func (c Config) Check() error {
	if c.Min < 0 || c.Expected < 0 || c.Max < 0 {
		return fmt.Errorf(
			"negative times are not supported: Min(%v), Expected(%v), Max(%v)",
			c.Min, c.Expected, c.Max)
	}
	if c.Min > c.Expected || (c.Max != 0 && c.Expected > c.Max) {
		return fmt.Errorf(
			"the following must be true: Min(%v) <= Expected(%v) <= Max(%v)",
			c.Min, c.Expected, c.Max)
	}
	return nil
}

// waittime draws a wait time from the configured distribution.
func (c Config) waittime() time.Duration {
	wt := time.Duration(rand.ExpFloat64() * float64(c.Expected))
	if wt < c.Min {
		wt = c.Min
	}
	if c.Max != 0 && wt > c.Max {
		wt = c.Max
	}
	return wt
}

// Run calls f, then repeatedly waits a time drawn from the config's
// distribution and calls f again, until the context is done. When the
// config has Once set, f runs exactly once. Run only returns an error
// when the config is invalid.
func Run(ctx context.Context, f func(), c Config) error {
	if err := c.Check(); err != nil {
		return err
	}
	for {
		f()
		if c.Once {
			return nil
		}
		timer := time.NewTimer(c.waittime())
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

// Ticker is like a [time.Ticker] with memoryless intervals. The
// channel is closed once the ticker is stopped or the originating
// context is done, losing all in-flight ticks.
type Ticker struct {
	// C is the channel where ticks are delivered.
	C <-chan time.Time

	cancel context.CancelFunc
}

// Stop stops the ticker and closes its channel.
func (t *Ticker) Stop() {
	t.cancel()
}

// NewTicker creates a [*Ticker] emitting ticks distributed according
// to the given config.
func NewTicker(ctx context.Context, c Config) (*Ticker, error) {
	if err := c.Check(); err != nil {
		return nil, err
	}
	derivedCtx, cancel := context.WithCancel(ctx)
	ch := make(chan time.Time)
	go func() {
		defer close(ch)
		for {
			timer := time.NewTimer(c.waittime())
			select {
			case <-derivedCtx.Done():
				timer.Stop()
				return
			case tick := <-timer.C:
				select {
				case <-derivedCtx.Done():
					return
				case ch <- tick:
				}
			}
		}
	}()
	return &Ticker{C: ch, cancel: cancel}, nil
}

// NewTimer creates a [*time.Timer] firing after a single wait drawn
// from the config's distribution.
func NewTimer(c Config) (*time.Timer, error) {
	if err := c.Check(); err != nil {
		return nil, err
	}
	return time.NewTimer(c.waittime()), nil
}

// AfterFunc waits a time drawn from the config's distribution and then
// calls f in its own goroutine.
func AfterFunc(c Config, f func()) (*time.Timer, error) {
	if err := c.Check(); err != nil {
		return nil, err
	}
	return time.AfterFunc(c.waittime(), f), nil
}
