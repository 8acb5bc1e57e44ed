package perfevents

import (
	"testing"
	"time"
)

func TestLiveSubscription(t *testing.T) {
	t.Run("stop releases the three resources exactly once", func(t *testing.T) {
		var (
			observerCancels int
			unloadCancels   int
		)
		sub := &liveSubscription{
			cancelObserver: func() {
				observerCancels++
			},
			cancelUnload: func() {
				unloadCancels++
			},
		}
		var timerArmed time.Duration
		sub.arm(func(d time.Duration, fn func()) *time.Timer {
			timerArmed = d
			return time.NewTimer(time.Hour)
		}, DefaultSubscriptionTTL)
		if timerArmed != DefaultSubscriptionTTL {
			t.Fatal("unexpected timer duration", timerArmed)
		}
		sub.stop()
		sub.stop()
		sub.stop()
		if observerCancels != 1 {
			t.Fatal("unexpected observer cancels", observerCancels)
		}
		if unloadCancels != 1 {
			t.Fatal("unexpected unload cancels", unloadCancels)
		}
	})

	t.Run("the timer callback stops the subscription", func(t *testing.T) {
		var (
			observerCancels int
			unloadCancels   int
			timerFn         func()
		)
		sub := &liveSubscription{
			cancelObserver: func() {
				observerCancels++
			},
			cancelUnload: func() {
				unloadCancels++
			},
		}
		sub.arm(func(d time.Duration, fn func()) *time.Timer {
			timerFn = fn
			return time.NewTimer(time.Hour)
		}, DefaultSubscriptionTTL)
		timerFn()
		if observerCancels != 1 || unloadCancels != 1 {
			t.Fatal("expected both registrations cancelled")
		}
	})

	t.Run("stop tolerates a missing observer registration", func(t *testing.T) {
		var unloadCancels int
		sub := &liveSubscription{
			cancelUnload: func() {
				unloadCancels++
			},
		}
		sub.stop()
		if unloadCancels != 1 {
			t.Fatal("unexpected unload cancels", unloadCancels)
		}
	})

	t.Run("arming after stop does nothing", func(t *testing.T) {
		sub := &liveSubscription{}
		sub.stop()
		var armed bool
		sub.arm(func(d time.Duration, fn func()) *time.Timer {
			armed = true
			return time.NewTimer(time.Hour)
		}, DefaultSubscriptionTTL)
		if armed {
			t.Fatal("expected no timer")
		}
	})
}
