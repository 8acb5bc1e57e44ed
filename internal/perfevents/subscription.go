package perfevents

//
// Live subscription
//

import (
	"sync"
	"time"
)

// liveSubscription owns the three cancellable resources of the live
// collection phase: the observer registration on the host's push
// source, the page-unload registration, and the duration timer that
// bounds the subscription lifetime. All three are released together,
// exactly once, by stop.
//
// Callbacks must not fire before construction completes: the
// collector installs the registrations first and arms the timer last.
type liveSubscription struct {
	// mu protects the fields below.
	mu sync.Mutex

	// stopped records that stop already ran.
	stopped bool

	// cancelObserver disconnects from the push source. May be nil
	// when the observer registration failed.
	cancelObserver func()

	// cancelUnload removes the page-unload registration.
	cancelUnload func()

	// timer is the duration timer, armed last.
	timer *time.Timer
}

// arm installs the duration timer that stops the subscription after
// ttl. afterFunc is [time.AfterFunc] or a test double. Arming after
// stop already ran does nothing.
func (sub *liveSubscription) arm(afterFunc func(d time.Duration, fn func()) *time.Timer, ttl time.Duration) {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.stopped {
		return
	}
	sub.timer = afterFunc(ttl, sub.stop)
}

// stop disconnects from the push source, removes the unload
// registration and stops the duration timer. The second and
// subsequent calls do nothing: the duration timer and the unload path
// both funnel into this method and must not release twice.
func (sub *liveSubscription) stop() {
	sub.mu.Lock()
	alreadyStopped := sub.stopped
	sub.stopped = true
	cancelObserver := sub.cancelObserver
	cancelUnload := sub.cancelUnload
	timer := sub.timer
	sub.mu.Unlock()
	if alreadyStopped {
		return
	}
	if timer != nil {
		timer.Stop()
	}
	if cancelObserver != nil {
		cancelObserver()
	}
	if cancelUnload != nil {
		cancelUnload()
	}
}
