package agentfeed

//
// Per-connection page session
//

import (
	"sync"

	"github.com/pageperf/pageperf/internal/model"
)

// PageSession is the performance timeline of a single page view fed by
// the agent. It accumulates every pushed resource entry into an
// append-only list and fans the load, unload, and observer signals out
// to the registered callbacks.
//
// The session never invokes a callback while holding its own mutex, so
// callbacks may freely query the session or cancel registrations.
// Construct with [NewPageSession].
type PageSession struct {
	// capability records whether the page can push resource entries.
	capability bool

	// entries is the append-only list of resource entries. The list
	// grows monotonically and never drops entries.
	entries []*model.ResourceTiming

	// loadCallbacks holds the pending one-shot load callbacks.
	loadCallbacks []func()

	// loaded records that the load signal was dispatched.
	loaded bool

	// location is the page URL.
	location string

	// mu guards every field of this struct.
	mu sync.Mutex

	// navigation holds the navigation entries reported at load time.
	navigation []*model.NavigationTiming

	// nextID numbers cancellable registrations.
	nextID int64

	// observers maps registration IDs to resource observers.
	observers map[int64]func(entries []*model.ResourceTiming)

	// paints holds the paint entries reported at load time.
	paints []*model.PaintTiming

	// unloadCallbacks maps registration IDs to unload callbacks.
	unloadCallbacks map[int64]func()

	// unloaded records that the unload signal was dispatched.
	unloaded bool

	// userAgent is the browser's user agent string.
	userAgent string
}

// NewPageSession creates a [*PageSession] from the hello frame that
// opened the connection.
func NewPageSession(hello *SessionHello) *PageSession {
	return &PageSession{
		capability:      hello.ResourceObserver,
		entries:         nil,
		loadCallbacks:   nil,
		loaded:          false,
		location:        hello.Location,
		mu:              sync.Mutex{},
		navigation:      nil,
		nextID:          0,
		observers:       make(map[int64]func(entries []*model.ResourceTiming)),
		paints:          nil,
		unloadCallbacks: make(map[int64]func()),
		unloaded:        false,
		userAgent:       hello.UserAgent,
	}
}

var _ model.PerformanceSource = &PageSession{}

// UserAgent returns the browser's user agent string.
func (ps *PageSession) UserAgent() string {
	defer ps.mu.Unlock()
	ps.mu.Lock()
	return ps.userAgent
}

// SupportsResourceObserver implements model.PerformanceSource.
func (ps *PageSession) SupportsResourceObserver() bool {
	defer ps.mu.Unlock()
	ps.mu.Lock()
	return ps.capability
}

// LocationURL implements model.PerformanceSource.
func (ps *PageSession) LocationURL() string {
	defer ps.mu.Unlock()
	ps.mu.Lock()
	return ps.location
}

// NavigationEntries implements model.PerformanceSource.
func (ps *PageSession) NavigationEntries() []*model.NavigationTiming {
	defer ps.mu.Unlock()
	ps.mu.Lock()
	return append([]*model.NavigationTiming{}, ps.navigation...)
}

// PaintEntries implements model.PerformanceSource.
func (ps *PageSession) PaintEntries() []*model.PaintTiming {
	defer ps.mu.Unlock()
	ps.mu.Lock()
	return append([]*model.PaintTiming{}, ps.paints...)
}

// ResourceEntries implements model.PerformanceSource. The returned
// slice is a snapshot of the append-only list, oldest first.
func (ps *PageSession) ResourceEntries() []*model.ResourceTiming {
	defer ps.mu.Unlock()
	ps.mu.Lock()
	return append([]*model.ResourceTiming{}, ps.entries...)
}

// OnLoad implements model.PerformanceSource. The callback runs once.
// Registering after the load signal already fired invokes the callback
// immediately, like a listener checking the document ready state.
func (ps *PageSession) OnLoad(callback func()) {
	ps.mu.Lock()
	if ps.loaded {
		ps.mu.Unlock()
		callback()
		return
	}
	ps.loadCallbacks = append(ps.loadCallbacks, callback)
	ps.mu.Unlock()
}

// OnUnload implements model.PerformanceSource.
func (ps *PageSession) OnUnload(callback func()) (cancel func()) {
	ps.mu.Lock()
	if ps.unloaded {
		ps.mu.Unlock()
		return func() {}
	}
	id := ps.nextID
	ps.nextID++
	ps.unloadCallbacks[id] = callback
	ps.mu.Unlock()
	return func() {
		defer ps.mu.Unlock()
		ps.mu.Lock()
		delete(ps.unloadCallbacks, id)
	}
}

// ObserveResources implements model.PerformanceSource.
func (ps *PageSession) ObserveResources(
	callback func(entries []*model.ResourceTiming)) (cancel func(), ok bool) {
	ps.mu.Lock()
	if !ps.capability {
		ps.mu.Unlock()
		return nil, false
	}
	id := ps.nextID
	ps.nextID++
	ps.observers[id] = callback
	ps.mu.Unlock()
	cancel = func() {
		defer ps.mu.Unlock()
		ps.mu.Lock()
		delete(ps.observers, id)
	}
	return cancel, true
}

// DispatchLoad records the page-loaded payload and fires the pending
// load callbacks. Only the first call dispatches.
func (ps *PageSession) DispatchLoad(payload *PageLoaded) {
	ps.mu.Lock()
	if ps.loaded {
		ps.mu.Unlock()
		return
	}
	ps.loaded = true
	ps.navigation = payload.Navigation
	ps.paints = payload.Paints
	if payload.Location != "" {
		ps.location = payload.Location
	}
	callbacks := ps.loadCallbacks
	ps.loadCallbacks = nil
	ps.mu.Unlock()
	for _, callback := range callbacks {
		callback()
	}
}

// AddResources appends freshly observed entries to the timeline and
// notifies the registered observers.
func (ps *PageSession) AddResources(entries []*model.ResourceTiming) {
	if len(entries) <= 0 {
		return
	}
	ps.mu.Lock()
	ps.entries = append(ps.entries, entries...)
	observers := make([]func(entries []*model.ResourceTiming), 0, len(ps.observers))
	for _, observer := range ps.observers {
		observers = append(observers, observer)
	}
	ps.mu.Unlock()
	for _, observer := range observers {
		observer(entries)
	}
}

// DispatchUnload fires the registered unload callbacks. Only the first
// call dispatches: the connection teardown and an explicit unload
// frame must not both count.
func (ps *PageSession) DispatchUnload() {
	ps.mu.Lock()
	if ps.unloaded {
		ps.mu.Unlock()
		return
	}
	ps.unloaded = true
	callbacks := make([]func(), 0, len(ps.unloadCallbacks))
	for _, callback := range ps.unloadCallbacks {
		callbacks = append(callbacks, callback)
	}
	ps.unloadCallbacks = make(map[int64]func())
	ps.mu.Unlock()
	for _, callback := range callbacks {
		callback()
	}
}
