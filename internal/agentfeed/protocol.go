// Package agentfeed bridges the in-page agent onto the collection
// engine.
//
// The agent streams frames over a WebSocket connection. Each frame is
// a `{"key": ..., "value": ...}` envelope where the key selects the
// payload type. The [Handler] upgrades connections, decodes frames,
// and maintains one [PageSession] per connection. The session
// implements [model.PerformanceSource], so a collector observes the
// live page exactly like it would observe a synthetic one.
package agentfeed

import (
	"encoding/json"

	"github.com/pageperf/pageperf/internal/model"
)

// Frame keys.
const (
	// FrameKeySessionHello opens the session. It MUST be the first
	// frame on a connection.
	FrameKeySessionHello = "session.hello"

	// FrameKeyPageLoaded reports that the page finished loading and
	// carries the navigation and paint entries.
	FrameKeyPageLoaded = "page.loaded"

	// FrameKeyResourcesBatch pushes freshly observed resource
	// timing entries.
	FrameKeyResourcesBatch = "resources.batch"

	// FrameKeyPageUnload reports that the page is going away. A
	// connection that closes without this frame counts as an
	// unload anyway.
	FrameKeyPageUnload = "page.unload"
)

// Frame is the envelope the agent sends for every message.
type Frame struct {
	// Key identifies the payload type.
	Key string `json:"key"`

	// Value is the payload, decoded according to Key.
	Value json.RawMessage `json:"value"`
}

// SessionHello is the payload of a [FrameKeySessionHello] frame.
type SessionHello struct {
	// Location is the URL of the page being observed.
	Location string `json:"location"`

	// ResourceObserver indicates whether the page can push resource
	// entries as they are added to the performance timeline.
	ResourceObserver bool `json:"resourceObserver"`

	// UserAgent is the browser's user agent string.
	UserAgent string `json:"userAgent"`
}

// PageLoaded is the payload of a [FrameKeyPageLoaded] frame.
type PageLoaded struct {
	// Location is the page URL observed at load time and replaces
	// the hello location when not empty.
	Location string `json:"location"`

	// Navigation contains the page's navigation timing entries.
	Navigation []*model.NavigationTiming `json:"navigation"`

	// Paints contains the page's paint timing entries.
	Paints []*model.PaintTiming `json:"paints"`
}

// ResourcesBatch is the payload of a [FrameKeyResourcesBatch] frame.
type ResourcesBatch struct {
	// Entries contains the freshly observed resource entries in the
	// order in which the page observed them.
	Entries []*model.ResourceTiming `json:"entries"`
}
