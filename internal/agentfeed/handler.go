package agentfeed

//
// WebSocket feed handler
//

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pageperf/pageperf/internal/model"
)

// DefaultMaxMessageSize is the maximum accepted frame size.
const DefaultMaxMessageSize = 1 << 24

// Handler is an [http.Handler] implementing the agent feed endpoint.
// It upgrades each request to a WebSocket connection, runs one
// [PageSession] per connection, and decodes frames until the agent
// goes away.
//
// A malformed or out-of-order frame is logged, counted, and skipped:
// the telemetry channel must never take the page session down.
type Handler struct {
	// Logger is the MANDATORY logger to use.
	Logger model.Logger

	// MaxMessageSize is the MANDATORY maximum accepted frame size.
	MaxMessageSize int64

	// NewSessionID is the MANDATORY factory for session identifiers.
	NewSessionID func() string

	// StartCollection is the MANDATORY hook starting a collection
	// engine observing the given session. The handler invokes it
	// exactly once per connection, right after the hello frame.
	StartCollection func(sessionID string, sess *PageSession)

	// Stats is the MANDATORY counters sink.
	Stats *Stats
}

// NewHandler constructs a [*Handler] with default settings.
func NewHandler(logger model.Logger,
	startCollection func(sessionID string, sess *PageSession)) *Handler {
	return &Handler{
		Logger:         model.ValidLoggerOrDefault(logger),
		MaxMessageSize: DefaultMaxMessageSize,
		NewSessionID: func() string {
			return uuid.Must(uuid.NewRandom()).String()
		},
		StartCollection: startCollection,
		Stats:           &Stats{},
	}
}

var _ http.Handler = &Handler{}

// upgrader configures the WebSocket upgrade. The agent connects from
// arbitrary page origins, so the origin check must accept them all.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already sent an HTTP error to the client.
		h.Logger.Warnf("agentfeed: cannot upgrade connection: %s", err.Error())
		return
	}
	defer conn.Close()
	conn.SetReadLimit(h.MaxMessageSize)

	metricSessionsInflight.Inc()
	defer metricSessionsInflight.Dec()
	h.Stats.SessionsActive.Add(1)
	defer h.Stats.SessionsActive.Add(-1)

	sessionID := h.NewSessionID()
	var sess *PageSession
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			h.Logger.Debugf("agentfeed: session %s: connection closed: %s", sessionID, err.Error())
			break
		}
		sess = h.dispatchFrame(sessionID, sess, data)
	}

	// The socket closing is the page going away. The session makes
	// sure an explicit unload frame and the teardown count once.
	if sess != nil {
		sess.DispatchUnload()
		h.Logger.Infof("agentfeed: session %s: ended", sessionID)
	}
}

// dispatchFrame decodes a single frame and applies it to the session,
// returning the possibly just-created session.
func (h *Handler) dispatchFrame(sessionID string, sess *PageSession, data []byte) *PageSession {
	var frame Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		h.protocolError(sessionID, "unparseable", "cannot unmarshal frame: %s", err.Error())
		return sess
	}

	switch frame.Key {
	case FrameKeySessionHello:
		if sess != nil {
			h.protocolError(sessionID, frame.Key, "duplicate hello")
			return sess
		}
		var hello SessionHello
		if err := json.Unmarshal(frame.Value, &hello); err != nil {
			h.protocolError(sessionID, frame.Key, "cannot unmarshal hello: %s", err.Error())
			return sess
		}
		sess = NewPageSession(&hello)
		metricFramesCount.WithLabelValues(frame.Key, "ok").Inc()
		metricSessionsTotal.Inc()
		h.Stats.SessionsStarted.Add(1)
		h.Logger.Infof("agentfeed: session %s: %s", sessionID, hello.Location)
		h.StartCollection(sessionID, sess)
		return sess

	case FrameKeyPageLoaded:
		if sess == nil {
			h.protocolError(sessionID, frame.Key, "frame before hello")
			return sess
		}
		var loaded PageLoaded
		if err := json.Unmarshal(frame.Value, &loaded); err != nil {
			h.protocolError(sessionID, frame.Key, "cannot unmarshal page.loaded: %s", err.Error())
			return sess
		}
		metricFramesCount.WithLabelValues(frame.Key, "ok").Inc()
		sess.DispatchLoad(&loaded)
		return sess

	case FrameKeyResourcesBatch:
		if sess == nil {
			h.protocolError(sessionID, frame.Key, "frame before hello")
			return sess
		}
		var batch ResourcesBatch
		if err := json.Unmarshal(frame.Value, &batch); err != nil {
			h.protocolError(sessionID, frame.Key, "cannot unmarshal resources.batch: %s", err.Error())
			return sess
		}
		metricFramesCount.WithLabelValues(frame.Key, "ok").Inc()
		metricEntriesCount.Add(float64(len(batch.Entries)))
		h.Stats.EntriesReceived.Add(int64(len(batch.Entries)))
		sess.AddResources(batch.Entries)
		return sess

	case FrameKeyPageUnload:
		if sess == nil {
			h.protocolError(sessionID, frame.Key, "frame before hello")
			return sess
		}
		metricFramesCount.WithLabelValues(frame.Key, "ok").Inc()
		sess.DispatchUnload()
		return sess

	default:
		h.protocolError(sessionID, "unknown", "unknown frame key: %s", frame.Key)
		return sess
	}
}

// protocolError logs and counts a frame we could not apply.
func (h *Handler) protocolError(sessionID, key, format string, v ...interface{}) {
	metricFramesCount.WithLabelValues(key, "protocol_error").Inc()
	h.Stats.ProtocolErrors.Add(1)
	h.Logger.Warnf("agentfeed: session %s: "+format, append([]interface{}{sessionID}, v...)...)
}
