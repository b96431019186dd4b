// Package realtime implements the tracking channel port over a websocket
// connection to the store's realtime endpoint. Frames are JSON objects of
// the form {"event": <name>, "data": <payload>}.
package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"localshop/internal/core/domain/model/kernel"
	"localshop/internal/core/domain/model/order"
	"localshop/internal/core/ports"
	"localshop/internal/pkg/errs"

	"github.com/gorilla/websocket"
)

// Event names of the realtime protocol. They are part of the wire contract
// with the store and must match it exactly.
const (
	eventJoinOrderRoom   = "joinOrderRoom"
	eventUpdateLocation  = "updateLocation"
	eventLocationUpdated = "locationUpdated"
	eventStatusUpdated   = "statusUpdated"
)

// eventBuffer bounds the per-session event queue. The consumer reads at UI
// pace; when it falls behind, older updates are superseded anyway, so
// overflowing frames are dropped rather than blocking the read loop.
const eventBuffer = 16

// frame is the wire envelope of every realtime message.
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// outFrame is the envelope for messages the client sends.
type outFrame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// locationPayload carries a position on the wire.
type locationPayload struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// updateLocationPayload is the body of an updateLocation frame.
type updateLocationPayload struct {
	OrderID  string          `json:"orderId"`
	AgentID  string          `json:"agentId"`
	Location locationPayload `json:"location"`
}

// locationUpdatedPayload is the body of a locationUpdated frame.
type locationUpdatedPayload struct {
	Location locationPayload `json:"location"`
}

// statusUpdatedPayload is the body of a statusUpdated frame.
type statusUpdatedPayload struct {
	Status string `json:"status"`
}

// Channel joins order tracking rooms over a websocket connection. It holds
// at most one live session at a time; joining while a session is active
// fails, and a new Join is possible once the session ends.
type Channel struct {
	url    string
	dialer *websocket.Dialer
	logger *slog.Logger

	mu     sync.Mutex
	active *session
}

// NewChannel creates a channel for the realtime endpoint at url
// (ws:// or wss://).
func NewChannel(url string, logger *slog.Logger) (*Channel, error) {
	if url == "" {
		return nil, errs.NewValueIsRequiredError("url")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Channel{
		url:    url,
		dialer: websocket.DefaultDialer,
		logger: logger,
	}, nil
}

// Join connects to the realtime endpoint and enters the order's room.
func (c *Channel) Join(ctx context.Context, orderID kernel.ID) (ports.TrackingSession, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.active != nil {
		c.mu.Unlock()
		return nil, errs.NewChannelError("join: a session is already active")
	}
	c.mu.Unlock()

	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return nil, errs.NewChannelErrorWithCause("connect", err)
	}

	s := &session{
		conn:          conn,
		joinedOrderID: orderID.String(),
		events:        make(chan ports.TrackingEvent, eventBuffer),
		logger:        c.logger.With("orderID", orderID.String()),
		onEnd:         func() { c.release() },
	}

	// joinOrderRoom carries the bare order id as its data
	if err := s.write(outFrame{Event: eventJoinOrderRoom, Data: orderID.String()}); err != nil {
		_ = conn.Close()
		return nil, errs.NewChannelErrorWithCause("join room", err)
	}

	c.mu.Lock()
	if c.active != nil {
		c.mu.Unlock()
		_ = conn.Close()
		return nil, errs.NewChannelError("join: a session is already active")
	}
	c.active = s
	c.mu.Unlock()

	go s.readLoop()
	return s, nil
}

func (c *Channel) release() {
	c.mu.Lock()
	c.active = nil
	c.mu.Unlock()
}

// session is one live room membership over the websocket connection.
type session struct {
	conn          *websocket.Conn
	joinedOrderID string
	events        chan ports.TrackingEvent
	logger        *slog.Logger
	onEnd         func()

	writeMu sync.Mutex
	endOnce sync.Once
}

// Events returns the session's update stream. It is closed when the
// session ends.
func (s *session) Events() <-chan ports.TrackingEvent {
	return s.events
}

// PublishLocation broadcasts the agent's position to the room.
func (s *session) PublishLocation(_ context.Context, agentID kernel.ID, location kernel.GeoPoint) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	err := s.write(outFrame{
		Event: eventUpdateLocation,
		Data: updateLocationPayload{
			OrderID:  s.joinedOrderID,
			AgentID:  agentID.String(),
			Location: locationPayload{Lat: location.Lat(), Lng: location.Lng()},
		},
	})
	if err != nil {
		return errs.NewChannelErrorWithCause("publish location", err)
	}
	return nil
}

// Leave ends the session and closes the connection. The read loop notices
// the closed connection and closes the event stream.
func (s *session) Leave() error {
	var err error
	s.endOnce.Do(func() {
		s.writeMu.Lock()
		_ = s.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		s.writeMu.Unlock()
		err = s.conn.Close()
	})
	return err
}

func (s *session) write(f outFrame) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(f)
}

// readLoop decodes incoming frames into tracking events until the
// connection ends. Frames the consumer cannot keep up with are dropped;
// stale positions are superseded by the next update anyway.
func (s *session) readLoop() {
	defer func() {
		close(s.events)
		s.onEnd()
		_ = s.conn.Close()
	}()

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		var f frame
		if err := json.Unmarshal(raw, &f); err != nil {
			s.logger.Warn("dropping undecodable frame", "error", err)
			continue
		}

		event, ok := s.decode(f)
		if !ok {
			continue
		}

		select {
		case s.events <- event:
		default:
			s.logger.Debug("dropping event, consumer is behind", "event", f.Event)
		}
	}
}

func (s *session) decode(f frame) (ports.TrackingEvent, bool) {
	switch f.Event {
	case eventLocationUpdated:
		var payload locationUpdatedPayload
		if err := json.Unmarshal(f.Data, &payload); err != nil {
			s.logger.Warn("dropping malformed location update", "error", err)
			return nil, false
		}
		point, err := kernel.NewGeoPoint(payload.Location.Lat, payload.Location.Lng)
		if err != nil {
			s.logger.Warn("dropping out-of-range location update", "error", err)
			return nil, false
		}
		return ports.LocationUpdated{Location: point}, true

	case eventStatusUpdated:
		var payload statusUpdatedPayload
		if err := json.Unmarshal(f.Data, &payload); err != nil {
			s.logger.Warn("dropping malformed status update", "error", err)
			return nil, false
		}
		status, err := order.ParseStatus(payload.Status)
		if err != nil {
			s.logger.Warn("dropping unknown status update", "status", payload.Status)
			return nil, false
		}
		return ports.StatusUpdated{Status: status}, true

	default:
		return nil, false
	}
}
