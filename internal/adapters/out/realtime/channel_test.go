package realtime_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"localshop/internal/adapters/out/realtime"
	"localshop/internal/core/domain/model/kernel"
	"localshop/internal/core/domain/model/order"
	"localshop/internal/core/ports"
	"localshop/internal/pkg/errs"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wireFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// fakeEndpoint is a websocket server that exposes accepted connections and
// the frames it receives.
type fakeEndpoint struct {
	conns    chan *websocket.Conn
	received chan wireFrame
	url      string
}

func newFakeEndpoint(t *testing.T) *fakeEndpoint {
	t.Helper()
	f := &fakeEndpoint{
		conns:    make(chan *websocket.Conn, 4),
		received: make(chan wireFrame, 16),
	}

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		f.conns <- conn
		for {
			var frame wireFrame
			if err := conn.ReadJSON(&frame); err != nil {
				return
			}
			f.received <- frame
		}
	}))
	t.Cleanup(server.Close)

	f.url = "ws" + strings.TrimPrefix(server.URL, "http")
	return f
}

func (f *fakeEndpoint) accept(t *testing.T) *websocket.Conn {
	t.Helper()
	select {
	case conn := <-f.conns:
		return conn
	case <-time.After(time.Second):
		t.Fatal("no connection accepted")
		return nil
	}
}

func (f *fakeEndpoint) nextFrame(t *testing.T) wireFrame {
	t.Helper()
	select {
	case frame := <-f.received:
		return frame
	case <-time.After(time.Second):
		t.Fatal("no frame received")
		return wireFrame{}
	}
}

func mustID(t *testing.T, value string) kernel.ID {
	t.Helper()
	id, err := kernel.NewID(value)
	require.NoError(t, err)
	return id
}

func mustGeo(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return point
}

func newChannel(t *testing.T, url string) *realtime.Channel {
	t.Helper()
	channel, err := realtime.NewChannel(url, nil)
	require.NoError(t, err)
	return channel
}

func nextEvent(t *testing.T, events <-chan ports.TrackingEvent) ports.TrackingEvent {
	t.Helper()
	select {
	case event, ok := <-events:
		require.True(t, ok, "event stream ended unexpectedly")
		return event
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return nil
	}
}

func TestChannel_Join(t *testing.T) {
	t.Run("should announce the room with the bare order id", func(t *testing.T) {
		endpoint := newFakeEndpoint(t)
		channel := newChannel(t, endpoint.url)

		session, err := channel.Join(context.Background(), mustID(t, "order-1"))
		require.NoError(t, err)
		defer session.Leave()

		frame := endpoint.nextFrame(t)
		assert.Equal(t, "joinOrderRoom", frame.Event)

		var joined string
		require.NoError(t, json.Unmarshal(frame.Data, &joined))
		assert.Equal(t, "order-1", joined)
	})

	t.Run("should fail when the endpoint is unreachable", func(t *testing.T) {
		channel := newChannel(t, "ws://127.0.0.1:1")

		_, err := channel.Join(context.Background(), mustID(t, "order-1"))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrChannel)
	})

	t.Run("should hold a single live session", func(t *testing.T) {
		endpoint := newFakeEndpoint(t)
		channel := newChannel(t, endpoint.url)

		session, err := channel.Join(context.Background(), mustID(t, "order-1"))
		require.NoError(t, err)

		_, err = channel.Join(context.Background(), mustID(t, "order-2"))
		require.ErrorIs(t, err, errs.ErrChannel)

		require.NoError(t, session.Leave())

		// the slot frees once the session winds down
		require.Eventually(t, func() bool {
			next, err := channel.Join(context.Background(), mustID(t, "order-2"))
			if err != nil {
				return false
			}
			defer next.Leave()
			return true
		}, time.Second, 10*time.Millisecond)
	})
}

func TestSession_Events(t *testing.T) {
	t.Run("should deliver location updates", func(t *testing.T) {
		endpoint := newFakeEndpoint(t)
		channel := newChannel(t, endpoint.url)

		session, err := channel.Join(context.Background(), mustID(t, "order-1"))
		require.NoError(t, err)
		defer session.Leave()
		serverConn := endpoint.accept(t)

		require.NoError(t, serverConn.WriteJSON(map[string]any{
			"event": "locationUpdated",
			"data":  map[string]any{"location": map[string]float64{"lat": 51.5, "lng": -0.12}},
		}))

		event := nextEvent(t, session.Events())
		located, ok := event.(ports.LocationUpdated)
		require.True(t, ok)
		assert.InDelta(t, 51.5, located.Location.Lat(), 0.0001)
		assert.InDelta(t, -0.12, located.Location.Lng(), 0.0001)
	})

	t.Run("should deliver status updates", func(t *testing.T) {
		endpoint := newFakeEndpoint(t)
		channel := newChannel(t, endpoint.url)

		session, err := channel.Join(context.Background(), mustID(t, "order-1"))
		require.NoError(t, err)
		defer session.Leave()
		serverConn := endpoint.accept(t)

		require.NoError(t, serverConn.WriteJSON(map[string]any{
			"event": "statusUpdated",
			"data":  map[string]string{"status": "out_for_delivery"},
		}))

		event := nextEvent(t, session.Events())
		updated, ok := event.(ports.StatusUpdated)
		require.True(t, ok)
		assert.Equal(t, order.OutForDelivery, updated.Status)
	})

	t.Run("should skip frames it cannot use without ending the stream", func(t *testing.T) {
		endpoint := newFakeEndpoint(t)
		channel := newChannel(t, endpoint.url)

		session, err := channel.Join(context.Background(), mustID(t, "order-1"))
		require.NoError(t, err)
		defer session.Leave()
		serverConn := endpoint.accept(t)

		require.NoError(t, serverConn.WriteMessage(websocket.TextMessage, []byte("not json")))
		require.NoError(t, serverConn.WriteJSON(map[string]any{
			"event": "somethingElse",
			"data":  map[string]string{},
		}))
		require.NoError(t, serverConn.WriteJSON(map[string]any{
			"event": "statusUpdated",
			"data":  map[string]string{"status": "nonsense"},
		}))
		require.NoError(t, serverConn.WriteJSON(map[string]any{
			"event": "statusUpdated",
			"data":  map[string]string{"status": "delivered"},
		}))

		event := nextEvent(t, session.Events())
		updated, ok := event.(ports.StatusUpdated)
		require.True(t, ok)
		assert.Equal(t, order.Delivered, updated.Status)
	})

	t.Run("should close the stream when the server drops the connection", func(t *testing.T) {
		endpoint := newFakeEndpoint(t)
		channel := newChannel(t, endpoint.url)

		session, err := channel.Join(context.Background(), mustID(t, "order-1"))
		require.NoError(t, err)
		serverConn := endpoint.accept(t)

		require.NoError(t, serverConn.Close())

		select {
		case _, ok := <-session.Events():
			assert.False(t, ok)
		case <-time.After(time.Second):
			t.Fatal("event stream did not close")
		}
	})
}

func TestSession_PublishLocation(t *testing.T) {
	t.Run("should send the room, agent and position", func(t *testing.T) {
		endpoint := newFakeEndpoint(t)
		channel := newChannel(t, endpoint.url)

		session, err := channel.Join(context.Background(), mustID(t, "order-1"))
		require.NoError(t, err)
		defer session.Leave()

		// consume the join frame first
		joinFrame := endpoint.nextFrame(t)
		require.Equal(t, "joinOrderRoom", joinFrame.Event)

		require.NoError(t, session.PublishLocation(
			context.Background(), mustID(t, "agent-1"), mustGeo(t, 51.5, -0.12)))

		frame := endpoint.nextFrame(t)
		assert.Equal(t, "updateLocation", frame.Event)

		var payload struct {
			OrderID  string `json:"orderId"`
			AgentID  string `json:"agentId"`
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		}
		require.NoError(t, json.Unmarshal(frame.Data, &payload))
		assert.Equal(t, "order-1", payload.OrderID)
		assert.Equal(t, "agent-1", payload.AgentID)
		assert.InDelta(t, 51.5, payload.Location.Lat, 0.0001)
		assert.InDelta(t, -0.12, payload.Location.Lng, 0.0001)
	})
}

func TestSession_Leave(t *testing.T) {
	t.Run("should close the stream and be idempotent", func(t *testing.T) {
		endpoint := newFakeEndpoint(t)
		channel := newChannel(t, endpoint.url)

		session, err := channel.Join(context.Background(), mustID(t, "order-1"))
		require.NoError(t, err)

		require.NoError(t, session.Leave())
		_ = session.Leave()

		select {
		case _, ok := <-session.Events():
			assert.False(t, ok)
		case <-time.After(time.Second):
			t.Fatal("event stream did not close")
		}
	})
}
