package ports

import (
	"context"

	"localshop/internal/core/domain/model/kernel"
	"localshop/internal/core/domain/model/order"
)

// TrackingEvent is a realtime update received while joined to an order's
// tracking room. Implementations are LocationUpdated and StatusUpdated.
type TrackingEvent interface {
	isTrackingEvent()
}

// LocationUpdated reports a new position of the delivery agent.
type LocationUpdated struct {
	Location kernel.GeoPoint
}

func (LocationUpdated) isTrackingEvent() {}

// StatusUpdated reports a change of the order's lifecycle status.
type StatusUpdated struct {
	Status order.Status
}

func (StatusUpdated) isTrackingEvent() {}

// TrackingSession is one live membership in an order's tracking room.
type TrackingSession interface {
	// Events returns the stream of updates for the joined order. The
	// channel is closed when the session ends, whether by Leave or by the
	// underlying connection dropping.
	Events() <-chan TrackingEvent

	// PublishLocation broadcasts the agent's position to the room.
	// Only the assigned delivery agent publishes; everyone else listens.
	PublishLocation(ctx context.Context, agentID kernel.ID, location kernel.GeoPoint) error

	// Leave ends the session and releases the connection.
	// Leaving an already-ended session is not an error.
	Leave() error
}

// TrackingChannel joins order tracking rooms on the realtime endpoint.
type TrackingChannel interface {
	// Join opens a session for one order's room.
	// Returns ChannelError when the connection cannot be established or a
	// session is already active.
	Join(ctx context.Context, orderID kernel.ID) (TrackingSession, error)
}
