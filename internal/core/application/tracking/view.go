package tracking

import (
	"context"
	"sync"

	"localshop/internal/core/domain/model/kernel"
	"localshop/internal/core/domain/model/order"
	"localshop/internal/core/ports"
	"localshop/internal/pkg/errs"
)

// View is the live picture of one order being delivered: the order itself,
// its current status and the agent's last known position, kept fresh by the
// realtime tracking channel.
//
// A View owns its channel session. Open fetches the order, joins the
// order's room and starts consuming updates; Close leaves the room and
// freezes the picture. Events that race with Close mutate nothing. All
// methods are safe for concurrent use.
type View struct {
	api     ports.OrderAPI
	channel ports.TrackingChannel

	mu            sync.RWMutex
	order         *order.Order
	status        order.Status
	agentLocation *kernel.GeoPoint
	session       ports.TrackingSession
	closed        bool
	opened        bool
}

// NewView creates a tracking view over the given order API and tracking
// channel. The view is empty until Open.
func NewView(api ports.OrderAPI, channel ports.TrackingChannel) (*View, error) {
	if api == nil {
		return nil, errs.NewValueIsRequiredError("api")
	}
	if channel == nil {
		return nil, errs.NewValueIsRequiredError("channel")
	}
	return &View{api: api, channel: channel}, nil
}

// Open fetches the order and joins its tracking room. A view opens at most
// once; create a new View to track another order.
func (v *View) Open(ctx context.Context, orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	v.mu.Lock()
	if v.opened {
		v.mu.Unlock()
		return errs.NewChannelError("view is already open")
	}
	v.opened = true
	v.mu.Unlock()

	tracked, err := v.api.Get(ctx, orderID)
	if err != nil {
		return err
	}

	session, err := v.channel.Join(ctx, orderID)
	if err != nil {
		return err
	}

	v.mu.Lock()
	if v.closed {
		// Close raced the join; leave the room instead of holding it.
		v.mu.Unlock()
		return session.Leave()
	}
	v.order = tracked
	v.status = tracked.Status()
	v.agentLocation = tracked.AgentLocation()
	v.session = session
	v.mu.Unlock()

	go v.consume(session, orderID)
	return nil
}

// Order returns the tracked order, or nil before Open.
func (v *View) Order() *order.Order {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.order
}

// Status returns the freshest known status of the tracked order.
func (v *View) Status() order.Status {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.status
}

// AgentLocation returns the agent's last known position, or nil.
func (v *View) AgentLocation() *kernel.GeoPoint {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.agentLocation
}

// PublishLocation broadcasts the agent's position to the order's room.
// Only meaningful for the assigned delivery agent's client.
func (v *View) PublishLocation(ctx context.Context, agentID kernel.ID, location kernel.GeoPoint) error {
	v.mu.RLock()
	session := v.session
	closed := v.closed
	v.mu.RUnlock()

	if session == nil || closed {
		return errs.NewChannelError("publish location on closed view")
	}
	return session.PublishLocation(ctx, agentID, location)
}

// Close leaves the tracking room and freezes the view. Closing an
// already-closed or never-opened view is a no-op.
func (v *View) Close() error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return nil
	}
	v.closed = true
	session := v.session
	v.mu.Unlock()

	if session == nil {
		return nil
	}
	return session.Leave()
}

// consume applies channel events until the session ends. A session that
// ends without Close means the connection dropped; the view then re-fetches
// the order once so the picture does not stay stale.
func (v *View) consume(session ports.TrackingSession, orderID kernel.ID) {
	for event := range session.Events() {
		v.apply(event)
	}

	v.mu.RLock()
	closed := v.closed
	v.mu.RUnlock()
	if closed {
		return
	}

	if tracked, err := v.api.Get(context.Background(), orderID); err == nil {
		v.mu.Lock()
		if !v.closed {
			v.order = tracked
			v.status = tracked.Status()
			if loc := tracked.AgentLocation(); loc != nil {
				v.agentLocation = loc
			}
		}
		v.mu.Unlock()
	}
}

func (v *View) apply(event ports.TrackingEvent) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}

	switch e := event.(type) {
	case ports.LocationUpdated:
		location := e.Location
		v.agentLocation = &location
	case ports.StatusUpdated:
		v.status = e.Status
	}
}
