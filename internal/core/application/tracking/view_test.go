package tracking_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"localshop/internal/core/application/tracking"
	"localshop/internal/core/domain/model/cart"
	"localshop/internal/core/domain/model/identity"
	"localshop/internal/core/domain/model/kernel"
	"localshop/internal/core/domain/model/order"
	"localshop/internal/core/ports"
	"localshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderAPI struct{ mock.Mock }

func (m *MockOrderAPI) Checkout(
	ctx context.Context, shopID kernel.ID, lines cart.Lines, deliveryAddress string,
) (*order.Order, error) {
	args := m.Called(ctx, shopID, lines, deliveryAddress)
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderAPI) MyOrders(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderAPI) AssignedOrders(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderAPI) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderAPI) UpdateStatus(ctx context.Context, id kernel.ID, next order.Status) (*order.Order, error) {
	args := m.Called(ctx, id, next)
	return args.Get(0).(*order.Order), args.Error(1)
}

// fakeSession pushes events through a real channel so tests control the
// stream deterministically.
type fakeSession struct {
	events chan ports.TrackingEvent

	mu         sync.Mutex
	leaveCalls int
	published  []kernel.GeoPoint
}

func newFakeSession() *fakeSession {
	return &fakeSession{events: make(chan ports.TrackingEvent, 8)}
}

func (s *fakeSession) Events() <-chan ports.TrackingEvent { return s.events }

func (s *fakeSession) PublishLocation(_ context.Context, _ kernel.ID, location kernel.GeoPoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.published = append(s.published, location)
	return nil
}

func (s *fakeSession) Leave() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaveCalls++
	return nil
}

func (s *fakeSession) leaveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.leaveCalls
}

type fakeChannel struct {
	session  *fakeSession
	joinErr  error
	joinGate chan struct{} // when set, Join blocks until it is closed

	mu       sync.Mutex
	joinedID kernel.ID
}

func (c *fakeChannel) Join(_ context.Context, orderID kernel.ID) (ports.TrackingSession, error) {
	if c.joinErr != nil {
		return nil, c.joinErr
	}
	if c.joinGate != nil {
		<-c.joinGate
	}
	c.mu.Lock()
	c.joinedID = orderID
	c.mu.Unlock()
	return c.session, nil
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

func testOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	owner, err := identity.NewUserRef(mustID(t, "customer-1"), identity.RoleCustomer, "Test User", "")
	require.NoError(t, err)
	money, err := kernel.MoneyFromFloat(10.00)
	require.NoError(t, err)
	line, err := cart.NewLine(mustID(t, "p1"), kernel.ID{}, "Product p1", money, 2)
	require.NoError(t, err)
	o, err := order.NewOrder(
		mustID(t, "order-1"),
		owner,
		mustID(t, "shop-1"),
		cart.Lines{line},
		order.Address{Street: "12 Baker Street", City: "Springfield"},
		status,
		time.Now(),
	)
	require.NoError(t, err)
	return o
}

func openView(t *testing.T, api *MockOrderAPI, channel *fakeChannel) *tracking.View {
	t.Helper()
	view, err := tracking.NewView(api, channel)
	require.NoError(t, err)
	require.NoError(t, view.Open(context.Background(), mustID(t, "order-1")))
	return view
}

func TestView_Open(t *testing.T) {
	t.Run("should fetch order and join its room", func(t *testing.T) {
		api := new(MockOrderAPI)
		api.On("Get", mock.Anything, mustID(t, "order-1")).
			Return(testOrder(t, order.OutForDelivery), nil).Once()
		channel := &fakeChannel{session: newFakeSession()}

		view := openView(t, api, channel)
		defer view.Close()

		require.NotNil(t, view.Order())
		assert.Equal(t, order.OutForDelivery, view.Status())
		assert.Nil(t, view.AgentLocation())
		assert.Equal(t, "order-1", channel.joinedID.String())
		api.AssertExpectations(t)
	})

	t.Run("should not join when the order fetch fails", func(t *testing.T) {
		api := new(MockOrderAPI)
		api.On("Get", mock.Anything, mustID(t, "missing")).
			Return((*order.Order)(nil), errs.NewObjectNotFoundError("orderID", "missing")).Once()
		channel := &fakeChannel{session: newFakeSession()}

		view, err := tracking.NewView(api, channel)
		require.NoError(t, err)

		err = view.Open(context.Background(), mustID(t, "missing"))

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		channel.mu.Lock()
		joined := channel.joinedID
		channel.mu.Unlock()
		assert.True(t, joined.IsZero())
	})

	t.Run("should fail when the channel cannot be joined", func(t *testing.T) {
		api := new(MockOrderAPI)
		api.On("Get", mock.Anything, mock.Anything).
			Return(testOrder(t, order.Accepted), nil).Once()
		channel := &fakeChannel{joinErr: errs.NewChannelError("connect")}

		view, err := tracking.NewView(api, channel)
		require.NoError(t, err)

		err = view.Open(context.Background(), mustID(t, "order-1"))

		require.ErrorIs(t, err, errs.ErrChannel)
	})

	t.Run("should open at most once", func(t *testing.T) {
		api := new(MockOrderAPI)
		api.On("Get", mock.Anything, mock.Anything).
			Return(testOrder(t, order.Accepted), nil).Once()
		channel := &fakeChannel{session: newFakeSession()}

		view := openView(t, api, channel)
		defer view.Close()

		err := view.Open(context.Background(), mustID(t, "order-1"))

		require.ErrorIs(t, err, errs.ErrChannel)
	})
}

func TestView_Events(t *testing.T) {
	t.Run("should fold location updates into the view", func(t *testing.T) {
		api := new(MockOrderAPI)
		api.On("Get", mock.Anything, mock.Anything).
			Return(testOrder(t, order.OutForDelivery), nil).Once()
		session := newFakeSession()
		channel := &fakeChannel{session: session}

		view := openView(t, api, channel)
		defer view.Close()

		session.events <- ports.LocationUpdated{Location: mustGeo(t, 51.5, -0.12)}

		require.Eventually(t, func() bool {
			return view.AgentLocation() != nil
		}, time.Second, 5*time.Millisecond)
		location := view.AgentLocation()
		assert.InDelta(t, 51.5, location.Lat(), 0.0001)
		assert.InDelta(t, -0.12, location.Lng(), 0.0001)
	})

	t.Run("should fold status updates into the view", func(t *testing.T) {
		api := new(MockOrderAPI)
		api.On("Get", mock.Anything, mock.Anything).
			Return(testOrder(t, order.OutForDelivery), nil).Once()
		session := newFakeSession()
		channel := &fakeChannel{session: session}

		view := openView(t, api, channel)
		defer view.Close()

		session.events <- ports.StatusUpdated{Status: order.Delivered}

		require.Eventually(t, func() bool {
			return view.Status() == order.Delivered
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("should apply the latest of successive updates", func(t *testing.T) {
		api := new(MockOrderAPI)
		api.On("Get", mock.Anything, mock.Anything).
			Return(testOrder(t, order.Accepted), nil).Once()
		session := newFakeSession()
		channel := &fakeChannel{session: session}

		view := openView(t, api, channel)
		defer view.Close()

		session.events <- ports.LocationUpdated{Location: mustGeo(t, 51.0, -0.1)}
		session.events <- ports.LocationUpdated{Location: mustGeo(t, 52.0, -0.2)}

		require.Eventually(t, func() bool {
			location := view.AgentLocation()
			return location != nil && location.Lat() > 51.5
		}, time.Second, 5*time.Millisecond)
	})
}

func TestView_Close(t *testing.T) {
	t.Run("should leave the room exactly once", func(t *testing.T) {
		api := new(MockOrderAPI)
		api.On("Get", mock.Anything, mock.Anything).
			Return(testOrder(t, order.OutForDelivery), nil).Once()
		session := newFakeSession()
		channel := &fakeChannel{session: session}

		view := openView(t, api, channel)

		require.NoError(t, view.Close())
		require.NoError(t, view.Close())

		assert.Equal(t, 1, session.leaveCount())
	})

	t.Run("should leave the room when close races the join", func(t *testing.T) {
		api := new(MockOrderAPI)
		api.On("Get", mock.Anything, mock.Anything).
			Return(testOrder(t, order.OutForDelivery), nil).Once()
		session := newFakeSession()
		gate := make(chan struct{})
		channel := &fakeChannel{session: session, joinGate: gate}

		view, err := tracking.NewView(api, channel)
		require.NoError(t, err)

		done := make(chan error, 1)
		go func() { done <- view.Open(context.Background(), mustID(t, "order-1")) }()

		// navigate away while the join is still in flight
		require.NoError(t, view.Close())
		close(gate)
		require.NoError(t, <-done)

		assert.Equal(t, 1, session.leaveCount())
		assert.Nil(t, view.Order())
	})

	t.Run("should be a no-op on a never-opened view", func(t *testing.T) {
		view, err := tracking.NewView(new(MockOrderAPI), &fakeChannel{session: newFakeSession()})
		require.NoError(t, err)

		require.NoError(t, view.Close())
	})

	t.Run("should ignore events arriving after close", func(t *testing.T) {
		api := new(MockOrderAPI)
		api.On("Get", mock.Anything, mock.Anything).
			Return(testOrder(t, order.OutForDelivery), nil).Once()
		session := newFakeSession()
		channel := &fakeChannel{session: session}

		view := openView(t, api, channel)
		require.NoError(t, view.Close())

		session.events <- ports.StatusUpdated{Status: order.Delivered}

		assert.Never(t, func() bool {
			return view.Status() == order.Delivered
		}, 100*time.Millisecond, 10*time.Millisecond)
		assert.Equal(t, order.OutForDelivery, view.Status())
	})
}

func TestView_ConnectionDrop(t *testing.T) {
	t.Run("should re-fetch the order when the session ends unexpectedly", func(t *testing.T) {
		api := new(MockOrderAPI)
		api.On("Get", mock.Anything, mustID(t, "order-1")).
			Return(testOrder(t, order.OutForDelivery), nil).Once()
		api.On("Get", mock.Anything, mustID(t, "order-1")).
			Return(testOrder(t, order.Delivered), nil).Once()
		session := newFakeSession()
		channel := &fakeChannel{session: session}

		view := openView(t, api, channel)
		defer view.Close()

		// connection drop: the adapter closes the event stream
		close(session.events)

		require.Eventually(t, func() bool {
			return view.Status() == order.Delivered
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("should not re-fetch after a deliberate close", func(t *testing.T) {
		api := new(MockOrderAPI)
		api.On("Get", mock.Anything, mock.Anything).
			Return(testOrder(t, order.OutForDelivery), nil).Once()
		session := newFakeSession()
		channel := &fakeChannel{session: session}

		view := openView(t, api, channel)
		require.NoError(t, view.Close())
		close(session.events)

		assert.Never(t, func() bool {
			return len(api.Calls) > 1
		}, 100*time.Millisecond, 10*time.Millisecond)
	})
}

func TestView_PublishLocation(t *testing.T) {
	t.Run("should pass the position to the session", func(t *testing.T) {
		api := new(MockOrderAPI)
		api.On("Get", mock.Anything, mock.Anything).
			Return(testOrder(t, order.OutForDelivery), nil).Once()
		session := newFakeSession()
		channel := &fakeChannel{session: session}

		view := openView(t, api, channel)
		defer view.Close()

		err := view.PublishLocation(context.Background(), mustID(t, "agent-1"), mustGeo(t, 51.5, -0.12))

		require.NoError(t, err)
		session.mu.Lock()
		published := len(session.published)
		session.mu.Unlock()
		assert.Equal(t, 1, published)
	})

	t.Run("should fail before open and after close", func(t *testing.T) {
		api := new(MockOrderAPI)
		api.On("Get", mock.Anything, mock.Anything).
			Return(testOrder(t, order.OutForDelivery), nil).Once()
		session := newFakeSession()
		channel := &fakeChannel{session: session}

		view, err := tracking.NewView(api, channel)
		require.NoError(t, err)

		err = view.PublishLocation(context.Background(), mustID(t, "agent-1"), mustGeo(t, 51.5, -0.12))
		require.ErrorIs(t, err, errs.ErrChannel)

		require.NoError(t, view.Open(context.Background(), mustID(t, "order-1")))
		require.NoError(t, view.Close())

		err = view.PublishLocation(context.Background(), mustID(t, "agent-1"), mustGeo(t, 51.5, -0.12))
		require.ErrorIs(t, err, errs.ErrChannel)
	})
}
