package cmd

import (
	"context"
	"log/slog"
	"sync"

	"localshop/internal/adapters/out/backendapi"
	"localshop/internal/adapters/out/credfile"
	"localshop/internal/adapters/out/realtime"
	"localshop/internal/core/application/cartstore"
	"localshop/internal/core/application/orders"
	"localshop/internal/core/application/sessionstore"
	"localshop/internal/core/application/tracking"
	"localshop/internal/core/domain/model/kernel"
	"localshop/internal/jobs"
	"localshop/internal/pkg/errs"
)

type CompositionRoot struct {
	config   Config
	logger   *slog.Logger
	sessions *sessionstore.Store
	carts    *cartstore.Store
	orders   *orders.Service
	channel  *realtime.Channel
	orderAPI *backendapi.OrderClient
	views    *viewHolder
}

// sessionTokenSource bridges the API client to the session store. The
// client is built before the store, so the binding happens after both
// exist.
type sessionTokenSource struct {
	mu    sync.RWMutex
	store *sessionstore.Store
}

func (s *sessionTokenSource) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.store == nil {
		return ""
	}
	return s.store.Token()
}

func (s *sessionTokenSource) bind(store *sessionstore.Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store = store
}

// viewHolder tracks the currently open tracking view so the location
// report job always publishes to the active room.
type viewHolder struct {
	mu   sync.RWMutex
	view *tracking.View
}

func (h *viewHolder) set(view *tracking.View) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.view = view
}

func (h *viewHolder) PublishLocation(ctx context.Context, agentID kernel.ID, location kernel.GeoPoint) error {
	h.mu.RLock()
	view := h.view
	h.mu.RUnlock()
	if view == nil {
		return errs.NewChannelError("no tracking room open")
	}
	return view.PublishLocation(ctx, agentID, location)
}

// fixedLocationSource reports a position from configuration. A real agent
// device would plug a GPS reader in here instead.
type fixedLocationSource struct {
	point kernel.GeoPoint
}

func (f fixedLocationSource) Current(_ context.Context) (kernel.GeoPoint, error) {
	return f.point, nil
}

func NewCompositionRoot(config Config, logger *slog.Logger) (*CompositionRoot, error) {
	root := &CompositionRoot{
		config: config,
		logger: logger,
		views:  &viewHolder{},
	}

	tokens := &sessionTokenSource{}
	client, err := backendapi.NewClient(config.APIBaseURL, tokens,
		backendapi.WithUnauthorizedHook(func() {
			if root.sessions != nil {
				root.sessions.Invalidate(context.Background())
			}
			if root.carts != nil {
				root.carts.Reset()
			}
		}))
	if err != nil {
		return nil, err
	}

	storage, err := credfile.NewStorage(config.CredentialsFile)
	if err != nil {
		return nil, err
	}

	sessions, err := sessionstore.NewStore(backendapi.NewAuthClient(client), storage)
	if err != nil {
		return nil, err
	}
	tokens.bind(sessions)
	root.sessions = sessions

	carts, err := cartstore.NewStore(backendapi.NewCartClient(client))
	if err != nil {
		return nil, err
	}
	root.carts = carts

	root.orderAPI = backendapi.NewOrderClient(client)
	orderService, err := orders.NewService(root.orderAPI, carts)
	if err != nil {
		return nil, err
	}
	root.orders = orderService

	channel, err := realtime.NewChannel(config.RealtimeURL, logger)
	if err != nil {
		return nil, err
	}
	root.channel = channel

	return root, nil
}

func (c *CompositionRoot) Sessions() *sessionstore.Store {
	return c.sessions
}

func (c *CompositionRoot) Carts() *cartstore.Store {
	return c.carts
}

func (c *CompositionRoot) Orders() *orders.Service {
	return c.orders
}

// OpenTracking opens a tracking view for one order and makes it the target
// of the location report job. A previously open view is closed first.
func (c *CompositionRoot) OpenTracking(ctx context.Context, orderID kernel.ID) (*tracking.View, error) {
	view, err := tracking.NewView(c.orderAPI, c.channel)
	if err != nil {
		return nil, err
	}
	if err := view.Open(ctx, orderID); err != nil {
		return nil, err
	}

	c.views.mu.Lock()
	previous := c.views.view
	c.views.view = view
	c.views.mu.Unlock()
	if previous != nil {
		_ = previous.Close()
	}
	return view, nil
}

// CloseTracking closes the active tracking view, if any.
func (c *CompositionRoot) CloseTracking() {
	c.views.mu.Lock()
	view := c.views.view
	c.views.view = nil
	c.views.mu.Unlock()
	if view != nil {
		_ = view.Close()
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	source := fixedLocationSource{}
	if point, err := kernel.NewGeoPoint(c.config.AgentLat, c.config.AgentLng); err == nil {
		source.point = point
	}

	return jobs.NewJobManager(
		c.sessions,
		c.sessions,
		source,
		c.views,
		c.config.LocationReportSpec,
		c.config.SessionRefreshSpec,
		c.logger,
	)
}
