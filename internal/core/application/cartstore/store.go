package cartstore

import (
	"context"
	"sync"

	"localshop/internal/core/domain/model/cart"
	"localshop/internal/core/domain/model/kernel"
	"localshop/internal/core/ports"
	"localshop/internal/pkg/errs"
)

// Store mirrors the server-owned cart. Every mutation is written through to
// the remote store and the cart echoed back is adopted as the new local
// contents; the store never applies a mutation locally first.
//
// Responses can arrive out of order when calls overlap. Each outbound call
// takes a sequence number when it starts, and a response is only adopted if
// no later-started call has already been applied. A stale response is
// discarded, so the local cart always reflects the newest server echo that
// has arrived.
//
// All methods are safe for concurrent use.
type Store struct {
	api ports.CartAPI

	mu         sync.Mutex
	lines      cart.Lines
	nextSeq    uint64
	appliedSeq uint64
}

// NewStore creates a cart store over the given cart API.
// The local cart starts empty until the first Fetch.
func NewStore(api ports.CartAPI) (*Store, error) {
	if api == nil {
		return nil, errs.NewValueIsRequiredError("api")
	}
	return &Store{api: api}, nil
}

// Lines returns a copy of the current local cart contents.
func (s *Store) Lines() cart.Lines {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines.Clone()
}

// Total returns the monetary total of the current local cart contents.
// It is recomputed from the lines on every call.
func (s *Store) Total() kernel.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines.Total()
}

// Quantity returns the total number of units in the local cart.
func (s *Store) Quantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines.Quantity()
}

// Fetch refreshes the local cart from the remote store.
func (s *Store) Fetch(ctx context.Context) (cart.Lines, error) {
	seq := s.takeSeq()
	lines, err := s.api.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return s.adopt(seq, lines), nil
}

// AddItem adds quantity units of a product to the cart and returns the
// resulting contents. On failure the local cart is left unchanged.
func (s *Store) AddItem(ctx context.Context, productID kernel.ID, quantity int) (cart.Lines, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}

	seq := s.takeSeq()
	lines, err := s.api.AddItem(ctx, productID, quantity)
	if err != nil {
		return nil, errs.NewCartErrorWithCause("add item", err)
	}
	return s.adopt(seq, lines), nil
}

// RemoveItem removes a product's line from the cart and returns the
// resulting contents. On failure the local cart is left unchanged.
func (s *Store) RemoveItem(ctx context.Context, productID kernel.ID) (cart.Lines, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}

	seq := s.takeSeq()
	lines, err := s.api.RemoveItem(ctx, productID)
	if err != nil {
		return nil, errs.NewCartErrorWithCause("remove item", err)
	}
	return s.adopt(seq, lines), nil
}

// Clear empties the cart on the remote store and locally. The store
// confirms with no cart payload, so the empty set is adopted directly.
func (s *Store) Clear(ctx context.Context) error {
	seq := s.takeSeq()
	if err := s.api.Clear(ctx); err != nil {
		return errs.NewCartErrorWithCause("clear", err)
	}
	s.adopt(seq, cart.Lines{})
	return nil
}

// Reset drops the local cart contents without touching the remote store.
// Called when the session ends; the server cart belongs to the account and
// survives for the next sign-in.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.appliedSeq = s.nextSeq
}

func (s *Store) takeSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	return s.nextSeq
}

// adopt applies a server echo unless a later-started call already applied
// its result. Returns the local contents after the decision.
func (s *Store) adopt(seq uint64, lines cart.Lines) cart.Lines {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq > s.appliedSeq {
		s.lines = lines.Clone()
		s.appliedSeq = seq
	}
	return s.lines.Clone()
}
