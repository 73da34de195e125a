// Package orderstore owns the canonical copy of every order.
//
// Reads are served from memory. Writes go through to the persistence
// collaborator inside a unit of work first and become visible in memory only
// once persisted, so stored and canonical state never disagree. Status changes
// are serialized per order id: the current state check and the write happen
// under the same lock, so of two concurrent transitions only one can win.
package orderstore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/ports"
	"foodorders/internal/pkg/errs"
)

// Unit of work interfaces narrowed to what the store needs.
type (
	OrderUoW interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
		OrderRepository() ports.OrderRepository
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}
)

type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

type Store struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
	now        func() time.Time

	// createMu serializes creation so sequence order equals insertion order.
	createMu sync.Mutex

	mu       sync.RWMutex
	orders   map[kernel.UUID]*order.Order
	index    []kernel.UUID
	sequence int64
	locks    map[kernel.UUID]*sync.Mutex
}

func New(uowFactory OrderUoWFactory, opts ...Option) *Store {
	s := &Store{
		uowFactory: uowFactory,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:        time.Now,
		orders:     make(map[kernel.UUID]*order.Order),
		locks:      make(map[kernel.UUID]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "orderstore")
	return s
}

// Load replaces the in-memory state with everything the persistence
// collaborator holds. It is meant to run once, before serving requests.
func (s *Store) Load(ctx context.Context) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	all, err := uow.OrderRepository().All(ctx)
	if err != nil {
		return fmt.Errorf("load orders: %w", err)
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Sequence() < all[j].Sequence()
	})

	s.createMu.Lock()
	defer s.createMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = make(map[kernel.UUID]*order.Order, len(all))
	s.index = make([]kernel.UUID, 0, len(all))
	s.sequence = 0
	for _, o := range all {
		s.orders[o.ID()] = o
		s.index = append(s.index, o.ID())
		if o.Sequence() > s.sequence {
			s.sequence = o.Sequence()
		}
	}

	s.logger.InfoContext(ctx, "orders loaded", slog.Int("count", len(all)))
	return nil
}

// Create places a new PENDING order with a fresh id.
func (s *Store) Create(ctx context.Context, params order.NewOrderParams) (*order.Order, error) {
	o, err := order.NewOrder(kernel.NewUUID(), params, s.now())
	if err != nil {
		return nil, err
	}

	s.createMu.Lock()
	defer s.createMu.Unlock()

	s.mu.RLock()
	next := s.sequence + 1
	s.mu.RUnlock()

	if err = o.AssignSequence(next); err != nil {
		return nil, err
	}

	if err = s.persist(ctx, func(repo ports.OrderRepository) error {
		return repo.Add(ctx, o)
	}); err != nil {
		return nil, fmt.Errorf("persist order %s: %w", o.ID(), err)
	}

	s.mu.Lock()
	s.sequence = next
	s.orders[o.ID()] = o
	s.index = append(s.index, o.ID())
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "order created",
		slog.String("order_id", o.ID().String()),
		slog.String("customer_id", o.CustomerID().String()),
		slog.String("total", o.Total().String()))

	return o.Clone(), nil
}

// Get returns errs.ObjectNotFoundError for unknown ids.
func (s *Store) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return o.Clone(), nil
}

// ListByCustomer returns the customer's orders in insertion order.
func (s *Store) ListByCustomer(_ context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	return s.list(func(o *order.Order) bool {
		return o.IsOwnedBy(customerID)
	}), nil
}

// ListByStatus returns orders whose status is any of statuses, in insertion
// order. No statuses yields no orders.
func (s *Store) ListByStatus(_ context.Context, statuses ...order.Status) ([]*order.Order, error) {
	set := make(map[order.Status]struct{}, len(statuses))
	for _, st := range statuses {
		if err := st.Validate(); err != nil {
			return nil, err
		}
		set[st] = struct{}{}
	}

	return s.list(func(o *order.Order) bool {
		_, ok := set[o.Status()]
		return ok
	}), nil
}

// ApplyStatus runs apply against a working copy of the current order while
// holding the order's lock, persists the copy and then makes it canonical.
// If apply fails nothing changes. Callers see their own copy of the result.
func (s *Store) ApplyStatus(
	ctx context.Context,
	id kernel.UUID,
	apply func(working *order.Order) error,
) (*order.Order, error) {
	lock := s.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	s.mu.RLock()
	current, ok := s.orders[id]
	s.mu.RUnlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}

	working := current.Clone()
	if err := apply(working); err != nil {
		return nil, err
	}

	if err := s.persist(ctx, func(repo ports.OrderRepository) error {
		return repo.Update(ctx, working)
	}); err != nil {
		return nil, fmt.Errorf("persist order %s: %w", id, err)
	}

	s.mu.Lock()
	s.orders[id] = working
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "order status applied",
		slog.String("order_id", id.String()),
		slog.String("from", current.Status().String()),
		slog.String("to", working.Status().String()))

	return working.Clone(), nil
}

// Len reports how many orders the store holds.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.index)
}

func (s *Store) list(match func(*order.Order) bool) []*order.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*order.Order, 0)
	for _, id := range s.index {
		if o := s.orders[id]; match(o) {
			out = append(out, o.Clone())
		}
	}
	return out
}

func (s *Store) lockFor(id kernel.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

func (s *Store) persist(ctx context.Context, write func(repo ports.OrderRepository) error) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := write(uow.OrderRepository()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
