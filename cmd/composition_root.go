package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"foodorders/internal/adapters/in/http"
	"foodorders/internal/adapters/out/inbox"
	"foodorders/internal/adapters/out/memory"
	"foodorders/internal/adapters/out/postgres"
	"foodorders/internal/adapters/out/postgres/courierrepo"
	"foodorders/internal/core/application/notifications"
	"foodorders/internal/core/application/orderstore"
	"foodorders/internal/core/application/session"
	"foodorders/internal/core/application/usecases/commands"
	"foodorders/internal/core/application/usecases/queries"
	"foodorders/internal/core/domain/model/catalog"
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/domain/services"
	"foodorders/internal/core/ports"
	"foodorders/internal/jobs"
	"foodorders/internal/pkg/eventbus"
	"foodorders/internal/pkg/observability"

	"gorm.io/gorm"
)

type Option func(*CompositionRoot)

func WithLogger(logger *slog.Logger) Option {
	return func(c *CompositionRoot) {
		c.logger = logger
	}
}

func WithInstruments(instruments *observability.Instruments) Option {
	return func(c *CompositionRoot) {
		c.instruments = instruments
	}
}

// WithTransport adds an outbound notification transport, such as RabbitMQ,
// next to the in-app inbox and the log.
func WithTransport(t ports.NotificationTransport) Option {
	return func(c *CompositionRoot) {
		c.extraTransports = append(c.extraTransports, t)
	}
}

// CompositionRoot builds every collaborator once. With a nil *gorm.DB all
// state lives in memory.
type CompositionRoot struct {
	cfg         Config
	logger      *slog.Logger
	instruments *observability.Instruments

	uowFactory ports.UnitOfWorkFactory
	couriers   ports.CourierRepository
	products   ports.ProductRepository

	bus      *eventbus.Bus
	store    *orderstore.Store
	policy   services.TransitionPolicy
	session  *session.Session
	actors   ports.ActorProvider
	inbox    *inbox.Inbox
	outbound *notifications.AsyncTransport

	extraTransports []ports.NotificationTransport
	subscriptions   []eventbus.Subscription
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, opts ...Option) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		policy: services.NewTransitionPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if gormDB != nil {
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
		c.couriers = courierrepo.NewGormCourierRepository(gormDB)
	} else {
		storage := memory.NewStorage()
		c.uowFactory = memory.NewUnitOfWorkFactory(storage)
		c.couriers = storage.Couriers
	}
	c.products = memory.NewProductRepository(catalog.DemoMenu())

	c.bus = eventbus.New(
		eventbus.WithLogger(c.logger),
		eventbus.WithTracer(c.instruments.Tracer("foodorders/eventbus")),
		eventbus.WithMeter(c.instruments.Meter("foodorders/eventbus")),
	)
	c.store = orderstore.New(
		FuncOrderUoWFactory(func() orderstore.OrderUoW { return c.uowFactory.Create() }),
		orderstore.WithLogger(c.logger),
	)
	c.session = session.New()
	c.actors = http.NewRequestActors(c.session)
	c.inbox = inbox.New(cfg.InboxCapacity)

	if err := c.wireSubscribers(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *CompositionRoot) wireSubscribers() error {
	transports := notifications.FanOut{c.inbox, notifications.NewLogTransport(c.logger)}
	if len(c.extraTransports) > 0 {
		outbound := notifications.FanOut(c.extraTransports)
		c.outbound = notifications.NewAsyncTransport(outbound, c.cfg.NotificationQueueSize, c.cfg.NotificationWorkers, c.logger)
		transports = append(transports, c.outbound)
	}

	dispatcher := notifications.NewDispatcher(transports, notifications.WithLogger(c.logger))
	c.subscriptions = append(c.subscriptions, dispatcher.Subscribe(c.bus)...)

	tracker, err := c.CreateTrackCourierCommandHandler()
	if err != nil {
		return err
	}
	c.subscriptions = append(c.subscriptions,
		c.bus.Subscribe(order.EventStatusChanged, eventbus.Typed(tracker.OnStatusChanged)),
	)
	return nil
}

// Load fills the order store from persistence.
func (c *CompositionRoot) Load(ctx context.Context) error {
	return c.store.Load(ctx)
}

// Close unsubscribes every handler and drains queued notifications.
func (c *CompositionRoot) Close(ctx context.Context) error {
	for _, sub := range c.subscriptions {
		c.bus.Unsubscribe(sub)
	}
	c.subscriptions = nil

	var errList []error
	if c.outbound != nil {
		errList = append(errList, c.outbound.Close(ctx))
	}
	return errors.Join(errList...)
}

func (c *CompositionRoot) Bus() *eventbus.Bus {
	return c.bus
}

func (c *CompositionRoot) Store() *orderstore.Store {
	return c.store
}

func (c *CompositionRoot) Session() *session.Session {
	return c.session
}

func (c *CompositionRoot) Actors() ports.ActorProvider {
	return c.actors
}

func (c *CompositionRoot) Inbox() *inbox.Inbox {
	return c.inbox
}

func (c *CompositionRoot) BusinessID() (kernel.UUID, error) {
	if c.cfg.BusinessID == "" {
		return session.DemoBusiness.ID, nil
	}
	id, err := kernel.UUIDFromString(c.cfg.BusinessID)
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("BUSINESS_ID: %w", err)
	}
	return id, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() (commands.CreateOrderCommandHandler, error) {
	businessID, err := c.BusinessID()
	if err != nil {
		return commands.CreateOrderCommandHandler{}, err
	}
	return commands.NewCreateOrderCommandHandler(c.store, c.actors, c.bus, businessID), nil
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.store, c.actors, c.policy, c.bus)
}

func (c *CompositionRoot) CreateRateOrderCommandHandler() commands.RateOrderCommandHandler {
	var f commands.RatingUoWFactory = FuncRatingUoWFactory(func() commands.RatingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRateOrderCommandHandler(c.store, c.actors, f)
}

func (c *CompositionRoot) CreateMoveCouriersCommandHandler() *commands.MoveCouriersCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewMoveCouriersCommandHandler(f, c.logger)
	return &h
}

func (c *CompositionRoot) CreateTrackCourierCommandHandler() (commands.TrackCourierCommandHandler, error) {
	origin, err := kernel.NewLocation(c.cfg.BusinessLat, c.cfg.BusinessLng)
	if err != nil {
		return commands.TrackCourierCommandHandler{}, fmt.Errorf("business location: %w", err)
	}
	destination, err := kernel.NewLocation(c.cfg.CustomerLat, c.cfg.CustomerLng)
	if err != nil {
		return commands.TrackCourierCommandHandler{}, fmt.Errorf("customer location: %w", err)
	}

	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTrackCourierCommandHandler(f, origin, destination), nil
}

func (c *CompositionRoot) CreateGetProductsQueryHandler() queries.GetProductsQueryHandler {
	return queries.NewGetProductsQueryHandler(c.products)
}

func (c *CompositionRoot) CreateGetRoleOrdersQueryHandler() queries.GetRoleOrdersQueryHandler {
	return queries.NewGetRoleOrdersQueryHandler(c.store, c.actors, c.policy)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.store, c.actors, c.policy)
}

func (c *CompositionRoot) CreateGetOrderTrackingQueryHandler() queries.GetOrderTrackingQueryHandler {
	return queries.NewGetOrderTrackingQueryHandler(c.store, c.couriers, c.actors)
}

func (c *CompositionRoot) CreateGetActiveCouriersQueryHandler() queries.GetActiveCouriersQueryHandler {
	return queries.NewGetActiveCouriersQueryHandler(c.couriers, c.actors)
}

func (c *CompositionRoot) CreateGetNotificationsQueryHandler() queries.GetNotificationsQueryHandler {
	return queries.NewGetNotificationsQueryHandler(c.inbox, c.actors)
}

func (c *CompositionRoot) CreateHTTPServer() (*http.Server, error) {
	createOrder, err := c.CreateCreateOrderCommandHandler()
	if err != nil {
		return nil, err
	}
	return http.NewServer(http.Handlers{
		CreateOrder:       createOrder,
		ChangeOrderStatus: c.CreateChangeOrderStatusCommandHandler(),
		RateOrder:         c.CreateRateOrderCommandHandler(),
		GetProducts:       c.CreateGetProductsQueryHandler(),
		GetRoleOrders:     c.CreateGetRoleOrdersQueryHandler(),
		GetOrder:          c.CreateGetOrderQueryHandler(),
		GetOrderTracking:  c.CreateGetOrderTrackingQueryHandler(),
		GetActiveCouriers: c.CreateGetActiveCouriersQueryHandler(),
		GetNotifications:  c.CreateGetNotificationsQueryHandler(),
	}, c.session), nil
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateMoveCouriersCommandHandler(), c.cfg.CourierMoveSchedule, c.logger)
}

type FuncOrderUoWFactory func() orderstore.OrderUoW

func (f FuncOrderUoWFactory) Create() orderstore.OrderUoW {
	return f()
}

type FuncRatingUoWFactory func() commands.RatingUoW

func (f FuncRatingUoWFactory) Create() commands.RatingUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}
