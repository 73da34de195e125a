// Package http exposes the order use cases over a JSON API. Requests are
// checked against the embedded OpenAPI document before reaching a handler.
package http

import (
	"errors"
	"fmt"
	"net/http"

	"foodorders/internal/core/application/session"
	"foodorders/internal/core/application/usecases/commands"
	"foodorders/internal/core/application/usecases/queries"
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler  commands.CreateOrderCommandHandler
	changeStatusHandler commands.ChangeOrderStatusCommandHandler
	rateOrderHandler    commands.RateOrderCommandHandler

	// Query handlers
	getProductsHandler       queries.GetProductsQueryHandler
	getRoleOrdersHandler     queries.GetRoleOrdersQueryHandler
	getOrderHandler          queries.GetOrderQueryHandler
	getOrderTrackingHandler  queries.GetOrderTrackingQueryHandler
	getActiveCouriersHandler queries.GetActiveCouriersQueryHandler
	getNotificationsHandler  queries.GetNotificationsQueryHandler

	session *session.Session
}

type Handlers struct {
	CreateOrder       commands.CreateOrderCommandHandler
	ChangeOrderStatus commands.ChangeOrderStatusCommandHandler
	RateOrder         commands.RateOrderCommandHandler

	GetProducts       queries.GetProductsQueryHandler
	GetRoleOrders     queries.GetRoleOrdersQueryHandler
	GetOrder          queries.GetOrderQueryHandler
	GetOrderTracking  queries.GetOrderTrackingQueryHandler
	GetActiveCouriers queries.GetActiveCouriersQueryHandler
	GetNotifications  queries.GetNotificationsQueryHandler
}

func NewServer(h Handlers, sess *session.Session) *Server {
	return &Server{
		createOrderHandler:       h.CreateOrder,
		changeStatusHandler:      h.ChangeOrderStatus,
		rateOrderHandler:         h.RateOrder,
		getProductsHandler:       h.GetProducts,
		getRoleOrdersHandler:     h.GetRoleOrders,
		getOrderHandler:          h.GetOrder,
		getOrderTrackingHandler:  h.GetOrderTracking,
		getActiveCouriersHandler: h.GetActiveCouriers,
		getNotificationsHandler:  h.GetNotifications,
		session:                  sess,
	}
}

// Register mounts the API on e. Validation runs only on /api/v1 routes.
func (s *Server) Register(e *echo.Echo, validator echo.MiddlewareFunc) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")
	api.GET("/openapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", OpenAPIDocument())
	})

	if validator != nil {
		api.Use(validator)
	}
	api.Use(ActorMiddleware())

	api.GET("/products", s.GetProducts)
	api.GET("/session", s.GetSession)
	api.POST("/session", s.SwitchRole)
	api.GET("/orders", s.GetOrders)
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:orderId", s.GetOrder)
	api.POST("/orders/:orderId/status", s.ChangeOrderStatus)
	api.POST("/orders/:orderId/rating", s.RateOrder)
	api.GET("/orders/:orderId/tracking", s.GetOrderTracking)
	api.GET("/couriers", s.GetCouriers)
	api.GET("/notifications", s.GetNotifications)
}

// GetProducts handles GET /api/v1/products - the menu.
func (s *Server) GetProducts(ctx echo.Context) error {
	products, err := s.getProductsHandler.Handle(ctx.Request().Context(), queries.NewGetProductsQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]Product, len(products))
	for i, p := range products {
		response[i] = toProduct(p)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetSession handles GET /api/v1/session - the demo user the app acts as.
func (s *Server) GetSession(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, toSession(s.session.Current()))
}

// SwitchRole handles POST /api/v1/session - switches the demo user by role.
func (s *Server) SwitchRole(ctx echo.Context) error {
	var body RoleSwitch
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	role, err := kernel.ParseRole(body.Role)
	if err != nil {
		return s.fail(ctx, err)
	}
	user, err := s.session.SwitchRole(role)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toSession(user))
}

// GetOrders handles GET /api/v1/orders?view= - orders for the caller's role.
func (s *Server) GetOrders(ctx echo.Context) error {
	var view *string
	if err := runtime.BindQueryParameter("form", true, false, "view", ctx.QueryParams(), &view); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("view", err))
	}
	query := queries.NewGetRoleOrdersQuery(derefString(view))

	orders, err := s.getRoleOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]Order, len(orders))
	for i, o := range orders {
		response[i] = toOrder(o)
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders - checkout.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := newCreateOrderCommand(body)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(created.ID())
	if err != nil {
		return s.fail(ctx, err)
	}
	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toOrder(response))
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrder(response))
}

// ChangeOrderStatus handles POST /api/v1/orders/{orderId}/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var body StatusChange
	if err = ctx.Bind(&body); err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid request body")
	}
	status, err := order.ParseStatus(body.Status)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, status)
	if err != nil {
		return s.fail(ctx, err)
	}
	if _, err = s.changeStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrder(response))
}

// RateOrder handles POST /api/v1/orders/{orderId}/rating.
func (s *Server) RateOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var body NewRating
	if err = ctx.Bind(&body); err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewRateOrderCommand(orderID, body.Score, body.Comment)
	if err != nil {
		return s.fail(ctx, err)
	}
	rated, err := s.rateOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toRating(rated))
}

// GetOrderTracking handles GET /api/v1/orders/{orderId}/tracking.
func (s *Server) GetOrderTracking(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetOrderTrackingQuery(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	response, err := s.getOrderTrackingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toCourier(response))
}

// GetCouriers handles GET /api/v1/couriers - couriers still on their way.
func (s *Server) GetCouriers(ctx echo.Context) error {
	couriers, err := s.getActiveCouriersHandler.Handle(ctx.Request().Context(), queries.NewGetActiveCouriersQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]Courier, len(couriers))
	for i, c := range couriers {
		response[i] = toCourier(c)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetNotifications handles GET /api/v1/notifications?limit=.
func (s *Server) GetNotifications(ctx echo.Context) error {
	var limit *int
	err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &limit)
	if err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("limit", err))
	}

	query, err := queries.NewGetNotificationsQuery(derefInt(limit))
	if err != nil {
		return s.fail(ctx, err)
	}
	notifications, err := s.getNotificationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]Notification, len(notifications))
	for i, n := range notifications {
		response[i] = toNotification(n)
	}
	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) fail(ctx echo.Context, err error) error {
	code := StatusFor(err)
	if code == http.StatusInternalServerError {
		ctx.Logger().Errorf("%s %s: %v", ctx.Request().Method, ctx.Path(), err)
		return writeError(ctx, code, http.StatusText(code))
	}
	return writeError(ctx, code, err.Error())
}

func orderIDParam(ctx echo.Context) (kernel.UUID, error) {
	var raw string
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	return id, nil
}

func newCreateOrderCommand(body NewOrder) (commands.CreateOrderCommand, error) {
	items := make([]order.Item, 0, len(body.Items))
	var errList []error
	for i, raw := range body.Items {
		price, err := kernel.NewMoneyFromFloat(raw.Price)
		if err != nil {
			errList = append(errList, fmt.Errorf("items[%d]: %w", i, err))
			continue
		}
		item, err := order.NewItem(raw.ID, raw.Name, raw.Quantity, price)
		if err != nil {
			errList = append(errList, fmt.Errorf("items[%d]: %w", i, err))
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(errList...); err != nil {
		return commands.CreateOrderCommand{}, err
	}

	total, err := kernel.NewMoneyFromFloat(body.Total)
	if err != nil {
		return commands.CreateOrderCommand{}, fmt.Errorf("total: %w", err)
	}
	return commands.NewCreateOrderCommand(items, total, body.Location)
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
