package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"foodorders/cmd"
	httpin "foodorders/internal/adapters/in/http"
	"foodorders/internal/core/application/session"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const burgerOrder = `{"items":[{"id":"product-01","name":"Burger","price":20,"quantity":2}],"total":40}`

type ServerTestSuite struct {
	suite.Suite
	root *cmd.CompositionRoot
	e    *echo.Echo
}

func (s *ServerTestSuite) SetupTest() {
	root, err := cmd.NewCompositionRoot(cmd.Config{
		BusinessLat: 19.4326,
		BusinessLng: -99.1332,
		CustomerLat: 19.4361,
		CustomerLng: -99.1362,
	}, nil)
	s.Require().NoError(err)

	server, err := root.CreateHTTPServer()
	s.Require().NoError(err)
	e, err := httpin.NewEcho(server)
	s.Require().NoError(err)

	s.root = root
	s.e = e
}

func (s *ServerTestSuite) TearDownTest() {
	s.Require().NoError(s.root.Close(s.T().Context()))
}

func (s *ServerTestSuite) do(method, path, role, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if role != "" {
		req.Header.Set(httpin.HeaderActorRole, role)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) decode(rec *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func (s *ServerTestSuite) createOrder() httpin.Order {
	rec := s.do(http.MethodPost, "/api/v1/orders", "CUSTOMER", burgerOrder)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var created httpin.Order
	s.decode(rec, &created)
	return created
}

func (s *ServerTestSuite) changeStatus(id, role, status string) *httptest.ResponseRecorder {
	return s.do(http.MethodPost, "/api/v1/orders/"+id+"/status", role, `{"status":"`+status+`"}`)
}

func (s *ServerTestSuite) errorBody(rec *httptest.ResponseRecorder) httpin.Error {
	var body httpin.Error
	s.decode(rec, &body)
	s.Equal(rec.Code, body.Code)
	s.NotEmpty(body.Message)
	return body
}

func (s *ServerTestSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", "", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Healthy", rec.Body.String())
}

func (s *ServerTestSuite) TestOpenAPIDocument() {
	rec := s.do(http.MethodGet, "/api/v1/openapi.yaml", "", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "openapi: 3.0.3")
}

func (s *ServerTestSuite) TestSwaggerUI() {
	rec := s.do(http.MethodGet, "/swagger/doc.json", "", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"/api/v1/orders/{orderId}/status"`)

	rec = s.do(http.MethodGet, "/swagger/index.html", "", "")
	s.Equal(http.StatusOK, rec.Code)
}

// Handlers bind their own parameters, so malformed values are rejected even
// when the request validator is not installed.
func (s *ServerTestSuite) TestParameterBindingWithoutValidator() {
	server, err := s.root.CreateHTTPServer()
	s.Require().NoError(err)
	bare := echo.New()
	server.Register(bare, nil)

	serve := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(httpin.HeaderActorRole, "BUSINESS")
		rec := httptest.NewRecorder()
		bare.ServeHTTP(rec, req)
		return rec
	}

	rec := serve("/api/v1/notifications?limit=lots")
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "limit")

	rec = serve("/api/v1/notifications")
	s.Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = serve("/api/v1/orders?view=in_progress")
	s.Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = serve("/api/v1/orders/not-an-id")
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "orderId")
}

func (s *ServerTestSuite) TestGetProducts() {
	rec := s.do(http.MethodGet, "/api/v1/products", "", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var products []httpin.Product
	s.decode(rec, &products)
	s.Len(products, 4)
}

func (s *ServerTestSuite) TestCreateOrder() {
	created := s.createOrder()

	s.Equal("PENDING", created.Status)
	s.InDelta(40.0, created.Total, 1e-9)
	s.Equal(session.DemoCustomer.ID.String(), created.CustomerID)
	s.Equal(session.DemoBusiness.ID.String(), created.BusinessID)
	s.Equal([]string{"CANCELLED"}, created.NextStatuses)
	s.Require().Len(created.Items, 1)
	s.Equal(2, created.Items[0].Quantity)
}

func (s *ServerTestSuite) TestCreateOrder_Validation() {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing_items", body: `{"total":40}`},
		{name: "empty_items", body: `{"items":[],"total":0}`},
		{name: "zero_quantity", body: `{"items":[{"id":"p","name":"Burger","price":20,"quantity":0}],"total":0}`},
		{name: "total_mismatch", body: `{"items":[{"id":"p","name":"Burger","price":20,"quantity":2}],"total":39}`},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := s.do(http.MethodPost, "/api/v1/orders", "CUSTOMER", tt.body)
			s.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())
			s.errorBody(rec)
		})
	}
}

func (s *ServerTestSuite) TestCreateOrder_OnlyCustomers() {
	rec := s.do(http.MethodPost, "/api/v1/orders", "BUSINESS", burgerOrder)

	s.Equal(http.StatusForbidden, rec.Code)
	s.errorBody(rec)
}

func (s *ServerTestSuite) TestUnknownActorRole() {
	rec := s.do(http.MethodGet, "/api/v1/orders", "CHEF", "")

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.errorBody(rec)
}

func (s *ServerTestSuite) TestChangeOrderStatus() {
	created := s.createOrder()

	rec := s.changeStatus(created.ID, "BUSINESS", "PREPARING")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var updated httpin.Order
	s.decode(rec, &updated)
	s.Equal("PREPARING", updated.Status)
	s.Equal([]string{"CANCELLED"}, updated.NextStatuses)

	rec = s.changeStatus(created.ID, "BUSINESS", "PENDING")
	s.Equal(http.StatusConflict, rec.Code)
	s.errorBody(rec)

	rec = s.changeStatus(created.ID, "CUSTOMER", "ON_THE_WAY")
	s.Equal(http.StatusForbidden, rec.Code)
	s.errorBody(rec)

	rec = s.changeStatus(created.ID, "DELIVERY", "ON_THE_WAY")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.decode(rec, &updated)
	s.Require().NotNil(updated.DeliveryID)
	s.Equal(session.DemoDelivery.ID.String(), *updated.DeliveryID)

	rec = s.do(http.MethodGet, "/api/v1/orders/"+created.ID+"/tracking", "CUSTOMER", "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var tracking httpin.Courier
	s.decode(rec, &tracking)
	s.Equal(created.ID, tracking.OrderID)
	s.InDelta(19.4326, tracking.Location.Lat, 1e-9)
}

func (s *ServerTestSuite) TestChangeOrderStatus_RejectsUnknownStatus() {
	created := s.createOrder()

	rec := s.changeStatus(created.ID, "BUSINESS", "LOST")

	s.Equal(http.StatusBadRequest, rec.Code)
	s.errorBody(rec)
}

func (s *ServerTestSuite) TestGetOrder_NotFound() {
	rec := s.do(http.MethodGet, "/api/v1/orders/3b241101-e2bb-4255-8caf-4136c566a962", "BUSINESS", "")

	s.Equal(http.StatusNotFound, rec.Code)
	s.errorBody(rec)
}

func (s *ServerTestSuite) TestGetOrder_BadID() {
	rec := s.do(http.MethodGet, "/api/v1/orders/not-an-id", "BUSINESS", "")

	s.Equal(http.StatusBadRequest, rec.Code)
	s.errorBody(rec)
}

func (s *ServerTestSuite) TestGetOrders_RoleViews() {
	created := s.createOrder()

	rec := s.do(http.MethodGet, "/api/v1/orders?view=incoming", "BUSINESS", "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var incoming []httpin.Order
	s.decode(rec, &incoming)
	s.Require().Len(incoming, 1)
	s.Equal(created.ID, incoming[0].ID)
	s.ElementsMatch([]string{"PREPARING", "CANCELLED"}, incoming[0].NextStatuses)

	rec = s.do(http.MethodGet, "/api/v1/orders", "DELIVERY", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var ready []httpin.Order
	s.decode(rec, &ready)
	s.Empty(ready)

	rec = s.do(http.MethodGet, "/api/v1/orders?view=mine", "BUSINESS", "")
	s.Equal(http.StatusBadRequest, rec.Code)
	s.errorBody(rec)

	rec = s.do(http.MethodGet, "/api/v1/orders?view=everything", "BUSINESS", "")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) TestRateOrder_RequiresDelivery() {
	created := s.createOrder()

	rec := s.do(http.MethodPost, "/api/v1/orders/"+created.ID+"/rating", "CUSTOMER", `{"score":5}`)

	s.Equal(http.StatusConflict, rec.Code)
	s.errorBody(rec)
}

func (s *ServerTestSuite) TestRateOrder_ScoreOutOfRange() {
	created := s.createOrder()

	rec := s.do(http.MethodPost, "/api/v1/orders/"+created.ID+"/rating", "CUSTOMER", `{"score":9}`)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.errorBody(rec)
}

func (s *ServerTestSuite) TestNotifications() {
	s.createOrder()

	rec := s.do(http.MethodGet, "/api/v1/notifications?limit=10", "BUSINESS", "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var got []httpin.Notification
	s.decode(rec, &got)
	s.Require().Len(got, 1)
	s.Equal("New order", got[0].Title)
	s.Equal("PENDING", got[0].Status)

	rec = s.do(http.MethodGet, "/api/v1/notifications?limit=0", "BUSINESS", "")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) TestSession() {
	rec := s.do(http.MethodGet, "/api/v1/session", "", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var current httpin.Session
	s.decode(rec, &current)
	s.Equal("customer-123", current.Handle)
	s.Equal([]string{"mine"}, current.Views)
	s.Len(current.Users, 3)

	rec = s.do(http.MethodPost, "/api/v1/session", "", `{"role":"DELIVERY"}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.decode(rec, &current)
	s.Equal("delivery-123", current.Handle)
	s.Equal([]string{"ready_for_pickup", "my_deliveries"}, current.Views)

	// Requests without actor headers now act as the courier.
	rec = s.do(http.MethodPost, "/api/v1/orders", "", burgerOrder)
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *ServerTestSuite) TestSession_RejectsUnknownRole() {
	rec := s.do(http.MethodPost, "/api/v1/session", "", `{"role":"ADMIN"}`)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.errorBody(rec)
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func TestLoadOpenAPI(t *testing.T) {
	doc, err := httpin.LoadOpenAPI()
	require.NoError(t, err)
	assert.NotNil(t, doc.Paths.Find("/api/v1/orders/{orderId}/status"))
}
