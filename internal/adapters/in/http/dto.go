package http

import (
	"time"

	"foodorders/internal/core/application/session"
	"foodorders/internal/core/application/usecases/queries"
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/rating"
	"foodorders/internal/core/ports"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
}

type NewOrderItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type NewOrder struct {
	Items    []NewOrderItem `json:"items"`
	Total    float64        `json:"total"`
	Location string         `json:"location,omitempty"`
}

type StatusChange struct {
	Status string `json:"status"`
}

type NewRating struct {
	Score   int    `json:"score"`
	Comment string `json:"comment,omitempty"`
}

type RoleSwitch struct {
	Role string `json:"role"`
}

type OrderItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type Order struct {
	ID           string      `json:"id"`
	CustomerID   string      `json:"customerId"`
	BusinessID   string      `json:"businessId"`
	DeliveryID   *string     `json:"deliveryId,omitempty"`
	Items        []OrderItem `json:"items"`
	Total        float64     `json:"total"`
	Status       string      `json:"status"`
	Location     string      `json:"location,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
	NextStatuses []string    `json:"nextStatuses"`
}

type Rating struct {
	OrderID   string    `json:"orderId"`
	Score     int       `json:"score"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Courier struct {
	CourierID         string     `json:"courierId"`
	OrderID           string     `json:"orderId"`
	Location          Location   `json:"location"`
	Destination       Location   `json:"destination"`
	RemainingDistance float64    `json:"remainingDistance"`
	StartedAt         time.Time  `json:"startedAt"`
	ArrivedAt         *time.Time `json:"arrivedAt,omitempty"`
}

type Notification struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Body    string    `json:"body"`
	OrderID string    `json:"orderId"`
	Status  string    `json:"status"`
	SentAt  time.Time `json:"sentAt"`
}

type SessionUser struct {
	Handle string `json:"handle"`
	Role   string `json:"role"`
}

type Session struct {
	UserID string        `json:"userId"`
	Handle string        `json:"handle"`
	Name   string        `json:"name"`
	Role   string        `json:"role"`
	Views  []string      `json:"views"`
	Users  []SessionUser `json:"users"`
}

func toProduct(p queries.GetProductsQueryResponse) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.Float64(),
	}
}

func toOrder(o queries.OrderResponse) Order {
	items := make([]OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItem{
			ID:       item.ProductID,
			Name:     item.Name,
			Price:    item.UnitPrice.Float64(),
			Quantity: item.Quantity,
		})
	}

	next := make([]string, 0, len(o.NextStatuses))
	for _, s := range o.NextStatuses {
		next = append(next, s.String())
	}

	out := Order{
		ID:           o.ID.String(),
		CustomerID:   o.CustomerID.String(),
		BusinessID:   o.BusinessID.String(),
		Items:        items,
		Total:        o.Total.Float64(),
		Status:       o.Status.String(),
		Location:     o.Location,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
		NextStatuses: next,
	}
	if o.DeliveryID != nil {
		id := o.DeliveryID.String()
		out.DeliveryID = &id
	}
	return out
}

func toRating(r *rating.Rating) Rating {
	return Rating{
		OrderID:   r.OrderID().String(),
		Score:     r.Score(),
		Comment:   r.Comment(),
		CreatedAt: r.CreatedAt(),
	}
}

func toLocation(l kernel.Location) Location {
	return Location{Lat: l.Latitude(), Lng: l.Longitude()}
}

func toCourier(c queries.CourierResponse) Courier {
	return Courier{
		CourierID:         c.CourierID.String(),
		OrderID:           c.OrderID.String(),
		Location:          toLocation(c.Location),
		Destination:       toLocation(c.Destination),
		RemainingDistance: c.RemainingDistance,
		StartedAt:         c.StartedAt,
		ArrivedAt:         c.ArrivedAt,
	}
}

func toNotification(n ports.Notification) Notification {
	return Notification{
		ID:      n.ID.String(),
		Title:   n.Title,
		Body:    n.Body,
		OrderID: n.OrderID.String(),
		Status:  n.Status.String(),
		SentAt:  n.SentAt,
	}
}

func toSession(u session.User) Session {
	views := queries.Views(u.Role)
	out := Session{
		UserID: u.ID.String(),
		Handle: u.Handle,
		Name:   u.Name,
		Role:   u.Role.String(),
		Views:  make([]string, 0, len(views)),
		Users:  make([]SessionUser, 0, len(session.DemoUsers())),
	}
	for _, v := range views {
		out.Views = append(out.Views, string(v))
	}
	for _, du := range session.DemoUsers() {
		out.Users = append(out.Users, SessionUser{Handle: du.Handle, Role: du.Role.String()})
	}
	return out
}
