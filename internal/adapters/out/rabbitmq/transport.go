// Package rabbitmq forwards notifications to a topic exchange so external
// consumers (push gateways, e-mail senders) can subscribe per role.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"foodorders/internal/core/ports"

	"github.com/streadway/amqp"
)

const DefaultExchange = "foodorders.notifications"

var ErrTransportClosed = errors.New("rabbitmq transport is closed")

// Channel is the part of *amqp.Channel the transport publishes through.
type Channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Transport struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  Channel
	exchange string
	closed   bool
	logger   *slog.Logger
}

var _ ports.NotificationTransport = (*Transport)(nil)

// Dial connects to the broker and declares a durable topic exchange.
func Dial(url, exchange string, logger *slog.Logger) (*Transport, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	t := NewTransport(ch, exchange, logger)
	t.conn = conn
	return t, nil
}

// NewTransport publishes over an already opened channel.
func NewTransport(ch Channel, exchange string, logger *slog.Logger) *Transport {
	if exchange == "" {
		exchange = DefaultExchange
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Transport{
		channel:  ch,
		exchange: exchange,
		logger:   logger.With("component", "notifications.rabbitmq"),
	}
}

func (t *Transport) Deliver(ctx context.Context, n ports.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := Encode(n)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrTransportClosed
	}

	key := RoutingKey(n.Recipient)
	if err := t.channel.Publish(t.exchange, key, false, false, msg); err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}
	t.logger.DebugContext(ctx, "notification published", "routing_key", key, "notification_id", n.ID.String())
	return nil
}

func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true

	var errList []error
	if err := t.channel.Close(); err != nil {
		errList = append(errList, fmt.Errorf("close channel: %w", err))
	}
	if t.conn != nil {
		if err := t.conn.Close(); err != nil {
			errList = append(errList, fmt.Errorf("close connection: %w", err))
		}
	}
	return errors.Join(errList...)
}

// RoutingKey is notifications.<role> for broadcasts and
// notifications.<role>.<user id> for a single user.
func RoutingKey(r ports.Recipient) string {
	key := "notifications." + strings.ToLower(r.Role.String())
	if r.UserID != nil {
		key += "." + r.UserID.String()
	}
	return key
}

type message struct {
	ID      string    `json:"id"`
	Role    string    `json:"role"`
	UserID  string    `json:"userId,omitempty"`
	Title   string    `json:"title"`
	Body    string    `json:"body"`
	OrderID string    `json:"orderId"`
	Status  string    `json:"status"`
	SentAt  time.Time `json:"sentAt"`
}

// Encode renders n as a persistent JSON message.
func Encode(n ports.Notification) (amqp.Publishing, error) {
	m := message{
		ID:      n.ID.String(),
		Role:    n.Recipient.Role.String(),
		Title:   n.Title,
		Body:    n.Body,
		OrderID: n.OrderID.String(),
		Status:  n.Status.String(),
		SentAt:  n.SentAt.UTC(),
	}
	if n.Recipient.UserID != nil {
		m.UserID = n.Recipient.UserID.String()
	}

	body, err := json.Marshal(m)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("encode notification: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    m.ID,
		Timestamp:    m.SentAt,
		Type:         "order.notification",
		Body:         body,
	}, nil
}
