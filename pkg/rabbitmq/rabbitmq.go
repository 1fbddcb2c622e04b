package rabbitmq

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/streadway/amqp"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	// Exchange is the topic exchange every domain event is published on.
	Exchange = "minishop.events"
	// Queue collects order and shipment events for the events consumer.
	Queue = "minishop_events"
)

// bindings are the routing keys Queue receives.
var bindings = []string{"order.*", "shipment.*"}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex // amqp channels are not safe for concurrent publishes
	log     *zap.Logger
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel and declares the event
// exchange, queue and bindings.
func NewClient(cfg Config, log *zap.Logger) (*Client, error) {
	if log == nil {
		log = zap.NewNop()
	}
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Info("RabbitMQ client connected", zap.String("exchange", Exchange), zap.String("queue", Queue))

	return &Client{
		conn:    conn,
		channel: ch,
		log:     log.Named("rabbitmq"),
	}, nil
}

func declareTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(
		Exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", Exchange, err)
	}

	if _, err := ch.QueueDeclare(
		Queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", Queue, err)
	}

	for _, key := range bindings {
		if err := ch.QueueBind(Queue, key, Exchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind %s to %s: %w", Queue, key, err)
		}
	}
	return nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var err error
	if c.channel != nil {
		if cerr := c.channel.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("failed to close channel: %w", cerr))
		}
	}
	if c.conn != nil {
		if cerr := c.conn.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("failed to close connection: %w", cerr))
		}
	}
	return err
}

// Publish marshals payload to JSON and publishes it on the event exchange
// under routingKey, e.g. "order.placed".
func (c *Client) Publish(routingKey string, payload interface{}) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event to JSON: %w", routingKey, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err = c.channel.Publish(
		Exchange,   // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         routingKey,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", routingKey, err)
	}

	c.log.Debug("event published", zap.String("routing_key", routingKey), zap.ByteString("body", body))
	return nil
}

// Consume delivers every message on Queue to handler until the channel closes.
// Messages are acked when handler returns nil and requeued once otherwise.
func (c *Client) Consume(handler func(msg amqp.Delivery) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		Queue, // queue
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	for msg := range msgs {
		if err := handler(msg); err != nil {
			c.log.Warn("event handler failed", zap.Uint64("delivery_tag", msg.DeliveryTag), zap.Error(err))
			// Redelivered messages are dropped so a poison message cannot loop forever.
			if nackErr := msg.Nack(false, !msg.Redelivered); nackErr != nil {
				c.log.Error("failed to nack message", zap.Uint64("delivery_tag", msg.DeliveryTag), zap.Error(nackErr))
			}
			continue
		}
		if ackErr := msg.Ack(false); ackErr != nil {
			c.log.Error("failed to ack message", zap.Uint64("delivery_tag", msg.DeliveryTag), zap.Error(ackErr))
		}
	}
	return nil
}
