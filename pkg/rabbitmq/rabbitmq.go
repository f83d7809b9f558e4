package rabbitmq

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"moviedb/internal/models"

	amqp "github.com/streadway/amqp"
)

// EventQueue is the durable queue catalog events are routed to.
const EventQueue = "movie_events"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex // amqp channels must not publish concurrently
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient creates a new RabbitMQ client.
// It connects to RabbitMQ, opens a channel and declares EventQueue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := declareEventQueue(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Printf("RabbitMQ client connected and %s declared.", EventQueue)

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

func declareEventQueue(ch *amqp.Channel) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		EventQueue, // name
		true,       // durable
		false,      // delete when unused
		false,      // exclusive
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		return q, fmt.Errorf("failed to declare %s: %w", EventQueue, err)
	}
	return q, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// PublishEvent publishes a catalog event to EventQueue as persistent JSON.
func (c *Client) PublishEvent(event models.Event) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	body, err := EncodeEvent(event)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err = c.channel.Publish(
		"",         // exchange: default exchange
		EventQueue, // routing key: the queue name
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         event.Type,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// ConsumeEvents delivers every message on EventQueue to handler in a
// background goroutine. Messages are acked on success and requeued once
// on failure; a redelivered message that fails again is dropped.
func (c *Client) ConsumeEvents(handler func(event models.Event) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	queue, err := declareEventQueue(c.channel)
	if err != nil {
		return err
	}

	msgs, err := c.channel.Consume(
		queue.Name, // queue
		"",         // consumer tag
		false,      // auto-ack
		false,      // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			handleDelivery(msg, handler)
		}
	}()
	return nil
}

func handleDelivery(msg amqp.Delivery, handler func(event models.Event) error) {
	event, err := DecodeEvent(msg.Body)
	if err == nil {
		err = handler(event)
	}
	if err != nil {
		log.Printf("Error processing message %d: %v", msg.DeliveryTag, err)
		if nackErr := msg.Nack(false, !msg.Redelivered); nackErr != nil {
			log.Printf("Error nacking message %d: %v", msg.DeliveryTag, nackErr)
		}
		return
	}
	if ackErr := msg.Ack(false); ackErr != nil {
		log.Printf("Error acking message %d: %v", msg.DeliveryTag, ackErr)
	}
}

// EncodeEvent marshals an event into its wire form.
func EncodeEvent(event models.Event) ([]byte, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event to JSON: %w", err)
	}
	return body, nil
}

// DecodeEvent parses the wire form of an event.
func DecodeEvent(body []byte) (models.Event, error) {
	var event models.Event
	if err := json.Unmarshal(body, &event); err != nil {
		return event, fmt.Errorf("failed to decode event: %w", err)
	}
	if event.Type == "" {
		return event, fmt.Errorf("failed to decode event: missing type")
	}
	return event, nil
}

// LogEvent is a consumer handler that writes an audit line per event.
func LogEvent(event models.Event) error {
	log.Printf("Catalog event %s: movie=%s review=%s user=%s at %s",
		event.Type, event.MovieID, event.ReviewID, event.UserID, event.OccurredAt.Format(time.RFC3339))
	return nil
}
