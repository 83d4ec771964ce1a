package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// AMQPQueue publishes JSON events to one durable RabbitMQ queue through the
// default exchange. The topic travels in the "topic" header.
type AMQPQueue struct {
	conn      *amqp.Connection
	mu        sync.Mutex
	ch        *amqp.Channel
	queueName string
	logger    *zap.Logger
}

func DialAMQP(url, queueName string, logger *zap.Logger) (*AMQPQueue, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if _, err := DeclareQueue(ch, queueName); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &AMQPQueue{conn: conn, ch: ch, queueName: queueName, logger: logger}, nil
}

// DeclareQueue declares the durable event queue shared by publisher and worker.
func DeclareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		name,  // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return amqp.Queue{}, fmt.Errorf("declare queue %s: %w", name, err)
	}
	return q, nil
}

func (q *AMQPQueue) Publish(topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", topic, err)
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	err = q.ch.Publish(
		"",
		q.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Headers:      amqp.Table{"topic": topic},
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}
	return nil
}

// Subscribe is not supported on the publisher side; events are consumed by
// cmd/worker through Consume.
func (q *AMQPQueue) Subscribe(topic string, handler func(payload any) error) error {
	return fmt.Errorf("subscribe %s: AMQP queue is publish-only in this process", topic)
}

// Consume delivers raw message bodies to handler until ctx is done. Every
// delivery is acked after the handler returns; failures are logged once.
func (q *AMQPQueue) Consume(ctx context.Context, handler func(topic string, body []byte) error) error {
	msgs, err := q.ch.Consume(
		q.queueName,
		"",
		false, // autoAck
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			topic, _ := d.Headers["topic"].(string)
			if err := handler(topic, d.Body); err != nil {
				q.logger.Warn("event handler failed", zap.String("topic", topic), zap.Error(err))
			}
			d.Ack(false)
		}
	}
}

func (q *AMQPQueue) Close() error {
	q.ch.Close()
	return q.conn.Close()
}

var (
	_ Queue = (*InMemoryQueue)(nil)
	_ Queue = (*AMQPQueue)(nil)
)
