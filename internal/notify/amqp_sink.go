package notify

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/hyperitsme/axion-backend/internal/domain"
)

// AMQPSink delivers order snapshots to a durable RabbitMQ queue.
type AMQPSink struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

func NewAMQPSink(url, queueName string) (*AMQPSink, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queueName, err)
	}

	return &AMQPSink{
		conn:    conn,
		channel: ch,
		queue:   queueName,
	}, nil
}

func (s *AMQPSink) Send(ctx context.Context, order domain.Order) error {
	body, err := encodeOrderEvent(order)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	err = s.channel.PublishWithContext(ctx,
		"",      // exchange
		s.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			MessageId:    order.OrderID,
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", s.queue, err)
	}
	return nil
}

func (s *AMQPSink) Close() error {
	_ = s.channel.Close()
	return s.conn.Close()
}
