// Package service publishes domain events to RabbitMQ.  Errors are logged
// and returned so callers can ignore failures without interrupting the main
// request flow: activity recording is best-effort and never blocks or rolls
// back the action that produced it.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/rvillanueva/resort-backoffice/internal/queue"
)

// RecordActivity publishes an ActivityRecordedEvent describing action taken
// by userID (nil for system events).  Messages are persistent and the queue
// declaration is idempotent.
func RecordActivity(ctx context.Context, userID *uint64, action string) error {
	ev := queue.ActivityRecordedEvent{
		UserID:     userID,
		Action:     action,
		OccurredAt: time.Now().UTC().Format("2006-01-02 15:04:05"),
	}

	conn, err := amqp.Dial(queue.BrokerURL())
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queue.ActivityQueueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx,
		"",                      // default exchange
		queue.ActivityQueueName, // routing key = queue name
		false, false, pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
